package main

import (
	"fmt"

	"github.com/spf13/cobra"

	srvErrors "github.com/kubev2v/infra-validator/pkg/errors"
)

const (
	viewCapacity     = "capacity"
	viewTiers        = "tiers"
	viewSubscription = "subscription"
	viewAssignments  = "assignments"
)

func bindVCenterFlags(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.String("vcenter-host", "", "vCenter host name or address")
	fs.String("vcenter-user", "", "vCenter user name")
	fs.Int("vcenter-port", 443, "vCenter port")
}

func newVMCommand(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vm",
		Short: "Inspect virtual machines",
	}

	var output string
	details := &cobra.Command{
		Use:   "details NAME",
		Short: "Print placement, sizing and devices of a VM",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := o.connectVCenter(ctx)
			if err != nil {
				return err
			}
			defer disconnect(ctx, "vcenter", c.Disconnect)

			detail, err := c.VMDetails(ctx, args[0])
			if err != nil {
				return err
			}
			return printOutput(cmd.OutOrStdout(), detail, output)
		},
	}
	bindVCenterFlags(details)
	bindOutput(details.Flags(), &output)
	cmd.AddCommand(details)

	return cmd
}

func newHostCommand(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "host",
		Short: "Inspect ESXi hosts",
	}

	check := &cobra.Command{
		Use:   "check CLUSTER HOST",
		Short: "Check that a host is a member of a cluster",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cluster, host := args[0], args[1]

			c, err := o.connectVCenter(ctx)
			if err != nil {
				return err
			}
			defer disconnect(ctx, "vcenter", c.Disconnect)

			found, err := c.FindHostInCluster(ctx, cluster, host)
			if err != nil {
				return err
			}
			if !found {
				fmt.Fprintf(cmd.OutOrStdout(), "host %s is not a member of cluster %s\n", host, cluster)
				return &exitError{code: 1}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "host %s is a member of cluster %s\n", host, cluster)
			return nil
		},
	}
	bindVCenterFlags(check)
	cmd.AddCommand(check)

	return cmd
}

func newDatastoresCommand(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "datastores",
		Short: "Inspect the datastores of a host",
	}

	var view, output string
	list := &cobra.Command{
		Use:   "list HOST",
		Short: "List the datastores of a host as validator records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			host := args[0]

			c, err := o.connectVCenter(ctx)
			if err != nil {
				return err
			}
			defer disconnect(ctx, "vcenter", c.Disconnect)

			var records any
			switch view {
			case viewCapacity:
				records, err = c.DatastoreCapacity(ctx, host)
			case viewTiers:
				records, err = c.DatastorePerformanceTiers(ctx, host)
			case viewSubscription:
				records, err = c.DatastoreSubscription(ctx, host)
			case viewAssignments:
				records, err = c.VMDatastoreAssignments(ctx, host)
			default:
				return srvErrors.NewConfigurationError("invalid view %q, must be one of capacity, tiers, subscription, assignments", view)
			}
			if err != nil {
				return err
			}
			return printOutput(cmd.OutOrStdout(), records, output)
		},
	}
	bindVCenterFlags(list)
	list.Flags().StringVar(&view, "view", viewCapacity, "Record view (capacity, tiers, subscription, assignments)")
	bindOutput(list.Flags(), &output)
	cmd.AddCommand(list)

	return cmd
}
