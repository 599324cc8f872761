package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kubev2v/infra-validator/internal/services"
	srvErrors "github.com/kubev2v/infra-validator/pkg/errors"
	"github.com/kubev2v/infra-validator/pkg/inventory"
)

func bindInventoryFlags(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.String("workbook", "", "Path to the inventory workbook")
	fs.String("layout", "eds", "Workbook layout (eds, cbs)")
	fs.String("mode", string(inventory.Strict), "Lookup mode (strict, lenient)")
}

func (o *rootOptions) inventoryService() (*services.InventoryService, error) {
	if o.cfg.Inventory.Workbook == "" {
		return nil, srvErrors.NewConfigurationError("no inventory workbook configured, set --workbook or inventory.workbook")
	}
	layout, err := inventory.LayoutByName(o.cfg.Inventory.Layout)
	if err != nil {
		return nil, err
	}
	mode, err := inventory.ParseMode(o.cfg.Inventory.Mode)
	if err != nil {
		return nil, err
	}
	return services.NewInventoryService(o.cfg.Inventory.Workbook, layout, mode), nil
}

func newLookupCommand(o *rootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "lookup HOSTNAME",
		Short: "Look a host up in the inventory workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, err := o.inventoryService()
			if err != nil {
				return err
			}
			host, err := srv.Lookup(args[0])
			if err != nil {
				return err
			}
			return printOutput(cmd.OutOrStdout(), host, output)
		},
	}
	bindInventoryFlags(cmd)
	bindOutput(cmd.Flags(), &output)

	return cmd
}

func newInventoryCommand(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "Manage inventory workbooks",
	}
	cmd.AddCommand(newInventoryGenerateCommand(o), newInventoryUpsertCommand(o))
	return cmd
}

func newInventoryGenerateCommand(o *rootOptions) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a sample inventory workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			layout, err := inventory.LayoutByName(o.cfg.Inventory.Layout)
			if err != nil {
				return err
			}
			hosts := inventory.SampleHosts()
			if err := inventory.Generate(path, layout, hosts); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d hosts to %s (%s layout)\n", len(hosts), path, layout.Name)
			return nil
		},
	}
	cmd.Flags().StringVarP(&path, "output", "o", "inventory.xlsx", "Path of the workbook to write")
	cmd.Flags().String("layout", "eds", "Workbook layout (eds, cbs)")

	return cmd
}

func newInventoryUpsertCommand(o *rootOptions) *cobra.Command {
	var host inventory.HostConfig

	cmd := &cobra.Command{
		Use:   "upsert HOSTNAME",
		Short: "Create or update a host in the inventory workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, err := o.inventoryService()
			if err != nil {
				return err
			}
			host.Hostname = args[0]
			created, err := srv.Upsert(host)
			if err != nil {
				return err
			}
			action := "updated"
			if created {
				action = "created"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", action, host.Hostname)
			return nil
		},
	}
	bindInventoryFlags(cmd)

	fs := cmd.Flags()
	fs.StringVar(&host.IP, "ip", "", "IP address")
	fs.StringVar(&host.Subnet, "subnet", "", "Subnet")
	fs.StringVar(&host.Mask, "mask", "", "Subnet mask")
	fs.StringVar(&host.Gateway, "gateway", "", "Default gateway")
	fs.StringVar(&host.Domain, "domain", "", "DNS domain")
	fs.StringVar(&host.OSType, "os", "", "Operating system")
	fs.StringVar(&host.ClusterName, "cluster-name", "", "Cluster the host belongs to")
	fs.StringVar(&host.Environment, "environment", "", "Environment")

	return cmd
}
