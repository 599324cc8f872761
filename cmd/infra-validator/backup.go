package main

import (
	"github.com/spf13/cobra"

	srvErrors "github.com/kubev2v/infra-validator/pkg/errors"
)

func newBackupCommand(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Collect backup records",
	}

	var (
		vms    []string
		kind   string
		output string
	)
	collect := &cobra.Command{
		Use:   "collect",
		Short: "Collect one kind of backup record for a set of VMs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if len(vms) == 0 {
				vms = o.cfg.Suite.VMs
			}

			c, err := o.connectBackup(ctx)
			if err != nil {
				return err
			}
			defer disconnect(ctx, "backup", c.Disconnect)

			var records any
			switch kind {
			case "policy":
				records, err = c.Policies(ctx, vms)
			case "schedule":
				records, err = c.Schedules(ctx, vms)
			case "jobs":
				records, err = c.Jobs(ctx, vms, o.cfg.Thresholds.LookbackDays)
			case "retention":
				records, err = c.Retention(ctx, vms)
			case "timestamps":
				records, err = c.Timestamps(ctx, vms)
			case "replication":
				records, err = c.Replication(ctx, vms)
			default:
				return srvErrors.NewConfigurationError("invalid kind %q, must be one of policy, schedule, jobs, retention, timestamps, replication", kind)
			}
			if err != nil {
				return err
			}
			return printOutput(cmd.OutOrStdout(), records, output)
		},
	}

	fs := collect.Flags()
	fs.StringSliceVar(&vms, "vms", nil, "VM names, defaults to suite.vms")
	fs.StringVar(&kind, "kind", "policy", "Record kind (policy, schedule, jobs, retention, timestamps, replication)")
	fs.String("backup-server", "", "Backup server host name or address")
	fs.String("backup-user", "", "Backup server user name")
	fs.Duration("backup-timeout", 0, "Backup request timeout")
	fs.Int("lookback-days", 7, "Days of job history to collect")
	bindOutput(fs, &output)
	cmd.AddCommand(collect)

	return cmd
}
