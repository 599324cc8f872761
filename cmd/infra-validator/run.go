package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	v1 "github.com/kubev2v/infra-validator/api/v1"
	"github.com/kubev2v/infra-validator/internal/models"
)

func newRunCommand(o *rootOptions) *cobra.Command {
	var (
		failOn string
		output string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the configured validation suite",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			policy, err := models.ParseFailOn(failOn)
			if err != nil {
				return err
			}
			suite, err := o.suite()
			if err != nil {
				return err
			}

			st, err := o.openStore(ctx)
			if err != nil {
				return err
			}
			if st != nil {
				defer closeStore(st)
			}

			src := o.connectSources(ctx, suite)
			defer src.Close()

			run, err := o.suiteService(src, st).Run(ctx, suite)
			if err != nil {
				zap.S().Named("cli").Errorw("failed to save run", "error", err)
				if run == nil {
					return err
				}
			}

			w := cmd.OutOrStdout()
			if output == outputText {
				renderRun(w, run)
			} else if err := printOutput(w, v1.NewRunFromModel(*run), output); err != nil {
				return err
			}

			if policy.Failed(run) {
				return &exitError{code: 1}
			}
			return nil
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&output, "output", "o", outputText, "Output format. One of: (text, yaml, json).")
	fs.String("suite", "", "Suite name recorded with the run")
	fs.String("store", "", "Path of the run history database")
	fs.Int("workers", 1, "Checks evaluated concurrently")
	bindFailOn(cmd, &failOn)
	bindThresholdFlags(cmd)
	bindVCenterFlags(cmd)
	fs.String("backup-server", "", "Backup server host name or address")
	fs.String("backup-user", "", "Backup server user name")

	return cmd
}
