package main

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	v1 "github.com/kubev2v/infra-validator/api/v1"
	"github.com/kubev2v/infra-validator/internal/services"
	"github.com/kubev2v/infra-validator/internal/store"
)

func newReportsCommand(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "Read the run history",
	}
	cmd.PersistentFlags().String("store", "", "Path of the run history database")
	cmd.AddCommand(newReportsListCommand(o), newReportsShowCommand(o))
	return cmd
}

func closeStore(st *store.Store) {
	if err := st.Close(); err != nil {
		zap.S().Named("cli").Warnw("failed to close store", "error", err)
	}
}

func newReportsListCommand(o *rootOptions) *cobra.Command {
	var (
		states, suites, checks []string
		limit, offset          uint64
		output                 string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List runs, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := o.requireStore(ctx)
			if err != nil {
				return err
			}
			defer closeStore(st)

			result, err := services.NewReportService(st).List(ctx, services.RunListParams{
				States: v1.ParseRunStates(states),
				Suites: suites,
				Checks: v1.ParseChecks(checks),
				Limit:  limit,
				Offset: offset,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if output == outputText {
				return renderRunTable(w, result.Runs)
			}
			runs := make([]v1.Run, 0, len(result.Runs))
			for _, r := range result.Runs {
				runs = append(runs, v1.NewRunFromModel(r))
			}
			return printOutput(w, runs, output)
		},
	}

	fs := cmd.Flags()
	fs.StringSliceVar(&states, "state", nil, "Filter by run state")
	fs.StringSliceVar(&suites, "suite-name", nil, "Filter by suite name")
	fs.StringSliceVar(&checks, "check", nil, "Filter by runs that include a check")
	fs.Uint64Var(&limit, "limit", 20, "Maximum runs to list, 0 for all")
	fs.Uint64Var(&offset, "offset", 0, "Runs to skip")
	fs.StringVarP(&output, "output", "o", outputText, "Output format. One of: (text, yaml, json).")

	return cmd
}

func newReportsShowCommand(o *rootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show one run with its check results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := uuid.Parse(args[0])
			if err != nil {
				return err
			}

			st, err := o.requireStore(ctx)
			if err != nil {
				return err
			}
			defer closeStore(st)

			run, err := services.NewReportService(st).Get(ctx, id)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if output == outputText {
				renderRun(w, run)
				return nil
			}
			return printOutput(w, v1.NewRunFromModel(*run), output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", outputText, "Output format. One of: (text, yaml, json).")

	return cmd
}
