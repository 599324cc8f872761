package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	v1 "github.com/kubev2v/infra-validator/api/v1"
	"github.com/kubev2v/infra-validator/internal/models"
	"github.com/kubev2v/infra-validator/pkg/compliance"
)

func bindThresholdFlags(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.Float64("min-free", 20, "Minimum free capacity percent of a datastore")
	fs.Float64("max-ratio", 1.5, "Maximum datastore subscription ratio")
	fs.Float64("max-age", 24, "Maximum backup age in hours")
	fs.Int("lookback-days", 7, "Days of backup job history to evaluate")
	fs.StringSlice("offsite-vms", nil, "VMs that require offsite replication")
	fs.Int("min-daily", 7, "Minimum daily retention")
	fs.Int("min-weekly", 4, "Minimum weekly retention")
	fs.Int("min-monthly", 3, "Minimum monthly retention")
	fs.String("cluster", "", "Cluster for the placement check")
}

func bindFailOn(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVar(target, "fail-on", string(models.FailOnCritical), "Exit non-zero on: critical, warning or never")
}

func newValidateCommand(o *rootOptions) *cobra.Command {
	var (
		records string
		now     string
		failOn  string
		output  string
	)

	cmd := &cobra.Command{
		Use:   "validate CHECK",
		Short: "Run one validator on records read from a JSON or YAML file",
		Long: fmt.Sprintf("Run one validator on records read from a JSON or YAML file.\n\nChecks: %s",
			strings.Join(checkNames(), ", ")),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			check, err := compliance.ParseCheck(args[0])
			if err != nil {
				return err
			}
			policy, err := models.ParseFailOn(failOn)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(records)
			if err != nil {
				return fmt.Errorf("failed to read records: %w", err)
			}

			params := compliance.Params{
				Thresholds: o.cfg.Thresholds,
				Cluster:    o.cfg.Suite.Cluster,
			}
			if now != "" {
				t, err := compliance.ParseTimestamp(now)
				if err != nil {
					return err
				}
				params.Now = t
			}

			report, err := compliance.Evaluate(check, data, formatOf(records), params)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if output == outputText {
				renderReport(w, report)
			} else if err := printOutput(w, v1.NewReport(report), output); err != nil {
				return err
			}

			run := &models.Run{
				State:   models.RunStateCompleted,
				Results: []models.CheckResult{{Check: check, Report: &report}},
			}
			if policy.Failed(run) {
				return &exitError{code: 1}
			}
			return nil
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&records, "records", "r", "", "Path of the records file (.json, .yaml or .yml)")
	_ = cmd.MarkFlagRequired("records")
	fs.StringVar(&now, "now", "", "Reference time for the recency check, defaults to the current time")
	fs.StringVarP(&output, "output", "o", outputText, "Output format. One of: (text, yaml, json).")
	bindFailOn(cmd, &failOn)
	bindThresholdFlags(cmd)

	return cmd
}

func formatOf(path string) compliance.Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return compliance.FormatYAML
	default:
		return compliance.FormatJSON
	}
}

func checkNames() []string {
	names := make([]string, 0, len(compliance.AllChecks))
	for _, c := range compliance.AllChecks {
		names = append(names, string(c))
	}
	return names
}
