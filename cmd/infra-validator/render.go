package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"

	"github.com/kubev2v/infra-validator/internal/models"
	"github.com/kubev2v/infra-validator/pkg/compliance"
)

const outputText = "text"

var (
	passColor  = color.New(color.FgGreen, color.Bold)
	warnColor  = color.New(color.FgYellow, color.Bold)
	failColor  = color.New(color.FgRed, color.Bold)
	errorColor = color.New(color.FgMagenta, color.Bold)
	faintColor = color.New(color.Faint)
)

func severityColor(s compliance.Severity) *color.Color {
	if s == compliance.SeverityCritical {
		return failColor
	}
	return warnColor
}

func reportLabel(r compliance.Report) string {
	switch {
	case r.Critical() > 0:
		return failColor.Sprint("FAIL")
	case r.Warnings() > 0:
		return warnColor.Sprint("WARN")
	default:
		return passColor.Sprint("PASS")
	}
}

func renderReport(w io.Writer, r compliance.Report) {
	fmt.Fprintf(w, "[%s] %s: %d violations in %d records", reportLabel(r), r.Check, r.Count, r.Total)
	if r.Count > 0 {
		fmt.Fprintf(w, " (%d critical, %d warning)", r.Critical(), r.Warnings())
	}
	fmt.Fprintln(w)

	for _, v := range r.Violations {
		fmt.Fprintf(w, "    %-8s %s  %s\n", severityColor(v.Severity).Sprint(v.Severity), v.Subject, v.Reason)
	}
}

func renderRun(w io.Writer, run *models.Run) {
	fmt.Fprintf(w, "Run %s  suite %s  state %s\n", run.ID, run.Suite, runStateLabel(run.State))
	if !run.StartedAt.IsZero() && !run.FinishedAt.IsZero() {
		fmt.Fprintln(w, faintColor.Sprintf("started %s, took %s", run.StartedAt.Format(time.RFC3339), run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond)))
	}
	if run.Error != nil {
		fmt.Fprintf(w, "%s %s\n", errorColor.Sprint("run failed:"), run.Error)
	}
	fmt.Fprintln(w)

	for _, res := range run.Results {
		if res.Error != nil {
			fmt.Fprintf(w, "[%s] %s: %s\n", errorColor.Sprint("ERROR"), res.Check, res.Error)
			continue
		}
		if res.Report != nil {
			renderReport(w, *res.Report)
		}
	}

	fmt.Fprintln(w)
	summary := fmt.Sprintf("%d checks, %d critical, %d warnings, %d errored", len(run.Results), run.Critical(), run.Warnings(), run.Errored())
	if run.Passed() {
		fmt.Fprintln(w, passColor.Sprint(summary))
	} else {
		fmt.Fprintln(w, failColor.Sprint(summary))
	}
}

func runStateLabel(s models.RunState) string {
	switch s {
	case models.RunStateCompleted:
		return passColor.Sprint(s)
	case models.RunStateError:
		return errorColor.Sprint(s)
	default:
		return warnColor.Sprint(s)
	}
}

func renderRunTable(w io.Writer, runs []models.Run) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSUITE\tSTATE\tSTARTED\tCRITICAL\tWARNINGS\tERRORED")
	for _, r := range runs {
		started := ""
		if !r.StartedAt.IsZero() {
			started = r.StartedAt.Format(time.RFC3339)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\t%d\n", r.ID, r.Suite, r.State, started, r.Critical(), r.Warnings(), r.Errored())
	}
	return tw.Flush()
}
