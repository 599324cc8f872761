package v1

import (
	"github.com/kubev2v/infra-validator/internal/models"
	"github.com/kubev2v/infra-validator/pkg/compliance"
)

// NewReport converts a compliance.Report to an API Report.
func NewReport(r compliance.Report) Report {
	violations := make([]Violation, 0, len(r.Violations))
	for _, v := range r.Violations {
		violations = append(violations, Violation{
			Subject:  v.Subject,
			Reason:   v.Reason,
			Severity: string(v.Severity),
			Details:  v.Details,
		})
	}
	return Report{
		Check:      string(r.Check),
		Passed:     r.Passed(),
		Total:      r.Total,
		Count:      r.Count,
		Critical:   r.Critical(),
		Warnings:   r.Warnings(),
		Violations: violations,
	}
}

// NewRunFromModel converts a models.Run to an API Run.
func NewRunFromModel(run models.Run) Run {
	var state RunState
	switch run.State {
	case models.RunStateRunning:
		state = RunStateRunning
	case models.RunStateCompleted:
		state = RunStateCompleted
	case models.RunStateError:
		state = RunStateError
	default:
		state = RunStatePending
	}

	apiRun := Run{
		Id:       run.ID.String(),
		Suite:    run.Suite,
		State:    state,
		Critical: run.Critical(),
		Warnings: run.Warnings(),
		Errored:  run.Errored(),
		Results:  make([]CheckResult, 0, len(run.Results)),
	}

	if run.Error != nil {
		e := run.Error.Error()
		apiRun.Error = &e
	}
	if !run.StartedAt.IsZero() {
		t := run.StartedAt
		apiRun.StartedAt = &t
	}
	if !run.FinishedAt.IsZero() {
		t := run.FinishedAt
		apiRun.FinishedAt = &t
	}

	for _, res := range run.Results {
		r := CheckResult{Check: string(res.Check)}
		if res.Report != nil {
			rep := NewReport(*res.Report)
			r.Report = &rep
		}
		if res.Error != nil {
			e := res.Error.Error()
			r.Error = &e
		}
		apiRun.Results = append(apiRun.Results, r)
	}

	return apiRun
}

// ParseRunStates converts API run states to model states, skipping unknown
// values.
func ParseRunStates(states []string) []models.RunState {
	var result []models.RunState
	for _, s := range states {
		if st, err := models.ParseRunState(s); err == nil {
			result = append(result, st)
		}
	}
	return result
}

// ParseChecks converts check names to checks, skipping unknown values.
func ParseChecks(names []string) []compliance.Check {
	var result []compliance.Check
	for _, n := range names {
		if c, err := compliance.ParseCheck(n); err == nil {
			result = append(result, c)
		}
	}
	return result
}
