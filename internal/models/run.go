package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kubev2v/infra-validator/pkg/compliance"
)

// RunState represents the lifecycle of a suite run.
type RunState string

const (
	// RunStatePending - created, no check started yet
	RunStatePending RunState = "pending"
	// RunStateRunning - checks are being executed
	RunStateRunning RunState = "running"
	// RunStateCompleted - every check finished, some may carry an error
	RunStateCompleted RunState = "completed"
	// RunStateError - the run could not be executed
	RunStateError RunState = "error"
)

func (s RunState) Value() string {
	return string(s)
}

func ParseRunState(s string) (RunState, error) {
	switch st := RunState(s); st {
	case RunStatePending, RunStateRunning, RunStateCompleted, RunStateError:
		return st, nil
	default:
		return "", fmt.Errorf("invalid run state: %s", s)
	}
}

// CheckResult is the outcome of one check of a run. Report is nil when
// Error is set.
type CheckResult struct {
	Check  compliance.Check
	Report *compliance.Report
	Error  error
}

func (r CheckResult) Passed() bool {
	return r.Error == nil && r.Report != nil && r.Report.Passed()
}

// Run is one execution of a Suite.
type Run struct {
	ID         uuid.UUID
	Suite      string
	State      RunState
	Error      error
	StartedAt  time.Time
	FinishedAt time.Time
	Results    []CheckResult
}

func NewRun(suite string) *Run {
	return &Run{
		ID:    uuid.New(),
		Suite: suite,
		State: RunStatePending,
	}
}

// Critical counts critical violations across all results.
func (r *Run) Critical() int {
	n := 0
	for _, res := range r.Results {
		if res.Report != nil {
			n += res.Report.Critical()
		}
	}
	return n
}

func (r *Run) Warnings() int {
	n := 0
	for _, res := range r.Results {
		if res.Report != nil {
			n += res.Report.Warnings()
		}
	}
	return n
}

// Errored counts checks that could not be evaluated.
func (r *Run) Errored() int {
	n := 0
	for _, res := range r.Results {
		if res.Error != nil {
			n++
		}
	}
	return n
}

func (r *Run) Passed() bool {
	if r.State != RunStateCompleted {
		return false
	}
	for _, res := range r.Results {
		if !res.Passed() {
			return false
		}
	}
	return true
}
