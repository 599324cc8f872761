package models

import (
	"context"
	"fmt"

	"github.com/kubev2v/infra-validator/pkg/compliance"
)

// Suite is the set of checks a run executes and the entities they target.
type Suite struct {
	Name   string
	Checks []compliance.Check
	// Cluster is required by the placement check.
	Cluster string
	// Hosts feed the datastore checks, VMs feed the backup checks.
	Hosts      []string
	VMs        []string
	Thresholds compliance.Thresholds
}

// FailOn selects which outcome makes a run fail.
type FailOn string

const (
	FailOnCritical FailOn = "critical"
	FailOnWarning  FailOn = "warning"
	FailOnNever    FailOn = "never"
)

func ParseFailOn(s string) (FailOn, error) {
	switch f := FailOn(s); f {
	case FailOnCritical, FailOnWarning, FailOnNever:
		return f, nil
	default:
		return "", fmt.Errorf("invalid fail-on value: %s", s)
	}
}

// Failed reports whether run fails under f. Errored checks and runs count
// as critical.
func (f FailOn) Failed(run *Run) bool {
	switch f {
	case FailOnNever:
		return false
	case FailOnWarning:
		return run.State == RunStateError || run.Errored() > 0 || run.Critical() > 0 || run.Warnings() > 0
	default:
		return run.State == RunStateError || run.Errored() > 0 || run.Critical() > 0
	}
}

type CheckWorkBuilder interface {
	Build(Suite) []CheckWorkUnit
}

// CheckWorkUnit evaluates one check of a suite.
type CheckWorkUnit struct {
	Check compliance.Check
	Work  func(ctx context.Context) (*compliance.Report, error)
}
