package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kubev2v/infra-validator/internal/models"
	"github.com/kubev2v/infra-validator/pkg/compliance"
	srvErrors "github.com/kubev2v/infra-validator/pkg/errors"
)

// CheckWorkBuilder builds one CheckWorkUnit per check of a suite. Each unit
// fetches its records from the sources and runs the validator.
type CheckWorkBuilder struct {
	infra     InfraSource
	backup    BackupSource
	infraErr  error
	backupErr error
	now       func() time.Time
}

// NewCheckWorkBuilder creates a builder. A nil source makes the checks that
// need it fail with NotConnectedError.
func NewCheckWorkBuilder(infra InfraSource, backup BackupSource) *CheckWorkBuilder {
	return &CheckWorkBuilder{
		infra:  infra,
		backup: backup,
		now:    time.Now,
	}
}

// WithConnectErrors records why a source is missing. Checks needing that
// source then fail with the recorded error instead of NotConnectedError.
func (b *CheckWorkBuilder) WithConnectErrors(infraErr, backupErr error) *CheckWorkBuilder {
	b.infraErr = infraErr
	b.backupErr = backupErr
	return b
}

// WithClock sets the reference time of the recency check.
func (b *CheckWorkBuilder) WithClock(now func() time.Time) *CheckWorkBuilder {
	b.now = now
	return b
}

func (b *CheckWorkBuilder) Build(suite models.Suite) []models.CheckWorkUnit {
	units := make([]models.CheckWorkUnit, 0, len(suite.Checks))
	for _, check := range suite.Checks {
		units = append(units, models.CheckWorkUnit{
			Check: check,
			Work:  b.work(check, suite),
		})
	}
	return units
}

func (b *CheckWorkBuilder) work(check compliance.Check, suite models.Suite) func(ctx context.Context) (*compliance.Report, error) {
	return func(ctx context.Context) (*compliance.Report, error) {
		zap.S().Named("suite_service").Infow("running check", "check", check, "suite", suite.Name)

		report, err := b.evaluate(ctx, check, suite)
		if err != nil {
			zap.S().Named("suite_service").Errorw("check failed", "check", check, "error", err)
			return nil, err
		}

		zap.S().Named("suite_service").Infow("check finished", "check", check, "total", report.Total, "violations", report.Count)
		return &report, nil
	}
}

func (b *CheckWorkBuilder) evaluate(ctx context.Context, check compliance.Check, suite models.Suite) (compliance.Report, error) {
	if check.IsBackup() {
		if b.backup == nil {
			if b.backupErr != nil {
				return compliance.Report{}, b.backupErr
			}
			return compliance.Report{}, srvErrors.NewNotConnectedError("backup client")
		}
		return b.evaluateBackup(ctx, check, suite)
	}
	if b.infra == nil {
		if b.infraErr != nil {
			return compliance.Report{}, b.infraErr
		}
		return compliance.Report{}, srvErrors.NewNotConnectedError("vcenter client")
	}
	return b.evaluateInfra(ctx, check, suite)
}

func (b *CheckWorkBuilder) evaluateInfra(ctx context.Context, check compliance.Check, suite models.Suite) (compliance.Report, error) {
	t := suite.Thresholds
	reports := make([]compliance.Report, 0, len(suite.Hosts))

	for _, host := range suite.Hosts {
		var report compliance.Report
		switch check {
		case compliance.CheckPlacement:
			if suite.Cluster == "" {
				return compliance.Report{}, srvErrors.NewConfigurationError("check %s requires a cluster", check)
			}
			member, err := b.infra.FindHostInCluster(ctx, suite.Cluster, host)
			if err != nil {
				return compliance.Report{}, err
			}
			if !member {
				return compliance.Report{}, fmt.Errorf("host %s is not a member of cluster %s", host, suite.Cluster)
			}
			assignments, err := b.infra.VMDatastoreAssignments(ctx, host)
			if err != nil {
				return compliance.Report{}, err
			}
			report = compliance.ValidatePlacement(assignments, suite.Cluster)
		case compliance.CheckCapacity:
			datastores, err := b.infra.DatastoreCapacity(ctx, host)
			if err != nil {
				return compliance.Report{}, err
			}
			report = compliance.ValidateCapacity(datastores, t.MinFreePercent)
		case compliance.CheckPerformanceTiers:
			assignments, err := b.infra.VMDatastoreAssignments(ctx, host)
			if err != nil {
				return compliance.Report{}, err
			}
			tiers, err := b.infra.DatastorePerformanceTiers(ctx, host)
			if err != nil {
				return compliance.Report{}, err
			}
			report = compliance.ValidatePerformanceTiers(assignments, tiers, t.CategoryTiers)
		case compliance.CheckSubscription:
			datastores, err := b.infra.DatastoreSubscription(ctx, host)
			if err != nil {
				return compliance.Report{}, err
			}
			report = compliance.ValidateSubscription(datastores, t.MaxSubscriptionRatio)
		default:
			return compliance.Report{}, fmt.Errorf("unknown check: %s", check)
		}
		reports = append(reports, report)
	}

	return compliance.Merge(check, reports...), nil
}

func (b *CheckWorkBuilder) evaluateBackup(ctx context.Context, check compliance.Check, suite models.Suite) (compliance.Report, error) {
	t := suite.Thresholds
	vms := suite.VMs

	switch check {
	case compliance.CheckBackupPolicy:
		policies, err := b.backup.Policies(ctx, vms)
		if err != nil {
			return compliance.Report{}, err
		}
		return compliance.ValidatePolicyApplied(policies, t.Criticality), nil
	case compliance.CheckBackupSchedule:
		schedules, err := b.backup.Schedules(ctx, vms)
		if err != nil {
			return compliance.Report{}, err
		}
		return compliance.ValidateScheduleRPO(schedules, t.RPOHours, t.Criticality), nil
	case compliance.CheckRetention:
		policies, err := b.backup.Retention(ctx, vms)
		if err != nil {
			return compliance.Report{}, err
		}
		return compliance.ValidateRetention(policies, t.Retention), nil
	case compliance.CheckJobStatus:
		jobs, err := b.backup.Jobs(ctx, vms, t.LookbackDays)
		if err != nil {
			return compliance.Report{}, err
		}
		return compliance.ValidateJobStatus(jobs), nil
	case compliance.CheckRecency:
		timestamps, err := b.backup.Timestamps(ctx, vms)
		if err != nil {
			return compliance.Report{}, err
		}
		return compliance.ValidateRecency(timestamps, t.MaxBackupAgeHours, b.now()), nil
	case compliance.CheckOffsiteReplication:
		replication, err := b.backup.Replication(ctx, vms)
		if err != nil {
			return compliance.Report{}, err
		}
		required := t.OffsiteRequired
		if len(required) == 0 {
			required = vms
		}
		return compliance.ValidateOffsiteReplication(replication, required), nil
	default:
		return compliance.Report{}, fmt.Errorf("unknown check: %s", check)
	}
}
