package backup

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kubev2v/infra-validator/pkg/compliance"
)

const timestampLayout = "2006-01-02T15:04:05"

// Provider is the backend that answers backup collectors.
type Provider interface {
	Policies(ctx context.Context, vms []string) ([]compliance.BackupPolicy, error)
	Schedules(ctx context.Context, vms []string) ([]compliance.BackupSchedule, error)
	Jobs(ctx context.Context, vms []string, lookbackDays int) ([]compliance.BackupJob, error)
	Retention(ctx context.Context, vms []string) ([]compliance.RetentionPolicy, error)
	Timestamps(ctx context.Context, vms []string) ([]compliance.BackupTimestamp, error)
	Replication(ctx context.Context, vms []string) ([]compliance.OffsiteReplication, error)
}

// StubProvider synthesizes compliant records for every VM. It stands in until
// a real backup product integration exists and logs a warning on every call.
type StubProvider struct {
	now func() time.Time
}

type StubOption func(*StubProvider)

// WithClock sets the time source used for synthesized timestamps.
func WithClock(now func() time.Time) StubOption {
	return func(p *StubProvider) {
		p.now = now
	}
}

func NewStubProvider(opts ...StubOption) *StubProvider {
	p := &StubProvider{now: time.Now}
	for _, o := range opts {
		o(p)
	}
	return p
}

func (p *StubProvider) warn(collector string, vms []string) {
	zap.S().Named("backup").Warnw("returning synthetic backup data, no backup product is integrated", "collector", collector, "vms", len(vms))
}

func (p *StubProvider) stamp(ago time.Duration) string {
	return p.now().Add(-ago).UTC().Format(timestampLayout)
}

func (p *StubProvider) Policies(_ context.Context, vms []string) ([]compliance.BackupPolicy, error) {
	p.warn("policies", vms)
	out := make([]compliance.BackupPolicy, 0, len(vms))
	for _, vm := range vms {
		out = append(out, compliance.BackupPolicy{
			VMName:         vm,
			PolicyName:     fmt.Sprintf("Policy-%s", vm),
			PolicyApplied:  true,
			BackupSoftware: "Veeam",
		})
	}
	return out, nil
}

func (p *StubProvider) Schedules(_ context.Context, vms []string) ([]compliance.BackupSchedule, error) {
	p.warn("schedules", vms)
	out := make([]compliance.BackupSchedule, 0, len(vms))
	for _, vm := range vms {
		out = append(out, compliance.BackupSchedule{
			VMName:       vm,
			ScheduleType: "Daily",
			ScheduleTime: "02:00",
			RPOHours:     24,
			Enabled:      true,
		})
	}
	return out, nil
}

func (p *StubProvider) Jobs(_ context.Context, vms []string, lookbackDays int) ([]compliance.BackupJob, error) {
	p.warn("jobs", vms)
	zap.S().Named("backup").Debugw("job lookback", "days", lookbackDays)
	out := make([]compliance.BackupJob, 0, len(vms))
	for _, vm := range vms {
		out = append(out, compliance.BackupJob{
			VMName:          vm,
			JobID:           fmt.Sprintf("job-%s-001", vm),
			Status:          "Success",
			StartTime:       p.stamp(24 * time.Hour),
			EndTime:         p.stamp(23 * time.Hour),
			DurationMinutes: 60,
			DataSizeGB:      50,
		})
	}
	return out, nil
}

func (p *StubProvider) Retention(_ context.Context, vms []string) ([]compliance.RetentionPolicy, error) {
	p.warn("retention", vms)
	out := make([]compliance.RetentionPolicy, 0, len(vms))
	for _, vm := range vms {
		out = append(out, compliance.RetentionPolicy{
			VMName:           vm,
			PolicyName:       fmt.Sprintf("Policy-%s", vm),
			DailyRetention:   7,
			WeeklyRetention:  4,
			MonthlyRetention: 12,
			YearlyRetention:  7,
		})
	}
	return out, nil
}

func (p *StubProvider) Timestamps(_ context.Context, vms []string) ([]compliance.BackupTimestamp, error) {
	p.warn("timestamps", vms)
	out := make([]compliance.BackupTimestamp, 0, len(vms))
	for _, vm := range vms {
		out = append(out, compliance.BackupTimestamp{
			VMName:         vm,
			LastBackupTime: p.stamp(12 * time.Hour),
			BackupAgeHours: 12,
		})
	}
	return out, nil
}

func (p *StubProvider) Replication(_ context.Context, vms []string) ([]compliance.OffsiteReplication, error) {
	p.warn("replication", vms)
	out := make([]compliance.OffsiteReplication, 0, len(vms))
	for _, vm := range vms {
		out = append(out, compliance.OffsiteReplication{
			VMName:              vm,
			ReplicationEnabled:  true,
			ReplicationTarget:   "DR-Site-01",
			LastReplicationTime: p.stamp(6 * time.Hour),
			ReplicationStatus:   "Success",
		})
	}
	return out, nil
}
