package backup_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/infra-validator/pkg/backup"
	"github.com/kubev2v/infra-validator/pkg/compliance"
)

var _ = Describe("StubProvider", func() {
	var (
		ctx      context.Context
		now      time.Time
		provider *backup.StubProvider
		vms      []string
	)

	BeforeEach(func() {
		ctx = context.Background()
		now = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
		provider = backup.NewStubProvider(backup.WithClock(func() time.Time { return now }))
		vms = []string{"app-01", "db-01"}
	})

	It("should synthesize timestamps from the injected clock", func() {
		timestamps, err := provider.Timestamps(ctx, vms)
		Expect(err).NotTo(HaveOccurred())
		Expect(timestamps).To(HaveLen(2))
		Expect(timestamps[0].LastBackupTime).To(Equal("2025-03-10T00:00:00"))

		jobs, err := provider.Jobs(ctx, vms, 7)
		Expect(err).NotTo(HaveOccurred())
		Expect(jobs[1].JobID).To(Equal("job-db-01-001"))
		Expect(jobs[1].EndTime).To(Equal("2025-03-09T13:00:00"))

		replication, err := provider.Replication(ctx, vms)
		Expect(err).NotTo(HaveOccurred())
		Expect(replication[0].ReplicationTarget).To(Equal("DR-Site-01"))
		Expect(replication[0].LastReplicationTime).To(Equal("2025-03-10T06:00:00"))
	})

	// Given the stub records and the default thresholds
	// When every backup validator runs
	// Then no violation is reported
	It("should produce records that pass the default thresholds", func() {
		// Arrange
		policies, _ := provider.Policies(ctx, vms)
		schedules, _ := provider.Schedules(ctx, vms)
		retention, _ := provider.Retention(ctx, vms)
		jobs, _ := provider.Jobs(ctx, vms, 7)
		timestamps, _ := provider.Timestamps(ctx, vms)
		replication, _ := provider.Replication(ctx, vms)
		rpo := map[string]float64{"critical": 4, "high": 12, "medium": 24, "low": 48}

		// Act
		reports := []compliance.Report{
			compliance.ValidatePolicyApplied(policies, nil),
			compliance.ValidateScheduleRPO(schedules, rpo, nil),
			compliance.ValidateRetention(retention, compliance.RetentionThresholds{MinDaily: 7, MinWeekly: 4, MinMonthly: 3}),
			compliance.ValidateJobStatus(jobs),
			compliance.ValidateRecency(timestamps, 24, now),
			compliance.ValidateOffsiteReplication(replication, vms),
		}

		// Assert
		for _, r := range reports {
			Expect(r.Passed()).To(BeTrue(), string(r.Check))
			Expect(r.Total).To(Equal(2))
		}
	})
})
