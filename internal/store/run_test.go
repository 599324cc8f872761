package store_test

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/infra-validator/internal/models"
	"github.com/kubev2v/infra-validator/internal/store"
	"github.com/kubev2v/infra-validator/internal/store/migrations"
	"github.com/kubev2v/infra-validator/pkg/compliance"
	srvErrors "github.com/kubev2v/infra-validator/pkg/errors"
)

func newRun(suite string, state models.RunState, started time.Time) *models.Run {
	run := models.NewRun(suite)
	run.State = state
	run.StartedAt = started
	run.FinishedAt = started.Add(time.Minute)
	run.Results = []models.CheckResult{
		{
			Check: compliance.CheckCapacity,
			Report: &compliance.Report{
				Check: compliance.CheckCapacity,
				Violations: []compliance.Violation{
					{Subject: "ds1", Reason: "low free space", Severity: compliance.SeverityCritical, Details: map[string]any{"freePercent": 12.5}},
				},
				Total: 3,
				Count: 1,
			},
		},
		{Check: compliance.CheckRetention, Error: errors.New("backup client is not connected")},
	}
	return run
}

var _ = Describe("RunStore", func() {
	var (
		ctx  context.Context
		s    *store.Store
		db   *sql.DB
		base time.Time
	)

	BeforeEach(func() {
		ctx = context.Background()
		base = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

		var err error
		db, err = store.NewDB(":memory:")
		Expect(err).NotTo(HaveOccurred())

		err = migrations.Run(ctx, db)
		Expect(err).NotTo(HaveOccurred())

		s = store.NewStore(db)
	})

	AfterEach(func() {
		if db != nil {
			db.Close()
		}
	})

	Context("Get", func() {
		// Given an empty store
		// When we get a random run id
		// Then it should return a ResourceNotFoundError
		It("should return ResourceNotFoundError for an unknown run", func() {
			// Act
			_, err := s.Runs().Get(ctx, uuid.New())

			// Assert
			Expect(err).To(HaveOccurred())
			Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
		})

		// Given a saved run with a report and an errored check
		// When we get it back
		// Then results keep their order, reports and errors
		It("should round trip a run with its results", func() {
			// Arrange
			run := newRun("nightly", models.RunStateCompleted, base)
			Expect(s.Runs().Save(ctx, run)).To(Succeed())

			// Act
			got, err := s.Runs().Get(ctx, run.ID)

			// Assert
			Expect(err).NotTo(HaveOccurred())
			Expect(got.ID).To(Equal(run.ID))
			Expect(got.Suite).To(Equal("nightly"))
			Expect(got.State).To(Equal(models.RunStateCompleted))
			Expect(got.Error).To(BeNil())
			Expect(got.StartedAt).To(BeTemporally("==", base))
			Expect(got.FinishedAt).To(BeTemporally("==", base.Add(time.Minute)))
			Expect(got.Results).To(HaveLen(2))

			Expect(got.Results[0].Check).To(Equal(compliance.CheckCapacity))
			Expect(got.Results[0].Error).To(BeNil())
			Expect(got.Results[0].Report.Total).To(Equal(3))
			Expect(got.Results[0].Report.Count).To(Equal(1))
			Expect(got.Results[0].Report.Violations[0].Subject).To(Equal("ds1"))
			Expect(got.Results[0].Report.Violations[0].Severity).To(Equal(compliance.SeverityCritical))
			Expect(got.Results[0].Report.Violations[0].Details).To(HaveKeyWithValue("freePercent", 12.5))

			Expect(got.Results[1].Check).To(Equal(compliance.CheckRetention))
			Expect(got.Results[1].Report).To(BeNil())
			Expect(got.Results[1].Error).To(MatchError("backup client is not connected"))
		})
	})

	Context("Save", func() {
		// Given a pending run saved without results
		// When it is saved again after completion
		// Then the stored row and results are replaced
		It("should replace a run saved twice", func() {
			// Arrange
			run := models.NewRun("nightly")
			Expect(s.Runs().Save(ctx, run)).To(Succeed())

			// Act
			completed := newRun("nightly", models.RunStateCompleted, base)
			completed.ID = run.ID
			Expect(s.Runs().Save(ctx, completed)).To(Succeed())
			Expect(s.Runs().Save(ctx, completed)).To(Succeed())

			// Assert
			got, err := s.Runs().Get(ctx, run.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.State).To(Equal(models.RunStateCompleted))
			Expect(got.Results).To(HaveLen(2))

			count, err := s.Runs().Count(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(1))
		})

		It("should keep zero timestamps empty", func() {
			run := models.NewRun("adhoc")
			run.State = models.RunStateError
			run.Error = errors.New("vcenter unreachable")
			Expect(s.Runs().Save(ctx, run)).To(Succeed())

			got, err := s.Runs().Get(ctx, run.ID)

			Expect(err).NotTo(HaveOccurred())
			Expect(got.StartedAt.IsZero()).To(BeTrue())
			Expect(got.FinishedAt.IsZero()).To(BeTrue())
			Expect(got.Error).To(MatchError("vcenter unreachable"))
			Expect(got.Results).To(BeEmpty())
		})
	})

	Context("List", func() {
		var first, second, third *models.Run

		BeforeEach(func() {
			first = newRun("nightly", models.RunStateCompleted, base)
			second = newRun("nightly", models.RunStateError, base.Add(time.Hour))
			second.Results = []models.CheckResult{{Check: compliance.CheckPlacement, Report: &compliance.Report{Check: compliance.CheckPlacement, Violations: []compliance.Violation{}}}}
			third = newRun("adhoc", models.RunStateCompleted, base.Add(2*time.Hour))

			for _, r := range []*models.Run{first, second, third} {
				Expect(s.Runs().Save(ctx, r)).To(Succeed())
			}
		})

		It("should sort newest first", func() {
			runs, err := s.Runs().List(ctx, store.WithDefaultSort())

			Expect(err).NotTo(HaveOccurred())
			Expect(runs).To(HaveLen(3))
			Expect(runs[0].ID).To(Equal(third.ID))
			Expect(runs[1].ID).To(Equal(second.ID))
			Expect(runs[2].ID).To(Equal(first.ID))
		})

		// Given three runs across two suites
		// When filtering by state and suite
		// Then only matching runs are listed and counted
		It("should filter by state and suite", func() {
			// Act
			runs, err := s.Runs().List(ctx, store.ByStates(models.RunStateCompleted), store.BySuite("nightly"))

			// Assert
			Expect(err).NotTo(HaveOccurred())
			Expect(runs).To(HaveLen(1))
			Expect(runs[0].ID).To(Equal(first.ID))

			count, err := s.Runs().Count(ctx, store.ByStates(models.RunStateCompleted))
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(2))
		})

		It("should filter by executed check", func() {
			runs, err := s.Runs().List(ctx, store.ByChecks(compliance.CheckPlacement))

			Expect(err).NotTo(HaveOccurred())
			Expect(runs).To(HaveLen(1))
			Expect(runs[0].ID).To(Equal(second.ID))
		})

		It("should filter by start time", func() {
			count, err := s.Runs().Count(ctx, store.ByStartedAfter(base.Add(30*time.Minute)))

			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(2))
		})

		It("should paginate", func() {
			runs, err := s.Runs().List(ctx, store.WithDefaultSort(), store.WithLimit(1), store.WithOffset(1))

			Expect(err).NotTo(HaveOccurred())
			Expect(runs).To(HaveLen(1))
			Expect(runs[0].ID).To(Equal(second.ID))
			Expect(runs[0].Results).To(HaveLen(1))
		})

		It("should ignore empty filters", func() {
			count, err := s.Runs().Count(ctx, store.ByStates(), store.BySuite(), store.ByChecks())

			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(3))
		})
	})
})
