package services_test

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/infra-validator/internal/models"
	"github.com/kubev2v/infra-validator/internal/services"
	"github.com/kubev2v/infra-validator/internal/store"
	"github.com/kubev2v/infra-validator/internal/store/migrations"
	"github.com/kubev2v/infra-validator/pkg/compliance"
	srvErrors "github.com/kubev2v/infra-validator/pkg/errors"
)

var _ = Describe("ReportService", func() {
	var (
		ctx context.Context
		db  *sql.DB
		st  *store.Store
		srv *services.ReportService
	)

	BeforeEach(func() {
		ctx = context.Background()

		var err error
		db, err = store.NewDB(":memory:")
		Expect(err).NotTo(HaveOccurred())
		Expect(migrations.Run(ctx, db)).To(Succeed())
		st = store.NewStore(db)
		srv = services.NewReportService(st)

		base := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
		for i := range 5 {
			run := models.NewRun("nightly")
			run.State = models.RunStateCompleted
			if i%2 == 1 {
				run.State = models.RunStateError
			}
			run.StartedAt = base.Add(time.Duration(i) * time.Hour)
			run.Results = []models.CheckResult{{
				Check:  compliance.CheckCapacity,
				Report: &compliance.Report{Check: compliance.CheckCapacity, Violations: []compliance.Violation{}},
			}}
			Expect(st.Runs().Save(ctx, run)).To(Succeed())
		}
	})

	AfterEach(func() {
		db.Close()
	})

	// Given five runs, two of them in error
	// When listing completed runs two at a time
	// Then the page holds two runs and the total ignores pagination
	It("should paginate and count with filters", func() {
		// Act
		result, err := srv.List(ctx, services.RunListParams{
			States: []models.RunState{models.RunStateCompleted},
			Limit:  2,
		})

		// Assert
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Runs).To(HaveLen(2))
		Expect(result.Total).To(Equal(3))
		Expect(result.Runs[0].StartedAt.After(result.Runs[1].StartedAt)).To(BeTrue())
	})

	It("should filter by check", func() {
		result, err := srv.List(ctx, services.RunListParams{Checks: []compliance.Check{compliance.CheckRetention}})

		Expect(err).NotTo(HaveOccurred())
		Expect(result.Runs).To(BeEmpty())
		Expect(result.Total).To(Equal(0))
	})

	It("should return ResourceNotFoundError for an unknown run", func() {
		_, err := srv.Get(ctx, uuid.New())

		Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
	})
})
