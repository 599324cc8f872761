package models_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/infra-validator/internal/models"
	"github.com/kubev2v/infra-validator/pkg/compliance"
)

var _ = Describe("Run", func() {
	var run *models.Run

	BeforeEach(func() {
		run = models.NewRun("nightly")
		run.State = models.RunStateCompleted
	})

	It("should start pending with a fresh id", func() {
		r := models.NewRun("nightly")

		Expect(r.State).To(Equal(models.RunStatePending))
		Expect(r.ID.String()).NotTo(BeEmpty())
		Expect(r.ID).NotTo(Equal(models.NewRun("nightly").ID))
	})

	It("should pass when every report is clean", func() {
		run.Results = []models.CheckResult{
			{Check: compliance.CheckCapacity, Report: &compliance.Report{Check: compliance.CheckCapacity, Total: 2}},
		}

		Expect(run.Passed()).To(BeTrue())
		Expect(models.FailOnWarning.Failed(run)).To(BeFalse())
	})

	// Given a run with one warning and one errored check
	// When evaluated against each fail-on level
	// Then errors count as critical and never always succeeds
	It("should apply fail-on levels", func() {
		// Arrange
		run.Results = []models.CheckResult{
			{Check: compliance.CheckSubscription, Report: &compliance.Report{
				Check:      compliance.CheckSubscription,
				Violations: []compliance.Violation{{Subject: "ds1", Severity: compliance.SeverityWarning}},
				Total:      1,
				Count:      1,
			}},
		}

		// Assert
		Expect(run.Warnings()).To(Equal(1))
		Expect(run.Critical()).To(Equal(0))
		Expect(models.FailOnCritical.Failed(run)).To(BeFalse())
		Expect(models.FailOnWarning.Failed(run)).To(BeTrue())

		run.Results = append(run.Results, models.CheckResult{Check: compliance.CheckRetention, Error: errors.New("boom")})
		Expect(run.Errored()).To(Equal(1))
		Expect(models.FailOnCritical.Failed(run)).To(BeTrue())
		Expect(models.FailOnNever.Failed(run)).To(BeFalse())
	})

	It("should parse states and fail-on values", func() {
		st, err := models.ParseRunState("completed")
		Expect(err).NotTo(HaveOccurred())
		Expect(st).To(Equal(models.RunStateCompleted))

		_, err = models.ParseRunState("done")
		Expect(err).To(HaveOccurred())

		_, err = models.ParseFailOn("sometimes")
		Expect(err).To(HaveOccurred())
	})
})
