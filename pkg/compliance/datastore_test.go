package compliance_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/infra-validator/pkg/compliance"
)

var _ = Describe("Datastore validators", func() {
	Context("ValidatePlacement", func() {
		// Given VMs on supported datastores
		// When we validate placement
		// Then no violation should be reported
		It("should pass VMs placed on supported datastore types", func() {
			// Arrange
			assignments := []compliance.VMAssignment{
				{VMName: "app01", Datastores: []compliance.DatastoreRef{{Name: "ds-vmfs", Type: "VMFS"}}},
				{VMName: "app02", Datastores: []compliance.DatastoreRef{{Name: "ds-vsan", Type: "vSAN"}, {Name: "ds-nfs", Type: "NFS"}}},
			}

			// Act
			report := compliance.ValidatePlacement(assignments, "cluster-a")

			// Assert
			Expect(report.Check).To(Equal(compliance.CheckPlacement))
			Expect(report.Violations).To(BeEmpty())
			Expect(report.Total).To(Equal(2))
			Expect(report.Count).To(Equal(0))
			Expect(report.Passed()).To(BeTrue())
		})

		// Given a VM with no datastore and a VM on an unsupported type
		// When we validate placement
		// Then the first should be critical and the second a warning
		It("should flag missing datastores as critical and unsupported types as warnings", func() {
			// Arrange
			assignments := []compliance.VMAssignment{
				{VMName: "orphan"},
				{VMName: "local", Datastores: []compliance.DatastoreRef{{Name: "LocalDS_0", Type: "OTHER"}}},
			}

			// Act
			report := compliance.ValidatePlacement(assignments, "cluster-a")

			// Assert
			Expect(report.Count).To(Equal(2))
			Expect(report.Violations[0].Subject).To(Equal("orphan"))
			Expect(report.Violations[0].Severity).To(Equal(compliance.SeverityCritical))
			Expect(report.Violations[0].Reason).To(Equal("VM has no datastores assigned"))
			Expect(report.Violations[1].Severity).To(Equal(compliance.SeverityWarning))
			Expect(report.Violations[1].Reason).To(Equal("Unsupported datastore type: OTHER"))
			Expect(report.Violations[1].Details).To(HaveKeyWithValue("cluster", "cluster-a"))
			Expect(report.Critical()).To(Equal(1))
			Expect(report.Warnings()).To(Equal(1))
		})

		It("should never accept the Unknown sentinel as a datastore type", func() {
			report := compliance.ValidatePlacement([]compliance.VMAssignment{
				{VMName: "vm", Datastores: []compliance.DatastoreRef{{Name: "ds", Type: compliance.Unknown}}},
			}, "c")

			Expect(report.Count).To(Equal(1))
		})
	})

	Context("ValidateCapacity", func() {
		// Given datastores on, below and above the free space threshold
		// When we validate capacity with a 20% minimum
		// Then only the datastore strictly below should be reported
		It("should flag only datastores strictly below the threshold", func() {
			// Arrange
			datastores := []compliance.DatastoreCapacity{
				{Name: "exact", FreePercent: 20, Accessible: true},
				{Name: "low", FreePercent: 15.5, Accessible: true},
				{Name: "plenty", FreePercent: 70, Accessible: true},
			}

			// Act
			report := compliance.ValidateCapacity(datastores, 20)

			// Assert
			Expect(report.Total).To(Equal(3))
			Expect(report.Count).To(Equal(1))
			Expect(report.Violations[0].Subject).To(Equal("low"))
			Expect(report.Violations[0].Severity).To(Equal(compliance.SeverityWarning))
			Expect(report.Violations[0].Reason).To(Equal("Free capacity (15.5%) below threshold (20%)"))
		})

		It("should flag inaccessible datastores as critical regardless of free space", func() {
			report := compliance.ValidateCapacity([]compliance.DatastoreCapacity{
				{Name: "gone", FreePercent: 90, Accessible: false},
			}, 20)

			Expect(report.Count).To(Equal(1))
			Expect(report.Violations[0].Severity).To(Equal(compliance.SeverityCritical))
			Expect(report.Violations[0].Reason).To(Equal("Datastore is not accessible"))
		})
	})

	Context("ValidatePerformanceTiers", func() {
		var (
			tiers      []compliance.DatastoreTier
			categories []compliance.CategoryTier
		)

		BeforeEach(func() {
			tiers = []compliance.DatastoreTier{
				{Name: "ssd-01", Tier: compliance.TierHighPerformance},
				{Name: "std-01", Tier: compliance.TierStandardPerformance},
				{Name: "archive-01", Tier: compliance.TierArchive},
			}
			categories = []compliance.CategoryTier{
				{Category: "db", Tier: compliance.TierHighPerformance},
				{Category: "bkp", Tier: compliance.TierArchive},
			}
		})

		// Given a database VM on an archive datastore
		// When we validate performance tiers
		// Then it should be reported as a tier mismatch
		It("should flag VMs on ARCHIVE when a better tier is required", func() {
			// Arrange
			assignments := []compliance.VMAssignment{
				{VMName: "prod-db-01", Datastores: []compliance.DatastoreRef{{Name: "archive-01"}}},
			}

			// Act
			report := compliance.ValidatePerformanceTiers(assignments, tiers, categories)

			// Assert
			Expect(report.Count).To(Equal(1))
			Expect(report.Violations[0].Reason).To(Equal("VM requires HIGH_PERFORMANCE but is on ARCHIVE"))
			Expect(report.Violations[0].Severity).To(Equal(compliance.SeverityWarning))
		})

		// Given VMs on tiers higher or lower than required but not ARCHIVE
		// When we validate performance tiers
		// Then they should be tolerated
		It("should tolerate VMs on non-archive tiers", func() {
			// Arrange
			assignments := []compliance.VMAssignment{
				{VMName: "web-01", Datastores: []compliance.DatastoreRef{{Name: "ssd-01"}}},
				{VMName: "db-02", Datastores: []compliance.DatastoreRef{{Name: "std-01"}}},
				{VMName: "bkp-01", Datastores: []compliance.DatastoreRef{{Name: "archive-01"}}},
			}

			// Act
			report := compliance.ValidatePerformanceTiers(assignments, tiers, categories)

			// Assert
			Expect(report.Violations).To(BeEmpty())
			Expect(report.Total).To(Equal(3))
		})

		// Given a VM whose first disk is on SSD and second disk on archive
		// When we validate performance tiers
		// Then the archive datastore should be reported
		It("should check every datastore of a VM", func() {
			// Arrange
			assignments := []compliance.VMAssignment{
				{VMName: "app-01", Datastores: []compliance.DatastoreRef{{Name: "ssd-01"}, {Name: "archive-01"}}},
			}

			// Act
			report := compliance.ValidatePerformanceTiers(assignments, tiers, categories)

			// Assert
			Expect(report.Count).To(Equal(1))
			Expect(report.Violations[0].Subject).To(Equal("app-01"))
			Expect(report.Violations[0].Reason).To(Equal("VM requires STANDARD_PERFORMANCE but is on ARCHIVE"))
			Expect(report.Violations[0].Details).To(HaveKeyWithValue("datastore", "archive-01"))
		})

		It("should flag datastores whose tier is unknown", func() {
			report := compliance.ValidatePerformanceTiers([]compliance.VMAssignment{
				{VMName: "web-01", Datastores: []compliance.DatastoreRef{{Name: "not-classified"}}},
			}, tiers, categories)

			Expect(report.Count).To(Equal(1))
			Expect(report.Violations[0].Reason).To(ContainSubstring("could not be determined"))
		})

		It("should skip VMs without datastores", func() {
			report := compliance.ValidatePerformanceTiers([]compliance.VMAssignment{{VMName: "orphan"}}, tiers, categories)

			Expect(report.Violations).To(BeEmpty())
			Expect(report.Total).To(Equal(1))
		})
	})

	Context("ValidateSubscription", func() {
		It("should flag only ratios strictly above the maximum", func() {
			// Arrange
			datastores := []compliance.DatastoreSubscription{
				{Name: "at-limit", Ratio: 1.5},
				{Name: "over", Ratio: 2.25, CapacityGB: 100, ProvisionedGB: 225},
			}

			// Act
			report := compliance.ValidateSubscription(datastores, 1.5)

			// Assert
			Expect(report.Count).To(Equal(1))
			Expect(report.Violations[0].Subject).To(Equal("over"))
			Expect(report.Violations[0].Reason).To(Equal("Subscription ratio (2.25:1) exceeds maximum (1.5:1)"))
		})

		It("should fail datastores whose ratio contradicts or lacks a capacity", func() {
			datastores := []compliance.DatastoreSubscription{
				{Name: "empty", Ratio: 0},
				{Name: "no-capacity", Ratio: 0, ProvisionedGB: 40},
				{Name: "uncollected", Ratio: compliance.UnknownRatio},
				{Name: "zero-but-full", Ratio: 0, CapacityGB: 10, ProvisionedGB: 30},
			}

			report := compliance.ValidateSubscription(datastores, 1.5)

			Expect(report.Count).To(Equal(3))
			Expect(report.Violations[0].Subject).To(Equal("no-capacity"))
			Expect(report.Violations[0].Severity).To(Equal(compliance.SeverityCritical))
			Expect(report.Violations[1].Subject).To(Equal("uncollected"))
			Expect(report.Violations[1].Severity).To(Equal(compliance.SeverityCritical))
			Expect(report.Violations[2].Subject).To(Equal("zero-but-full"))
			Expect(report.Violations[2].Reason).To(Equal("Subscription ratio (3:1) exceeds maximum (1.5:1)"))
		})
	})
})
