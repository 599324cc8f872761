package compliance_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/infra-validator/pkg/compliance"
)

var _ = Describe("Tiers", func() {
	DescribeTable("ClassifyTier",
		func(name, storageType string, expected compliance.Tier) {
			Expect(compliance.ClassifyTier(name, storageType)).To(Equal(expected))
		},
		Entry("ssd in name", "prod-SSD-01", "VMFS", compliance.TierHighPerformance),
		Entry("nvme in name", "nvme-pool", "VMFS", compliance.TierHighPerformance),
		Entry("tier1 in name", "gold-tier1", "NFS", compliance.TierHighPerformance),
		Entry("archive in name", "archive-vol", "NFS", compliance.TierArchive),
		Entry("backup in name", "backup-target", "NFS", compliance.TierArchive),
		Entry("plain vsan", "vsanDatastore", "vsan", compliance.TierStandardPerformance),
		Entry("high wins over archive", "flash-archive", "VMFS", compliance.TierHighPerformance),
	)

	Context("RequiredTier", func() {
		It("should use the first matching category in declaration order", func() {
			categories := []compliance.CategoryTier{
				{Category: "db", Tier: compliance.TierHighPerformance},
				{Category: "dbarch", Tier: compliance.TierArchive},
			}

			Expect(compliance.RequiredTier("PROD-DBARCH-01", categories)).To(Equal(compliance.TierHighPerformance))
		})

		It("should default to standard performance", func() {
			Expect(compliance.RequiredTier("web01", nil)).To(Equal(compliance.TierStandardPerformance))
		})
	})

	Context("ParseCheck", func() {
		It("should parse known checks and reject unknown ones", func() {
			c, err := compliance.ParseCheck(" Retention ")
			Expect(err).NotTo(HaveOccurred())
			Expect(c).To(Equal(compliance.CheckRetention))
			Expect(c.IsBackup()).To(BeTrue())

			_, err = compliance.ParseCheck("firewall")
			Expect(err).To(HaveOccurred())
		})
	})
})
