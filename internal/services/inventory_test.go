package services_test

import (
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/infra-validator/internal/services"
	srvErrors "github.com/kubev2v/infra-validator/pkg/errors"
	"github.com/kubev2v/infra-validator/pkg/inventory"
)

var _ = Describe("InventoryService", func() {
	var path string

	BeforeEach(func() {
		path = filepath.Join(GinkgoT().TempDir(), "eds.xlsx")
		Expect(inventory.Generate(path, inventory.EDSLayout, inventory.SampleHosts())).To(Succeed())
	})

	// Given a generated workbook
	// When a new host is upserted
	// Then the next lookup sees it
	It("should see upserted hosts on the next lookup", func() {
		// Arrange
		srv := services.NewInventoryService(path, inventory.EDSLayout, inventory.Strict)
		_, err := srv.Lookup("esx-new-01")
		Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())

		// Act
		created, err := srv.Upsert(inventory.HostConfig{Hostname: "esx-new-01", IP: "10.0.0.50"})

		// Assert
		Expect(err).NotTo(HaveOccurred())
		Expect(created).To(BeTrue())

		host, err := srv.Lookup("esx-new-01")
		Expect(err).NotTo(HaveOccurred())
		Expect(host.IP).To(Equal("10.0.0.50"))
	})

	It("should return defaults in lenient mode for a missing workbook", func() {
		srv := services.NewInventoryService(filepath.Join(GinkgoT().TempDir(), "absent.xlsx"), inventory.CBSLayout, inventory.Lenient)

		host, err := srv.Lookup("anything")

		Expect(err).NotTo(HaveOccurred())
		Expect(host.Hostname).To(Equal("anything"))
		Expect(host.Gateway).To(Equal("10.26.216.4"))
	})
})
