package inventory_test

import (
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/xuri/excelize/v2"

	srvErrors "github.com/kubev2v/infra-validator/pkg/errors"
	"github.com/kubev2v/infra-validator/pkg/inventory"
)

func writeSheet(path, sheet string, rows [][]any) {
	f := excelize.NewFile()
	defer f.Close()

	Expect(f.SetSheetName("Sheet1", sheet)).To(Succeed())
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		Expect(err).NotTo(HaveOccurred())
		r := row
		Expect(f.SetSheetRow(sheet, cell, &r)).To(Succeed())
	}
	Expect(f.SaveAs(path)).To(Succeed())
}

var _ = Describe("Book", func() {
	var dir string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	Context("strict EDS lookup", func() {
		var path string

		BeforeEach(func() {
			path = filepath.Join(dir, "eds.xlsx")
			Expect(inventory.Generate(path, inventory.EDSLayout, inventory.SampleHosts())).To(Succeed())
		})

		// Given a generated EDS workbook
		// When we look up an existing hostname
		// Then all mapped attributes should be returned
		It("should return the host record", func() {
			// Arrange
			book, err := inventory.Open(path, inventory.EDSLayout, inventory.Strict)
			Expect(err).NotTo(HaveOccurred())
			defer book.Close()

			// Act
			host, err := book.Lookup("qa-db-01")

			// Assert
			Expect(err).NotTo(HaveOccurred())
			Expect(host.Hostname).To(Equal("qa-db-01"))
			Expect(host.IP).To(Equal("10.29.144.29"))
			Expect(host.Gateway).To(Equal("10.29.144.4"))
			Expect(host.RAM).To(Equal("128"))
			Expect(host.OSType).To(Equal("RHEL 9.6"))
			Expect(host.Teaming).To(Equal(inventory.NotAvailable))
			Expect(host.VCenterHost).To(Equal(inventory.NotAvailable))
		})

		// Given a generated EDS workbook
		// When we look up a hostname that is not in it
		// Then a not-found error listing the available hostnames is returned
		It("should fail with a descriptive not-found error", func() {
			// Arrange
			book, err := inventory.Open(path, inventory.EDSLayout, inventory.Strict)
			Expect(err).NotTo(HaveOccurred())

			// Act
			_, err = book.Lookup("qa-db")

			// Assert
			Expect(err).To(HaveOccurred())
			Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("qa-db"))
			Expect(err.Error()).To(ContainSubstring("qa-app-01"))
		})

		It("should fail when the workbook does not exist", func() {
			_, err := inventory.Open(filepath.Join(dir, "missing.xlsx"), inventory.EDSLayout, inventory.Strict)
			Expect(err).To(HaveOccurred())
		})

		It("should fail when the hostname column is missing", func() {
			// Arrange
			bad := filepath.Join(dir, "bad.xlsx")
			writeSheet(bad, "Server Requirements", [][]any{
				{"Host", "IP Assignment"},
				{"qa-db-01", "10.0.0.1"},
			})

			// Act
			_, err := inventory.Open(bad, inventory.EDSLayout, inventory.Strict)

			// Assert
			Expect(srvErrors.IsConfigurationError(err)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("Server Name"))
		})

		It("should fail when the host has no valid IP", func() {
			// Arrange
			noIP := filepath.Join(dir, "noip.xlsx")
			writeSheet(noIP, "Server Requirements", [][]any{
				{"Server Name", "IP Assignment"},
				{"qa-db-01", "10.0.0.???"},
			})
			book, err := inventory.Open(noIP, inventory.EDSLayout, inventory.Strict)
			Expect(err).NotTo(HaveOccurred())

			// Act
			_, err = book.Lookup("qa-db-01")

			// Assert
			Expect(srvErrors.IsConfigurationError(err)).To(BeTrue())
		})

		It("should match headers regardless of case and spacing", func() {
			// Arrange
			odd := filepath.Join(dir, "odd.xlsx")
			writeSheet(odd, "Server Requirements", [][]any{
				{" server name ", "ip assignment", "gateway"},
				{"web-01", "IP: 192.168.1.10", "192.168.1.1"},
			})
			book, err := inventory.Open(odd, inventory.EDSLayout, inventory.Strict)
			Expect(err).NotTo(HaveOccurred())

			// Act
			host, err := book.Lookup("web-01")

			// Assert
			Expect(err).NotTo(HaveOccurred())
			Expect(host.IP).To(Equal("192.168.1.10"))
			Expect(host.Gateway).To(Equal("192.168.1.1"))
		})
	})

	Context("lenient CBS lookup", func() {
		var path string

		BeforeEach(func() {
			path = filepath.Join(dir, "cbs.xlsx")
			writeSheet(path, "Server Requirements", [][]any{
				{"Use PSC Server Naming Convention to provide the Server Name", "IP Assignments", "Subnet", "CNAME"},
				{"ALHXVDVITAP01 (primary)", "10.29.144.26", "10.29.144.0/24", ""},
			})
		})

		// Given a CBS workbook whose hostname cell carries extra text
		// When we look up the hostname
		// Then the row should be matched case-insensitively as a substring
		It("should match hostnames as substrings and fill defaults", func() {
			// Arrange
			book, err := inventory.Open(path, inventory.CBSLayout, inventory.Lenient)
			Expect(err).NotTo(HaveOccurred())

			// Act
			host, err := book.Lookup("alhxvdvitap01")

			// Assert
			Expect(err).NotTo(HaveOccurred())
			Expect(host.IP).To(Equal("10.29.144.26"))
			Expect(host.Subnet).To(Equal("10.29.144.0/24"))
			Expect(host.Hostname).To(Equal("ALHXVDVITAP01 (primary)"))
			Expect(host.CNAME).To(Equal("ALHXVDVITAP01 (primary)"))
			Expect(host.Gateway).To(Equal("10.26.216.4"))
			Expect(host.Domain).To(Equal("gnscet.com"))
			Expect(host.RAM).To(Equal(inventory.NotAvailable))
		})

		// Given a CBS workbook
		// When we look up a prefix of a hostname
		// Then the matched row's hostname should be returned, not the prefix
		It("should report the matched row's hostname for partial searches", func() {
			// Arrange
			book, err := inventory.Open(path, inventory.CBSLayout, inventory.Lenient)
			Expect(err).NotTo(HaveOccurred())

			// Act
			host, err := book.Lookup("alhx")

			// Assert
			Expect(err).NotTo(HaveOccurred())
			Expect(host.Hostname).To(Equal("ALHXVDVITAP01 (primary)"))
			Expect(host.CNAME).To(Equal("ALHXVDVITAP01 (primary)"))
			Expect(host.IP).To(Equal("10.29.144.26"))
		})

		// Given a CBS workbook
		// When we look up a hostname that is not in it
		// Then the default record should be returned deterministically
		It("should return the default record for an unknown host", func() {
			// Arrange
			book, err := inventory.Open(path, inventory.CBSLayout, inventory.Lenient)
			Expect(err).NotTo(HaveOccurred())

			// Act
			first, err := book.Lookup("unknown-host")
			Expect(err).NotTo(HaveOccurred())
			second, err := book.Lookup("unknown-host")
			Expect(err).NotTo(HaveOccurred())

			// Assert
			Expect(first).To(Equal(second))
			Expect(first.Hostname).To(Equal("unknown-host"))
			Expect(first.CNAME).To(Equal("unknown-host"))
			Expect(first.IP).To(Equal("10.26.216.107"))
			Expect(first.Mask).To(Equal("255.255.255.0"))
		})

		It("should return defaults when the workbook is missing", func() {
			book, err := inventory.Open(filepath.Join(dir, "missing.xlsx"), inventory.CBSLayout, inventory.Lenient)
			Expect(err).NotTo(HaveOccurred())

			host, err := book.Lookup("any")
			Expect(err).NotTo(HaveOccurred())
			Expect(host.IP).To(Equal("10.26.216.107"))
			Expect(book.Hostnames()).To(BeEmpty())
		})
	})

	It("should reject an empty hostname in both modes", func() {
		book, err := inventory.Open("", inventory.CBSLayout, inventory.Lenient)
		Expect(err).NotTo(HaveOccurred())

		_, err = book.Lookup("  ")
		Expect(err).To(HaveOccurred())
	})
})
