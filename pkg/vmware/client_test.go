package vmware_test

import (
	"context"
	"crypto/tls"
	"net"
	"strconv"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/vmware/govmomi/simulator"

	"github.com/kubev2v/infra-validator/pkg/compliance"
	srvErrors "github.com/kubev2v/infra-validator/pkg/errors"
	"github.com/kubev2v/infra-validator/pkg/vmware"
)

func credentialsFor(s *simulator.Server) vmware.Credentials {
	port, err := strconv.Atoi(s.URL.Port())
	Expect(err).NotTo(HaveOccurred())
	password, _ := s.URL.User.Password()
	return vmware.Credentials{
		Host:     s.URL.Hostname(),
		Port:     port,
		Username: s.URL.User.Username(),
		Password: password,
		Insecure: true,
	}
}

var _ = Describe("Client", func() {
	var (
		ctx    context.Context
		model  *simulator.Model
		server *simulator.Server
	)

	BeforeEach(func() {
		ctx = context.Background()
		model = simulator.VPX()
		Expect(model.Create()).To(Succeed())
		model.Service.TLS = new(tls.Config)
		server = model.Service.NewServer()
	})

	AfterEach(func() {
		server.Close()
		model.Remove()
	})

	Context("Connect", func() {
		DescribeTable("should reject missing credentials before any network call",
			func(mutate func(*vmware.Credentials), field string) {
				// Arrange
				creds := credentialsFor(server)
				mutate(&creds)

				// Act
				_, err := vmware.Connect(ctx, creds)

				// Assert
				Expect(srvErrors.IsMissingCredentialError(err)).To(BeTrue())
				Expect(err.Error()).To(ContainSubstring(field))
			},
			Entry("empty host", func(c *vmware.Credentials) { c.Host = "" }, "host"),
			Entry("N/A username", func(c *vmware.Credentials) { c.Username = "N/A" }, "username"),
			Entry("blank password", func(c *vmware.Credentials) { c.Password = "  " }, "password"),
		)

		It("should return a connection error when the endpoint is unreachable", func() {
			// Arrange
			l, err := net.Listen("tcp", "127.0.0.1:0")
			Expect(err).NotTo(HaveOccurred())
			port := l.Addr().(*net.TCPAddr).Port
			Expect(l.Close()).To(Succeed())

			creds := credentialsFor(server)
			creds.Host = "127.0.0.1"
			creds.Port = port

			// Act
			_, err = vmware.Connect(ctx, creds)

			// Assert
			Expect(srvErrors.IsConnectionError(err)).To(BeTrue())
		})

		It("should open a session and verify it", func() {
			// Act
			client, err := vmware.Connect(ctx, credentialsFor(server))
			Expect(err).NotTo(HaveOccurred())
			defer client.Disconnect(ctx)

			// Assert
			Expect(client.SessionKey()).NotTo(BeEmpty())
			name, err := client.Verify(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(name).To(ContainSubstring("VMware"))
		})

		It("should refuse queries after Disconnect", func() {
			// Arrange
			client, err := vmware.Connect(ctx, credentialsFor(server))
			Expect(err).NotTo(HaveOccurred())
			Expect(client.Disconnect(ctx)).To(Succeed())

			// Act
			_, err = client.VMDetails(ctx, "DC0_H0_VM0")

			// Assert
			Expect(srvErrors.IsNotConnectedError(err)).To(BeTrue())
			Expect(client.Disconnect(ctx)).To(Succeed())
		})
	})

	Context("queries", func() {
		var client *vmware.Client

		BeforeEach(func() {
			var err error
			client, err = vmware.Connect(ctx, credentialsFor(server))
			Expect(err).NotTo(HaveOccurred())
		})

		AfterEach(func() {
			_ = client.Disconnect(ctx)
		})

		// Given a VM running in a cluster resource pool
		// When we collect its details
		// Then the cluster placement should name the cluster and the host
		It("should resolve the cluster placement of a clustered VM", func() {
			// Act
			detail, err := client.VMDetails(ctx, "DC0_C0_RP0_VM0")

			// Assert
			Expect(err).NotTo(HaveOccurred())
			Expect(detail.Name).To(Equal("DC0_C0_RP0_VM0"))
			Expect(detail.ClusterPlacement.ClusterName).To(Equal("DC0_C0"))
			Expect(detail.ClusterPlacement.ClusterID).NotTo(Equal(compliance.NA))
			Expect(detail.ClusterPlacement.HostName).To(HavePrefix("DC0_C0_H"))
			Expect(detail.Configuration.CPUCount).To(BeNumerically(">", 0))
			Expect(detail.Configuration.MemoryMB).To(BeNumerically(">", 0))
			for _, d := range detail.Disks {
				Expect(d.Provisioning).To(BeElementOf(vmware.ProvisioningThin, vmware.ProvisioningThick, vmware.ProvisioningUnknown))
			}
		})

		It("should report N/A cluster for a VM on a standalone host", func() {
			detail, err := client.VMDetails(ctx, "DC0_H0_VM0")

			Expect(err).NotTo(HaveOccurred())
			Expect(detail.ClusterPlacement.ClusterName).To(Equal(compliance.NA))
			Expect(detail.ClusterPlacement.ClusterID).To(Equal(compliance.NA))
			Expect(detail.ClusterPlacement.HostName).To(Equal("DC0_H0"))
		})

		It("should list available VMs when the VM is unknown", func() {
			_, err := client.VMDetails(ctx, "missing-vm")

			Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("DC0_H0_VM0"))
		})

		It("should find hosts in a cluster", func() {
			found, err := client.FindHostInCluster(ctx, "DC0_C0", "DC0_C0_H1")
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(BeTrue())

			found, err = client.FindHostInCluster(ctx, "DC0_C0", "DC0_H0")
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(BeFalse())

			_, err = client.FindHostInCluster(ctx, "no-such-cluster", "DC0_H0")
			Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
		})

		It("should list VM datastore assignments of a host", func() {
			// Act
			assignments, err := client.VMDatastoreAssignments(ctx, "DC0_H0")

			// Assert
			Expect(err).NotTo(HaveOccurred())
			Expect(assignments).To(HaveLen(2))
			names := []string{assignments[0].VMName, assignments[1].VMName}
			Expect(names).To(ConsistOf("DC0_H0_VM0", "DC0_H0_VM1"))
			for _, a := range assignments {
				Expect(a.Datastores).NotTo(BeEmpty())
				Expect(a.Datastores[0].Name).To(Equal("LocalDS_0"))
			}
		})

		It("should report datastore capacity, tiers and subscription", func() {
			capacity, err := client.DatastoreCapacity(ctx, "DC0_H0")
			Expect(err).NotTo(HaveOccurred())
			Expect(capacity).NotTo(BeEmpty())
			for _, ds := range capacity {
				Expect(ds.TotalGB).To(BeNumerically(">=", ds.FreeGB))
				Expect(ds.FreePercent).To(BeNumerically("<=", 100))
			}

			tiers, err := client.DatastorePerformanceTiers(ctx, "DC0_H0")
			Expect(err).NotTo(HaveOccurred())
			Expect(tiers).To(HaveLen(len(capacity)))
			Expect(tiers[0].Tier).To(Equal(compliance.ClassifyTier(tiers[0].Name, tiers[0].StorageType)))

			subscription, err := client.DatastoreSubscription(ctx, "DC0_H0")
			Expect(err).NotTo(HaveOccurred())
			Expect(subscription).To(HaveLen(len(capacity)))
			for _, ds := range subscription {
				Expect(ds.Ratio).To(BeNumerically(">=", 0))
			}
		})

		It("should fail datastore queries for an unknown host", func() {
			_, err := client.DatastoreCapacity(ctx, "esx-missing")

			Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("DC0_H0"))
		})
	})
})
