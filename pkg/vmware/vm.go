package vmware

import (
	"context"
	"reflect"
	"strings"

	"github.com/vmware/govmomi/vim25/mo"
	"github.com/vmware/govmomi/vim25/types"
	"go.uber.org/zap"

	"github.com/kubev2v/infra-validator/internal/util"
	"github.com/kubev2v/infra-validator/pkg/compliance"
)

const (
	ProvisioningThin    = "Thin Provisioned"
	ProvisioningThick   = "Thick Provisioned"
	ProvisioningUnknown = compliance.Unknown
)

type ClusterPlacement struct {
	ClusterName string `json:"cluster_name" yaml:"cluster_name"`
	ClusterID   string `json:"cluster_id" yaml:"cluster_id"`
	HostName    string `json:"host_name" yaml:"host_name"`
}

type Configuration struct {
	CPUCount        int32   `json:"cpu_count" yaml:"cpu_count"`
	CoresPerSocket  int32   `json:"cores_per_socket" yaml:"cores_per_socket"`
	MemoryMB        int32   `json:"memory_size_mb" yaml:"memory_size_mb"`
	MemoryGB        float64 `json:"memory_size_gb" yaml:"memory_size_gb"`
	HardwareVersion string  `json:"hardware_version" yaml:"hardware_version"`
}

type NetworkAdapter struct {
	Label       string `json:"label" yaml:"label"`
	Type        string `json:"type" yaml:"type"`
	NetworkName string `json:"network_name" yaml:"network_name"`
	MACAddress  string `json:"mac_address" yaml:"mac_address"`
}

type Disk struct {
	Label        string  `json:"label" yaml:"label"`
	CapacityGB   float64 `json:"capacity_gb" yaml:"capacity_gb"`
	Provisioning string  `json:"type" yaml:"type"`
}

// VMDetail is the placement, sizing and device summary of one VM.
type VMDetail struct {
	Name             string           `json:"name" yaml:"name"`
	ClusterPlacement ClusterPlacement `json:"cluster_placement" yaml:"cluster_placement"`
	Configuration    Configuration    `json:"configuration" yaml:"configuration"`
	NetworkAdapters  []NetworkAdapter `json:"network_adapters" yaml:"network_adapters"`
	Disks            []Disk           `json:"disk_configuration" yaml:"disk_configuration"`
}

// VMDetails returns the detail of the VM named vmName. The name must match exactly.
func (c *Client) VMDetails(ctx context.Context, vmName string) (*VMDetail, error) {
	if err := c.connected(); err != nil {
		return nil, err
	}

	logger := zap.S().Named("vcenter")
	logger.Debugw("searching for VM", "vm", vmName)

	ref, err := c.findVM(ctx, vmName)
	if err != nil {
		return nil, err
	}

	var vm mo.VirtualMachine
	if err := c.gc.RetrieveOne(ctx, ref, []string{"name", "config", "runtime"}, &vm); err != nil {
		logger.Errorw("failed to retrieve VM", "vm", vmName, "error", err)
		return nil, err
	}

	detail := &VMDetail{
		Name:             vm.Name,
		ClusterPlacement: c.clusterPlacement(ctx, vm.Runtime.Host),
		NetworkAdapters:  []NetworkAdapter{},
		Disks:            []Disk{},
	}

	if vm.Config != nil {
		hw := vm.Config.Hardware
		detail.Configuration = Configuration{
			CPUCount:        hw.NumCPU,
			CoresPerSocket:  hw.NumCoresPerSocket,
			MemoryMB:        hw.MemoryMB,
			MemoryGB:        util.MBToGB(hw.MemoryMB),
			HardwareVersion: vm.Config.Version,
		}
		detail.NetworkAdapters = networkAdapters(hw.Device)
		detail.Disks = disks(hw.Device)
	}

	logger.Infow("collected VM details", "vm", vmName, "host", detail.ClusterPlacement.HostName,
		"cluster", detail.ClusterPlacement.ClusterName, "nics", len(detail.NetworkAdapters), "disks", len(detail.Disks))

	return detail, nil
}

// clusterPlacement resolves the host and, when the host's parent is a
// cluster, the cluster of a VM. Failures degrade to N/A.
func (c *Client) clusterPlacement(ctx context.Context, hostRef *types.ManagedObjectReference) ClusterPlacement {
	p := ClusterPlacement{ClusterName: compliance.NA, ClusterID: compliance.NA, HostName: compliance.NA}
	if hostRef == nil {
		return p
	}

	logger := zap.S().Named("vcenter")

	var host mo.HostSystem
	if err := c.gc.RetrieveOne(ctx, *hostRef, []string{"name", "parent"}, &host); err != nil {
		logger.Warnw("error getting cluster placement", "host", hostRef.Value, "error", err)
		return p
	}
	p.HostName = host.Name

	if host.Parent == nil || host.Parent.Type != "ClusterComputeResource" {
		return p
	}

	var cluster mo.ClusterComputeResource
	if err := c.gc.RetrieveOne(ctx, *host.Parent, []string{"name"}, &cluster); err != nil {
		logger.Warnw("error getting cluster placement", "cluster", host.Parent.Value, "error", err)
		return p
	}
	p.ClusterName = cluster.Name
	p.ClusterID = host.Parent.Value

	return p
}

func networkAdapters(devices []types.BaseVirtualDevice) []NetworkAdapter {
	adapters := []NetworkAdapter{}
	for _, d := range devices {
		nic, ok := d.(types.BaseVirtualEthernetCard)
		if !ok {
			continue
		}
		card := nic.GetVirtualEthernetCard()

		network := compliance.Unknown
		switch b := card.Backing.(type) {
		case *types.VirtualEthernetCardNetworkBackingInfo:
			network = util.StringOr(b.DeviceName, compliance.Unknown)
		case *types.VirtualEthernetCardDistributedVirtualPortBackingInfo:
			network = util.StringOr(b.Port.PortgroupKey, compliance.Unknown)
		}

		adapters = append(adapters, NetworkAdapter{
			Label:       deviceLabel(card.DeviceInfo),
			Type:        deviceType(d),
			NetworkName: network,
			MACAddress:  card.MacAddress,
		})
	}
	return adapters
}

func disks(devices []types.BaseVirtualDevice) []Disk {
	out := []Disk{}
	for _, d := range devices {
		disk, ok := d.(*types.VirtualDisk)
		if !ok {
			continue
		}

		provisioning := ProvisioningUnknown
		if b, ok := disk.Backing.(*types.VirtualDiskFlatVer2BackingInfo); ok && b.ThinProvisioned != nil {
			provisioning = ProvisioningThick
			if *b.ThinProvisioned {
				provisioning = ProvisioningThin
			}
		}

		out = append(out, Disk{
			Label:        deviceLabel(disk.DeviceInfo),
			CapacityGB:   util.BytesToGB(diskBytes(disk)),
			Provisioning: provisioning,
		})
	}
	return out
}

func diskBytes(disk *types.VirtualDisk) int64 {
	if disk.CapacityInBytes > 0 {
		return disk.CapacityInBytes
	}
	return disk.CapacityInKB * 1024
}

func deviceLabel(info types.BaseDescription) string {
	if info == nil {
		return compliance.Unknown
	}
	return util.StringOr(info.GetDescription().Label, compliance.Unknown)
}

// deviceType is the concrete device kind without its "Virtual" prefix, e.g. "Vmxnet3".
func deviceType(d types.BaseVirtualDevice) string {
	t := reflect.TypeOf(d)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return strings.TrimPrefix(t.Name(), "Virtual")
}
