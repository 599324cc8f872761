package vmware

import (
	"context"
	"fmt"

	"github.com/vmware/govmomi/vim25/mo"
	"github.com/vmware/govmomi/vim25/types"
	"go.uber.org/zap"

	"github.com/kubev2v/infra-validator/internal/util"
	"github.com/kubev2v/infra-validator/pkg/compliance"
)

// FindHostInCluster reports whether a member of cluster is named host, exactly
// or as a substring. An unknown cluster is an error.
func (c *Client) FindHostInCluster(ctx context.Context, cluster, host string) (bool, error) {
	if err := c.connected(); err != nil {
		return false, err
	}

	cl, err := c.findCluster(ctx, cluster)
	if err != nil {
		return false, err
	}

	var members []mo.HostSystem
	if err := c.retrieve(ctx, cl.Host, []string{"name"}, &members); err != nil {
		return false, fmt.Errorf("failed to retrieve hosts of cluster %s: %w", cluster, err)
	}

	names := make([]string, 0, len(members))
	for _, m := range members {
		names = append(names, m.Name)
	}
	if matchName(names, host) >= 0 {
		return true, nil
	}

	zap.S().Named("vcenter").Warnw("host not found in cluster", "cluster", cluster, "host", host)
	return false, nil
}

// VMDatastoreAssignments lists the VMs registered on host with the datastores
// each one uses. VMs without a configuration (e.g. orphaned) are skipped.
func (c *Client) VMDatastoreAssignments(ctx context.Context, host string) ([]compliance.VMAssignment, error) {
	h, err := c.hostSystem(ctx, host, "vm")
	if err != nil {
		return nil, err
	}

	var vms []mo.VirtualMachine
	if err := c.retrieve(ctx, h.Vm, []string{"name", "config.version", "runtime.powerState", "datastore"}, &vms); err != nil {
		return nil, fmt.Errorf("failed to retrieve VMs of host %s: %w", host, err)
	}

	var dsRefs []types.ManagedObjectReference
	for _, vm := range vms {
		dsRefs = append(dsRefs, vm.Datastore...)
	}
	datastores, err := c.datastoreSummaries(ctx, dsRefs)
	if err != nil {
		return nil, err
	}

	assignments := []compliance.VMAssignment{}
	for _, vm := range vms {
		if vm.Config == nil {
			continue
		}
		a := compliance.VMAssignment{
			VMName:     vm.Name,
			PowerState: string(vm.Runtime.PowerState),
			Datastores: []compliance.DatastoreRef{},
		}
		for _, ref := range vm.Datastore {
			ds, ok := datastores[ref.Value]
			if !ok {
				a.Datastores = append(a.Datastores, compliance.DatastoreRef{Name: compliance.Unknown, Type: compliance.Unknown})
				continue
			}
			a.Datastores = append(a.Datastores, compliance.DatastoreRef{
				Name: ds.Summary.Name,
				Type: util.StringOr(ds.Summary.Type, compliance.Unknown),
			})
		}
		assignments = append(assignments, a)
	}

	return assignments, nil
}

// DatastoreCapacity reports size and free space of every datastore mounted on host.
func (c *Client) DatastoreCapacity(ctx context.Context, host string) ([]compliance.DatastoreCapacity, error) {
	datastores, err := c.hostDatastores(ctx, host)
	if err != nil {
		return nil, err
	}

	out := make([]compliance.DatastoreCapacity, 0, len(datastores))
	for _, ds := range datastores {
		total := util.BytesToGB(ds.Summary.Capacity)
		free := util.BytesToGB(ds.Summary.FreeSpace)
		used := util.Round(total - free)
		out = append(out, compliance.DatastoreCapacity{
			Name:        ds.Summary.Name,
			Type:        util.StringOr(ds.Summary.Type, compliance.Unknown),
			TotalGB:     total,
			FreeGB:      free,
			UsedGB:      used,
			UsedPercent: util.Percent(used, total),
			FreePercent: util.Percent(free, total),
			Accessible:  ds.Summary.Accessible,
		})
	}
	return out, nil
}

// DatastorePerformanceTiers classifies every datastore mounted on host.
func (c *Client) DatastorePerformanceTiers(ctx context.Context, host string) ([]compliance.DatastoreTier, error) {
	datastores, err := c.hostDatastores(ctx, host)
	if err != nil {
		return nil, err
	}

	out := make([]compliance.DatastoreTier, 0, len(datastores))
	for _, ds := range datastores {
		storageType := util.StringOr(ds.Summary.Type, compliance.Unknown)
		out = append(out, compliance.DatastoreTier{
			Name:        ds.Summary.Name,
			StorageType: storageType,
			Tier:        compliance.ClassifyTier(ds.Summary.Name, storageType),
		})
	}
	return out, nil
}

// DatastoreSubscription compares the provisioned size of the virtual disks
// stored on each datastore of host with its capacity.
func (c *Client) DatastoreSubscription(ctx context.Context, host string) ([]compliance.DatastoreSubscription, error) {
	datastores, err := c.hostDatastores(ctx, host, "vm")
	if err != nil {
		return nil, err
	}

	out := make([]compliance.DatastoreSubscription, 0, len(datastores))
	for _, ds := range datastores {
		var vms []mo.VirtualMachine
		if err := c.retrieve(ctx, ds.Vm, []string{"config.hardware.device"}, &vms); err != nil {
			return nil, fmt.Errorf("failed to retrieve VMs of datastore %s: %w", ds.Summary.Name, err)
		}

		var provisioned int64
		for _, vm := range vms {
			if vm.Config == nil {
				continue
			}
			provisioned += disksOnDatastore(vm.Config.Hardware.Device, ds.Self, ds.Summary.Name)
		}

		capacity := util.BytesToGB(ds.Summary.Capacity)
		provisionedGB := util.BytesToGB(provisioned)
		ratio := compliance.UnknownRatio
		if capacity > 0 {
			ratio = util.Ratio(provisionedGB, capacity)
		}
		out = append(out, compliance.DatastoreSubscription{
			Name:          ds.Summary.Name,
			CapacityGB:    capacity,
			ProvisionedGB: provisionedGB,
			Ratio:         ratio,
		})
	}
	return out, nil
}

// disksOnDatastore sums the capacity of the disks whose backing file lives on
// the datastore identified by ref or, failing that, by name.
func disksOnDatastore(devices []types.BaseVirtualDevice, ref types.ManagedObjectReference, name string) int64 {
	var total int64
	for _, d := range devices {
		disk, ok := d.(*types.VirtualDisk)
		if !ok {
			continue
		}
		backing, ok := disk.Backing.(types.BaseVirtualDeviceFileBackingInfo)
		if !ok {
			continue
		}
		file := backing.GetVirtualDeviceFileBackingInfo()
		onDatastore := file.Datastore != nil && file.Datastore.Value == ref.Value
		if file.Datastore == nil {
			onDatastore = datastoreFromPath(file.FileName) == name
		}
		if onDatastore {
			total += diskBytes(disk)
		}
	}
	return total
}

func (c *Client) hostSystem(ctx context.Context, host string, props ...string) (*mo.HostSystem, error) {
	if err := c.connected(); err != nil {
		return nil, err
	}

	ref, err := c.findHost(ctx, host)
	if err != nil {
		return nil, err
	}

	var h mo.HostSystem
	if err := c.gc.RetrieveOne(ctx, ref, append([]string{"name"}, props...), &h); err != nil {
		return nil, fmt.Errorf("failed to retrieve host %s: %w", host, err)
	}
	return &h, nil
}

func (c *Client) hostDatastores(ctx context.Context, host string, props ...string) ([]mo.Datastore, error) {
	h, err := c.hostSystem(ctx, host, "datastore")
	if err != nil {
		return nil, err
	}

	var datastores []mo.Datastore
	if err := c.retrieve(ctx, h.Datastore, append([]string{"summary"}, props...), &datastores); err != nil {
		return nil, fmt.Errorf("failed to retrieve datastores of host %s: %w", host, err)
	}
	return datastores, nil
}

func (c *Client) datastoreSummaries(ctx context.Context, refs []types.ManagedObjectReference) (map[string]mo.Datastore, error) {
	seen := map[string]bool{}
	var unique []types.ManagedObjectReference
	for _, r := range refs {
		if !seen[r.Value] {
			seen[r.Value] = true
			unique = append(unique, r)
		}
	}

	var datastores []mo.Datastore
	if err := c.retrieve(ctx, unique, []string{"summary"}, &datastores); err != nil {
		return nil, fmt.Errorf("failed to retrieve datastores: %w", err)
	}

	out := make(map[string]mo.Datastore, len(datastores))
	for _, ds := range datastores {
		out[ds.Self.Value] = ds
	}
	return out, nil
}
