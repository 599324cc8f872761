package vmware

import (
	"context"
	"fmt"
	"strings"

	"github.com/vmware/govmomi/view"
	"github.com/vmware/govmomi/vim25/mo"
	"github.com/vmware/govmomi/vim25/types"

	srvErrors "github.com/kubev2v/infra-validator/pkg/errors"
)

// refFromMoid builds a reference of the given kind from a managed object ID
// without checking that the object exists.
func refFromMoid(kind, id string) types.ManagedObjectReference {
	return types.ManagedObjectReference{
		Type:  kind,
		Value: id,
	}
}

// retrieveAll loads props of every object of kind below the root folder into dst.
func (c *Client) retrieveAll(ctx context.Context, kind string, props []string, dst any) error {
	m := view.NewManager(c.gc.Client)

	v, err := m.CreateContainerView(ctx, c.gc.ServiceContent.RootFolder, []string{kind}, true)
	if err != nil {
		return fmt.Errorf("failed to create %s view: %w", kind, err)
	}
	defer func() {
		_ = v.Destroy(ctx)
	}()

	if err := v.Retrieve(ctx, []string{kind}, props, dst); err != nil {
		return fmt.Errorf("failed to retrieve %s objects: %w", kind, err)
	}
	return nil
}

func (c *Client) retrieve(ctx context.Context, refs []types.ManagedObjectReference, props []string, dst any) error {
	if len(refs) == 0 {
		return nil
	}
	return c.gc.Retrieve(ctx, refs, props, dst)
}

// findHost resolves a host by exact name first, then by substring.
func (c *Client) findHost(ctx context.Context, name string) (types.ManagedObjectReference, error) {
	var hosts []mo.HostSystem
	if err := c.retrieveAll(ctx, "HostSystem", []string{"name"}, &hosts); err != nil {
		return types.ManagedObjectReference{}, err
	}

	names := make([]string, 0, len(hosts))
	for _, h := range hosts {
		names = append(names, h.Name)
	}

	idx := matchName(names, name)
	if idx < 0 {
		return types.ManagedObjectReference{}, srvErrors.NewHostNotFoundError(name, names...)
	}
	return hosts[idx].Reference(), nil
}

func (c *Client) findCluster(ctx context.Context, name string) (*mo.ClusterComputeResource, error) {
	var clusters []mo.ClusterComputeResource
	if err := c.retrieveAll(ctx, "ClusterComputeResource", []string{"name", "host"}, &clusters); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(clusters))
	for i := range clusters {
		if clusters[i].Name == name {
			return &clusters[i], nil
		}
		names = append(names, clusters[i].Name)
	}
	return nil, srvErrors.NewClusterNotFoundError(name, names...)
}

func (c *Client) findVM(ctx context.Context, name string) (types.ManagedObjectReference, error) {
	var vms []mo.VirtualMachine
	if err := c.retrieveAll(ctx, "VirtualMachine", []string{"name"}, &vms); err != nil {
		return types.ManagedObjectReference{}, err
	}

	names := make([]string, 0, len(vms))
	for _, vm := range vms {
		if vm.Name == name {
			return vm.Reference(), nil
		}
		names = append(names, vm.Name)
	}
	return types.ManagedObjectReference{}, srvErrors.NewVMNotFoundError(name, names...)
}

// matchName returns the index of the exact match of want in names, else of
// the first name containing want, else -1.
func matchName(names []string, want string) int {
	for i, n := range names {
		if n == want {
			return i
		}
	}
	if want == "" {
		return -1
	}
	for i, n := range names {
		if strings.Contains(n, want) {
			return i
		}
	}
	return -1
}

// datastoreFromPath extracts "ds" from a "[ds] folder/file.vmdk" path.
func datastoreFromPath(path string) string {
	if !strings.HasPrefix(path, "[") {
		return ""
	}
	end := strings.Index(path, "]")
	if end < 0 {
		return ""
	}
	return path[1:end]
}
