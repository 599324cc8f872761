package vmware

import (
	"context"
	"fmt"

	"github.com/vmware/govmomi/object"
	"github.com/vmware/govmomi/vim25"
	"github.com/vmware/govmomi/vim25/types"
)

// ValidateUserPrivilegesOnEntity checks whether the specified user has all the required privileges
// on a given vSphere entity (e.g., host, datastore, cluster).
func ValidateUserPrivilegesOnEntity(
	ctx context.Context,
	client *vim25.Client,
	ref types.ManagedObjectReference,
	requiredPrivileges []string,
	username string,
) error {
	authManager := object.NewAuthorizationManager(client)

	results, err := authManager.FetchUserPrivilegeOnEntities(ctx, []types.ManagedObjectReference{ref}, username)
	if err != nil {
		return fmt.Errorf("failed to fetch user privileges: %w", err)
	}

	if len(results) == 0 {
		return fmt.Errorf("no privileges returned for user %s", username)
	}

	granted := make(map[string]bool)
	for _, p := range results[0].Privileges {
		granted[p] = true
	}

	var missing []string
	for _, req := range requiredPrivileges {
		if !granted[req] {
			missing = append(missing, req)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("user %s is missing required privileges on %s %s: %v", username, ref.Type, ref.Value, missing)
	}

	return nil
}

// ValidatePrivileges checks the session user holds requiredPrivileges on the
// entity of the given kind (e.g. "Folder", "HostSystem") and moid.
func (c *Client) ValidatePrivileges(ctx context.Context, moid, kind string, requiredPrivileges []string) error {
	if err := c.connected(); err != nil {
		return err
	}
	return ValidateUserPrivilegesOnEntity(ctx, c.gc.Client, refFromMoid(kind, moid), requiredPrivileges, c.username)
}

// ValidateRootPrivileges checks requiredPrivileges on the inventory root folder.
func (c *Client) ValidateRootPrivileges(ctx context.Context, requiredPrivileges []string) error {
	if err := c.connected(); err != nil {
		return err
	}
	root := c.gc.ServiceContent.RootFolder
	return c.ValidatePrivileges(ctx, root.Value, root.Type, requiredPrivileges)
}
