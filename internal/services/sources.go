package services

import (
	"context"

	"github.com/kubev2v/infra-validator/pkg/compliance"
)

// InfraSource is satisfied by *vmware.Client.
type InfraSource interface {
	FindHostInCluster(ctx context.Context, cluster, host string) (bool, error)
	VMDatastoreAssignments(ctx context.Context, host string) ([]compliance.VMAssignment, error)
	DatastoreCapacity(ctx context.Context, host string) ([]compliance.DatastoreCapacity, error)
	DatastorePerformanceTiers(ctx context.Context, host string) ([]compliance.DatastoreTier, error)
	DatastoreSubscription(ctx context.Context, host string) ([]compliance.DatastoreSubscription, error)
}

// PrivilegeValidator is satisfied by *vmware.Client.
type PrivilegeValidator interface {
	ValidateRootPrivileges(ctx context.Context, requiredPrivileges []string) error
}

// BackupSource is satisfied by *backup.Client and backup.Provider.
type BackupSource interface {
	Policies(ctx context.Context, vms []string) ([]compliance.BackupPolicy, error)
	Schedules(ctx context.Context, vms []string) ([]compliance.BackupSchedule, error)
	Jobs(ctx context.Context, vms []string, lookbackDays int) ([]compliance.BackupJob, error)
	Retention(ctx context.Context, vms []string) ([]compliance.RetentionPolicy, error)
	Timestamps(ctx context.Context, vms []string) ([]compliance.BackupTimestamp, error)
	Replication(ctx context.Context, vms []string) ([]compliance.OffsiteReplication, error)
}
