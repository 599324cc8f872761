// Package vmware queries vCenter inventory through govmomi.
//
// A Client is created by Connect and owns one vCenter session until
// Disconnect. Queries resolve entities by name and fail with a
// ResourceNotFoundError that lists the names that were available:
//
//	┌──────────────────────────────┬──────────────────────────────────────────┐
//	│ Query                        │ Returns                                  │
//	├──────────────────────────────┼──────────────────────────────────────────┤
//	│ VMDetails                    │ placement, sizing, NICs and disks of a VM│
//	│ FindHostInCluster            │ whether a cluster member matches a host  │
//	│ VMDatastoreAssignments       │ datastores used by each VM of a host     │
//	│ DatastoreCapacity            │ size and free space per datastore        │
//	│ DatastorePerformanceTiers    │ inferred tier per datastore              │
//	│ DatastoreSubscription        │ provisioned/capacity ratio per datastore │
//	└──────────────────────────────┴──────────────────────────────────────────┘
//
// Hosts are matched by exact name first, then by substring. Calls are not
// retried.
package vmware
