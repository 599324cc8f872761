// Package services implements the business logic layer of infra-validator.
//
// Services sit between the handlers or CLI commands and the data sources:
// the vCenter client, the backup client, the inventory workbook and the run
// store.
//
// # Service Dependency Graph
//
//	Handlers / CLI
//	    │
//	    ▼
//	Services Layer
//	    ├── SuiteService ─────► CheckWorkBuilder, Scheduler, Store, PrivilegeValidator
//	    ├── ReportService ────► Store
//	    └── InventoryService ─► inventory workbook (excelize)
//
//	CheckWorkBuilder ─► InfraSource (vmware.Client), BackupSource (backup.Client)
//
// # SuiteService
//
// SuiteService runs a suite: one work unit per check, executed on a
// scheduler with NumWorkers workers. Results are collected in check order
// regardless of completion order.
//
//	┌─────────┐   Run()   ┌─────────┐          ┌───────────┐
//	│ pending │──────────►│ running │─────────►│ completed │
//	└─────────┘           └─────────┘          └───────────┘
//	                           │
//	                           │ missing privileges, canceled context,
//	                           │ scheduler failure
//	                           ▼
//	                      ┌─────────┐
//	                      │  error  │
//	                      └─────────┘
//
// A check that fails to collect its data is recorded as an errored result
// and does not stop the other checks. The run is saved when it starts and
// again when it finishes, when a store is configured.
//
// # CheckWorkBuilder
//
// Infrastructure checks run once per suite host and merge the per-host
// reports. Backup checks run on the suite VMs. The performance tier and
// placement checks also need the suite cluster.
//
// # ReportService
//
// ReportService reads the run history with filters on state, suite and
// check plus limit and offset. Total ignores pagination.
//
// # InventoryService
//
// InventoryService opens the workbook on every call so edits made outside
// the process are seen. Writes are serialized.
package services
