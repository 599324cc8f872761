// Package compliance holds the rule validators and the record types they
// consume.
//
// Every validator is a pure function of its records and thresholds and
// returns a fresh Report. Reports are never shared between calls.
//
// # Validators
//
//	┌─────────────────────┬────────────────────────────┬─────────────────────────────────────────┐
//	│ Check               │ Function                   │ Violations                              │
//	├─────────────────────┼────────────────────────────┼─────────────────────────────────────────┤
//	│ placement           │ ValidatePlacement          │ no datastore (C), unsupported type (W)  │
//	│ capacity            │ ValidateCapacity           │ inaccessible (C), free% < min (W)       │
//	│ performance-tiers   │ ValidatePerformanceTiers   │ on ARCHIVE (W), tier unknown (W)        │
//	│ subscription        │ ValidateSubscription       │ ratio > max (W)                         │
//	│ backup-policy       │ ValidatePolicyApplied      │ no policy (C)                           │
//	│ backup-schedule     │ ValidateScheduleRPO        │ disabled (C), RPO > required (W)        │
//	│ retention           │ ValidateRetention          │ daily/weekly/monthly < min (W each)     │
//	│ job-status          │ ValidateJobStatus          │ status not success-like (C)             │
//	│ recency             │ ValidateRecency            │ unparseable (C), age > max (W)          │
//	│ offsite-replication │ ValidateOffsiteReplication │ disabled (C), no target (C), status (W) │
//	└─────────────────────┴────────────────────────────┴─────────────────────────────────────────┘
//
// A missing or disabled setting is critical (C). A value outside a numeric
// bound is a warning (W). Bounds are strict: a value equal to its limit passes.
//
// # Sentinels
//
// Collectors fill data they could not obtain with Unknown, N/A or None.
// DecodeRecords applies the same sentinels to fields missing from JSON or
// YAML input, so a sparse record fails the checks it cannot prove.
//
// # Report invariants
//
//	Report.Count == len(Report.Violations)
//	Report.Total == len(input records)
//
// ValidateOffsiteReplication evaluates only the VMs named in the required
// set, but Total still reflects the whole input.
package compliance
