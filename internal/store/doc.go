// Package store implements the run history of infra-validator on DuckDB.
//
// # Architecture Overview
//
//	┌─────────────────────────────────────────────────────────────────┐
//	│                         Store (facade)                          │
//	├─────────────────────────────────────────────────────────────────┤
//	│                           RunStore                              │
//	│                              ▼                                  │
//	│                    runs, check_results                          │
//	├─────────────────────────────────────────────────────────────────┤
//	│                       QueryInterceptor                          │
//	│                              ▼                                  │
//	│                           *sql.DB                               │
//	└─────────────────────────────────────────────────────────────────┘
//
// # Tables
//
// Created by the embedded migrations (internal/store/migrations/sql/):
//
//	┌────────────────────┬─────────────────────────────────────────────┐
//	│  Table             │  Purpose                                    │
//	├────────────────────┼─────────────────────────────────────────────┤
//	│  runs              │  One row per suite run (state, timestamps)  │
//	│  check_results     │  One row per check of a run, in run order   │
//	│  schema_migrations │  Migration version tracking                 │
//	└────────────────────┴─────────────────────────────────────────────┘
//
// check_results keeps the report counters in columns and the violations as
// JSON text, so listing and filtering never decode violations.
//
// # Initialization Flow
//
//	db, _ := store.NewDB(path)      // ":memory:" for tests
//	migrations.Run(ctx, db)         // creates runs, check_results
//	s := store.NewStore(db)
//
// # RunStore
//
// Methods:
//   - Save(ctx, run) → error, upserts the run and replaces its results in one transaction
//   - Get(ctx, id) → *models.Run, ResourceNotFoundError when unknown
//   - List(ctx, ...ListOption) → []models.Run with results
//   - Count(ctx, ...ListOption) → int
//
// # List Options
//
// Filter Options (empty arguments are ignored):
//
//   - ByIDs(ids ...uuid.UUID)
//   - ByStates(states ...models.RunState)
//   - BySuite(names ...string)
//   - ByChecks(checks ...compliance.Check)
//     SQL: runs.id IN (SELECT run_id FROM check_results WHERE check_name IN (...))
//   - ByStartedAfter(t time.Time)
//
// Pagination and sorting:
//
//   - WithLimit(limit uint64), WithOffset(offset uint64)
//   - WithDefaultSort() orders by started_at descending, then id.
//     Do not pass it to Count.
//
// # QueryInterceptor
//
// All statements, transactional ones included, go through a QueryInterceptor
// which logs them at debug level under the "store" logger.
package store
