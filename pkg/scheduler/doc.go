// Package scheduler implements a typed worker pool for executing async work with futures.
//
// A Scheduler[T] owns a fixed pool of workers. Work submitted with AddWork
// returns a Future whose channel receives exactly one Result[T].
//
//	                AddWork(fn)
//	                     │
//	                     ▼
//	┌──────────────────────────────────────────┐
//	│ Work Queue (FIFO)  [w1] [w2] [w3] ...    │
//	└────────────────────┬─────────────────────┘
//	                     │ dispatch()
//	      ┌──────────────┼──────────────┐
//	      ▼              ▼              ▼
//	┌──────────┐   ┌──────────┐   ┌──────────┐
//	│ Worker 1 │   │ Worker 2 │   │ Worker N │
//	└────┬─────┘   └────┬─────┘   └────┬─────┘
//	     └──── idle ────┴──── idle ────┘
//	                     │
//	                     ▼
//	         worker returns to the pool
//
// The event loop handles three events: new work (queue and dispatch), an
// idle worker (return it to the pool and dispatch) and close.
//
// # Ordering
//
// With a single worker, work runs one item at a time in submission order.
// The suite runner relies on this to execute checks sequentially by default.
//
// # Cancellation
//
// Each work item runs with a context derived from the scheduler's main
// context:
//
//   - future.Stop() cancels one item;
//   - future.Wait(ctx) stops the item when ctx ends first;
//   - scheduler.Close() cancels every item.
//
// # Shutdown
//
// Close cancels the main context, fails every queued item with
// context.Canceled, waits for in-flight items and stops the event loop.
// AddWork after Close resolves immediately with context.Canceled. Close is
// idempotent.
//
// # Panic Recovery
//
// A panicking work function resolves its future with a "worker panicked"
// error and the worker returns to the pool.
//
// # Usage Example
//
//	sched := scheduler.NewScheduler[string](4)
//	defer sched.Close()
//
//	future := sched.AddWork(func(ctx context.Context) (string, error) {
//	    return "done", nil
//	})
//
//	result, err := future.Wait(ctx)
//	if err != nil {
//	    // ctx ended first
//	}
//	if result.Err != nil {
//	    // work failed
//	}
package scheduler
