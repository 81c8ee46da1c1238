// Package executor provides named, reusable worker pools and a parallel map
// operation built on top of them.
//
// Pools live in a Registry keyed by caller-chosen names. A pool is created
// lazily on first request, reused while alive, replaced once shut down, and
// released only by ShutdownAll or the process-exit hook. Callers never
// manage pool lifecycles directly.
//
// # Pool Kinds
//
// Two kinds exist as a closed set:
//
//   - KindThread sizes for I/O-bound work (cores*2 workers by default)
//   - KindProcess sizes for CPU-bound work (cores-1 workers by default)
//     and supports chunked dispatch via Options.ChunkSize
//
// Anything else is rejected with ErrInvalidKind at creation time.
//
// # Parallel Map
//
// Map fans a function out over a slice using a named pool and collects the
// successful results in completion order:
//
//	squares, err := executor.Map(ctx, reg,
//	    func(ctx context.Context, n int) (int, error) { return n * n, nil },
//	    []int{1, 2, 3, 4},
//	    executor.Options{Name: "math", Kind: executor.KindThread},
//	)
//
// Per-item failures are logged and dropped, so the output may be shorter
// than the input; use MapResults to keep every (input, value, error)
// record. A batch that outlives Options.Timeout fails whole with a
// *TimeoutError (no partial results) while the pool stays usable.
//
// # Sizing
//
// SizeWorkers maps a task classification to a worker count:
//
//	executor.SizeWorkers("cpu") // max(1, cores-1)
//	executor.SizeWorkers("io")  // cores*2
//	executor.SizeWorkers("")    // cores
//
// # Shutdown
//
// ShutdownAll is non-blocking and idempotent: it stops intake on every
// pool, logs (and swallows) individual failures, and clears the registry.
// HookProcessExit wires it to SIGINT/SIGTERM once per process; main
// programs should additionally defer it for the normal exit path.
//
// Cancellation is best-effort: queued-but-unstarted items are dropped,
// items already running finish in the background after the call returns.
package executor
