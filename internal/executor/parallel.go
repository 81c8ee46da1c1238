package executor

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// DefaultPoolName is used when a Map caller leaves Options.Name empty
const DefaultPoolName = "default"

// Options configures a parallel map operation
type Options struct {
	// Name selects the registry pool; empty means DefaultPoolName
	Name string

	// Kind selects thread (I/O sizing) or process (CPU sizing) dispatch
	Kind Kind

	// Workers is the exact pool size; 0 auto-sizes by kind
	Workers int

	// Timeout bounds the whole batch; 0 waits indefinitely
	Timeout time.Duration

	// ChunkSize groups items per dispatched task for process pools.
	// Ignored for thread pools; values below 1 mean one item per task.
	ChunkSize int
}

// Outcome pairs one input item with its result or error
type Outcome[T, R any] struct {
	// Input is the item the function was applied to
	Input T

	// Value is the function's result (zero if Err is set)
	Value R

	// Err is the per-item failure, if any
	Err error
}

// TimeoutError reports a batch that did not finish within its timeout.
// Completed results are abandoned with the batch; the pool survives.
type TimeoutError struct {
	// Pool is the name of the pool the batch ran on
	Pool string

	// Timeout is the limit that elapsed
	Timeout time.Duration

	// Pending is how many tasks had not completed when the limit elapsed
	Pending int
}

// Error implements the error interface
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("parallel execution on pool %q timed out after %s with %d pending tasks",
		e.Pool, e.Timeout, e.Pending)
}

// Unwrap makes the error match context.DeadlineExceeded under errors.Is
func (e *TimeoutError) Unwrap() error {
	return context.DeadlineExceeded
}

// Map applies fn to every item using a named pool from the registry and
// returns the successful results in completion order, not submission order.
// Callers that need input-correlated output should submit (index, item)
// pairs or use MapResults.
//
// A per-item failure is logged and dropped; it never aborts the batch, so
// the result may be shorter than the input. An elapsed Options.Timeout
// aborts the whole batch with a *TimeoutError carrying the pending count:
// no partial results are returned and the pool remains usable. The pool is
// never shut down by Map itself.
//
// An empty input returns immediately without touching the registry.
func Map[T, R any](ctx context.Context, reg *Registry, fn func(context.Context, T) (R, error), items []T, opts Options) ([]R, error) {
	if len(items) == 0 {
		return []R{}, nil
	}

	if reg == nil {
		reg = Default()
	}

	outcomes, err := MapResults(ctx, reg, fn, items, opts)
	if err != nil {
		return nil, err
	}

	results := make([]R, 0, len(outcomes))
	failed := 0
	for _, oc := range outcomes {
		if oc.Err != nil {
			failed++
			continue
		}
		results = append(results, oc.Value)
	}

	if failed > 0 {
		reg.logger.Warn("tasks failed during parallel execution",
			"pool", poolName(opts),
			"failed", failed,
			"total", len(outcomes))
	}

	return results, nil
}

// MapResults is Map with the full per-item records preserved: every input
// appears exactly once in the output, paired with its value or error, in
// completion order. Timeout and pool-lifecycle semantics match Map.
func MapResults[T, R any](ctx context.Context, reg *Registry, fn func(context.Context, T) (R, error), items []T, opts Options) ([]Outcome[T, R], error) {
	if len(items) == 0 {
		return []Outcome[T, R]{}, nil
	}

	if ctx == nil {
		ctx = context.Background()
	}

	if reg == nil {
		reg = Default()
	}

	name := poolName(opts)
	pool, err := reg.GetOrCreate(name, opts.Kind, opts.Workers)
	if err != nil {
		return nil, err
	}

	batchCtx := ctx
	var cancel context.CancelFunc
	if opts.Timeout > 0 {
		batchCtx, cancel = context.WithTimeout(ctx, opts.Timeout)
	} else {
		batchCtx, cancel = context.WithCancel(ctx)
	}
	defer cancel()

	chunk := 1
	if pool.Kind() == KindProcess && opts.ChunkSize > 1 {
		chunk = opts.ChunkSize
	}

	total := len(items)

	// Buffered to the batch size so in-flight tasks finishing after a
	// timeout never block a worker.
	resCh := make(chan Outcome[T, R], total)

	go dispatch(batchCtx, pool, fn, items, chunk, resCh)

	outcomes := make([]Outcome[T, R], 0, total)
	for len(outcomes) < total {
		select {
		case oc := <-resCh:
			if oc.Err != nil {
				reg.logger.Error("task failed", "pool", name, "item", oc.Input, "error", oc.Err)
			}
			outcomes = append(outcomes, oc)

		case <-batchCtx.Done():
			if opts.Timeout > 0 && errors.Is(batchCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
				pending := total - len(outcomes)
				reg.logger.Error("parallel execution timed out",
					"pool", name,
					"timeout", opts.Timeout,
					"pending", pending)
				return nil, &TimeoutError{Pool: name, Timeout: opts.Timeout, Pending: pending}
			}
			return nil, fmt.Errorf("parallel execution on pool %q cancelled: %w", name, ctx.Err())
		}
	}

	return outcomes, nil
}

// dispatch submits one task per chunk of items. Cancellation stops further
// submission; items already handed to a worker run to completion in the
// background and their results land in the buffered channel.
func dispatch[T, R any](ctx context.Context, pool *Pool, fn func(context.Context, T) (R, error), items []T, chunk int, resCh chan<- Outcome[T, R]) {
	total := len(items)

	for start := 0; start < total; start += chunk {
		end := min(start+chunk, total)
		batch := items[start:end]

		task := func() {
			for _, item := range batch {
				if ctx.Err() != nil {
					return
				}
				value, err := runItem(ctx, fn, item)
				resCh <- Outcome[T, R]{Input: item, Value: value, Err: err}
			}
		}

		if err := pool.Submit(ctx, task); err != nil {
			// Nothing from this point on was dispatched; record the
			// remaining items so the collector can terminate.
			for _, item := range items[start:] {
				resCh <- Outcome[T, R]{Input: item, Err: fmt.Errorf("task not dispatched: %w", err)}
			}
			return
		}
	}
}

// runItem isolates a single application of fn, converting a panic into a
// recorded per-item error so one bad item cannot take down a worker.
func runItem[T, R any](ctx context.Context, fn func(context.Context, T) (R, error), item T) (value R, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task panicked: %v", r)
		}
	}()

	return fn(ctx, item)
}

func poolName(opts Options) string {
	if opts.Name == "" {
		return DefaultPoolName
	}
	return opts.Name
}
