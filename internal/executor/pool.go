package executor

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"sync/atomic"
)

// Task type classifications understood by SizeWorkers
const (
	// TaskCPU marks compute-heavy work; sizing leaves one core for the system
	TaskCPU = "cpu"

	// TaskIO marks work dominated by waiting; sizing oversubscribes the cores
	TaskIO = "io"

	// TaskAuto marks unclassified work; sizing matches the core count
	TaskAuto = "auto"
)

// fallbackWorkers is used when core-count detection reports nothing usable
const fallbackWorkers = 4

// SizeWorkers returns the worker count for a task classification.
// "cpu" yields max(1, cores-1), "io" yields cores*2, anything else yields
// the core count. The result is never less than 1.
func SizeWorkers(taskType string) int {
	cores := runtime.NumCPU()
	if cores <= 0 {
		slog.Warn("cpu count detection failed, using fallback", "workers", fallbackWorkers)
		return fallbackWorkers
	}

	switch strings.ToLower(taskType) {
	case TaskCPU:
		if cores <= 1 {
			return 1
		}
		return cores - 1
	case TaskIO:
		return cores * 2
	default:
		return cores
	}
}

// Pool is a long-lived bounded worker pool owned by a Registry.
// Workers run until the pool is shut down; tasks are dispatched through an
// unbuffered channel so submission applies natural backpressure.
type Pool struct {
	// name is the registry key this pool was created under
	name string

	// kind determines sizing defaults and dispatch granularity
	kind Kind

	// workers is the number of concurrent workers, fixed at creation
	workers int

	// tasks carries queued work to the workers
	tasks chan func()

	// quit is closed on shutdown to release idle workers
	quit chan struct{}

	// closed flips once on shutdown
	closed atomic.Bool

	// logger for structured logging
	logger *slog.Logger
}

// newPool creates a pool and starts its workers
// workers must be > 0, otherwise it defaults to 1
func newPool(name string, kind Kind, workers int, logger *slog.Logger) *Pool {
	if workers <= 0 {
		workers = 1
	}

	if logger == nil {
		logger = slog.Default()
	}

	p := &Pool{
		name:    name,
		kind:    kind,
		workers: workers,
		tasks:   make(chan func()),
		quit:    make(chan struct{}),
		logger:  logger,
	}

	for i := 0; i < workers; i++ {
		go p.worker(i)
	}

	logger.Debug("pool created", "name", name, "kind", kind.String(), "workers", workers)

	return p
}

// worker pulls tasks until the pool shuts down
func (p *Pool) worker(workerID int) {
	for {
		select {
		case <-p.quit:
			p.logger.Debug("worker stopping", "pool", p.name, "worker_id", workerID)
			return
		case task := <-p.tasks:
			task()
		}
	}
}

// Submit enqueues a task for execution by the pool's workers.
// It blocks until a worker accepts the task, the context is done, or the
// pool shuts down.
func (p *Pool) Submit(ctx context.Context, task func()) error {
	if task == nil {
		return fmt.Errorf("pool %q: task must not be nil", p.name)
	}

	if p.closed.Load() {
		return fmt.Errorf("pool %q is shut down, cannot submit new tasks", p.name)
	}

	select {
	case p.tasks <- task:
		return nil
	case <-p.quit:
		return fmt.Errorf("pool %q shut down while submitting", p.name)
	case <-ctx.Done():
		return fmt.Errorf("pool %q: submission cancelled: %w", p.name, ctx.Err())
	}
}

// Shutdown stops the pool without waiting for in-flight tasks.
// Queued-but-unstarted tasks are dropped; running tasks finish in the
// background. Returns an error if the pool was already shut down.
func (p *Pool) Shutdown() error {
	if !p.closed.CompareAndSwap(false, true) {
		return fmt.Errorf("pool %q already shut down", p.name)
	}

	close(p.quit)
	p.logger.Debug("pool shut down", "name", p.name)

	return nil
}

// Alive reports whether the pool still accepts tasks
func (p *Pool) Alive() bool {
	return !p.closed.Load()
}

// Name returns the registry key the pool was created under
func (p *Pool) Name() string {
	return p.name
}

// Kind returns the pool's kind
func (p *Pool) Kind() Kind {
	return p.kind
}

// WorkerCount returns the number of workers in the pool
func (p *Pool) WorkerCount() int {
	return p.workers
}
