package executor

import (
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// Registry is a process-local map of pool names to live pools.
// Pools are created lazily on first request and reused until shut down.
// The mutex guards only map bookkeeping; it is never held while a caller
// submits or waits on work.
type Registry struct {
	// mu guards pools
	mu sync.Mutex

	// pools maps a user-chosen name to its live pool
	pools map[string]*Pool

	// logger for structured logging
	logger *slog.Logger
}

// NewRegistry creates an empty registry
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}

	return &Registry{
		pools:  make(map[string]*Pool),
		logger: logger,
	}
}

// GetOrCreate returns the live pool registered under name, creating one if
// none exists. A pool that was already shut down is replaced; the stale
// entry gets a non-blocking shutdown and is discarded. workers of 0 selects
// the sizing heuristic for the kind's natural task type (thread pools size
// for I/O, process pools for CPU).
//
// An invalid kind fails here, synchronously, not at submission time.
func (r *Registry) GetOrCreate(name string, kind Kind, workers int) (*Pool, error) {
	if !kind.valid() {
		return nil, ErrInvalidKind
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if pool, ok := r.pools[name]; ok {
		if pool.Alive() {
			return pool, nil
		}

		// Stale entry: already shut down, replace it
		if err := pool.Shutdown(); err != nil {
			r.logger.Debug("stale pool was already shut down", "name", name)
		}
		delete(r.pools, name)
	}

	if workers <= 0 {
		workers = SizeWorkers(kind.taskType())
	}

	pool := newPool(name, kind, workers, r.logger)
	r.pools[name] = pool

	return pool, nil
}

// Get returns the pool registered under name, if any
func (r *Registry) Get(name string) (*Pool, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	pool, ok := r.pools[name]
	return pool, ok
}

// Len returns the number of registered pools
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.pools)
}

// ShutdownAll requests a non-blocking shutdown of every registered pool and
// clears the registry. Individual shutdown failures are logged, never
// propagated: cleanup must not abort process exit. Calling it on an empty
// registry is a no-op, so repeated invocation is safe.
func (r *Registry) ShutdownAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.pools) == 0 {
		return
	}

	r.logger.Debug("shutting down pools", "count", len(r.pools))

	for name, pool := range r.pools {
		if err := pool.Shutdown(); err != nil {
			r.logger.Warn("pool shutdown failed", "name", name, "error", err)
		}
	}

	r.pools = make(map[string]*Pool)
}

var (
	defaultRegistry *Registry
	defaultOnce     sync.Once
	hookOnce        sync.Once
)

// Default returns the process-wide registry, creating it on first use
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry(slog.Default())
	})
	return defaultRegistry
}

// HookProcessExit registers a once-only signal listener that releases every
// pool in the default registry when the process receives SIGINT or SIGTERM.
// Callers covering the normal exit path should also defer
// Default().ShutdownAll(); both invocations together are still safe because
// ShutdownAll is idempotent.
func HookProcessExit() {
	hookOnce.Do(func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

		go func() {
			sig := <-sigCh
			slog.Debug("releasing executor pools on signal", "signal", sig.String())
			Default().ShutdownAll()
		}()
	})
}
