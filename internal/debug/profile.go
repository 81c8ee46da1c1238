// Package debug provides profiling helpers: named timers, pprof captures to
// files, and an on-demand pprof HTTP server.
package debug

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	_ "net/http/pprof"
	"os"
	"runtime"
	"runtime/pprof"
	"time"
)

// Timer measures a named duration and reports it through slog
type Timer struct {
	name  string
	start time.Time
}

// StartTimer begins measuring
func StartTimer(name string) *Timer {
	return &Timer{name: name, start: time.Now()}
}

// Stop logs and returns the elapsed duration
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	slog.Info("timer stopped", "name", t.name, "elapsed", elapsed)
	return elapsed
}

// CPUProfile captures a CPU profile for the given duration and writes it to
// path. The context can end the capture early.
func CPUProfile(ctx context.Context, path string, duration time.Duration) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create profile file: %w", err)
	}
	defer f.Close()

	if err := pprof.StartCPUProfile(f); err != nil {
		return fmt.Errorf("failed to start cpu profile: %w", err)
	}

	select {
	case <-time.After(duration):
	case <-ctx.Done():
	}
	pprof.StopCPUProfile()

	slog.Info("cpu profile written", "path", path, "duration", duration)
	return nil
}

// HeapSnapshot writes the current heap profile to path
func HeapSnapshot(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create snapshot file: %w", err)
	}
	defer f.Close()

	runtime.GC()
	if err := pprof.WriteHeapProfile(f); err != nil {
		return fmt.Errorf("failed to write heap profile: %w", err)
	}

	slog.Info("heap snapshot written", "path", path)
	return nil
}

// Serve exposes the net/http/pprof handlers on addr until the context is
// cancelled
func Serve(ctx context.Context, addr string) error {
	server := &http.Server{Addr: addr, Handler: http.DefaultServeMux}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("pprof server listening", "addr", addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("pprof server shutdown failed: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("pprof server failed: %w", err)
	}
}
