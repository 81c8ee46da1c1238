package util

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

// SetupSignalHandler returns a context cancelled by SIGINT or SIGTERM so
// in-flight provisioning and optimization work can drain. A second signal
// skips the drain and exits immediately.
func SetupSignalHandler() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig.String())
		cancel()

		sig = <-sigCh
		slog.Warn("second signal, exiting without draining", "signal", sig.String())
		os.Exit(130)
	}()

	return ctx
}
