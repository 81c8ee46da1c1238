package main

import (
	"log/slog"
	"os"

	"github.com/msandoval/devinit/internal/cli"
	"github.com/msandoval/devinit/internal/executor"
	"github.com/msandoval/devinit/internal/util"
)

func main() {
	// Setup signal handling for graceful shutdown
	ctx := util.SetupSignalHandler()

	// Worker pools are also torn down on SIGINT/SIGTERM
	executor.HookProcessExit()
	defer executor.Default().ShutdownAll()

	// Execute the CLI
	if err := cli.Execute(ctx); err != nil {
		slog.Error("command failed", "error", err)
		executor.Default().ShutdownAll()
		os.Exit(1)
	}
}
