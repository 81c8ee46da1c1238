// Package optimize implements `devinit optimize`: ccache setup, CPU-tuned
// compiler flags, bytecode precompilation, and binary stripping.
package optimize

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/msandoval/devinit/internal/config"
	"github.com/msandoval/devinit/internal/executor"
	optimizer "github.com/msandoval/devinit/internal/optimize"
	"github.com/msandoval/devinit/internal/output"
	"github.com/msandoval/devinit/internal/sysinfo"
	"github.com/msandoval/devinit/internal/util"
)

// NewOptimizeCmd creates the optimize command
func NewOptimizeCmd() *cobra.Command {
	var (
		pythonExec   string
		libDir       string
		skipBytecode bool
		skipStrip    bool
	)

	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Optimize the container's toolchain and runtime",
		Long: `Configure ccache, apply CPU-tuned compiler flags, precompile
interpreter bytecode, and strip debug symbols from shared objects.

Each step is reported individually; a failed step does not stop the
remaining ones.`,
		Example: `  # Run every optimization step
  devinit optimize

  # Skip the slow stripping pass
  devinit optimize --skip-strip

  # Optimize a specific interpreter
  devinit optimize --python /usr/local/bin/python3 --lib /usr/local/lib/python3.12`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOptimize(cmd, pythonExec, libDir, skipBytecode, skipStrip)
		},
	}

	cmd.Flags().StringVar(&pythonExec, "python", "", "python executable to optimize (default $PYTHON_EXEC)")
	cmd.Flags().StringVar(&libDir, "lib", "", "library directory for bytecode and stripping")
	cmd.Flags().BoolVar(&skipBytecode, "skip-bytecode", false, "skip bytecode precompilation")
	cmd.Flags().BoolVar(&skipStrip, "skip-strip", false, "skip binary stripping")

	return cmd
}

func runOptimize(cmd *cobra.Command, pythonExec, libDir string, skipBytecode, skipStrip bool) error {
	ctx := cmd.Context()
	executor.HookProcessExit()

	manager := config.NewManager(viper.GetString("config"))
	cfg, err := manager.Load()
	if err != nil {
		return util.WrapErrorf(err, "failed to load configuration")
	}

	if pythonExec == "" {
		pythonExec = os.Getenv("PYTHON_EXEC")
	}

	var results []output.TaskResult

	results = append(results, step("ccache", func() error {
		_, err := optimizer.SetupCcache(ctx, cfg.Build, cfg.Runtime)
		return err
	}))

	results = append(results, step("compiler-flags", func() error {
		features := sysinfo.CPUFeatures(ctx)
		optimizer.ApplyCompilerFlags(features)
		return nil
	}))

	results = append(results, step("runtime-env", func() error {
		optimizer.HardenRuntimeEnv(cfg.Runtime)
		return nil
	}))

	results = append(results, step("gpu-env", func() error {
		return sysinfo.SetupGPUEnv(cfg.Build)
	}))

	if !skipBytecode {
		results = append(results, step("bytecode", func() error {
			return runBytecode(ctx, pythonExec, libDir)
		}))
	}

	if !skipStrip {
		results = append(results, step("strip", func() error {
			return runStrip(ctx, libDir)
		}))
	}

	format := output.ParseFormat(viper.GetString("output"))
	formatter := output.NewFormatter(format, output.WithNoColor(viper.GetBool("no-color")), output.WithWide(true))
	if err := formatter.FormatResults(os.Stdout, results); err != nil {
		return err
	}

	if summary := output.Summarize(results); summary.Failed > 0 {
		return fmt.Errorf("%d of %d optimization steps failed", summary.Failed, summary.Total)
	}
	return nil
}

// step runs one optimization stage and captures its timing
func step(name string, fn func() error) output.TaskResult {
	start := time.Now()
	err := fn()
	if err != nil {
		slog.Error("optimization step failed", "step", name, "error", err)
	}
	return output.TaskResult{Name: name, Err: err, Duration: time.Since(start)}
}

func runBytecode(ctx context.Context, pythonExec, libDir string) error {
	if pythonExec == "" {
		slog.Warn("no python executable configured, skipping bytecode compilation")
		return nil
	}
	if libDir == "" {
		return util.WrapErrorf(util.ErrInvalidConfig, "--lib is required for bytecode compilation")
	}
	return optimizer.CompileBytecode(ctx, pythonExec, libDir)
}

func runStrip(ctx context.Context, libDir string) error {
	if libDir == "" {
		slog.Warn("no library directory configured, skipping binary stripping")
		return nil
	}
	_, err := optimizer.StripBinaries(ctx, executor.Default(), libDir)
	return err
}
