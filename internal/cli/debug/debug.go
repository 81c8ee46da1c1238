// Package debug implements `devinit debug`: a pprof HTTP server and timed
// profile captures.
package debug

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	profiler "github.com/msandoval/devinit/internal/debug"
)

// NewDebugCmd creates the debug parent command
func NewDebugCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "debug",
		Short: "Profiling and debugging helpers",
		Long: `Expose runtime profiling data while other devinit operations run,
or capture one-shot CPU and heap profiles to files.`,
		Example: `  # Serve pprof endpoints until interrupted
  devinit debug serve --addr localhost:6060

  # Capture a 30 second CPU profile
  devinit debug profile --cpu cpu.pprof --duration 30s

  # Capture a heap snapshot
  devinit debug profile --heap heap.pprof`,
	}

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newProfileCmd())

	return cmd
}

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve pprof endpoints over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return profiler.Serve(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "localhost:6060", "listen address for the pprof server")

	return cmd
}

func newProfileCmd() *cobra.Command {
	var (
		cpuPath  string
		heapPath string
		duration time.Duration
	)

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Capture CPU and heap profiles to files",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cpuPath == "" && heapPath == "" {
				return fmt.Errorf("nothing to capture: pass --cpu and/or --heap")
			}

			if cpuPath != "" {
				if err := profiler.CPUProfile(cmd.Context(), cpuPath, duration); err != nil {
					return err
				}
			}
			if heapPath != "" {
				if err := profiler.HeapSnapshot(heapPath); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&cpuPath, "cpu", "", "write a CPU profile to this file")
	cmd.Flags().StringVar(&heapPath, "heap", "", "write a heap snapshot to this file")
	cmd.Flags().DurationVar(&duration, "duration", 30*time.Second, "CPU profile capture duration")

	return cmd
}
