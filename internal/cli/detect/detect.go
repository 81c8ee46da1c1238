// Package detect implements `devinit detect`: system resource discovery
// with table, JSON, and YAML output.
package detect

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/msandoval/devinit/internal/config"
	"github.com/msandoval/devinit/internal/output"
	"github.com/msandoval/devinit/internal/sysinfo"
	"github.com/msandoval/devinit/internal/util"
)

// NewDetectCmd creates the detect command
func NewDetectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "detect",
		Short: "Detect system resources",
		Long: `Probe the host for CPU cores, instruction-set extensions, memory,
and GPU hardware, and report the build parallelism derived from them.

Configured overrides (build.resources in the config file) take
precedence over detected values.`,
		Example: `  # Show detected resources as a table
  devinit detect

  # Machine-readable output
  devinit detect -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(cmd)
		},
	}

	return cmd
}

func runDetect(cmd *cobra.Command) error {
	manager := config.NewManager(viper.GetString("config"))
	cfg, err := manager.Load()
	if err != nil {
		return util.WrapErrorf(err, "failed to load configuration")
	}

	res := sysinfo.DetectResources(cmd.Context(), cfg.Build)

	format := output.ParseFormat(viper.GetString("output"))
	noColor := viper.GetBool("no-color")
	formatter := output.NewFormatter(format, output.WithNoColor(noColor))

	if format == output.FormatTable {
		return formatter.Format(os.Stdout, resourceMap(res))
	}
	return formatter.Format(os.Stdout, res)
}

// resourceMap flattens the detection result for the two-column table view
func resourceMap(res sysinfo.Resources) map[string]interface{} {
	m := map[string]interface{}{
		"cores":            res.Cores,
		"threads":          res.Threads,
		"ram_mb":           res.RAMMb,
		"available_ram_mb": res.AvailableRAMMb,
		"architecture":     res.Architecture,
		"cpu_features":     strings.Join(res.CPUFeatures, ", "),
		"build_jobs":       res.BuildJobs,
		"gpu":              res.GPU.Detected,
	}

	if res.CPUModel != "" {
		m["cpu_model"] = res.CPUModel
	}
	if res.GPU.Detected {
		m["gpu_vendor"] = res.GPU.Vendor
		if res.GPU.MemoryMB > 0 {
			m["gpu_memory"] = fmt.Sprintf("%d MB", res.GPU.MemoryMB)
		}
	}

	return m
}
