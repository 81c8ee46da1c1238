package sysinfo

import (
	"context"
	"log/slog"
	"runtime"

	"github.com/msandoval/devinit/internal/config"
)

// Resources is the aggregate hardware picture used to size builds and
// worker pools.
type Resources struct {
	// Cores is the physical core estimate used for compile jobs
	Cores int `json:"cores" yaml:"cores"`

	// Threads is the logical core count used for io-bound pools
	Threads int `json:"threads" yaml:"threads"`

	// RAMMb is total physical memory in megabytes
	RAMMb int `json:"ram_mb" yaml:"ram_mb"`

	// AvailableRAMMb is memory available for new workloads
	AvailableRAMMb int `json:"available_ram_mb" yaml:"available_ram_mb"`

	// Architecture is the machine architecture
	Architecture string `json:"architecture" yaml:"architecture"`

	// CPUFeatures holds detected instruction-set extensions
	CPUFeatures []string `json:"cpu_features" yaml:"cpu_features"`

	// CPUModel is the processor name, when detectable
	CPUModel string `json:"cpu_model,omitempty" yaml:"cpu_model,omitempty"`

	// GPU describes any detected accelerator
	GPU GPUInfo `json:"gpu" yaml:"gpu"`

	// BuildJobs is the parallelism to pass to build tools
	BuildJobs int `json:"build_jobs" yaml:"build_jobs"`
}

// DetectResources probes the host and applies any explicit overrides from
// the build configuration. Config values of zero mean "detect".
func DetectResources(ctx context.Context, buildCfg config.BuildConfig) Resources {
	cpu := GetCPUInfo(ctx)
	mem := GetMemoryInfo(ctx)

	res := Resources{
		Cores:          cpu.Count,
		Threads:        cpu.Count,
		RAMMb:          mem.TotalMB,
		AvailableRAMMb: mem.AvailableMB,
		Architecture:   runtime.GOARCH,
		CPUFeatures:    cpu.Features,
		CPUModel:       cpu.Model,
		GPU:            DetectGPU(ctx),
	}

	if buildCfg.Resources.DefaultCores > 0 {
		res.Cores = buildCfg.Resources.DefaultCores
	}
	if buildCfg.Resources.DefaultThreads > 0 {
		res.Threads = buildCfg.Resources.DefaultThreads
	}

	res.BuildJobs = buildCfg.Resources.BuildJobs
	if res.BuildJobs <= 0 {
		res.BuildJobs = buildJobsFor(res.Cores, res.AvailableRAMMb)
	}

	slog.Info("detected system resources",
		"cores", res.Cores,
		"threads", res.Threads,
		"ram_mb", res.RAMMb,
		"available_mb", res.AvailableRAMMb,
		"arch", res.Architecture,
		"gpu", res.GPU.Detected,
		"build_jobs", res.BuildJobs)

	return res
}

// buildJobsFor caps compile parallelism so each job has roughly 2 GB of
// memory to work with, never dropping below a single job.
func buildJobsFor(cores, availableMB int) int {
	jobs := cores
	if memJobs := availableMB / 2048; memJobs > 0 && memJobs < jobs {
		jobs = memJobs
	}
	if jobs < 1 {
		jobs = 1
	}
	return jobs
}
