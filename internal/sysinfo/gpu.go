package sysinfo

import (
	"context"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/msandoval/devinit/internal/config"
)

// GPUInfo describes a detected accelerator
type GPUInfo struct {
	// Detected reports whether any GPU was found
	Detected bool `json:"detected" yaml:"detected"`

	// Vendor is nvidia, amd or apple
	Vendor string `json:"vendor,omitempty" yaml:"vendor,omitempty"`

	// MemoryMB is the VRAM size in megabytes
	MemoryMB int `json:"memory_mb,omitempty" yaml:"memory_mb,omitempty"`
}

// DetectGPU probes for GPU hardware: nvidia-smi first, then rocm-smi,
// then system_profiler on darwin. Probe failures degrade to "no GPU".
func DetectGPU(ctx context.Context) GPUInfo {
	switch {
	case HasCommand("nvidia-smi"):
		if info, ok := detectNvidia(ctx); ok {
			return info
		}
	case HasCommand("rocm-smi"):
		if info, ok := detectAMD(ctx); ok {
			return info
		}
	case runtime.GOOS == "darwin" && HasCommand("system_profiler"):
		if info, ok := detectApple(ctx); ok {
			return info
		}
	}

	return GPUInfo{}
}

func detectNvidia(ctx context.Context) (GPUInfo, bool) {
	if RunCommandQuiet(ctx, "nvidia-smi", "-L") == "" {
		return GPUInfo{}, false
	}

	info := GPUInfo{Detected: true, Vendor: "nvidia"}

	out := RunCommandQuiet(ctx, "nvidia-smi", "--query-gpu=memory.total", "--format=csv,noheader")
	if fields := strings.Fields(out); len(fields) > 0 {
		if mb, err := strconv.Atoi(fields[0]); err == nil {
			info.MemoryMB = mb
		}
	}

	return info, true
}

func detectAMD(ctx context.Context) (GPUInfo, bool) {
	out := RunCommandQuiet(ctx, "rocm-smi", "--showmeminfo", "vram")
	if out == "" {
		return GPUInfo{}, false
	}

	info := GPUInfo{Detected: true, Vendor: "amd"}
	info.MemoryMB = parseROCmVRAM(out)

	return info, true
}

// parseROCmVRAM extracts the VRAM size from rocm-smi meminfo output
func parseROCmVRAM(output string) int {
	for _, line := range strings.Split(output, "\n") {
		if !strings.Contains(line, "GPU memory") {
			continue
		}
		_, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		fields := strings.Fields(value)
		if len(fields) == 0 {
			continue
		}
		if mb, err := strconv.Atoi(fields[0]); err == nil {
			return mb
		}
	}
	return 0
}

func detectApple(ctx context.Context) (GPUInfo, bool) {
	out := RunCommandQuiet(ctx, "system_profiler", "SPDisplaysDataType")
	if out == "" || (!strings.Contains(out, "Metal") && !strings.Contains(out, "Supported")) {
		return GPUInfo{}, false
	}

	info := GPUInfo{Detected: true, Vendor: "apple"}
	info.MemoryMB = parseAppleVRAM(out)

	return info, true
}

// parseAppleVRAM extracts the VRAM size from system_profiler output
func parseAppleVRAM(output string) int {
	for _, line := range strings.Split(output, "\n") {
		if !strings.Contains(line, "VRAM") {
			continue
		}
		_, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		fields := strings.Fields(value)
		if len(fields) == 0 {
			continue
		}
		if mb, err := strconv.Atoi(fields[0]); err == nil {
			return mb
		}
	}
	return 0
}

// SetupGPUEnv configures the process environment for GPU builds: CUDA
// binaries on PATH, library path, and the kernel cache directory and size
// from the build configuration.
func SetupGPUEnv(buildCfg config.BuildConfig) error {
	if cudaHome := os.Getenv("CUDA_HOME"); cudaHome != "" {
		os.Setenv("PATH", cudaHome+"/bin:"+os.Getenv("PATH"))
		os.Setenv("LD_LIBRARY_PATH", cudaHome+"/lib64:"+os.Getenv("LD_LIBRARY_PATH"))
	}

	gpuCache := buildCfg.Paths.GPUCache
	if gpuCache == "" {
		return nil
	}

	if err := os.MkdirAll(gpuCache, 0755); err != nil {
		return err
	}

	os.Setenv("CUDA_CACHE_PATH", gpuCache)

	maxSize := buildCfg.CUDA.CacheMaxSize
	if maxSize == "" {
		maxSize = "2147483648"
	}
	os.Setenv("CUDA_CACHE_MAXSIZE", maxSize)

	slog.Debug("gpu environment configured", "cache", gpuCache, "max_size", maxSize)
	return nil
}
