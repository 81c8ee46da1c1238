package sysinfo

import (
	"context"
	"log/slog"
	"os"
	"runtime"
	"strings"
)

// CPUInfo describes the processor
type CPUInfo struct {
	// Count is the number of logical cores
	Count int `json:"count" yaml:"count"`

	// Features holds instruction-set extensions (e.g. avx2, fma) plus the
	// base architecture tag (x86_64, arm64)
	Features []string `json:"features" yaml:"features"`

	// Architecture is the machine architecture
	Architecture string `json:"architecture" yaml:"architecture"`

	// Model is the marketing name of the processor, when detectable
	Model string `json:"model,omitempty" yaml:"model,omitempty"`
}

// CPUCount returns the number of logical cores, never less than 1
func CPUCount() int {
	count := runtime.NumCPU()
	if count < 1 {
		slog.Debug("cpu count detection failed, using 1")
		return 1
	}
	return count
}

// CPUFeatures detects the architecture tag and instruction-set extensions.
// Linux reads /proc/cpuinfo; darwin queries sysctl. Other platforms report
// only the architecture.
func CPUFeatures(ctx context.Context) []string {
	features := make([]string, 0, 4)

	switch runtime.GOARCH {
	case "amd64":
		features = append(features, "x86_64")
		features = append(features, amd64Extensions(ctx)...)
	case "arm64":
		features = append(features, "arm", "arm64")
	case "arm":
		features = append(features, "arm")
	default:
		features = append(features, runtime.GOARCH)
	}

	slog.Debug("detected cpu features", "features", features)
	return features
}

// amd64Extensions probes for avx2/fma support
func amd64Extensions(ctx context.Context) []string {
	switch runtime.GOOS {
	case "linux":
		data, err := os.ReadFile("/proc/cpuinfo")
		if err != nil {
			slog.Debug("failed to read cpuinfo", "error", err)
			return nil
		}
		return parseCPUFlags(string(data))
	case "darwin":
		out := RunCommandQuiet(ctx, "sysctl", "-n", "machdep.cpu.features")
		if out == "" {
			return nil
		}
		return parseCPUFlags(out)
	default:
		return nil
	}
}

// parseCPUFlags extracts the extensions of interest from flag text
func parseCPUFlags(text string) []string {
	lower := strings.ToLower(text)

	exts := make([]string, 0, 2)
	if strings.Contains(lower, "avx2") {
		exts = append(exts, "avx2")
	}
	if strings.Contains(lower, "fma") {
		exts = append(exts, "fma")
	}
	return exts
}

// CPUModel returns the processor model name, or empty when unknown
func CPUModel(ctx context.Context) string {
	switch runtime.GOOS {
	case "linux":
		data, err := os.ReadFile("/proc/cpuinfo")
		if err != nil {
			return ""
		}
		return parseCPUModel(string(data))
	case "darwin":
		return RunCommandQuiet(ctx, "sysctl", "-n", "machdep.cpu.brand_string")
	default:
		return ""
	}
}

// parseCPUModel extracts the "model name" entry from /proc/cpuinfo content
func parseCPUModel(cpuinfo string) string {
	for _, line := range strings.Split(cpuinfo, "\n") {
		if strings.HasPrefix(line, "model name") {
			if _, value, found := strings.Cut(line, ":"); found {
				return strings.TrimSpace(value)
			}
		}
	}
	return ""
}

// GetCPUInfo gathers the full processor description
func GetCPUInfo(ctx context.Context) CPUInfo {
	return CPUInfo{
		Count:        CPUCount(),
		Features:     CPUFeatures(ctx),
		Architecture: runtime.GOARCH,
		Model:        CPUModel(ctx),
	}
}
