package sysinfo

import (
	"context"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"
)

// Conservative assumptions when detection fails
const (
	defaultTotalMB     = 4096
	defaultAvailableMB = 2048
)

// MemoryInfo describes system memory in megabytes
type MemoryInfo struct {
	// TotalMB is the installed physical memory
	TotalMB int `json:"total_mb" yaml:"total_mb"`

	// AvailableMB is the memory available for new workloads
	AvailableMB int `json:"available_mb" yaml:"available_mb"`
}

// GetMemoryInfo reports total and available memory.
// Linux parses /proc/meminfo; darwin queries sysctl and vm_stat. Detection
// failures fall back to conservative defaults rather than erroring.
func GetMemoryInfo(ctx context.Context) MemoryInfo {
	info := MemoryInfo{TotalMB: defaultTotalMB, AvailableMB: defaultAvailableMB}

	switch runtime.GOOS {
	case "linux":
		data, err := os.ReadFile("/proc/meminfo")
		if err != nil {
			slog.Warn("failed to read meminfo, using defaults", "error", err)
			return info
		}
		if parsed, ok := parseMemInfo(string(data)); ok {
			info = parsed
		}
	case "darwin":
		if total := RunCommandQuiet(ctx, "sysctl", "-n", "hw.memsize"); total != "" {
			if bytes, err := strconv.ParseInt(total, 10, 64); err == nil {
				info.TotalMB = int(bytes / (1024 * 1024))
			}
		}
		if available, ok := darwinAvailableMB(ctx); ok {
			info.AvailableMB = available
		}
	default:
		slog.Debug("memory detection unsupported on this platform", "os", runtime.GOOS)
	}

	return info
}

// parseMemInfo extracts MemTotal and MemAvailable from /proc/meminfo content
func parseMemInfo(content string) (MemoryInfo, bool) {
	info := MemoryInfo{TotalMB: defaultTotalMB, AvailableMB: defaultAvailableMB}
	found := false

	for _, line := range strings.Split(content, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}

		kb, err := strconv.Atoi(fields[1])
		if err != nil {
			continue
		}

		switch {
		case strings.HasPrefix(fields[0], "MemTotal"):
			info.TotalMB = kb / 1024
			found = true
		case strings.HasPrefix(fields[0], "MemAvailable"):
			info.AvailableMB = kb / 1024
			found = true
		}
	}

	return info, found
}

// darwinAvailableMB estimates available memory from vm_stat free and
// inactive page counts
func darwinAvailableMB(ctx context.Context) (int, bool) {
	vmstat := RunCommandQuiet(ctx, "vm_stat")
	pageSizeStr := RunCommandQuiet(ctx, "sysctl", "-n", "hw.pagesize")
	if vmstat == "" || pageSizeStr == "" {
		return 0, false
	}

	pageSize, err := strconv.Atoi(pageSizeStr)
	if err != nil {
		return 0, false
	}

	pages, ok := parseVMStatFreePages(vmstat)
	if !ok {
		return 0, false
	}

	return int(int64(pages) * int64(pageSize) / (1024 * 1024)), true
}

// parseVMStatFreePages sums the free and inactive page counts in vm_stat output
func parseVMStatFreePages(output string) (int, bool) {
	total := 0
	found := false

	for _, line := range strings.Split(output, "\n") {
		if !strings.Contains(line, "Pages free:") && !strings.Contains(line, "Pages inactive:") {
			continue
		}
		_, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		value = strings.TrimSuffix(strings.TrimSpace(value), ".")
		pages, err := strconv.Atoi(value)
		if err != nil {
			continue
		}
		total += pages
		found = true
	}

	return total, found
}
