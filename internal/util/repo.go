package util

import (
	"fmt"
	"math"
	"strings"
)

// ShortRepoName extracts the repository name from an "owner/repo" spec or a
// Git URL. Names without a separator are returned unchanged.
func ShortRepoName(spec string) string {
	name := strings.TrimSuffix(strings.TrimSpace(spec), ".git")

	// Strip a trailing path segment from URLs and owner/repo specs
	if idx := strings.LastIndex(name, "/"); idx != -1 {
		name = name[idx+1:]
	}

	// SSH specs like git@github.com:owner take the part after the colon
	if idx := strings.LastIndex(name, ":"); idx != -1 {
		name = name[idx+1:]
	}

	return name
}

// FormatBytes formats a byte count as a human-readable string (e.g. "1.5 MB")
func FormatBytes(size int64) string {
	if size <= 0 {
		return "0 B"
	}

	units := []string{"B", "KB", "MB", "GB", "TB", "PB"}
	exp := int(math.Floor(math.Log(float64(size)) / math.Log(1024)))
	if exp >= len(units) {
		exp = len(units) - 1
	}

	value := float64(size) / math.Pow(1024, float64(exp))
	if exp == 0 {
		return fmt.Sprintf("%d B", size)
	}

	return fmt.Sprintf("%.1f %s", value, units[exp])
}
