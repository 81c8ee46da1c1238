// Package envfile reads, seeds, and updates KEY=VALUE environment files
// used by the devcontainer bootstrap.
package envfile

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/msandoval/devinit/internal/util"
)

const (
	// DefaultName is the environment file name at the project root
	DefaultName = ".env"

	// ExampleRelPath is the seed file copied when no .env exists
	ExampleRelPath = ".devcontainer/init/example.env"

	// initializedKey marks a bootstrapped environment file
	initializedKey = "INITIALIZED"
)

// Parse extracts KEY=VALUE pairs from file content. Blank lines, comments,
// and lines without an equals sign are skipped. Values keep everything after
// the first equals sign, with surrounding whitespace and matched quotes
// removed.
func Parse(content string) map[string]string {
	vars := make(map[string]string)

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}

		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}

		vars[key] = unquote(strings.TrimSpace(value))
	}

	return vars
}

func unquote(value string) string {
	if len(value) >= 2 {
		if (value[0] == '"' && value[len(value)-1] == '"') ||
			(value[0] == '\'' && value[len(value)-1] == '\'') {
			return value[1 : len(value)-1]
		}
	}
	return value
}

// Load reads and parses an environment file
func Load(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read env file %s: %w", path, err)
	}
	return Parse(string(data)), nil
}

// Setup ensures the project has a populated .env file. When the file is
// missing it is seeded from the example file; when the example is missing
// too, a minimal file is written. Returns the env file path.
func Setup(projectRoot string) (string, error) {
	envPath := filepath.Join(projectRoot, DefaultName)

	if _, err := os.Stat(envPath); err == nil {
		slog.Debug("env file already present", "path", envPath)
		return envPath, nil
	}

	examplePath := filepath.Join(projectRoot, filepath.FromSlash(ExampleRelPath))
	if data, err := os.ReadFile(examplePath); err == nil {
		if err := os.WriteFile(envPath, data, 0644); err != nil {
			return "", fmt.Errorf("failed to seed env file: %w", err)
		}
		slog.Info("seeded env file from example", "path", envPath, "example", examplePath)
		return envPath, nil
	}

	minimal := fmt.Sprintf("# devinit environment\n%s=false\n", initializedKey)
	if err := os.WriteFile(envPath, []byte(minimal), 0644); err != nil {
		return "", fmt.Errorf("failed to create env file: %w", err)
	}
	slog.Info("created minimal env file", "path", envPath)

	return envPath, nil
}

// IsInitialized reports whether the env file marks the environment as
// bootstrapped
func IsInitialized(path string) bool {
	vars, err := Load(path)
	if err != nil {
		return false
	}
	return strings.EqualFold(vars[initializedKey], "true")
}

// SetInitialized rewrites the INITIALIZED flag in place, preserving every
// other line of the file. The flag line is appended when absent.
func SetInitialized(path string, initialized bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read env file %s: %w", path, err)
	}

	flagLine := fmt.Sprintf("%s=%t", initializedKey, initialized)

	lines := strings.Split(string(data), "\n")
	replaced := false
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, initializedKey+"=") || strings.HasPrefix(trimmed, initializedKey+" ") {
			lines[i] = flagLine
			replaced = true
		}
	}

	if !replaced {
		// keep a trailing newline if the file had one
		if n := len(lines); n > 0 && lines[n-1] == "" {
			lines[n-1] = flagLine
			lines = append(lines, "")
		} else {
			lines = append(lines, flagLine)
		}
	}

	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0644); err != nil {
		return fmt.Errorf("failed to update env file %s: %w", path, err)
	}

	slog.Debug("updated env flag", "path", path, "initialized", initialized)
	return nil
}

// Apply exports vars into the process environment, returning how many were
// set
func Apply(vars map[string]string) (int, error) {
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	count := 0
	for _, key := range keys {
		if err := os.Setenv(key, vars[key]); err != nil {
			return count, util.WrapErrorf(err, "failed to set %s", key)
		}
		count++
	}

	return count, nil
}

// SetFromConfig flattens a nested configuration map into PREFIX_SECTION_KEY
// environment variables. Nested maps recurse with an extended prefix; lists
// are comma-joined; scalars are formatted with %v. Returns how many
// variables were exported.
func SetFromConfig(section map[string]any, prefix string) (int, error) {
	flattened := make(map[string]string)
	flatten(section, strings.ToUpper(prefix), flattened)
	return Apply(flattened)
}

func flatten(section map[string]any, prefix string, out map[string]string) {
	for key, value := range section {
		name := strings.ToUpper(key)
		if prefix != "" {
			name = prefix + "_" + name
		}

		switch v := value.(type) {
		case map[string]any:
			flatten(v, name, out)
		case []any:
			parts := make([]string, 0, len(v))
			for _, item := range v {
				parts = append(parts, fmt.Sprintf("%v", item))
			}
			out[name] = strings.Join(parts, ",")
		case []string:
			out[name] = strings.Join(v, ",")
		case nil:
			out[name] = ""
		default:
			out[name] = fmt.Sprintf("%v", v)
		}
	}
}
