package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestManager_Load(t *testing.T) {
	content := `
build:
  paths:
    build_cache: /tmp/ccache
  ccache:
    max_size: 10G
  resources:
    default_cores: 8
    build_jobs: 4
github:
  token: abc123
  username: msandoval
  repositories:
    solution: msandoval/solution
    local:
      - tooling
      - docs
runtime:
  compiler:
    cc: ccache gcc
    cxx: ccache g++
defaults:
  timeout: 45s
  parallel: 6
  outputFormat: json
`

	path := writeConfig(t, content)
	manager := NewManager(path)

	cfg, err := manager.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Build.Paths.BuildCache != "/tmp/ccache" {
		t.Errorf("BuildCache = %q, want /tmp/ccache", cfg.Build.Paths.BuildCache)
	}
	if cfg.Build.Ccache.MaxSize != "10G" {
		t.Errorf("Ccache.MaxSize = %q, want 10G", cfg.Build.Ccache.MaxSize)
	}
	if cfg.Build.Resources.DefaultCores != 8 {
		t.Errorf("DefaultCores = %d, want 8", cfg.Build.Resources.DefaultCores)
	}
	if cfg.GitHub.Token != "abc123" {
		t.Errorf("Token = %q, want abc123", cfg.GitHub.Token)
	}
	if cfg.GitHub.Repositories.Solution != "msandoval/solution" {
		t.Errorf("Solution = %q, want msandoval/solution", cfg.GitHub.Repositories.Solution)
	}
	if len(cfg.GitHub.Repositories.Local) != 2 {
		t.Errorf("Local repos = %v, want 2 entries", cfg.GitHub.Repositories.Local)
	}
	if cfg.Runtime.Compiler.CC != "ccache gcc" {
		t.Errorf("Compiler.CC = %q, want 'ccache gcc'", cfg.Runtime.Compiler.CC)
	}
	if cfg.Defaults.Timeout != 45*time.Second {
		t.Errorf("Timeout = %v, want 45s", cfg.Defaults.Timeout)
	}
	if cfg.Defaults.Parallel != 6 {
		t.Errorf("Parallel = %d, want 6", cfg.Defaults.Parallel)
	}
	if cfg.Defaults.OutputFormat != "json" {
		t.Errorf("OutputFormat = %q, want json", cfg.Defaults.OutputFormat)
	}
}

func TestManager_Load_MissingFileAppliesDefaults(t *testing.T) {
	manager := NewManager(filepath.Join(t.TempDir(), "nope.yaml"))

	cfg, err := manager.Load()
	if err != nil {
		t.Fatalf("Load of a missing file should not fail: %v", err)
	}

	if cfg.Defaults.Timeout != 30*time.Second {
		t.Errorf("Timeout default = %v, want 30s", cfg.Defaults.Timeout)
	}
	if cfg.Defaults.OutputFormat != "table" {
		t.Errorf("OutputFormat default = %q, want table", cfg.Defaults.OutputFormat)
	}
	if cfg.Build.Ccache.MaxSize != "5G" {
		t.Errorf("Ccache.MaxSize default = %q, want 5G", cfg.Build.Ccache.MaxSize)
	}
	if cfg.Workspace.Folder != "workspace" {
		t.Errorf("Workspace.Folder default = %q, want workspace", cfg.Workspace.Folder)
	}
}

func TestManager_Load_InterpolatesEnv(t *testing.T) {
	t.Setenv("DEVINIT_TEST_CACHE", "/var/cache/build")

	content := `
build:
  paths:
    build_cache: ${DEVINIT_TEST_CACHE}
    gpu_cache: ${DEVINIT_TEST_MISSING:-/tmp/gpu}
`

	manager := NewManager(writeConfig(t, content))
	cfg, err := manager.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Build.Paths.BuildCache != "/var/cache/build" {
		t.Errorf("BuildCache = %q, want interpolated env value", cfg.Build.Paths.BuildCache)
	}
	if cfg.Build.Paths.GPUCache != "/tmp/gpu" {
		t.Errorf("GPUCache = %q, want the placeholder default", cfg.Build.Paths.GPUCache)
	}
}

func TestManager_Load_TokenFallsBackToEnv(t *testing.T) {
	t.Setenv("GITHUB_PAT", "env-token")

	manager := NewManager(writeConfig(t, "github: {}\n"))
	cfg, err := manager.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.GitHub.Token != "env-token" {
		t.Errorf("Token = %q, want fallback from GITHUB_PAT", cfg.GitHub.Token)
	}
}

func TestManager_Load_InvalidYAML(t *testing.T) {
	manager := NewManager(writeConfig(t, "build: [unclosed"))

	if _, err := manager.Load(); err == nil {
		t.Error("expected an error for malformed YAML")
	}
}

func TestManager_RequiredEnv(t *testing.T) {
	t.Setenv("DEVINIT_TEST_PRESENT", "yes")

	content := `
github:
  required_env:
    - DEVINIT_TEST_PRESENT
    - DEVINIT_TEST_ABSENT
`

	manager := NewManager(writeConfig(t, content))
	if _, err := manager.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	missing := manager.RequiredEnv("github")
	if len(missing) != 1 || missing[0] != "DEVINIT_TEST_ABSENT" {
		t.Errorf("RequiredEnv = %v, want [DEVINIT_TEST_ABSENT]", missing)
	}
}

func TestInterpolateEnv(t *testing.T) {
	t.Setenv("DEVINIT_TEST_VAR", "value")

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "set variable",
			input:    "path: ${DEVINIT_TEST_VAR}",
			expected: "path: value",
		},
		{
			name:     "unset with default",
			input:    "path: ${DEVINIT_TEST_NOPE:-fallback}",
			expected: "path: fallback",
		},
		{
			name:     "set variable wins over default",
			input:    "path: ${DEVINIT_TEST_VAR:-fallback}",
			expected: "path: value",
		},
		{
			name:     "unset without default is preserved",
			input:    "path: ${DEVINIT_TEST_NOPE}",
			expected: "path: ${DEVINIT_TEST_NOPE}",
		},
		{
			name:     "no placeholders",
			input:    "plain text",
			expected: "plain text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InterpolateEnv(tt.input); got != tt.expected {
				t.Errorf("InterpolateEnv(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestProjectRoot_FallsBackToCwd(t *testing.T) {
	t.Setenv("WORKSPACE_FOLDER", "")
	t.Setenv("PROJECT_NAME", "")

	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd failed: %v", err)
	}

	if got := ProjectRoot(); got != cwd {
		t.Errorf("ProjectRoot() = %q, want cwd %q", got, cwd)
	}
}
