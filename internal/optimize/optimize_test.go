package optimize

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/msandoval/devinit/internal/config"
	"github.com/msandoval/devinit/internal/executor"
	"github.com/msandoval/devinit/internal/sysinfo"
)

func TestCompilerFlags(t *testing.T) {
	tests := []struct {
		name     string
		features []string
		expected []string
	}{
		{
			name:     "x86_64 with avx2 and fma",
			features: []string{"x86_64", "avx2", "fma"},
			expected: []string{"-march=native", "-mtune=native", "-mavx2", "-mfma"},
		},
		{
			name:     "x86_64 baseline",
			features: []string{"x86_64"},
			expected: []string{"-march=native", "-mtune=native"},
		},
		{
			name:     "x86_64 avx2 only",
			features: []string{"x86_64", "avx2"},
			expected: []string{"-march=native", "-mtune=native", "-mavx2"},
		},
		{
			name:     "arm64",
			features: []string{"arm", "arm64"},
			expected: []string{"-march=native"},
		},
		{
			name:     "unknown architecture",
			features: []string{"riscv64"},
			expected: nil,
		},
		{
			name:     "empty",
			features: nil,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CompilerFlags(tt.features)
			if len(got) != len(tt.expected) {
				t.Fatalf("CompilerFlags(%v) = %v, want %v", tt.features, got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("flag[%d] = %q, want %q", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestApplyCompilerFlags(t *testing.T) {
	t.Setenv("CFLAGS", "-O2")
	t.Setenv("CXXFLAGS", "")

	flags := ApplyCompilerFlags([]string{"x86_64", "avx2"})
	if len(flags) == 0 {
		t.Fatal("expected flags for x86_64")
	}

	cflags := os.Getenv("CFLAGS")
	if !strings.HasPrefix(cflags, "-O2 ") {
		t.Errorf("CFLAGS = %q, existing value should be preserved", cflags)
	}
	if !strings.Contains(cflags, "-mavx2") {
		t.Errorf("CFLAGS = %q, want -mavx2 appended", cflags)
	}

	cxxflags := os.Getenv("CXXFLAGS")
	if !strings.Contains(cxxflags, "-march=native") {
		t.Errorf("CXXFLAGS = %q, want flags set", cxxflags)
	}
}

func TestApplyCompilerFlags_NoFlagsLeavesEnvAlone(t *testing.T) {
	t.Setenv("CFLAGS", "-O2")

	if flags := ApplyCompilerFlags([]string{"riscv64"}); flags != nil {
		t.Errorf("ApplyCompilerFlags = %v, want nil", flags)
	}
	if got := os.Getenv("CFLAGS"); got != "-O2" {
		t.Errorf("CFLAGS = %q, want untouched -O2", got)
	}
}

func TestHardenRuntimeEnv(t *testing.T) {
	t.Setenv("PYTHONHASHSEED", "")
	t.Setenv("PYTHONUNBUFFERED", "")
	t.Setenv("CUSTOMVAR", "")

	runtimeCfg := config.RuntimeConfig{
		Environment: map[string]string{
			"pythonhashseed": "0",
			"customvar":      "yes",
		},
	}

	HardenRuntimeEnv(runtimeCfg)

	if got := os.Getenv("PYTHONHASHSEED"); got != "0" {
		t.Errorf("PYTHONHASHSEED = %q, config should override the default", got)
	}
	if got := os.Getenv("PYTHONUNBUFFERED"); got != "1" {
		t.Errorf("PYTHONUNBUFFERED = %q, want the default 1", got)
	}
	if got := os.Getenv("CUSTOMVAR"); got != "yes" {
		t.Errorf("CUSTOMVAR = %q, want yes", got)
	}
}

func TestSetupCcache_MissingBinary(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	sysinfo.ResetCommandCache()
	t.Cleanup(sysinfo.ResetCommandCache)

	ok, err := SetupCcache(context.Background(), config.BuildConfig{}, config.RuntimeConfig{})
	if err != nil {
		t.Fatalf("SetupCcache failed: %v", err)
	}
	if ok {
		t.Error("SetupCcache = true without a ccache binary")
	}
}

func TestFindSharedLibs(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}

	files := map[string]string{
		filepath.Join(dir, "libfoo.so"):       "elf",
		filepath.Join(dir, "module.py"):       "source",
		filepath.Join(sub, "libbar.so"):       "elf",
		filepath.Join(sub, "notes.txt"):       "text",
		filepath.Join(sub, "plugin.so.1.2.3"): "versioned",
	}
	for path, content := range files {
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", path, err)
		}
	}

	libs, err := FindSharedLibs(dir, []string{".so"})
	if err != nil {
		t.Fatalf("FindSharedLibs failed: %v", err)
	}

	sort.Strings(libs)
	want := []string{
		filepath.Join(dir, "libfoo.so"),
		filepath.Join(sub, "libbar.so"),
	}
	sort.Strings(want)

	if len(libs) != len(want) {
		t.Fatalf("FindSharedLibs = %v, want %v", libs, want)
	}
	for i := range libs {
		if libs[i] != want[i] {
			t.Errorf("libs[%d] = %q, want %q", i, libs[i], want[i])
		}
	}
}

func TestSharedLibExtensions(t *testing.T) {
	exts := SharedLibExtensions()
	if len(exts) == 0 || exts[0] != ".so" {
		t.Errorf("SharedLibExtensions = %v, want .so first", exts)
	}
}

func TestStripBinaries_MissingStripIsNoop(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	sysinfo.ResetCommandCache()
	t.Cleanup(sysinfo.ResetCommandCache)

	reg := executor.NewRegistry(slog.Default())
	defer reg.ShutdownAll()

	count, err := StripBinaries(context.Background(), reg, t.TempDir())
	if err != nil {
		t.Fatalf("StripBinaries failed: %v", err)
	}
	if count != 0 {
		t.Errorf("count = %d, want 0", count)
	}
	if reg.Len() != 0 {
		t.Error("no pool should be created when strip is missing")
	}
}

func TestCompileBytecode_MissingExecutable(t *testing.T) {
	err := CompileBytecode(context.Background(), filepath.Join(t.TempDir(), "nope"), t.TempDir())
	if err == nil {
		t.Error("expected an error for a missing executable")
	}
}
