// Package optimize configures the container's compile toolchain and trims
// the installed runtime: ccache wiring, CPU-tuned compiler flags, bytecode
// precompilation, and debug-symbol stripping.
package optimize

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/msandoval/devinit/internal/config"
	"github.com/msandoval/devinit/internal/sysinfo"
)

// SetupCcache wires ccache into the build environment: cache directory,
// CC/CXX/MAKEFLAGS from config, max size, and zeroed statistics. Returns
// false without error when ccache is not installed.
func SetupCcache(ctx context.Context, buildCfg config.BuildConfig, runtimeCfg config.RuntimeConfig) (bool, error) {
	if !sysinfo.HasCommand("ccache") {
		slog.Warn("ccache not found, skipping configuration")
		return false, nil
	}

	if dir := buildCfg.Paths.BuildCache; dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return false, err
		}
		os.Setenv("CCACHE_DIR", dir)
	}

	if runtimeCfg.Compiler.CC != "" {
		os.Setenv("CC", runtimeCfg.Compiler.CC)
	}
	if runtimeCfg.Compiler.CXX != "" {
		os.Setenv("CXX", runtimeCfg.Compiler.CXX)
	}
	if runtimeCfg.Compiler.MakeFlags != "" {
		os.Setenv("MAKEFLAGS", runtimeCfg.Compiler.MakeFlags)
	}

	maxSize := buildCfg.Ccache.MaxSize
	if maxSize == "" {
		maxSize = "5G"
	}

	sysinfo.RunCommandQuiet(ctx, "ccache", "-M", maxSize)
	sysinfo.RunCommandQuiet(ctx, "ccache", "-z")

	slog.Info("ccache configured", "max_size", maxSize, "dir", buildCfg.Paths.BuildCache)
	return true, nil
}

// CompilerFlags derives the optimization flags for the detected CPU features
func CompilerFlags(features []string) []string {
	set := make(map[string]bool, len(features))
	for _, f := range features {
		set[f] = true
	}

	var flags []string
	switch {
	case set["x86_64"]:
		flags = append(flags, "-march=native", "-mtune=native")
		if set["avx2"] {
			flags = append(flags, "-mavx2")
		}
		if set["fma"] {
			flags = append(flags, "-mfma")
		}
	case set["arm64"]:
		flags = append(flags, "-march=native")
	}

	return flags
}

// ApplyCompilerFlags appends the CPU-tuned flags to CFLAGS and CXXFLAGS.
// Returns the flags that were applied, empty when the architecture has none.
func ApplyCompilerFlags(features []string) []string {
	flags := CompilerFlags(features)
	if len(flags) == 0 {
		return nil
	}

	joined := strings.Join(flags, " ")
	for _, envVar := range []string{"CFLAGS", "CXXFLAGS"} {
		if current := os.Getenv(envVar); current != "" {
			os.Setenv(envVar, current+" "+joined)
		} else {
			os.Setenv(envVar, joined)
		}
	}

	slog.Info("applied compiler flags", "flags", joined)
	return flags
}

// HardenRuntimeEnv exports the interpreter environment settings from config,
// with the bootstrap's defaults for anything unset
func HardenRuntimeEnv(runtimeCfg config.RuntimeConfig) {
	env := map[string]string{
		"PYTHONHASHSEED":          "1",
		"PYTHONDONTWRITEBYTECODE": "1",
		"PYTHONUNBUFFERED":        "1",
	}
	for key, value := range runtimeCfg.Environment {
		env[strings.ToUpper(key)] = value
	}

	for key, value := range env {
		os.Setenv(key, value)
	}

	slog.Debug("runtime environment hardened", "vars", len(env))
}
