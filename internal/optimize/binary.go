package optimize

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/msandoval/devinit/internal/executor"
	"github.com/msandoval/devinit/internal/sysinfo"
	"github.com/msandoval/devinit/internal/util"
)

// stripPoolName is the executor pool used for fan-out stripping
const stripPoolName = "strip"

// CompileBytecode precompiles the interpreter's standard library at both
// optimization levels. Each pass is best-effort; the operation fails only
// when the executable is missing or both passes fail.
func CompileBytecode(ctx context.Context, pythonExec, libDir string) error {
	if info, err := os.Stat(pythonExec); err != nil || info.IsDir() {
		return util.WrapErrorf(util.ErrCommandNotFound, "python executable not found at %s", pythonExec)
	}

	slog.Info("compiling bytecode", "lib", libDir, "exec", pythonExec)

	_, err1 := sysinfo.RunCommand(ctx, pythonExec, "-O", "-m", "compileall", "-f", "-q", libDir)
	_, err2 := sysinfo.RunCommand(ctx, pythonExec, "-OO", "-m", "compileall", "-f", "-q", libDir)

	if err1 != nil && err2 != nil {
		return util.WrapErrorf(err2, "bytecode compilation failed")
	}

	slog.Info("bytecode compilation complete")
	return nil
}

// SharedLibExtensions returns the shared-object suffixes to strip on the
// current platform
func SharedLibExtensions() []string {
	exts := []string{".so"}
	switch runtime.GOOS {
	case "darwin":
		exts = append(exts, ".dylib")
	case "windows":
		exts = append(exts, ".dll", ".pyd")
	}
	return exts
}

// FindSharedLibs walks libDir collecting files with shared-object suffixes
func FindSharedLibs(libDir string, exts []string) ([]string, error) {
	var libs []string

	err := filepath.WalkDir(libDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		for _, ext := range exts {
			if strings.HasSuffix(d.Name(), ext) {
				libs = append(libs, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, util.WrapErrorf(err, "failed to walk %s", libDir)
	}

	return libs, nil
}

// StripBinaries removes debug symbols from every shared object under libDir,
// fanning the strip invocations out over a cpu-sized pool. Per-file failures
// are tolerated. Returns how many files were stripped.
func StripBinaries(ctx context.Context, reg *executor.Registry, libDir string) (int, error) {
	if !sysinfo.HasCommand("strip") {
		slog.Warn("strip command not found, skipping binary optimization")
		return 0, nil
	}

	if info, err := os.Stat(libDir); err != nil || !info.IsDir() {
		return 0, util.WrapErrorf(util.ErrInvalidConfig, "library directory not found at %s", libDir)
	}

	libs, err := FindSharedLibs(libDir, SharedLibExtensions())
	if err != nil {
		return 0, err
	}
	if len(libs) == 0 {
		slog.Info("no shared objects to strip", "dir", libDir)
		return 0, nil
	}

	stripped, err := executor.Map(ctx, reg, func(ctx context.Context, path string) (string, error) {
		if _, err := sysinfo.RunCommand(ctx, "strip", "-s", path); err != nil {
			return "", err
		}
		return path, nil
	}, libs, executor.Options{
		Name:      stripPoolName,
		Kind:      executor.KindProcess,
		ChunkSize: 8,
	})
	if err != nil {
		return 0, err
	}

	slog.Info("stripped binaries", "count", len(stripped), "dir", libDir)
	return len(stripped), nil
}
