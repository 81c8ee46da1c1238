package sysinfo

import (
	"context"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/msandoval/devinit/internal/util"
)

var (
	cmdCacheMu sync.Mutex
	cmdCache   = make(map[string]bool)
)

// HasCommand checks if a command is available in the system PATH.
// Lookups are cached for the lifetime of the process.
func HasCommand(cmd string) bool {
	cmdCacheMu.Lock()
	defer cmdCacheMu.Unlock()

	if found, ok := cmdCache[cmd]; ok {
		return found
	}

	found := false
	for _, dir := range filepath.SplitList(os.Getenv("PATH")) {
		if dir == "" {
			continue
		}
		candidate := filepath.Join(dir, cmd)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() && info.Mode()&0111 != 0 {
			found = true
			break
		}
	}

	cmdCache[cmd] = found
	return found
}

// ResetCommandCache clears the PATH probe cache. Intended for tests.
func ResetCommandCache() {
	cmdCacheMu.Lock()
	defer cmdCacheMu.Unlock()
	cmdCache = make(map[string]bool)
}

// RunCommand runs a system command and returns its trimmed stdout.
// Failures are wrapped with the command line and captured stderr.
func RunCommand(ctx context.Context, args ...string) (string, error) {
	if len(args) == 0 {
		return "", util.NewValidationError("args", nil, "empty command")
	}

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		cmdLine := strings.Join(args, " ")
		slog.Debug("command failed", "command", cmdLine, "error", err, "stderr", strings.TrimSpace(stderr.String()))
		return "", util.WrapCommandError(cmdLine, stderr.String(), err)
	}

	return strings.TrimSpace(stdout.String()), nil
}

// RunCommandQuiet runs a command and ignores its failure, returning the
// trimmed stdout or an empty string. Used for best-effort probes where a
// missing tool or a nonzero exit is not an error condition.
func RunCommandQuiet(ctx context.Context, args ...string) string {
	out, err := RunCommand(ctx, args...)
	if err != nil {
		return ""
	}
	return out
}
