package vcs

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/msandoval/devinit/internal/sysinfo"
	"github.com/msandoval/devinit/internal/ui"
)

// RepoStatus summarizes the state of a local checkout
type RepoStatus struct {
	// Exists reports whether the path holds a git repository
	Exists bool

	// LocalChanges reports uncommitted modifications
	LocalChanges bool

	// RemoteChanges reports upstream commits not yet pulled
	RemoteChanges bool
}

// Status inspects a checkout: porcelain status for local modifications and
// a rev-list count against the upstream for remote ones. Probe failures for
// the remote side are treated as "no remote changes".
func Status(ctx context.Context, repoPath string) RepoStatus {
	if !isGitRepo(repoPath) {
		return RepoStatus{}
	}

	status := RepoStatus{Exists: true}

	if out, err := sysinfo.RunCommand(ctx, "git", "-C", repoPath, "status", "--porcelain"); err == nil && out != "" {
		status.LocalChanges = true
	}

	sysinfo.RunCommandQuiet(ctx, "git", "-C", repoPath, "fetch", "origin")
	behind := sysinfo.RunCommandQuiet(ctx, "git", "-C", repoPath, "rev-list", "HEAD..@{upstream}", "--count")
	status.RemoteChanges = behind != "" && behind != "0"

	return status
}

// ManageOptions controls conflict handling during provisioning
type ManageOptions struct {
	// Force resets local changes to the remote state without prompting
	Force bool

	// DryRun logs the intended action without touching the checkout
	DryRun bool

	// Prompter asks the user what to do with local changes. Nil means a
	// non-interactive prompter.
	Prompter *ui.Prompter
}

// Conflict resolution choices, in prompt order
const (
	choiceKeepAndPull = iota
	choiceReset
	choiceSkip
)

// Manage clones a missing repository or reconciles an existing one.
// Local changes are force-reset, simulated, or resolved interactively
// (keep-and-pull, reset, or skip, defaulting to skip). A clean checkout
// behind its upstream is pulled. Returns the repository name.
func Manage(ctx context.Context, repoURL, repoPath string, opts ManageOptions) (string, error) {
	repoName := filepath.Base(repoPath)
	status := Status(ctx, repoPath)

	if !status.Exists {
		if opts.DryRun {
			slog.Info("dry run: would clone repository", "repo", repoName, "path", repoPath)
			return repoName, nil
		}
		return CloneOrUpdate(ctx, repoPath, repoURL)
	}

	slog.Debug("repository already present", "repo", repoName, "path", repoPath)

	if status.LocalChanges {
		return reconcileLocalChanges(ctx, repoName, repoPath, opts)
	}

	if status.RemoteChanges {
		if opts.DryRun {
			slog.Info("dry run: would pull updates", "repo", repoName)
			return repoName, nil
		}
		slog.Info("pulling updates", "repo", repoName)
		if _, err := sysinfo.RunCommand(ctx, "git", "-C", repoPath, "pull"); err != nil {
			return "", err
		}
		return repoName, nil
	}

	slog.Info("repository up to date", "repo", repoName)
	return repoName, nil
}

func reconcileLocalChanges(ctx context.Context, repoName, repoPath string, opts ManageOptions) (string, error) {
	if opts.DryRun {
		slog.Info("dry run: would reset local changes", "repo", repoName)
		return repoName, nil
	}

	if opts.Force {
		slog.Info("force mode: resetting to remote state", "repo", repoName)
		if err := resetToRemote(ctx, repoPath); err != nil {
			return "", err
		}
		return repoName, nil
	}

	prompter := opts.Prompter
	if prompter == nil {
		prompter = ui.NewPrompterForTest(nil, nil, false)
	}

	choice := prompter.Choose(
		"Local changes detected in "+repoName+". What would you like to do?",
		[]string{
			"Keep changes and pull updates (may cause conflicts)",
			"Reset to remote state (discards local changes)",
			"Skip updating this repository",
		},
		choiceSkip,
	)

	switch choice {
	case choiceKeepAndPull:
		slog.Info("pulling with local changes kept", "repo", repoName)
		if _, err := sysinfo.RunCommand(ctx, "git", "-C", repoPath, "pull", "--rebase=false"); err != nil {
			return "", err
		}
	case choiceReset:
		slog.Info("resetting to remote state", "repo", repoName)
		if err := resetToRemote(ctx, repoPath); err != nil {
			return "", err
		}
	default:
		slog.Info("skipping repository update", "repo", repoName)
	}

	return repoName, nil
}

func resetToRemote(ctx context.Context, repoPath string) error {
	if _, err := sysinfo.RunCommand(ctx, "git", "-C", repoPath, "fetch", "origin"); err != nil {
		return err
	}

	branch, err := sysinfo.RunCommand(ctx, "git", "-C", repoPath, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return err
	}

	_, err = sysinfo.RunCommand(ctx, "git", "-C", repoPath, "reset", "--hard", "origin/"+branch)
	return err
}
