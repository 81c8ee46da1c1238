// Package vcs provisions Git repositories for the devcontainer: global git
// configuration, clone-or-update with submodules and LFS, and a conflict
// policy for repositories with local changes.
package vcs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/msandoval/devinit/internal/sysinfo"
	"github.com/msandoval/devinit/internal/util"
)

// SetupGlobalConfig applies the git global settings the bootstrap relies on.
// Username and email come from the environment when set.
func SetupGlobalConfig(ctx context.Context) error {
	username := os.Getenv("GITHUB_USERNAME")
	if username == "" {
		username = "GitHub User"
	}
	email := os.Getenv("GITHUB_EMAIL")
	if email == "" {
		email = "user@example.com"
	}

	configs := [][2]string{
		{"credential.helper", "store"},
		{"user.name", username},
		{"user.email", email},
		{"core.autocrlf", "input"},
		{"init.defaultBranch", "main"},
		{"pull.rebase", "false"},
		{"fetch.parallel", "0"},
	}

	for _, kv := range configs {
		if _, err := sysinfo.RunCommand(ctx, "git", "config", "--global", kv[0], kv[1]); err != nil {
			return util.WrapErrorf(err, "failed to set git config %s", kv[0])
		}
	}

	slog.Debug("git global config applied", "entries", len(configs))
	return nil
}

// CloneOrUpdate clones a repository with submodules, or updates an existing
// checkout by fetching and hard-resetting to its upstream branch. Returns
// the repository name.
func CloneOrUpdate(ctx context.Context, repoPath, repoURL string) (string, error) {
	repoName := filepath.Base(repoPath)

	if isGitRepo(repoPath) {
		if err := updateRepo(ctx, repoPath); err != nil {
			return "", util.WrapRepoError(repoName, err)
		}
	} else {
		if _, err := sysinfo.RunCommand(ctx, "git", "clone", "--recursive", "--jobs=4", repoURL, repoPath); err != nil {
			return "", util.WrapRepoError(repoName, err)
		}
	}

	if err := setupLFS(ctx, repoPath); err != nil {
		return "", util.WrapRepoError(repoName, err)
	}

	slog.Info("repository ready", "repo", repoName)
	return repoName, nil
}

func isGitRepo(repoPath string) bool {
	info, err := os.Stat(filepath.Join(repoPath, ".git"))
	return err == nil && info.IsDir()
}

func updateRepo(ctx context.Context, repoPath string) error {
	if _, err := sysinfo.RunCommand(ctx, "git", "-C", repoPath, "fetch", "--all", "--prune", "--jobs=4"); err != nil {
		return err
	}

	branch, err := sysinfo.RunCommand(ctx, "git", "-C", repoPath, "symbolic-ref", "--short", "HEAD")
	if err != nil {
		return err
	}

	if _, err := sysinfo.RunCommand(ctx, "git", "-C", repoPath, "reset", "--hard", "origin/"+branch); err != nil {
		return err
	}

	_, err = sysinfo.RunCommand(ctx, "git", "-C", repoPath, "submodule", "update", "--init", "--recursive", "--jobs=4")
	return err
}

// setupLFS installs and pulls LFS objects when .gitattributes mentions lfs
func setupLFS(ctx context.Context, repoPath string) error {
	data, err := os.ReadFile(filepath.Join(repoPath, ".gitattributes"))
	if err != nil || !strings.Contains(string(data), "lfs") {
		return nil
	}

	if _, err := sysinfo.RunCommand(ctx, "git", "-C", repoPath, "lfs", "install"); err != nil {
		return err
	}
	_, err = sysinfo.RunCommand(ctx, "git", "-C", repoPath, "lfs", "pull")
	return err
}

// CloneURL builds an authenticated HTTPS clone URL for a GitHub repository
// spec like "owner/name"
func CloneURL(token, repoSpec string) string {
	if token == "" {
		return fmt.Sprintf("https://github.com/%s.git", repoSpec)
	}
	return fmt.Sprintf("https://%s@github.com/%s.git", token, repoSpec)
}
