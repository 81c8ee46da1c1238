// Package provision implements `devinit provision`: environment-file setup,
// git global configuration, and repository cloning fanned out over a worker
// pool.
package provision

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/msandoval/devinit/internal/config"
	"github.com/msandoval/devinit/internal/envfile"
	"github.com/msandoval/devinit/internal/executor"
	"github.com/msandoval/devinit/internal/output"
	"github.com/msandoval/devinit/internal/sysinfo"
	"github.com/msandoval/devinit/internal/ui"
	"github.com/msandoval/devinit/internal/util"
	"github.com/msandoval/devinit/internal/vcs"
)

// githubPoolName is the executor pool used for repository fan-out
const githubPoolName = "github"

// repoTask is one repository to provision
type repoTask struct {
	name string
	url  string
	path string
}

// NewProvisionCmd creates the provision command
func NewProvisionCmd() *cobra.Command {
	var (
		force  bool
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "provision",
		Short: "Provision the environment file and Git repositories",
		Long: `Seed the environment file, apply git global configuration, and clone
or update the solution repository and any configured local repositories.

Local repositories are processed in parallel on a dedicated worker pool.
Repositories with uncommitted local changes are skipped unless --force
resets them or an interactive terminal answers the conflict prompt.`,
		Example: `  # Provision everything
  devinit provision

  # Discard local changes in existing checkouts
  devinit provision --force

  # Show what would happen without touching anything
  devinit provision --dry-run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProvision(cmd, force, dryRun)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "reset local changes without prompting")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "simulate without making changes")

	return cmd
}

func runProvision(cmd *cobra.Command, force, dryRun bool) error {
	ctx := cmd.Context()
	executor.HookProcessExit()

	if !sysinfo.HasCommand("git") {
		return util.WrapErrorf(util.ErrCommandNotFound, "git is required for provisioning")
	}
	if !sysinfo.HasCommand("git-lfs") {
		slog.Warn("git-lfs not found, large files may not be handled properly")
	}

	manager := config.NewManager(viper.GetString("config"))
	cfg, err := manager.Load()
	if err != nil {
		return util.WrapErrorf(err, "failed to load configuration")
	}

	projectRoot := config.ProjectRoot()

	if err := setupEnvironment(projectRoot, dryRun); err != nil {
		return err
	}

	if !dryRun {
		if err := vcs.SetupGlobalConfig(ctx); err != nil {
			return err
		}
	}

	results := provisionRepos(ctx, cfg, projectRoot, force, dryRun)
	if len(results) == 0 {
		slog.Info("no repositories configured")
		return nil
	}

	format := output.ParseFormat(viper.GetString("output"))
	formatter := output.NewFormatter(format, output.WithNoColor(viper.GetBool("no-color")))
	if err := formatter.FormatResults(os.Stdout, results); err != nil {
		return err
	}

	if summary := output.Summarize(results); summary.Failed > 0 {
		return fmt.Errorf("%d of %d repositories failed", summary.Failed, summary.Total)
	}
	return nil
}

// setupEnvironment seeds the .env file and marks it initialized
func setupEnvironment(projectRoot string, dryRun bool) error {
	if dryRun {
		slog.Info("dry run: would set up environment file", "root", projectRoot)
		return nil
	}

	envPath, err := envfile.Setup(projectRoot)
	if err != nil {
		return err
	}
	return envfile.SetInitialized(envPath, true)
}

// provisionRepos handles the solution repository first, then fans the local
// repositories out over the github pool
func provisionRepos(ctx context.Context, cfg *config.Config, projectRoot string, force, dryRun bool) []output.TaskResult {
	var results []output.TaskResult

	manageOpts := vcs.ManageOptions{
		Force:    force,
		DryRun:   dryRun,
		Prompter: ui.NewPrompter(),
	}

	// The solution repo may prompt, so it runs on the calling goroutine.
	if spec := cfg.GitHub.Repositories.Solution; spec != "" {
		task := repoTask{
			name: util.ShortRepoName(spec),
			url:  vcs.CloneURL(cfg.GitHub.Token, spec),
			path: filepath.Join(projectRoot, "solution"),
		}
		results = append(results, manageOne(ctx, task, manageOpts))
	}

	tasks := localRepoTasks(cfg, projectRoot)
	if len(tasks) == 0 {
		return results
	}

	// Parallel workers never prompt; without force they skip dirty checkouts.
	parallelOpts := manageOpts
	parallelOpts.Prompter = nil

	outcomes, err := executor.MapResults(ctx, executor.Default(), func(ctx context.Context, task repoTask) (output.TaskResult, error) {
		return manageOne(ctx, task, parallelOpts), nil
	}, tasks, executor.Options{
		Name:    githubPoolName,
		Kind:    executor.KindThread,
		Workers: viper.GetInt("parallel"),
		Timeout: batchTimeout(len(tasks)),
	})
	if err != nil {
		for _, task := range tasks {
			results = append(results, output.TaskResult{Name: task.name, Err: err})
		}
		return results
	}

	for _, oc := range outcomes {
		results = append(results, oc.Value)
	}
	return results
}

// manageOne wraps a single repository operation with timing
func manageOne(ctx context.Context, task repoTask, opts vcs.ManageOptions) output.TaskResult {
	start := time.Now()
	name, err := vcs.Manage(ctx, task.url, task.path, opts)
	if name == "" {
		name = task.name
	}
	return output.TaskResult{
		Name:     name,
		Data:     task.path,
		Err:      err,
		Duration: time.Since(start),
	}
}

// localRepoTasks builds the task list for the configured local repositories
func localRepoTasks(cfg *config.Config, projectRoot string) []repoTask {
	username := cfg.GitHub.Username
	if username == "" {
		slog.Warn("github username not configured, skipping local repositories")
		return nil
	}

	tasks := make([]repoTask, 0, len(cfg.GitHub.Repositories.Local))
	for _, repo := range cfg.GitHub.Repositories.Local {
		name := util.ShortRepoName(repo)
		tasks = append(tasks, repoTask{
			name: name,
			url:  vcs.CloneURL(cfg.GitHub.Token, username+"/"+repo),
			path: filepath.Join(projectRoot, name),
		})
	}
	return tasks
}

// batchTimeout scales the configured per-operation timeout by the batch size
func batchTimeout(items int) time.Duration {
	per := viper.GetDuration("timeout")
	if per <= 0 {
		return 0
	}
	return per * time.Duration(items)
}
