// Package env implements `devinit env`: environment-file setup and display.
package env

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/msandoval/devinit/internal/config"
	"github.com/msandoval/devinit/internal/envfile"
	"github.com/msandoval/devinit/internal/output"
)

// NewEnvCmd creates the env parent command
func NewEnvCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "env",
		Short: "Manage the project environment file",
		Long: `Set up and inspect the project's .env file.

The setup subcommand seeds .env from the devcontainer example file when
missing and marks the environment initialized. The show subcommand prints
the parsed variables.`,
		Example: `  # Seed and mark the environment file
  devinit env setup

  # Print the current variables
  devinit env show -o json`,
	}

	cmd.AddCommand(newSetupCmd())
	cmd.AddCommand(newShowCmd())

	return cmd
}

func newSetupCmd() *cobra.Command {
	var export bool

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Seed the environment file and mark it initialized",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSetup(export)
		},
	}

	cmd.Flags().BoolVar(&export, "export", false, "also export the variables into the process environment")

	return cmd
}

func runSetup(export bool) error {
	projectRoot := config.ProjectRoot()

	envPath, err := envfile.Setup(projectRoot)
	if err != nil {
		return err
	}

	if err := envfile.SetInitialized(envPath, true); err != nil {
		return err
	}

	if export {
		vars, err := envfile.Load(envPath)
		if err != nil {
			return err
		}
		if _, err := envfile.Apply(vars); err != nil {
			return err
		}
	}

	formatter := output.NewFormatter(output.ParseFormat(viper.GetString("output")),
		output.WithNoColor(viper.GetBool("no-color")))
	return formatter.Format(os.Stdout, map[string]interface{}{
		"path":        envPath,
		"initialized": true,
	})
}

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the parsed environment file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow()
		},
	}

	return cmd
}

func runShow() error {
	envPath := os.Getenv("DEVINIT_ENV_FILE")
	if envPath == "" {
		envPath = filepath.Join(config.ProjectRoot(), envfile.DefaultName)
	}

	vars, err := envfile.Load(envPath)
	if err != nil {
		return err
	}

	data := make(map[string]interface{}, len(vars))
	for k, v := range vars {
		data[k] = v
	}

	formatter := output.NewFormatter(output.ParseFormat(viper.GetString("output")),
		output.WithNoColor(viper.GetBool("no-color")))
	return formatter.Format(os.Stdout, data)
}
