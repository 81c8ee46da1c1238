package cli

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/msandoval/devinit/internal/cli/debug"
	"github.com/msandoval/devinit/internal/cli/detect"
	"github.com/msandoval/devinit/internal/cli/env"
	"github.com/msandoval/devinit/internal/cli/optimize"
	"github.com/msandoval/devinit/internal/cli/provision"
	"github.com/msandoval/devinit/internal/cli/scaffold"
)

var cfgFile string

// Execute runs the root command with the provided context
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

// newRootCmd creates the root command
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "devinit",
		Short: "devinit - Development container bootstrap tool",
		Long: `devinit bootstraps a development container: it detects system
resources, manages the environment file, provisions Git repositories,
tunes the compiler toolchain, and scaffolds workspace layouts.

Long-running steps fan out over named worker pools that are shut down
automatically when the process exits.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .devcontainer/container/config.yaml)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "output format (json, yaml, table)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output with debug logging")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	rootCmd.PersistentFlags().Duration("timeout", 30*time.Second, "timeout for operations")
	rootCmd.PersistentFlags().IntP("parallel", "p", 0, "number of parallel workers (0 auto-sizes)")

	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("no-color", rootCmd.PersistentFlags().Lookup("no-color"))
	viper.BindPFlag("timeout", rootCmd.PersistentFlags().Lookup("timeout"))
	viper.BindPFlag("parallel", rootCmd.PersistentFlags().Lookup("parallel"))

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(detect.NewDetectCmd())
	rootCmd.AddCommand(provision.NewProvisionCmd())
	rootCmd.AddCommand(optimize.NewOptimizeCmd())
	rootCmd.AddCommand(env.NewEnvCmd())
	rootCmd.AddCommand(scaffold.NewScaffoldCmd())
	rootCmd.AddCommand(debug.NewDebugCmd())

	return rootCmd
}

// initConfig wires environment variables into viper and configures logging
func initConfig(cmd *cobra.Command) error {
	viper.SetEnvPrefix("DEVINIT")
	viper.AutomaticEnv()

	setupLogging(cmd)

	return nil
}

// setupLogging configures structured logging with slog
func setupLogging(cmd *cobra.Command) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	noColor, _ := cmd.Flags().GetBool("no-color")

	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: logLevel,
	}

	var handler slog.Handler
	if noColor {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	slog.SetDefault(slog.New(handler))

	if verbose {
		slog.Debug("verbose logging enabled")
	}
}
