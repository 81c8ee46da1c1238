// Package scaffold implements `devinit scaffold`: workspace tree generation
// from a YAML structure document.
package scaffold

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/msandoval/devinit/internal/output"
	generator "github.com/msandoval/devinit/internal/scaffold"
	"github.com/msandoval/devinit/internal/util"
)

// NewScaffoldCmd creates the scaffold command
func NewScaffoldCmd() *cobra.Command {
	var (
		structureFile string
		force         bool
		dryRun        bool
	)

	cmd := &cobra.Command{
		Use:   "scaffold <path>",
		Short: "Generate a workspace directory tree",
		Long: `Create the workspace layout under the given path from a YAML
structure document. The built-in layout is used unless --structure points
to a custom file. Existing files are left alone unless --force.`,
		Example: `  # Generate the default layout
  devinit scaffold ./workspace

  # Preview without writing
  devinit scaffold ./workspace --dry-run

  # Use a custom structure document
  devinit scaffold ./workspace --structure layout.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScaffold(args[0], structureFile, force, dryRun)
		},
	}

	cmd.Flags().StringVar(&structureFile, "structure", "", "YAML structure document (default built-in layout)")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing files")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report what would be created without writing")

	return cmd
}

func runScaffold(root, structureFile string, force, dryRun bool) error {
	var (
		structure *generator.Structure
		err       error
	)

	if structureFile != "" {
		structure, err = generator.LoadStructure(structureFile)
	} else {
		structure, err = generator.DefaultStructure()
	}
	if err != nil {
		return util.WrapErrorf(err, "failed to load workspace structure")
	}

	result, err := generator.Generate(root, structure, generator.GenerateOptions{
		DryRun: dryRun,
		Force:  force,
	})
	if err != nil {
		return err
	}

	formatter := output.NewFormatter(output.ParseFormat(viper.GetString("output")),
		output.WithNoColor(viper.GetBool("no-color")))
	return formatter.Format(os.Stdout, map[string]interface{}{
		"root":          root,
		"dirs_created":  result.DirsCreated,
		"files_created": result.FilesCreated,
		"files_skipped": result.FilesSkipped,
		"dry_run":       dryRun,
	})
}
