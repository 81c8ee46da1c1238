package scaffold

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// GenerateOptions controls tree creation
type GenerateOptions struct {
	// DryRun logs what would be created without writing anything
	DryRun bool

	// Force overwrites existing files; otherwise they are skipped
	Force bool
}

// Result summarizes a generation run
type Result struct {
	// DirsCreated counts directories that did not exist before
	DirsCreated int

	// FilesCreated counts files written
	FilesCreated int

	// FilesSkipped counts files left alone because they already existed
	FilesSkipped int
}

// Generate materializes the structure under root. Existing files are
// skipped unless opts.Force; directories are always ensured. DryRun walks
// the whole tree and reports counts without touching the filesystem.
func Generate(root string, structure *Structure, opts GenerateOptions) (Result, error) {
	var res Result

	if !opts.DryRun {
		if err := os.MkdirAll(root, 0755); err != nil {
			return res, fmt.Errorf("failed to create workspace root: %w", err)
		}
	}

	if err := generateNode(root, structure.Root, opts, &res); err != nil {
		return res, err
	}

	slog.Info("workspace generated",
		"root", root,
		"dirs", res.DirsCreated,
		"files", res.FilesCreated,
		"skipped", res.FilesSkipped,
		"dry_run", opts.DryRun)

	return res, nil
}

func generateNode(dir string, node *Node, opts GenerateOptions, res *Result) error {
	for _, name := range node.Files {
		if err := generateFile(filepath.Join(dir, name), opts, res); err != nil {
			return err
		}
	}

	for name, child := range node.Dirs {
		childDir := filepath.Join(dir, name)

		if _, err := os.Stat(childDir); os.IsNotExist(err) {
			res.DirsCreated++
			if opts.DryRun {
				slog.Debug("dry run: would create directory", "path", childDir)
			} else if err := os.MkdirAll(childDir, 0755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", childDir, err)
			}
		}

		if err := generateNode(childDir, child, opts, res); err != nil {
			return err
		}
	}

	return nil
}

func generateFile(path string, opts GenerateOptions, res *Result) error {
	if _, err := os.Stat(path); err == nil && !opts.Force {
		res.FilesSkipped++
		slog.Debug("file exists, skipping", "path", path)
		return nil
	}

	res.FilesCreated++
	if opts.DryRun {
		slog.Debug("dry run: would create file", "path", path)
		return nil
	}

	if err := os.WriteFile(path, []byte(PlaceholderContent(path)), 0644); err != nil {
		return fmt.Errorf("failed to create file %s: %w", path, err)
	}

	return nil
}

// PlaceholderContent returns starter content keyed on the file's name and
// extension
func PlaceholderContent(path string) string {
	name := filepath.Base(path)
	title := strings.TrimSuffix(name, filepath.Ext(name))

	switch {
	case name == "__init__.py":
		return "\"\"\"Module initialization.\"\"\"\n"
	case name == "Makefile":
		return ".PHONY: all\nall:\n"
	case name == ".gitignore":
		return "__pycache__/\n*.pyc\n.env\n"
	}

	switch filepath.Ext(name) {
	case ".py":
		return fmt.Sprintf("\"\"\"%s\"\"\"\n", title)
	case ".md":
		return fmt.Sprintf("# %s\n", title)
	case ".yaml", ".yml":
		return fmt.Sprintf("# %s configuration\n", title)
	case ".json":
		return "{}\n"
	case ".sh":
		return "#!/usr/bin/env bash\nset -euo pipefail\n"
	case ".toml":
		return fmt.Sprintf("# %s\n", title)
	case ".env", "":
		return "# Placeholder\n"
	default:
		return "# Placeholder\n"
	}
}
