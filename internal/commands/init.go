package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/scotia/internal/categories"
	"github.com/cleared-dev/scotia/internal/config"
	"github.com/cleared-dev/scotia/internal/gitops"
)

const categoriesFile = "categories.yaml"

func newInitCommand() *cobra.Command {
	var useGit bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Set up a directory with a config file and an editable category table",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd, absDir, useGit)
		},
	}

	cmd.Flags().BoolVar(&useGit, "git", false, "track the workspace in a git repository")

	return cmd
}

func runInit(cmd *cobra.Command, dir string, useGit bool) error {
	cfgPath := filepath.Join(dir, configFile)
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("%s already exists", cfgPath)
	}

	// Ledgers dropped here are picked up with --dir import.
	if err := os.MkdirAll(filepath.Join(dir, "import"), 0o755); err != nil {
		return fmt.Errorf("creating directory import: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "import", ".gitkeep"), []byte{}, 0o644); err != nil {
		return fmt.Errorf("writing .gitkeep: %w", err)
	}

	if err := categories.Save(filepath.Join(dir, categoriesFile), categories.Default()); err != nil {
		return fmt.Errorf("writing category table: %w", err)
	}

	cfg := config.Default()
	cfg.Categories.Path = categoriesFile
	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	if !useGit {
		fmt.Fprintf(cmd.OutOrStdout(), "Initialized scotia workspace at %s\n", dir)
		return nil
	}

	// Ledgers and .env hold account data; only the configuration is tracked.
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(".env\nimport/*\n!import/.gitkeep\n"), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}
	repo, err := gitops.Init(cmd.Context(), dir, gitops.DefaultAuthor)
	if err != nil {
		return err
	}
	hash, err := repo.CommitAll(cmd.Context(), "init: scotia workspace")
	if err != nil {
		return fmt.Errorf("initial commit: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Initialized scotia workspace at %s (%s)\n", dir, hash)
	return nil
}
