package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/osadchistudio/family-finance-sub001/internal/categories"
	"github.com/osadchistudio/family-finance-sub001/internal/config"
	"github.com/osadchistudio/family-finance-sub001/internal/gitops"
	"github.com/osadchistudio/family-finance-sub001/internal/store"
)

func newInitCommand() *cobra.Command {
	var household string
	var noGit bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new famfin data directory",
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

			return runInit(absDir, household, !noGit)
		},
	}

	cmd.Flags().StringVar(&household, "household", "", "household name (required)")
	_ = cmd.MarkFlagRequired("household")
	cmd.Flags().BoolVar(&noGit, "no-git", false, "skip git repository setup")

	return cmd
}

func runInit(dir, household string, withGit bool) error {
	// Create directory structure.
	dirs := []string{
		"logs",
		"import",
		filepath.Join("import", "processed"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	// Write famfin.yaml.
	cfg := config.Default(household)
	if err := config.Save(filepath.Join(dir, config.FileName), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Write the starter category list.
	svc := categories.NewService(categories.DefaultSet())
	if err := svc.Save(dir); err != nil {
		return fmt.Errorf("writing category list: %w", err)
	}

	// Write .gitignore. The keyword store is a binary database and does
	// not belong in history.
	gitignore := store.FileName + "\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	// Write import/.gitkeep.
	if err := os.WriteFile(filepath.Join(dir, "import", ".gitkeep"), []byte{}, 0o644); err != nil {
		return fmt.Errorf("writing .gitkeep: %w", err)
	}

	if withGit {
		if err := gitops.Init(dir); err != nil {
			return fmt.Errorf("git init: %w", err)
		}
		hash, err := gitops.CommitAll(dir, "init: "+household, cfg.Git.AuthorName, cfg.Git.AuthorEmail)
		if err != nil {
			return fmt.Errorf("initial commit: %w", err)
		}
		fmt.Printf("Initialized famfin directory at %s (%s)\n", dir, hash)
		return nil
	}

	fmt.Printf("Initialized famfin directory at %s\n", dir)
	return nil
}
