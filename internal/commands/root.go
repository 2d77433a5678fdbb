// Package commands wires the famfin CLI.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/osadchistudio/family-finance-sub001/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var dir string

	rootCmd := &cobra.Command{
		Use:     "famfin",
		Short:   "Family finance tracking for Israeli bank and card statements",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dir, "dir", ".", "data directory")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newImportCommand(&dir))
	rootCmd.AddCommand(newCategorizeCommand(&dir))
	rootCmd.AddCommand(newRecurringCommand(&dir))
	rootCmd.AddCommand(newReportCommand(&dir))
	rootCmd.AddCommand(newSuggestCommand(&dir))

	return rootCmd
}
