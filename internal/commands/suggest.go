package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/osadchistudio/family-finance-sub001/internal/categorize"
)

func newSuggestCommand(dir *string) *cobra.Command {
	var min float64

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Suggest categories for uncategorized transactions from your history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSuggest(*dir, min)
		},
	}

	cmd.Flags().Float64Var(&min, "min", 0.5, "minimum confidence to show a suggestion")

	return cmd
}

func runSuggest(dir string, min float64) error {
	e, err := openEnv(dir)
	if err != nil {
		return err
	}
	defer e.close()

	txns, err := e.ledger.ReadAll()
	if err != nil {
		return err
	}

	sug, ok := categorize.NewSuggester(txns)
	if !ok {
		fmt.Println("Not enough categorized history to suggest from yet.")
		return nil
	}

	shown := 0
	for _, t := range txns {
		if t.CategoryID != "" || t.IsExcluded {
			continue
		}
		s, ok := sug.Suggest(t.Description)
		if !ok || s.Confidence < min {
			continue
		}
		shown++
		fmt.Printf("%s  %-30s  %s (%.0f%%)\n", t.ID, t.Description, e.categoryName(s.CategoryID), s.Confidence*100)
	}

	if shown == 0 {
		fmt.Println("No suggestions above the confidence threshold.")
		return nil
	}
	fmt.Println("\nApply with: famfin categorize <transaction-id> <category-id>")
	return nil
}
