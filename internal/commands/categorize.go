package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/osadchistudio/family-finance-sub001/internal/auditlog"
	"github.com/osadchistudio/family-finance-sub001/internal/propagate"
)

func newCategorizeCommand(dir *string) *cobra.Command {
	var noSimilar bool
	var learn bool

	cmd := &cobra.Command{
		Use:   "categorize <transaction-id> <category-id>",
		Short: "Set a transaction's category and cascade to similar merchants",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCategorize(*dir, args[0], args[1], noSimilar, learn)
		},
	}

	cmd.Flags().BoolVar(&noSimilar, "no-similar", false, "do not cascade to similar transactions")
	cmd.Flags().BoolVar(&learn, "learn", false, "save the merchant signature as a keyword for this category")

	return cmd
}

func runCategorize(dir, txnID, categoryID string, noSimilar, learn bool) error {
	e, err := openEnv(dir)
	if err != nil {
		return err
	}
	defer e.close()

	if !e.cats.Exists(categoryID) {
		return fmt.Errorf("unknown category %q", categoryID)
	}

	src, err := e.ledger.Get(txnID)
	if err != nil {
		return err
	}

	// The manual correction itself.
	if _, err := e.ledger.SetCategory([]string{txnID}, categoryID, false); err != nil {
		return err
	}
	src.CategoryID = categoryID
	fmt.Printf("%s -> %s\n", txnID, e.categoryName(categoryID))

	// Cascade to other transactions of the same merchant. Cascaded
	// matches count as manually reviewed, not auto-categorized: the
	// user vouched for the merchant, not a heuristic.
	if e.cfg.Propagation.ApplyToSimilar && !noSimilar {
		pool, err := e.ledger.ReadAll()
		if err != nil {
			return err
		}
		ids := propagate.SelectSimilar(src, pool)
		cascaded, err := e.ledger.SetCategory(ids, categoryID, false)
		if err != nil {
			return err
		}
		if cascaded > 0 {
			fmt.Printf("  cascaded to %d similar transactions\n", cascaded)
			if err := auditlog.Append(e.dir, auditlog.Entry{
				Timestamp: time.Now(),
				Action:    "cascade-category",
				Category:  categoryID,
				Affected:  cascaded,
			}); err != nil {
				return err
			}
		}
	}

	// Remember the merchant for future imports.
	if learn || e.cfg.Propagation.LearnKeywords {
		if kw, ok := propagate.LearnKeyword(src); ok {
			added, err := e.kw.PutCategoryKeyword(kw)
			if err != nil {
				return err
			}
			if added {
				fmt.Printf("  learned keyword %q\n", kw.Keyword)
				if err := auditlog.Append(e.dir, auditlog.Entry{
					Timestamp: time.Now(),
					Action:    "learn-keyword",
					Keyword:   kw.Keyword,
					Category:  categoryID,
				}); err != nil {
					return err
				}
			}
		}
	}

	e.autoCommit("categorize: " + txnID)
	return nil
}
