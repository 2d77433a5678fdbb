package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/osadchistudio/family-finance-sub001/internal/aiclass"
	"github.com/osadchistudio/family-finance-sub001/internal/auditlog"
	"github.com/osadchistudio/family-finance-sub001/internal/importer"
	"github.com/osadchistudio/family-finance-sub001/internal/logger"
	"github.com/osadchistudio/family-finance-sub001/internal/model"
)

func newImportCommand(dir *string) *cobra.Command {
	var format string
	var accountID int

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a bank or card statement CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(*dir, args[0], format, accountID)
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "statement format: bank or card (required)")
	_ = cmd.MarkFlagRequired("format")
	cmd.Flags().IntVar(&accountID, "account", 0, "account ID the statement belongs to (required)")
	_ = cmd.MarkFlagRequired("account")

	return cmd
}

func runImport(dir, file, format string, accountID int) error {
	e, err := openEnv(dir)
	if err != nil {
		return err
	}
	defer e.close()

	parser := importer.DefaultRegistry().Get(format)
	if parser == nil {
		return fmt.Errorf("unknown format %q (want bank or card)", format)
	}

	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("opening statement: %w", err)
	}
	rows, err := parser.Parse(f)
	f.Close()
	if err != nil {
		return err
	}

	table, err := e.keywordTable()
	if err != nil {
		return err
	}
	set, err := e.recurringSet()
	if err != nil {
		return err
	}

	p := &importer.Pipeline{
		Ledger:     e.ledger,
		Table:      table,
		Recurring:  set,
		Categories: e.cats,
		Classifier: newClassifier(e),
		Store:      e.kw,
	}

	ctx := logger.WithContext(context.Background(), e.log)
	res, err := p.Run(ctx, accountID, institutionFor(e, accountID, format), rows)
	if err != nil {
		return err
	}

	if err := auditlog.Append(e.dir, auditlog.Entry{
		Timestamp: time.Now(),
		Action:    "import",
		Affected:  len(res.Imported),
		BatchID:   res.BatchID,
	}); err != nil {
		return err
	}

	printImportResult(e, res)

	// Statements dropped into import/ move to processed/ once ingested.
	if filepath.Dir(file) == filepath.Join(e.dir, "import") {
		if err := importer.MarkProcessed(e.dir, filepath.Base(file)); err != nil {
			return err
		}
	}

	e.autoCommit("import: " + filepath.Base(file))
	return nil
}

// newClassifier returns the Claude classifier when an API key is
// available, nil otherwise. Imports work without one; new merchants
// just stay uncategorized.
func newClassifier(e *env) aiclass.Classifier {
	key := os.Getenv("ANTHROPIC_API_KEY")
	if key == "" {
		return nil
	}
	return aiclass.NewAnthropic(key, e.cfg.AI.Model, e.cfg.AI.Timeout())
}

// institutionFor resolves the institution from the configured account,
// falling back to the statement format.
func institutionFor(e *env, accountID int, format string) model.InstitutionKind {
	for _, a := range e.cfg.Accounts {
		if a.ID == accountID {
			return a.Account().Institution
		}
	}
	if format == "card" {
		return model.InstitutionCard
	}
	return model.InstitutionBank
}

func printImportResult(e *env, res *importer.Result) {
	fmt.Printf("Imported %d transactions (%d duplicates skipped)\n", len(res.Imported), res.Duplicates)

	categorized := 0
	for _, o := range res.Imported {
		if o.CategoryID == "" {
			continue
		}
		categorized++
		fmt.Printf("  %s  %-30s  %s (%.0f%%)\n",
			o.ID, o.Description, e.categoryName(o.CategoryID), o.Confidence*100)
	}
	if n := len(res.Imported) - categorized; n > 0 {
		color.Yellow("  %d transactions left uncategorized", n)
	}
	for _, msg := range res.Skipped {
		color.Red("  skipped: %s", msg)
	}
}
