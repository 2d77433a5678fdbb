package commands

import (
	"fmt"
	"sort"
	"time"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/osadchistudio/family-finance-sub001/internal/period"
)

func newReportCommand(dir *string) *cobra.Command {
	var periods int
	var mode string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show income, expenses, and trend averages per period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(*dir, periods, mode, time.Now())
		},
	}

	cmd.Flags().IntVar(&periods, "periods", 0, "number of periods to show (default from config)")
	cmd.Flags().StringVar(&mode, "mode", "", "period mode: calendar or billing (default from config)")

	return cmd
}

func runReport(dir string, count int, modeStr string, now time.Time) error {
	e, err := openEnv(dir)
	if err != nil {
		return err
	}
	defer e.close()

	if count <= 0 {
		count = e.cfg.Period.Count
	}
	if modeStr == "" {
		modeStr = e.cfg.Period.Mode
	}
	mode := period.ParseMode(modeStr)

	txns, err := e.ledger.ReadAll()
	if err != nil {
		return err
	}

	defs := period.Build(mode, now, count)
	totals := period.Bucket(txns, mode)

	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	for _, d := range defs {
		t := totals[d.Key]
		if t == nil {
			bold.Printf("%s\n", d.Label)
			fmt.Println("  no transactions")
			continue
		}

		bold.Printf("%s\n", d.Label)
		green.Printf("  income   %12s\n", t.Income.StringFixed(2))
		red.Printf("  expenses %12s\n", t.Expense.StringFixed(2))
		fmt.Printf("  net      %12s  (%d transactions)\n", t.Income.Sub(t.Expense).StringFixed(2), t.Count)

		for _, c := range topCategories(t.ByCategory, 5) {
			fmt.Printf("    %-24s %12s\n", e.categoryName(c.id), c.amount.StringFixed(2))
		}
	}

	// Averages run over the displayed window only.
	window := make(map[string]*period.Totals)
	for _, d := range defs {
		if t := totals[d.Key]; t != nil {
			window[d.Key] = t
		}
	}
	avg := period.Averages(window)
	if len(avg.PeriodsUsed) == 0 {
		return nil
	}

	bold.Printf("\nAverage over %d periods\n", len(avg.PeriodsUsed))
	green.Printf("  income   %12s\n", avg.Income.StringFixed(2))
	red.Printf("  expenses %12s\n", avg.Expense.StringFixed(2))
	if !avg.Complete {
		color.Yellow("  note: no period has data from every account yet; averages use partial periods")
	}
	return nil
}

type categoryAmount struct {
	id     string
	amount decimal.Decimal
}

func topCategories(byCategory map[string]decimal.Decimal, n int) []categoryAmount {
	out := make([]categoryAmount, 0, len(byCategory))
	for id, amt := range byCategory {
		out = append(out, categoryAmount{id: id, amount: amt})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].amount.Equal(out[j].amount) {
			return out[i].amount.GreaterThan(out[j].amount)
		}
		return out[i].id < out[j].id
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
