package period

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/osadchistudio/family-finance-sub001/internal/model"
)

// Totals accumulates one period's activity. All money is decimal;
// Expense is stored as an absolute value.
type Totals struct {
	Key        string
	Income     decimal.Decimal
	Expense    decimal.Decimal
	Count      int
	ByCategory map[string]decimal.Decimal // expense totals per category
	BySource   map[model.InstitutionKind]int
}

func newTotals(key string) *Totals {
	return &Totals{
		Key:        key,
		ByCategory: make(map[string]decimal.Decimal),
		BySource:   make(map[model.InstitutionKind]int),
	}
}

// Bucket assigns every non-excluded transaction to its period and
// accumulates income, expense, per-category expense, and
// per-institution counts.
func Bucket(txns []model.Transaction, mode Mode) map[string]*Totals {
	out := make(map[string]*Totals)
	for _, t := range txns {
		if t.IsExcluded {
			continue
		}
		key := Key(t.Date, mode)
		tot, ok := out[key]
		if !ok {
			tot = newTotals(key)
			out[key] = tot
		}
		tot.Count++
		tot.BySource[t.Institution]++
		switch {
		case t.Amount.Sign() > 0:
			tot.Income = tot.Income.Add(t.Amount)
		case t.Amount.Sign() < 0:
			abs := t.Amount.Neg()
			tot.Expense = tot.Expense.Add(abs)
			if t.CategoryID != "" {
				tot.ByCategory[t.CategoryID] = tot.ByCategory[t.CategoryID].Add(abs)
			}
		}
	}
	return out
}

// AverageResult holds period averages and the periods they were
// computed over.
type AverageResult struct {
	Income      decimal.Decimal
	Expense     decimal.Decimal
	ByCategory  map[string]decimal.Decimal
	PeriodsUsed []string
	// Complete is true when every averaged period had data from every
	// institution kind present in the dataset.
	Complete bool
}

// Averages computes per-period averages. A period is usable when it has
// any income or expense; it is complete when it additionally holds at
// least one transaction from every institution kind appearing anywhere
// in the dataset. Averages use the complete set, falling back to the
// usable set when no period is complete (e.g. a brand-new install), so
// thin partial periods never drag the averages down while averages stay
// computable.
func Averages(totals map[string]*Totals) AverageResult {
	kinds := make(map[model.InstitutionKind]struct{})
	for _, t := range totals {
		for k, n := range t.BySource {
			if n > 0 {
				kinds[k] = struct{}{}
			}
		}
	}

	var usable, complete []*Totals
	for _, t := range totals {
		if t.Income.Sign() == 0 && t.Expense.Sign() == 0 {
			continue
		}
		usable = append(usable, t)
		if hasAllKinds(t, kinds) {
			complete = append(complete, t)
		}
	}

	picked := complete
	res := AverageResult{ByCategory: make(map[string]decimal.Decimal), Complete: true}
	if len(picked) == 0 {
		picked = usable
		res.Complete = false
	}
	if len(picked) == 0 {
		return res
	}

	n := decimal.NewFromInt(int64(len(picked)))
	income := decimal.Zero
	expense := decimal.Zero
	byCat := make(map[string]decimal.Decimal)
	for _, t := range picked {
		income = income.Add(t.Income)
		expense = expense.Add(t.Expense)
		for cat, amt := range t.ByCategory {
			byCat[cat] = byCat[cat].Add(amt)
		}
		res.PeriodsUsed = append(res.PeriodsUsed, t.Key)
	}
	sort.Strings(res.PeriodsUsed)

	res.Income = income.Div(n)
	res.Expense = expense.Div(n)
	for cat, amt := range byCat {
		res.ByCategory[cat] = amt.Div(n)
	}
	return res
}

func hasAllKinds(t *Totals, kinds map[model.InstitutionKind]struct{}) bool {
	for k := range kinds {
		if t.BySource[k] == 0 {
			return false
		}
	}
	return true
}
