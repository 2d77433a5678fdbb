package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// InstitutionKind classifies the source institution of a statement feed.
type InstitutionKind string

const (
	InstitutionBank InstitutionKind = "bank"
	InstitutionCard InstitutionKind = "card"
)

// Transaction represents one imported statement line.
type Transaction struct {
	ID          string // "YYYY-MM-NNN"
	AccountID   int
	Date        time.Time
	Description string          // raw statement text, immutable after import
	Amount      decimal.Decimal // negative = expense, positive = income
	CategoryID  string          // empty = uncategorized
	// IsAutoCategorized is true when the category came from the keyword
	// table or the AI classifier rather than a manual edit.
	IsAutoCategorized bool
	IsRecurring       bool
	IsExcluded        bool
	Reference         string // bank voucher number, may be empty
	Institution       InstitutionKind
}

// IsExpense reports whether the transaction is an expense.
func (t Transaction) IsExpense() bool {
	return t.Amount.Sign() < 0
}

// IsIncome reports whether the transaction is income.
func (t Transaction) IsIncome() bool {
	return t.Amount.Sign() > 0
}
