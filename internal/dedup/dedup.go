// Package dedup builds duplicate-detection keys for statement rows so
// re-importing a file never creates the same transaction twice.
package dedup

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/osadchistudio/family-finance-sub001/internal/model"
)

// RefKey is the preferred key, derived from the bank voucher reference.
// Empty when the row has no reference.
func RefKey(accountID int, reference string) string {
	if reference == "" {
		return ""
	}
	return fmt.Sprintf("ref:%d:%s", accountID, reference)
}

// TupleKey is the fallback key over (date, amount, description). The
// description is only case-folded, not fully normalized: banks do
// distinguish rows that differ in punctuation.
func TupleKey(accountID int, date time.Time, amount decimal.Decimal, description string) string {
	return fmt.Sprintf("tup:%d:%s:%s:%s",
		accountID,
		date.Format("2006-01-02"),
		amount.StringFixed(2),
		strings.ToLower(strings.TrimSpace(description)),
	)
}

// Index tracks the keys of already-persisted transactions plus the rows
// accepted so far in the current batch.
type Index struct {
	seen map[string]struct{}
}

// NewIndex registers both keys of every existing transaction: a stored
// reference must block reference collisions AND tuple collisions.
func NewIndex(existing []model.Transaction) *Index {
	ix := &Index{seen: make(map[string]struct{}, 2*len(existing))}
	for _, t := range existing {
		ix.add(t.AccountID, t.Reference, t.Date, t.Amount, t.Description)
	}
	return ix
}

// Seen reports whether a row collides with history or with an earlier
// row of the batch, and registers it when it does not.
func (ix *Index) Seen(accountID int, reference string, date time.Time, amount decimal.Decimal, description string) bool {
	if k := RefKey(accountID, reference); k != "" {
		if _, dup := ix.seen[k]; dup {
			return true
		}
	}
	if _, dup := ix.seen[TupleKey(accountID, date, amount, description)]; dup {
		return true
	}
	ix.add(accountID, reference, date, amount, description)
	return false
}

func (ix *Index) add(accountID int, reference string, date time.Time, amount decimal.Decimal, description string) {
	if k := RefKey(accountID, reference); k != "" {
		ix.seen[k] = struct{}{}
	}
	ix.seen[TupleKey(accountID, date, amount, description)] = struct{}{}
}
