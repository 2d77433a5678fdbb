package dedup

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/osadchistudio/family-finance-sub001/internal/model"
)

var d1 = time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)
var d2 = time.Date(2024, time.March, 6, 0, 0, 0, 0, time.UTC)

func amt(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestTupleCollision(t *testing.T) {
	ix := NewIndex(nil)
	assert.False(t, ix.Seen(1, "", d1, amt("-50.00"), "SUPER PHARM"))
	assert.True(t, ix.Seen(1, "", d1, amt("-50.00"), "super pharm"), "case-insensitive tuple")
	assert.False(t, ix.Seen(1, "", d2, amt("-50.00"), "SUPER PHARM"), "different date is a new row")
	assert.False(t, ix.Seen(2, "", d1, amt("-50.00"), "SUPER PHARM"), "other account does not collide")
}

func TestReferenceCollision(t *testing.T) {
	ix := NewIndex(nil)
	assert.False(t, ix.Seen(1, "V123", d1, amt("-50.00"), "SUPER PHARM"))
	// Same voucher collapses even when date and amount differ.
	assert.True(t, ix.Seen(1, "V123", d2, amt("-70.00"), "OTHER DESC"))
	assert.False(t, ix.Seen(1, "V124", d2, amt("-70.00"), "OTHER DESC 2"))
}

func TestHistoryBlocksBothKeys(t *testing.T) {
	existing := []model.Transaction{{
		AccountID:   1,
		Reference:   "V9",
		Date:        d1,
		Amount:      amt("-10.00"),
		Description: "ACME",
	}}
	ix := NewIndex(existing)

	assert.True(t, ix.Seen(1, "V9", d2, amt("-99.00"), "WHATEVER"), "reference collides")
	assert.True(t, ix.Seen(1, "", d1, amt("-10.00"), "acme"), "tuple collides even though history row has a reference")
}

func TestAmountCanonicalization(t *testing.T) {
	ix := NewIndex(nil)
	assert.False(t, ix.Seen(1, "", d1, amt("50"), "X"))
	assert.True(t, ix.Seen(1, "", d1, amt("50.00"), "X"), "50 and 50.00 are the same amount")
}
