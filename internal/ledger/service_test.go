package ledger

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osadchistudio/family-finance-sub001/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sample(txnID string, d time.Time, amount string) model.Transaction {
	return model.Transaction{
		ID:          txnID,
		AccountID:   1,
		Date:        d,
		Description: "SUPER PHARM TLV",
		Amount:      dec(amount),
		Institution: model.InstitutionCard,
	}
}

func TestAppendAndReadMonth(t *testing.T) {
	svc := NewService(t.TempDir())

	err := svc.Append([]model.Transaction{
		sample("2025-01-001", date(2025, time.January, 15), "-42.90"),
		sample("2025-01-002", date(2025, time.January, 16), "100.00"),
	})
	require.NoError(t, err)

	txns, err := svc.ReadMonth(2025, 1)
	require.NoError(t, err)
	require.Len(t, txns, 2)
	assert.True(t, txns[0].Amount.Equal(dec("-42.90")))
	assert.Equal(t, model.InstitutionCard, txns[0].Institution)
}

func TestAppendSpansMonths(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir)

	err := svc.Append([]model.Transaction{
		sample("2025-01-001", date(2025, time.January, 31), "-10.00"),
		sample("2025-02-001", date(2025, time.February, 1), "-20.00"),
	})
	require.NoError(t, err)

	for _, p := range []string{"2025/01/transactions.csv", "2025/02/transactions.csv"} {
		_, err := os.Stat(filepath.Join(dir, p))
		require.NoError(t, err, p)
	}

	all, err := svc.ReadAll()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestNextSeq(t *testing.T) {
	svc := NewService(t.TempDir())

	seq, err := svc.NextSeq(2025, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, seq)

	require.NoError(t, svc.Append([]model.Transaction{
		sample("2025-03-007", date(2025, time.March, 2), "-5.00"),
	}))

	seq, err = svc.NextSeq(2025, 3)
	require.NoError(t, err)
	assert.Equal(t, 8, seq)
}

func TestSetCategoryIdempotent(t *testing.T) {
	svc := NewService(t.TempDir())
	require.NoError(t, svc.Append([]model.Transaction{
		sample("2025-01-001", date(2025, time.January, 5), "-10.00"),
		sample("2025-01-002", date(2025, time.January, 6), "-20.00"),
	}))

	n, err := svc.SetCategory([]string{"2025-01-001", "2025-01-002"}, "health", false)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// Second run changes nothing.
	n, err = svc.SetCategory([]string{"2025-01-001", "2025-01-002"}, "health", false)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	got, err := svc.Get("2025-01-001")
	require.NoError(t, err)
	assert.Equal(t, "health", got.CategoryID)
	assert.False(t, got.IsAutoCategorized)
}

func TestSetRecurringIdempotent(t *testing.T) {
	svc := NewService(t.TempDir())
	require.NoError(t, svc.Append([]model.Transaction{
		sample("2025-01-001", date(2025, time.January, 5), "-10.00"),
	}))

	n, err := svc.SetRecurring([]string{"2025-01-001"}, true)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = svc.SetRecurring([]string{"2025-01-001"}, true)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestUpdateEmptyIDs(t *testing.T) {
	svc := NewService(t.TempDir())
	n, err := svc.SetCategory(nil, "health", false)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestGetMissing(t *testing.T) {
	svc := NewService(t.TempDir())
	_, err := svc.Get("2025-01-001")
	assert.Error(t, err)
}

func TestReadAllEmpty(t *testing.T) {
	svc := NewService(t.TempDir())
	txns, err := svc.ReadAll()
	require.NoError(t, err)
	assert.Empty(t, txns)
}

func TestRoundTripPreservesFlags(t *testing.T) {
	svc := NewService(t.TempDir())
	txn := sample("2025-01-001", date(2025, time.January, 5), "-10.00")
	txn.IsRecurring = true
	txn.IsExcluded = true
	txn.Reference = "V42"
	txn.CategoryID = "ent"
	txn.IsAutoCategorized = true
	require.NoError(t, svc.Append([]model.Transaction{txn}))

	got, err := svc.Get("2025-01-001")
	require.NoError(t, err)
	assert.Equal(t, txn.Reference, got.Reference)
	assert.True(t, got.IsRecurring)
	assert.True(t, got.IsExcluded)
	assert.True(t, got.IsAutoCategorized)
	assert.Equal(t, "ent", got.CategoryID)
}
