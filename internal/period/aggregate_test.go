package period

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osadchistudio/family-finance-sub001/internal/model"
)

func tx(date time.Time, amount string, category string, inst model.InstitutionKind) model.Transaction {
	return model.Transaction{
		Date:        date,
		Amount:      decimal.RequireFromString(amount),
		CategoryID:  category,
		Institution: inst,
	}
}

func TestBucket(t *testing.T) {
	txns := []model.Transaction{
		tx(day(2024, time.January, 5), "10000.00", "", model.InstitutionBank),
		tx(day(2024, time.January, 12), "-250.50", "groceries", model.InstitutionCard),
		tx(day(2024, time.January, 20), "-99.50", "groceries", model.InstitutionCard),
		tx(day(2024, time.February, 2), "-40.00", "transport", model.InstitutionCard),
	}
	excluded := tx(day(2024, time.January, 15), "-999.00", "groceries", model.InstitutionCard)
	excluded.IsExcluded = true
	txns = append(txns, excluded)

	got := Bucket(txns, ModeCalendar)
	require.Len(t, got, 2)

	jan := got["2024-01"]
	require.NotNil(t, jan)
	assert.Equal(t, 3, jan.Count)
	assert.True(t, jan.Income.Equal(decimal.RequireFromString("10000.00")))
	assert.True(t, jan.Expense.Equal(decimal.RequireFromString("350.00")), "expenses stored as absolute values")
	assert.True(t, jan.ByCategory["groceries"].Equal(decimal.RequireFromString("350.00")))
	assert.Equal(t, 1, jan.BySource[model.InstitutionBank])
	assert.Equal(t, 2, jan.BySource[model.InstitutionCard])
}

func TestBucketBillingMode(t *testing.T) {
	txns := []model.Transaction{
		tx(day(2024, time.January, 9), "-50.00", "", model.InstitutionCard),
		tx(day(2024, time.January, 10), "-60.00", "", model.InstitutionCard),
	}
	got := Bucket(txns, ModeBilling)
	require.Len(t, got, 2)
	assert.NotNil(t, got["2023-12"])
	assert.NotNil(t, got["2024-01"])
}

func TestAveragesPrefersCompletePeriods(t *testing.T) {
	txns := []model.Transaction{
		// January: bank + card, complete.
		tx(day(2024, time.January, 3), "-100.00", "", model.InstitutionBank),
		tx(day(2024, time.January, 4), "-100.00", "", model.InstitutionCard),
		// February: bank only, usable but incomplete.
		tx(day(2024, time.February, 3), "-10.00", "", model.InstitutionBank),
	}
	res := Averages(Bucket(txns, ModeCalendar))
	assert.True(t, res.Complete)
	assert.Equal(t, []string{"2024-01"}, res.PeriodsUsed)
	assert.True(t, res.Expense.Equal(decimal.RequireFromString("200.00")))
}

func TestAveragesFallsBackToUsable(t *testing.T) {
	// Card transactions exist, but no period has both kinds.
	txns := []model.Transaction{
		tx(day(2024, time.January, 3), "-100.00", "", model.InstitutionBank),
		tx(day(2024, time.February, 3), "-300.00", "", model.InstitutionCard),
	}
	res := Averages(Bucket(txns, ModeCalendar))
	assert.False(t, res.Complete)
	assert.Equal(t, []string{"2024-01", "2024-02"}, res.PeriodsUsed)
	assert.True(t, res.Expense.Equal(decimal.RequireFromString("200.00")))
}

func TestAveragesEmpty(t *testing.T) {
	res := Averages(nil)
	assert.Empty(t, res.PeriodsUsed)
	assert.True(t, res.Expense.IsZero())
	assert.True(t, res.Income.IsZero())
}

func TestAveragesPerCategory(t *testing.T) {
	txns := []model.Transaction{
		tx(day(2024, time.January, 3), "-100.00", "groceries", model.InstitutionBank),
		tx(day(2024, time.February, 3), "-300.00", "groceries", model.InstitutionBank),
	}
	res := Averages(Bucket(txns, ModeCalendar))
	assert.True(t, res.ByCategory["groceries"].Equal(decimal.RequireFromString("200.00")))
}
