package propagate

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osadchistudio/family-finance-sub001/internal/model"
)

func expense(id, desc, category string) model.Transaction {
	return model.Transaction{ID: id, Description: desc, CategoryID: category, Amount: decimal.NewFromInt(-100)}
}

func TestSelectSimilar(t *testing.T) {
	source := expense("t1", "SUPER PHARM TLV 123", "health")
	income := expense("t5", "SUPER PHARM REFUND", "")
	income.Amount = decimal.NewFromInt(100)
	excluded := expense("t6", "SUPER PHARM HOLON", "")
	excluded.IsExcluded = true

	pool := []model.Transaction{
		source,                                         // self, skipped
		expense("t2", "SUPER PHARM RAMAT GAN", ""),     // match
		expense("t3", "SUPER PHARM HAIFA", "health"),   // already categorized, skipped
		expense("t4", "MEGA BOOKS", ""),                // different merchant
		income,                                         // sign mismatch
		excluded,                                       // excluded
	}

	assert.Equal(t, []string{"t2"}, SelectSimilar(source, pool))
}

func TestSelectSimilarRerunIsNoop(t *testing.T) {
	source := expense("t1", "נטפליקס", "ent")
	other := expense("t2", "הוראת קבע נטפליקס", "")

	ids := SelectSimilar(source, []model.Transaction{source, other})
	require.Equal(t, []string{"t2"}, ids)

	other.CategoryID = "ent"
	assert.Empty(t, SelectSimilar(source, []model.Transaction{source, other}))
}

func TestSelectSimilarEmptyPool(t *testing.T) {
	assert.Empty(t, SelectSimilar(expense("t1", "SUPER PHARM", "health"), nil))
}

func TestLearnKeyword(t *testing.T) {
	kw, ok := LearnKeyword(expense("t1", "שופרסל דיל רמת גן", "groceries"))
	require.True(t, ok)
	assert.Equal(t, model.CategoryKeyword{CategoryID: "groceries", Keyword: "שופרסל", Priority: 0}, kw)

	_, ok = LearnKeyword(expense("t2", "העברה בנקאית", "groceries"))
	assert.False(t, ok, "no signature to learn")

	_, ok = LearnKeyword(expense("t3", "שופרסל", ""))
	assert.False(t, ok, "no category to learn for")
}
