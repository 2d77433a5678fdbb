// Package propagate spreads a manual category correction to the other
// transactions of the same merchant and harvests a keyword from the
// correction for future automatic categorization.
package propagate

import (
	"github.com/osadchistudio/family-finance-sub001/internal/model"
	"github.com/osadchistudio/family-finance-sub001/internal/signature"
	"github.com/osadchistudio/family-finance-sub001/internal/similarity"
)

// SelectSimilar returns the IDs of the other transactions the source's
// category should propagate to: not excluded, same amount sign (a
// category is only meaningful within one sign), currently carrying a
// different category, and matching the source merchant. Transactions
// already holding the category are skipped, which makes a re-run a
// no-op.
func SelectSimilar(source model.Transaction, pool []model.Transaction) []string {
	var ids []string
	for _, t := range pool {
		if t.ID == source.ID || t.IsExcluded {
			continue
		}
		if t.Amount.Sign() != source.Amount.Sign() {
			continue
		}
		if t.CategoryID == source.CategoryID {
			continue
		}
		if similarity.SameMerchant(source.Description, t.Description) {
			ids = append(ids, t.ID)
		}
	}
	return ids
}

// LearnKeyword derives a non-exact priority-0 keyword entry from the
// corrected transaction. Returns false when the source has no category
// or no extractable signature. The keyword store treats a duplicate
// (keyword, category) pair as a no-op.
func LearnKeyword(source model.Transaction) (model.CategoryKeyword, bool) {
	if source.CategoryID == "" {
		return model.CategoryKeyword{}, false
	}
	kw, ok := signature.Extract(source.Description)
	if !ok {
		return model.CategoryKeyword{}, false
	}
	return model.CategoryKeyword{
		CategoryID: source.CategoryID,
		Keyword:    kw,
		IsExact:    false,
		Priority:   0,
	}, true
}
