// Package recurring detects recurring charges by keyword and learns new
// keywords from explicit user actions. Candidate selection is pure; the
// ledger applies the resulting mutations so the logic stays testable
// without a persistence layer.
package recurring

import (
	"strings"

	"github.com/osadchistudio/family-finance-sub001/internal/model"
	"github.com/osadchistudio/family-finance-sub001/internal/signature"
	"github.com/osadchistudio/family-finance-sub001/internal/textnorm"
)

// Set is the caller-owned recurring-keyword table. Callers must Reload
// after mutating the backing store.
type Set struct {
	keywords []string // normalized
}

// NewSet builds a Set from stored keywords.
func NewSet(keywords []string) *Set {
	s := &Set{}
	s.Reload(keywords)
	return s
}

// Reload replaces the set contents.
func (s *Set) Reload(keywords []string) {
	s.keywords = s.keywords[:0]
	seen := make(map[string]struct{}, len(keywords))
	for _, kw := range keywords {
		n := textnorm.Normalize(kw)
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		s.keywords = append(s.keywords, n)
	}
}

// IsRecurring reports whether the description contains any stored
// keyword. First hit wins; it is a boolean signal, so no priorities.
func (s *Set) IsRecurring(description string) bool {
	desc := textnorm.Normalize(description)
	if desc == "" {
		return false
	}
	for _, kw := range s.keywords {
		if strings.Contains(desc, kw) {
			return true
		}
	}
	return false
}

// Contains reports whether the exact keyword is stored.
func (s *Set) Contains(keyword string) bool {
	n := textnorm.Normalize(keyword)
	for _, kw := range s.keywords {
		if kw == n {
			return true
		}
	}
	return false
}

// Len returns the number of stored keywords.
func (s *Set) Len() int {
	return len(s.keywords)
}

// LearnResult describes a learn action: the keyword extracted from the
// source and the IDs of the other transactions the flag cascades to.
type LearnResult struct {
	Keyword      string
	CandidateIDs []string
}

// Learn extracts a keyword from the source description and selects
// every other not-yet-recurring transaction whose description contains
// it. Returns false when no signature is extractable. Re-running after
// the cascade was applied selects nothing, so the operation is
// idempotent end to end.
func Learn(source model.Transaction, pool []model.Transaction) (LearnResult, bool) {
	kw, ok := signature.Extract(source.Description)
	if !ok {
		return LearnResult{}, false
	}
	res := LearnResult{Keyword: kw}
	for _, t := range pool {
		if t.ID == source.ID || t.IsRecurring {
			continue
		}
		if strings.Contains(textnorm.Normalize(t.Description), kw) {
			res.CandidateIDs = append(res.CandidateIDs, t.ID)
		}
	}
	return res, true
}

// Unlearn extracts the keyword to remove from the set. It deliberately
// does NOT select transactions to un-mark: flags cascaded earlier may
// have been individually reviewed since, so removal only stops future
// auto-detection.
func Unlearn(source model.Transaction) (string, bool) {
	return signature.Extract(source.Description)
}

// SelectIdentical returns the other transactions sharing the source's
// (category, description, amount) tuple whose recurring flag differs
// from the target value. This exact-duplicate propagation is
// independent of the keyword mechanism.
func SelectIdentical(source model.Transaction, pool []model.Transaction, recurring bool) []string {
	var ids []string
	for _, t := range pool {
		if t.ID == source.ID || t.IsRecurring == recurring {
			continue
		}
		if t.CategoryID != source.CategoryID {
			continue
		}
		if !strings.EqualFold(t.Description, source.Description) {
			continue
		}
		if !t.Amount.Equal(source.Amount) {
			continue
		}
		ids = append(ids, t.ID)
	}
	return ids
}
