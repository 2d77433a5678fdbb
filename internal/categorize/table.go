// Package categorize maps statement descriptions to categories using a
// learned keyword table with confidence scoring.
package categorize

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/osadchistudio/family-finance-sub001/internal/model"
	"github.com/osadchistudio/family-finance-sub001/internal/textnorm"
)

// Match is a successful categorization.
type Match struct {
	CategoryID string
	Confidence float64
	Keyword    string
}

type entry struct {
	keyword    string // normalized
	categoryID string
	priority   int
}

// Table is the caller-owned keyword table. Callers must Reload after
// mutating the backing keyword store; the table never self-invalidates.
type Table struct {
	exact  []entry // descending priority, stable on encounter order
	substr []entry // encounter order
	scorer Scorer
}

// NewTable builds a Table from keyword entries. A nil scorer gets the
// default LengthRatioScorer.
func NewTable(keywords []model.CategoryKeyword, scorer Scorer) *Table {
	if scorer == nil {
		scorer = LengthRatioScorer{}
	}
	t := &Table{scorer: scorer}
	t.Reload(keywords)
	return t
}

// Reload replaces the table contents.
func (t *Table) Reload(keywords []model.CategoryKeyword) {
	t.exact = t.exact[:0]
	t.substr = t.substr[:0]
	for _, kw := range keywords {
		e := entry{
			keyword:    textnorm.Normalize(kw.Keyword),
			categoryID: kw.CategoryID,
			priority:   kw.Priority,
		}
		if e.keyword == "" {
			continue
		}
		if kw.IsExact {
			t.exact = append(t.exact, e)
		} else {
			t.substr = append(t.substr, e)
		}
	}
	sort.SliceStable(t.exact, func(i, j int) bool {
		return t.exact[i].priority > t.exact[j].priority
	})
}

// Len returns the number of loaded entries.
func (t *Table) Len() int {
	return len(t.exact) + len(t.substr)
}

// Categorize maps a description to a category. Exact rules win first by
// priority with confidence 1.0; otherwise the longest substring keyword
// wins with a scored confidence. No match is (Match{}, false), never an
// error.
func (t *Table) Categorize(description string) (Match, bool) {
	desc := textnorm.Normalize(description)
	if desc == "" {
		return Match{}, false
	}

	for _, e := range t.exact {
		if e.keyword == desc {
			return Match{CategoryID: e.categoryID, Confidence: 1.0, Keyword: e.keyword}, true
		}
	}

	// Longest keyword is the most specific; ties keep the first
	// encountered entry.
	best := -1
	bestLen := 0
	for i, e := range t.substr {
		if !strings.Contains(desc, e.keyword) {
			continue
		}
		if n := utf8.RuneCountInString(e.keyword); n > bestLen {
			best, bestLen = i, n
		}
	}
	if best < 0 {
		return Match{}, false
	}
	e := t.substr[best]
	return Match{
		CategoryID: e.categoryID,
		Confidence: t.scorer.Score(e.keyword, desc),
		Keyword:    e.keyword,
	}, true
}
