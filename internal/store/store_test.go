package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osadchistudio/family-finance-sub001/internal/model"
)

func open(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), FileName))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestPutCategoryKeywordIdempotent(t *testing.T) {
	s := open(t)
	kw := model.CategoryKeyword{CategoryID: "groceries", Keyword: "שופרסל"}

	added, err := s.PutCategoryKeyword(kw)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = s.PutCategoryKeyword(kw)
	require.NoError(t, err)
	assert.False(t, added, "duplicate insert is a no-op")

	got, err := s.CategoryKeywords()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "שופרסל", got[0].Keyword)
	assert.Equal(t, "groceries", got[0].CategoryID)
}

func TestSameKeywordDifferentCategory(t *testing.T) {
	s := open(t)

	added, err := s.PutCategoryKeyword(model.CategoryKeyword{CategoryID: "a", Keyword: "castro"})
	require.NoError(t, err)
	require.True(t, added)

	added, err = s.PutCategoryKeyword(model.CategoryKeyword{CategoryID: "b", Keyword: "castro"})
	require.NoError(t, err)
	assert.True(t, added, "uniqueness is per keyword+category pair")
}

func TestPutCategoryKeywordValidation(t *testing.T) {
	s := open(t)
	_, err := s.PutCategoryKeyword(model.CategoryKeyword{CategoryID: "", Keyword: "x y"})
	assert.Error(t, err)
	_, err = s.PutCategoryKeyword(model.CategoryKeyword{CategoryID: "a", Keyword: "   "})
	assert.Error(t, err)
}

func TestRecurringKeywordLifecycle(t *testing.T) {
	s := open(t)
	kw := model.RecurringKeyword{Keyword: "נטפליקס"}

	added, err := s.PutRecurringKeyword(kw)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = s.PutRecurringKeyword(kw)
	require.NoError(t, err)
	assert.False(t, added)

	words, err := s.RecurringKeywords()
	require.NoError(t, err)
	assert.Equal(t, []model.RecurringKeyword{kw}, words)

	removed, err := s.DeleteRecurringKeyword(kw)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = s.DeleteRecurringKeyword(kw)
	require.NoError(t, err)
	assert.False(t, removed, "removing a missing keyword is a no-op")

	words, err = s.RecurringKeywords()
	require.NoError(t, err)
	assert.Empty(t, words)
}

func TestKeywordsNormalizedOnWrite(t *testing.T) {
	s := open(t)

	_, err := s.PutRecurringKeyword(model.RecurringKeyword{Keyword: "  NETFLIX.COM "})
	require.NoError(t, err)

	words, err := s.RecurringKeywords()
	require.NoError(t, err)
	assert.Equal(t, []model.RecurringKeyword{{Keyword: "netflix com"}}, words)
}
