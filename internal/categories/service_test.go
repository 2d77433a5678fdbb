package categories

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osadchistudio/family-finance-sub001/internal/model"
)

func TestByNameCaseSensitive(t *testing.T) {
	svc := NewService(DefaultSet())

	c, ok := svc.ByName("משכורת")
	require.True(t, ok)
	assert.Equal(t, "salary", c.ID)

	_, ok = svc.ByName("nonexistent")
	assert.False(t, ok)
}

func TestByNameLatinCase(t *testing.T) {
	svc := NewService([]model.Category{
		{ID: "ent", Name: "Entertainment", Type: model.CategoryTypeExpense},
	})

	_, ok := svc.ByName("entertainment")
	assert.False(t, ok, "resolution is case-sensitive")
	_, ok = svc.ByName("Entertainment")
	assert.True(t, ok)
}

func TestByType(t *testing.T) {
	svc := NewService(DefaultSet())
	for _, c := range svc.ByType(model.CategoryTypeIncome) {
		assert.Equal(t, model.CategoryTypeIncome, c.Type)
	}
	assert.NotEmpty(t, svc.ByType(model.CategoryTypeExpense))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(DefaultSet())
	require.NoError(t, svc.Save(dir))

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, svc.All(), loaded.All())
}

func TestReadCategoriesRejectsBadType(t *testing.T) {
	csv := "id,name,color,icon,type\nx,X,#fff,icon,weird\n"
	_, err := ReadCategories(strings.NewReader(csv))
	assert.Error(t, err)
}
