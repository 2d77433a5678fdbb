package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osadchistudio/family-finance-sub001/internal/model"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	cfg := Default("levi")
	cfg.Accounts = []AccountConfig{
		{ID: 1, Name: "עו\"ש", Institution: "bank"},
		{ID: 2, Name: "ויזה", Institution: "card", LastFour: "1234"},
	}
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), FileName))
	assert.Error(t, err)
}

func TestAccountInstitutionFallback(t *testing.T) {
	assert.Equal(t, model.InstitutionCard, AccountConfig{Institution: "card"}.Account().Institution)
	assert.Equal(t, model.InstitutionBank, AccountConfig{Institution: "bank"}.Account().Institution)
	assert.Equal(t, model.InstitutionBank, AccountConfig{Institution: "weird"}.Account().Institution)
}

func TestAITimeout(t *testing.T) {
	assert.Equal(t, 30*time.Second, AIConfig{}.Timeout())
	assert.Equal(t, 5*time.Second, AIConfig{TimeoutSeconds: 5}.Timeout())
}

func TestDefault(t *testing.T) {
	cfg := Default("levi")
	assert.Equal(t, "calendar", cfg.Period.Mode)
	assert.Equal(t, 6, cfg.Period.Count)
	assert.True(t, cfg.Propagation.ApplyToSimilar)
	assert.True(t, cfg.Propagation.LearnKeywords)
}
