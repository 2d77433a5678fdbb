package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBankParser(t *testing.T) {
	input := `date,description,amount,reference
15/01/2024,שופרסל דיל רמת גן,-234.50,8821
31/01/2024,משכורת ינואר,12000.00,
`
	rows, err := (&BankParser{}).Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "שופרסל דיל רמת גן", rows[0].Description)
	assert.Equal(t, "-234.50", rows[0].Amount)
	assert.Equal(t, "8821", rows[0].Reference)
	assert.Equal(t, 2024, rows[0].Date.Year())
	assert.Equal(t, 15, rows[0].Date.Day())

	assert.Equal(t, "12000.00", rows[1].Amount)
	assert.Empty(t, rows[1].Reference)
}

func TestBankParserBadDate(t *testing.T) {
	input := "date,description,amount,reference\n2024-01-15,x,1.00,\n"
	_, err := (&BankParser{}).Parse(strings.NewReader(input))
	assert.Error(t, err)
}

func TestBankParserHeaderOnly(t *testing.T) {
	rows, err := (&BankParser{}).Parse(strings.NewReader("date,description,amount,reference\n"))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestCardParserNegatesCharges(t *testing.T) {
	input := `date,merchant,charge,voucher
03/02/2024,NETFLIX.COM,54.90,V-1001
05/02/2024,זיכוי החזר,-120.00,V-1002
`
	rows, err := (&CardParser{}).Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "-54.90", rows[0].Amount)
	assert.Equal(t, "120.00", rows[1].Amount) // refund flips back to income
	assert.Equal(t, "V-1001", rows[0].Reference)
}

func TestRegistry(t *testing.T) {
	r := DefaultRegistry()
	assert.NotNil(t, r.Get("bank"))
	assert.NotNil(t, r.Get("CARD"))
	assert.Nil(t, r.Get("ofx"))

	assert.Panics(t, func() { r.Register(&BankParser{}) })
}

func TestScanAndMarkProcessed(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "import")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "feb.csv"), []byte("date\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	files, err := Scan(root)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "feb.csv", files[0].Name)

	require.NoError(t, MarkProcessed(root, "feb.csv"))

	files, err = Scan(root)
	require.NoError(t, err)
	assert.Empty(t, files)
	assert.FileExists(t, filepath.Join(root, "import", "processed", "feb.csv"))
}

func TestScanMissingDir(t *testing.T) {
	files, err := Scan(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, files)
}
