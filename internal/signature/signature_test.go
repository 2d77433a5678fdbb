package signature

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"simple merchant", "SUPER PHARM TLV 123", "super", true},
		{"hebrew merchant", "שופרסל דיל רמת גן", "שופרסל", true},
		{"boilerplate only", "העברה בנקאית", "", false},
		{"numbers only", "1234 5678", "", false},
		{"empty", "", "", false},
		{"boilerplate prefix skipped", "הוראת קבע נטפליקס", "נטפליקס", true},
		{"issuer brand skipped", "VISA NETFLIX.COM", "netflix", true},
		{"short first token joins next", "AM PM TEL AVIV", "am pm", true},
		{"hebrew short first token", "יש חסד סניף 12", "יש חסד", true},
		{"short single token stands alone", "ag", "ag", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Extract(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractDeterministic(t *testing.T) {
	for i := 0; i < 3; i++ {
		got, ok := Extract("PAYPAL *SPOTIFY AB")
		assert.True(t, ok)
		assert.Equal(t, "spotify", got)
	}
}

func TestSignificant(t *testing.T) {
	in := []string{"העברה", "שופרסל", "12", "x", "בנק"}
	assert.Equal(t, []string{"שופרסל"}, Significant(in))
	assert.Nil(t, Significant(nil))
}

func TestIsGeneric(t *testing.T) {
	assert.True(t, IsGeneric("visa"))
	assert.True(t, IsGeneric("העברה"))
	assert.False(t, IsGeneric("netflix"))
}
