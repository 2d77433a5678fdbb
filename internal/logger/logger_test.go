package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewWithWriter(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf)
	log.Info().Str("batch", "b1").Msg("import complete")

	out := buf.String()
	assert.Contains(t, out, `"message":"import complete"`)
	assert.Contains(t, out, `"batch":"b1"`)
	assert.Contains(t, out, `"time"`)
}

func TestContextRoundtrip(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf)

	ctx := WithContext(context.Background(), log)
	ctxLog := FromContext(ctx)
	ctxLog.Info().Msg("hello")

	assert.Contains(t, buf.String(), `"message":"hello"`)
}

func TestFromContextFallback(t *testing.T) {
	log := FromContext(context.Background())
	assert.NotEqual(t, zerolog.Disabled, log.GetLevel())
}
