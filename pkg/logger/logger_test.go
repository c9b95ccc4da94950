package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("desconocido"))
}

func TestComponent_AgregaCampo(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, "info").Component("catalog")
	l.Warn().Int64("category_id", 7).Msg("movimiento rechazado")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "catalog", entry["component"])
	assert.Equal(t, "warn", entry["level"])
	assert.EqualValues(t, 7, entry["category_id"])
}

func TestNewWriter_RespetaNivel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, "error")
	l.Info().Msg("no debe salir")
	assert.Zero(t, buf.Len())
}
