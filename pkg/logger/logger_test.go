package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_WritesJSONWithServiceFields(t *testing.T) {
	Reset()
	defer Reset()

	var buf bytes.Buffer
	Init(Options{Level: "debug", Service: "backoffice", Env: "test", Output: &buf})
	l := Component("sweeper")
	l.Debug().Int("count", 2).Msg("invoices marked overdue")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "backoffice", entry["service"])
	assert.Equal(t, "test", entry["env"])
	assert.Equal(t, "sweeper", entry["component"])
	assert.Equal(t, "debug", entry["level"])
	assert.EqualValues(t, 2, entry["count"])
}

func TestInit_OnlyFirstCallWins(t *testing.T) {
	Reset()
	defer Reset()

	var first, second bytes.Buffer
	Init(Options{Output: &first})
	Init(Options{Output: &second})
	l := Get()
	l.Info().Msg("hello")

	assert.NotZero(t, first.Len())
	assert.Zero(t, second.Len())
}

func TestInit_LevelFilters(t *testing.T) {
	Reset()
	defer Reset()

	var buf bytes.Buffer
	Init(Options{Level: "warn", Output: &buf})
	l := Get()
	l.Info().Msg("dropped")

	assert.Zero(t, buf.Len())
}

func TestGet_PanicsBeforeInit(t *testing.T) {
	Reset()
	assert.Panics(t, func() { Get() })
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		" warn ":  zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}
