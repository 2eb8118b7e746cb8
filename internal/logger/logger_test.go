//go:build !integration

package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitWithWriter_Levels(t *testing.T) {
	t.Cleanup(func() { Init("info", false) })

	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{level: "debug", want: zerolog.DebugLevel},
		{level: "warn", want: zerolog.WarnLevel},
		{level: " ERROR ", want: zerolog.ErrorLevel},
		{level: "", want: zerolog.InfoLevel},
		{level: "verbose", want: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			InitWithWriter(tt.level, false, &buf)

			assert.Equal(t, tt.want, zerolog.GlobalLevel())
		})
	}
}

func TestInitWithWriter_DropsBelowLevel(t *testing.T) {
	t.Cleanup(func() { Init("info", false) })
	var buf bytes.Buffer
	InitWithWriter("warn", false, &buf)

	l := Logger()
	l.Info().Msg("batch loaded")
	assert.Zero(t, buf.Len())

	l.Warn().Msg("circuit open")
	assert.Contains(t, buf.String(), "circuit open")
}

func TestFor(t *testing.T) {
	t.Cleanup(func() { Init("info", false) })
	var buf bytes.Buffer
	InitWithWriter("debug", false, &buf)

	l := For("shipping")
	l.Info().Str("batch_id", "B-1").Msg("batch loaded")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "shipping", line["component"])
	assert.Equal(t, "B-1", line["batch_id"])
	assert.Equal(t, "batch loaded", line["message"])
	assert.Equal(t, "info", line["level"])
	assert.Contains(t, line, "time")
}

func TestInitWithWriter_Pretty(t *testing.T) {
	t.Cleanup(func() { Init("info", false) })
	var buf bytes.Buffer
	InitWithWriter("info", true, &buf)

	l := For("reaper")
	l.Info().Int("evicted", 2).Msg("idle workspaces evicted")

	out := buf.String()
	assert.False(t, strings.HasPrefix(out, "{"))
	assert.Contains(t, out, "idle workspaces evicted")
	assert.Contains(t, out, "evicted=")
}
