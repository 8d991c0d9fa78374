package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllows(t *testing.T) {
	tests := []struct {
		name      string
		threshold Level
		message   Level
		want      bool
	}{
		{"none blocks warn", LevelNone, LevelWarn, false},
		{"warn passes warn", LevelWarn, LevelWarn, true},
		{"warn blocks info", LevelWarn, LevelInfo, false},
		{"debug passes info", LevelDebug, LevelInfo, true},
		{"debug blocks trace", LevelDebug, LevelTrace, false},
		{"trace passes trace", LevelTrace, LevelTrace, true},
		{"all passes trace", LevelAll, LevelTrace, true},
		{"all passes all", LevelAll, LevelAll, true},
		{"trace blocks all", LevelTrace, LevelAll, false},
		{"none message never passes", LevelAll, LevelNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(tt.threshold, &bytes.Buffer{}, FormatJSON)
			assert.Equal(t, tt.want, l.Allows(tt.message))

			w, ok := l.Writer(tt.message)
			assert.Equal(t, tt.want, ok)
			assert.Equal(t, tt.want, w != nil)
		})
	}
}

func TestPrintfRespectsThreshold(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelInfo, &buf, FormatText)

	l.Printf(LevelInfo, "nodes: %d", 12)
	l.Printf(LevelDebug, "hidden")

	assert.Equal(t, "nodes: 12\n", buf.String())
}

func TestStructuredEvents(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelInfo, &buf, FormatJSON).With("search_id", "abc")

	l.Info().Int("descents", 3).Msg("search finished")
	l.Debug().Msg("filtered out")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var event map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &event))
	assert.Equal(t, "info", event["level"])
	assert.Equal(t, "abc", event["search_id"])
	assert.EqualValues(t, 3, event["descents"])
}

func TestNopLogger(t *testing.T) {
	l := Nop()
	assert.False(t, l.Allows(LevelWarn))
	l.Warn().Msg("nothing")
	l.Printf(LevelWarn, "nothing")
}

func TestParseLevel(t *testing.T) {
	for _, lvl := range []Level{LevelNone, LevelWarn, LevelInfo, LevelDebug, LevelTrace, LevelAll} {
		parsed, err := ParseLevel(lvl.String())
		require.NoError(t, err)
		assert.Equal(t, lvl, parsed)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}
