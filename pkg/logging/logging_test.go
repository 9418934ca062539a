package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"debug":   LevelDebug,
		"INFO":    LevelInfo,
		" warn ":  LevelWarn,
		"warning": LevelWarn,
		"error":   LevelError,
		"":        LevelInfo,
		"verbose": LevelInfo,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), "input %q", in)
	}
}

func TestCLIModeWritesToOutput(t *testing.T) {
	var buf bytes.Buffer
	InitForCLI(LevelDebug, &buf)

	Info("Test", "hello %s", "world")
	Error("Test", errors.New("boom"), "failed")

	out := buf.String()
	assert.Contains(t, out, "hello world")
	assert.Contains(t, out, "subsystem=Test")
	assert.Contains(t, out, "error=boom")
}

func TestCLIModeFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	InitForCLI(LevelWarn, &buf)

	Debug("Test", "hidden")
	Info("Test", "hidden too")
	Warn("Test", "shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
}

func TestTUIModeAppendsToSink(t *testing.T) {
	sink := NewSink()
	InitForTUI(LevelInfo, sink)
	defer InitForCLI(LevelInfo, &bytes.Buffer{})

	Debug("Pump", "filtered")
	Info("Pump", "tick %d", 1)
	Warn("Pump", "unknown browser %s", "b-1")
	Error("Export", errors.New("disk full"), "write failed")

	require.Equal(t, 3, sink.Len())
	lines := sink.Lines()
	assert.True(t, strings.HasSuffix(lines[0], "[Pump] tick 1"), lines[0])
	assert.Contains(t, lines[1], "WARN")
	assert.True(t, strings.HasSuffix(lines[2], "write failed: disk full"), lines[2])
}

func TestSinkSinceCursor(t *testing.T) {
	sink := NewSink()
	sink.Append(LogEntry{Level: LevelInfo, Subsystem: "a", Message: "one"})
	sink.Append(LogEntry{Level: LevelInfo, Subsystem: "a", Message: "two"})

	lines, cursor := sink.Since(0)
	assert.Len(t, lines, 2)
	assert.Equal(t, 2, cursor)

	lines, cursor = sink.Since(cursor)
	assert.Empty(t, lines)
	assert.Equal(t, 2, cursor)

	sink.Append(LogEntry{Level: LevelWarn, Subsystem: "a", Message: "three"})
	lines, cursor = sink.Since(cursor)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "three")
	assert.Equal(t, 3, cursor)

	// Reading never drains the sink.
	assert.Len(t, sink.Lines(), 3)
}
