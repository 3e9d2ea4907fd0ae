package handler

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/alefranz/logwire/core"
)

func newSlogPair(t *testing.T) (*slog.Logger, *bytes.Buffer) {
	t.Helper()
	var sink bytes.Buffer
	h := NewConsoleHandler(ConsoleConfig{Writer: &sink})
	return slog.New(NewSlogHandler(h, "SlogBridge", core.DebugLevel)), &sink
}

func TestSlogHandler_Basic(t *testing.T) {
	l, sink := newSlogPair(t)

	l.Info("via slog", "user", "alice", "attempt", 3)

	line := sink.String()
	require.NotEmpty(t, line)
	assert.Equal(t, "Information", gjson.Get(line, "LogLevel").String())
	assert.Equal(t, "SlogBridge", gjson.Get(line, "Category").String())
	assert.Equal(t, "via slog", gjson.Get(line, "Message").String())
	assert.Equal(t, "alice", gjson.Get(line, "State.user").String())
	assert.Equal(t, "3", gjson.Get(line, "State.attempt").String())
}

func TestSlogHandler_LevelMapping(t *testing.T) {
	tests := []struct {
		slogLevel slog.Level
		want      core.Level
	}{
		{slog.LevelDebug, core.DebugLevel},
		{slog.LevelInfo, core.InformationLevel},
		{slog.LevelWarn, core.WarningLevel},
		{slog.LevelError, core.ErrorLevel},
		{slog.LevelDebug - 4, core.TraceLevel},
	}
	for _, tt := range tests {
		if got := slogLevelToCore(tt.slogLevel); got != tt.want {
			t.Errorf("slogLevelToCore(%v) = %v, want %v", tt.slogLevel, got, tt.want)
		}
	}
}

func TestSlogHandler_Enabled(t *testing.T) {
	h := NewSlogHandler(NewConsoleHandler(ConsoleConfig{Writer: &bytes.Buffer{}}), "C", core.WarningLevel)
	assert.False(t, h.Enabled(nil, slog.LevelInfo))
	assert.True(t, h.Enabled(nil, slog.LevelError))
}

func TestSlogHandler_WithAttrsAndGroup(t *testing.T) {
	l, sink := newSlogPair(t)

	l.With("service", "billing").WithGroup("req").Info("charged", "id", 99)

	line := sink.String()
	assert.Equal(t, "billing", gjson.Get(line, `State.service`).String())
	assert.Equal(t, "99", gjson.Get(line, `State.req\.id`).String())
}
