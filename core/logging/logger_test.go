package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  Level
	}{
		{"error", LevelError},
		{"WARN", LevelWarn},
		{"warning", LevelWarn},
		{" debug ", LevelDebug},
		{"info", LevelInfo},
		{"", LevelInfo},
		{"verbose", LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.input))
		})
	}
}

func TestLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelWarn)

	l.Debug("worker %d started", 1)
	l.Info("run started")
	l.Warn("slow sample")
	l.Error("rng failed: %v", "boom")

	out := buf.String()
	assert.NotContains(t, out, "worker 1 started")
	assert.NotContains(t, out, "run started")
	assert.Contains(t, out, "[WARN] slow sample")
	assert.Contains(t, out, "[ERROR] rng failed: boom")
}

func TestNilLoggerIsSilent(t *testing.T) {
	var l *Logger
	assert.NotPanics(t, func() { l.Info("ignored") })
}
