package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
		err  bool
	}{
		{"", zapcore.InfoLevel, false},
		{"debug", zapcore.DebugLevel, false},
		{" WARN ", zapcore.WarnLevel, false},
		{"error", zapcore.ErrorLevel, false},
		{"verbose", zapcore.InfoLevel, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			l, err := ParseLevel(tt.in)
			if tt.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, l)
		})
	}
}

func TestJSONOutput(t *testing.T) {
	buf := &bytes.Buffer{}
	l, err := New(Config{Level: "info", Format: "json", Writer: buf})
	require.NoError(t, err)

	l.Debug("dropped")
	l.Info("kept", zap.Int64("n", 7))
	require.NoError(t, l.Sync())

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, float64(7), entry["n"])
	assert.Contains(t, entry["caller"], "logging_test.go")
}

func TestConsoleOutput(t *testing.T) {
	buf := &bytes.Buffer{}
	l, err := New(Config{Level: "debug", Writer: buf})
	require.NoError(t, err)

	l.Debug("cache reset")
	assert.Contains(t, buf.String(), "DEBUG")
	assert.Contains(t, buf.String(), "cache reset")
}

func TestBadFormat(t *testing.T) {
	_, err := New(Config{Format: "xml"})
	assert.Error(t, err)
}
