package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	testCases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}

	for in, want := range testCases {
		assert.Equal(t, want, ParseLevel(in), "level %q", in)
	}
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "info", "json")

	l.Debug("hidden")
	l.Info("visible", "sku", "RH-001")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "visible", record["msg"])
	assert.Equal(t, "RH-001", record["sku"])
}

func TestContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "debug", "text").With("request_id", "abc")

	ctx := WithContext(context.Background(), l)
	FromContext(ctx).Info("hello")

	assert.Contains(t, buf.String(), "request_id=abc")
	assert.Equal(t, slog.Default(), FromContext(context.Background()))
}
