package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureJSON(t *testing.T, level string) *bytes.Buffer {
	var buf bytes.Buffer
	Initialize(Config{Level: level, Format: "json", Output: &buf, Service: "furniture-backend"})
	t.Cleanup(func() { Initialize(Config{Level: "info", Format: "console"}) })
	return &buf
}

func lines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	var out []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		out = append(out, entry)
	}
	return out
}

func TestLogger_FieldsAndCaller(t *testing.T) {
	buf := captureJSON(t, "debug")

	Info("Order placed", map[string]interface{}{"order_id": 7})
	Error("Checkout failed", errors.New("boom"), map[string]interface{}{"user_id": 3})

	entries := lines(t, buf)
	require.Len(t, entries, 2)

	assert.Equal(t, "info", entries[0]["level"])
	assert.Equal(t, "Order placed", entries[0]["message"])
	assert.Equal(t, float64(7), entries[0]["order_id"])
	assert.Equal(t, "furniture-backend", entries[0]["service"])
	assert.Contains(t, entries[0]["caller"], "logger_test.go")

	assert.Equal(t, "error", entries[1]["level"])
	assert.Equal(t, "boom", entries[1]["error"])
	assert.Equal(t, float64(3), entries[1]["user_id"])
}

func TestLogger_LevelFilter(t *testing.T) {
	buf := captureJSON(t, "warn")

	Debug("hidden")
	Info("hidden")
	Warn("Low stock")

	entries := lines(t, buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "Low stock", entries[0]["message"])
}

func TestLogger_WithContext(t *testing.T) {
	buf := captureJSON(t, "info")

	reqLog := WithContext(map[string]interface{}{"request_id": "req-1"})
	reqLog.Info("Request completed", map[string]interface{}{"status": 200})

	entries := lines(t, buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "req-1", entries[0]["request_id"])
	assert.Equal(t, float64(200), entries[0]["status"])
	assert.Contains(t, entries[0]["caller"], "logger_test.go")
}

func TestInitialize_UnknownLevelFallsBackToInfo(t *testing.T) {
	buf := captureJSON(t, "verbose")

	Debug("hidden")
	Info("shown")

	entries := lines(t, buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "shown", entries[0]["message"])
}
