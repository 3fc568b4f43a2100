package core

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerJSONFormat(t *testing.T) {
	logger := NewLogger(LoggingConfig{Level: "INFO", Format: "json"}, "storefront-test")
	var buf bytes.Buffer
	logger.SetOutput(&buf)

	logger.Info("Backend connection established", map[string]interface{}{
		"operation": "api_initialize",
		"base_url":  "http://localhost:9091",
	})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "storefront-test", entry["service"])
	assert.Equal(t, "Backend connection established", entry["message"])
	assert.Equal(t, "api_initialize", entry["operation"])
	assert.NotEmpty(t, entry["timestamp"])
}

func TestLoggerFieldsCannotOverwriteCoreKeys(t *testing.T) {
	logger := NewLogger(LoggingConfig{Level: "INFO", Format: "json"}, "svc")
	var buf bytes.Buffer
	logger.SetOutput(&buf)

	logger.Info("real message", map[string]interface{}{
		"message": "spoofed",
		"level":   "ERROR",
	})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "real message", entry["message"])
	assert.Equal(t, "INFO", entry["level"])
}

func TestLoggerTextFormat(t *testing.T) {
	logger := NewLogger(LoggingConfig{Level: "INFO", Format: "text"}, "svc")
	var buf bytes.Buffer
	logger.SetOutput(&buf)

	logger.Warn("Backend not available, using mock data", map[string]interface{}{
		"operation": "api_initialize",
	})

	line := buf.String()
	assert.Contains(t, line, "[WARN]")
	assert.Contains(t, line, "[svc]")
	assert.Contains(t, line, "Backend not available, using mock data")
	assert.Contains(t, line, "operation=api_initialize")
}

func TestLoggerLevelFiltering(t *testing.T) {
	logger := NewLogger(LoggingConfig{Level: "WARN", Format: "text"}, "svc")
	var buf bytes.Buffer
	logger.SetOutput(&buf)

	logger.Debug("hidden", nil)
	logger.Info("hidden", nil)
	assert.Empty(t, buf.String())

	logger.Warn("shown", nil)
	logger.Error("shown too", nil)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 2)
}

func TestLoggerDebugGate(t *testing.T) {
	logger := NewLogger(LoggingConfig{Level: "INFO", Format: "text"}, "svc")
	var buf bytes.Buffer
	logger.SetOutput(&buf)

	logger.Debug("suppressed", nil)
	assert.Empty(t, buf.String())

	logger.SetLevel("DEBUG")
	logger.Debug("now visible", nil)
	assert.Contains(t, buf.String(), "now visible")
}

func TestNewLoggerDefaults(t *testing.T) {
	t.Setenv("SHOPFRONT_LOG_LEVEL", "")
	t.Setenv("SHOPFRONT_LOG_FORMAT", "")
	t.Setenv("KUBERNETES_SERVICE_HOST", "")

	logger := NewLogger(LoggingConfig{}, "")
	var buf bytes.Buffer
	logger.SetOutput(&buf)

	logger.Info("hello", nil)
	assert.Contains(t, buf.String(), "[shopfront]", "empty service name falls back to the module name")
}
