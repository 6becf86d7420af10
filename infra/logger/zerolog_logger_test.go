package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZerologLogger_JSONFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewZerologLogger("planner", Config{Level: "debug", Format: "json"}, &buf)
	l.Warnw("remote failed", map[string]any{"kind": "transport_failure", "status": 503})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "planner", entry["component"])
	assert.Equal(t, "transport_failure", entry["kind"])
	assert.EqualValues(t, 503, entry["status"])
	assert.Equal(t, "remote failed", entry["message"])
}

func TestZerologLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := NewZerologLogger("x", Config{Level: "warn", Format: "json"}, &buf)
	l.Debugf("hidden %d", 1)
	l.Infof("hidden")
	assert.Zero(t, buf.Len())
	l.Errorf("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestZerologLogger_Console(t *testing.T) {
	var buf bytes.Buffer
	l := NewZerologLogger("api", Config{Level: "info", Format: "console"}, &buf)
	l.Infof("listening on %s", ":10000")
	out := buf.String()
	assert.Contains(t, out, "listening on :10000")
	assert.False(t, strings.HasPrefix(out, "{"))
}

func TestConfigure(t *testing.T) {
	t.Setenv("APP_ENV", "")
	assert.Error(t, Configure(Config{Level: "loud"}))
	assert.Error(t, Configure(Config{Format: "xml"}))

	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(nil)
		_ = Configure(Config{})
	})
	require.NoError(t, Configure(Config{Level: "debug"}))
	New("cfg").Debugw("hello", nil)
	assert.Contains(t, buf.String(), `"component":"cfg"`)
}
