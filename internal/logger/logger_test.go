package logger

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, log.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, log.WarnLevel, ParseLevel("warning"))
	assert.Equal(t, log.ErrorLevel, ParseLevel(" error "))
	assert.Equal(t, log.InfoLevel, ParseLevel("verbose"))
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, log.JSONFormatter, ParseFormat("json"))
	assert.Equal(t, log.LogfmtFormatter, ParseFormat("logfmt"))
	assert.Equal(t, log.TextFormatter, ParseFormat(""))
}

func TestNewHonoursEnvironment(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LOG_FORMAT", "json")

	var buf bytes.Buffer
	l := New(&buf)
	l.Info("hidden")
	l.Warn("shown", "gate", 3)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)
	assert.Contains(t, out, `"gate":3`)
}

func TestNewFile(t *testing.T) {
	l, closeFn, err := NewFile("")
	require.NoError(t, err)
	l.Info("discarded")
	assert.NoError(t, closeFn())

	path := filepath.Join(t.TempDir(), "game.log")
	l, closeFn, err = NewFile(path)
	require.NoError(t, err)
	l.Info("written")
	assert.NoError(t, closeFn())
	assert.FileExists(t, path)
}
