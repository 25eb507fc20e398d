// Package logger builds the structured logger shared by the binaries.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/skirunner/internal/config"
)

// New returns a logger writing to w, configured from LOG_LEVEL and LOG_FORMAT.
func New(w io.Writer) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Level:           ParseLevel(config.GetEnv("LOG_LEVEL", "info")),
		Formatter:       ParseFormat(config.GetEnv("LOG_FORMAT", "text")),
	})
	return l
}

// NewFile returns a logger appending to path. An empty path discards output.
// The returned close function is always safe to call.
func NewFile(path string) (*log.Logger, func() error, error) {
	if path == "" {
		return New(io.Discard), func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return New(f), f.Close, nil
}

// ParseLevel maps a level name onto a log level, defaulting to info.
func ParseLevel(name string) log.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// ParseFormat maps a format name onto a formatter, defaulting to text.
func ParseFormat(name string) log.Formatter {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}
