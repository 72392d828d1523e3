// Package logging builds the structured logger shared by the CLI and services.
// Logs go to stderr so they never mix with answers printed on stdout.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/phuslu/log"
)

// Config selects the level and output format.
type Config struct {
	Level  string
	Format string
}

// New returns a logger writing to stderr.
func New(cfg Config) (*log.Logger, error) {
	return NewWithWriter(cfg, os.Stderr)
}

// NewWithWriter returns a logger writing to w. Format "json" emits one JSON
// object per line; anything else uses the console writer.
func NewWithWriter(cfg Config, w io.Writer) (*log.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	logger := &log.Logger{Level: level}
	switch strings.ToLower(cfg.Format) {
	case "json":
		logger.Writer = &log.IOWriter{Writer: w}
	case "", "console":
		logger.Writer = &log.ConsoleWriter{Writer: w, ColorOutput: false, QuoteString: true}
	default:
		return nil, fmt.Errorf("unknown log format: %s", cfg.Format)
	}
	return logger, nil
}

// ParseLevel maps a config level name to a log.Level. Empty means info.
func ParseLevel(s string) (log.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return log.TraceLevel, nil
	case "debug":
		return log.DebugLevel, nil
	case "", "info":
		return log.InfoLevel, nil
	case "warn", "warning":
		return log.WarnLevel, nil
	case "error":
		return log.ErrorLevel, nil
	}
	return 0, fmt.Errorf("unknown log level: %s", s)
}

// Nop returns a logger that discards everything.
func Nop() *log.Logger {
	return &log.Logger{Level: log.PanicLevel, Writer: &log.IOWriter{Writer: io.Discard}}
}

// OrNop returns l, or a discarding logger when l is nil.
func OrNop(l *log.Logger) *log.Logger {
	if l == nil {
		return Nop()
	}
	return l
}
