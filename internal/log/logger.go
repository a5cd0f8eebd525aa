// Package log provides structured logging for verify-report.
//
// Logs go to stderr so that stdout carries only the verification outcome.
package log

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultLevel keeps a passing run silent on stderr.
const DefaultLevel = zerolog.WarnLevel

// Config captures options for configuring the global logger.
type Config struct {
	Level  string    // optional log level ("debug", "info", etc.)
	Output io.Writer // optional writer (defaults to os.Stderr)
}

var (
	mu   sync.Mutex
	base = zerolog.Nop()
)

// New builds a logger from cfg without touching global state.
// An explicit Level wins over LOG_LEVEL; an unparsable level falls back to
// DefaultLevel.
func New(cfg Config) zerolog.Logger {
	level := DefaultLevel
	if cfg.Level != "" {
		if parsed, err := zerolog.ParseLevel(cfg.Level); err == nil {
			level = parsed
		}
	} else if env := os.Getenv("LOG_LEVEL"); env != "" {
		if parsed, err := zerolog.ParseLevel(env); err == nil {
			level = parsed
		}
	}

	writer := cfg.Output
	if writer == nil {
		writer = os.Stderr
	}

	return zerolog.New(writer).Level(level).With().
		Timestamp().
		Str(FieldService, "verify-report").
		Logger()
}

// Configure replaces the process logger.
func Configure(cfg Config) {
	zerolog.TimeFieldFormat = time.RFC3339

	l := New(cfg)
	mu.Lock()
	base = l
	mu.Unlock()
}

// Base returns the configured base logger instance.
// Before Configure is called it discards everything.
func Base() zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return base
}

// WithComponent returns a child logger annotated with the given component name.
func WithComponent(component string) zerolog.Logger {
	return Base().With().Str(FieldComponent, component).Logger()
}
