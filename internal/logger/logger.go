// Package logger provides verbose logging for the recall CLI and services.
// When verbose mode is enabled via the --verbose flag, debug and info messages
// are written to stderr to help users follow ingestion and retrieval.
// Errors are always written.
package logger

import (
	"io"
	"os"
	"sync"

	"github.com/phuslu/log"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
	current           = newLogger(os.Stderr, false)
)

// newLogger builds a console logger writing to w.
// Quiet loggers only emit errors.
func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.ErrorLevel
	if verbose {
		level = log.DebugLevel
	}
	return &log.Logger{
		Level:      level,
		TimeFormat: "15:04:05",
		Writer: &log.ConsoleWriter{
			Writer:         w,
			ColorOutput:    false,
			QuoteString:    true,
			EndWithMessage: true,
		},
	}
}

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
	current = newLogger(output, verbose)
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	current = newLogger(output, verbose)
}

func get() *log.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Debug logs a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	get().Debug().Msgf(format, args...)
}

// Section logs a section header if verbose mode is enabled.
func Section(name string) {
	get().Debug().Str("section", name).Msg("=== " + name + " ===")
}

// Info logs an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	get().Info().Msgf(format, args...)
}

// Warn logs a warning if verbose mode is enabled.
func Warn(format string, args ...any) {
	get().Warn().Msgf(format, args...)
}

// Error logs an error regardless of verbose mode.
func Error(err error, format string, args ...any) {
	get().Error().Err(err).Msgf(format, args...)
}
