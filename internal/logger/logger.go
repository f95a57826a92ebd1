// Package logger provides process-wide logging for lexview.
// Warnings are always written; debug and info messages only appear when
// verbose mode is enabled via the --verbose flag.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Output formats.
const (
	// FormatConsole writes human-readable lines.
	FormatConsole = "console"

	// FormatJSON writes one JSON object per line.
	FormatJSON = "json"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
	format            = FormatConsole
	log               = build()
)

// build creates the zerolog logger from the current settings (caller must
// hold the lock, except during package initialisation).
func build() zerolog.Logger {
	var w io.Writer = output
	if format == FormatConsole {
		w = zerolog.ConsoleWriter{
			Out:        output,
			NoColor:    true,
			TimeFormat: time.TimeOnly,
		}
	}

	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	return zerolog.New(w).
		With().
		Timestamp().
		Logger().
		Level(level)
}

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
	log = build()
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
	log = build()
}

// SetFormat selects console or JSON output.
func SetFormat(f string) error {
	if f != FormatConsole && f != FormatJSON {
		return fmt.Errorf("unknown log format %q (want %s or %s)", f, FormatConsole, FormatJSON)
	}
	mu.Lock()
	defer mu.Unlock()
	format = f
	log = build()
	return nil
}

// Logger returns the underlying zerolog logger for structured fields.
func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

// Debug logs a message if verbose mode is enabled.
func Debug(msg string, args ...any) {
	l := Logger()
	l.Debug().Msgf(msg, args...)
}

// Section logs a section marker if verbose mode is enabled.
func Section(name string) {
	l := Logger()
	l.Debug().Str("section", name).Msg("=== " + name + " ===")
}

// Info logs an informational message if verbose mode is enabled.
func Info(msg string, args ...any) {
	l := Logger()
	l.Info().Msgf(msg, args...)
}

// Warn logs a warning message.
func Warn(msg string, args ...any) {
	l := Logger()
	l.Warn().Msgf(msg, args...)
}
