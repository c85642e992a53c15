// Package log provides the package-wide structured logger. Per spec §7,
// only error paths are logged — the happy path of every core operation
// stays silent — and no private scalar is ever included in a log field.
package log

import (
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu     sync.RWMutex
	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger().Level(zerolog.InfoLevel)
)

// Init (re)configures the global logger to the given level ("debug",
// "info", "warn", "error"); an unrecognized level falls back to "info".
func Init(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	mu.Lock()
	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger().Level(lvl)
	mu.Unlock()
}

// Logger returns a copy of the current global logger.
func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Error logs op's failure with err, and any extra structured fields,
// without ever including key material.
func Error(op string, err error, fields map[string]any) {
	Logger().Error().Err(err).Str("op", op).Fields(fields).Msg("operation failed")
}

// Warn logs a recoverable anomaly during op.
func Warn(op string, fields map[string]any) {
	Logger().Warn().Str("op", op).Fields(fields).Msg("operation warning")
}
