// Package logger wraps github.com/rs/zerolog for the evaluator and the CLI,
// the way gnark's own internal
// packages thread a zerolog.Logger through their constraint-building code
// rather than reaching for a new logging dependency per package.
package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Logger is a thin alias over zerolog.Logger so callers never import
// zerolog directly.
type Logger = zerolog.Logger

// New returns a console-friendly Logger writing to w at level.
func New(w io.Writer, level zerolog.Level) Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}).
		Level(level).
		With().Timestamp().Logger()
}

// Nop returns a Logger that discards everything, for tests and library
// callers that don't want evaluator log lines on stderr.
func Nop() Logger {
	return zerolog.Nop()
}

// Default returns the package's standard stderr logger at info level,
// matching the verbosity cmd/sieveir runs with unless -v is passed.
func Default() Logger {
	return New(os.Stderr, zerolog.InfoLevel)
}
