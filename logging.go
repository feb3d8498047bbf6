package glyphrun

import (
	"os"

	"github.com/rs/zerolog"
)

var log = zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.WarnLevel)

// SetLogger replaces the package logger. By default only warnings and errors
// are emitted to stderr.
func SetLogger(l zerolog.Logger) {
	log = l
}
