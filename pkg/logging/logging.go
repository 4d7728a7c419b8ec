package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var output io.Writer = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}

func init() {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
}

// SetLevel parses a level name and applies it process-wide.
// Unknown names fall back to warn.
func SetLevel(name string) zerolog.Level {
	level, err := zerolog.ParseLevel(name)
	if err != nil || name == "" {
		level = zerolog.WarnLevel
	}
	zerolog.SetGlobalLevel(level)
	return level
}

// SetOutput redirects every logger created afterwards
func SetOutput(w io.Writer) {
	output = w
}

// New returns a logger tagged with the component name
func New(component string) zerolog.Logger {
	return zerolog.New(output).With().Timestamp().Str("component", component).Logger()
}
