package logger

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New creates a console logger at the given level (debug, info, warn, error).
// Unknown levels fall back to warn.
func New(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.WarnLevel
	}

	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.TimeOnly,
		NoColor:    true,
	}
	return zerolog.New(output).Level(lvl).With().Timestamp().Logger()
}
