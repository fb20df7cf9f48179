package logging

import (
	"io"

	"github.com/rs/zerolog"
)

// Logger is the observability capability handed to the scan and cache
// packages. Implementations never affect control flow.
type Logger interface {
	Info(msg string)
	Warning(msg string)
}

type zerologLogger struct {
	log zerolog.Logger
}

// New returns a Logger backed by zerolog writing to w. When verbose is
// false the level filter drops both Info and Warning, matching the rule
// that diagnostics print only in verbose runs.
func New(w io.Writer, verbose bool) Logger {
	level := zerolog.ErrorLevel
	if verbose {
		level = zerolog.InfoLevel
	}
	zl := zerolog.New(zerolog.ConsoleWriter{Out: w}).Level(level).With().Timestamp().Logger()
	return &zerologLogger{log: zl}
}

func (l *zerologLogger) Info(msg string)    { l.log.Info().Msg(msg) }
func (l *zerologLogger) Warning(msg string) { l.log.Warn().Msg(msg) }

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return &zerologLogger{log: zerolog.Nop()}
}
