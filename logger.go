package main

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Logger is the sink the sync pipeline reports to. It never influences control flow.
type Logger interface {
	// Info is a normal progress line.
	Info(msg string)
	// Verbose is only shown with -verbose.
	Verbose(msg string)
	// Warn reports a recoverable problem, such as a skipped file.
	Warn(msg string)
}

// consoleLogger writes human readable lines through zerolog.
type consoleLogger struct {
	log zerolog.Logger
}

// loggerGen builds the console logger honouring the verbose and quiet options.
// Output goes to stdout unless another writer is given.
func loggerGen(verbose, quiet bool, out ...io.Writer) *consoleLogger {
	var w io.Writer = os.Stdout
	if len(out) > 0 {
		w = out[0]
	}

	level := zerolog.InfoLevel
	switch {
	case quiet:
		level = zerolog.WarnLevel
	case verbose:
		level = zerolog.DebugLevel
	}

	output := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    w != os.Stdout,
		TimeFormat: "15:04:05",
	}

	return &consoleLogger{
		log: zerolog.New(output).Level(level).With().Timestamp().Logger(),
	}
}

func (l *consoleLogger) Info(msg string)    { l.log.Info().Msg(msg) }
func (l *consoleLogger) Verbose(msg string) { l.log.Debug().Msg(msg) }
func (l *consoleLogger) Warn(msg string)    { l.log.Warn().Msg(msg) }
