package logging

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger writes printf-style messages at a level.
type Logger interface {
	Error(format string, args ...any)
	Warn(format string, args ...any)
	Info(format string, args ...any)
	Debug(format string, args ...any)
}

// Format selects the log output encoding.
type Format string

const (
	FormatConsole Format = "console"
	FormatJSON    Format = "json"
)

// zeroLogger implements Logger on top of zerolog.
type zeroLogger struct {
	zl zerolog.Logger
}

// New returns a Logger writing to out at the given level ("debug", "info", "warn", "error").
func New(out io.Writer, level string, format Format) (Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return nil, fmt.Errorf("invalid log level '%s': %w", level, err)
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	switch format {
	case FormatJSON:
	case FormatConsole, "":
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly, NoColor: true}
	default:
		return nil, fmt.Errorf("invalid log format '%s'", format)
	}

	zl := zerolog.New(out).Level(lvl).With().Timestamp().Logger()
	return zeroLogger{zl: zl}, nil
}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return zeroLogger{zl: zerolog.Nop()}
}

func (l zeroLogger) Error(format string, args ...any) {
	l.zl.Error().Msgf(format, args...)
}

func (l zeroLogger) Warn(format string, args ...any) {
	l.zl.Warn().Msgf(format, args...)
}

func (l zeroLogger) Info(format string, args ...any) {
	l.zl.Info().Msgf(format, args...)
}

func (l zeroLogger) Debug(format string, args ...any) {
	l.zl.Debug().Msgf(format, args...)
}
