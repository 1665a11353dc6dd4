// Package logging provides structured logging using zerolog.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the global logger. It discards everything until Init is called,
// so library callers that never configure logging see no output.
var Logger = zerolog.Nop()

// Level represents log levels.
type Level = zerolog.Level

const (
	DebugLevel    = zerolog.DebugLevel
	InfoLevel     = zerolog.InfoLevel
	WarnLevel     = zerolog.WarnLevel
	ErrorLevel    = zerolog.ErrorLevel
	DisabledLevel = zerolog.Disabled
)

// Config holds logger configuration.
type Config struct {
	// Level is the minimum level written.
	Level Level
	// Output defaults to os.Stderr.
	Output io.Writer
	// Pretty enables human-readable console output.
	Pretty bool
}

// Init replaces the global logger.
func Init(cfg Config) {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}

	out := cfg.Output
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{Out: cfg.Output, TimeFormat: time.Kitchen}
	}

	Logger = zerolog.New(out).
		Level(cfg.Level).
		With().
		Timestamp().
		Logger()
}

// ParseLevel parses a level name, case-insensitively.
// Unknown names yield InfoLevel.
func ParseLevel(level string) Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return DebugLevel
	case "WARN", "WARNING":
		return WarnLevel
	case "ERROR":
		return ErrorLevel
	case "OFF", "DISABLED":
		return DisabledLevel
	default:
		return InfoLevel
	}
}

// Debug starts a new debug level message.
func Debug() *zerolog.Event {
	return Logger.Debug()
}

// Info starts a new info level message.
func Info() *zerolog.Event {
	return Logger.Info()
}

// Warn starts a new warn level message.
func Warn() *zerolog.Event {
	return Logger.Warn()
}

// Error starts a new error level message.
func Error() *zerolog.Event {
	return Logger.Error()
}
