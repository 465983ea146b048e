// Package log wraps a process-wide zerolog logger.
//
// The CLI points it at stderr so JSON on stdout stays clean; the TUI points it at a
// file inside the store dir so the alternate screen is not overwritten.
package log

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	logger     = zerolog.New(io.Discard)
	loggerLock sync.RWMutex
)

// Setup replaces the global logger. console selects zerolog's human-readable writer.
func Setup(w io.Writer, level string, console bool) {
	if w == nil {
		w = os.Stderr
	}
	out := w
	if console {
		out = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.Kitchen,
			NoColor:    strings.TrimSpace(os.Getenv("NO_COLOR")) != "",
		}
	}
	l := zerolog.New(out).
		Level(ParseLevel(level)).
		With().
		Timestamp().
		Logger()

	loggerLock.Lock()
	logger = l
	loggerLock.Unlock()
}

// ParseLevel maps a config string to a zerolog level. Unknown values fall back to warn.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "off", "disabled", "none":
		return zerolog.Disabled
	default:
		return zerolog.WarnLevel
	}
}

func current() *zerolog.Logger {
	loggerLock.RLock()
	l := logger
	loggerLock.RUnlock()
	return &l
}

func Debug() *zerolog.Event { return current().Debug() }

func Info() *zerolog.Event { return current().Info() }

func Warn() *zerolog.Event { return current().Warn() }

func Error() *zerolog.Event { return current().Error() }
