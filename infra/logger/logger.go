package logger

import (
	"github.com/rs/zerolog"

	corelogger "github.com/decisionlab/benders/core/logger"
)

// Logger mirrors the core logger interface.
type Logger = corelogger.Logger

// New returns a Logger for the given component. The output format is
// detected via the APP_ENV variable.
func New(component string) Logger {
	return NewZerologLogger(component)
}

// NewWithLevel returns a Logger for the given component honoring a
// textual level ("debug", "info", "warn", "error"). Unknown levels fall
// back to info.
func NewWithLevel(component, level string) Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return NewZerologLoggerWithLevel(component, lvl)
}
