// Package logger builds leveled module loggers on top of op/go-logging.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/op/go-logging"
)

const defaultFormat = `%{time:2006-01-02 15:04:05.000} %{color}%{level:.4s}%{color:reset} [%{module}] %{message}`

// NewLogger returns a logger for module writing to stderr at the given level.
// Unknown levels fall back to INFO.
func NewLogger(level string, module string) *logging.Logger {
	return newLogger(os.Stderr, level, module)
}

func newLogger(w io.Writer, level string, module string) *logging.Logger {
	log := logging.MustGetLogger(module)

	backend := logging.NewLogBackend(w, "", 0)
	formatted := logging.NewBackendFormatter(backend, logging.MustStringFormatter(defaultFormat))
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(ParseLevel(level), module)
	log.SetBackend(leveled)

	return log
}

// ParseLevel maps a level name to a logging level, defaulting to INFO
func ParseLevel(level string) logging.Level {
	name := strings.ToUpper(strings.TrimSpace(level))
	if name == "WARN" {
		name = "WARNING"
	}
	l, err := logging.LogLevel(name)
	if err != nil {
		return logging.INFO
	}
	return l
}
