// Package logger provides component-scoped structured logging for the SDK.
package logger

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
	With().Timestamp().Logger()

// SetLevel adjusts the global log level. Accepts debug, info, warn, error.
// Unknown values leave the level unchanged.
func SetLevel(level string) {
	switch strings.ToLower(level) {
	case "debug":
		log = log.Level(zerolog.DebugLevel)
	case "info":
		log = log.Level(zerolog.InfoLevel)
	case "warn":
		log = log.Level(zerolog.WarnLevel)
	case "error":
		log = log.Level(zerolog.ErrorLevel)
	}
}

// UseJSON switches output from the console writer to plain JSON on stderr.
func UseJSON() {
	log = zerolog.New(os.Stderr).With().Timestamp().Logger()
}

func emit(ev *zerolog.Event, component, msg string, fields map[string]interface{}) {
	ev = ev.Str("component", component)
	for k, v := range fields {
		ev = ev.Interface(k, v)
	}
	ev.Msg(msg)
}

// DebugCF logs a debug message for a component with optional fields.
func DebugCF(component, msg string, fields map[string]interface{}) {
	emit(log.Debug(), component, msg, fields)
}

// InfoCF logs an info message for a component with optional fields.
func InfoCF(component, msg string, fields map[string]interface{}) {
	emit(log.Info(), component, msg, fields)
}

// WarnCF logs a warning for a component with optional fields.
func WarnCF(component, msg string, fields map[string]interface{}) {
	emit(log.Warn(), component, msg, fields)
}

// ErrorCF logs an error for a component with optional fields.
func ErrorCF(component, msg string, fields map[string]interface{}) {
	emit(log.Error(), component, msg, fields)
}
