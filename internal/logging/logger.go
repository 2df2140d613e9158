// Package logging provides a logging abstraction layer that decouples the
// application from specific logging frameworks.
package logging

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Logger defines the interface for structured logging throughout the application.
type Logger interface {
	// Debug logs a debug-level message with optional fields
	Debug(msg string, fields ...Field)

	// Info logs an info-level message with optional fields
	Info(msg string, fields ...Field)

	// Warn logs a warning-level message with optional fields
	Warn(msg string, fields ...Field)

	// Error logs an error-level message with optional fields
	Error(msg string, fields ...Field)

	// Debugf logs a formatted debug-level message
	Debugf(format string, args ...interface{})

	// Infof logs a formatted info-level message
	Infof(format string, args ...interface{})

	// Warnf logs a formatted warning-level message
	Warnf(format string, args ...interface{})

	// Errorf logs a formatted error-level message
	Errorf(format string, args ...interface{})

	// Fatal logs a message and exits the process
	Fatal(msg string, fields ...Field)

	// Fatalf logs a formatted message and exits the process
	Fatalf(format string, args ...interface{})

	// WithError returns a new logger with an error field attached
	WithError(err error) Logger

	// WithField returns a new logger with a single field attached
	WithField(key string, value interface{}) Logger

	// WithFields returns a new logger with multiple fields attached
	WithFields(fields ...Field) Logger
}

// Field represents a key-value pair for structured logging.
type Field struct {
	Key   string
	Value interface{}
}

var (
	defaultLogger Logger
	defaultOnce   sync.Once
)

// GetLogger returns the process-wide default logger. Packages grab it once
// at init time; the CLI reconfigures the level globally via SetAllLogLevels.
func GetLogger() Logger {
	defaultOnce.Do(func() {
		defaultLogger = NewLogrusAdapterFromLogger(logrus.StandardLogger())
	})
	return defaultLogger
}

// SetAllLogLevels forces the given level on the standard logrus logger, which
// backs the default logger returned by GetLogger.
func SetAllLogLevels(level logrus.Level) {
	logrus.SetLevel(level)
}
