// Package log provides the structured logging interface used by every estimator.
//
// The interface is slog-compatible so the backend can be swapped; the default
// provider writes through zerolog. Estimators obtain a component logger with
// GetLoggerWithName and attach model context with With:
//
//	logger := log.GetLoggerWithName("cluster").With(
//	    log.ModelNameKey, "KMeans",
//	    log.EstimatorIDKey, km.ID(),
//	)
//	logger.Debug("fit completed", log.SamplesKey, 150, log.IterationKey, 7)
package log

import (
	"context"
)

// Logger defines a structured logging interface compatible with Go's log/slog.
// Fields are alternating key/value pairs.
type Logger interface {
	Debug(msg string, fields ...any)
	Info(msg string, fields ...any)
	Warn(msg string, fields ...any)
	// Error logs at error level. An error value among the fields is rendered
	// with its message.
	Error(msg string, fields ...any)
	// With returns a new Logger with the given fields pre-populated.
	With(fields ...any) Logger
	// Enabled reports whether the logger emits records at the given level.
	Enabled(ctx context.Context, level Level) bool
}

// Level represents a logging level, compatible with slog.Level.
type Level int

const (
	LevelDebug Level = -4
	LevelInfo  Level = 0
	LevelWarn  Level = 4
	LevelError Level = 8
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// LoggerProvider creates loggers; swapped in tests and by applications.
type LoggerProvider interface {
	GetLogger() Logger
	GetLoggerWithName(name string) Logger
	SetLevel(level Level)
}
