// Package logging provides structured logging for blockpress built on
// log/slog. Loggers carry an optional component name and persistent fields;
// warnings and errors take the error as an explicit argument so it is always
// attached as a structured attribute.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// LogLevel represents different log levels.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	}
	return "UNKNOWN"
}

func (l LogLevel) slog() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	}
	return slog.LevelInfo
}

// Logger is the structured logging interface used throughout blockpress.
type Logger interface {
	Debug(ctx context.Context, msg string, fields ...interface{})
	Info(ctx context.Context, msg string, fields ...interface{})
	Warn(ctx context.Context, err error, msg string, fields ...interface{})
	Error(ctx context.Context, err error, msg string, fields ...interface{})

	With(fields ...interface{}) Logger
	WithComponent(component string) Logger
}

// Config holds logger configuration.
type Config struct {
	Level     LogLevel
	Format    string // "json" or "text"
	Output    io.Writer
	AddSource bool
	Component string
}

// DefaultConfig returns the default logger configuration.
func DefaultConfig() *Config {
	return &Config{
		Level:  LevelInfo,
		Format: "text",
		Output: os.Stderr,
	}
}

// SlogLogger implements Logger on top of a slog handler. Persistent fields
// and the component name live in the wrapped slog.Logger itself.
type SlogLogger struct {
	inner *slog.Logger
}

// NewLogger creates a new structured logger.
func NewLogger(config *Config) *SlogLogger {
	if config == nil {
		config = DefaultConfig()
	}

	opts := &slog.HandlerOptions{
		Level:     config.Level.slog(),
		AddSource: config.AddSource,
	}

	var handler slog.Handler
	switch config.Format {
	case "json":
		handler = slog.NewJSONHandler(config.Output, opts)
	default:
		handler = slog.NewTextHandler(config.Output, opts)
	}

	inner := slog.New(handler)
	if config.Component != "" {
		inner = inner.With(slog.String("component", config.Component))
	}
	return &SlogLogger{inner: inner}
}

// Debug logs a debug message.
func (l *SlogLogger) Debug(ctx context.Context, msg string, fields ...interface{}) {
	l.inner.DebugContext(ctx, msg, fields...)
}

// Info logs an info message.
func (l *SlogLogger) Info(ctx context.Context, msg string, fields ...interface{}) {
	l.inner.InfoContext(ctx, msg, fields...)
}

// Warn logs a warning with the error attached as an attribute.
func (l *SlogLogger) Warn(ctx context.Context, err error, msg string, fields ...interface{}) {
	l.inner.WarnContext(ctx, msg, withError(err, fields)...)
}

// Error logs an error with the error attached as an attribute.
func (l *SlogLogger) Error(ctx context.Context, err error, msg string, fields ...interface{}) {
	l.inner.ErrorContext(ctx, msg, withError(err, fields)...)
}

// With creates a new logger with additional persistent fields.
func (l *SlogLogger) With(fields ...interface{}) Logger {
	return &SlogLogger{inner: l.inner.With(fields...)}
}

// WithComponent creates a new logger with component context.
func (l *SlogLogger) WithComponent(component string) Logger {
	return &SlogLogger{inner: l.inner.With(slog.String("component", component))}
}

func withError(err error, fields []interface{}) []interface{} {
	if err == nil {
		return fields
	}
	out := make([]interface{}, 0, len(fields)+2)
	out = append(out, slog.String("error", err.Error()))
	return append(out, fields...)
}

// Discard returns a logger that drops everything. Useful as a default in
// constructors and tests.
func Discard() Logger {
	return &SlogLogger{inner: slog.New(slog.NewTextHandler(io.Discard, nil))}
}
