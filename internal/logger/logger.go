package logger

import (
	"fmt"
	"io"
	"sync"
)

// Logger defines the interface for logging messages.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// Noop returns a do-nothing Logger (null object pattern).
func Noop() Logger { return &noopLogger{} }

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Level is the minimum severity a StdLogger writes.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the prefix label of the level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	default:
		return "ERROR"
	}
}

// StdLogger provides thread-safe leveled logging to an output writer.
type StdLogger struct {
	mu  sync.Mutex
	out io.Writer
	min Level
}

// NewStdLogger creates a new Logger that writes to the given writer.
// Messages below min are suppressed.
func NewStdLogger(out io.Writer, min Level) *StdLogger {
	return &StdLogger{
		out: out,
		min: min,
	}
}

func (l *StdLogger) log(level Level, format string, args ...any) {
	if level < l.min {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = fmt.Fprintf(l.out, "["+level.String()+"] "+format+"\n", args...)
}

// Debug logs a request-level trace message with [DEBUG] prefix.
func (l *StdLogger) Debug(format string, args ...any) { l.log(LevelDebug, format, args...) }

// Info logs an informational message with [INFO] prefix.
func (l *StdLogger) Info(format string, args ...any) { l.log(LevelInfo, format, args...) }

// Warn logs a warning message with [WARN] prefix.
func (l *StdLogger) Warn(format string, args ...any) { l.log(LevelWarn, format, args...) }

// Error logs an error message with [ERROR] prefix.
func (l *StdLogger) Error(format string, args ...any) { l.log(LevelError, format, args...) }
