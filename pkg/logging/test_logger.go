package logging

import (
	"fmt"
	"sync"
	"testing"
)

// TestLogger is a logger for tests. It records every message and, when
// created with NewTestLoggerVerbose, forwards them to testing.T.
type TestLogger struct {
	module  string
	t       *testing.T
	mu      *sync.Mutex
	entries *[]string
}

// NewTestLogger creates a test logger that records but does not print
func NewTestLogger() *TestLogger {
	return &TestLogger{module: "test", mu: &sync.Mutex{}, entries: &[]string{}}
}

// NewTestLoggerVerbose creates a test logger that also outputs to testing.T
func NewTestLoggerVerbose(t *testing.T) *TestLogger {
	l := NewTestLogger()
	l.t = t
	return l
}

func (l *TestLogger) record(level Level, msg string, args []interface{}) {
	line := fmt.Sprintf("[%s] %s: %s %v", l.module, level, msg, args)
	l.mu.Lock()
	*l.entries = append(*l.entries, line)
	l.mu.Unlock()
	if l.t != nil {
		l.t.Log(line)
	}
}

// Entries returns the recorded lines of this logger and all loggers
// derived from it with WithModule
func (l *TestLogger) Entries() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), *l.entries...)
}

// Debug logs a debug message
func (l *TestLogger) Debug(msg string, args ...interface{}) { l.record(LevelDebug, msg, args) }

// Info logs an informational message
func (l *TestLogger) Info(msg string, args ...interface{}) { l.record(LevelInfo, msg, args) }

// Warn logs a warning message
func (l *TestLogger) Warn(msg string, args ...interface{}) { l.record(LevelWarn, msg, args) }

// Error logs an error message
func (l *TestLogger) Error(msg string, args ...interface{}) { l.record(LevelError, msg, args) }

// Fatal logs a fatal error message (but doesn't exit in tests)
func (l *TestLogger) Fatal(msg string, args ...interface{}) {
	l.record(LevelFatal, msg, args)
	if l.t != nil {
		l.t.FailNow()
	}
}

// WithModule creates a logger with a nested module name sharing the
// same recorded entries
func (l *TestLogger) WithModule(module string) Logger {
	name := module
	if l.module != "" {
		name = l.module + "/" + module
	}
	return &TestLogger{module: name, t: l.t, mu: l.mu, entries: l.entries}
}
