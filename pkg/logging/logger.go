package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// Level represents log level
type Level int

const (
	// LevelDebug is for per-icon tracing
	LevelDebug Level = iota
	// LevelInfo is for build progress
	LevelInfo
	// LevelWarn is for skipped icons and directories
	LevelWarn
	// LevelError is for failed builds
	LevelError
	// LevelFatal is for errors that end the process
	LevelFatal
)

// String returns the string representation of the log level
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
	case LevelFatal:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel parses a string into a Level
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	case "fatal":
		return LevelFatal
	default:
		return LevelInfo
	}
}

// Logger is the interface for logging
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
	WithModule(module string) Logger
}

// SimpleLogger writes "[module] LEVEL: msg key=value" lines
type SimpleLogger struct {
	module    string
	level     Level
	logger    *log.Logger
	useColors bool
	exit      func(int)
}

// NewSimpleLogger creates a logger writing to stderr. Colours are only
// used when enabled and stderr is a terminal.
func NewSimpleLogger(module string, level Level, useColors bool) *SimpleLogger {
	return NewSimpleLoggerWithWriter(module, level, useColors && isTerminal(os.Stderr), os.Stderr)
}

// NewSimpleLoggerWithWriter creates a logger writing to w
func NewSimpleLoggerWithWriter(module string, level Level, useColors bool, w io.Writer) *SimpleLogger {
	return &SimpleLogger{
		module:    module,
		level:     level,
		logger:    log.New(w, "", log.LstdFlags),
		useColors: useColors,
		exit:      os.Exit,
	}
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

// formatMessage formats a log message with module and level
func (l *SimpleLogger) formatMessage(level Level, msg string, args ...interface{}) string {
	message := msg
	if len(args) > 0 {
		var pairs []string
		for i := 0; i+1 < len(args); i += 2 {
			pairs = append(pairs, fmt.Sprintf("%v=%v", args[i], args[i+1]))
		}
		if len(args)%2 == 1 {
			pairs = append(pairs, fmt.Sprintf("%v=%s", args[len(args)-1], "(MISSING)"))
		}
		message = fmt.Sprintf("%s %s", msg, strings.Join(pairs, " "))
	}

	modulePart := fmt.Sprintf("[%s]", l.module)
	levelPart := level.String()
	if l.useColors {
		modulePart = colorCyan + modulePart + colorReset
		levelPart = colorizeLevel(level, levelPart)
	}

	return fmt.Sprintf("%s %s: %s", modulePart, levelPart, message)
}

func colorizeLevel(level Level, text string) string {
	switch level {
	case LevelDebug:
		return colorGray + text + colorReset
	case LevelInfo:
		return colorGreen + text + colorReset
	case LevelWarn:
		return colorYellow + text + colorReset
	case LevelError:
		return colorRed + text + colorReset
	case LevelFatal:
		return colorRed + colorBold + text + colorReset
	default:
		return text
	}
}

func (l *SimpleLogger) log(level Level, msg string, args ...interface{}) {
	if level < l.level {
		return
	}

	l.logger.Println(l.formatMessage(level, msg, args...))

	if level == LevelFatal {
		l.exit(1)
	}
}

// Debug logs a debug message
func (l *SimpleLogger) Debug(msg string, args ...interface{}) {
	l.log(LevelDebug, msg, args...)
}

// Info logs an informational message
func (l *SimpleLogger) Info(msg string, args ...interface{}) {
	l.log(LevelInfo, msg, args...)
}

// Warn logs a warning message
func (l *SimpleLogger) Warn(msg string, args ...interface{}) {
	l.log(LevelWarn, msg, args...)
}

// Error logs an error message
func (l *SimpleLogger) Error(msg string, args ...interface{}) {
	l.log(LevelError, msg, args...)
}

// Fatal logs a fatal error message and exits
func (l *SimpleLogger) Fatal(msg string, args ...interface{}) {
	l.log(LevelFatal, msg, args...)
}

// WithModule returns a logger for a sub-component. Module names nest
// with "/" (e.g. "build/collect").
func (l *SimpleLogger) WithModule(module string) Logger {
	name := module
	if l.module != "" {
		name = l.module + "/" + module
	}
	return &SimpleLogger{
		module:    name,
		level:     l.level,
		logger:    l.logger,
		useColors: l.useColors,
		exit:      l.exit,
	}
}

// nopLogger discards everything
type nopLogger struct{}

// NewNopLogger returns a Logger that discards all messages
func NewNopLogger() Logger { return nopLogger{} }

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}
func (n nopLogger) WithModule(string) Logger   { return n }

// Color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[90m"
	colorBold   = "\033[1m"
)
