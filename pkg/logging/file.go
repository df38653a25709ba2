package logging

import (
	"io"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// FileRotationConfig contains file logging rotation settings
type FileRotationConfig struct {
	Path       string // Log file path (required)
	MaxSizeMB  int    // Maximum size in megabytes before rotation (default: 10)
	MaxBackups int    // Maximum number of old log files to retain (default: 3)
	MaxAge     int    // Maximum number of days to retain old log files (default: 28)
	Compress   bool   // Whether to compress rotated log files
}

// NewLoggerWithFile creates a logger that writes to stderr and, when
// fileConfig has a path, to a rotated log file as well. Colours are
// disabled whenever a file is written.
func NewLoggerWithFile(module string, level Level, useColors bool, fileConfig *FileRotationConfig) (*SimpleLogger, error) {
	if fileConfig == nil || fileConfig.Path == "" {
		return NewSimpleLogger(module, level, useColors), nil
	}

	maxSizeMB := fileConfig.MaxSizeMB
	if maxSizeMB == 0 {
		maxSizeMB = 10
	}
	maxBackups := fileConfig.MaxBackups
	if maxBackups == 0 {
		maxBackups = 3
	}
	maxAge := fileConfig.MaxAge
	if maxAge == 0 {
		maxAge = 28
	}

	fileWriter := &lumberjack.Logger{
		Filename:   fileConfig.Path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAge,
		Compress:   fileConfig.Compress,
	}

	return NewSimpleLoggerWithWriter(module, level, false, io.MultiWriter(os.Stderr, fileWriter)), nil
}
