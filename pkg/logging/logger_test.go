package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{LevelFatal, "FATAL"},
		{Level(42), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.level.String())
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{" error ", LevelError},
		{"fatal", LevelFatal},
		{"unknown", LevelInfo},
		{"", LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.input))
		})
	}
}

func TestSimpleLogger_Format(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSimpleLoggerWithWriter("build", LevelDebug, false, &buf)

	logger.Info("Collected icons", "collections", 3, "icons", 12)
	logger.Warn("Odd args", "key")

	out := buf.String()
	assert.Contains(t, out, "[build] INFO: Collected icons collections=3 icons=12")
	assert.Contains(t, out, "[build] WARN: Odd args key=(MISSING)")
	assert.NotContains(t, out, "\033[")
}

func TestSimpleLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSimpleLoggerWithWriter("build", LevelWarn, false, &buf)

	logger.Debug("hidden debug")
	logger.Info("hidden info")
	logger.Warn("shown warn")
	logger.Error("shown error")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown warn")
	assert.Contains(t, out, "shown error")
}

func TestSimpleLogger_Colors(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSimpleLoggerWithWriter("build", LevelDebug, true, &buf)

	logger.Error("boom")

	assert.Contains(t, buf.String(), colorRed+"ERROR"+colorReset)
	assert.Contains(t, buf.String(), colorCyan+"[build]"+colorReset)
}

func TestSimpleLogger_Fatal(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSimpleLoggerWithWriter("build", LevelInfo, false, &buf)
	code := -1
	logger.exit = func(c int) { code = c }

	logger.Fatal("cannot continue")

	assert.Equal(t, 1, code)
	assert.Contains(t, buf.String(), "FATAL: cannot continue")
}

func TestSimpleLogger_WithModule(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSimpleLoggerWithWriter("build", LevelInfo, false, &buf)

	logger.WithModule("collect").WithModule("svg").Info("nested")

	assert.Contains(t, buf.String(), "[build/collect/svg] INFO: nested")
}

func TestNewLoggerWithFile(t *testing.T) {
	t.Run("no file config", func(t *testing.T) {
		logger, err := NewLoggerWithFile("test", LevelInfo, false, nil)
		require.NoError(t, err)
		assert.NotNil(t, logger)
	})

	t.Run("empty path", func(t *testing.T) {
		logger, err := NewLoggerWithFile("test", LevelInfo, false, &FileRotationConfig{})
		require.NoError(t, err)
		assert.NotNil(t, logger)
	})

	t.Run("writes to file without colors", func(t *testing.T) {
		logPath := filepath.Join(t.TempDir(), "build.log")

		logger, err := NewLoggerWithFile("test", LevelInfo, true, &FileRotationConfig{Path: logPath, MaxSizeMB: 1})
		require.NoError(t, err)

		logger.Info("Wrote collection", "key", "common-arrows")

		content, err := os.ReadFile(logPath)
		require.NoError(t, err)
		assert.Contains(t, string(content), "key=common-arrows")
		assert.False(t, strings.Contains(string(content), "\033["), "log file must not contain ANSI codes")
	})
}

func TestTestLogger_Entries(t *testing.T) {
	logger := NewTestLogger()
	logger.WithModule("collect").Warn("Skipped icon", "file", "bad.svg")
	logger.Info("done")

	entries := logger.Entries()
	require.Len(t, entries, 2)
	assert.Contains(t, entries[0], "[test/collect] WARN: Skipped icon")
	assert.Contains(t, entries[1], "[test] INFO: done")
}

func TestNopLogger(t *testing.T) {
	logger := NewNopLogger()
	logger.Info("ignored")
	assert.NotNil(t, logger.WithModule("x"))
}
