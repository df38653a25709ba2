package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ideamans/iconcollect/pkg/config"
	"github.com/ideamans/iconcollect/pkg/logging"
)

const icon = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24"><path fill="#333" d="M0 0h24v24H0z"/></svg>`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoadConfig(t *testing.T) {
	t.Run("missing file uses defaults", func(t *testing.T) {
		cfg, err := loadConfig(filepath.Join(t.TempDir(), "iconcollect.yaml"), false, overrides{})
		require.NoError(t, err)
		assert.Equal(t, "common", cfg.Icons.BaseName)
	})

	t.Run("explicit missing file fails", func(t *testing.T) {
		_, err := loadConfig(filepath.Join(t.TempDir(), "iconcollect.yaml"), true, overrides{})
		assert.ErrorIs(t, err, config.ErrConfigFileNotFound)
	})

	t.Run("flags override the file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "iconcollect.yaml")
		writeFile(t, path, "icons:\n  root: from-file\n  base_name: file\noutput:\n  dir: out-file\n")

		cfg, err := loadConfig(path, false, overrides{root: "from-flag", out: "out-flag", logLevel: "debug"})
		require.NoError(t, err)
		assert.Equal(t, "from-flag", cfg.Icons.Root)
		assert.Equal(t, "file", cfg.Icons.BaseName)
		assert.Equal(t, "out-flag", cfg.Output.Dir)
		assert.Equal(t, "debug", cfg.Logging.Level)
	})

	t.Run("invalid file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "iconcollect.yaml")
		writeFile(t, path, "preset:\n  scale: -2\n")
		_, err := loadConfig(path, false, overrides{})
		assert.ErrorIs(t, err, config.ErrInvalidScale)
	})
}

func testApp(t *testing.T) (*app, string) {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "logo.svg"), icon)
	writeFile(t, filepath.Join(root, "arrows", "left.svg"), icon)

	cfg := config.Default()
	cfg.Icons.Root = root
	cfg.Output.Dir = filepath.Join(t.TempDir(), "out")
	cfg.Cache.Type = "memory"
	cfg.Watch.Debounce = "30ms"

	a, err := newAppWithLogger(cfg, logging.NewTestLogger())
	require.NoError(t, err)
	t.Cleanup(a.close)
	return a, root
}

func TestApp_Build(t *testing.T) {
	a, _ := testApp(t)

	pc, result, err := a.build(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"common", "common-arrows"}, pc.Registry.Keys())
	assert.Equal(t, []string{"common.json", "common-arrows.json", "uno.config.json"}, result.Written)
	assert.FileExists(t, filepath.Join(a.cfg.Output.Dir, "common-arrows.json"))
}

func TestWatchLoop(t *testing.T) {
	a, root := testApp(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- watchLoop(ctx, a, "", nil) }()

	target := filepath.Join(a.cfg.Output.Dir, "common-brand.json")
	require.Eventually(t, func() bool {
		_, err := os.Stat(filepath.Join(a.cfg.Output.Dir, "common.json"))
		return err == nil
	}, 2*time.Second, 20*time.Millisecond, "initial build")

	// give the watcher time to register before changing the tree
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.Mkdir(filepath.Join(root, "brand"), 0755))
	writeFile(t, filepath.Join(root, "brand", "mark.svg"), icon)

	require.Eventually(t, func() bool {
		_, err := os.Stat(target)
		return err == nil
	}, 3*time.Second, 20*time.Millisecond, "rebuild after a new directory")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch loop did not stop")
	}
}

func TestCommands(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "icons")
	out := filepath.Join(dir, "out")
	writeFile(t, filepath.Join(root, "logo.svg"), icon)
	writeFile(t, filepath.Join(root, "ui", "close.svg"), icon)
	writeFile(t, filepath.Join(dir, "src", "app", "App.vue"), `<i class="i-common-logo"></i>`)

	conf := filepath.Join(dir, "iconcollect.yaml")
	writeFile(t, conf, "logging:\n  level: error\n")

	run := func(args ...string) (string, error) {
		var buf bytes.Buffer
		rootCmd.SetOut(&buf)
		rootCmd.SetArgs(append(args, "--config", conf, "--root", root, "--out", out))
		err := rootCmd.Execute()
		return buf.String(), err
	}

	t.Run("build", func(t *testing.T) {
		stdout, err := run("build")
		require.NoError(t, err)
		assert.Contains(t, stdout, "common-ui")
		assert.Contains(t, stdout, "2 collections written")
		assert.FileExists(t, filepath.Join(out, "uno.config.json"))
	})

	t.Run("check", func(t *testing.T) {
		scanDir = dir
		defer func() { scanDir = "." }()

		stdout, err := run("check", "--dir", dir)
		require.NoError(t, err)
		assert.Contains(t, stdout, "All icon references resolve")

		writeFile(t, filepath.Join(dir, "src", "app", "Nav.vue"), `<i class="i-common-ui-open"></i>`)
		stdout, err = run("check", "--dir", dir)
		assert.ErrorIs(t, err, ErrMissingIcons)
		assert.True(t, strings.Contains(stdout, "i-common-ui-open"))
	})

	t.Run("test-config", func(t *testing.T) {
		stdout, err := run("test-config")
		require.NoError(t, err)
		assert.Contains(t, stdout, "Configuration is valid")
		assert.Contains(t, stdout, "Icon Root: "+root)
	})
}
