package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestFileLoader_Load(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		content  string
		wantErr  bool
		validate func(*testing.T, *Config)
	}{
		{
			name: "full yaml",
			file: "iconcollect.yaml",
			content: `
icons:
  root: assets/icons
  base_name: app
  allow_overwrite: true
  default_color: currentColor

preset:
  prefix: "icon-"
  scale: 1.2
  extra_properties:
    vertical-align: middle
  content:
    - "web/**/*.html"

output:
  dir: build/icons

cache:
  type: leveldb
  leveldb:
    path: /tmp/iconcache

watch:
  debounce: 1s

logging:
  level: debug
  file:
    path: /tmp/iconcollect.log
`,
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "assets/icons", cfg.Icons.Root)
				assert.Equal(t, "app", cfg.Icons.BaseName)
				assert.True(t, cfg.Icons.AllowOverwrite)
				assert.Equal(t, "currentColor", cfg.Icons.DefaultColor)
				assert.Equal(t, "svg", cfg.Icons.ImportPrefix, "default applied")
				assert.Equal(t, "icon-", cfg.Preset.Prefix)
				assert.Equal(t, 1.2, cfg.Preset.Scale)
				assert.Equal(t, map[string]string{"vertical-align": "middle"}, cfg.Preset.ExtraProperties)
				assert.Equal(t, []string{"web/**/*.html"}, cfg.Preset.Content)
				assert.Equal(t, "build/icons", cfg.Output.Dir)
				assert.Equal(t, "leveldb", cfg.Cache.Type)
				assert.Equal(t, "/tmp/iconcache", cfg.Cache.LevelDB.Path)
				assert.Equal(t, "iconcollect", cfg.Cache.Namespace)
				assert.Equal(t, "1s", cfg.Watch.Debounce)
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, "/tmp/iconcollect.log", cfg.Logging.File.Path)
			},
		},
		{
			name:    "empty yaml gets defaults",
			file:    "iconcollect.yml",
			content: ``,
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "src/assets/icon/common", cfg.Icons.Root)
				assert.Equal(t, "common", cfg.Icons.BaseName)
				assert.Equal(t, "i-", cfg.Preset.Prefix)
			},
		},
		{
			name:    "json",
			file:    "iconcollect.json",
			content: `{"icons": {"root": "icons", "base_name": "base"}, "cache": {"type": "memory"}}`,
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "icons", cfg.Icons.Root)
				assert.Equal(t, "base", cfg.Icons.BaseName)
				assert.Equal(t, "memory", cfg.Cache.Type)
			},
		},
		{
			name:    "invalid yaml",
			file:    "iconcollect.yaml",
			content: "icons: [unterminated",
			wantErr: true,
		},
		{
			name:    "invalid json",
			file:    "iconcollect.json",
			content: `{"icons":`,
			wantErr: true,
		},
		{
			name:    "unsupported extension",
			file:    "iconcollect.toml",
			content: `icons = {}`,
			wantErr: true,
		},
		{
			name:    "validation failure",
			file:    "iconcollect.yaml",
			content: "cache:\n  type: memcached\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader := NewFileLoader(writeConfig(t, tt.file, tt.content))
			cfg, err := loader.Load()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.validate(t, cfg)
		})
	}
}

func TestFileLoader_EnvExpansion(t *testing.T) {
	t.Setenv("ICON_ROOT", "from/env")
	t.Setenv("REDIS_ADDR", "")

	path := writeConfig(t, "iconcollect.yaml", `
icons:
  root: ${ICON_ROOT}
cache:
  type: redis
  redis:
    addr: ${REDIS_ADDR:-localhost:6379}
`)

	cfg, err := NewFileLoader(path).Load()
	require.NoError(t, err)
	assert.Equal(t, "from/env", cfg.Icons.Root)
	assert.Equal(t, "localhost:6379", cfg.Cache.Redis.Addr)
}

func TestFileLoader_NotFound(t *testing.T) {
	loader := NewFileLoader(filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := loader.Load()
	assert.ErrorIs(t, err, ErrConfigFileNotFound)
	assert.Equal(t, filepath.Base(loader.Path()), "missing.yaml")
}
