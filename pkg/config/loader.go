package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the configuration file looked up when none is given
const DefaultPath = "iconcollect.yaml"

// Loader is an interface for loading configuration
type Loader interface {
	Load() (*Config, error)
}

// FileLoader loads configuration from a YAML or JSON file
type FileLoader struct {
	path string
}

// NewFileLoader creates a new FileLoader
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{path: path}
}

// Path returns the configuration file path
func (l *FileLoader) Path() string {
	return l.path
}

// Load reads and parses the configuration file.
// Supports both YAML (.yaml, .yml) and JSON (.json) formats; the format is
// detected from the file extension. ${VAR} and ${VAR:-default} references
// are expanded before parsing.
func (l *FileLoader) Load() (*Config, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigFileNotFound, l.path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	data = ExpandEnvBytes(data)

	var cfg Config
	ext := strings.ToLower(filepath.Ext(l.path))

	switch ext {
	case ".json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config file: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s (supported: .yaml, .yml, .json)", ext)
	}

	ApplyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Default returns a configuration with every default applied, used when
// no configuration file exists
func Default() *Config {
	var cfg Config
	ApplyDefaults(&cfg)
	return &cfg
}

// ApplyDefaults sets default values for optional fields
func ApplyDefaults(cfg *Config) {
	if cfg.Icons.Root == "" {
		cfg.Icons.Root = "src/assets/icon/common"
	}

	if cfg.Icons.BaseName == "" {
		cfg.Icons.BaseName = "common"
	}

	if cfg.Icons.ImportPrefix == "" {
		cfg.Icons.ImportPrefix = "svg"
	}

	if cfg.Preset.Prefix == "" {
		cfg.Preset.Prefix = "i-"
	}

	if cfg.Preset.Scale == 0 {
		cfg.Preset.Scale = 1
	}

	if cfg.Preset.ExtraProperties == nil {
		cfg.Preset.ExtraProperties = map[string]string{
			"display":   "inline-block",
			"min-width": "1em",
		}
	}

	if len(cfg.Preset.Content) == 0 {
		cfg.Preset.Content = []string{"src/*/*.{ts,tsx,vue}"}
	}

	if cfg.Output.Dir == "" {
		cfg.Output.Dir = ".iconcollect"
	}

	if cfg.Cache.Namespace == "" {
		cfg.Cache.Namespace = "iconcollect"
	}

	if cfg.Watch.Debounce == "" {
		cfg.Watch.Debounce = "200ms"
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}
