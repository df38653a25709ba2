package config

import (
	"fmt"
	"time"

	"github.com/ideamans/iconcollect/pkg/cache"
	"github.com/ideamans/iconcollect/pkg/collection"
	"github.com/ideamans/iconcollect/pkg/logging"
	"github.com/ideamans/iconcollect/pkg/preset"
	"github.com/ideamans/iconcollect/pkg/svg"
)

// Config represents the iconcollect configuration
type Config struct {
	Icons   IconsConfig   `yaml:"icons" json:"icons"`
	Preset  PresetConfig  `yaml:"preset" json:"preset"`
	Output  OutputConfig  `yaml:"output" json:"output"`
	Cache   cache.Config  `yaml:"cache" json:"cache"`
	Watch   WatchConfig   `yaml:"watch" json:"watch"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// IconsConfig describes where icons are read from and how they are processed
type IconsConfig struct {
	Root           string `yaml:"root" json:"root"`                       // Icon root directory (default: "src/assets/icon/common")
	BaseName       string `yaml:"base_name" json:"base_name"`             // Key of the root collection (default: "common")
	ImportPrefix   string `yaml:"import_prefix" json:"import_prefix"`     // Icon set prefix (default: "svg")
	AllowOverwrite bool   `yaml:"allow_overwrite" json:"allow_overwrite"` // Last directory wins on key conflicts instead of failing
	StrictImport   bool   `yaml:"strict_import" json:"strict_import"`     // Fail on unreadable icon files instead of skipping them
	Color          string `yaml:"color" json:"color"`                     // Replacement for concrete colours (default: "currentColor")
	DefaultColor   string `yaml:"default_color" json:"default_color"`     // Fill for shapes without one (default: none)
}

// PresetConfig contains the icons preset options
type PresetConfig struct {
	Prefix          string            `yaml:"prefix" json:"prefix"`
	Scale           float64           `yaml:"scale" json:"scale"`
	ExtraProperties map[string]string `yaml:"extra_properties" json:"extra_properties"`
	Content         []string          `yaml:"content" json:"content"` // Globs scanned for class usage
}

// OutputConfig contains output settings
type OutputConfig struct {
	Dir string `yaml:"dir" json:"dir"` // Output directory (default: ".iconcollect")
}

// WatchConfig contains watch mode settings
type WatchConfig struct {
	Debounce string `yaml:"debounce" json:"debounce"` // Delay before rebuilding (default: "200ms")
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level string            `yaml:"level" json:"level"`
	Color bool              `yaml:"color" json:"color"`
	File  FileLoggingConfig `yaml:"file" json:"file"`
}

// FileLoggingConfig contains rotated log file settings
type FileLoggingConfig struct {
	Path       string `yaml:"path" json:"path"`
	MaxSizeMB  int    `yaml:"max_size_mb" json:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups" json:"max_backups"`
	MaxAge     int    `yaml:"max_age" json:"max_age"`
	Compress   bool   `yaml:"compress" json:"compress"`
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Icons.Root == "" {
		return ErrRootRequired
	}

	if c.Icons.BaseName == "" {
		return ErrBaseNameRequired
	}

	if c.Preset.Prefix == "" {
		return ErrPrefixRequired
	}

	if c.Preset.Scale <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidScale, c.Preset.Scale)
	}

	if c.Output.Dir == "" {
		return ErrOutputRequired
	}

	switch c.Cache.Type {
	case "", "none", "memory", "leveldb":
	case "redis":
		if c.Cache.Redis.Addr == "" {
			return ErrRedisAddrRequired
		}
	default:
		return fmt.Errorf("%w: %s", ErrInvalidCacheType, c.Cache.Type)
	}

	if c.Watch.Debounce != "" {
		d, err := time.ParseDuration(c.Watch.Debounce)
		if err != nil || d < 0 {
			return fmt.Errorf("%w: %s", ErrInvalidDebounce, c.Watch.Debounce)
		}
	}

	if c.Icons.Color != "" {
		if _, ok := svg.ParseColor(c.Icons.Color); !ok {
			return fmt.Errorf("%w: color %q", ErrInvalidColor, c.Icons.Color)
		}
	}
	if c.Icons.DefaultColor != "" {
		if _, ok := svg.ParseColor(c.Icons.DefaultColor); !ok {
			return fmt.Errorf("%w: default_color %q", ErrInvalidColor, c.Icons.DefaultColor)
		}
	}

	return nil
}

// DebounceDelay returns the parsed watch debounce delay
func (c *Config) DebounceDelay() time.Duration {
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil {
		return 0
	}
	return d
}

// PresetOptions converts the configuration into preset build options
func (c *Config) PresetOptions(store cache.Store, logger logging.Logger) preset.Options {
	return preset.Options{
		Root:            c.Icons.Root,
		BaseName:        c.Icons.BaseName,
		Content:         c.Preset.Content,
		Prefix:          c.Preset.Prefix,
		Scale:           c.Preset.Scale,
		ExtraProperties: c.Preset.ExtraProperties,
		Collection: collection.Options{
			ImportPrefix:   c.Icons.ImportPrefix,
			AllowOverwrite: c.Icons.AllowOverwrite,
			StrictImport:   c.Icons.StrictImport,
			Colors: svg.ColorOptions{
				Replacement:  c.Icons.Color,
				DefaultColor: c.Icons.DefaultColor,
			},
			Cache:  store,
			Logger: logger,
		},
	}
}

// FileRotation returns the log file settings, or nil when logging to a
// file is disabled
func (c *Config) FileRotation() *logging.FileRotationConfig {
	if c.Logging.File.Path == "" {
		return nil
	}
	return &logging.FileRotationConfig{
		Path:       c.Logging.File.Path,
		MaxSizeMB:  c.Logging.File.MaxSizeMB,
		MaxBackups: c.Logging.File.MaxBackups,
		MaxAge:     c.Logging.File.MaxAge,
		Compress:   c.Logging.File.Compress,
	}
}
