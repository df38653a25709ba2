// Package preset builds the utility-class generator configuration: the
// content globs to scan and the preset list, with the icons preset
// carrying every collection found under the icon root.
package preset

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ideamans/iconcollect/pkg/collection"
)

// Preset names
const (
	WindPreset  = "wind"
	IconsPreset = "icons"
)

// Options configures Build
type Options struct {
	// Root is the icon root directory
	Root string

	// BaseName keys the root collection; nested directories append -<dir>
	BaseName string

	// Content lists the globs scanned for class usage
	Content []string

	Prefix          string
	Scale           float64
	ExtraProperties map[string]string

	Collection collection.Options
}

// DefaultOptions returns the stock configuration
func DefaultOptions() Options {
	return Options{
		Root:     "src/assets/icon/common",
		BaseName: "common",
		Content:  []string{"src/*/*.{ts,tsx,vue}"},
		Prefix:   "i-",
		Scale:    1,
		ExtraProperties: map[string]string{
			"display":   "inline-block",
			"min-width": "1em",
		},
	}
}

// Content names the files scanned for class usage
type Content struct {
	Filesystem []string `json:"filesystem"`
}

// IconsOptions are the options of the icons preset
type IconsOptions struct {
	Scale           float64
	Prefix          string
	ExtraProperties map[string]string
	Collections     map[string]collection.Loader
}

// Preset is one entry of the preset list. Icons is set only for the icons
// preset.
type Preset struct {
	Name  string        `json:"name"`
	Icons *IconsOptions `json:"options,omitempty"`
}

// Config is the generator configuration
type Config struct {
	Content Content  `json:"content"`
	Presets []Preset `json:"presets"`

	// Registry is the collection registry behind the icons preset
	Registry *collection.Registry `json:"-"`
}

// Build scans opts.Root and assembles the configuration. Nothing is kept
// between calls.
func Build(ctx context.Context, opts Options) (*Config, error) {
	defaults := DefaultOptions()
	if opts.BaseName == "" {
		opts.BaseName = defaults.BaseName
	}
	if opts.Root == "" {
		opts.Root = defaults.Root
	}
	if opts.Content == nil {
		opts.Content = defaults.Content
	}
	if opts.Prefix == "" {
		opts.Prefix = defaults.Prefix
	}
	if opts.Scale == 0 {
		opts.Scale = defaults.Scale
	}
	if opts.ExtraProperties == nil {
		opts.ExtraProperties = defaults.ExtraProperties
	}

	reg, err := collection.New(opts.Collection).Collect(ctx, opts.BaseName, opts.Root)
	if err != nil {
		return nil, fmt.Errorf("preset: %w", err)
	}

	return &Config{
		Content: Content{Filesystem: append([]string(nil), opts.Content...)},
		Presets: []Preset{
			{Name: WindPreset},
			{Name: IconsPreset, Icons: &IconsOptions{
				Scale:           opts.Scale,
				Prefix:          opts.Prefix,
				ExtraProperties: opts.ExtraProperties,
				Collections:     reg.Loaders(),
			}},
		},
		Registry: reg,
	}, nil
}

// Icons returns the icons preset options
func (c *Config) Icons() *IconsOptions {
	for _, p := range c.Presets {
		if p.Name == IconsPreset && p.Icons != nil {
			return p.Icons
		}
	}
	return nil
}

type iconsJSON struct {
	Scale           float64                    `json:"scale"`
	Prefix          string                     `json:"prefix"`
	ExtraProperties map[string]string          `json:"extraProperties,omitempty"`
	Collections     map[string]json.RawMessage `json:"collections"`
}

// MarshalJSON renders the options with every collection loaded and
// converted to Iconify JSON
func (o *IconsOptions) MarshalJSON() ([]byte, error) {
	out := iconsJSON{
		Scale:           o.Scale,
		Prefix:          o.Prefix,
		ExtraProperties: o.ExtraProperties,
		Collections:     make(map[string]json.RawMessage, len(o.Collections)),
	}
	for key, load := range o.Collections {
		data, err := json.Marshal(load())
		if err != nil {
			return nil, fmt.Errorf("preset: collection %s: %w", key, err)
		}
		out.Collections[key] = data
	}
	return json.Marshal(out)
}
