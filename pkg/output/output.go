// Package output writes the generator configuration and one Iconify JSON
// file per collection to a directory.
package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/ideamans/iconcollect/pkg/preset"
)

const (
	// ConfigFile holds the whole generator configuration
	ConfigFile = "uno.config.json"

	// ManifestFile lists the collection files written by the last run
	ManifestFile = ".iconcollect-manifest.yaml"
)

// ErrNoIcons is returned when the configuration has no icons preset
var ErrNoIcons = errors.New("output: configuration has no icons preset")

// Result lists the files touched by Write, relative to the output directory
type Result struct {
	Written []string
	Removed []string
}

type manifest struct {
	Files []string `yaml:"files"`
}

// Write renders cfg into dir. Collection files from a previous run that no
// longer have a collection are removed; other files in dir are left alone.
func Write(cfg *preset.Config, dir string) (*Result, error) {
	icons := cfg.Icons()
	if icons == nil {
		return nil, ErrNoIcons
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("output: create %s: %w", dir, err)
	}

	previous, err := readManifest(dir)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(icons.Collections))
	for key := range icons.Collections {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	result := &Result{}
	var written []string
	current := make(map[string]bool, len(keys))
	for _, key := range keys {
		name := key + ".json"
		data, err := json.MarshalIndent(icons.Collections[key](), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("output: collection %s: %w", key, err)
		}
		if err := writeFileAtomic(filepath.Join(dir, name), append(data, '\n')); err != nil {
			return nil, err
		}
		current[name] = true
		written = append(written, name)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("output: configuration: %w", err)
	}
	if err := writeFileAtomic(filepath.Join(dir, ConfigFile), append(data, '\n')); err != nil {
		return nil, err
	}
	result.Written = append(written, ConfigFile)

	for _, name := range previous.Files {
		if current[name] || filepath.Base(name) != name {
			continue
		}
		err := os.Remove(filepath.Join(dir, name))
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("output: remove stale %s: %w", name, err)
		}
		if err == nil {
			result.Removed = append(result.Removed, name)
		}
	}

	next, err := yaml.Marshal(manifest{Files: written})
	if err != nil {
		return nil, fmt.Errorf("output: manifest: %w", err)
	}
	if err := writeFileAtomic(filepath.Join(dir, ManifestFile), next); err != nil {
		return nil, err
	}

	return result, nil
}

func readManifest(dir string) (manifest, error) {
	var m manifest
	data, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return m, nil
		}
		return m, fmt.Errorf("output: read manifest: %w", err)
	}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("output: parse manifest: %w", err)
	}
	return m, nil
}

// writeFileAtomic writes to a temporary file in the same directory and
// renames it over path
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("output: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("output: write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("output: write %s: %w", path, err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("output: write %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("output: write %s: %w", path, err)
	}
	return nil
}
