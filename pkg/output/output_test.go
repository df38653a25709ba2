package output

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ideamans/iconcollect/pkg/preset"
)

const icon = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24"><path fill="red" d="M0 0h24v24H0z"/></svg>`

func build(t *testing.T, root string) *preset.Config {
	t.Helper()
	cfg, err := preset.Build(context.Background(), preset.Options{Root: root})
	require.NoError(t, err)
	return cfg
}

func writeIcon(t *testing.T, root, rel string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(icon), 0644))
}

func TestWrite(t *testing.T) {
	root := t.TempDir()
	out := filepath.Join(t.TempDir(), "generated")
	writeIcon(t, root, "logo.svg")
	writeIcon(t, root, "arrows/left.svg")

	result, err := Write(build(t, root), out)
	require.NoError(t, err)

	assert.Equal(t, []string{"common.json", "common-arrows.json", ConfigFile}, result.Written)
	assert.Empty(t, result.Removed)

	data, err := os.ReadFile(filepath.Join(out, "common-arrows.json"))
	require.NoError(t, err)
	var set struct {
		Prefix string                     `json:"prefix"`
		Icons  map[string]json.RawMessage `json:"icons"`
	}
	require.NoError(t, json.Unmarshal(data, &set))
	assert.Equal(t, "svg", set.Prefix)
	assert.Contains(t, set.Icons, "left")

	data, err = os.ReadFile(filepath.Join(out, ConfigFile))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"filesystem"`)
	assert.Contains(t, string(data), `"common-arrows"`)

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp", "no temporary files left behind")
	}
}

func TestWrite_RemovesStale(t *testing.T) {
	root := t.TempDir()
	out := t.TempDir()
	writeIcon(t, root, "logo.svg")
	writeIcon(t, root, "old/gone.svg")

	_, err := Write(build(t, root), out)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(out, "common-old.json"))

	require.NoError(t, os.WriteFile(filepath.Join(out, "package.json"), []byte("{}"), 0644))
	require.NoError(t, os.RemoveAll(filepath.Join(root, "old")))

	result, err := Write(build(t, root), out)
	require.NoError(t, err)
	assert.Equal(t, []string{"common-old.json"}, result.Removed)
	assert.NoFileExists(t, filepath.Join(out, "common-old.json"))
	assert.FileExists(t, filepath.Join(out, "package.json"), "unrelated files are kept")
	assert.FileExists(t, filepath.Join(out, "common.json"))
}

func TestWrite_NoIcons(t *testing.T) {
	_, err := Write(&preset.Config{}, t.TempDir())
	assert.ErrorIs(t, err, ErrNoIcons)
}

func TestWrite_BadManifest(t *testing.T) {
	out := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(out, ManifestFile), []byte("files: [unterminated"), 0644))

	_, err := Write(build(t, t.TempDir()), out)
	assert.Error(t, err)
}
