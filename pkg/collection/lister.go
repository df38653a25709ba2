package collection

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Lister lists the immediate sub-directories of a directory
type Lister interface {
	ListDirectories(dir string) ([]string, error)
}

// GlobLister lists sub-directories by globbing "dir/*". Hidden entries are
// skipped and symbolic links to directories are followed. A missing
// directory has no sub-directories.
type GlobLister struct{}

// ListDirectories returns the full paths of dir's sub-directories, sorted
func (GlobLister) ListDirectories(dir string) ([]string, error) {
	if _, err := os.Stat(dir); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	matches, err := doublestar.Glob(os.DirFS(dir), "*")
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	var dirs []string
	for _, m := range matches {
		if strings.HasPrefix(m, ".") {
			continue
		}
		full := filepath.Join(dir, m)
		info, err := os.Stat(full)
		if err != nil {
			// dangling symlink
			continue
		}
		if info.IsDir() {
			dirs = append(dirs, full)
		}
	}

	sort.Strings(dirs)
	return dirs, nil
}
