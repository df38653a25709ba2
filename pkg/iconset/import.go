package iconset

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/ideamans/iconcollect/pkg/svg"
)

// svgPattern matches .svg files regardless of extension case
const svgPattern = "*.[sS][vV][gG]"

var nameSeparators = regexp.MustCompile(`[^a-z0-9]+`)

// ImportOptions configures ImportDirectory
type ImportOptions struct {
	// Prefix of the resulting icon set (default: svg)
	Prefix string

	// IgnoreImportErrors records unreadable or invalid files as failures
	// instead of aborting the import
	IgnoreImportErrors bool
}

// ImportFailure is a file that was skipped during import
type ImportFailure struct {
	Path   string
	Reason string
}

func (f ImportFailure) String() string {
	return fmt.Sprintf("%s: %s", f.Path, f.Reason)
}

// CleanName turns a file name into an icon name: lower case, with runs of
// characters outside [a-z0-9] collapsed into "-"
func CleanName(filename string) string {
	name := strings.TrimSuffix(filename, filepath.Ext(filename))
	name = nameSeparators.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(name, "-")
}

// ImportDirectory imports the SVG files directly inside dir. Sub-directories
// are not descended into. A missing directory yields an empty set.
func ImportDirectory(dir string, opts ImportOptions) (*IconSet, []ImportFailure, error) {
	set := New(opts.Prefix)

	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return set, nil, nil
		}
		return nil, nil, fmt.Errorf("%w: %s: %v", ErrImport, dir, err)
	}
	if !info.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s is not a directory", ErrImport, dir)
	}

	matches, err := doublestar.Glob(os.DirFS(dir), svgPattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %v", ErrImport, dir, err)
	}
	sort.Strings(matches)

	var failures []ImportFailure
	fail := func(path string, reason error) error {
		if !opts.IgnoreImportErrors {
			return fmt.Errorf("%w: %s: %v", ErrImport, path, reason)
		}
		failures = append(failures, ImportFailure{Path: path, Reason: reason.Error()})
		return nil
	}

	for _, match := range matches {
		path := filepath.Join(dir, match)

		name := CleanName(match)
		if name == "" {
			if err := fail(path, ErrEmptyName); err != nil {
				return nil, nil, err
			}
			continue
		}
		if _, exists := set.icons[name]; exists {
			if err := fail(path, fmt.Errorf("%w: %q", ErrDuplicateName, name)); err != nil {
				return nil, nil, err
			}
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			if err := fail(path, err); err != nil {
				return nil, nil, err
			}
			continue
		}

		doc, err := svg.Parse(data)
		if err != nil {
			if err := fail(path, err); err != nil {
				return nil, nil, err
			}
			continue
		}

		set.icons[name] = doc
	}

	return set, failures, nil
}
