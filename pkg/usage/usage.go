// Package usage finds icon classes in content files and checks them
// against the collected icon sets.
package usage

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/ideamans/iconcollect/pkg/iconset"
)

// ErrNoPrefix is returned when Scan is called without a class prefix
var ErrNoPrefix = errors.New("usage: class prefix is required")

// Resolver gives access to collections by key. *collection.Registry
// satisfies it.
type Resolver interface {
	Keys() []string
	Load(key string) (iconset.Collection, bool)
}

// Reference is one icon class found in a content file
type Reference struct {
	File       string
	Line       int
	Class      string
	Collection string
	Icon       string
}

func (r Reference) String() string {
	return fmt.Sprintf("%s:%d: %s", r.File, r.Line, r.Class)
}

// Report is the result of a scan. References to collections that are not
// known to the resolver are ignored: they belong to other icon sets.
type Report struct {
	Used    []Reference
	Missing []Reference
	Files   int
}

// OK reports whether every reference resolved to an existing icon
func (r *Report) OK() bool {
	return len(r.Missing) == 0
}

// Scan expands globs relative to root and looks for <prefix><collection>-<icon>
// or <prefix><collection>:<icon> classes in the matched files
func Scan(ctx context.Context, root string, globs []string, prefix string, resolver Resolver) (*Report, error) {
	if prefix == "" {
		return nil, ErrNoPrefix
	}

	files, err := expand(root, globs)
	if err != nil {
		return nil, err
	}

	s := &scanner{
		pattern:     regexp.MustCompile(`(?:^|[^\w-])` + regexp.QuoteMeta(prefix) + `([a-z0-9]+(?:[-:][a-z0-9]+)+)`),
		prefix:      prefix,
		keys:        byLength(resolver.Keys()),
		known:       make(map[string]bool),
		resolver:    resolver,
		collections: make(map[string]iconset.Collection),
	}

	for _, k := range s.keys {
		s.known[k] = true
	}

	report := &Report{Files: len(files)}
	for _, rel := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := s.scanFile(filepath.Join(root, rel), rel, report); err != nil {
			return nil, err
		}
	}

	return report, nil
}

// expand returns the files matched by globs, relative to root, without
// duplicates and in sorted order
func expand(root string, globs []string) ([]string, error) {
	fsys := os.DirFS(root)
	seen := make(map[string]bool)
	var files []string
	for _, g := range globs {
		g = filepath.ToSlash(strings.TrimPrefix(g, "./"))
		if !doublestar.ValidatePattern(g) {
			return nil, fmt.Errorf("usage: invalid glob %q", g)
		}
		matches, err := doublestar.Glob(fsys, g, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("usage: glob %q: %w", g, err)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	sort.Strings(files)
	return files, nil
}

// byLength sorts keys longest first so that common-arrows-thin wins over
// common-arrows for the class common-arrows-thin-up
func byLength(keys []string) []string {
	out := append([]string(nil), keys...)
	sort.SliceStable(out, func(i, j int) bool { return len(out[i]) > len(out[j]) })
	return out
}

type scanner struct {
	pattern     *regexp.Regexp
	prefix      string
	keys        []string
	known       map[string]bool
	resolver    Resolver
	collections map[string]iconset.Collection
}

func (s *scanner) scanFile(path, rel string, report *Report) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("usage: %w", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 4*1024*1024)

	line := 0
	for sc.Scan() {
		line++
		for _, m := range s.pattern.FindAllStringSubmatch(sc.Text(), -1) {
			ref, found, ok := s.resolve(m[1])
			if !ok {
				continue
			}
			ref.File = rel
			ref.Line = line
			ref.Class = s.prefix + m[1]

			if found {
				report.Used = append(report.Used, ref)
			} else {
				report.Missing = append(report.Missing, ref)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("usage: %s: %w", rel, err)
	}
	return nil
}

// resolve splits name into a known collection key and an icon name. When
// several keys match, the longest key holding the icon wins; found is false
// when no matching collection holds it.
func (s *scanner) resolve(name string) (ref Reference, found, ok bool) {
	if key, icon, cut := strings.Cut(name, ":"); cut {
		if !s.known[key] || icon == "" || strings.Contains(icon, ":") {
			return Reference{}, false, false
		}
		return Reference{Collection: key, Icon: icon}, s.load(key).Has(icon), true
	}

	for _, key := range s.keys {
		icon, cut := strings.CutPrefix(name, key+"-")
		if !cut || icon == "" {
			continue
		}
		if s.load(key).Has(icon) {
			return Reference{Collection: key, Icon: icon}, true, true
		}
		if !ok {
			ref, ok = Reference{Collection: key, Icon: icon}, true
		}
	}
	return ref, false, ok
}

func (s *scanner) load(key string) iconset.Collection {
	if c, ok := s.collections[key]; ok {
		return c
	}
	c, _ := s.resolver.Load(key)
	s.collections[key] = c
	return c
}
