// Package iconset holds a named set of SVG icons: importing them from a
// directory, updating them in place and exporting the final collection.
package iconset

import (
	"sort"

	"github.com/ideamans/iconcollect/pkg/svg"
)

// DefaultPrefix is the prefix given to imported icon sets
const DefaultPrefix = "svg"

// IconSet is a mutable set of icons keyed by name
type IconSet struct {
	Prefix string
	icons  map[string]*svg.Document
}

// New creates an empty icon set
func New(prefix string) *IconSet {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &IconSet{Prefix: prefix, icons: make(map[string]*svg.Document)}
}

// Len returns the number of icons
func (s *IconSet) Len() int {
	return len(s.icons)
}

// Names returns icon names in sorted order
func (s *IconSet) Names() []string {
	names := make([]string, 0, len(s.icons))
	for name := range s.icons {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ForEach calls fn for every icon name in sorted order, stopping at the
// first error. fn may replace the icon with SetSVG.
func (s *IconSet) ForEach(fn func(name string) error) error {
	for _, name := range s.Names() {
		if err := fn(name); err != nil {
			return err
		}
	}
	return nil
}

// SVG returns a copy of the named icon. Changes to the copy are only kept
// after writing it back with SetSVG.
func (s *IconSet) SVG(name string) (*svg.Document, bool) {
	doc, ok := s.icons[name]
	if !ok {
		return nil, false
	}
	return doc.Clone(), true
}

// SetSVG stores doc under name, replacing any existing icon
func (s *IconSet) SetSVG(name string, doc *svg.Document) {
	s.icons[name] = doc.Clone()
}

// Remove deletes the named icon
func (s *IconSet) Remove(name string) {
	delete(s.icons, name)
}

// Export renders every icon to markup
func (s *IconSet) Export() Collection {
	icons := make(map[string]string, len(s.icons))
	for name, doc := range s.icons {
		icons[name] = doc.String()
	}
	return Collection{Prefix: s.Prefix, Icons: icons}
}
