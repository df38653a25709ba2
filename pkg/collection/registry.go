package collection

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ideamans/iconcollect/pkg/iconset"
)

// ErrKeyConflict is returned when two directories map to the same
// collection key
var ErrKeyConflict = errors.New("collection: key conflict")

// KeyConflictError names the key and both directories that produced it
type KeyConflictError struct {
	Key      string
	Existing string
	Incoming string
}

func (e *KeyConflictError) Error() string {
	return fmt.Sprintf("collection: key %q is produced by both %s and %s", e.Key, e.Existing, e.Incoming)
}

// Unwrap lets errors.Is match ErrKeyConflict
func (e *KeyConflictError) Unwrap() error {
	return ErrKeyConflict
}

// Loader returns an icon collection. The transforms have already run;
// calling it only performs the export.
type Loader func() iconset.Collection

// Entry is one registered collection
type Entry struct {
	Key     string
	Dir     string
	Skipped []iconset.ImportFailure
	set     *iconset.IconSet
}

// Load exports the collection
func (e *Entry) Load() iconset.Collection {
	return e.set.Export()
}

// Len returns the number of icons in the collection
func (e *Entry) Len() int {
	return e.set.Len()
}

// Registry maps collection keys to entries. It is built once by
// Collector.Collect and read-only afterwards.
type Registry struct {
	entries        map[string]*Entry
	allowOverwrite bool
}

func newRegistry(allowOverwrite bool) *Registry {
	return &Registry{entries: make(map[string]*Entry), allowOverwrite: allowOverwrite}
}

func (r *Registry) register(e *Entry) error {
	if existing, ok := r.entries[e.Key]; ok && !r.allowOverwrite {
		return &KeyConflictError{Key: e.Key, Existing: existing.Dir, Incoming: e.Dir}
	}
	r.entries[e.Key] = e
	return nil
}

// Len returns the number of collections
func (r *Registry) Len() int {
	return len(r.entries)
}

// Keys returns collection keys in sorted order
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.entries))
	for k := range r.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the entry for key
func (r *Registry) Get(key string) (*Entry, bool) {
	e, ok := r.entries[key]
	return e, ok
}

// Load exports the collection registered under key
func (r *Registry) Load(key string) (iconset.Collection, bool) {
	e, ok := r.entries[key]
	if !ok {
		return iconset.Collection{}, false
	}
	return e.Load(), true
}

// Loaders returns the key to accessor mapping handed to the icon preset
func (r *Registry) Loaders() map[string]Loader {
	out := make(map[string]Loader, len(r.entries))
	for k, e := range r.entries {
		out[k] = e.Load
	}
	return out
}

// Skipped returns every import failure across all collections, ordered by path
func (r *Registry) Skipped() []iconset.ImportFailure {
	var all []iconset.ImportFailure
	for _, e := range r.entries {
		all = append(all, e.Skipped...)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Path < all[j].Path })
	return all
}

// IconCount returns the total number of icons across all collections
func (r *Registry) IconCount() int {
	n := 0
	for _, e := range r.entries {
		n += e.Len()
	}
	return n
}
