// Package watcher watches an icon directory tree and notifies listeners,
// debounced, when icons or directories change.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ideamans/iconcollect/pkg/logging"
)

// DefaultDebounce is used when NewWatcher is given a zero delay
const DefaultDebounce = 200 * time.Millisecond

// ChangeEvent describes a batch of changes. Path is the last changed path
// of the batch.
type ChangeEvent struct {
	Path      string
	Timestamp time.Time
	Error     error
}

// ChangeListener receives change notifications
type ChangeListener interface {
	OnChange(event ChangeEvent)
}

// ListenerFunc adapts a function to ChangeListener
type ListenerFunc func(event ChangeEvent)

// OnChange calls f
func (f ListenerFunc) OnChange(event ChangeEvent) { f(event) }

// Watcher watches every directory below a root. Directories created
// later are added as they appear. Hidden directories are not watched.
type Watcher struct {
	watcher       *fsnotify.Watcher
	root          string
	debounceDelay time.Duration
	logger        logging.Logger

	mu        sync.RWMutex
	listeners []ChangeListener
	dirs      map[string]bool
	files     map[string]bool
}

// NewWatcher creates a watcher for root and all its sub-directories
func NewWatcher(root string, debounceDelay time.Duration, logger logging.Logger) (*Watcher, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}
	if debounceDelay <= 0 {
		debounceDelay = DefaultDebounce
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		watcher:       fsWatcher,
		root:          absRoot,
		debounceDelay: debounceDelay,
		logger:        logger.WithModule("watch"),
		dirs:          make(map[string]bool),
		files:         make(map[string]bool),
	}

	if err := w.addTree(absRoot); err != nil {
		_ = fsWatcher.Close()
		return nil, err
	}

	return w, nil
}

// AddListener registers a listener
func (w *Watcher) AddListener(listener ChangeListener) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.listeners = append(w.listeners, listener)
}

// Dirs returns the number of watched directories
func (w *Watcher) Dirs() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.dirs)
}

// WatchFile also reports changes to a single file outside the icon tree,
// such as the configuration file. Its directory is watched without
// recursion.
func (w *Watcher) WatchFile(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	dir := filepath.Dir(abs)
	if !w.dirs[dir] {
		if err := w.watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}
	w.files[abs] = true
	return nil
}

func (w *Watcher) isFile(path string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.files[path]
}

func (w *Watcher) inTree(dir string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.dirs[dir]
}

func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path != dir && errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return w.addDir(path)
	})
}

func (w *Watcher) addDir(dir string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.dirs[dir] {
		return nil
	}
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	w.dirs[dir] = true
	return nil
}

// forget drops dir and everything below it. fsnotify removes the watches
// of deleted directories on its own.
func (w *Watcher) forget(dir string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	found := false
	for d := range w.dirs {
		if d == dir || strings.HasPrefix(d, dir+string(filepath.Separator)) {
			delete(w.dirs, d)
			found = true
		}
	}
	return found
}

// relevant reports whether event may change the collected icons, adding
// watches for new directories on the way
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if w.isFile(event.Name) {
		return !event.Has(fsnotify.Chmod)
	}
	if strings.HasPrefix(filepath.Base(event.Name), ".") || !w.inTree(filepath.Dir(event.Name)) {
		return false
	}

	switch {
	case event.Has(fsnotify.Create):
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addTree(event.Name); err != nil {
				w.logger.Warn("Failed to watch new directory", "dir", event.Name, "error", err)
			}
			return true
		}
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		if w.forget(event.Name) {
			return true
		}
	case event.Has(fsnotify.Chmod):
		return false
	}

	return strings.EqualFold(filepath.Ext(event.Name), ".svg")
}

// Start watches until ctx is cancelled or the watcher is closed. It blocks
// and is usually run in a goroutine.
func (w *Watcher) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	pending := make(chan string, 64)
	done := make(chan struct{})
	go func() {
		defer close(done)
		w.debounce(ctx, pending)
	}()

	err := w.loop(ctx, pending)
	cancel()
	<-done
	return err
}

func (w *Watcher) loop(ctx context.Context, pending chan<- string) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("Change detected", "path", event.Name, "op", event.Op.String())
			select {
			case pending <- event.Name:
			default:
				// a notification is already due
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.notify(ChangeEvent{Path: w.root, Timestamp: time.Now(), Error: err})
		}
	}
}

func (w *Watcher) debounce(ctx context.Context, pending <-chan string) {
	var (
		timer *time.Timer
		fire  <-chan time.Time
		last  string
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case last = <-pending:
			if timer == nil {
				timer = time.NewTimer(w.debounceDelay)
			} else {
				timer.Reset(w.debounceDelay)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			w.notify(ChangeEvent{Path: last, Timestamp: time.Now()})
		}
	}
}

func (w *Watcher) notify(event ChangeEvent) {
	w.mu.RLock()
	listeners := append([]ChangeListener(nil), w.listeners...)
	w.mu.RUnlock()

	for _, listener := range listeners {
		listener.OnChange(event)
	}
}

// Close stops the watcher and releases resources
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
