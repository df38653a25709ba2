// Package collection turns a directory tree of SVG icon sets into a
// registry of named collections: one per directory, keyed by the base
// name joined with each nested directory name.
package collection

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/ideamans/iconcollect/pkg/cache"
	"github.com/ideamans/iconcollect/pkg/iconset"
	"github.com/ideamans/iconcollect/pkg/logging"
	"github.com/ideamans/iconcollect/pkg/svg"
)

// Separator joins the base name and directory names into collection keys
const Separator = "-"

// Options configures a Collector
type Options struct {
	// ImportPrefix is the icon set prefix (default: svg)
	ImportPrefix string

	// AllowOverwrite lets a later directory replace an earlier one with the
	// same key instead of failing with a KeyConflictError
	AllowOverwrite bool

	// StrictImport aborts on the first unreadable or invalid icon file
	// instead of skipping it
	StrictImport bool

	Colors svg.ColorOptions
	Lister Lister
	Cache  cache.Store
	Logger logging.Logger
}

// Collector builds registries. Work is sequential: every directory is
// listed, imported and transformed before the next one is visited.
type Collector struct {
	opts     Options
	lister   Lister
	pipeline *Pipeline
	logger   logging.Logger
}

// New creates a Collector
func New(opts Options) *Collector {
	if opts.ImportPrefix == "" {
		opts.ImportPrefix = iconset.DefaultPrefix
	}
	lister := opts.Lister
	if lister == nil {
		lister = GlobLister{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	logger = logger.WithModule("collect")

	return &Collector{
		opts:     opts,
		lister:   lister,
		pipeline: NewPipeline(opts.Colors, opts.Cache, logger),
		logger:   logger,
	}
}

// LoadIconSet imports the SVG files directly inside dir and runs every
// icon through the pipeline. The returned entry's Load exports the result.
// Unusable files are listed in Entry.Skipped; a transform failure aborts.
func (c *Collector) LoadIconSet(ctx context.Context, dir string) (*Entry, error) {
	set, failures, err := iconset.ImportDirectory(dir, iconset.ImportOptions{
		Prefix:             c.opts.ImportPrefix,
		IgnoreImportErrors: !c.opts.StrictImport,
	})
	if err != nil {
		return nil, err
	}

	for _, f := range failures {
		c.logger.Warn("Skipped icon", "file", f.Path, "reason", f.Reason)
	}

	err = set.ForEach(func(name string) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		doc, _ := set.SVG(name)
		out, err := c.pipeline.Process(ctx, doc)
		if err != nil {
			return fmt.Errorf("collection: icon %s in %s: %w", name, dir, err)
		}
		set.SetSVG(name, out)
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.logger.Debug("Loaded icon set", "dir", dir, "icons", set.Len(), "skipped", len(failures))
	return &Entry{Dir: dir, Skipped: failures, set: set}, nil
}

// Collect registers a collection for root under baseName and one for every
// nested directory under baseName-dir[-subdir...]. Each collection holds
// only the icons directly inside its own directory.
func (c *Collector) Collect(ctx context.Context, baseName, root string) (*Registry, error) {
	if baseName == "" {
		return nil, ErrEmptyBaseName
	}

	reg := newRegistry(c.opts.AllowOverwrite)
	ancestors := make(map[string]bool)

	if err := c.collect(ctx, reg, ancestors, baseName, root); err != nil {
		return nil, err
	}

	c.logger.Info("Collected icons", "root", root, "collections", reg.Len(), "icons", reg.IconCount(), "skipped", len(reg.Skipped()))
	return reg, nil
}

// collect registers dir and its descendants. ancestors holds the canonical
// paths from the root down to dir; a link back into one of them is a cycle.
// Links to directories elsewhere in the tree are followed and registered
// under their own key.
func (c *Collector) collect(ctx context.Context, reg *Registry, ancestors map[string]bool, baseName, dir string) error {
	self := canonicalPath(dir)
	ancestors[self] = true
	defer delete(ancestors, self)

	subDirs, err := c.lister.ListDirectories(dir)
	if err != nil {
		return err
	}

	for _, sub := range subDirs {
		canon := canonicalPath(sub)
		if ancestors[canon] {
			c.logger.Warn("Skipping directory cycle", "dir", sub, "target", canon)
			continue
		}

		key := baseName + Separator + filepath.Base(sub)

		nested, err := c.lister.ListDirectories(sub)
		if err != nil {
			return err
		}
		if len(nested) > 0 {
			// the recursive call registers key for sub itself
			if err := c.collect(ctx, reg, ancestors, key, sub); err != nil {
				return err
			}
			continue
		}

		if err := c.register(ctx, reg, key, sub); err != nil {
			return err
		}
	}

	return c.register(ctx, reg, baseName, dir)
}

func (c *Collector) register(ctx context.Context, reg *Registry, key, dir string) error {
	entry, err := c.LoadIconSet(ctx, dir)
	if err != nil {
		return err
	}
	entry.Key = key
	return reg.register(entry)
}

// canonicalPath resolves symlinks so that a directory reached through a
// link is recognised as one of its own ancestors
func canonicalPath(dir string) string {
	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		dir = resolved
	}
	if abs, err := filepath.Abs(dir); err == nil {
		return abs
	}
	return filepath.Clean(dir)
}
