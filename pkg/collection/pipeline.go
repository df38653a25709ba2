package collection

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/ideamans/iconcollect/pkg/cache"
	"github.com/ideamans/iconcollect/pkg/logging"
	"github.com/ideamans/iconcollect/pkg/svg"
)

// pipelineVersion is part of every cache key; bump it when the transform
// output changes for the same input
const pipelineVersion = "2"

// Pipeline applies the per-icon transforms in order: colour
// normalisation, optimisation, path de-optimisation. The replacement
// colour's spelling is restored after optimisation.
type Pipeline struct {
	colors svg.ColorOptions
	store  cache.Store
	logger logging.Logger
}

// NewPipeline creates a pipeline. store may be nil to disable caching.
func NewPipeline(colors svg.ColorOptions, store cache.Store, logger logging.Logger) *Pipeline {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Pipeline{colors: colors, store: store, logger: logger}
}

// cacheKey digests the source and every option that affects the output.
// Pipelines with a custom colour callback are never cached.
func (p *Pipeline) cacheKey(src string) (string, bool) {
	if p.store == nil || p.colors.Callback != nil {
		return "", false
	}
	h := sha256.New()
	for _, part := range []string{pipelineVersion, p.colors.Replacement, p.colors.DefaultColor, src} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil)), true
}

// Process returns the transformed copy of doc
func (p *Pipeline) Process(ctx context.Context, doc *svg.Document) (*svg.Document, error) {
	src := doc.String()

	key, cacheable := p.cacheKey(src)
	if cacheable {
		cached, err := p.store.Get(ctx, key)
		switch {
		case err == nil:
			if out, perr := svg.Parse(cached); perr == nil {
				return out, nil
			}
			p.logger.Warn("Discarding unreadable cache entry", "key", key)
		case !errors.Is(err, cache.ErrNotFound):
			p.logger.Warn("Cache lookup failed", "error", err)
		}
	}

	work := doc.Clone()
	svg.NormalizeColors(work, p.colors)

	out, err := svg.OptimizeDocument(work)
	if err != nil {
		return nil, err
	}
	svg.RestoreReplacement(out, p.colors)

	if _, err := svg.DeoptimizePaths(out); err != nil {
		return nil, fmt.Errorf("deoptimize paths: %w", err)
	}

	if cacheable {
		if err := p.store.Set(ctx, key, []byte(out.String())); err != nil {
			p.logger.Warn("Cache store failed", "error", err)
		}
	}

	return out, nil
}
