package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/roomgrow/pkg/cache"
	"github.com/matzehuels/roomgrow/pkg/dungeon"
	rgerrors "github.com/matzehuels/roomgrow/pkg/errors"
	"github.com/matzehuels/roomgrow/pkg/observability"
	"github.com/matzehuels/roomgrow/pkg/palette"
	"github.com/matzehuels/roomgrow/pkg/render"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Every run builds
// its own random source, layout and occupancy, so multiple goroutines can
// safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete generate → render pipeline with caching.
//
// When the palette runs out of footprints the partial result is returned
// together with a NO_FOOTPRINTS error; nothing is rendered in that case.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Generate
	genStart := time.Now()
	gen, genHit, err := r.GenerateWithCacheInfo(ctx, opts)
	if gen != nil {
		result.Layout = gen.Layout
		result.Warnings = gen.Warnings
		result.Stats.Placed = gen.Layout.Len()
		result.Stats.Retries = gen.Stats.Retries
		result.Stats.Skipped = gen.Stats.Skipped
		result.Spawns, result.SpawnWarnings = Spawns(gen.Layout, opts)
	}
	result.Stats.GenerateTime = time.Since(genStart)
	result.CacheInfo.LayoutHit = genHit
	if err != nil {
		if gen != nil {
			return result, fmt.Errorf("generate: %w", err)
		}
		return nil, fmt.Errorf("generate: %w", err)
	}

	if data, err := dungeon.MarshalLayout(gen.Layout); err == nil {
		result.LayoutHash = cache.Hash(data)
	}

	r.logWarnings(result)
	r.Logger.Info("generated layout",
		"rooms", result.Stats.Placed,
		"target", opts.Rooms,
		"retries", result.Stats.Retries,
		"skipped", result.Stats.Skipped,
		"duration", result.Stats.GenerateTime)

	// Stage 2: Render
	renderStart := time.Now()
	in := render.Input{Layout: result.Layout, Warnings: result.Warnings, Spawns: result.Spawns}
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, in, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// GenerateWithCacheInfo grows a layout with caching and returns cache hit
// info. Incomplete generations (errors) are never cached.
func (r *Runner) GenerateWithCacheInfo(ctx context.Context, opts Options) (*Generation, bool, error) {
	if err := opts.ValidateForGenerate(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	cacheKey := r.Keyer.LayoutKey(CatalogHash(opts.Catalog), opts.LayoutKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached Generation
			if err := json.Unmarshal(data, &cached); err == nil && cached.Layout.Validate() == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return &cached, true, nil
			}
		} else if err != nil {
			r.Logger.Warn("cache read failed", "err", err)
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	hooks := observability.Pipeline()
	hooks.OnGenerateStart(ctx, opts.Rooms, len(opts.Palette))
	start := time.Now()
	gen, err := Generate(ctx, opts)
	placed, warnings := 0, 0
	if gen != nil {
		placed, warnings = gen.Layout.Len(), len(gen.Warnings)
	}
	hooks.OnGenerateComplete(ctx, placed, warnings, time.Since(start), err)
	if err != nil {
		return gen, false, err
	}

	if data, err := json.Marshal(gen); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout); err != nil {
			r.Logger.Warn("cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}

	return gen, false, nil
}

// GenerateLayout is a convenience wrapper that calls GenerateWithCacheInfo
// and discards the cache hit info.
func (r *Runner) GenerateLayout(ctx context.Context, opts Options) (*Generation, error) {
	gen, _, err := r.GenerateWithCacheInfo(ctx, opts)
	return gen, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, in render.Input, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	inputData, err := json.Marshal(in)
	if err != nil {
		return nil, false, fmt.Errorf("serialize render input for cache key: %w", err)
	}
	inputHash := cache.Hash(inputData)

	// Try to get all formats from cache
	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(inputHash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil || !hit {
			break
		}
		artifacts[format] = data
	}
	if len(artifacts) == len(uniq(opts.Formats)) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := Render(in, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(inputHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, in render.Input, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, in, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// CatalogHash returns a content hash of a catalog.
func CatalogHash(c *palette.Catalog) string {
	data, err := json.Marshal(c.Footprints())
	if err != nil {
		return ""
	}
	return cache.Hash(data)
}

// IsNoFootprints reports whether err is the empty-palette error.
func IsNoFootprints(err error) bool {
	return rgerrors.Is(err, rgerrors.ErrCodeNoFootprints)
}

func (r *Runner) logWarnings(res *Result) {
	for _, w := range res.Warnings {
		r.Logger.Warn(w.String(), "kind", w.Kind, "room", w.RoomIndex)
	}
	for _, w := range res.SpawnWarnings {
		r.Logger.Debug(w.String(), "room", w.RoomID)
	}
	if n := dungeon.CountWarnings(res.Warnings, dungeon.WarnPlacementExhausted); n > 0 {
		r.Logger.Warn("layout is short of its target", "placed", res.Stats.Placed, "skipped", n)
	}
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func uniq(formats []string) map[string]struct{} {
	out := make(map[string]struct{}, len(formats))
	for _, f := range formats {
		out[f] = struct{}{}
	}
	return out
}
