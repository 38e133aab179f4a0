// Package pipeline runs layout generation and rendering for every entry
// point (CLI, HTTP API, interactive editor) so that they behave alike.
//
// # Stages
//
//  1. Generate: resolve the footprint catalog, grow the layout, translate it
//     to spawn requests
//  2. Render: produce artifacts (json, txt, dot, svg)
//
// Both stages are cached. Generation is deterministic, so a layout is keyed
// by the catalog hash and the generation options; an artifact is keyed by
// the hash of the layout it was rendered from.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Rooms:   30,
//	    Seed:    7,
//	    Formats: []string{"txt"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(string(result.Artifacts["txt"]))
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/roomgrow/pkg/cache"
	"github.com/matzehuels/roomgrow/pkg/dungeon"
	rgerrors "github.com/matzehuels/roomgrow/pkg/errors"
	"github.com/matzehuels/roomgrow/pkg/palette"
	"github.com/matzehuels/roomgrow/pkg/render"
	"github.com/matzehuels/roomgrow/pkg/spawn"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API, and Editor
// =============================================================================

const (
	// DefaultRooms is the room count used when none is given.
	DefaultRooms = 20

	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = uint64(42)
)

// Format constants, re-exported from render.
const (
	FormatJSON = render.FormatJSON
	FormatText = render.FormatText
	FormatDOT  = render.FormatDOT
	FormatSVG  = render.FormatSVG
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Generation options
	Rooms      int                 `json:"rooms,omitempty"`
	Seed       uint64              `json:"seed,omitempty"`
	Palette    []string            `json:"palette,omitempty"` // "" is an empty slot
	Footprints []palette.Footprint `json:"footprints,omitempty"`
	MaxRetries int                 `json:"max_retries,omitempty"`
	Refresh    bool                `json:"refresh,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// CatalogPath names a TOML catalog. Its [generate] preset fills Rooms,
	// Seed and Palette where they are unset.
	CatalogPath string `json:"-"`

	// Catalog overrides Footprints and CatalogPath.
	Catalog *palette.Catalog `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Generation is the cacheable output of the generate stage.
type Generation struct {
	Layout   dungeon.Layout    `json:"layout"`
	Warnings []dungeon.Warning `json:"warnings,omitempty"`
	Stats    dungeon.Stats     `json:"stats"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the generated layout.
	Layout dungeon.Layout

	// Warnings are the non-fatal conditions recorded while generating.
	Warnings []dungeon.Warning

	// Spawns are the world-space requests for every resolvable room.
	Spawns []spawn.Request

	// SpawnWarnings lists rooms the catalog could not resolve to an asset.
	SpawnWarnings []spawn.Warning

	// LayoutHash is the content hash of the layout.
	LayoutHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Placed       int
	Retries      int
	Skipped      int
	GenerateTime time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !render.ValidFormat(format) {
		return rgerrors.New(rgerrors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: json, txt, dot, svg)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidatePalette checks every non-empty slot.
func ValidatePalette(ids []string) error {
	for _, id := range ids {
		if id == "" {
			continue
		}
		if err := rgerrors.ValidateFootprintID(id); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks fields and applies defaults for the full
// pipeline. It resolves the catalog, so it may read CatalogPath.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForGenerate(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForGenerate resolves the catalog and applies generation defaults.
func (o *Options) ValidateForGenerate() error {
	if err := o.resolveCatalog(); err != nil {
		return err
	}
	if o.Rooms == 0 {
		o.Rooms = DefaultRooms
	}
	if err := rgerrors.ValidateRoomCount(o.Rooms); err != nil {
		return err
	}
	if o.MaxRetries < 0 {
		return rgerrors.New(rgerrors.ErrCodeInvalidInput, "max_retries must not be negative")
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Palette == nil {
		for _, id := range o.Catalog.IDs() {
			o.Palette = append(o.Palette, string(id))
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return ValidatePalette(o.Palette)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

func (o *Options) resolveCatalog() error {
	switch {
	case o.Catalog != nil:
		return nil
	case len(o.Footprints) > 0:
		c, err := palette.NewCatalog(o.Footprints...)
		if err != nil {
			return err
		}
		o.Catalog = c
	case o.CatalogPath != "":
		c, preset, err := palette.LoadFile(o.CatalogPath)
		if err != nil {
			return err
		}
		o.Catalog = c
		if o.Rooms == 0 {
			o.Rooms = preset.Rooms
		}
		if o.Seed == 0 {
			o.Seed = preset.Seed
		}
		if o.Palette == nil {
			o.Palette = preset.Palette
		}
	default:
		o.Catalog = palette.Builtin()
	}
	return nil
}

// LayoutKeyOpts returns cache key options for layout generation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Rooms:      o.Rooms,
		Seed:       o.Seed,
		Palette:    o.Palette,
		MaxRetries: o.MaxRetries,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{Format: format}
}
