package pipeline

import (
	"context"

	"github.com/matzehuels/roomgrow/pkg/dungeon"
	"github.com/matzehuels/roomgrow/pkg/palette"
	"github.com/matzehuels/roomgrow/pkg/rng"
	"github.com/matzehuels/roomgrow/pkg/spawn"
)

// Generate grows a layout from opts without caching. opts must have passed
// ValidateForGenerate. On NO_FOOTPRINTS or cancellation the partial
// generation is returned together with the error.
func Generate(ctx context.Context, opts Options) (*Generation, error) {
	res, err := dungeon.GenerateContext(ctx, dungeon.Config{
		Rooms:      opts.Rooms,
		Palette:    palette.FromStrings(opts.Palette),
		Geometry:   opts.Catalog,
		Source:     rng.New(opts.Seed),
		MaxRetries: opts.MaxRetries,
		Seed:       opts.Seed,
	})
	if res == nil {
		return nil, err
	}
	return &Generation{Layout: res.Layout, Warnings: res.Warnings, Stats: res.Stats}, err
}

// Spawns translates a layout through the catalog in opts.
func Spawns(l dungeon.Layout, opts Options) ([]spawn.Request, []spawn.Warning) {
	return spawn.Translate(l, spawn.CatalogRegistry(opts.Catalog))
}
