// Package pkg provides the core libraries for Roomgrow dungeon layouts.
//
// # Overview
//
// Roomgrow grows a connected set of non-overlapping rooms on an integer grid
// by repeatedly attaching a new room to a randomly chosen existing one in one
// of the four cardinal directions. The pkg directory is organized into:
//
//  1. [grid], [rng], [palette] - Positions, random sources, footprints
//  2. [dungeon] - The layout engine
//  3. [spawn] - World-space spawn requests and instance tracking
//  4. [render] - Text, JSON, DOT and SVG output
//  5. [pipeline] - Orchestration (generate → render) with caching
//  6. [cache], [errors], [observability], [buildinfo] - Infrastructure
//
// # Architecture
//
// The typical data flow through Roomgrow:
//
//	Footprint catalog + palette
//	         ↓
//	    [dungeon] package (grow the layout)
//	         ↓
//	    [spawn] package (translate rooms to spawn requests)
//	         ↓
//	    [render] package (txt/json/dot/svg)
//
// # Quick Start
//
//	cat := palette.Builtin()
//	res, err := dungeon.Generate(dungeon.Config{
//	    Rooms:    30,
//	    Palette:  palette.New("hall", "vault"),
//	    Geometry: cat,
//	    Source:   rng.New(7),
//	})
//	if err != nil {
//	    return err
//	}
//	reqs, _ := spawn.Translate(res.Layout, spawn.CatalogRegistry(cat))
//	fmt.Print(render.RenderText(res.Layout))
//
// Most callers go through [pipeline.Runner], which adds caching and renders
// every requested format in one call.
//
// [grid]: https://pkg.go.dev/github.com/matzehuels/roomgrow/pkg/grid
// [rng]: https://pkg.go.dev/github.com/matzehuels/roomgrow/pkg/rng
// [palette]: https://pkg.go.dev/github.com/matzehuels/roomgrow/pkg/palette
// [dungeon]: https://pkg.go.dev/github.com/matzehuels/roomgrow/pkg/dungeon
// [spawn]: https://pkg.go.dev/github.com/matzehuels/roomgrow/pkg/spawn
// [render]: https://pkg.go.dev/github.com/matzehuels/roomgrow/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/roomgrow/pkg/pipeline
// [pipeline.Runner]: https://pkg.go.dev/github.com/matzehuels/roomgrow/pkg/pipeline#Runner
// [cache]: https://pkg.go.dev/github.com/matzehuels/roomgrow/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/roomgrow/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/roomgrow/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/roomgrow/pkg/buildinfo
package pkg
