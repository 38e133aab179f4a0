// Package dungeon grows room layouts on an integer grid.
//
// Generation starts with a single room at the origin and repeatedly expands
// from a randomly chosen existing room (the anchor) in a random cardinal
// direction. The offset along the chosen axis is one step plus the rounded
// footprint size, so larger rooms are pushed further away from their anchor.
// A candidate cell that is already occupied is retried with a fresh anchor and
// direction, keeping the footprint chosen for that room.
//
// # Usage
//
//	res, err := dungeon.Generate(dungeon.Config{
//	    Rooms:    10,
//	    Palette:  palette.New("hall", "crypt"),
//	    Geometry: catalog,
//	    Source:   rng.New(42),
//	})
//	for _, room := range res.Layout.Rooms {
//	    fmt.Println(room.Label, room.Pos)
//	}
//
// # Warnings
//
// Generation degrades instead of failing. A footprint without geometry is
// placed as if its size were zero and produces a [WarnMissingGeometry]. A room
// index that found no free cell is dropped and produces a
// [WarnPlacementExhausted]. The only error a run returns for its inputs is
// NO_FOOTPRINTS, raised when the palette is empty.
//
// # Concurrency
//
// A run is synchronous and owns its random source, layout and occupancy index.
// Concurrent runs need separate sources.
package dungeon
