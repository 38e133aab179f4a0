// Package palette holds the room footprints a layout is grown from.
//
// A [Palette] is an ordered list of footprint identifiers that generation
// picks from uniformly. A [Catalog] maps identifiers to their 2D size and is
// the geometry provider the layout engine queries. Palettes may contain empty
// slots (the zero [FootprintID]); such slots resolve to no geometry.
//
// Catalogs and run presets are written in TOML:
//
//	[generate]
//	rooms = 12
//	seed = 7
//	palette = ["hall", "hall", "crypt"]
//
//	[[footprint]]
//	id = "hall"
//	width = 3
//	depth = 2
//	asset = "prefabs/hall"
//
//	[[footprint]]
//	id = "crypt"    # no width/depth: treated as a single cell
package palette
