// Package spawn turns a generated layout into world-space instantiation
// requests and tracks what was instantiated so it can be torn down.
//
// Grid X maps to world x, grid Y maps to world z, and every room sits at
// height 0 with identity orientation. Rooms whose footprint does not resolve
// in the [Registry] are skipped with a [Warning].
//
// A [Tracker] owns the handles returned by a [Spawner]. Regenerating always
// tears the previous instances down first, so a new run starts from zero
// tracked instances:
//
//	tr := spawn.NewTracker(spawner, logger)
//	reqs, warns := spawn.Translate(layout, spawn.CatalogRegistry(cat))
//	err := tr.Regenerate(ctx, reqs)
package spawn
