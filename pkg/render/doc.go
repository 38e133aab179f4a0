// Package render turns a generated dungeon layout into output artifacts.
//
// # Formats
//
//   - [FormatJSON]: the layout with bounds, warnings and spawn requests
//   - [FormatText]: an ASCII map of the occupied cells with a legend
//   - [FormatDOT]: a Graphviz graph with every room pinned to its cell
//   - [FormatSVG]: the DOT graph laid out by neato and rendered by Graphviz
//
// All renderers are pure functions of their input and are safe to call
// concurrently.
//
//	dot := render.ToDOT(layout, render.DOTOptions{Scale: 1})
//	svg, err := render.RenderSVG(dot)
//
// [Render] dispatches on a format name and is what the pipeline uses.
package render
