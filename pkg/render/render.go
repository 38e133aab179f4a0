package render

import (
	"slices"

	"github.com/matzehuels/roomgrow/pkg/dungeon"
	rgerrors "github.com/matzehuels/roomgrow/pkg/errors"
	"github.com/matzehuels/roomgrow/pkg/grid"
	"github.com/matzehuels/roomgrow/pkg/spawn"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatText = "txt"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
)

// Formats lists every supported format.
var Formats = []string{FormatJSON, FormatText, FormatDOT, FormatSVG}

// ValidFormat reports whether f is a supported format.
func ValidFormat(f string) bool {
	return slices.Contains(Formats, f)
}

// Drawing limits. Text maps and SVG canvases grow with the layout's
// bounding box, not its room count.
const (
	// MaxTextCells is the largest map RenderText draws; bigger layouts are
	// listed room by room instead.
	MaxTextCells = 1 << 20

	// MaxSVGSide is the largest bounding box side, in cells, Render accepts
	// for SVG output.
	MaxSVGSide = 2048
)

// Extent returns the width and height in cells of the layout's bounding
// box, zero for an empty layout. Sides are float64 so that extreme
// coordinates in a loaded layout cannot overflow.
func Extent(l dungeon.Layout) (w, h float64) {
	minP, maxP, ok := grid.Bounds(l.Positions())
	if !ok {
		return 0, 0
	}
	return float64(maxP.X) - float64(minP.X) + 1, float64(maxP.Y) - float64(minP.Y) + 1
}

// CheckExtent returns an INVALID_INPUT error when either side of the
// layout's bounding box exceeds maxSide cells.
func CheckExtent(l dungeon.Layout, maxSide float64) error {
	w, h := Extent(l)
	if w > maxSide || h > maxSide {
		return rgerrors.New(rgerrors.ErrCodeInvalidInput,
			"layout spans %.0fx%.0f cells (max %.0f per side)", w, h, maxSide)
	}
	return nil
}

// Input bundles everything a renderer may draw on.
type Input struct {
	Layout   dungeon.Layout
	Warnings []dungeon.Warning
	Spawns   []spawn.Request
}

// Render produces one artifact in the given format.
func Render(in Input, format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		return RenderJSON(in.Layout, WithJSONWarnings(in.Warnings), WithJSONSpawns(in.Spawns))
	case FormatText:
		return []byte(RenderText(in.Layout)), nil
	case FormatDOT:
		return []byte(ToDOT(in.Layout, DOTOptions{Footprints: true})), nil
	case FormatSVG:
		if err := CheckExtent(in.Layout, MaxSVGSide); err != nil {
			return nil, err
		}
		return RenderSVG(ToDOT(in.Layout, DOTOptions{Footprints: true}))
	default:
		return nil, rgerrors.New(rgerrors.ErrCodeInvalidFormat,
			"unsupported format %q (supported: %v)", format, Formats)
	}
}
