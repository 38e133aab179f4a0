package render

import (
	"fmt"
	"strings"

	"github.com/matzehuels/roomgrow/pkg/dungeon"
	"github.com/matzehuels/roomgrow/pkg/grid"
	"github.com/matzehuels/roomgrow/pkg/palette"
)

const (
	glyphOrigin = '@'
	glyphEmpty  = '.'
	glyphNone   = '?'
)

// glyphs are assigned to footprints in order of first appearance.
const glyphs = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RenderText draws the layout as an ASCII map with +Y pointing up. The
// origin is '@', empty palette slots are '?', every other footprint gets a
// letter listed in the legend below the map. Layouts whose bounding box
// exceeds MaxTextCells are listed room by room instead.
func RenderText(l dungeon.Layout) string {
	minP, maxP, ok := grid.Bounds(l.Positions())
	if !ok {
		return "(empty layout)\n"
	}
	if w, h := Extent(l); w*h > MaxTextCells {
		return renderTextList(l, minP, maxP)
	}

	legend := make(map[palette.FootprintID]byte)
	var order []palette.FootprintID
	glyphFor := func(fp palette.FootprintID) byte {
		if fp == "" {
			return glyphNone
		}
		if g, ok := legend[fp]; ok {
			return g
		}
		g := byte('*')
		if len(order) < len(glyphs) {
			g = glyphs[len(order)]
		}
		legend[fp] = g
		order = append(order, fp)
		return g
	}

	cells := make(map[grid.Pos]byte, len(l.Rooms))
	for _, r := range l.Rooms {
		if r.ID == 0 {
			cells[r.Pos] = glyphOrigin
			continue
		}
		cells[r.Pos] = glyphFor(r.Footprint)
	}

	var b strings.Builder
	for y := maxP.Y; y >= minP.Y; y-- {
		for x := minP.X; x <= maxP.X; x++ {
			g, ok := cells[grid.Pos{X: x, Y: y}]
			if !ok {
				g = glyphEmpty
			}
			b.WriteByte(g)
		}
		b.WriteByte('\n')
	}

	fmt.Fprintf(&b, "\n%c %s at %v\n", glyphOrigin, dungeon.OriginLabel, grid.Origin)
	for _, fp := range order {
		fmt.Fprintf(&b, "%c %s\n", legend[fp], fp)
	}
	if hasEmptySlot(l) {
		fmt.Fprintf(&b, "%c empty slot\n", glyphNone)
	}
	fmt.Fprintf(&b, "%d/%d rooms, x %d..%d, y %d..%d\n",
		len(l.Rooms), max(l.Target, len(l.Rooms)), minP.X, maxP.X, minP.Y, maxP.Y)
	return b.String()
}

func renderTextList(l dungeon.Layout, minP, maxP grid.Pos) string {
	var b strings.Builder
	for _, r := range l.Rooms {
		fp := string(r.Footprint)
		if fp == "" {
			fp = "(empty slot)"
		}
		fmt.Fprintf(&b, "%-14s %-20v %s\n", r.Label, r.Pos, fp)
	}
	fmt.Fprintf(&b, "%d/%d rooms, x %d..%d, y %d..%d (too large to draw)\n",
		len(l.Rooms), max(l.Target, len(l.Rooms)), minP.X, maxP.X, minP.Y, maxP.Y)
	return b.String()
}

func hasEmptySlot(l dungeon.Layout) bool {
	for _, r := range l.Rooms[1:] {
		if r.Footprint == "" {
			return true
		}
	}
	return false
}
