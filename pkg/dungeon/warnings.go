package dungeon

import (
	"fmt"

	"github.com/matzehuels/roomgrow/pkg/palette"
)

// WarningKind classifies a non-fatal generation condition.
type WarningKind string

const (
	// WarnMissingGeometry: the footprint picked for a room had no bounding
	// geometry, or a size outside palette.MaxFootprintSize, and was placed
	// with size (0, 0).
	WarnMissingGeometry WarningKind = "missing_geometry"

	// WarnPlacementExhausted: no free cell was found for a room index within
	// the retry bound; the index is absent from the layout.
	WarnPlacementExhausted WarningKind = "placement_exhausted"
)

// Warning is a non-fatal condition recorded during a run.
type Warning struct {
	Kind        WarningKind         `json:"kind"`
	RoomIndex   int                 `json:"room_index"`
	FootprintID palette.FootprintID `json:"footprint_id,omitempty"`
}

func (w Warning) String() string {
	switch w.Kind {
	case WarnMissingGeometry:
		if w.FootprintID == "" {
			return fmt.Sprintf("room %d: empty palette slot has no geometry", w.RoomIndex)
		}
		return fmt.Sprintf("room %d: footprint %q has no geometry", w.RoomIndex, w.FootprintID)
	case WarnPlacementExhausted:
		return fmt.Sprintf("room %d: no free cell found, skipped", w.RoomIndex)
	}
	return fmt.Sprintf("room %d: %s", w.RoomIndex, w.Kind)
}

// CountWarnings returns how many warnings have the given kind.
func CountWarnings(ws []Warning, kind WarningKind) int {
	n := 0
	for _, w := range ws {
		if w.Kind == kind {
			n++
		}
	}
	return n
}
