package dungeon

import (
	"fmt"
	"strconv"

	"github.com/matzehuels/roomgrow/pkg/grid"
	"github.com/matzehuels/roomgrow/pkg/palette"
)

// OriginLabel is the label of room 0.
const OriginLabel = "Starting Room"

// Room is one placed room. Rooms are immutable once placed.
type Room struct {
	ID        int                 `json:"id"`
	Label     string              `json:"label"`
	Pos       grid.Pos            `json:"pos"`
	Footprint palette.FootprintID `json:"footprint,omitempty"`
}

// RoomLabel returns the label for room id.
func RoomLabel(id int) string {
	if id == 0 {
		return OriginLabel
	}
	return "Room " + strconv.Itoa(id)
}

// Layout is the ordered result of one generation run. Rooms appear in
// placement order; the first room is always the origin.
type Layout struct {
	Rooms []Room `json:"rooms"`

	// Target is the room count that was requested.
	Target int `json:"target,omitempty"`

	// Seed is the seed of the run's source, when it was seeded.
	Seed uint64 `json:"seed,omitempty"`
}

// Len returns the number of placed rooms.
func (l Layout) Len() int {
	return len(l.Rooms)
}

// Positions returns the room positions in placement order.
func (l Layout) Positions() []grid.Pos {
	out := make([]grid.Pos, len(l.Rooms))
	for i, r := range l.Rooms {
		out[i] = r.Pos
	}
	return out
}

// Occupancy rebuilds the occupancy index for the layout.
func (l Layout) Occupancy() *grid.Occupancy {
	return grid.FromPositions(l.Positions())
}

// Room returns the room with the given id.
func (l Layout) Room(id int) (Room, bool) {
	for _, r := range l.Rooms {
		if r.ID == id {
			return r, true
		}
	}
	return Room{}, false
}

// Footprints returns how many rooms use each footprint.
func (l Layout) Footprints() map[palette.FootprintID]int {
	out := make(map[palette.FootprintID]int)
	for _, r := range l.Rooms {
		out[r.Footprint]++
	}
	return out
}

// Validate checks the structural invariants of a layout: the first room is
// the origin, ids strictly increase and no two rooms share a cell.
func (l Layout) Validate() error {
	if len(l.Rooms) == 0 {
		return nil
	}
	if first := l.Rooms[0]; first.ID != 0 || first.Pos != grid.Origin {
		return fmt.Errorf("first room must be id 0 at %v, got id %d at %v", grid.Origin, first.ID, first.Pos)
	}
	if l.Target > 0 && len(l.Rooms) > l.Target {
		return fmt.Errorf("layout has %d rooms, more than the target %d", len(l.Rooms), l.Target)
	}
	seen := make(map[grid.Pos]int, len(l.Rooms))
	prev := -1
	for _, r := range l.Rooms {
		if r.ID <= prev {
			return fmt.Errorf("room ids must increase: %d after %d", r.ID, prev)
		}
		prev = r.ID
		if other, dup := seen[r.Pos]; dup {
			return fmt.Errorf("rooms %d and %d share cell %v", other, r.ID, r.Pos)
		}
		seen[r.Pos] = r.ID
	}
	return nil
}
