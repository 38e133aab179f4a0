package render

import (
	"encoding/json"

	"github.com/matzehuels/roomgrow/pkg/dungeon"
	"github.com/matzehuels/roomgrow/pkg/grid"
	"github.com/matzehuels/roomgrow/pkg/spawn"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	warnings []dungeon.Warning
	spawns   []spawn.Request
}

// WithJSONWarnings includes the run's warnings in the output.
func WithJSONWarnings(ws []dungeon.Warning) JSONOption {
	return func(r *jsonRenderer) { r.warnings = ws }
}

// WithJSONSpawns includes the translated spawn requests in the output.
func WithJSONSpawns(reqs []spawn.Request) JSONOption {
	return func(r *jsonRenderer) { r.spawns = reqs }
}

type jsonOutput struct {
	Target   int               `json:"target,omitempty"`
	Seed     uint64            `json:"seed,omitempty"`
	Placed   int               `json:"placed"`
	Bounds   *jsonBounds       `json:"bounds,omitempty"`
	Rooms    []dungeon.Room    `json:"rooms"`
	Warnings []dungeon.Warning `json:"warnings,omitempty"`
	Spawns   []spawn.Request   `json:"spawns,omitempty"`
}

type jsonBounds struct {
	Min grid.Pos `json:"min"`
	Max grid.Pos `json:"max"`
}

// RenderJSON exports the layout as a pretty-printed JSON document. Unlike
// dungeon.MarshalLayout, the document carries derived data (bounds, counts)
// and is meant for consumers, not for reloading.
func RenderJSON(l dungeon.Layout, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	rooms := l.Rooms
	if rooms == nil {
		rooms = []dungeon.Room{}
	}
	out := jsonOutput{
		Target:   l.Target,
		Seed:     l.Seed,
		Placed:   len(l.Rooms),
		Rooms:    rooms,
		Warnings: r.warnings,
		Spawns:   r.spawns,
	}
	if minP, maxP, ok := grid.Bounds(l.Positions()); ok {
		out.Bounds = &jsonBounds{Min: minP, Max: maxP}
	}
	return json.MarshalIndent(out, "", "  ")
}
