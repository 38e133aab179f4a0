package spawn

import (
	"fmt"

	"github.com/matzehuels/roomgrow/pkg/dungeon"
	"github.com/matzehuels/roomgrow/pkg/palette"
)

// Vec3 is a world-space position.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Quat is an orientation quaternion.
type Quat struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
	W float64 `json:"w"`
}

// Identity is the identity orientation.
var Identity = Quat{W: 1}

// Request asks a renderer to instantiate one room.
type Request struct {
	RoomID    int                 `json:"room_id"`
	Label     string              `json:"label"`
	Footprint palette.FootprintID `json:"footprint"`
	Asset     string              `json:"asset"`
	Position  Vec3                `json:"position"`
	Rotation  Quat                `json:"rotation"`
}

// Warning records a room that was not translated.
type Warning struct {
	RoomID    int                 `json:"room_id"`
	Label     string              `json:"label"`
	Footprint palette.FootprintID `json:"footprint,omitempty"`
}

func (w Warning) String() string {
	if w.Footprint == "" {
		return fmt.Sprintf("room footprint is empty for room: %s", w.Label)
	}
	return fmt.Sprintf("footprint %q does not resolve for room: %s", w.Footprint, w.Label)
}

// Registry maps footprint identifiers to renderable assets. The core never
// touches assets; the registry is owned by the caller.
type Registry interface {
	Resolve(id palette.FootprintID) (asset string, ok bool)
}

// RegistryFunc adapts a function to the Registry interface.
type RegistryFunc func(id palette.FootprintID) (string, bool)

// Resolve calls f.
func (f RegistryFunc) Resolve(id palette.FootprintID) (string, bool) {
	return f(id)
}

// CatalogRegistry resolves footprints through a catalog. Only entries with
// bounding geometry resolve; the asset defaults to the footprint id.
func CatalogRegistry(c *palette.Catalog) Registry {
	return RegistryFunc(func(id palette.FootprintID) (string, bool) {
		f, ok := c.Lookup(id)
		if !ok || !f.HasGeometry() {
			return "", false
		}
		if f.Asset != "" {
			return f.Asset, true
		}
		return string(id), true
	})
}

// WorldPosition maps a room's grid cell to world space.
func WorldPosition(r dungeon.Room) Vec3 {
	return Vec3{X: float64(r.Pos.X), Y: 0, Z: float64(r.Pos.Y)}
}

// Translate produces one request per resolvable room, in layout order.
func Translate(l dungeon.Layout, reg Registry) ([]Request, []Warning) {
	reqs := make([]Request, 0, len(l.Rooms))
	var warns []Warning
	for _, r := range l.Rooms {
		asset, ok := "", false
		if r.Footprint != "" && reg != nil {
			asset, ok = reg.Resolve(r.Footprint)
		}
		if !ok {
			warns = append(warns, Warning{RoomID: r.ID, Label: r.Label, Footprint: r.Footprint})
			continue
		}
		reqs = append(reqs, Request{
			RoomID:    r.ID,
			Label:     r.Label,
			Footprint: r.Footprint,
			Asset:     asset,
			Position:  WorldPosition(r),
			Rotation:  Identity,
		})
	}
	return reqs, warns
}
