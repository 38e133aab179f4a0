package palette

import "math"

// MaxFootprintSize bounds each axis of a footprint, in grid units.
const MaxFootprintSize = 1024

// Size is the 2D extent of a footprint in grid units. Depth runs along the
// world z axis, which the layout grid calls Y.
type Size struct {
	Width float64 `json:"width"`
	Depth float64 `json:"depth"`
}

// Valid reports whether both axes are finite and within
// [0, MaxFootprintSize].
func (s Size) Valid() bool {
	return validAxis(s.Width) && validAxis(s.Depth)
}

func validAxis(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && v <= MaxFootprintSize
}

// Geometry resolves footprint sizes. Implementations are pure: the same id
// always yields the same answer.
type Geometry interface {
	// FootprintSize returns the size of id. ok is false when id has no
	// resolvable bounding geometry; size is then the zero Size.
	FootprintSize(id FootprintID) (size Size, ok bool)
}

// GeometryFunc adapts a function to the Geometry interface.
type GeometryFunc func(id FootprintID) (Size, bool)

// FootprintSize calls f.
func (f GeometryFunc) FootprintSize(id FootprintID) (Size, bool) {
	return f(id)
}

// Uniform returns a Geometry that gives every non-empty id the same size.
func Uniform(s Size) Geometry {
	return GeometryFunc(func(id FootprintID) (Size, bool) {
		if id == "" {
			return Size{}, false
		}
		return s, true
	})
}
