package grid

import "fmt"

// Pos is an integer grid position.
type Pos struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Origin is the position of the starting room.
var Origin = Pos{}

// Add returns p translated by d.
func (p Pos) Add(d Dir) Pos {
	return Pos{X: p.X + d.X, Y: p.Y + d.Y}
}

func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Dir is an axis-aligned unit vector.
type Dir struct {
	X int
	Y int
}

// The four cardinal directions. Up and down move along Y (world depth).
var (
	Up    = Dir{X: 0, Y: 1}
	Down  = Dir{X: 0, Y: -1}
	Left  = Dir{X: -1, Y: 0}
	Right = Dir{X: 1, Y: 0}
)

// Cardinals lists the directions in the order random picks index into.
var Cardinals = [4]Dir{Up, Down, Left, Right}

// Horizontal reports whether d moves along the X axis.
func (d Dir) Horizontal() bool {
	return d.X != 0
}

func (d Dir) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("dir(%d,%d)", d.X, d.Y)
}

// Bounds returns the inclusive bounding box of positions.
// ok is false when positions is empty.
func Bounds(positions []Pos) (minP, maxP Pos, ok bool) {
	if len(positions) == 0 {
		return Pos{}, Pos{}, false
	}
	minP, maxP = positions[0], positions[0]
	for _, p := range positions[1:] {
		minP.X = min(minP.X, p.X)
		minP.Y = min(minP.Y, p.Y)
		maxP.X = max(maxP.X, p.X)
		maxP.Y = max(maxP.Y, p.Y)
	}
	return minP, maxP, true
}
