package grid

// Occupancy records which grid cells hold a room.
// The zero value is not usable; call [NewOccupancy].
type Occupancy struct {
	cells map[Pos]struct{}
}

// NewOccupancy returns an empty index.
func NewOccupancy() *Occupancy {
	return &Occupancy{cells: make(map[Pos]struct{})}
}

// FromPositions rebuilds an index from a list of positions.
func FromPositions(positions []Pos) *Occupancy {
	o := &Occupancy{cells: make(map[Pos]struct{}, len(positions))}
	for _, p := range positions {
		o.cells[p] = struct{}{}
	}
	return o
}

// Contains reports whether p is occupied.
func (o *Occupancy) Contains(p Pos) bool {
	_, ok := o.cells[p]
	return ok
}

// Insert marks p occupied. Inserting an occupied cell is a no-op.
func (o *Occupancy) Insert(p Pos) {
	o.cells[p] = struct{}{}
}

// Len returns the number of occupied cells.
func (o *Occupancy) Len() int {
	return len(o.cells)
}

// Reset clears every cell.
func (o *Occupancy) Reset() {
	clear(o.cells)
}
