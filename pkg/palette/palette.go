package palette

import (
	"slices"

	"github.com/matzehuels/roomgrow/pkg/rng"
)

// FootprintID identifies a room footprint. The zero value is an empty slot.
type FootprintID string

// Palette is an ordered, caller-owned collection of footprint identifiers.
// Generation reads it but never mutates it.
type Palette struct {
	ids []FootprintID
}

// New returns a palette holding ids in order.
func New(ids ...FootprintID) *Palette {
	return &Palette{ids: slices.Clone(ids)}
}

// FromStrings is a convenience for building a palette from plain strings.
func FromStrings(ids []string) *Palette {
	p := &Palette{ids: make([]FootprintID, len(ids))}
	for i, id := range ids {
		p.ids[i] = FootprintID(id)
	}
	return p
}

// IsEmpty reports whether the palette has no slots.
func (p *Palette) IsEmpty() bool {
	return p == nil || len(p.ids) == 0
}

// Len returns the number of slots, empty slots included.
func (p *Palette) Len() int {
	if p == nil {
		return 0
	}
	return len(p.ids)
}

// PickRandom returns a uniformly chosen slot. Callers must check IsEmpty first;
// picking from an empty palette panics.
func (p *Palette) PickRandom(src rng.Source) FootprintID {
	return p.ids[src.IntN(len(p.ids))]
}

// Add appends a slot.
func (p *Palette) Add(id FootprintID) {
	p.ids = append(p.ids, id)
}

// At returns slot i.
func (p *Palette) At(i int) FootprintID {
	return p.ids[i]
}

// Set replaces slot i. It reports false if i is out of range.
func (p *Palette) Set(i int, id FootprintID) bool {
	if i < 0 || i >= p.Len() {
		return false
	}
	p.ids[i] = id
	return true
}

// RemoveLast drops the last slot. It reports false if the palette was empty.
func (p *Palette) RemoveLast() bool {
	if p.IsEmpty() {
		return false
	}
	p.ids = p.ids[:len(p.ids)-1]
	return true
}

// IDs returns a copy of the slots in order.
func (p *Palette) IDs() []FootprintID {
	if p == nil {
		return nil
	}
	return slices.Clone(p.ids)
}

// Strings returns the slots as plain strings.
func (p *Palette) Strings() []string {
	out := make([]string, p.Len())
	for i, id := range p.IDs() {
		out[i] = string(id)
	}
	return out
}

// Clone returns an independent copy, used to snapshot the palette for a run.
func (p *Palette) Clone() *Palette {
	return New(p.IDs()...)
}
