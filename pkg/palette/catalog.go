package palette

import (
	"bytes"
	"os"
	"slices"

	"github.com/BurntSushi/toml"

	rgerrors "github.com/matzehuels/roomgrow/pkg/errors"
)

// Footprint is one catalog entry. A nil Width and Depth means the entry has
// no bounding geometry.
type Footprint struct {
	ID    FootprintID `toml:"id" json:"id"`
	Width *float64    `toml:"width,omitempty" json:"width,omitempty"`
	Depth *float64    `toml:"depth,omitempty" json:"depth,omitempty"`
	Asset string      `toml:"asset,omitempty" json:"asset,omitempty"`
}

// HasGeometry reports whether the entry defines a bounding size.
func (f Footprint) HasGeometry() bool {
	return f.Width != nil || f.Depth != nil
}

// Size returns the entry's size, zero for missing axes.
func (f Footprint) Size() Size {
	var s Size
	if f.Width != nil {
		s.Width = *f.Width
	}
	if f.Depth != nil {
		s.Depth = *f.Depth
	}
	return s
}

// Catalog maps footprint identifiers to their entries. It implements
// [Geometry]. Catalogs are read-only once built.
type Catalog struct {
	order   []FootprintID
	entries map[FootprintID]Footprint
}

// NewCatalog builds a catalog, validating every entry.
func NewCatalog(footprints ...Footprint) (*Catalog, error) {
	c := &Catalog{entries: make(map[FootprintID]Footprint, len(footprints))}
	for _, f := range footprints {
		if err := rgerrors.ValidateFootprintID(string(f.ID)); err != nil {
			return nil, err
		}
		if _, dup := c.entries[f.ID]; dup {
			return nil, rgerrors.New(rgerrors.ErrCodeInvalidConfig, "duplicate footprint %q", f.ID)
		}
		if s := f.Size(); !s.Valid() {
			return nil, rgerrors.New(rgerrors.ErrCodeInvalidConfig,
				"footprint %q has invalid size %vx%v (each axis must be within 0..%d)",
				f.ID, s.Width, s.Depth, MaxFootprintSize)
		}
		c.order = append(c.order, f.ID)
		c.entries[f.ID] = f
	}
	return c, nil
}

// Sized is shorthand for a footprint with geometry.
func Sized(id FootprintID, width, depth float64) Footprint {
	return Footprint{ID: id, Width: &width, Depth: &depth}
}

// FootprintSize implements Geometry. Unknown ids and entries without
// geometry resolve to the zero size.
func (c *Catalog) FootprintSize(id FootprintID) (Size, bool) {
	if c == nil {
		return Size{}, false
	}
	f, ok := c.entries[id]
	if !ok || !f.HasGeometry() {
		return Size{}, false
	}
	return f.Size(), true
}

// Lookup returns the entry for id.
func (c *Catalog) Lookup(id FootprintID) (Footprint, bool) {
	if c == nil {
		return Footprint{}, false
	}
	f, ok := c.entries[id]
	return f, ok
}

// Footprints returns all entries in declaration order.
func (c *Catalog) Footprints() []Footprint {
	if c == nil {
		return nil
	}
	out := make([]Footprint, len(c.order))
	for i, id := range c.order {
		out[i] = c.entries[id]
	}
	return out
}

// IDs returns the catalog's identifiers in declaration order.
func (c *Catalog) IDs() []FootprintID {
	if c == nil {
		return nil
	}
	return slices.Clone(c.order)
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.order)
}

// =============================================================================
// TOML files
// =============================================================================

// File is the on-disk form of a catalog plus an optional generation preset.
type File struct {
	Generate   Preset      `toml:"generate"`
	Footprints []Footprint `toml:"footprint"`
}

// Preset holds the generation settings a file may carry.
type Preset struct {
	Rooms   int      `toml:"rooms,omitempty"`
	Seed    uint64   `toml:"seed,omitempty"`
	Palette []string `toml:"palette,omitempty"`
}

// Parse decodes a TOML catalog file and validates its entries. When the
// preset names no palette, every catalog entry is used once in order.
func Parse(data []byte) (*Catalog, Preset, error) {
	var f File
	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return nil, Preset{}, rgerrors.Wrap(rgerrors.ErrCodeInvalidConfig, err, "decode catalog")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, Preset{}, rgerrors.New(rgerrors.ErrCodeInvalidConfig, "unknown catalog key %q", undecoded[0].String())
	}

	cat, err := NewCatalog(f.Footprints...)
	if err != nil {
		return nil, Preset{}, err
	}

	preset := f.Generate
	if len(preset.Palette) == 0 {
		for _, id := range cat.IDs() {
			preset.Palette = append(preset.Palette, string(id))
		}
	}
	return cat, preset, nil
}

// LoadFile reads and parses a TOML catalog file.
func LoadFile(path string) (*Catalog, Preset, error) {
	if err := rgerrors.ValidatePath(path); err != nil {
		return nil, Preset{}, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, Preset{}, rgerrors.Wrap(rgerrors.ErrCodeFileNotFound, err, "catalog %s", path)
	}
	if err != nil {
		return nil, Preset{}, err
	}
	return Parse(data)
}

// Encode writes the catalog and preset back to TOML.
func Encode(c *Catalog, preset Preset) ([]byte, error) {
	var buf bytes.Buffer
	f := File{Generate: preset, Footprints: c.Footprints()}
	if err := toml.NewEncoder(&buf).Encode(f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
