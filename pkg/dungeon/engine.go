package dungeon

import (
	"context"
	"math"

	rgerrors "github.com/matzehuels/roomgrow/pkg/errors"
	"github.com/matzehuels/roomgrow/pkg/grid"
	"github.com/matzehuels/roomgrow/pkg/palette"
	"github.com/matzehuels/roomgrow/pkg/rng"
)

// DefaultMaxRetries is how many times a room re-picks its anchor and
// direction after the first candidate cell turned out to be occupied.
const DefaultMaxRetries = 100

// Config describes one generation run.
type Config struct {
	// Rooms is the requested room count, origin included. Must be >= 1.
	Rooms int

	// Palette is read, never modified, during the run.
	Palette *palette.Palette

	// Geometry resolves footprint sizes. Nil treats every footprint as
	// missing geometry.
	Geometry palette.Geometry

	// Source is the run's random source. Required.
	Source rng.Source

	// MaxRetries overrides DefaultMaxRetries when positive.
	MaxRetries int

	// Seed is recorded on the layout; it does not seed Source.
	Seed uint64
}

// Stats summarizes a run.
type Stats struct {
	Iterations int `json:"iterations"` // room indices attempted after the origin
	Retries    int `json:"retries"`    // candidate cells rejected as occupied
	Skipped    int `json:"skipped"`    // room indices dropped after exhausting retries
}

// Result is the output of a run.
type Result struct {
	Layout   Layout
	Warnings []Warning
	Stats    Stats
}

// Generate runs the placement loop to completion.
func Generate(cfg Config) (*Result, error) {
	return GenerateContext(context.Background(), cfg)
}

// GenerateContext runs the placement loop, checking ctx between room
// indices. A cancelled run returns ctx.Err() together with the rooms placed
// so far.
func GenerateContext(ctx context.Context, cfg Config) (*Result, error) {
	if err := rgerrors.ValidateRoomCount(cfg.Rooms); err != nil {
		return nil, err
	}
	if cfg.Source == nil {
		return nil, rgerrors.New(rgerrors.ErrCodeInvalidInput, "random source is required")
	}

	r := newRun(cfg)
	err := r.grow(ctx)
	return r.result(), err
}

// CandidatePos returns the cell a room of size s lands on when grown from
// anchor in direction d: one step plus the rounded size along d's axis.
// s must satisfy s.Valid.
func CandidatePos(anchor grid.Pos, d grid.Dir, s palette.Size) grid.Pos {
	p := anchor.Add(d)
	p.X += roundToInt(s.Width) * d.X
	p.Y += roundToInt(s.Depth) * d.Y
	return p
}

// roundToInt rounds half to even.
func roundToInt(v float64) int {
	return int(math.RoundToEven(v))
}

// run holds the state of one generation. It is discarded afterwards.
type run struct {
	cfg        Config
	maxRetries int
	layout     Layout
	occ        *grid.Occupancy
	warnings   []Warning
	stats      Stats
}

func newRun(cfg Config) *run {
	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = DefaultMaxRetries
	}
	return &run{
		cfg:        cfg,
		maxRetries: maxRetries,
		layout:     Layout{Target: cfg.Rooms, Seed: cfg.Seed},
		occ:        grid.NewOccupancy(),
	}
}

func (r *run) grow(ctx context.Context) error {
	if r.cfg.Palette.IsEmpty() {
		return rgerrors.NoFootprints()
	}
	r.place(0, grid.Origin, r.cfg.Palette.PickRandom(r.cfg.Source))

	for i := 1; i < r.cfg.Rooms; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if r.cfg.Palette.IsEmpty() {
			return rgerrors.NoFootprints()
		}
		r.stats.Iterations++

		fp := r.cfg.Palette.PickRandom(r.cfg.Source)
		size := r.footprintSize(i, fp)

		pos := r.candidate(size)
		for tries := 0; r.occ.Contains(pos) && tries < r.maxRetries; tries++ {
			r.stats.Retries++
			pos = r.candidate(size)
		}

		if r.occ.Contains(pos) {
			r.stats.Retries++
			r.stats.Skipped++
			r.warnings = append(r.warnings, Warning{Kind: WarnPlacementExhausted, RoomIndex: i, FootprintID: fp})
			continue
		}
		r.place(i, pos, fp)
	}
	return nil
}

// candidate draws an anchor and a direction and returns the resulting cell.
func (r *run) candidate(size palette.Size) grid.Pos {
	anchor := r.layout.Rooms[r.cfg.Source.IntN(len(r.layout.Rooms))]
	dir := grid.Cardinals[r.cfg.Source.IntN(len(grid.Cardinals))]
	return CandidatePos(anchor.Pos, dir, size)
}

// footprintSize resolves fp once for index i. Sizes outside
// palette.Size.Valid count as missing geometry.
func (r *run) footprintSize(i int, fp palette.FootprintID) palette.Size {
	if r.cfg.Geometry != nil {
		if s, ok := r.cfg.Geometry.FootprintSize(fp); ok && s.Valid() {
			return s
		}
	}
	r.warnings = append(r.warnings, Warning{Kind: WarnMissingGeometry, RoomIndex: i, FootprintID: fp})
	return palette.Size{}
}

// place appends a room and marks its cell in lock-step.
func (r *run) place(id int, pos grid.Pos, fp palette.FootprintID) {
	r.layout.Rooms = append(r.layout.Rooms, Room{
		ID:        id,
		Label:     RoomLabel(id),
		Pos:       pos,
		Footprint: fp,
	})
	r.occ.Insert(pos)
}

func (r *run) result() *Result {
	return &Result{
		Layout:   r.layout,
		Warnings: r.warnings,
		Stats:    r.stats,
	}
}
