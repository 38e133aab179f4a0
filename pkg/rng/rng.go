// Package rng defines the random source injected into layout generation.
//
// Generation never touches a global generator. Every run receives a [Source],
// so a fixed seed replays the same layout:
//
//	src := rng.New(42)
//	i := src.IntN(4) // uniform in [0, 4)
//
// *math/rand/v2.Rand satisfies [Source] directly.
package rng

import (
	"fmt"
	"math/rand/v2"
)

// Source is a uniform random source. It is not safe for concurrent use; one
// generation run owns one Source.
type Source interface {
	// IntN returns a uniform int in [0, n). It panics if n <= 0.
	IntN(n int) int

	// Float64 returns a uniform float64 in [0, 1).
	Float64() float64
}

// New returns a PCG-backed source seeded with seed.
func New(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// Replay is a scripted source that returns fixed draws in order. It is meant
// for tests that need to steer every pick.
type Replay struct {
	ints   []int
	floats []float64
}

// NewReplay returns a source that yields ints from IntN in order.
func NewReplay(ints ...int) *Replay {
	return &Replay{ints: ints}
}

// WithFloats appends draws returned by Float64.
func (r *Replay) WithFloats(fs ...float64) *Replay {
	r.floats = append(r.floats, fs...)
	return r
}

// IntN returns the next scripted int. It panics when the script is exhausted
// or the value is outside [0, n).
func (r *Replay) IntN(n int) int {
	if len(r.ints) == 0 {
		panic("rng: replay exhausted")
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	if v < 0 || v >= n {
		panic(fmt.Sprintf("rng: replay value %d out of range [0,%d)", v, n))
	}
	return v
}

// Float64 returns the next scripted float.
func (r *Replay) Float64() float64 {
	if len(r.floats) == 0 {
		panic("rng: replay exhausted")
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

// Remaining reports how many scripted ints are left.
func (r *Replay) Remaining() int {
	return len(r.ints)
}

var _ Source = (*rand.Rand)(nil)
var _ Source = (*Replay)(nil)
