// Package rng is the seeded randomness and coherent-noise source used by the
// weave engine.
//
// A [Source] bundles a PCG generator with an OpenSimplex noise field. Nothing
// in this package is global: every caller that needs randomness is handed a
// Source explicitly, so two Sources created with the same seed produce the
// same sequence of values and the same noise field, call for call.
package rng

import (
	"math/rand/v2"

	"github.com/ojrac/opensimplex-go"
)

// seedMix decorrelates the two PCG state words derived from one seed.
const seedMix = 0xdeadbeef

// Source is a deterministic random and noise source. It is not safe for
// concurrent use.
type Source struct {
	seed  uint64
	rand  *rand.Rand
	noise opensimplex.Noise
}

// New creates a Source seeded with seed.
func New(seed uint64) *Source {
	s := &Source{}
	s.SetSeed(seed)
	return s
}

// RandomSeed returns a fresh six digit seed from the process-wide generator.
// Short seeds are easy to note down when a run is worth reproducing.
func RandomSeed() uint64 {
	return uint64(rand.IntN(1_000_000))
}

// Seed returns the seed the Source was last reset with.
func (s *Source) Seed() uint64 { return s.seed }

// SetSeed resets the generator and the noise field.
func (s *Source) SetSeed(seed uint64) {
	s.seed = seed
	s.rand = rand.New(rand.NewPCG(seed, seed^seedMix))
	s.noise = opensimplex.New(int64(seed))
}

// Float returns a uniform value in [0,1).
func (s *Source) Float() float64 { return s.rand.Float64() }

// Range returns a uniform value in [lo,hi).
func (s *Source) Range(lo, hi float64) float64 {
	return lo + s.rand.Float64()*(hi-lo)
}

// Bool returns true or false with equal probability.
func (s *Source) Bool() bool { return s.rand.Float64() > 0.5 }

// IntN returns a uniform value in [0,n). It panics if n <= 0.
func (s *Source) IntN(n int) int { return s.rand.IntN(n) }

// PermuteNoise replaces the noise field with a new one seeded from the
// generator, so consecutive paths get unrelated noise while the whole run
// stays reproducible.
func (s *Source) PermuteNoise() {
	s.noise = opensimplex.New(s.rand.Int64())
}

// Noise2D samples the noise field at (x,y) scaled by frequency. The result
// is clamped to [-1,1].
func (s *Source) Noise2D(x, y, frequency float64) float64 {
	v := s.noise.Eval2(x*frequency, y*frequency)
	return max(-1, min(v, 1))
}

// Pick returns a uniformly chosen element of items. It panics on an empty
// slice.
func Pick[T any](s *Source, items []T) T {
	return items[s.IntN(len(items))]
}

// Shuffle returns a shuffled copy of items.
func Shuffle[T any](s *Source, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	s.rand.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
