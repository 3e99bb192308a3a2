// Package rng implements the seedable random source shared by weight
// initialization, stochastic activation and the synthetic datasets.
package rng

import "gonum.org/v1/gonum/mathext/prng"

// Source is a 32 bit Mersenne Twister. A Source is not safe for concurrent
// use, every network owns its own.
type Source struct {
	mt *prng.MT19937
}

// New returns a Source seeded with seed.
func New(seed uint32) *Source {
	s := &Source{mt: prng.NewMT19937()}
	s.Seed(seed)
	return s
}

// Seed resets the generator to the deterministic state given by seed.
func (s *Source) Seed(seed uint32) {
	s.mt.Seed(uint64(seed))
}

// Uint32 returns the next raw 32 bit output.
func (s *Source) Uint32() uint32 {
	return s.mt.Uint32()
}

// Real01 returns a uniform real in [0, 1) built from two 32 bit outputs,
// low word first.
func (s *Source) Real01() float64 {
	const twoTo32 = 4294967296.0
	const twoTo64 = twoTo32 * twoTo32
	lo := float64(s.mt.Uint32())
	hi := float64(s.mt.Uint32())
	r := (lo + hi*twoTo32) / twoTo64
	if r >= 1 {
		// rounding can reach 1
		r = 1 - 1.0/(1<<53)
	}
	return r
}
