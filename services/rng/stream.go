// Package rng provides the seeded random streams every generation unit
// draws from. One stream per unit keeps parallel generation deterministic.
package rng

import (
	"math/rand"

	"github.com/hexcrawl/worldgen/world"
)

// StreamInterface defines the interface for random number generation.
// Services depend on this so tests can substitute scripted sequences.
type StreamInterface interface {
	Intn(n int) int
	Int31n(n int32) int32
	Float32() float32
	Float64() float64
	Shuffle(n int, swap func(i, j int))
	Chance(p float64) bool
	Range(min, max int) int
	Seed() int64
}

// Stream implements StreamInterface using math/rand.
type Stream struct {
	rand *rand.Rand
	seed int64
}

// NewStream creates a new random stream with the given seed.
func NewStream(seed int64) *Stream {
	source := rand.NewSource(seed)
	return &Stream{
		rand: rand.New(source),
		seed: seed,
	}
}

// ForUnit derives an independent stream for one generation unit. The same
// parent seed, coordinate, and salt always reproduce the same stream, so
// units can generate in any order or in parallel without sharing state.
func ForUnit(seed world.Seed, c world.Coordinate, salt string) *Stream {
	return NewStream(world.DeriveSeed(seed, c, salt))
}

func (s *Stream) Intn(n int) int {
	return s.rand.Intn(n)
}

func (s *Stream) Int31n(n int32) int32 {
	return s.rand.Int31n(n)
}

func (s *Stream) Float32() float32 {
	return s.rand.Float32()
}

func (s *Stream) Float64() float64 {
	return s.rand.Float64()
}

func (s *Stream) Shuffle(n int, swap func(i, j int)) {
	s.rand.Shuffle(n, swap)
}

// Chance returns true with probability p. Values at or below 0 never fire,
// values at or above 1 always fire.
func (s *Stream) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return s.rand.Float64() < p
}

// Range returns a uniform integer in [min, max] inclusive. When the bounds
// are inverted they are swapped rather than rejected, matching the pipeline's
// clamp-and-continue error policy.
func (s *Stream) Range(min, max int) int {
	if min > max {
		min, max = max, min
	}
	if min == max {
		return min
	}
	return min + s.rand.Intn(max-min+1)
}

// Seed returns the seed this stream was created with.
func (s *Stream) Seed() int64 {
	return s.seed
}
