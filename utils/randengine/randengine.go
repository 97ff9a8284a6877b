// Package randengine wraps golang.org/x/exp/rand as the single
// deterministic random stream of the simulation. Two kernels built with
// the same seed consume the stream in the same order and therefore stay
// byte-identical; everything that draws randomness goes through one Engine.
package randengine

import (
	"golang.org/x/exp/rand"
)

// Engine is a seeded pseudo-random stream.
type Engine struct {
	*rand.Rand
}

// New creates an engine seeded with seed.
func New(seed uint64) *Engine {
	return &Engine{Rand: rand.New(rand.NewSource(seed))}
}

// PTrue returns true with probability p.
func (e *Engine) PTrue(p float64) bool {
	return e.Float64() < p
}

// UniformFloat64 draws from [low, high).
func (e *Engine) UniformFloat64(low, high float64) float64 {
	return low + (high-low)*e.Float64()
}

// IntBetween draws an integer from [low, high], both ends inclusive.
func (e *Engine) IntBetween(low, high int) int {
	return low + e.Intn(high-low+1)
}

// Bool draws a fair coin flip.
func (e *Engine) Bool() bool {
	return e.Intn(2) == 0
}
