package engine

import (
	"math/rand"
)

// RNG wraps a seedable source with the uniform/bernoulli/weighted-choice
// primitives the possession loop draws from. One RNG belongs to exactly one
// engine (or batch worker); it is not safe for concurrent use and is never
// shared, which is what makes a match reproducible from its seed.
type RNG struct {
	r *rand.Rand
}

func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewSource(seed))}
}

func (g *RNG) Seed(seed int64) {
	g.r = rand.New(rand.NewSource(seed))
}

// Uniform returns a float in [a, b).
func (g *RNG) Uniform(a, b float64) float64 {
	return a + g.r.Float64()*(b-a)
}

// Bernoulli draws an event with the given probability. Values above 1 are
// always true and below 0 always false; no bounds check, this is the hot
// path and callers pass unclamped rates.
func (g *RNG) Bernoulli(p float64) bool {
	return g.r.Float64() < p
}

// Intn returns a uniform int in [0, n).
func (g *RNG) Intn(n int) int {
	return g.r.Intn(n)
}

// WeightedIndex picks an index by cumulative weight. With a non-positive
// total it deterministically returns the last index.
func (g *RNG) WeightedIndex(weights []float64) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return len(weights) - 1
	}
	r := g.r.Float64() * total
	upto := 0.0
	for i, w := range weights {
		if upto+w >= r {
			return i
		}
		upto += w
	}
	return len(weights) - 1
}

// Choice returns a uniformly drawn element of s. Panics on an empty
// slice, like Intn on zero.
func Choice[T any](g *RNG, s []T) T {
	return s[g.Intn(len(s))]
}

// defaultRNG backs the package-level Simulate convenience. Batch workers
// never touch it; each owns its own RNG.
var defaultRNG = NewRNG(1)

// Seed reseeds the package-level generator used by Simulate.
func Seed(seed int64) {
	defaultRNG.Seed(seed)
}
