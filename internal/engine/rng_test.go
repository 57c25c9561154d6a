package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRNGSameSeedSameSequence(t *testing.T) {
	a := NewRNG(42)
	b := NewRNG(42)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Uniform(0, 1), b.Uniform(0, 1))
	}
}

func TestRNGReseedRestartsSequence(t *testing.T) {
	g := NewRNG(7)
	first := g.Uniform(0, 1)
	g.Uniform(0, 1)
	g.Seed(7)
	assert.Equal(t, first, g.Uniform(0, 1))
}

func TestUniformStaysInRange(t *testing.T) {
	g := NewRNG(1)
	for i := 0; i < 1000; i++ {
		v := g.Uniform(2.5, 7.5)
		assert.GreaterOrEqual(t, v, 2.5)
		assert.Less(t, v, 7.5)
	}
}

func TestBernoulliDegenerateProbabilities(t *testing.T) {
	g := NewRNG(1)
	for i := 0; i < 100; i++ {
		assert.True(t, g.Bernoulli(1.5), "p>1 must always hit")
		assert.False(t, g.Bernoulli(-0.5), "p<0 must never hit")
		assert.False(t, g.Bernoulli(0))
	}
}

func TestBernoulliRoughFrequency(t *testing.T) {
	g := NewRNG(3)
	hits := 0
	const n = 20000
	for i := 0; i < n; i++ {
		if g.Bernoulli(0.3) {
			hits++
		}
	}
	assert.InDelta(t, 0.3, float64(hits)/n, 0.02)
}

func TestWeightedIndexRespectsWeights(t *testing.T) {
	g := NewRNG(9)
	counts := make([]int, 3)
	const n = 30000
	for i := 0; i < n; i++ {
		counts[g.WeightedIndex([]float64{1, 0, 3})]++
	}
	assert.Zero(t, counts[1])
	assert.InDelta(t, 0.25, float64(counts[0])/n, 0.02)
	assert.InDelta(t, 0.75, float64(counts[2])/n, 0.02)
}

func TestWeightedIndexZeroTotalPicksLast(t *testing.T) {
	g := NewRNG(1)
	assert.Equal(t, 2, g.WeightedIndex([]float64{0, 0, 0}))
}

func TestChoiceDrawsUniformly(t *testing.T) {
	g := NewRNG(5)
	opts := []string{"a", "b", "c"}
	counts := make(map[string]int, len(opts))
	const n = 30000
	for i := 0; i < n; i++ {
		counts[Choice(g, opts)]++
	}
	for _, o := range opts {
		assert.InDelta(t, 1.0/3.0, float64(counts[o])/n, 0.02)
	}
}

func TestChoiceSingleElement(t *testing.T) {
	g := NewRNG(1)
	assert.Equal(t, 42, Choice(g, []int{42}))
}

func TestChoiceSameSeedSamePicks(t *testing.T) {
	a := NewRNG(8)
	b := NewRNG(8)
	opts := []int{1, 2, 3, 4, 5}
	for i := 0; i < 100; i++ {
		assert.Equal(t, Choice(a, opts), Choice(b, opts))
	}
}
