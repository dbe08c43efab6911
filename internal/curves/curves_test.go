package curves

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterpClampsAtEndpoints(t *testing.T) {
	curve := []Point{{X: 0, Y: 1}, {X: 10, Y: 5}, {X: 20, Y: 2}}

	assert.Equal(t, 1.0, Interp(curve, -5))
	assert.Equal(t, 2.0, Interp(curve, 25))
}

func TestInterpLerpsBetweenNodes(t *testing.T) {
	curve := []Point{{X: 0, Y: 0}, {X: 10, Y: 10}}
	assert.InDelta(t, 5.0, Interp(curve, 5), 1e-9)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 5.0, Clamp(5, 0, 10))
	assert.Equal(t, 0.0, Clamp(-1, 0, 10))
	assert.Equal(t, 10.0, Clamp(11, 0, 10))
}

func TestBinomialBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		v := Binomial(rng, 20, 0.4)
		assert.GreaterOrEqual(t, v, 0)
		assert.LessOrEqual(t, v, 20)
	}
}

func TestPoissonNonNegative(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 100; i++ {
		assert.GreaterOrEqual(t, Poisson(rng, 2.5), 0)
	}
}

func TestStochRoundMatchesMeanOverManyDraws(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	sum := 0
	const n = 20000
	for i := 0; i < n; i++ {
		sum += StochRound(rng, 3.3)
	}
	mean := float64(sum) / float64(n)
	assert.InDelta(t, 3.3, mean, 0.05)
}
