package shotmodel

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateHitsExactTargetPoints(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	targets := []int{1, 2, 3, 8, 15, 24, 33, 41}

	for _, target := range targets {
		line := Generate(rng, 75, 70, 65, 80, 82, target)
		twoM := line.FGM - line.ThreeM
		pts := 3*line.ThreeM + 2*twoM + line.FTM
		assert.Equal(t, target, pts, "target=%d", target)
		assert.GreaterOrEqual(t, line.FGA, line.FGM)
		assert.GreaterOrEqual(t, line.ThreeA, line.ThreeM)
		assert.GreaterOrEqual(t, line.FTA, line.FTM)
	}
}

func TestGenerateZeroTargetYieldsEmptyLine(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	line := Generate(rng, 75, 70, 65, 80, 82, 0)
	assert.Equal(t, Line{}, line)
}

func TestPP36Monotonic(t *testing.T) {
	assert.Less(t, PP36(65), PP36(90))
}

func TestShotDistributionSumsToOne(t *testing.T) {
	f3, fMid, fClose := shotDistribution(80, 70, 60)
	assert.InDelta(t, 1.0, f3+fMid+fClose, 1e-9)
}

func TestShotDistributionZeroesBelowFloor(t *testing.T) {
	f3, _, _ := shotDistribution(30, 70, 60)
	assert.Equal(t, 0.0, f3)
}
