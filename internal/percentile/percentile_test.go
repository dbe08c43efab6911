package percentile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentileEndpointsSnap(t *testing.T) {
	sorted := []float64{10, 20, 30, 40, 50}
	assert.Equal(t, 0.0, Percentile(sorted, 5))
	assert.Equal(t, 100.0, Percentile(sorted, 60))
}

func TestPercentileInterpolatesMidpoint(t *testing.T) {
	sorted := []float64{0, 100}
	assert.InDelta(t, 50.0, Percentile(sorted, 50), 1e-9)
}

func TestPercentileEmptySample(t *testing.T) {
	assert.Equal(t, 50.0, Percentile(nil, 42))
}

func TestLeagueContextCurvesMonotonic(t *testing.T) {
	lc := NewLeagueContext(
		[]float64{40, 60, 80},
		[]float64{40, 60, 80},
		[]float64{40, 60, 80},
		[]float64{40, 60, 80},
	)
	assert.Less(t, lc.AST36ForRating(40), lc.AST36ForRating(80))
	assert.Less(t, lc.TRB36ForRating(40), lc.TRB36ForRating(80))
	assert.Less(t, lc.STL36ForRating(40), lc.STL36ForRating(80))
	assert.Less(t, lc.BLK36ForRating(40), lc.BLK36ForRating(80))
}

func TestScoringToPointsScalesWithMinutes(t *testing.T) {
	low := ScoringToPoints(60, 18)
	high := ScoringToPoints(60, 36)
	assert.InDelta(t, high, low*2, 1e-9)
}

func TestScoringToPointsIncreasesWithRating(t *testing.T) {
	assert.Less(t, ScoringToPoints(50, 36), ScoringToPoints(90, 36))
}

func TestSnapshotRoundTripsThroughFromSnapshot(t *testing.T) {
	lc := NewLeagueContext(
		[]float64{40, 60, 80},
		[]float64{40, 60, 80},
		[]float64{40, 60, 80},
		[]float64{40, 60, 80},
	)

	rebuilt := FromSnapshot(lc.Snapshot())
	assert.Equal(t, lc.AST36ForRating(55), rebuilt.AST36ForRating(55))
	assert.Equal(t, lc.TRB36ForRating(70), rebuilt.TRB36ForRating(70))
}
