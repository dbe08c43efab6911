package percentile

import "github.com/RamanShrikant/basketball-manager/internal/curves"

// Per-36 rate curves keyed by within-league percentile (spec §4.8). The
// node sets below are the curve's defining control points; intermediate
// percentiles are linearly interpolated by curves.Interp.
var (
	ast36Curve = []curves.Point{
		{X: 0, Y: 1.1}, {X: 50, Y: 3.3}, {X: 75, Y: 5.2}, {X: 90, Y: 6.8}, {X: 99, Y: 10.7}, {X: 100, Y: 11.6},
	}
	trb36Curve = []curves.Point{
		{X: 0, Y: 2.2}, {X: 50, Y: 5.2}, {X: 75, Y: 6.6}, {X: 90, Y: 8.2}, {X: 95, Y: 10.5}, {X: 100, Y: 13.4},
	}
	stl36Curve = []curves.Point{
		{X: 0, Y: 0.4}, {X: 50, Y: 1.2}, {X: 75, Y: 1.4}, {X: 95, Y: 1.7}, {X: 100, Y: 3.0},
	}
	blk36Curve = []curves.Point{
		{X: 0, Y: 0.1}, {X: 50, Y: 0.7}, {X: 75, Y: 1.0}, {X: 90, Y: 1.4}, {X: 95, Y: 1.8}, {X: 100, Y: 3.3},
	}

	// scoringPctTable maps a within-league scoringRating percentile
	// (X) to a scoringRating value (Y). It is a fixed calibration
	// table, not rebuilt per league.
	scoringPctTable = []curves.Point{
		{X: 0, Y: 40.54}, {X: 5, Y: 51.08}, {X: 10, Y: 53.32}, {X: 15, Y: 53.98}, {X: 20, Y: 54.95},
		{X: 25, Y: 55.89}, {X: 30, Y: 56.36}, {X: 35, Y: 56.98}, {X: 40, Y: 58.27}, {X: 45, Y: 59.03},
		{X: 50, Y: 59.64}, {X: 55, Y: 60.28}, {X: 60, Y: 62.48}, {X: 65, Y: 63.57}, {X: 70, Y: 64.54},
		{X: 75, Y: 66.92}, {X: 80, Y: 68.99}, {X: 85, Y: 71.96}, {X: 90, Y: 76.75}, {X: 95, Y: 81.88},
		{X: 100, Y: 97.24},
	}

	// pts36Curve maps a scoringRating-within-table percentile to PTS36.
	pts36Curve = []curves.Point{
		{X: 0, Y: 9.2}, {X: 5, Y: 11.2}, {X: 10, Y: 12.1}, {X: 15, Y: 12.9}, {X: 20, Y: 13.5},
		{X: 25, Y: 14.05}, {X: 30, Y: 14.5}, {X: 35, Y: 15.1}, {X: 40, Y: 15.7}, {X: 45, Y: 16.2},
		{X: 50, Y: 16.7}, {X: 55, Y: 17.25}, {X: 60, Y: 18.1}, {X: 65, Y: 18.65}, {X: 70, Y: 19.6},
		{X: 75, Y: 20.4}, {X: 80, Y: 22.8}, {X: 85, Y: 24.05}, {X: 90, Y: 26.7}, {X: 95, Y: 29.5},
		{X: 100, Y: 34.4},
	}
)

// AST36 returns the expected assists-per-36-minutes rate for a player at
// the given within-league assist-rating percentile.
func AST36(pct float64) float64 { return curves.Interp(ast36Curve, pct) }

// TRB36 returns the expected total-rebounds-per-36 rate.
func TRB36(pct float64) float64 { return curves.Interp(trb36Curve, pct) }

// STL36 returns the expected steals-per-36 rate.
func STL36(pct float64) float64 { return curves.Interp(stl36Curve, pct) }

// BLK36 returns the expected blocks-per-36 rate.
func BLK36(pct float64) float64 { return curves.Interp(blk36Curve, pct) }

// scoringToPercentile inverts scoringPctTable: given a scoringRating
// value, find its position on the table's fixed 0-100 scale.
func scoringToPercentile(scoringRating float64) float64 {
	return curves.InterpInverse(scoringPctTable, scoringRating)
}

// PTS36 returns the expected points-per-36 rate for a raw scoringRating,
// after remapping it through scoringPctTable into a percentile and then
// through the PTS36 curve.
func PTS36(scoringRating float64) float64 {
	return curves.Interp(pts36Curve, scoringToPercentile(scoringRating))
}
