// Package percentile builds the empirical-CDF percentile mapping from a
// league's rating pool to per-36 production rates (spec §4.8). A
// LeagueContext is built once per season and rebuilt whenever the
// underlying roster changes (progression), per spec §5's note that the
// empirical CDF arrays are the only shared, read-only resource.
package percentile

import "sort"

// LeagueContext holds the sorted rating samples the percentile
// functions below rank against.
type LeagueContext struct {
	ast []float64
	reb []float64
	stl []float64
	blk []float64
}

// NewLeagueContext builds the percentile samples from every player
// currently in the league. Call again (discarding the old context)
// whenever the roster changes, e.g. after progression.
func NewLeagueContext(astRatings, rebRatings, stlRatings, blkRatings []float64) *LeagueContext {
	return &LeagueContext{
		ast: sortedCopy(astRatings),
		reb: sortedCopy(rebRatings),
		stl: sortedCopy(stlRatings),
		blk: sortedCopy(blkRatings),
	}
}

func sortedCopy(vs []float64) []float64 {
	out := append([]float64(nil), vs...)
	sort.Float64s(out)
	return out
}

// Snapshot is the serializable form of a LeagueContext, for caching the
// built CDF arrays across requests within a season (spec §5's note that
// these arrays are read-only and shared).
type Snapshot struct {
	AST []float64 `json:"ast"`
	REB []float64 `json:"reb"`
	STL []float64 `json:"stl"`
	BLK []float64 `json:"blk"`
}

// Snapshot returns lc's serializable form.
func (lc *LeagueContext) Snapshot() Snapshot {
	return Snapshot{AST: lc.ast, REB: lc.reb, STL: lc.stl, BLK: lc.blk}
}

// FromSnapshot rebuilds a LeagueContext from a previously cached
// Snapshot without re-sorting (the snapshot was already sorted).
func FromSnapshot(s Snapshot) *LeagueContext {
	return &LeagueContext{ast: s.AST, reb: s.REB, stl: s.STL, blk: s.BLK}
}

// Percentile returns v's interpolated rank within sorted, on a 0-100
// scale. Endpoints snap to 0 and 100; interior values interpolate
// between neighboring indices (spec §4.8's empirical CDF).
func Percentile(sorted []float64, v float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 50
	}
	if n == 1 {
		if v <= sorted[0] {
			return 0
		}
		return 100
	}
	if v <= sorted[0] {
		return 0
	}
	if v >= sorted[n-1] {
		return 100
	}

	idx := sort.SearchFloat64s(sorted, v)
	if idx < n && sorted[idx] == v {
		return 100 * float64(idx) / float64(n-1)
	}
	lo := idx - 1
	hi := idx
	loX, hiX := sorted[lo], sorted[hi]
	loPct := 100 * float64(lo) / float64(n-1)
	hiPct := 100 * float64(hi) / float64(n-1)
	if hiX == loX {
		return loPct
	}
	t := (v - loX) / (hiX - loX)
	return loPct + (hiPct-loPct)*t
}

// AST36ForRating returns the expected assists-per-36 rate for a player
// with the given assist rating, within this league.
func (lc *LeagueContext) AST36ForRating(rating float64) float64 {
	return AST36(Percentile(lc.ast, rating))
}

// TRB36ForRating returns the expected total-rebounds-per-36 rate.
func (lc *LeagueContext) TRB36ForRating(rating float64) float64 {
	return TRB36(Percentile(lc.reb, rating))
}

// STL36ForRating returns the expected steals-per-36 rate.
func (lc *LeagueContext) STL36ForRating(rating float64) float64 {
	return STL36(Percentile(lc.stl, rating))
}

// BLK36ForRating returns the expected blocks-per-36 rate.
func (lc *LeagueContext) BLK36ForRating(rating float64) float64 {
	return BLK36(Percentile(lc.blk, rating))
}

// ScoringToPoints converts a player's scoringRating and minutes played
// into an expected point total for the game, via the percentile->PTS36
// pipeline (spec §4.7 step 1, §4.8).
func ScoringToPoints(scoringRating float64, minutes int) float64 {
	return PTS36(scoringRating) * (float64(minutes) / 36)
}
