// Package efficiency implements the fatigue, coverage, empty-minutes and
// star-boost adjustments that turn raw per-player ratings into an
// effective team rating (spec §4.2, §4.3).
package efficiency

import (
	"math"
	"sort"

	"github.com/RamanShrikant/basketball-manager/internal/curves"
	"github.com/RamanShrikant/basketball-manager/pkg/types"
)

// FatiguePenalty returns the multiplicative rating decay for a player
// given their stamina and minutes played, clamped to [0.68, 1.0].
func FatiguePenalty(minutes int, stamina int) float64 {
	threshold := 0.359*float64(stamina) + 2.46
	over := math.Max(0, float64(minutes)-threshold)
	penalty := 1 - 0.010*over
	return curves.Clamp(penalty, 0.68, 1.0)
}

// PositionalMinutes sums each position's covered minutes: primary
// assignments count fully, secondary assignments count 20%.
func PositionalMinutes(team types.Team, minutes types.MinutesAllocation) map[types.Position]float64 {
	cover := map[types.Position]float64{}
	for _, p := range team.Players {
		m := float64(minutes[p.Name])
		if m == 0 {
			continue
		}
		cover[p.Pos] += m
		if p.HasSecondary() {
			cover[p.SecondaryPos] += 0.2 * m
		}
	}
	return cover
}

// CoveragePenalty scores how poorly the five positions are covered for
// 48 minutes each (spec §4.2).
func CoveragePenalty(cover map[types.Position]float64) float64 {
	sumAbsDev := 0.0
	maxP := 0.0
	for _, pos := range types.AllPositions {
		p := cover[pos]
		sumAbsDev += math.Abs(p - 48)
		if p > maxP {
			maxP = p
		}
	}
	return (sumAbsDev/240)*15 + (math.Max(0, maxP-48)/192)*6
}

// EmptyMinutesPenalty penalizes a team that doesn't use its full 240 (or
// 240+25·OT) minutes of play.
func EmptyMinutesPenalty(totalPlayed, totalRequired int) float64 {
	t := float64(totalPlayed)
	req := float64(totalRequired)
	if t >= req {
		return 0
	}
	return 35 * math.Pow((req-t)/req, 0.85)
}

// EffectiveRating pairs a player's fatigue-adjusted rating and played
// minutes for a single channel.
type EffectiveRating struct {
	Name    string
	Minutes int
	Rating  float64
}

// starBoostK is the curvature constant per channel (spec §4.2).
func starBoostK(channel string) float64 {
	switch channel {
	case "off":
		return 1.20
	case "def":
		return 1.20
	default:
		return 1.22
	}
}

// StarBoost computes the non-linear bump contributed by up to the top
// two effective ratings in a channel.
func StarBoost(effs []EffectiveRating, channel string) float64 {
	sorted := append([]EffectiveRating(nil), effs...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Rating > sorted[j].Rating })

	k := starBoostK(channel)
	pull := 0.0
	for i := 0; i < len(sorted) && i < 2; i++ {
		e := sorted[i]
		gap := math.Max(0, e.Rating-84)
		share := math.Pow(math.Max(0, float64(e.Minutes)/240), 0.45)
		pull += math.Pow(gap, k) * share
	}
	return math.Pow(pull, 0.85)
}

// ScaleToRange maps a raw channel score into [25,99] using the league's
// standard compression (spec §4.2).
func ScaleToRange(raw float64) float64 {
	return curves.Clamp((raw-75)*1.30+75, 25, 99)
}
