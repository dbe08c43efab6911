// Package rating derives a team's overall/offensive/defensive rating
// from its roster, per-game minutes allocation, fatigue, positional
// coverage, and star effects (spec §4.3).
package rating

import (
	"github.com/RamanShrikant/basketball-manager/internal/efficiency"
	"github.com/RamanShrikant/basketball-manager/pkg/types"
)

// channelRating picks the unscaled rating a player contributes to a
// channel.
func channelRating(p types.Player, channel string) float64 {
	switch channel {
	case "off":
		return float64(p.OffRating)
	case "def":
		return float64(p.DefRating)
	default:
		return float64(p.Overall)
	}
}

// RegulationMinutes is the per-team minute budget for one game before
// any overtime is played (spec §3, §4.3).
const RegulationMinutes = 240

// Compute derives {overall, off, def} for a team given a per-game
// minutes allocation, following the five steps of spec §4.3. Rating is
// always evaluated against the regulation 240-minute budget: overtime
// length is decided later, by the score generator, and never feeds back
// into the rating that produced it.
func Compute(team types.Team, minutes types.MinutesAllocation) types.TeamRating {
	return types.TeamRating{
		Overall: int(computeChannel(team, minutes, "overall") + 0.5),
		Off:     int(computeChannel(team, minutes, "off") + 0.5),
		Def:     int(computeChannel(team, minutes, "def") + 0.5),
	}
}

func computeChannel(team types.Team, minutes types.MinutesAllocation, channel string) float64 {
	effs := make([]efficiency.EffectiveRating, 0, len(team.Players))
	wavg := 0.0

	for _, p := range team.Players {
		m := minutes[p.Name]
		if m <= 0 {
			continue
		}
		eff := channelRating(p, channel) * efficiency.FatiguePenalty(m, p.Stamina)
		effs = append(effs, efficiency.EffectiveRating{Name: p.Name, Minutes: m, Rating: eff})
		wavg += (float64(m) / 240) * eff
	}

	boost := efficiency.StarBoost(effs, channel)
	cover := efficiency.PositionalMinutes(team, minutes)
	covPenalty := efficiency.CoveragePenalty(cover)
	emptyPenalty := efficiency.EmptyMinutesPenalty(minutes.Total(), RegulationMinutes)

	raw := wavg + boost - covPenalty - emptyPenalty
	return efficiency.ScaleToRange(raw)
}
