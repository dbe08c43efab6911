// Package progression ages a league by one offseason: every player's
// attributes and derived ratings shift per an age curve, development
// trait, potential, minutes played, and production (spec §4.11).
package progression

import (
	"math/rand"

	"github.com/RamanShrikant/basketball-manager/internal/curves"
	"github.com/RamanShrikant/basketball-manager/pkg/types"
)

// oldAgeThreshold is the age at which attribute decay accelerates.
const oldAgeThreshold = 30

var ageCurve = []curves.Point{
	{X: 18, Y: 1.6}, {X: 29, Y: 0.05}, {X: 30, Y: -0.20}, {X: 40, Y: -1.70},
}

func ageCurveValue(age int) float64 { return curves.Interp(ageCurve, float64(age)) }

// Settings carries progression-wide knobs. Empty today; kept so the
// engine facade's signature doesn't need to change if a future season
// format wants to tune noise or decay.
type Settings struct{}

// PlayerChange records one player's before/after snapshot for
// diagnostics and audit logging.
type PlayerChange struct {
	Player     string
	Team       string
	NewAge     int
	AttrDeltas [types.NumAttrs]int
	OverallDelta, OffDelta, DefDelta, StaminaDelta int
	ScoringDelta                                   float64
}

// Result is the full set of per-player changes applied by one
// progression run.
type Result struct {
	Changes []PlayerChange
}

// Apply ages every team by one offseason in place and returns a
// diagnostic record of what changed. year identifies the offseason
// being applied; a player whose LastBirthdayYear already matches it is
// not aged again, but a second call still applies rating progression
// to every player once more.
func Apply(league []types.Team, aggregates map[string]types.SeasonAggregate, _ Settings, seed int64, year int) (Result, error) {
	rng := rand.New(rand.NewSource(seed))
	result := Result{}

	for ti := range league {
		team := &league[ti]
		for pi := range team.Players {
			p := &team.Players[pi]

			if p.LastBirthdayYear != year {
				p.Age++
				p.LastBirthdayYear = year
			}

			agg := aggregates[team.Name+"|"+p.Name]
			change := applyOnePlayer(rng, p, agg)
			change.Team = team.Name
			result.Changes = append(result.Changes, change)
		}
	}

	return result, nil
}

func applyOnePlayer(rng *rand.Rand, p *types.Player, agg types.SeasonAggregate) PlayerChange {
	base := ageCurveValue(p.Age)
	devMult := p.DevTrait.Multiplier() * (1 + (float64(p.Potential)-50)*0.060)
	minFactor := minFactorFor(agg)
	prodFactor := prodFactorFor(agg)
	noise := curves.Gauss(rng, 0, 0.20)

	baseDelta := base * devMult * minFactor * prodFactor * (1 + noise)

	attrMult := 1.00
	if p.Age >= oldAgeThreshold {
		attrMult = 1.15
	}

	change := PlayerChange{Player: p.Name, NewAge: p.Age}

	for i := 0; i < types.NumAttrs; i++ {
		delta := curves.Clamp(baseDelta*attrMult, -6, 6)
		rounded := curves.StochRound(rng, delta)
		p.Attrs[i] = clampInt(p.Attrs[i]+rounded, 25, 99)
		change.AttrDeltas[i] = rounded
	}

	overallDelta := clampInt(curves.StochRound(rng, curves.Clamp(baseDelta*0.35, -4, 4)), -4, 4)
	offDelta := clampInt(curves.StochRound(rng, curves.Clamp(baseDelta*0.35, -4, 4)), -4, 4)
	defDelta := clampInt(curves.StochRound(rng, curves.Clamp(baseDelta*0.35, -4, 4)), -4, 4)
	staminaDelta := clampInt(curves.StochRound(rng, curves.Clamp(baseDelta*0.50, -4, 4)), -4, 4)
	scoringDelta := curves.Clamp(baseDelta*0.25, -4, 4)

	p.Overall = clampInt(p.Overall+overallDelta, 25, 99)
	p.OffRating = clampInt(p.OffRating+offDelta, 25, 99)
	p.DefRating = clampInt(p.DefRating+defDelta, 25, 99)
	p.Stamina = clampInt(p.Stamina+staminaDelta, 25, 99)
	p.ScoringRating = curves.Clamp(p.ScoringRating+scoringDelta, 0, 100)

	change.OverallDelta = overallDelta
	change.OffDelta = offDelta
	change.DefDelta = defDelta
	change.StaminaDelta = staminaDelta
	change.ScoringDelta = scoringDelta

	return change
}

// minFactorFor scales development by playing time: 0.15 at <=5 mpg up
// to 1.0 at >=30 mpg, linear between. A player with no recorded games
// gets the neutral 1.0.
func minFactorFor(agg types.SeasonAggregate) float64 {
	if agg.GP == 0 {
		return 1.0
	}
	mpg := agg.MPG()
	if mpg <= 5 {
		return 0.15
	}
	if mpg >= 30 {
		return 1.0
	}
	return curves.Lerp(0.15, 1.0, (mpg-5)/(30-5))
}

func prodFactorFor(agg types.SeasonAggregate) float64 {
	if agg.GP == 0 {
		return 1.0
	}
	raw := agg.PPG() + 1.5*agg.APG() + 1.2*agg.RPG() + 3*agg.SPG() + 3*agg.BPG() - 20
	return curves.Clamp(1+raw/400, 0.95, 1.05)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
