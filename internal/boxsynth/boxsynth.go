// Package boxsynth synthesizes a full team box score: per-player point
// targets, shooting lines, rebounds/assists/steals/blocks, turnovers,
// and fouls, all reconciled exactly to team totals (spec §4.7).
package boxsynth

import (
	"math"
	"math/rand"
	"sort"

	"github.com/RamanShrikant/basketball-manager/internal/curves"
	"github.com/RamanShrikant/basketball-manager/internal/percentile"
	"github.com/RamanShrikant/basketball-manager/internal/shotmodel"
	"github.com/RamanShrikant/basketball-manager/pkg/types"
)

// BaseTurnovers and BaseFouls are the league-average per-team targets
// the turnover and foul models are rebalanced against (spec §4.7 steps
// 4-5).
const (
	BaseTurnovers = 14.3
	BaseFouls     = 20.8
)

// LeagueAverages are the league-wide offensive-IQ and overall values
// the turnover and foul models compare a player/team against.
type LeagueAverages struct {
	OffIQ   float64
	Overall float64
}

// ActivePlayer pairs a roster player with the minutes they will play
// in this game.
type ActivePlayer struct {
	Player  types.Player
	Minutes int
}

// countInfo ranks a player by touches (usage) for the turnover/foul
// rebalancing passes, carrying the per-player cap each count is bound
// by.
type countInfo struct {
	name    string
	touches float64
	cap     int
}

// Synthesize builds the full set of BoxLines for one team in one game,
// including zero-lines for any roster player not in active.
func Synthesize(rng *rand.Rand, lc *percentile.LeagueContext, league LeagueAverages, roster types.Team, active []ActivePlayer, teamFinal int) []types.BoxLine {
	targets := pointTargets(rng, active, teamFinal)

	lines := make(map[string]*types.BoxLine, len(roster.Players))
	for _, p := range roster.Players {
		lines[p.Name] = &types.BoxLine{Player: p.Name}
	}

	for _, a := range active {
		line := lines[a.Player.Name]
		line.Min = a.Minutes

		target := targets[a.Player.Name]
		shot := shotmodel.Generate(rng, float64(a.Player.Attrs[types.AttrThreePT]), float64(a.Player.Attrs[types.AttrMidRange]),
			float64(a.Player.Attrs[types.AttrCloseShot]), float64(a.Player.Attrs[types.AttrFreeThrow]), float64(a.Player.OffRating), target)

		line.Pts = target
		line.Fgm = shot.FGM
		line.Fga = shot.FGA
		line.Tpm = shot.ThreeM
		line.Tpa = shot.ThreeA
		line.Ftm = shot.FTM
		line.Fta = shot.FTA
	}

	synthesizeCounting(rng, lc, active, lines)
	synthesizeTurnovers(rng, league, roster, active, lines)
	synthesizeFouls(rng, league, active, lines)

	out := make([]types.BoxLine, 0, len(roster.Players))
	for _, p := range roster.Players {
		out = append(out, *lines[p.Name])
	}
	return out
}

// pointTargets draws each active player's raw point target from the
// percentile->PTS36 expectation, then reconciles the sum to teamFinal
// one point at a time (spec §4.7 step 1).
func pointTargets(rng *rand.Rand, active []ActivePlayer, teamFinal int) map[string]int {
	targets := make(map[string]int, len(active))
	for _, a := range active {
		exp := percentile.ScoringToPoints(a.Player.ScoringRating, a.Minutes)
		sigma := math.Max(1.2, math.Sqrt(math.Max(exp, 0))*0.9)
		raw := math.Max(0, curves.Gauss(rng, exp, sigma))
		targets[a.Player.Name] = int(math.Round(raw))
	}

	reconcileToTotal(rng, active, targets, teamFinal)
	return targets
}

// reconcileToTotal repeatedly nudges a random active player's target
// by +-1 (never below zero) until the targets sum to total.
func reconcileToTotal(rng *rand.Rand, active []ActivePlayer, targets map[string]int, total int) {
	if len(active) == 0 {
		return
	}
	sum := 0
	for _, a := range active {
		sum += targets[a.Player.Name]
	}

	for i := 0; sum != total && i < 10000; i++ {
		idx := rng.Intn(len(active))
		name := active[idx].Player.Name
		if sum < total {
			targets[name]++
			sum++
		} else if targets[name] > 0 {
			targets[name]--
			sum--
		}
	}
}

// synthesizeCounting fills rebounds, assists, steals, and blocks for
// every active player from the per-36 percentile curves plus Gaussian
// noise (spec §4.7 step 3).
func synthesizeCounting(rng *rand.Rand, lc *percentile.LeagueContext, active []ActivePlayer, lines map[string]*types.BoxLine) {
	draw := func(per36 float64, minutes int, floor float64) int {
		expected := per36 * float64(minutes) / 36
		sigma := math.Max(floor, math.Sqrt(math.Max(expected, 0))*0.7) * 1.35
		v := curves.Gauss(rng, expected, sigma)
		if v < 0 {
			v = 0
		}
		return int(math.Round(v))
	}

	for _, a := range active {
		line := lines[a.Player.Name]
		p := a.Player

		astRating := float64(p.Attrs[types.AttrPassing])
		rebRating := float64(p.Attrs[types.AttrRebounding])
		stlRating := float64(p.Attrs[types.AttrSteal])
		blkRating := float64(p.Attrs[types.AttrBlock])

		line.Ast = draw(lc.AST36ForRating(astRating), a.Minutes, 0.6)
		line.Reb = draw(lc.TRB36ForRating(rebRating), a.Minutes, 0.8)
		line.Stl = draw(lc.STL36ForRating(stlRating), a.Minutes, 0.3)
		line.Blk = draw(lc.BLK36ForRating(blkRating), a.Minutes, 0.3)
	}
}

// synthesizeTurnovers draws a Poisson turnover count per player from
// touches and IQ/overall penalties, then rebalances the team total to
// round(BASE_TO * to_mult) (spec §4.7 step 4).
func synthesizeTurnovers(rng *rand.Rand, league LeagueAverages, roster types.Team, active []ActivePlayer, lines map[string]*types.BoxLine) {
	if len(active) == 0 {
		return
	}
	tmOffIQ, tmOverall := teamAverages(roster)

	infos := make([]countInfo, 0, len(active))

	for _, a := range active {
		p := a.Player
		line := lines[p.Name]
		touches := float64(line.Fga) + 0.44*float64(line.Fta) + 0.30*float64(line.Ast)

		guardFactor := 0.90
		isGuard := p.Pos == types.PG || p.Pos == types.SG
		if isGuard {
			guardFactor = 1.15
		}
		iqPenRate := 0.008
		if isGuard {
			iqPenRate = 0.015
		}
		offIQ := float64(p.Attrs[types.AttrOffensiveIQ])
		iqPen := 1 + math.Max(0, league.OffIQ-offIQ)*iqPenRate
		ovPen := 1 + math.Max(0, league.Overall-float64(p.Overall))*0.008

		lambda := curves.Clamp(guardFactor*iqPen*ovPen*touches/8, 0.05, 5)
		to := curves.Poisson(rng, lambda)

		cap := int(math.Ceil(0.40 * touches))
		if cap > 8 {
			cap = 8
		}
		if to > cap {
			to = cap
		}
		lines[p.Name].To = to
		infos = append(infos, countInfo{name: p.Name, touches: touches, cap: cap})
	}

	// Top-3 usage players get 3 extra headroom before the overall cap.
	sort.SliceStable(infos, func(i, j int) bool { return infos[i].touches > infos[j].touches })
	for i := 0; i < len(infos) && i < 3; i++ {
		extendedCap := infos[i].cap + 3
		if extendedCap > 8+3 {
			extendedCap = 8 + 3
		}
		infos[i].cap = extendedCap
	}

	toMult := curves.Clamp(1+0.25*(league.OffIQ-tmOffIQ)/10+0.10*(league.Overall-tmOverall)/10+curves.Gauss(rng, 0, 0.07), 0.75, 1.40)
	target := int(math.Round(BaseTurnovers * toMult))

	rebalanceCounts(infos, lines, target, func(l *types.BoxLine) *int { return &l.To })
}

// synthesizeFouls draws a Poisson foul count per player, then rebalances
// the team total to round(BASE_FOULS * pf_mult) (spec §4.7 step 5).
func synthesizeFouls(rng *rand.Rand, league LeagueAverages, active []ActivePlayer, lines map[string]*types.BoxLine) {
	if len(active) == 0 {
		return
	}

	infos := make([]countInfo, 0, len(active))

	for _, a := range active {
		p := a.Player
		posFac := 0.90
		if p.Pos == types.PF || p.Pos == types.C {
			posFac = 1.20
		}
		isGuard := p.Pos == types.PG || p.Pos == types.SG
		iqPenRate := 0.008
		if isGuard {
			iqPenRate = 0.015
		}
		offIQ := float64(p.Attrs[types.AttrOffensiveIQ])
		iqPen := 1 + math.Max(0, league.OffIQ-offIQ)*iqPenRate

		lambda := curves.Clamp(posFac*iqPen*(float64(a.Minutes)/36)*2.8, 0.05, 4.5)
		pf := curves.Poisson(rng, lambda)
		if pf > 6 {
			pf = 6
		}
		lines[p.Name].Pf = pf
		infos = append(infos, countInfo{name: p.Name, touches: float64(a.Minutes), cap: 6})
	}

	// pf_mult has no explicit formula in the source spec; a neutral
	// multiplier of 1 is used.
	const pfMult = 1.0
	target := int(math.Round(BaseFouls * pfMult))

	rebalanceCounts(infos, lines, target, func(l *types.BoxLine) *int { return &l.Pf })
}

// rebalanceCounts nudges each player's count (selected by field) up or
// down by one at a time until the team sum matches target. Increases go
// to the highest-touches player still under their cap; decreases come
// from the lowest-touches player still above zero.
func rebalanceCounts(infos []countInfo, lines map[string]*types.BoxLine, target int, field func(*types.BoxLine) *int) {
	sort.SliceStable(infos, func(i, j int) bool { return infos[i].touches > infos[j].touches })

	sum := func() int {
		s := 0
		for _, info := range infos {
			s += *field(lines[info.name])
		}
		return s
	}

	for iter := 0; sum() < target && iter < 1000; iter++ {
		moved := false
		for _, info := range infos {
			v := field(lines[info.name])
			if *v < info.cap {
				*v++
				moved = true
				break
			}
		}
		if !moved {
			break
		}
	}

	for iter := 0; sum() > target && iter < 1000; iter++ {
		moved := false
		for i := len(infos) - 1; i >= 0; i-- {
			v := field(lines[infos[i].name])
			if *v > 0 {
				*v--
				moved = true
				break
			}
		}
		if !moved {
			break
		}
	}
}

func teamAverages(roster types.Team) (offIQ, overall float64) {
	if len(roster.Players) == 0 {
		return 0, 0
	}
	sumIQ, sumOv := 0.0, 0.0
	for _, p := range roster.Players {
		sumIQ += float64(p.Attrs[types.AttrOffensiveIQ])
		sumOv += float64(p.Overall)
	}
	n := float64(len(roster.Players))
	return sumIQ / n, sumOv / n
}
