// Package awards scores end-of-season award races (MVP, DPOY, Sixth
// Man, All-NBA, Finals MVP) from frozen season aggregates (spec §4.10).
package awards

import (
	"sort"

	"github.com/RamanShrikant/basketball-manager/internal/curves"
	"github.com/RamanShrikant/basketball-manager/pkg/types"
)

// MinGamesPlayed is the eligibility floor for every award except a
// fallback when nobody qualifies.
const MinGamesPlayed = 40

// Candidate is one player's per-game line and scalar award score.
type Candidate struct {
	Player string
	Team   string
	PPG    float64
	APG    float64
	RPG    float64
	SPG    float64
	BPG    float64
	Score  float64
}

// Result is an award's winner plus its 5-deep race.
type Result struct {
	Winner string
	Race   []Candidate
}

// Report bundles every scalar-scored award for one season.
type Report struct {
	MVP          Result
	DPOY         Result
	SixthMOY     Result
	AllNBAFirst  []string
	AllNBASecond []string
	AllNBAThird  []string
}

// Inputs bundles everything Compute needs beyond the season aggregates
// themselves: team win totals and each player's defensive rating.
type Inputs struct {
	TeamWins    map[string]int
	DefRatings  map[string]int // keyed by player name
	RoleCounted map[string]bool
}

// Compute scores every award for a season's frozen aggregates
// (spec §4.10).
func Compute(aggregates []types.SeasonAggregate, in Inputs) Report {
	pool := eligiblePool(aggregates)

	return Report{
		MVP:          computeMVP(pool, in),
		DPOY:         computeDPOY(pool, in),
		SixthMOY:     computeSixthMOY(aggregates, in),
		AllNBAFirst:  allNBA(pool)[0],
		AllNBASecond: allNBA(pool)[1],
		AllNBAThird:  allNBA(pool)[2],
	}
}

// FinalsMVP restricts the pool to the championship team's aggregates
// and scores a scoring-weighted race (spec §4.10).
func FinalsMVP(aggregates []types.SeasonAggregate, champion string, defRatings map[string]int) Result {
	pool := make([]types.SeasonAggregate, 0)
	for _, a := range aggregates {
		if a.Team == champion {
			pool = append(pool, a)
		}
	}
	pool = eligiblePool(pool)

	maxes := statMaxes(pool)
	defLo, defHi := defRange(pool, defRatings)

	candidates := make([]Candidate, 0, len(pool))
	for _, a := range pool {
		c := Candidate{Player: a.Player, Team: a.Team, PPG: a.PPG(), APG: a.APG(), RPG: a.RPG(), SPG: a.SPG(), BPG: a.BPG()}
		def := float64(defRatings[a.Player])
		c.Score = 0.35*norm(c.PPG, maxes.ppg) + 0.20*norm(c.APG, maxes.apg) + 0.20*norm(c.RPG, maxes.rpg) +
			0.10*norm(c.SPG, maxes.spg) + 0.10*norm(c.BPG, maxes.bpg) + 0.05*normDef(def, defLo, defHi)
		candidates = append(candidates, c)
	}

	return topResult(candidates, 5)
}

func eligiblePool(aggregates []types.SeasonAggregate) []types.SeasonAggregate {
	pool := make([]types.SeasonAggregate, 0, len(aggregates))
	for _, a := range aggregates {
		if a.GP >= MinGamesPlayed {
			pool = append(pool, a)
		}
	}
	if len(pool) == 0 {
		return aggregates
	}
	return pool
}

type statMax struct {
	ppg, apg, rpg, spg, bpg float64
}

func statMaxes(pool []types.SeasonAggregate) statMax {
	var m statMax
	for _, a := range pool {
		m.ppg = maxF(m.ppg, a.PPG())
		m.apg = maxF(m.apg, a.APG())
		m.rpg = maxF(m.rpg, a.RPG())
		m.spg = maxF(m.spg, a.SPG())
		m.bpg = maxF(m.bpg, a.BPG())
	}
	return m
}

func defRange(pool []types.SeasonAggregate, defRatings map[string]int) (lo, hi float64) {
	lo, hi = 99, 25
	for _, a := range pool {
		d := float64(defRatings[a.Player])
		if d < lo {
			lo = d
		}
		if d > hi {
			hi = d
		}
	}
	if lo > hi {
		return 25, 99
	}
	return lo, hi
}

func norm(v, vmax float64) float64 {
	if vmax <= 0 {
		return 0
	}
	return curves.Clamp(v/vmax, 0, 1)
}

func normDef(v, lo, hi float64) float64 {
	if hi <= lo {
		return 0
	}
	return curves.Clamp((hi-v)/(hi-lo), 0, 1)
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func computeMVP(pool []types.SeasonAggregate, in Inputs) Result {
	maxes := statMaxes(pool)
	maxWins := 0
	for _, w := range in.TeamWins {
		if w > maxWins {
			maxWins = w
		}
	}
	defLo, defHi := defRange(pool, in.DefRatings)

	candidates := make([]Candidate, 0, len(pool))
	for _, a := range pool {
		c := Candidate{Player: a.Player, Team: a.Team, PPG: a.PPG(), APG: a.APG(), RPG: a.RPG(), SPG: a.SPG(), BPG: a.BPG()}
		def := float64(in.DefRatings[a.Player])
		wins := float64(in.TeamWins[a.Team])
		c.Score = 0.30*norm(c.PPG, maxes.ppg) + 0.15*norm(c.APG, maxes.apg) + 0.15*norm(c.RPG, maxes.rpg) +
			0.20*norm(wins, float64(maxWins)) + 0.075*norm(c.SPG, maxes.spg) + 0.075*norm(c.BPG, maxes.bpg) +
			0.05*normDef(def, defLo, defHi)
		candidates = append(candidates, c)
	}
	return topResult(candidates, 5)
}

func computeDPOY(pool []types.SeasonAggregate, in Inputs) Result {
	maxes := statMaxes(pool)
	maxWins := 0
	for _, w := range in.TeamWins {
		if w > maxWins {
			maxWins = w
		}
	}
	defLo, defHi := defRange(pool, in.DefRatings)

	candidates := make([]Candidate, 0, len(pool))
	for _, a := range pool {
		c := Candidate{Player: a.Player, Team: a.Team, PPG: a.PPG(), APG: a.APG(), RPG: a.RPG(), SPG: a.SPG(), BPG: a.BPG()}
		def := float64(in.DefRatings[a.Player])
		wins := float64(in.TeamWins[a.Team])
		c.Score = 0.35*norm(c.SPG, maxes.spg) + 0.35*norm(c.BPG, maxes.bpg) +
			0.20*normDef(def, defLo, defHi) + 0.10*norm(wins, float64(maxWins))
		candidates = append(candidates, c)
	}
	return topResult(candidates, 5)
}

// computeSixthMOY applies role-eligibility (mpg>=14, started<=20% of
// gp, sixth>=max(10, 25% of gp)) on top of the full aggregate set,
// fails closed when role counts are absent (spec §4.10).
func computeSixthMOY(aggregates []types.SeasonAggregate, in Inputs) Result {
	pool := make([]types.SeasonAggregate, 0)
	for _, a := range aggregates {
		if a.GP < MinGamesPlayed {
			continue
		}
		if !in.RoleCounted[a.Player] {
			continue
		}
		if a.MPG() < 14 {
			continue
		}
		if float64(a.Started) > 0.20*float64(a.GP) {
			continue
		}
		if float64(a.Sixth) < maxF(10, 0.25*float64(a.GP)) {
			continue
		}
		pool = append(pool, a)
	}

	maxes := statMaxes(pool)
	defLo, defHi := defRange(pool, in.DefRatings)

	candidates := make([]Candidate, 0, len(pool))
	for _, a := range pool {
		c := Candidate{Player: a.Player, Team: a.Team, PPG: a.PPG(), APG: a.APG(), RPG: a.RPG(), SPG: a.SPG(), BPG: a.BPG()}
		def := float64(in.DefRatings[a.Player])
		c.Score = 0.30*norm(c.PPG, maxes.ppg) + 0.15*norm(c.APG, maxes.apg) + 0.15*norm(c.RPG, maxes.rpg) +
			0.075*norm(c.SPG, maxes.spg) + 0.075*norm(c.BPG, maxes.bpg) + 0.05*normDef(def, defLo, defHi)
		candidates = append(candidates, c)
	}
	return topResult(candidates, 5)
}

// allNBA ranks the top 15 players by 1.0*ppg + 0.7*apg + 0.5*rpg and
// partitions them into three 5-player teams (spec §4.10).
func allNBA(pool []types.SeasonAggregate) [3][]string {
	type scored struct {
		name  string
		score float64
	}
	scoredList := make([]scored, 0, len(pool))
	for _, a := range pool {
		scoredList = append(scoredList, scored{name: a.Player, score: 1.0*a.PPG() + 0.7*a.APG() + 0.5*a.RPG()})
	}
	sort.SliceStable(scoredList, func(i, j int) bool { return scoredList[i].score > scoredList[j].score })

	var teams [3][]string
	for i := 0; i < len(scoredList) && i < 15; i++ {
		teams[i/5] = append(teams[i/5], scoredList[i].name)
	}
	return teams
}

func topResult(candidates []Candidate, n int) Result {
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].Score > candidates[j].Score })
	if len(candidates) > n {
		candidates = candidates[:n]
	}
	winner := ""
	if len(candidates) > 0 {
		winner = candidates[0].Player
	}
	return Result{Winner: winner, Race: candidates}
}
