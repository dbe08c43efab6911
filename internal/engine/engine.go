// Package engine composes the curve, rating, lineup, score, shot, and
// box-synthesis components into the entry points the rest of the
// system calls: ComputeTeamRating, SimulateGame, NewLeagueContext,
// ComputeAwards, ComputeFinalsMVP and ApplyEndOfSeasonProgression
// (spec §6.1).
package engine

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"

	"github.com/RamanShrikant/basketball-manager/internal/awards"
	"github.com/RamanShrikant/basketball-manager/internal/boxsynth"
	"github.com/RamanShrikant/basketball-manager/internal/lineup"
	"github.com/RamanShrikant/basketball-manager/internal/percentile"
	"github.com/RamanShrikant/basketball-manager/internal/progression"
	"github.com/RamanShrikant/basketball-manager/internal/rating"
	"github.com/RamanShrikant/basketball-manager/internal/scoregen"
	"github.com/RamanShrikant/basketball-manager/pkg/types"
)

// otMinutesPerPlayer is the per-player minute addition for one overtime
// period (5 players x 5 minutes = 25 team-total minutes, spec §3).
const otMinutesPerPlayer = 5

// InvariantError marks a numeric invariant violated by a simulated
// game (e.g. a team's minutes not summing to its regulation+OT budget).
// The season driver retries the game on a fresh sub-seed when it sees
// one of these, rather than treating it as a fatal roster error.
type InvariantError struct {
	Detail string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant violated: %s", e.Detail)
}

// ComputeTeamRating derives {overall, off, def} for a team under a
// given minutes allocation (spec §4.3, exposed per §6.1).
func ComputeTeamRating(team types.Team, minutes types.MinutesAllocation) types.TeamRating {
	return rating.Compute(team, minutes)
}

// LeagueContext bundles the shared, read-only resources a game
// simulation needs beyond the two rosters: the per-36 percentile
// curves and league-wide averages (spec §5, §4.7).
type LeagueContext struct {
	Percentile *percentile.LeagueContext
	Averages   boxsynth.LeagueAverages
}

// NewLeagueContext builds a LeagueContext from the current set of
// league teams: the per-36 percentile samples (rebuilt whenever the
// roster changes) and the league-wide offensive-IQ/overall averages
// the turnover and foul models compare each player/team against.
func NewLeagueContext(teams []types.Team) LeagueContext {
	var ast, reb, stl, blk, offIQ, overall []float64
	for _, t := range teams {
		for _, p := range t.Players {
			ast = append(ast, float64(p.Attrs[types.AttrPassing]))
			reb = append(reb, float64(p.Attrs[types.AttrRebounding]))
			stl = append(stl, float64(p.Attrs[types.AttrSteal]))
			blk = append(blk, float64(p.Attrs[types.AttrBlock]))
			offIQ = append(offIQ, float64(p.Attrs[types.AttrOffensiveIQ]))
			overall = append(overall, float64(p.Overall))
		}
	}

	var avgOffIQ, avgOverall float64
	if len(offIQ) > 0 {
		avgOffIQ = stat.Mean(offIQ, nil)
		avgOverall = stat.Mean(overall, nil)
	}

	return LeagueContext{
		Percentile: percentile.NewLeagueContext(ast, reb, stl, blk),
		Averages:   boxsynth.LeagueAverages{OffIQ: avgOffIQ, Overall: avgOverall},
	}
}

// SimulateGame runs one full game between home and away: it builds
// each team's lineup and minutes via C4, derives ratings via C3, rolls
// the score via C5, and synthesizes both box scores via C6/C7/C8.
func SimulateGame(lc LeagueContext, home, away types.Team, rng *rand.Rand) (*types.GameResult, error) {
	if err := home.Validate(); err != nil {
		return nil, fmt.Errorf("home roster invalid: %w", err)
	}
	if err := away.Validate(); err != nil {
		return nil, fmt.Errorf("away roster invalid: %w", err)
	}

	homeLineup := lineup.Build(home)
	awayLineup := lineup.Build(away)

	homeRating := rating.Compute(home, homeLineup.Minutes)
	awayRating := rating.Compute(away, awayLineup.Minutes)

	score := scoregen.Generate(rng, homeRating, awayRating)

	if score.OTPeriods > 0 {
		extendForOvertime(homeLineup.Minutes, score.OTPeriods)
		extendForOvertime(awayLineup.Minutes, score.OTPeriods)
	}

	homeActive := activePlayers(home, homeLineup.Minutes)
	awayActive := activePlayers(away, awayLineup.Minutes)

	boxHome := boxsynth.Synthesize(rng, lc.Percentile, lc.Averages, home, homeActive, score.HomeFinal)
	boxAway := boxsynth.Synthesize(rng, lc.Percentile, lc.Averages, away, awayActive, score.AwayFinal)

	wantMinutes := rating.RegulationMinutes + otMinutesPerPlayer*5*score.OTPeriods
	if got := homeLineup.Minutes.Total(); got != wantMinutes {
		return nil, &InvariantError{Detail: fmt.Sprintf("home minutes total %d, want %d", got, wantMinutes)}
	}
	if got := awayLineup.Minutes.Total(); got != wantMinutes {
		return nil, &InvariantError{Detail: fmt.Sprintf("away minutes total %d, want %d", got, wantMinutes)}
	}

	return &types.GameResult{
		ID:           uuid.New(),
		HomeFinal:    score.HomeFinal,
		AwayFinal:    score.AwayFinal,
		QuartersHome: score.QuartersHome,
		QuartersAway: score.QuartersAway,
		OTPeriods:    score.OTPeriods,
		BoxHome:      boxHome,
		BoxAway:      boxAway,
	}, nil
}

// extendForOvertime gives each of the 5 players already carrying the
// most minutes an extra otMinutesPerPlayer per overtime period, so the
// team's total stays at 240 + 25*OT without disturbing the rating
// computed against the fixed regulation budget.
func extendForOvertime(minutes types.MinutesAllocation, otPeriods int) {
	type nm struct {
		name string
		min  int
	}
	ordered := make([]nm, 0, len(minutes))
	for name, m := range minutes {
		if m > 0 {
			ordered = append(ordered, nm{name, m})
		}
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].min > ordered[j].min })

	for i := 0; i < len(ordered) && i < 5; i++ {
		minutes[ordered[i].name] += otMinutesPerPlayer * otPeriods
	}
}

func activePlayers(team types.Team, minutes types.MinutesAllocation) []boxsynth.ActivePlayer {
	active := make([]boxsynth.ActivePlayer, 0, len(team.Players))
	for _, p := range team.Players {
		if m := minutes[p.Name]; m > 0 {
			active = append(active, boxsynth.ActivePlayer{Player: p, Minutes: m})
		}
	}
	return active
}

// ComputeAwards scores every season award (spec §4.10) from a season's
// frozen aggregates. Team win totals and per-player defensive ratings
// are derived from standings and rosters respectively, since the
// aggregates themselves carry neither.
func ComputeAwards(league *percentile.LeagueContext, aggregates []types.SeasonAggregate, teams []types.Team, standings []types.StandingsRow, year int) awards.Report {
	_ = league
	_ = year

	in := awards.Inputs{
		TeamWins:    teamWins(standings),
		DefRatings:  defRatings(teams),
		RoleCounted: roleCounted(aggregates),
	}
	return awards.Compute(aggregates, in)
}

// ComputeFinalsMVP scores the championship-series MVP race (spec
// §4.10) from the champion's roster and season aggregates.
func ComputeFinalsMVP(aggregates []types.SeasonAggregate, champion string, teams []types.Team, year int) awards.Result {
	_ = year
	return awards.FinalsMVP(aggregates, champion, defRatingsForTeam(teams, champion))
}

// ApplyEndOfSeasonProgression ages every roster by one offseason (spec
// §4.11) using that season's frozen aggregates for minutes/production
// weighting.
func ApplyEndOfSeasonProgression(league []types.Team, aggregates map[string]types.SeasonAggregate, settings progression.Settings, seed int64, year int) (progression.Result, error) {
	return progression.Apply(league, aggregates, settings, seed, year)
}

func teamWins(standings []types.StandingsRow) map[string]int {
	wins := make(map[string]int, len(standings))
	for _, row := range standings {
		wins[row.Team] = row.W
	}
	return wins
}

func defRatings(teams []types.Team) map[string]int {
	ratings := map[string]int{}
	for _, team := range teams {
		for _, p := range team.Players {
			ratings[p.Name] = p.DefRating
		}
	}
	return ratings
}

func defRatingsForTeam(teams []types.Team, name string) map[string]int {
	for _, team := range teams {
		if team.Name == name {
			ratings := make(map[string]int, len(team.Players))
			for _, p := range team.Players {
				ratings[p.Name] = p.DefRating
			}
			return ratings
		}
	}
	return map[string]int{}
}

// roleCounted marks every player who logged at least one qualifying
// sixth-man game this season, the input computeSixthMOY's role filter
// requires (spec §4.10).
func roleCounted(aggregates []types.SeasonAggregate) map[string]bool {
	counted := make(map[string]bool, len(aggregates))
	for _, a := range aggregates {
		counted[a.Player] = a.Sixth > 0
	}
	return counted
}
