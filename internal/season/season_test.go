package season

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RamanShrikant/basketball-manager/internal/boxsynth"
	"github.com/RamanShrikant/basketball-manager/internal/engine"
	"github.com/RamanShrikant/basketball-manager/internal/percentile"
	"github.com/RamanShrikant/basketball-manager/pkg/types"
)

func seasonPlayer(name string, pos types.Position, overall int) types.Player {
	p := types.Player{
		Name: name, Pos: pos, Age: 25, Stamina: 78,
		Overall: overall, OffRating: overall, DefRating: overall, ScoringRating: float64(overall) - 10,
	}
	for i := range p.Attrs {
		p.Attrs[i] = overall
	}
	return p
}

func seasonRoster(prefix string, overall int) types.Team {
	return types.Team{
		Name: prefix,
		Players: []types.Player{
			seasonPlayer(prefix+"PG1", types.PG, overall),
			seasonPlayer(prefix+"SG1", types.SG, overall-2),
			seasonPlayer(prefix+"SF1", types.SF, overall-1),
			seasonPlayer(prefix+"PF1", types.PF, overall-3),
			seasonPlayer(prefix+"C1", types.C, overall+1),
			seasonPlayer(prefix+"PG2", types.PG, overall-10),
			seasonPlayer(prefix+"SG2", types.SG, overall-12),
			seasonPlayer(prefix+"SF2", types.SF, overall-11),
			seasonPlayer(prefix+"PF2", types.PF, overall-13),
			seasonPlayer(prefix+"C2", types.C, overall-9),
		},
	}
}

func testLeagueContext() engine.LeagueContext {
	ratings := []float64{50, 60, 70, 75, 80, 85, 90}
	return engine.LeagueContext{
		Percentile: percentile.NewLeagueContext(ratings, ratings, ratings, ratings),
		Averages:   boxsynth.LeagueAverages{OffIQ: 72, Overall: 75},
	}
}

func TestRunProducesCompleteStandings(t *testing.T) {
	teams := []types.Team{
		seasonRoster("Alpha", 82),
		seasonRoster("Bravo", 78),
		seasonRoster("Charlie", 74),
	}
	lc := testLeagueContext()

	result, err := Run(lc, teams, 4, 1, 2, nil)
	require.NoError(t, err)

	assert.Len(t, result.Standings, 3)
	for _, row := range result.Standings {
		assert.Equal(t, 8, row.G)
		assert.Equal(t, row.G, row.W+row.L)
	}
	assert.NotEmpty(t, result.Aggregates)
}

func TestRunWithRetryBoundProducesSameShapeAsRun(t *testing.T) {
	teams := []types.Team{
		seasonRoster("Alpha", 82),
		seasonRoster("Bravo", 78),
	}
	lc := testLeagueContext()

	result, err := RunWithRetryBound(lc, teams, 3, 5, 2, 2, nil)
	require.NoError(t, err)
	assert.Len(t, result.Standings, 2)
	assert.NotEmpty(t, result.Aggregates)
}

func TestSimulateWithRetrySucceedsWithinBound(t *testing.T) {
	teams := []types.Team{seasonRoster("Alpha", 82), seasonRoster("Bravo", 78)}
	lc := testLeagueContext()
	job := matchupJob{home: teams[0], away: teams[1]}

	rng := rand.New(rand.NewSource(1))
	result, err := simulateWithRetry(lc, job, rng, DefaultRetryBound)
	require.NoError(t, err)
	assert.NotNil(t, result)
}

func TestRunStandingsSortedByWinPctThenDiff(t *testing.T) {
	teams := []types.Team{
		seasonRoster("Strong", 95),
		seasonRoster("Weak", 55),
	}
	lc := testLeagueContext()

	result, err := Run(lc, teams, 10, 2, 2, nil)
	require.NoError(t, err)
	require.Len(t, result.Standings, 2)
	assert.GreaterOrEqual(t, result.Standings[0].WinPct(), result.Standings[1].WinPct())
}
