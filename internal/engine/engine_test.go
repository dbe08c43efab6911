package engine

import (
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RamanShrikant/basketball-manager/internal/boxsynth"
	"github.com/RamanShrikant/basketball-manager/internal/percentile"
	"github.com/RamanShrikant/basketball-manager/pkg/types"
)

func fullPlayer(name string, pos types.Position, overall int) types.Player {
	p := types.Player{
		Name: name, Pos: pos, Age: 26, Stamina: 78,
		Overall: overall, OffRating: overall, DefRating: overall, ScoringRating: float64(overall) - 10,
	}
	for i := range p.Attrs {
		p.Attrs[i] = overall
	}
	return p
}

func fullRoster(namePrefix string, overall int) types.Team {
	return types.Team{
		Name: namePrefix,
		Players: []types.Player{
			fullPlayer(namePrefix+"PG1", types.PG, overall),
			fullPlayer(namePrefix+"SG1", types.SG, overall-2),
			fullPlayer(namePrefix+"SF1", types.SF, overall-1),
			fullPlayer(namePrefix+"PF1", types.PF, overall-3),
			fullPlayer(namePrefix+"C1", types.C, overall+1),
			fullPlayer(namePrefix+"PG2", types.PG, overall-10),
			fullPlayer(namePrefix+"SG2", types.SG, overall-12),
			fullPlayer(namePrefix+"SF2", types.SF, overall-11),
			fullPlayer(namePrefix+"PF2", types.PF, overall-13),
			fullPlayer(namePrefix+"C2", types.C, overall-9),
			fullPlayer(namePrefix+"Bench1", types.SG, overall-20),
			fullPlayer(namePrefix+"Bench2", types.PF, overall-20),
		},
	}
}

func testLeague() LeagueContext {
	ratings := []float64{50, 60, 70, 75, 80, 85, 90}
	return LeagueContext{
		Percentile: percentile.NewLeagueContext(ratings, ratings, ratings, ratings),
		Averages:   boxsynth.LeagueAverages{OffIQ: 72, Overall: 75},
	}
}

func TestSimulateGameProducesConsistentInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	home := fullRoster("H", 82)
	away := fullRoster("A", 78)
	lc := testLeague()

	for i := 0; i < 10; i++ {
		result, err := SimulateGame(lc, home, away, rng)
		require.NoError(t, err)

		assert.NotEqual(t, result.HomeFinal, result.AwayFinal)

		homePts, awayPts := 0, 0
		homeMin, awayMin := 0, 0
		for _, l := range result.BoxHome {
			homePts += l.Pts
			homeMin += l.Min
			assert.LessOrEqual(t, l.Pf, 6)
		}
		for _, l := range result.BoxAway {
			awayPts += l.Pts
			awayMin += l.Min
		}

		assert.Equal(t, result.HomeFinal, homePts)
		assert.Equal(t, result.AwayFinal, awayPts)
		assert.Equal(t, 240+25*result.OTPeriods, homeMin)
		assert.Equal(t, 240+25*result.OTPeriods, awayMin)
	}
}

func TestNewLeagueContextBuildsFromRosters(t *testing.T) {
	home := fullRoster("H", 82)
	away := fullRoster("A", 70)

	lc := NewLeagueContext([]types.Team{home, away})
	require.NotNil(t, lc.Percentile)
	assert.Greater(t, lc.Averages.Overall, 0.0)
	assert.Greater(t, lc.Averages.OffIQ, 0.0)

	rng := rand.New(rand.NewSource(7))
	result, err := SimulateGame(lc, home, away, rng)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, result.ID)
}

func TestComputeTeamRatingWithinBounds(t *testing.T) {
	home := fullRoster("H", 82)
	minutes := types.MinutesAllocation{}
	for _, p := range home.Players[:5] {
		minutes[p.Name] = 48
	}

	r := ComputeTeamRating(home, minutes)
	assert.GreaterOrEqual(t, r.Overall, 25)
	assert.LessOrEqual(t, r.Overall, 99)
}
