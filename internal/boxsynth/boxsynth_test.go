package boxsynth

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/RamanShrikant/basketball-manager/internal/percentile"
	"github.com/RamanShrikant/basketball-manager/pkg/types"
)

func synthPlayer(name string, pos types.Position) types.Player {
	p := types.Player{
		Name: name, Pos: pos, Age: 26, Stamina: 80,
		Overall: 78, OffRating: 78, DefRating: 78, ScoringRating: 65,
	}
	for i := range p.Attrs {
		p.Attrs[i] = 70
	}
	return p
}

func fiveManRoster() types.Team {
	return types.Team{
		Name: "Test",
		Players: []types.Player{
			synthPlayer("A", types.PG),
			synthPlayer("B", types.SG),
			synthPlayer("C", types.SF),
			synthPlayer("D", types.PF),
			synthPlayer("E", types.C),
			synthPlayer("Bench", types.SG),
		},
	}
}

func testLeagueContext() *percentile.LeagueContext {
	ratings := []float64{50, 60, 70, 80, 90}
	return percentile.NewLeagueContext(ratings, ratings, ratings, ratings)
}

func TestSynthesizePointsSumToTeamFinal(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	roster := fiveManRoster()
	lc := testLeagueContext()
	league := LeagueAverages{OffIQ: 70, Overall: 75}

	active := []ActivePlayer{
		{Player: roster.Players[0], Minutes: 48},
		{Player: roster.Players[1], Minutes: 48},
		{Player: roster.Players[2], Minutes: 48},
		{Player: roster.Players[3], Minutes: 48},
		{Player: roster.Players[4], Minutes: 48},
	}

	lines := Synthesize(rng, lc, league, roster, active, 110)

	sum := 0
	for _, l := range lines {
		sum += l.Pts
		assert.GreaterOrEqual(t, l.Fga, l.Fgm)
		assert.GreaterOrEqual(t, l.Tpa, l.Tpm)
		assert.GreaterOrEqual(t, l.Fta, l.Ftm)
		assert.LessOrEqual(t, l.Pf, 6)
	}
	assert.Equal(t, 110, sum)
}

func TestSynthesizeInactivePlayersGetZeroLines(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	roster := fiveManRoster()
	lc := testLeagueContext()
	league := LeagueAverages{OffIQ: 70, Overall: 75}

	active := []ActivePlayer{
		{Player: roster.Players[0], Minutes: 48},
		{Player: roster.Players[1], Minutes: 48},
		{Player: roster.Players[2], Minutes: 48},
		{Player: roster.Players[3], Minutes: 48},
		{Player: roster.Players[4], Minutes: 48},
	}

	lines := Synthesize(rng, lc, league, roster, active, 100)

	for _, l := range lines {
		if l.Player == "Bench" {
			assert.Equal(t, 0, l.Min)
			assert.Equal(t, 0, l.Pts)
		}
	}
}
