package progression

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RamanShrikant/basketball-manager/pkg/types"
)

func progressionPlayer(name string, age int) types.Player {
	p := types.Player{
		Name: name, Pos: types.PG, Age: age, Stamina: 75,
		Overall: 70, OffRating: 70, DefRating: 70, ScoringRating: 60,
		Potential: 70, DevTrait: types.Normal,
	}
	for i := range p.Attrs {
		p.Attrs[i] = 70
	}
	return p
}

func TestApplyIncrementsAgeOncePerYear(t *testing.T) {
	league := []types.Team{{
		Name:    "Alpha",
		Players: []types.Player{progressionPlayer("Rookie", 22)},
	}}
	aggregates := map[string]types.SeasonAggregate{}

	_, err := Apply(league, aggregates, Settings{}, 1, 2030)
	require.NoError(t, err)
	assert.Equal(t, 23, league[0].Players[0].Age)

	_, err = Apply(league, aggregates, Settings{}, 2, 2030)
	require.NoError(t, err)
	assert.Equal(t, 23, league[0].Players[0].Age, "same year must not age a player twice")

	_, err = Apply(league, aggregates, Settings{}, 3, 2031)
	require.NoError(t, err)
	assert.Equal(t, 24, league[0].Players[0].Age)
}

func TestApplyKeepsAttrsWithinBounds(t *testing.T) {
	league := []types.Team{{
		Name:    "Alpha",
		Players: []types.Player{progressionPlayer("Vet", 38)},
	}}
	aggregates := map[string]types.SeasonAggregate{
		"Alpha|Vet": {Player: "Vet", Team: "Alpha", GP: 70, Min: 70 * 30, Pts: 70 * 18, Ast: 70 * 4, Reb: 70 * 5, Stl: 70, Blk: 70},
	}

	result, err := Apply(league, aggregates, Settings{}, 7, 2030)
	require.NoError(t, err)
	require.Len(t, result.Changes, 1)

	p := league[0].Players[0]
	for i, v := range p.Attrs {
		assert.GreaterOrEqual(t, v, 25, "attr %d below floor", i)
		assert.LessOrEqual(t, v, 99, "attr %d above ceiling", i)
	}
	assert.GreaterOrEqual(t, p.Overall, 25)
	assert.LessOrEqual(t, p.Overall, 99)
	assert.GreaterOrEqual(t, p.ScoringRating, 0.0)
	assert.LessOrEqual(t, p.ScoringRating, 100.0)
}

func TestApplyYoungStarTrendsUpward(t *testing.T) {
	league := []types.Team{{
		Name:    "Alpha",
		Players: []types.Player{progressionPlayer("Prospect", 20)},
	}}
	league[0].Players[0].Potential = 95
	league[0].Players[0].DevTrait = types.Star
	aggregates := map[string]types.SeasonAggregate{
		"Alpha|Prospect": {Player: "Prospect", Team: "Alpha", GP: 70, Min: 70 * 32, Pts: 70 * 22, Ast: 70 * 5, Reb: 70 * 6, Stl: 70, Blk: 70},
	}

	before := league[0].Players[0].Overall
	_, err := Apply(league, aggregates, Settings{}, 11, 2030)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, league[0].Players[0].Overall, before)
}

func TestMinFactorForScalesWithPlayingTime(t *testing.T) {
	assert.Equal(t, 1.0, minFactorFor(types.SeasonAggregate{}))
	assert.InDelta(t, 0.15, minFactorFor(types.SeasonAggregate{GP: 10, Min: 10 * 5}), 1e-9)
	assert.InDelta(t, 1.0, minFactorFor(types.SeasonAggregate{GP: 10, Min: 10 * 30}), 1e-9)

	mid := minFactorFor(types.SeasonAggregate{GP: 10, Min: 10 * 17})
	assert.Greater(t, mid, 0.15)
	assert.Less(t, mid, 1.0)
}
