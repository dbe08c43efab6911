package awards

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/RamanShrikant/basketball-manager/pkg/types"
)

func aggWithRates(player, team string, gp, pts, ast, reb, stl, blk int) types.SeasonAggregate {
	return types.SeasonAggregate{
		Player: player, Team: team, GP: gp, Min: gp * 32,
		Pts: pts, Ast: ast, Reb: reb, Stl: stl, Blk: blk,
		Started: gp, Sixth: 0,
	}
}

func TestComputeMVPPicksHighestScorer(t *testing.T) {
	aggregates := []types.SeasonAggregate{
		aggWithRates("Star", "Alpha", 60, 1800, 300, 360, 60, 30),
		aggWithRates("Role", "Alpha", 60, 600, 120, 180, 30, 12),
	}
	in := Inputs{
		TeamWins:   map[string]int{"Alpha": 50},
		DefRatings: map[string]int{"Star": 80, "Role": 70},
	}

	report := Compute(aggregates, in)
	assert.Equal(t, "Star", report.MVP.Winner)
	assert.LessOrEqual(t, len(report.MVP.Race), 5)
}

func TestSixthMOYFailsClosedWithoutRoleCounts(t *testing.T) {
	aggregates := []types.SeasonAggregate{
		aggWithRates("Bench", "Alpha", 60, 900, 120, 180, 30, 12),
	}
	in := Inputs{
		TeamWins:    map[string]int{"Alpha": 50},
		DefRatings:  map[string]int{"Bench": 70},
		RoleCounted: map[string]bool{},
	}

	report := Compute(aggregates, in)
	assert.Equal(t, "", report.SixthMOY.Winner)
}

func TestAllNBAPartitionsIntoThreeFives(t *testing.T) {
	aggregates := make([]types.SeasonAggregate, 20)
	for i := range aggregates {
		aggregates[i] = aggWithRates("P"+string(rune('A'+i)), "Alpha", 60, 1000+i*10, 200, 300, 40, 20)
	}
	teams := allNBA(aggregates)
	assert.Len(t, teams[0], 5)
	assert.Len(t, teams[1], 5)
	assert.Len(t, teams[2], 5)
}

func TestFinalsMVPRestrictsToChampionTeam(t *testing.T) {
	aggregates := []types.SeasonAggregate{
		aggWithRates("Champ", "Alpha", 20, 500, 80, 100, 20, 10),
		aggWithRates("Other", "Bravo", 20, 900, 80, 100, 20, 10),
	}
	result := FinalsMVP(aggregates, "Alpha", map[string]int{"Champ": 80, "Other": 90})
	assert.Equal(t, "Champ", result.Winner)
	assert.Len(t, result.Race, 1)
}
