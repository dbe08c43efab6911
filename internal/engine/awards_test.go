package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RamanShrikant/basketball-manager/internal/progression"
	"github.com/RamanShrikant/basketball-manager/pkg/types"
)

func TestComputeAwardsUsesStandingsForTeamWins(t *testing.T) {
	teams := []types.Team{fullRoster("H", 82), fullRoster("A", 70)}
	standings := []types.StandingsRow{
		{Team: "H", W: 50, L: 10, G: 60, PF: 6000, PA: 5500},
		{Team: "A", W: 20, L: 40, G: 60, PF: 5000, PA: 5600},
	}
	aggregates := []types.SeasonAggregate{
		{Player: "HPG1", Team: "H", GP: 60, Min: 60 * 34, Pts: 60 * 26, Ast: 60 * 6, Reb: 60 * 5, Stl: 60, Blk: 60},
		{Player: "APG1", Team: "A", GP: 60, Min: 60 * 30, Pts: 60 * 18, Ast: 60 * 5, Reb: 60 * 4, Stl: 60, Blk: 60},
	}

	report := ComputeAwards(nil, aggregates, teams, standings, 2030)
	assert.Equal(t, "HPG1", report.MVP.Winner)
}

func TestComputeFinalsMVPRestrictsToChampionRoster(t *testing.T) {
	teams := []types.Team{fullRoster("H", 82), fullRoster("A", 70)}
	aggregates := []types.SeasonAggregate{
		{Player: "HPG1", Team: "H", GP: 10, Min: 10 * 34, Pts: 10 * 26, Ast: 10 * 6, Reb: 10 * 5, Stl: 10, Blk: 10},
		{Player: "APG1", Team: "A", GP: 10, Min: 10 * 34, Pts: 10 * 30, Ast: 10 * 6, Reb: 10 * 5, Stl: 10, Blk: 10},
	}

	result := ComputeFinalsMVP(aggregates, "H", teams, 2030)
	assert.Equal(t, "HPG1", result.Winner)
	assert.Len(t, result.Race, 1)
}

func TestApplyEndOfSeasonProgressionAgesRoster(t *testing.T) {
	teams := []types.Team{fullRoster("H", 82)}
	aggregates := map[string]types.SeasonAggregate{}

	before := teams[0].Players[0].Age
	result, err := ApplyEndOfSeasonProgression(teams, aggregates, progression.Settings{}, 5, 2030)
	require.NoError(t, err)

	assert.Equal(t, before+1, teams[0].Players[0].Age)
	assert.NotEmpty(t, result.Changes)
}
