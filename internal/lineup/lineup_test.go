package lineup

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/RamanShrikant/basketball-manager/pkg/types"
)

func rosterPlayer(name string, pos types.Position, overall, stamina int) types.Player {
	return types.Player{
		Name: name, Pos: pos, Age: 26, Stamina: stamina,
		Overall: overall, OffRating: overall, DefRating: overall,
		ScoringRating: float64(overall),
	}
}

func twelvePlayerRoster() types.Team {
	return types.Team{
		Name: "Test",
		Players: []types.Player{
			rosterPlayer("PG1", types.PG, 85, 80),
			rosterPlayer("SG1", types.SG, 82, 78),
			rosterPlayer("SF1", types.SF, 80, 75),
			rosterPlayer("PF1", types.PF, 78, 75),
			rosterPlayer("C1", types.C, 83, 70),
			rosterPlayer("PG2", types.PG, 72, 80),
			rosterPlayer("SG2", types.SG, 70, 78),
			rosterPlayer("SF2", types.SF, 69, 75),
			rosterPlayer("PF2", types.PF, 68, 75),
			rosterPlayer("C2", types.C, 71, 70),
			rosterPlayer("Bench1", types.SG, 60, 70),
			rosterPlayer("Bench2", types.PF, 58, 70),
		},
	}
}

func TestBuildProducesFiveDistinctStarters(t *testing.T) {
	team := twelvePlayerRoster()
	l := Build(team)

	seen := map[string]bool{}
	for _, s := range l.Starters {
		assert.NotEmpty(t, s)
		assert.False(t, seen[s], "starter %s repeated", s)
		seen[s] = true
	}
}

func TestBuildMinutesSumToRegulationBudget(t *testing.T) {
	team := twelvePlayerRoster()
	l := Build(team)

	total := 0
	for _, m := range l.Minutes {
		total += m
	}
	assert.Equal(t, 240, total)
}

func TestBuildOrdersEntireRoster(t *testing.T) {
	team := twelvePlayerRoster()
	l := Build(team)
	assert.Len(t, l.Order, len(team.Players))
}

func TestBuildRotationCappedAtTen(t *testing.T) {
	team := twelvePlayerRoster()
	l := Build(team)

	active := 0
	for _, m := range l.Minutes {
		if m > 0 {
			active++
		}
	}
	assert.LessOrEqual(t, active, RotationSize)
}
