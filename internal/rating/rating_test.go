package rating

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/RamanShrikant/basketball-manager/pkg/types"
)

func starterPlayer(name string, pos types.Position, overall int) types.Player {
	return types.Player{
		Name: name, Pos: pos, Age: 26, Stamina: 75,
		Overall: overall, OffRating: overall, DefRating: overall,
		ScoringRating: float64(overall),
	}
}

func fiveStarters(overall int) types.Team {
	return types.Team{
		Name: "Test",
		Players: []types.Player{
			starterPlayer("A", types.PG, overall),
			starterPlayer("B", types.SG, overall),
			starterPlayer("C", types.SF, overall),
			starterPlayer("D", types.PF, overall),
			starterPlayer("E", types.C, overall),
		},
	}
}

func fullMinutes(team types.Team) types.MinutesAllocation {
	m := types.MinutesAllocation{}
	for _, p := range team.Players {
		m[p.Name] = 48
	}
	return m
}

func TestComputeStaysInRange(t *testing.T) {
	team := fiveStarters(75)
	r := Compute(team, fullMinutes(team))
	assert.GreaterOrEqual(t, r.Overall, 25)
	assert.LessOrEqual(t, r.Overall, 99)
	assert.GreaterOrEqual(t, r.Off, 25)
	assert.LessOrEqual(t, r.Off, 99)
}

func TestHigherOverallYieldsHigherRating(t *testing.T) {
	low := fiveStarters(70)
	high := fiveStarters(85)

	rLow := Compute(low, fullMinutes(low))
	rHigh := Compute(high, fullMinutes(high))

	assert.Greater(t, rHigh.Overall, rLow.Overall)
}

func TestPoorCoverageHurtsRating(t *testing.T) {
	team := fiveStarters(80)
	full := fullMinutes(team)

	uneven := types.MinutesAllocation{}
	for name := range full {
		uneven[name] = 0
	}
	uneven["A"] = 240

	rFull := Compute(team, full)
	rUneven := Compute(team, uneven)
	assert.Less(t, rUneven.Overall, rFull.Overall)
}
