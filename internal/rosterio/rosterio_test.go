package rosterio

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RamanShrikant/basketball-manager/pkg/types"
)

func samplePlayer(name string) types.Player {
	p := types.Player{
		Name: name, Pos: types.PG, Age: 24, Stamina: 78,
		Overall: 80, OffRating: 80, DefRating: 75, ScoringRating: 70,
	}
	for i := range p.Attrs {
		p.Attrs[i] = 75
	}
	return p
}

func TestSaveThenLoadLeagueRoundTrips(t *testing.T) {
	league := &types.League{
		Conferences: map[string][]types.Team{
			"East": {{Name: "Alpha", Players: []types.Player{samplePlayer("Guard1")}}},
		},
		SeasonYear: 2031,
	}

	path := filepath.Join(t.TempDir(), "roster.json")
	require.NoError(t, SaveLeague(path, league))

	loaded, err := LoadLeague(path)
	require.NoError(t, err)
	assert.Equal(t, 2031, loaded.SeasonYear)
	assert.Len(t, loaded.Teams(), 1)
	assert.Equal(t, "Guard1", loaded.Teams()[0].Players[0].Name)
}

func TestLoadLeagueAssignsMissingTeamIDs(t *testing.T) {
	league := &types.League{
		Conferences: map[string][]types.Team{
			"East": {{Name: "Alpha", Players: []types.Player{samplePlayer("Guard1")}}},
		},
	}

	path := filepath.Join(t.TempDir(), "roster.json")
	require.NoError(t, SaveLeague(path, league))

	loaded, err := LoadLeague(path)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, loaded.Teams()[0].ID)
}

func TestLoadLeagueRejectsInvalidRoster(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	league := &types.League{
		Conferences: map[string][]types.Team{
			"East": {{Name: "Alpha", Players: []types.Player{{Name: "Bad", Pos: "ZZ"}}}},
		},
	}
	require.NoError(t, SaveLeague(path, league))

	_, err := LoadLeague(path)
	assert.Error(t, err)
}
