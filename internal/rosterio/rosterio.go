// Package rosterio reads and writes the league's roster and results
// JSON documents (spec §6). Roster shape is the stable external
// contract; results documents are this engine's own output format.
package rosterio

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/RamanShrikant/basketball-manager/internal/awards"
	"github.com/RamanShrikant/basketball-manager/internal/progression"
	"github.com/RamanShrikant/basketball-manager/pkg/types"
)

// LoadLeague reads and validates a roster JSON document from path.
func LoadLeague(path string) (*types.League, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading roster file %q: %w", path, err)
	}

	league, err := ParseLeague(data)
	if err != nil {
		return nil, fmt.Errorf("roster file %q: %w", path, err)
	}
	return league, nil
}

// ParseLeague decodes a roster JSON document already in memory (the
// HTTP API's request body, in particular), validating it and filling
// in any team IDs the document didn't carry.
func ParseLeague(data []byte) (*types.League, error) {
	var league types.League
	if err := json.Unmarshal(data, &league); err != nil {
		return nil, fmt.Errorf("parsing roster: %w", err)
	}

	if err := league.Validate(); err != nil {
		return nil, err
	}

	for conf, teams := range league.Conferences {
		for i := range teams {
			if teams[i].ID == uuid.Nil {
				teams[i].ID = uuid.New()
			}
		}
		league.Conferences[conf] = teams
	}

	return &league, nil
}

// SaveLeague writes a roster JSON document to path, overwriting it.
func SaveLeague(path string, league *types.League) error {
	data, err := json.MarshalIndent(league, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling roster: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing roster file %q: %w", path, err)
	}
	return nil
}

// ResultsDocument is the season-end output shape: standings, frozen
// per-player aggregates, award winners, and the Finals MVP race
// (spec §6: `{ standings, players, awards, finals_mvp }`).
type ResultsDocument struct {
	Standings []types.StandingsRow    `json:"standings"`
	Players   []types.SeasonAggregate `json:"players"`
	Awards    awards.Report           `json:"awards"`
	FinalsMVP awards.Result           `json:"finals_mvp"`
}

// SaveResults writes a season's results document to path.
func SaveResults(path string, doc ResultsDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling results: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing results file %q: %w", path, err)
	}
	return nil
}

// ProgressionDocument records what an offseason progression run
// changed, for audit or a follow-on UI to display.
type ProgressionDocument struct {
	Year    int                        `json:"year"`
	Changes []progression.PlayerChange `json:"changes"`
}

// SaveProgression writes a progression run's diagnostics to path.
func SaveProgression(path string, doc ProgressionDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling progression result: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing progression file %q: %w", path, err)
	}
	return nil
}
