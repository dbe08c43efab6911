package types

import "fmt"

// League is the top-level roster document: teams grouped by
// conference, plus the season year the rosters are current for
// (spec §6).
type League struct {
	Conferences map[string][]Team `json:"conferences"`
	SeasonYear  int               `json:"seasonYear,omitempty"`
}

// Teams flattens every conference into a single slice. Teams keep their
// order within a conference, but conferences come in Go's map range
// order, so the overall order can differ between calls; callers needing
// a stable display order should sort by name themselves.
func (l League) Teams() []Team {
	teams := make([]Team, 0)
	for _, ts := range l.Conferences {
		teams = append(teams, ts...)
	}
	return teams
}

func (l League) Validate() error {
	for conf, teams := range l.Conferences {
		for _, t := range teams {
			if err := t.Validate(); err != nil {
				return fmt.Errorf("conference %q: %w", conf, err)
			}
		}
	}
	return nil
}
