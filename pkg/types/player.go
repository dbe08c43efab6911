package types

import (
	"fmt"

	"github.com/google/uuid"
)

// Player is a league participant, identified by a stable name within its
// team. Ratings are expressed on the league's native 25-99 scale except
// ScoringRating, which floats in [0,100] (spec §3).
type Player struct {
	Name          string   `json:"name"`
	Pos           Position `json:"pos"`
	SecondaryPos  Position `json:"secondaryPos,omitempty"`
	Age           int      `json:"age"`
	Stamina       int      `json:"stamina"`
	Overall       int      `json:"overall"`
	OffRating     int      `json:"offRating"`
	DefRating     int      `json:"defRating"`
	ScoringRating float64  `json:"scoringRating"`
	Attrs         [NumAttrs]int `json:"attrs"`

	Potential        int      `json:"potential"`
	DevTrait         DevTrait `json:"dev_trait"`
	BirthMonth       int      `json:"birthMonth"`
	BirthDay         int      `json:"birthDay"`
	LastBirthdayYear int      `json:"lastBirthdayYear"`
}

// HasSecondary reports whether the player carries a usable secondary
// position distinct from their primary.
func (p Player) HasSecondary() bool {
	return p.SecondaryPos.Valid() && p.SecondaryPos != p.Pos
}

// CoversPosition reports whether this player can occupy slot pos, either
// as a primary or secondary assignment.
func (p Player) CoversPosition(pos Position) bool {
	return p.Pos == pos || (p.HasSecondary() && p.SecondaryPos == pos)
}

// Validate enforces the invariants from spec §3: ratings stay in
// [25,99] (ScoringRating in [0,100]), pos is always set, attrs has the
// full 15 stable slots (guaranteed here by the fixed-size array type).
func (p Player) Validate() error {
	if !p.Pos.Valid() {
		return fmt.Errorf("player %q: invalid position %q", p.Name, p.Pos)
	}
	if p.SecondaryPos != "" && !p.SecondaryPos.Valid() {
		return fmt.Errorf("player %q: invalid secondary position %q", p.Name, p.SecondaryPos)
	}
	if err := checkRange(p.Name, "stamina", p.Stamina, 25, 99); err != nil {
		return err
	}
	if err := checkRange(p.Name, "overall", p.Overall, 25, 99); err != nil {
		return err
	}
	if err := checkRange(p.Name, "offRating", p.OffRating, 25, 99); err != nil {
		return err
	}
	if err := checkRange(p.Name, "defRating", p.DefRating, 25, 99); err != nil {
		return err
	}
	if p.ScoringRating < 0 || p.ScoringRating > 100 {
		return fmt.Errorf("player %q: scoringRating %v out of [0,100]", p.Name, p.ScoringRating)
	}
	for i, v := range p.Attrs {
		if v < 25 || v > 99 {
			return fmt.Errorf("player %q: attrs[%d]=%d out of [25,99]", p.Name, i, v)
		}
	}
	return nil
}

func checkRange(player, field string, v, lo, hi int) error {
	if v < lo || v > hi {
		return fmt.Errorf("player %q: %s=%d out of [%d,%d]", player, field, v, lo, hi)
	}
	return nil
}

// Team is a name plus an ordered player roster. Teams carry no mutable
// state between games; all per-game mutation is local to the
// simulation (spec §3). ID is assigned by rosterio on load if the
// roster document doesn't already carry one, so callers (the HTTP API,
// gorm persistence) have a stable handle beyond the display name.
type Team struct {
	ID      uuid.UUID `json:"id,omitempty"`
	Name    string    `json:"name"`
	Players []Player  `json:"players"`
}

func (t Team) Validate() error {
	for _, p := range t.Players {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("team %q: %w", t.Name, err)
		}
	}
	return nil
}

func (t Team) FindPlayer(name string) (Player, bool) {
	for _, p := range t.Players {
		if p.Name == name {
			return p, true
		}
	}
	return Player{}, false
}

// MinutesAllocation maps a player name to the minutes they play in a
// single game. Σminutes must equal 240 + 25·OT across the roster.
type MinutesAllocation map[string]int

func (m MinutesAllocation) Total() int {
	total := 0
	for _, v := range m {
		total += v
	}
	return total
}
