package database

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/RamanShrikant/basketball-manager/pkg/types"
)

// SeasonRecord persists the identity of one completed season run, for
// a caller that wants season history without re-deriving it from the
// results JSON each time.
type SeasonRecord struct {
	ID              uint `gorm:"primaryKey"`
	Year            int  `gorm:"index"`
	GamesPerMatchup int
	Seed            int64
	CreatedAt       time.Time
}

// StandingsRecord persists one team's final record for a season,
// keyed back to its SeasonRecord.
type StandingsRecord struct {
	ID       uint `gorm:"primaryKey"`
	SeasonID uint `gorm:"index"`
	Team     string
	W        int
	L        int
	PF       int
	PA       int
	G        int
}

// SaveSeasonResult persists a season run and its final standings in a
// single transaction.
func (db *DB) SaveSeasonResult(year int, gamesPerMatchup int, seed int64, standings []types.StandingsRow) error {
	record := SeasonRecord{Year: year, GamesPerMatchup: gamesPerMatchup, Seed: seed, CreatedAt: time.Now().UTC()}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&record).Error; err != nil {
			return fmt.Errorf("saving season record: %w", err)
		}

		rows := make([]StandingsRecord, 0, len(standings))
		for _, s := range standings {
			rows = append(rows, StandingsRecord{
				SeasonID: record.ID, Team: s.Team, W: s.W, L: s.L, PF: s.PF, PA: s.PA, G: s.G,
			})
		}
		if len(rows) > 0 {
			if err := tx.Create(&rows).Error; err != nil {
				return fmt.Errorf("saving standings records: %w", err)
			}
		}
		return nil
	})
}
