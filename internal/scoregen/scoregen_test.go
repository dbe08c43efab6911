package scoregen

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/RamanShrikant/basketball-manager/pkg/types"
)

func TestGenerateStaysWithinScoreBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	home := types.TeamRating{Overall: 85, Off: 85, Def: 80}
	away := types.TeamRating{Overall: 75, Off: 75, Def: 75}

	for i := 0; i < 50; i++ {
		r := Generate(rng, home, away)
		assert.GreaterOrEqual(t, r.HomeFinal, 85)
		assert.LessOrEqual(t, r.HomeFinal, 150)
		assert.GreaterOrEqual(t, r.AwayFinal, 85)
		assert.LessOrEqual(t, r.AwayFinal, 150)
		assert.NotEqual(t, r.HomeFinal, r.AwayFinal)
	}
}

func TestGenerateQuartersSumToFinal(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	home := types.TeamRating{Overall: 80, Off: 80, Def: 80}
	away := types.TeamRating{Overall: 80, Off: 80, Def: 80}

	for i := 0; i < 50; i++ {
		r := Generate(rng, home, away)
		hs, as := 0, 0
		for _, v := range r.QuartersHome {
			hs += v
		}
		for _, v := range r.QuartersAway {
			as += v
		}
		assert.Equal(t, r.HomeFinal, hs)
		assert.Equal(t, r.AwayFinal, as)
		assert.Len(t, r.QuartersHome, 4+r.OTPeriods)
		assert.Len(t, r.QuartersAway, 4+r.OTPeriods)
	}
}

func TestGenerateEvenMatchupIsRoughlyBalanced(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	home := types.TeamRating{Overall: 80, Off: 80, Def: 80}
	away := types.TeamRating{Overall: 80, Off: 80, Def: 80}

	homeWins := 0
	const n = 200
	for i := 0; i < n; i++ {
		r := Generate(rng, home, away)
		if r.HomeFinal > r.AwayFinal {
			homeWins++
		}
	}
	assert.InDelta(t, n/2, homeWins, float64(n)*0.25)
}
