// Package scoregen turns two teams' ratings into a final score and a
// quarter-by-quarter (plus overtime) split (spec §4.5).
package scoregen

import (
	"math"
	"math/rand"

	"github.com/RamanShrikant/basketball-manager/internal/curves"
	"github.com/RamanShrikant/basketball-manager/pkg/types"
)

const (
	offMean       = 80.0
	defMean       = 80.0
	baseO         = 110.5
	offCoef       = 0.545
	defCoef       = 0.61
	margPerOvr    = 0.26
	styleMarginK  = 0.20
	totalSkewK    = 0.42
	otMeanPoints  = 12.0
	otSigmaPoints = 3.0
)

// Result is the fully-resolved score of a simulated game: final
// points, and the quarter (plus overtime) splits behind them.
type Result struct {
	HomeFinal    int
	AwayFinal    int
	QuartersHome []int
	QuartersAway []int
	OTPeriods    int
}

// Generate simulates one game's score between home team A and away
// team B given their {overall, off, def} ratings (spec §4.5).
func Generate(rng *rand.Rand, home, away types.TeamRating) Result {
	offA, defA, ovrA := float64(home.Off), float64(home.Def), float64(home.Overall)
	offB, defB, ovrB := float64(away.Off), float64(away.Def), float64(away.Overall)

	muA := baseO + offCoef*(offA-offMean) - defCoef*(defB-defMean)
	muB := baseO + offCoef*(offB-offMean) - defCoef*(defA-defMean)

	pace := curves.Clamp(1+0.0029*(offA+offB-160)-0.0032*(defA+defB-160), 0.83, 1.05)
	muTotal := (muA + muB) * pace

	d := math.Abs(ovrA - ovrB)

	m := margPerOvr*(ovrA-ovrB) + styleMarginK*((offA-defB)-(offB-defA))
	m /= 1 + 0.018*d

	favoredIsHome := m >= 0
	var favOff, favDef float64
	if favoredIsHome {
		favOff, favDef = offA, defA
	} else {
		favOff, favDef = offB, defB
	}
	skew := totalSkewK * ((favOff - 80) - (favDef - 80)) / 2
	muTotal += skew

	sigmaMargin := curves.Clamp(10-0.09*d+0.5*math.Max(0, d-18), 7.5, 13.5) * 0.75
	sigmaTotal := curves.Clamp(14-0.10*d, 7.5, 11) * 0.75

	pUpset := curves.Clamp(0.015+0.05*math.Exp(-d/12), 0.02, 0.055)
	if rng.Float64() < pUpset {
		m = -m * (0.60 + 0.80*rng.Float64())
	}

	total := curves.Gauss(rng, muTotal, sigmaTotal)
	margin := curves.Gauss(rng, m, sigmaMargin)
	if total < 0 {
		total = 0
	}

	homeFinal := int(curves.Clamp(math.Round((total+margin)/2), 85, 150))
	awayFinal := int(curves.Clamp(math.Round(total)-float64(homeFinal), 85, 150))

	qHome := splitQuarters(rng, homeFinal)
	qAway := splitQuarters(rng, awayFinal)
	homeTotal := sumAll(qHome)
	awayTotal := sumAll(qAway)

	otPeriods := 0
	for homeTotal == awayTotal {
		otPeriods++
		h := otScore(rng)
		a := otScore(rng)
		qHome = append(qHome, h)
		qAway = append(qAway, a)
		homeTotal += h
		awayTotal += a
	}

	return Result{
		HomeFinal:    homeTotal,
		AwayFinal:    awayTotal,
		QuartersHome: qHome,
		QuartersAway: qAway,
		OTPeriods:    otPeriods,
	}
}

// splitQuarters draws 4 uniform [0.22,0.28] weights, normalizes them to
// the team's final score, integerizes, and pushes rounding drift into
// Q4 so the four quarters sum exactly to final.
func splitQuarters(rng *rand.Rand, final int) []int {
	weights := make([]float64, 4)
	sum := 0.0
	for i := range weights {
		weights[i] = 0.22 + rng.Float64()*0.06
		sum += weights[i]
	}

	quarters := make([]int, 4)
	assigned := 0
	for i := 0; i < 3; i++ {
		q := int(math.Round(float64(final) * weights[i] / sum))
		quarters[i] = q
		assigned += q
	}
	quarters[3] = final - assigned
	return quarters
}

func otScore(rng *rand.Rand) int {
	v := curves.Gauss(rng, otMeanPoints, otSigmaPoints)
	return int(curves.Clamp(math.Round(v), 6, 22))
}

func sumAll(q []int) int {
	s := 0
	for _, v := range q {
		s += v
	}
	return s
}
