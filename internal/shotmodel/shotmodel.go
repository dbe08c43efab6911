// Package shotmodel synthesizes one player's shooting line (attempts
// and makes across three-point, mid-range, close-range, and free-throw
// categories) for a fixed target point total (spec §4.6).
package shotmodel

import (
	"math/rand"

	"github.com/RamanShrikant/basketball-manager/internal/curves"
)

// Line is a single player's synthesized box-score shooting line.
type Line struct {
	FGM, FGA   int
	ThreeM, ThreeA int
	FTM, FTA   int
	Pts        int
}

var pp36Curve = []curves.Point{
	{X: 60, Y: 10}, {X: 65, Y: 12}, {X: 70, Y: 14}, {X: 75, Y: 16}, {X: 80, Y: 18},
	{X: 82, Y: 20}, {X: 85, Y: 22}, {X: 88, Y: 25}, {X: 90, Y: 27}, {X: 92, Y: 29},
	{X: 95, Y: 31}, {X: 97, Y: 32}, {X: 99, Y: 33},
}

// PP36 is the per-36-minute scoring benchmark for an offensive rating
// (spec §4.6 step 1), exposed for diagnostics alongside the actual
// target-driven synthesis below.
func PP36(off float64) float64 { return curves.Interp(pp36Curve, off) }

var p3Curve = []curves.Point{
	{X: 40, Y: 0.01}, {X: 70, Y: 0.30}, {X: 80, Y: 0.36}, {X: 90, Y: 0.40}, {X: 95, Y: 0.42}, {X: 99, Y: 0.44},
}

func p3(r float64) float64 {
	if r < 40 {
		return 0
	}
	return curves.Clamp(curves.Interp(p3Curve, r), 0, 0.46)
}

var pMidCurve = []curves.Point{
	{X: 40, Y: 0.37}, {X: 70, Y: 0.47}, {X: 90, Y: 0.53}, {X: 99, Y: 0.57},
}

func pMid(r float64) float64 {
	if r < 40 {
		return 0
	}
	v := curves.Interp(pMidCurve, r)
	switch {
	case r >= 75 && r <= 88:
		v *= 1.04
	case r > 88:
		v *= 1.015
	}
	return curves.Clamp(v, 0, 0.60)
}

var pCloseCurve = []curves.Point{
	{X: 40, Y: 0.48}, {X: 70, Y: 0.58}, {X: 85, Y: 0.63}, {X: 99, Y: 0.70},
}

func pClose(r float64) float64 {
	if r < 40 {
		return 0.48
	}
	return curves.Clamp(curves.Interp(pCloseCurve, r), 0, 0.75)
}

var pFTCurve = []curves.Point{
	{X: 0, Y: 0.30}, {X: 25, Y: 0.50}, {X: 68.5, Y: 0.78}, {X: 99, Y: 0.935},
}

func pFT(r float64) float64 {
	return curves.Clamp(curves.Interp(pFTCurve, r), 0, 1)
}

// shotDistribution computes the fraction of field-goal attempts taken
// from three, mid-range, and close range (spec §4.6 step 3).
func shotDistribution(r3, rMid, rClose float64) (f3, fMid, fClose float64) {
	w3 := curves.Clamp(r3-40, 0, 1e9) * 1.7
	wMid := curves.Clamp(rMid-40, 0, 1e9) * 0.8
	wClose := (maxF(1, rClose-50) + 18) * 0.95

	sum := w3 + wMid + wClose
	if sum <= 0 {
		return 0, 0, 1
	}
	f3, fMid, fClose = w3/sum, wMid/sum, wClose/sum

	if rClose >= 97 && r3 <= 75 && f3 > 0.15 {
		slack := f3 - 0.15
		f3 = 0.15
		fClose += slack
	}
	if r3 <= 40 && f3 > 0 {
		transferAwayFrom(&f3, &fMid, &fClose)
	}
	if rMid <= 40 && fMid > 0 {
		transferAwayFromMid(&f3, &fMid, &fClose)
	}
	return f3, fMid, fClose
}

func transferAwayFrom(f3, fMid, fClose *float64) {
	slack := *f3
	*f3 = 0
	rest := *fMid + *fClose
	if rest <= 0 {
		*fClose = slack
		return
	}
	*fMid += slack * (*fMid / rest)
	*fClose += slack * (*fClose / rest)
}

func transferAwayFromMid(f3, fMid, fClose *float64) {
	slack := *fMid
	*fMid = 0
	rest := *f3 + *fClose
	if rest <= 0 {
		*fClose = slack
		return
	}
	*f3 += slack * (*f3 / rest)
	*fClose += slack * (*fClose / rest)
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// Generate synthesizes a player's full shooting line so that points
// exactly equal targetPts (spec §4.6).
func Generate(rng *rand.Rand, r3, rMid, rClose, rFT, off float64, targetPts int) Line {
	if targetPts <= 0 {
		return Line{}
	}

	p3v, pMidv, pClosev, pFTv := p3(r3), pMid(rMid), pClose(rClose), pFT(rFT)
	f3, fMid, _ := shotDistribution(r3, rMid, rClose)

	twoNorm := (0.60*rClose + 0.40*rMid - 75) / 18
	offNorm := (off - 78) / 20
	expPPFGA := curves.Clamp(1.28+0.12*twoNorm+0.02*offNorm, 1.00, 1.65)

	e := curves.Clamp(curves.Gauss(rng, 1, 0.08), 0.80, 1.20)
	fga := int(float64(targetPts) / (expPPFGA * e) * curves.Gauss(rng, 1, 0.02))
	if fga < 1 {
		fga = 1
	}

	ftr := curves.Clamp(0.12+0.25*((rClose-50)/50), 0.05, 0.45)
	fta := computeFTA(fga, ftr, targetPts)

	for pointCeiling(fga, f3, fta) < targetPts && fga < 80 {
		fga++
		fta = computeFTA(fga, ftr, targetPts)
	}

	threeA := roundF(float64(fga) * f3)
	midA := roundF(float64(fga) * fMid)
	closeA := fga - threeA - midA
	if closeA < 0 {
		closeA = 0
		if threeA+midA > fga {
			scaleDown := float64(fga) / float64(threeA+midA)
			threeA = int(float64(threeA) * scaleDown)
			midA = fga - threeA
		}
	}

	threeM := curves.Binomial(rng, threeA, p3v)
	midM := curves.Binomial(rng, midA, pMidv)
	closeM := curves.Binomial(rng, closeA, pClosev)
	ftm := curves.Binomial(rng, fta, pFTv)

	line := Line{
		FGM:    threeM + midM + closeM,
		FGA:    fga,
		ThreeM: threeM,
		ThreeA: threeA,
		FTM:    ftm,
		FTA:    fta,
	}
	reconcile(&line, midA, closeA, targetPts)
	line.Pts = targetPts
	return line
}

func computeFTA(fga int, ftr float64, targetPts int) int {
	fta := roundF(float64(fga) * ftr)
	if fta%2 == 1 && targetPts > 1 {
		fta++
	}
	return fta
}

// pointCeiling is the maximum points reachable if every attempt in the
// expansion loop's working split were made.
func pointCeiling(fga int, f3 float64, fta int) int {
	threeA := roundF(float64(fga) * f3)
	twoA := fga - threeA
	return 3*threeA + 2*twoA + fta
}

func roundF(x float64) int {
	if x < 0 {
		return 0
	}
	return int(x + 0.5)
}

// reconcile nudges makes up or down, then converts a three into a two
// (or vice versa), then falls back to extra free-throw pairs, until
// the line's total points exactly equals targetPts (spec §4.6 step 8).
func reconcile(line *Line, midA, closeA int, targetPts int) {
	points := func() int {
		twoM := line.FGM - line.ThreeM
		return 3*line.ThreeM + 2*twoM + line.FTM
	}

	for i := 0; i < 200; i++ {
		diff := targetPts - points()
		if diff == 0 {
			return
		}

		twoA := closeA + midA
		twoM := line.FGM - line.ThreeM

		if diff > 0 {
			if diff >= 3 && line.ThreeM < line.ThreeA {
				line.ThreeM++
				line.FGM++
				continue
			}
			if diff >= 2 && twoM < twoA {
				twoM++
				line.FGM = line.ThreeM + twoM
				continue
			}
			if line.FTM < line.FTA {
				line.FTM++
				continue
			}
		} else {
			if line.FTM > 0 {
				line.FTM--
				continue
			}
			if twoM > 0 {
				twoM--
				line.FGM = line.ThreeM + twoM
				continue
			}
			if diff <= -3 && line.ThreeM > 0 {
				line.ThreeM--
				line.FGM--
				continue
			}
		}

		// No room to add/remove a make within attempts: reclassify one
		// attempt between the three and two-point categories, which
		// shifts points by exactly 1 without changing total attempts.
		if diff > 0 && twoM > 0 {
			twoM--
			line.ThreeA++
			line.ThreeM++
			line.FGM = line.ThreeM + twoM
			continue
		}
		if diff < 0 && line.ThreeM > 0 {
			line.ThreeM--
			line.ThreeA--
			twoM++
			line.FGM = line.ThreeM + twoM
			continue
		}

		addFTPair(line)
	}
}

// addFTPair absorbs any remaining point discrepancy by adding an extra
// free-throw attempt/make pair, guaranteeing an exact reconciliation.
func addFTPair(line *Line) {
	line.FTA++
	line.FTM++
}
