// Package curves provides the piecewise-linear interpolation and
// sampling primitives the rest of the engine is built on (spec §4.1).
package curves

import "sort"

// Point is one (x,y) node of a piecewise-linear curve.
type Point struct {
	X, Y float64
}

// Clamp restricts x to [lo,hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Lerp linearly interpolates between a and b at t in [0,1].
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Interp evaluates a sorted curve at x, clamping at the endpoints and
// linearly interpolating between adjacent nodes otherwise.
func Interp(curve []Point, x float64) float64 {
	if len(curve) == 0 {
		return 0
	}
	if x <= curve[0].X {
		return curve[0].Y
	}
	last := curve[len(curve)-1]
	if x >= last.X {
		return last.Y
	}
	idx := sort.Search(len(curve), func(i int) bool { return curve[i].X >= x })
	hi := curve[idx]
	lo := curve[idx-1]
	if hi.X == lo.X {
		return lo.Y
	}
	t := (x - lo.X) / (hi.X - lo.X)
	return Lerp(lo.Y, hi.Y, t)
}

// InterpInverse evaluates a curve's inverse: given a value y on the
// curve's Y axis, finds the X it corresponds to, assuming Y is
// monotonically non-decreasing across the curve's nodes (as
// scoringPctTable is). Clamps at the endpoints.
func InterpInverse(curve []Point, y float64) float64 {
	if len(curve) == 0 {
		return 0
	}
	if y <= curve[0].Y {
		return curve[0].X
	}
	last := curve[len(curve)-1]
	if y >= last.Y {
		return last.X
	}
	idx := sort.Search(len(curve), func(i int) bool { return curve[i].Y >= y })
	hi := curve[idx]
	lo := curve[idx-1]
	if hi.Y == lo.Y {
		return lo.X
	}
	t := (y - lo.Y) / (hi.Y - lo.Y)
	return Lerp(lo.X, hi.X, t)
}
