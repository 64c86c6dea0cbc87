// math/core.go
// Copyright(c) 2022-2026 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	gomath "math"

	"golang.org/x/exp/constraints"
)

// Epsilon is the smallest magnitude we are willing to divide by; anything
// closer to zero than this is treated as degenerate.
const Epsilon = 1e-6

// Radians converts an angle expressed in degrees to radians
func Radians(d float64) float64 {
	return d / 180 * gomath.Pi
}

// Degrees converts an angle expressed in radians to degrees
func Degrees(r float64) float64 {
	return r * 180 / gomath.Pi
}

func Sign[V constraints.Signed | constraints.Float](v V) V {
	if v > 0 {
		return 1
	} else if v < 0 {
		return -1
	}
	return 0
}

func Abs[V constraints.Signed | constraints.Float](x V) V {
	if x < 0 {
		return -x
	}
	return x
}

func Sqr[V constraints.Integer | constraints.Float](v V) V { return v * v }

func Clamp[T constraints.Ordered](x T, low T, high T) T {
	if x < low {
		return low
	} else if x > high {
		return high
	}
	return x
}

// MoveTowards returns cur moved toward target by at most maxDelta.
func MoveTowards(cur, target, maxDelta float64) float64 {
	if Abs(target-cur) <= maxDelta {
		return target
	}
	return cur + Sign(target-cur)*maxDelta
}

// IsFinite reports whether v is neither NaN nor ±Inf.
func IsFinite(v float64) bool {
	return !gomath.IsNaN(v) && !gomath.IsInf(v, 0)
}

// NonZero returns v if its magnitude is at least Epsilon and otherwise
// returns Epsilon with v's sign (positive for zero).
func NonZero(v float64) float64 {
	if Abs(v) >= Epsilon {
		return v
	}
	if v < 0 {
		return -Epsilon
	}
	return Epsilon
}

// SafeDiv returns a/b, with b kept away from zero via NonZero.
func SafeDiv(a, b float64) float64 {
	return a / NonZero(b)
}
