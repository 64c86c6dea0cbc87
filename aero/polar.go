// aero/polar.go
// Copyright(c) 2022-2026 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aero

import (
	gomath "math"

	"github.com/DogePool531/Augmented-Reality-Design-And-Fly/math"
)

// Empirical NACA 0012-like polar. Angles are in degrees throughout,
// including inside the quartic exponentials.
const (
	StallAngle   = 20.0 // degrees; lift drops to zero beyond this
	ClRollOff    = 6e-6
	CdRise       = 0.3
	CdRiseExp    = 1e-5
	Cd0          = 0.007
	CdSlope      = 0.0005
	DragCeiling  = 0.3
	maxPolarAoA  = 90.0 // keeps exp(c·aoa⁴) finite
	polarAoAStep = 0.5
)

// Polar returns the lift and drag coefficients for the given angle of
// attack (degrees) and lift-curve slope (per radian).
//
// Stall is a hard cutoff: past ±StallAngle, Cl is exactly zero. The
// quartic term softens the approach to stall but the curve is still
// discontinuous there; flight behavior near stall depends on this.
func Polar(aoaDeg, liftSlope float64) (cl, cd float64) {
	if !math.IsFinite(aoaDeg) {
		return 0, DragCeiling
	}
	if !math.IsFinite(liftSlope) {
		liftSlope = 0
	}

	a := math.Clamp(aoaDeg, -maxPolarAoA, maxPolarAoA)
	a4 := math.Sqr(math.Sqr(a))

	if math.Abs(aoaDeg) <= StallAngle {
		cl = math.Radians(aoaDeg)*liftSlope - math.Sign(aoaDeg)*(gomath.Exp(ClRollOff*a4)-1)
	}

	cd = min(CdRise*(gomath.Exp(CdRiseExp*a4)-1)+Cd0+CdSlope*math.Abs(a), DragCeiling)
	return
}

type PolarPoint struct {
	AoA float64 `json:"aoa"`
	Cl  float64 `json:"cl"`
	Cd  float64 `json:"cd"`
}

// PolarTable samples Polar over [lo,hi] at the given step in degrees.
func PolarTable(lo, hi, step, liftSlope float64) []PolarPoint {
	if step <= 0 || !math.IsFinite(step) {
		step = polarAoAStep
	}
	if hi < lo {
		lo, hi = hi, lo
	}

	n := int(gomath.Floor((hi-lo)/step+1e-9)) + 1
	pts := make([]PolarPoint, 0, n)
	for i := range n {
		a := lo + float64(i)*step
		cl, cd := Polar(a, liftSlope)
		pts = append(pts, PolarPoint{AoA: a, Cl: cl, Cd: cd})
	}
	return pts
}
