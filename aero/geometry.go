// aero/geometry.go
// Copyright(c) 2022-2026 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aero

import (
	"fmt"
	gomath "math"
	"strings"

	"github.com/DogePool531/Augmented-Reality-Design-And-Fly/math"

	"github.com/go-gl/mathgl/mgl64"
)

// Planform constants: area = K·(first)·(second) and span = K·(component)
// for each surface's scale vector.
const (
	WingAreaK  = 0.02
	WingSpanK  = 0.2
	HTailAreaK = 0.015
	HTailSpanK = 0.4
	VTailAreaK = 0.0075
	VTailSpanK = 0.2

	WingOswald = 0.7
	TailOswald = 0.9

	// Thin-airfoil lift slope, per radian.
	A0 = 2 * gomath.Pi

	FuselageBaseMass = 0.6
	SurfaceMassK     = 0.3
	// FuselageNoseFraction locates the fuselage mass along its length.
	FuselageNoseFraction = 0.6
	// MassReference converts the summed mass contributions into
	// kilograms.
	MassReference = 15
)

// Surface holds the lifting-line properties of a single aerodynamic
// surface.
type Surface struct {
	Area        float64 `json:"area"`
	Span        float64 `json:"span"`
	AspectRatio float64 `json:"aspect_ratio"`
	InducedDrag float64 `json:"induced_drag"` // k = 1/(π·e·AR)
	LiftSlope   float64 `json:"lift_slope"`   // per radian
}

// Airframe is a snapshot of the airframe's aerodynamic and mass
// properties, derived from the wing, tail and fuselage scales.
type Airframe struct {
	Wing  Surface `json:"wing"`
	HTail Surface `json:"htail"`
	VTail Surface `json:"vtail"`

	WingCd0 float64 `json:"wing_cd0"`
	// TotalMass is the unscaled mass in kilograms.
	TotalMass float64 `json:"total_mass"`
	// CG is the longitudinal (body Z) center of gravity.
	CG float64 `json:"cg"`
	// Incidence is the tail trim incidence in degrees.
	Incidence float64 `json:"incidence"`

	Degenerate bool `json:"degenerate"`
}

// Layout gives the body-frame attachment points of the airframe's parts;
// only the Z components enter the mass balance.
type Layout struct {
	WingCenter     mgl64.Vec3 `json:"wing_center"`
	TailCenter     mgl64.Vec3 `json:"tail_center"`
	FuselageCenter mgl64.Vec3 `json:"fuselage_center"`
}

func DefaultLayout() Layout {
	return Layout{
		WingCenter:     mgl64.Vec3{0, 0, 0.05},
		TailCenter:     mgl64.Vec3{0, 0.02, -0.45},
		FuselageCenter: mgl64.Vec3{0, 0, 0},
	}
}

type degeneracies []string

func (d *degeneracies) add(s string, args ...any) {
	*d = append(*d, fmt.Sprintf(s, args...))
}

// positive returns v if it is at least math.Epsilon and otherwise
// returns math.Epsilon, noting the clamp.
func (d *degeneracies) positive(what string, v float64) float64 {
	if v >= math.Epsilon { // false for NaN
		return v
	}
	d.add("%s %g clamped", what, v)
	return math.Epsilon
}

func (d *degeneracies) finite(what string, v mgl64.Vec3) mgl64.Vec3 {
	for i := range v {
		if !math.IsFinite(v[i]) {
			d.add("%s scale component %d is %g", what, i, v[i])
			v[i] = 0
		}
	}
	return v
}

func makeSurface(name string, area, span, oswald float64, d *degeneracies) Surface {
	s := Surface{
		Area: d.positive(name+" area", area),
		Span: d.positive(name+" span", span),
	}
	s.AspectRatio = d.positive(name+" aspect ratio", s.Span*s.Span/s.Area)
	s.InducedDrag = 1 / (gomath.Pi * oswald * s.AspectRatio)
	s.LiftSlope = A0 / (1 + A0*s.InducedDrag)
	return s
}

// Compute derives the airframe properties from the wing, tail and
// fuselage scale vectors. Degenerate inputs are clamped so that the
// returned Airframe is always usable; in that case the error wraps
// ErrDegenerateGeometry and the trim incidence is carried over from prev
// if it can't be solved for.
func Compute(wing, tail, fuselage mgl64.Vec3, layout Layout, prev Airframe) (Airframe, error) {
	var d degeneracies
	wing = d.finite("wing", wing)
	tail = d.finite("tail", tail)
	fuselage = d.finite("fuselage", fuselage)

	af := Airframe{
		Wing:    makeSurface("wing", wing.Y()*wing.X()*WingAreaK, wing.X()*WingSpanK, WingOswald, &d),
		HTail:   makeSurface("horizontal tail", tail.X()*tail.Y()*HTailAreaK, tail.X()*HTailSpanK, TailOswald, &d),
		VTail:   makeSurface("vertical tail", tail.Z()*tail.Y()*VTailAreaK, tail.Y()*VTailSpanK, TailOswald, &d),
		WingCd0: Cd0,
	}

	fuselageMass := FuselageBaseMass + fuselage.Y()
	wingMass := SurfaceMassK * wing.X() * wing.Y()
	tailMass := SurfaceMassK * tail.X() * tail.Y() * tail.Z()
	total := fuselageMass + wingMass + tailMass
	if math.Abs(total) < math.Epsilon {
		d.add("total mass %g", total)
	}

	fuselageZ := layout.FuselageCenter.Z() + FuselageNoseFraction*fuselage.Z()/2
	moment := wingMass*layout.WingCenter.Z() + tailMass*layout.TailCenter.Z() + fuselageMass*fuselageZ
	af.CG = math.SafeDiv(moment, total)
	af.TotalMass = total / MassReference

	// Tail and wing pitching moments about the origin balance at the
	// trim incidence.
	zw, zt := layout.WingCenter.Z(), layout.TailCenter.Z()
	denom := af.HTail.Area * af.HTail.LiftSlope * zt
	if math.Abs(denom) < math.Epsilon {
		d.add("tail moment arm %g", denom)
		af.Incidence = prev.Incidence
	} else {
		af.Incidence = (af.HTail.LiftSlope*zt*af.HTail.Area + af.Wing.LiftSlope*af.Wing.Area*zw) / denom
	}

	if len(d) > 0 {
		af.Degenerate = true
		return af, fmt.Errorf("%w: %s", ErrDegenerateGeometry, strings.Join(d, ", "))
	}
	return af, nil
}
