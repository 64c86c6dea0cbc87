// cmd/designfly/rig.go
// Copyright(c) 2022-2026 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	gomath "math"

	"github.com/DogePool531/Augmented-Reality-Design-And-Fly/aero"
	"github.com/DogePool531/Augmented-Reality-Design-And-Fly/control"
	"github.com/DogePool531/Augmented-Reality-Design-And-Fly/flight"
	"github.com/DogePool531/Augmented-Reality-Design-And-Fly/log"
	"github.com/DogePool531/Augmented-Reality-Design-And-Fly/math"

	"github.com/go-gl/mathgl/mgl64"
)

// rig wires a solver to an airframe model and to a StaticBody that stands
// in for the host's physics engine.
type rig struct {
	model    *aero.Model
	body     *flight.StaticBody
	material flight.Material
	solver   *flight.Solver
	mapper   control.Mapper
	scale    *control.ScaleManager
}

func newRig(c Config, wing, tail, fuselage mgl64.Vec3, st flight.BodyState, lg *log.Logger) *rig {
	r := &rig{
		model: aero.NewModel(aero.Sources{
			Wing:     aero.StaticScale(wing),
			Tail:     aero.StaticScale(tail),
			Fuselage: aero.StaticScale(fuselage),
		}, c.Layout, lg),
		body:   flight.NewStaticBody(st),
		mapper: control.NewMapper(c.Control),
		scale:  control.NewScaleManager(c.Control),
	}
	r.solver = flight.New(flight.Context{
		Body:     r.body,
		Geometry: r.model,
		Material: &r.material,
		Logger:   lg,
	}, c.Flight)
	return r
}

func (r *rig) tick(in control.Input) (control.State, flight.Output, error) {
	st := r.mapper.Map(in)
	out, err := r.solver.Tick(st, r.scale.Scale())
	return st, out, err
}

// velocityFor returns the body-frame velocity for the given airspeed,
// angle of attack and sideslip, the latter two in degrees.
func velocityFor(speed, aoa, sideslip float64) mgl64.Vec3 {
	a, b := math.Radians(aoa), math.Radians(sideslip)
	return mgl64.Vec3{
		gomath.Sin(b),
		-gomath.Sin(a) * gomath.Cos(b),
		gomath.Cos(a) * gomath.Cos(b),
	}.Mul(speed)
}

func parseScales() (wing, tail, fuselage mgl64.Vec3, err error) {
	if wing, err = parseVec3(*wingScale); err != nil {
		return
	}
	if tail, err = parseVec3(*tailScale); err != nil {
		return
	}
	fuselage, err = parseVec3(*fuselageScale)
	return
}
