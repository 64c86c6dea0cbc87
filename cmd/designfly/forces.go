// cmd/designfly/forces.go
// Copyright(c) 2022-2026 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/DogePool531/Augmented-Reality-Design-And-Fly/aero"
	"github.com/DogePool531/Augmented-Reality-Design-And-Fly/control"
	"github.com/DogePool531/Augmented-Reality-Design-And-Fly/flight"
	"github.com/DogePool531/Augmented-Reality-Design-And-Fly/log"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/iancoleman/orderedmap"
)

// runForces runs a single tick for the flight condition given on the
// command line and prints everything the solver computed as JSON.
func runForces(w io.Writer, c Config, lg *log.Logger) error {
	wing, tail, fuselage, err := parseScales()
	if err != nil {
		return err
	}

	st := flight.BodyState{
		Pose:           flight.Pose{Orientation: mgl64.QuatIdent()},
		LinearVelocity: velocityFor(*speed, *aoa, *sideslip),
	}
	r := newRig(c, wing, tail, fuselage, st, lg)
	r.scale.SetDisplacement(*displacement)

	ctl, out, err := r.tick(control.Input{
		Roll:          *roll,
		Pitch:         *pitch,
		ThrottleLever: *throttle * c.Control.ThrottleTravel,
	})
	if err != nil {
		return err
	}

	af, _ := r.model.Airframe()
	b, err := json.MarshalIndent(forcesReport(ctl, af, out, r.body, r.material.DynamicFriction), "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

// forcesReport organizes a tick's results so that the JSON reads from
// inputs through to the net force and torque on the body.
func forcesReport(ctl control.State, af aero.Airframe, out flight.Output, body *flight.StaticBody,
	friction float64) *orderedmap.OrderedMap {
	o := orderedmap.New()
	o.Set("control", ctl)
	o.Set("scale", out.Scale)
	o.Set("mass", out.Mass)
	o.Set("airframe", af)

	flow := orderedmap.New()
	flow.Set("speed", out.Speed)
	flow.Set("aoa", out.AoA)
	flow.Set("yaw", out.Yaw)
	flow.Set("tail_aoa", out.TailAoA)
	flow.Set("q", out.DynamicPressure)
	o.Set("flow", flow)

	forces := orderedmap.New()
	for _, f := range []struct {
		name string
		v    float64
	}{{"lift_left", out.LiftLeft}, {"lift_right", out.LiftRight}, {"tail_lift", out.TailLift},
		{"yaw_force", out.YawForce}, {"drag_left", out.DragLeft}, {"drag_right", out.DragRight},
		{"tail_drag", out.TailDrag}, {"fuselage_drag", out.FuselageDrag}, {"weight", out.Weight},
		{"thrust", out.Thrust}, {"roll_torque", out.RollTorque}} {
		forces.Set(f.name, f.v)
	}
	o.Set("forces", forces)

	apps := make([]*orderedmap.OrderedMap, 0, len(out.Applications))
	for _, a := range out.Applications {
		m := orderedmap.New()
		m.Set("kind", a.Kind.String())
		m.Set("vector", a.Vector)
		if !a.Kind.IsTorque() && !a.Kind.AtCenterOfMass() {
			m.Set("point", a.Point)
		}
		apps = append(apps, m)
	}
	o.Set("applications", apps)

	o.Set("net_force", body.Force)
	o.Set("net_torque", body.Torque)
	o.Set("ground_friction", friction)
	o.Set("guard_trips", out.GuardTrips)
	return o
}
