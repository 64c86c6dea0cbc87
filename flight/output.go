// flight/output.go
// Copyright(c) 2022-2026 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package flight

import (
	"github.com/DogePool531/Augmented-Reality-Design-And-Fly/math"

	"github.com/go-gl/mathgl/mgl64"
)

type ApplicationKind int

const (
	LiftLeft ApplicationKind = iota
	LiftRight
	TailLift
	YawForce
	DragLeft
	DragRight
	TailDrag
	FuselageDrag
	Weight
	RollTorque
	Thrust
	NumApplicationKinds
)

func (k ApplicationKind) String() string {
	if k < 0 || k >= NumApplicationKinds {
		return "unknown"
	}
	return [...]string{"lift_left", "lift_right", "tail_lift", "yaw_force", "drag_left", "drag_right",
		"tail_drag", "fuselage_drag", "weight", "roll_torque", "thrust"}[k]
}

// IsTorque reports whether the application's vector is a torque rather
// than a force.
func (k ApplicationKind) IsTorque() bool {
	return k == RollTorque
}

// AtCenterOfMass reports whether the force is applied at the center of
// mass rather than at Application.Point.
func (k ApplicationKind) AtCenterOfMass() bool {
	return k == Weight
}

// Application is a single request issued to the rigid body: a force at a
// world-space point, a force at the center of mass, or a torque.
type Application struct {
	Kind   ApplicationKind `json:"kind"`
	Vector mgl64.Vec3      `json:"vector"`
	Point  mgl64.Vec3      `json:"point"`
}

// Output describes everything the solver computed and applied in a tick.
// Forces are in newtons and angles in degrees.
type Output struct {
	Tick  int  `json:"tick"`
	Reset bool `json:"reset"`

	// Applications is reused by the solver; it is only valid until the
	// next call to Tick.
	Applications []Application `json:"applications"`

	AoA             float64 `json:"aoa"`
	Yaw             float64 `json:"yaw"`
	TailAoA         float64 `json:"tail_aoa"`
	Speed           float64 `json:"speed"`
	DynamicPressure float64 `json:"q"`

	LiftLeft     float64 `json:"lift_left"`
	LiftRight    float64 `json:"lift_right"`
	DragLeft     float64 `json:"drag_left"`
	DragRight    float64 `json:"drag_right"`
	TailLift     float64 `json:"tail_lift"`
	TailDrag     float64 `json:"tail_drag"`
	YawForce     float64 `json:"yaw_force"`
	FuselageDrag float64 `json:"fuselage_drag"`
	Weight       float64 `json:"weight"`
	Thrust       float64 `json:"thrust"`
	RollTorque   float64 `json:"roll_torque"`

	Mass           float64 `json:"mass"`
	Scale          float64 `json:"scale"`
	GroundFriction float64 `json:"ground_friction"`
	GuardTrips     int     `json:"guard_trips"`
}

// NetForce returns the sum of all force applications.
func (o *Output) NetForce() mgl64.Vec3 {
	var f mgl64.Vec3
	for _, a := range o.Applications {
		if !a.Kind.IsTorque() {
			f = f.Add(a.Vector)
		}
	}
	return f
}

// Find returns the first application of the given kind.
func (o *Output) Find(kind ApplicationKind) (Application, bool) {
	for _, a := range o.Applications {
		if a.Kind == kind {
			return a, true
		}
	}
	return Application{}, false
}

// Finite reports whether every scalar and application in the output is
// finite.
func (o *Output) Finite() bool {
	for _, a := range o.Applications {
		if !math.FiniteVec3(a.Vector) || !math.FiniteVec3(a.Point) {
			return false
		}
	}
	for _, p := range o.scalars() {
		if !math.IsFinite(*p) {
			return false
		}
	}
	return true
}

// scalars returns pointers to all of the named scalar outputs so that
// they can be checked together.
func (o *Output) scalars() []*float64 {
	return []*float64{&o.AoA, &o.Yaw, &o.TailAoA, &o.Speed, &o.DynamicPressure,
		&o.LiftLeft, &o.LiftRight, &o.DragLeft, &o.DragRight, &o.TailLift, &o.TailDrag,
		&o.YawForce, &o.FuselageDrag, &o.Weight, &o.Thrust, &o.RollTorque, &o.Mass}
}
