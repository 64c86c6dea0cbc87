// flight/body.go
// Copyright(c) 2022-2026 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package flight

import (
	"github.com/DogePool531/Augmented-Reality-Design-And-Fly/math"

	"github.com/go-gl/mathgl/mgl64"
)

// Pose is a rigid body's world-space position and orientation.
type Pose struct {
	Position    mgl64.Vec3 `json:"position"`
	Orientation mgl64.Quat `json:"orientation"`
}

// Body is the host physics engine's rigid body. The solver only reads
// its pose and velocity and issues requests; integration is the host's
// business, so requests made during one tick are first visible in the
// body's state on the following tick.
type Body interface {
	Pose() Pose
	Velocity() (linear, angular mgl64.Vec3)

	SetPose(p Pose)
	SetVelocity(linear, angular mgl64.Vec3)
	SetMassProperties(mass float64, centerOfMass mgl64.Vec3)

	// AddForceAtPosition applies a world-space force at a world-space
	// point, inducing a torque about the center of mass.
	AddForceAtPosition(force, point mgl64.Vec3)
	// AddForce applies a world-space force at the center of mass.
	AddForce(force mgl64.Vec3)
	AddTorque(torque mgl64.Vec3)
}

// FrictionMaterial is the ground-contact material of the landing gear.
type FrictionMaterial interface {
	SetDynamicFriction(mu float64)
}

// Material is a FrictionMaterial that just remembers the last
// coefficient it was given.
type Material struct {
	DynamicFriction float64
}

func (m *Material) SetDynamicFriction(mu float64) {
	m.DynamicFriction = mu
}

// BodyState is a complete snapshot of a rigid body's kinematic state.
type BodyState struct {
	Pose            Pose       `json:"pose"`
	LinearVelocity  mgl64.Vec3 `json:"linear_velocity"`
	AngularVelocity mgl64.Vec3 `json:"angular_velocity"`
}

func snapshot(b Body) BodyState {
	lin, ang := b.Velocity()
	return BodyState{Pose: b.Pose(), LinearVelocity: lin, AngularVelocity: ang}
}

// DefaultInertiaRadius is the radius of gyration StaticBody uses for its
// isotropic inertia, in meters.
const DefaultInertiaRadius = 0.3

// StaticBody is a minimal Body: it accumulates force and torque requests
// and, if Integrate is called, advances its state with a semi-implicit
// Euler step. It stands in for a host physics engine in tools and tests.
type StaticBody struct {
	State BodyState

	Mass          float64
	CenterOfMass  mgl64.Vec3 // body frame
	InertiaRadius float64

	// Accumulated since the last Integrate or ClearForces; the torque is
	// about the center of mass.
	Force    mgl64.Vec3
	Torque   mgl64.Vec3
	Requests int
}

func NewStaticBody(s BodyState) *StaticBody {
	if s.Pose.Orientation == (mgl64.Quat{}) {
		s.Pose.Orientation = mgl64.QuatIdent()
	}
	return &StaticBody{State: s, Mass: 1, InertiaRadius: DefaultInertiaRadius}
}

func (b *StaticBody) Pose() Pose {
	return b.State.Pose
}

func (b *StaticBody) Velocity() (mgl64.Vec3, mgl64.Vec3) {
	return b.State.LinearVelocity, b.State.AngularVelocity
}

func (b *StaticBody) SetPose(p Pose) {
	b.State.Pose = p
}

func (b *StaticBody) SetVelocity(linear, angular mgl64.Vec3) {
	b.State.LinearVelocity = linear
	b.State.AngularVelocity = angular
}

func (b *StaticBody) SetMassProperties(mass float64, com mgl64.Vec3) {
	b.Mass = mass
	b.CenterOfMass = com
}

// WorldCenterOfMass returns the center of mass in world space.
func (b *StaticBody) WorldCenterOfMass() mgl64.Vec3 {
	q := math.SafeQuat(b.State.Pose.Orientation)
	return b.State.Pose.Position.Add(q.Rotate(b.CenterOfMass))
}

func (b *StaticBody) AddForceAtPosition(force, point mgl64.Vec3) {
	b.Force = b.Force.Add(force)
	b.Torque = b.Torque.Add(point.Sub(b.WorldCenterOfMass()).Cross(force))
	b.Requests++
}

func (b *StaticBody) AddForce(force mgl64.Vec3) {
	b.Force = b.Force.Add(force)
	b.Requests++
}

func (b *StaticBody) AddTorque(torque mgl64.Vec3) {
	b.Torque = b.Torque.Add(torque)
	b.Requests++
}

func (b *StaticBody) ClearForces() {
	b.Force, b.Torque = mgl64.Vec3{}, mgl64.Vec3{}
	b.Requests = 0
}

// Integrate advances the body by dt seconds under the accumulated force
// and torque and then clears them.
func (b *StaticBody) Integrate(dt float64) {
	defer b.ClearForces()

	if !(b.Mass > 0) || !(dt > 0) {
		return
	}

	s := &b.State
	s.LinearVelocity = s.LinearVelocity.Add(b.Force.Mul(dt / b.Mass))
	s.Pose.Position = s.Pose.Position.Add(s.LinearVelocity.Mul(dt))

	if inertia := b.Mass * math.Sqr(b.InertiaRadius); inertia > math.Epsilon {
		s.AngularVelocity = s.AngularVelocity.Add(b.Torque.Mul(dt / inertia))
	}
	q := math.SafeQuat(s.Pose.Orientation)
	spin := mgl64.Quat{V: s.AngularVelocity}.Mul(q).Scale(0.5 * dt)
	s.Pose.Orientation = math.SafeQuat(q.Add(spin))
}
