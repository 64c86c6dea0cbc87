// math/vec.go
// Copyright(c) 2022-2026 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl64"
)

///////////////////////////////////////////////////////////////////////////
// 3D vectors

// Body-frame axes. The airframe's nose points down +Z, its right wing
// down +X, and +Y is up.
var (
	Forward = mgl64.Vec3{0, 0, 1}
	Right   = mgl64.Vec3{1, 0, 0}
	Up      = mgl64.Vec3{0, 1, 0}
)

// Axes returns the world-space forward, right and up vectors for a body
// with the given orientation.
func Axes(q mgl64.Quat) (forward, right, up mgl64.Vec3) {
	q = SafeQuat(q)
	return q.Rotate(Forward), q.Rotate(Right), q.Rotate(Up)
}

// SafeQuat normalizes q, returning the identity rotation for zero-length
// or non-finite quaternions.
func SafeQuat(q mgl64.Quat) mgl64.Quat {
	l := q.Len()
	if !IsFinite(l) || l < Epsilon {
		return mgl64.QuatIdent()
	}
	return q.Scale(1 / l)
}

// Normalize returns v scaled to unit length; vectors shorter than Epsilon
// (or non-finite) give the zero vector.
func Normalize(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if !IsFinite(l) || l < Epsilon {
		return mgl64.Vec3{}
	}
	return v.Mul(1 / l)
}

// Angle returns the unsigned angle between a and b in degrees.
func Angle(a, b mgl64.Vec3) float64 {
	d := gomath.Sqrt(a.Dot(a) * b.Dot(b))
	if !IsFinite(d) || d < Epsilon*Epsilon {
		return 0
	}
	return Degrees(gomath.Acos(Clamp(a.Dot(b)/d, -1, 1)))
}

// SignedAngle returns the angle in degrees between from and to; its sign
// is positive when from x to points along axis.
func SignedAngle(from, to, axis mgl64.Vec3) float64 {
	a := Angle(from, to)
	if axis.Dot(from.Cross(to)) < 0 {
		return -a
	}
	return a
}

// FiniteVec3 reports whether all of v's components are finite.
func FiniteVec3(v mgl64.Vec3) bool {
	return IsFinite(v[0]) && IsFinite(v[1]) && IsFinite(v[2])
}

// GuardVec3 returns v if it is finite and the zero vector otherwise,
// along with a flag indicating whether v was replaced.
func GuardVec3(v mgl64.Vec3) (mgl64.Vec3, bool) {
	if FiniteVec3(v) {
		return v, false
	}
	return mgl64.Vec3{}, true
}
