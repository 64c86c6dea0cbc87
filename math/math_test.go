// math/math_test.go
// Copyright(c) 2022-2026 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestSignedAngle(t *testing.T) {
	type testCase struct {
		name     string
		from, to mgl64.Vec3
		axis     mgl64.Vec3
		expected float64
	}

	s, c := math.Sin(Radians(10)), math.Cos(Radians(10))
	testCases := []testCase{
		{name: "Aligned", from: Forward, to: Forward, axis: Right, expected: 0},
		{name: "FlowFromBelow", from: Forward, to: mgl64.Vec3{0, -s, c}, axis: Right, expected: 10},
		{name: "FlowFromAbove", from: Forward, to: mgl64.Vec3{0, s, c}, axis: Right, expected: -10},
		{name: "SideslipRight", from: Forward, to: mgl64.Vec3{s, 0, c}, axis: Up, expected: 10},
		{name: "SideslipLeft", from: Forward, to: mgl64.Vec3{-s, 0, c}, axis: Up, expected: -10},
		{name: "Perpendicular", from: Forward, to: mgl64.Vec3{0, -1, 0}, axis: Right, expected: 90},
		{name: "ZeroVector", from: Forward, to: mgl64.Vec3{}, axis: Right, expected: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SignedAngle(tc.from, tc.to, tc.axis); math.Abs(got-tc.expected) > 1e-9 {
				t.Errorf("got %f, expected %f", got, tc.expected)
			}
		})
	}
}

func TestAxes(t *testing.T) {
	f, r, u := Axes(mgl64.QuatIdent())
	if !f.ApproxEqualThreshold(Forward, 1e-12) || !r.ApproxEqualThreshold(Right, 1e-12) ||
		!u.ApproxEqualThreshold(Up, 1e-12) {
		t.Errorf("identity axes: got %v %v %v", f, r, u)
	}

	// A quarter turn about up swings the nose to the right.
	f, r, _ = Axes(mgl64.QuatRotate(math.Pi/2, Up))
	if !f.ApproxEqualThreshold(Right, 1e-12) {
		t.Errorf("yawed forward: got %v, expected %v", f, Right)
	}
	if !r.ApproxEqualThreshold(Forward.Mul(-1), 1e-12) {
		t.Errorf("yawed right: got %v, expected %v", r, Forward.Mul(-1))
	}

	// Degenerate quaternions fall back to the identity.
	f, _, _ = Axes(mgl64.Quat{})
	if !f.ApproxEqualThreshold(Forward, 1e-12) {
		t.Errorf("zero quaternion: got %v, expected %v", f, Forward)
	}
}

func TestNormalize(t *testing.T) {
	if n := Normalize(mgl64.Vec3{3, 0, 4}); !n.ApproxEqualThreshold(mgl64.Vec3{0.6, 0, 0.8}, 1e-12) {
		t.Errorf("got %v", n)
	}
	for _, v := range []mgl64.Vec3{{}, {1e-9, 0, 0}, {math.NaN(), 0, 0}, {math.Inf(1), 1, 1}} {
		if n := Normalize(v); n != (mgl64.Vec3{}) {
			t.Errorf("%v: got %v, expected zero vector", v, n)
		}
	}
}

func TestGuardVec3(t *testing.T) {
	if v, tripped := GuardVec3(mgl64.Vec3{1, 2, 3}); tripped || v != (mgl64.Vec3{1, 2, 3}) {
		t.Errorf("finite vector was modified: %v %v", v, tripped)
	}
	if v, tripped := GuardVec3(mgl64.Vec3{1, math.NaN(), 3}); !tripped || v != (mgl64.Vec3{}) {
		t.Errorf("NaN vector not zeroed: %v %v", v, tripped)
	}
	if v, tripped := GuardVec3(mgl64.Vec3{math.Inf(-1), 0, 0}); !tripped || v != (mgl64.Vec3{}) {
		t.Errorf("Inf vector not zeroed: %v %v", v, tripped)
	}
}

func TestNonZero(t *testing.T) {
	for _, tc := range []struct{ in, out float64 }{
		{0, Epsilon}, {1e-9, Epsilon}, {-1e-9, -Epsilon}, {2, 2}, {-3, -3},
	} {
		if got := NonZero(tc.in); got != tc.out {
			t.Errorf("NonZero(%g): got %g, expected %g", tc.in, got, tc.out)
		}
	}
}

func TestMoveTowards(t *testing.T) {
	for _, tc := range []struct{ cur, target, delta, out float64 }{
		{1, 0, 0.25, 0.75}, {-1, 0, 0.25, -0.75}, {0.1, 0, 0.25, 0}, {0, 0, 1, 0},
	} {
		if got := MoveTowards(tc.cur, tc.target, tc.delta); math.Abs(got-tc.out) > 1e-12 {
			t.Errorf("MoveTowards(%g, %g, %g): got %g, expected %g", tc.cur, tc.target, tc.delta, got, tc.out)
		}
	}
}

func TestSign(t *testing.T) {
	for _, tc := range []struct{ v, s float64 }{{3.5, 1}, {-0.25, -1}, {0, 0}, {math.Inf(-1), -1}} {
		if got := Sign(tc.v); got != tc.s {
			t.Errorf("Sign(%g): got %g, expected %g", tc.v, got, tc.s)
		}
	}
	if Sign(-7) != -1 || Sign(int64(9)) != 1 || Sign(int8(0)) != 0 {
		t.Errorf("Sign: wrong result for integer arguments")
	}
	if Abs(-4) != 4 || Abs(-2.5) != 2.5 {
		t.Errorf("Abs: wrong result")
	}
}
