// control/stick.go
// Copyright(c) 2022-2026 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package control

import (
	gomath "math"

	"github.com/DogePool531/Augmented-Reality-Design-And-Fly/math"
	"github.com/DogePool531/Augmented-Reality-Design-And-Fly/util"

	"github.com/go-gl/mathgl/mgl64"
)

type StickState int

const (
	StickIdle StickState = iota
	StickGrabbed
)

func (s StickState) String() string {
	switch s {
	case StickIdle:
		return "idle"
	case StickGrabbed:
		return "grabbed"
	default:
		return "unknown"
	}
}

type StickConfig struct {
	MaxAngle float64 `json:"max_angle"` // degrees
	DeadZone float64 `json:"dead_zone"` // degrees

	SpringBack      bool    `json:"spring_back"`
	SpringBackSpeed float64 `json:"spring_back_speed"` // degrees per second

	EnablePitch bool `json:"enable_pitch"`
	EnableRoll  bool `json:"enable_roll"`
	InvertPitch bool `json:"invert_pitch"`
	InvertRoll  bool `json:"invert_roll"`
}

func DefaultStickConfig() StickConfig {
	return StickConfig{
		MaxAngle:        30,
		DeadZone:        2,
		SpringBack:      true,
		SpringBackSpeed: 6,
		EnablePitch:     true,
		EnableRoll:      true,
	}
}

func (c *StickConfig) Validate(e *util.ErrorLogger) {
	e.Push("stick")
	defer e.Pop()

	if !(c.MaxAngle > 0 && c.MaxAngle <= 90) {
		e.ErrorString(`"max_angle" %g must be in (0, 90]`, c.MaxAngle)
	}
	if c.DeadZone < 0 || c.DeadZone >= c.MaxAngle {
		e.ErrorString(`"dead_zone" %g must be in [0, "max_angle")`, c.DeadZone)
	}
	if c.SpringBackSpeed < 0 {
		e.ErrorString(`"spring_back_speed" must not be negative`)
	}
}

// Grab is a per-tick sample of the hand holding the stick.
type Grab struct {
	Held bool
	// Direction is the vector from the stick's pivot to the hand, in the
	// pivot's local frame (+Y up, +Z forward, +X right).
	Direction mgl64.Vec3
}

// Stick turns hand positions into normalized roll and pitch axes. While
// grabbed, the axes follow the hand's tilt from upright; once released,
// they spring back toward center.
type Stick struct {
	Config StickConfig

	state       StickState
	roll, pitch float64
	tilt        float64
}

func NewStick(c StickConfig) *Stick {
	return &Stick{Config: c}
}

// Update advances the stick by dt seconds.
func (s *Stick) Update(g Grab, dt float64) {
	switch s.state {
	case StickIdle:
		if g.Held {
			s.state = StickGrabbed
			s.track(g.Direction)
		} else {
			s.springBack(dt)
		}

	case StickGrabbed:
		if g.Held {
			s.track(g.Direction)
		} else {
			s.state = StickIdle
		}
	}
}

func (s *Stick) track(dir mgl64.Vec3) {
	if dir.Dot(dir) < 1e-6 || !math.FiniteVec3(dir) {
		return
	}
	dir = dir.Normalize()

	maxAngle := s.Config.MaxAngle
	pitch := math.Degrees(gomath.Atan2(dir.Z(), dir.Y()))
	roll := math.Degrees(gomath.Atan2(-dir.X(), dir.Y()))
	if !s.Config.EnablePitch {
		pitch = 0
	}
	if !s.Config.EnableRoll {
		roll = 0
	}
	pitch = math.Clamp(pitch, -maxAngle, maxAngle)
	roll = math.Clamp(roll, -maxAngle, maxAngle)

	s.tilt = min(maxAngle, gomath.Sqrt(pitch*pitch+roll*roll))
	s.pitch = s.normalize(pitch, s.Config.InvertPitch)
	s.roll = s.normalize(roll, s.Config.InvertRoll)
}

func (s *Stick) normalize(angle float64, invert bool) float64 {
	if math.Abs(angle) < s.Config.DeadZone || s.Config.MaxAngle <= 0 {
		return 0
	}
	v := angle / s.Config.MaxAngle
	if invert {
		v = -v
	}
	return v
}

func (s *Stick) springBack(dt float64) {
	if !s.Config.SpringBack || dt <= 0 {
		return
	}

	// The (roll, pitch) pair moves toward the origin as a 2D vector.
	step := dt * s.Config.SpringBackSpeed / max(1, s.Config.MaxAngle)
	if mag := gomath.Hypot(s.roll, s.pitch); mag <= step {
		s.roll, s.pitch = 0, 0
	} else {
		f := (mag - step) / mag
		s.roll *= f
		s.pitch *= f
	}
	s.tilt = math.MoveTowards(s.tilt, 0, s.Config.SpringBackSpeed*dt)
}

func (s *Stick) State() StickState {
	return s.state
}

// Axes returns the normalized roll and pitch in [-1,1].
func (s *Stick) Axes() (roll, pitch float64) {
	return s.roll, s.pitch
}

// Tilt returns the stick's tilt from upright in degrees.
func (s *Stick) Tilt() float64 {
	return s.tilt
}

// Input returns the control Input for the stick's current axes along with
// the given throttle lever position and reset flag.
func (s *Stick) Input(throttleLever float64, reset bool) Input {
	return Input{
		Roll:          s.roll,
		Pitch:         s.pitch,
		ThrottleLever: throttleLever,
		Reset:         reset,
	}
}
