// flight/solver.go
// Copyright(c) 2022-2026 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package flight

import (
	"errors"
	"fmt"
	"log/slog"
	gomath "math"

	"github.com/DogePool531/Augmented-Reality-Design-And-Fly/aero"
	"github.com/DogePool531/Augmented-Reality-Design-And-Fly/control"
	"github.com/DogePool531/Augmented-Reality-Design-And-Fly/log"
	"github.com/DogePool531/Augmented-Reality-Design-And-Fly/math"
	"github.com/DogePool531/Augmented-Reality-Design-And-Fly/util"

	"github.com/brunoga/deep"
	"github.com/go-gl/mathgl/mgl64"
)

// Config holds the solver's tunable constants.
type Config struct {
	// RollAuthority scales the roll command into a torque coefficient.
	RollAuthority float64 `json:"roll_authority"`
	// PitchAuthority is the tail angle of attack shift, in degrees, at
	// full pitch command.
	PitchAuthority float64 `json:"pitch_authority"`
	// YawStability couples sideslip velocity into a lift differential
	// between the wing halves.
	YawStability float64 `json:"yaw_stability"`
	ThrustScale  float64 `json:"thrust_scale"`

	AirDensity float64 `json:"air_density"` // kg/m^3
	Gravity    float64 `json:"gravity"`     // m/s^2
	// MinMass is a floor on the airframe's unscaled mass.
	MinMass       float64 `json:"min_mass"`
	FuselageDragK float64 `json:"fuselage_drag"`

	// The wheels roll freely once the throttle exceeds WheelRelease.
	WheelFriction float64 `json:"wheel_friction"`
	WheelRelease  float64 `json:"wheel_release"`
}

func DefaultConfig() Config {
	return Config{
		RollAuthority:  1,
		PitchAuthority: 10,
		YawStability:   0.1,
		ThrustScale:    0.7,
		AirDensity:     1.225,
		Gravity:        9.81,
		MinMass:        0.1,
		FuselageDragK:  0.001,
		WheelFriction:  0.3,
		WheelRelease:   0.01,
	}
}

func (c *Config) Validate(e *util.ErrorLogger) {
	e.Push("flight")
	defer e.Pop()

	for _, v := range []struct {
		name string
		v    float64
	}{{"roll_authority", c.RollAuthority}, {"pitch_authority", c.PitchAuthority},
		{"yaw_stability", c.YawStability}, {"thrust_scale", c.ThrustScale},
		{"air_density", c.AirDensity}, {"gravity", c.Gravity}, {"min_mass", c.MinMass},
		{"fuselage_drag", c.FuselageDragK}, {"wheel_friction", c.WheelFriction},
		{"wheel_release", c.WheelRelease}} {
		if !math.IsFinite(v.v) || v.v < 0 {
			e.ErrorString("%q: %g must be a non-negative number", v.name, v.v)
		}
	}
	if !(c.MinMass > 0) {
		e.ErrorString(`"min_mass" must be positive`)
	}
}

// Context gives the solver its collaborators. Material and Logger are
// optional.
type Context struct {
	Body     Body
	Geometry *aero.Model
	Material FrictionMaterial
	Logger   *log.Logger
}

// Solver computes the aerodynamic and propulsive forces on the airframe
// once per fixed tick and issues them to the rigid body.
type Solver struct {
	Config Config

	ctx        Context
	origin     BodyState
	haveOrigin bool
	tick       int
	apps       []Application
}

// New returns a Solver for the given context. The body's state at this
// point is recorded as the origin that a reset returns to.
func New(ctx Context, cfg Config) *Solver {
	s := &Solver{
		Config: cfg,
		ctx:    ctx,
		apps:   make([]Application, 0, NumApplicationKinds),
	}
	if ctx.Body != nil {
		s.origin = deep.MustCopy(snapshot(ctx.Body))
		s.haveOrigin = true
	}
	return s
}

// Origin returns the state that the body is reset to.
func (s *Solver) Origin() (BodyState, bool) {
	return s.origin, s.haveOrigin
}

// SetOrigin replaces the reset origin.
func (s *Solver) SetOrigin(o BodyState) {
	s.origin = deep.MustCopy(o)
	s.haveOrigin = true
}

// Tick runs one fixed step: it handles a pending reset, recomputes the
// airframe, computes every force and torque for the current body state
// and issues them to the body. It returns an error wrapping
// ErrConfiguration, having applied nothing, if a collaborator is
// missing.
func (s *Solver) Tick(ctl control.State, scale float64) (Output, error) {
	out := Output{Tick: s.tick, Reset: ctl.Reset}
	s.tick++
	lg := s.ctx.Logger

	body := s.ctx.Body
	if body == nil || s.ctx.Geometry == nil {
		lg.Warn("flight solver is missing a collaborator", slog.Bool("body", body != nil),
			slog.Bool("geometry", s.ctx.Geometry != nil))
		return out, ErrConfiguration
	}

	// Nothing, including a reset, touches the body unless the geometry
	// can be recomputed.
	if err := s.ctx.Geometry.Ready(); err != nil {
		lg.Warn("skipping tick", slog.Any("error", err))
		return out, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	if ctl.Reset && s.haveOrigin {
		o := s.origin
		body.SetPose(o.Pose)
		body.SetVelocity(mgl64.Vec3{}, mgl64.Vec3{})
	}

	af, err := s.ctx.Geometry.Recompute()
	if errors.Is(err, aero.ErrConfiguration) {
		lg.Warn("skipping tick", slog.Any("error", err))
		return out, fmt.Errorf("%w: %w", ErrConfiguration, err)
	} else if err != nil {
		lg.Debug("continuing with clamped geometry", slog.Any("error", err))
	}

	if !math.IsFinite(scale) || scale <= 0 {
		out.GuardTrips++
		scale = 1
	}
	out.Scale = scale
	s2, s3 := scale*scale, scale*scale*scale

	cfg := &s.Config
	out.Mass = max(cfg.MinMass, af.TotalMass) * s3
	body.SetMassProperties(out.Mass, mgl64.Vec3{0, 0, af.CG})

	pose := body.Pose()
	q := math.SafeQuat(pose.Orientation)
	forward, right, up := math.Axes(q)
	linear, _ := body.Velocity()

	// Apparent airspeed.
	v, bad := math.GuardVec3(linear.Mul(scale))
	if bad {
		out.GuardTrips++
	}
	out.Speed = v.Len()

	// Both wing halves see the same angle of attack; the elevator is
	// modeled as a shift in the tail's angle of attack.
	out.AoA = math.SignedAngle(forward, v, right)
	out.Yaw = math.SignedAngle(forward, v, up)
	out.TailAoA = out.AoA + cfg.PitchAuthority*ctl.Pitch - af.Incidence

	clWing, cdWing := aero.Polar(out.AoA, af.Wing.LiftSlope)
	clTail, cdTail := aero.Polar(out.TailAoA, af.HTail.LiftSlope)
	clFin, cdFin := aero.Polar(out.Yaw, af.VTail.LiftSlope)

	out.DynamicPressure = 0.5 * cfg.AirDensity * out.Speed * out.Speed
	qs := out.DynamicPressure * s2

	out.LiftLeft = clWing * af.Wing.Area * 0.5 * qs
	out.LiftRight = out.LiftLeft
	out.DragLeft = cdWing * af.Wing.Area * 0.5 * qs
	out.DragRight = out.DragLeft
	out.TailLift = clTail * af.HTail.Area * qs
	out.TailDrag = (cdTail*af.HTail.Area + cdFin*af.VTail.Area) * qs
	out.YawForce = clFin * af.VTail.Area * qs
	out.FuselageDrag = cfg.FuselageDragK * qs

	// Sideslip raises lift on one wing half and lowers it on the other.
	f := cfg.YawStability * v.Dot(right)
	out.LiftRight *= 1 + f
	out.LiftLeft *= 1 - f

	out.Weight = cfg.Gravity * af.TotalMass * s2
	out.RollTorque = ctl.Roll * cfg.RollAuthority * qs
	out.Thrust = s3 * cfg.ThrustScale / gomath.Sqrt(out.Speed*out.Speed+1) * ctl.Throttle

	out.GroundFriction = cfg.WheelFriction
	if ctl.Throttle > cfg.WheelRelease {
		out.GroundFriction = 0
	}

	for _, p := range out.scalars() {
		if !math.IsFinite(*p) {
			*p = 0
			out.GuardTrips++
		}
	}

	pos := pose.Position
	layout := s.ctx.Geometry.Layout()
	wing := pos.Add(q.Rotate(layout.WingCenter))
	tail := pos.Add(q.Rotate(layout.TailCenter))
	halfSpan := right.Mul(af.Wing.Span * 0.25)
	leftWing, rightWing := wing.Sub(halfSpan), wing.Add(halfSpan)
	drag := math.Normalize(v).Mul(-1)

	s.apps = append(s.apps[:0],
		Application{Kind: LiftRight, Vector: up.Mul(out.LiftRight), Point: rightWing},
		Application{Kind: LiftLeft, Vector: up.Mul(out.LiftLeft), Point: leftWing},
		Application{Kind: TailLift, Vector: up.Mul(out.TailLift), Point: tail},
		Application{Kind: YawForce, Vector: right.Mul(-out.YawForce), Point: tail},
		Application{Kind: DragRight, Vector: drag.Mul(out.DragRight), Point: rightWing},
		Application{Kind: DragLeft, Vector: drag.Mul(out.DragLeft), Point: leftWing},
		Application{Kind: TailDrag, Vector: drag.Mul(out.TailDrag), Point: tail},
		Application{Kind: FuselageDrag, Vector: drag.Mul(out.FuselageDrag), Point: pos},
		Application{Kind: Weight, Vector: mgl64.Vec3{0, -out.Weight, 0}, Point: pos},
		Application{Kind: RollTorque, Vector: forward.Mul(out.RollTorque)},
		Application{Kind: Thrust, Vector: forward.Mul(out.Thrust), Point: pos},
	)

	for i := range s.apps {
		out.GuardTrips += guard(&s.apps[i])
		s.issue(body, s.apps[i])
	}
	out.Applications = s.apps

	if out.GuardTrips > 0 {
		lg.Warn("numeric guard tripped", slog.Any("error", ErrNumericGuard),
			slog.Int("tick", out.Tick), slog.Int("count", out.GuardTrips))
	}

	if s.ctx.Material != nil {
		s.ctx.Material.SetDynamicFriction(out.GroundFriction)
	}

	return out, nil
}

// guard zeroes an application's vector if it or its point is non-finite;
// a non-finite point is also zeroed so that the host can't derive a
// non-finite torque from it.
func guard(a *Application) int {
	if math.FiniteVec3(a.Vector) && math.FiniteVec3(a.Point) {
		return 0
	}
	a.Vector = mgl64.Vec3{}
	if !math.FiniteVec3(a.Point) {
		a.Point = mgl64.Vec3{}
	}
	return 1
}

func (s *Solver) issue(body Body, a Application) {
	switch {
	case a.Kind.IsTorque():
		body.AddTorque(a.Vector)
	case a.Kind.AtCenterOfMass():
		body.AddForce(a.Vector)
	default:
		body.AddForceAtPosition(a.Vector, a.Point)
	}
}
