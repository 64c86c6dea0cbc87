// control/control.go
// Copyright(c) 2022-2026 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package control

import (
	"github.com/DogePool531/Augmented-Reality-Design-And-Fly/math"
	"github.com/DogePool531/Augmented-Reality-Design-And-Fly/util"
)

// Input is the raw per-tick input from the control panel.
type Input struct {
	// Roll and Pitch are normalized stick axes in [-1,1].
	Roll  float64
	Pitch float64
	// ThrottleLever is the lever's linear position along its travel, in
	// meters.
	ThrottleLever float64
	// Reset is set while the reset button is pressed.
	Reset bool
}

// State holds the commands the flight solver consumes.
type State struct {
	Roll     float64 `json:"roll"`
	Pitch    float64 `json:"pitch"`
	Throttle float64 `json:"throttle"`
	Reset    bool    `json:"reset"`
}

// DefaultThrottleTravel is the length of the throttle lever's travel in
// meters.
const DefaultThrottleTravel = 0.3

// Settings collects the tunables for the control panel.
type Settings struct {
	ThrottleTravel float64 `json:"throttle_travel"`
	// ClampThrottle limits the throttle percentage to [0,1].
	ClampThrottle bool `json:"clamp_throttle"`

	ScaleRange            float64 `json:"scale_range"`
	SliderStartX          float64 `json:"slider_start_x"`
	SliderMaxDisplacement float64 `json:"slider_max_displacement"`

	Stick StickConfig `json:"stick"`
}

func DefaultSettings() Settings {
	return Settings{
		ThrottleTravel:        DefaultThrottleTravel,
		ClampThrottle:         true,
		ScaleRange:            DefaultScaleRange,
		SliderMaxDisplacement: 1,
		Stick:                 DefaultStickConfig(),
	}
}

func (s *Settings) Validate(e *util.ErrorLogger) {
	e.Push("control")
	defer e.Pop()

	if !(s.ThrottleTravel > 0) {
		e.ErrorString(`"throttle_travel" must be positive`)
	}
	if !(s.ScaleRange >= 1) {
		e.ErrorString(`"scale_range" must be at least 1`)
	}
	if math.Abs(s.SliderMaxDisplacement) < math.Epsilon {
		e.ErrorString(`"slider_max_displacement" must be nonzero`)
	}
	s.Stick.Validate(e)
}

// Mapper converts raw control inputs into a State.
type Mapper struct {
	ThrottleTravel float64
	ClampThrottle  bool
}

func NewMapper(s Settings) Mapper {
	return Mapper{ThrottleTravel: s.ThrottleTravel, ClampThrottle: s.ClampThrottle}
}

// Map returns the State for the given input. The stick axes pass through
// unchanged apart from non-finite values, which become zero.
func (m Mapper) Map(in Input) State {
	travel := m.ThrottleTravel
	if !(travel > 0) {
		travel = DefaultThrottleTravel
	}
	throttle := finiteOrZero(in.ThrottleLever) / travel
	if m.ClampThrottle {
		throttle = math.Clamp(throttle, 0, 1)
	}

	return State{
		Roll:     finiteOrZero(in.Roll),
		Pitch:    finiteOrZero(in.Pitch),
		Throttle: throttle,
		Reset:    in.Reset,
	}
}

func finiteOrZero(v float64) float64 {
	if math.IsFinite(v) {
		return v
	}
	return 0
}
