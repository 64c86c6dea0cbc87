// control/scale.go
// Copyright(c) 2022-2026 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package control

import (
	"github.com/DogePool531/Augmented-Reality-Design-And-Fly/math"

	"github.com/go-gl/mathgl/mgl64"
)

// DefaultScaleRange is the scale factor with the slider at its start.
const DefaultScaleRange = 20

// ScaleFor returns the scale factor for a slider displacement in [0,1]:
// scaleRange at 0, falling monotonically to 1 at 1.
func ScaleFor(displacement, scaleRange float64) float64 {
	return scaleRange / (displacement*(scaleRange-1) + 1)
}

// ScaleManager tracks the scale slider and derives the simulation scale
// factor from it.
type ScaleManager struct {
	Range float64
	// StartX and MaxDisplacement map the slider's local x position to a
	// displacement; MaxDisplacement may be negative if the slider travels
	// toward -x.
	StartX          float64
	MaxDisplacement float64

	displacement float64
}

func NewScaleManager(s Settings) *ScaleManager {
	return &ScaleManager{
		Range:           max(1, s.ScaleRange),
		StartX:          s.SliderStartX,
		MaxDisplacement: s.SliderMaxDisplacement,
	}
}

// SetSliderPosition updates the displacement from the slider's local x
// position.
func (sm *ScaleManager) SetSliderPosition(x float64) {
	sm.SetDisplacement(math.SafeDiv(x-sm.StartX, sm.MaxDisplacement))
}

// SetDisplacement sets the displacement directly; it is clamped to [0,1]
// and non-finite values are treated as 0.
func (sm *ScaleManager) SetDisplacement(d float64) {
	sm.displacement = math.Clamp(finiteOrZero(d), 0, 1)
}

func (sm *ScaleManager) Displacement() float64 {
	return sm.displacement
}

func (sm *ScaleManager) Scale() float64 {
	return ScaleFor(sm.displacement, max(1, sm.Range))
}

// VisualScale returns the scale to apply to auxiliary scenery so that it
// appears fixed in size as the aircraft is rescaled.
func (sm *ScaleManager) VisualScale(base mgl64.Vec3) mgl64.Vec3 {
	return base.Mul(1 / sm.Scale())
}
