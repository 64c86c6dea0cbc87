// aero/model.go
// Copyright(c) 2022-2026 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aero

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/DogePool531/Augmented-Reality-Design-And-Fly/log"

	"github.com/go-gl/mathgl/mgl64"
	lru "github.com/hashicorp/golang-lru/v2"
)

// ScaleSource is implemented by the editors that own the wing, tail and
// fuselage scale vectors.
type ScaleSource interface {
	Scale() mgl64.Vec3
}

// StaticScale is a ScaleSource that always returns the same scale.
type StaticScale mgl64.Vec3

func (s StaticScale) Scale() mgl64.Vec3 { return mgl64.Vec3(s) }

// ScaleFunc adapts a function to the ScaleSource interface.
type ScaleFunc func() mgl64.Vec3

func (f ScaleFunc) Scale() mgl64.Vec3 { return f() }

type Sources struct {
	Wing     ScaleSource
	Tail     ScaleSource
	Fuselage ScaleSource
}

func (s Sources) missing() []string {
	var m []string
	if s.Wing == nil {
		m = append(m, "wing")
	}
	if s.Tail == nil {
		m = append(m, "tail")
	}
	if s.Fuselage == nil {
		m = append(m, "fuselage")
	}
	return m
}

type scaleKey [9]float64

const recomputeCacheSize = 64

// Model is the single writer of the Airframe snapshot: Recompute is
// called once per tick and reads the current scales from its sources.
type Model struct {
	Sources Sources

	// Only changed through SetLayout, since cached airframes depend on it.
	layout Layout

	airframe Airframe
	valid    bool

	// Scales rarely change from one tick to the next; cache clean
	// results so that we don't redo the work.
	cache *lru.Cache[scaleKey, Airframe]

	lg *log.Logger
}

func NewModel(src Sources, layout Layout, lg *log.Logger) *Model {
	c, err := lru.New[scaleKey, Airframe](recomputeCacheSize)
	if err != nil {
		// Only possible with a non-positive size.
		panic(err)
	}
	return &Model{
		Sources: src,
		layout:  layout,
		cache:   c,
		lg:      lg,
	}
}

// Recompute updates the airframe from the current scales. If any of the
// sources is missing, it returns an error wrapping ErrConfiguration along
// with the last valid airframe (if there is one; see Airframe). An error
// wrapping ErrDegenerateGeometry is informational: the returned airframe
// has been clamped and is safe to use.
func (m *Model) Recompute() (Airframe, error) {
	if err := m.Ready(); err != nil {
		m.lg.Warn("skipping geometry recompute", slog.Any("error", err))
		return m.airframe, err
	}

	wing, tail, fuselage := m.Sources.Wing.Scale(), m.Sources.Tail.Scale(), m.Sources.Fuselage.Scale()
	var key scaleKey
	copy(key[0:3], wing[:])
	copy(key[3:6], tail[:])
	copy(key[6:9], fuselage[:])

	if af, ok := m.cache.Get(key); ok {
		m.airframe, m.valid = af, true
		return af, nil
	}

	af, err := Compute(wing, tail, fuselage, m.layout, m.airframe)
	if err == nil {
		m.cache.Add(key, af)
	} else if errors.Is(err, ErrDegenerateGeometry) {
		m.lg.Debug("degenerate geometry", slog.Any("error", err))
	}
	m.airframe, m.valid = af, true

	return af, err
}

// Airframe returns the most recent airframe and whether there has been a
// successful recompute yet.
func (m *Model) Airframe() (Airframe, bool) {
	return m.airframe, m.valid
}

// SetLayout changes the attachment layout; cached results computed with
// the old layout are discarded.
func (m *Model) SetLayout(l Layout) {
	m.layout = l
	m.cache.Purge()
}

func (m *Model) Layout() Layout {
	return m.layout
}

// Ready returns an error wrapping ErrConfiguration if any of the scale
// sources is missing.
func (m *Model) Ready() error {
	if missing := m.Sources.missing(); len(missing) > 0 {
		return fmt.Errorf("%w: missing %v", ErrConfiguration, missing)
	}
	return nil
}
