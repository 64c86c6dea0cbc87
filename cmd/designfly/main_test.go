// cmd/designfly/main_test.go
// Copyright(c) 2022-2026 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"bytes"
	"context"
	"encoding/json"
	gomath "math"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/DogePool531/Augmented-Reality-Design-And-Fly/control"
	"github.com/DogePool531/Augmented-Reality-Design-And-Fly/flight"

	"github.com/go-gl/mathgl/mgl64"
)

func TestParseVec3(t *testing.T) {
	for _, test := range []struct {
		s   string
		v   mgl64.Vec3
		bad bool
	}{
		{s: "1,2,3", v: mgl64.Vec3{1, 2, 3}},
		{s: " 0.5, -1 ,2e1", v: mgl64.Vec3{0.5, -1, 20}},
		{s: "1,2", bad: true},
		{s: "1,2,3,4", bad: true},
		{s: "1,x,3", bad: true},
		{s: "", bad: true},
	} {
		v, err := parseVec3(test.s)
		if test.bad {
			if err == nil {
				t.Errorf("%q: expected an error", test.s)
			}
		} else if err != nil {
			t.Errorf("%q: unexpected error %v", test.s, err)
		} else if v != test.v {
			t.Errorf("%q: got %v, expected %v", test.s, v, test.v)
		}
	}
}

func TestVelocityFor(t *testing.T) {
	for _, test := range []struct {
		aoa, sideslip float64
	}{{0, 0}, {5, 0}, {-8, 0}, {0, 7}, {0, -12}} {
		st := flight.BodyState{LinearVelocity: velocityFor(15, test.aoa, test.sideslip)}
		r := newRig(DefaultConfig(), mgl64.Vec3{2, 1, 1}, mgl64.Vec3{1, 1, 1}, mgl64.Vec3{1, 2, 1}, st, nil)
		r.scale.SetDisplacement(1)
		_, out, err := r.tick(control.Input{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Scale != 1 || gomath.Abs(out.Speed-15) > 1e-9 {
			t.Errorf("%+v: got speed %g at scale %g, expected 15 at 1", test, out.Speed, out.Scale)
		}

		// At the slider's other end, the airspeed is scaled up.
		r.scale.SetDisplacement(0)
		_, out, err = r.tick(control.Input{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Scale != control.DefaultScaleRange || gomath.Abs(out.Speed-15*control.DefaultScaleRange) > 1e-9 {
			t.Errorf("%+v: got speed %g at scale %g, expected %g", test, out.Speed, out.Scale,
				float64(15*control.DefaultScaleRange))
		}
		// Each angle is measured in three dimensions, so only the one
		// being varied is checked.
		if test.sideslip == 0 && gomath.Abs(out.AoA-test.aoa) > 1e-6 {
			t.Errorf("%+v: got aoa %g", test, out.AoA)
		}
		if test.aoa == 0 && gomath.Abs(out.Yaw-test.sideslip) > 1e-6 {
			t.Errorf("%+v: got yaw %g", test, out.Yaw)
		}
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	write := func(name, contents string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	c, err := LoadConfig("", nil)
	if err != nil || c.Flight != flight.DefaultConfig() {
		t.Errorf("empty path: got %+v, %v; expected the defaults", c, err)
	}

	c, err = LoadConfig(write("ok.json",
		`{"flight": {"thrust_scale": 1.5}, "layout": {"tail_center": [0, 0, -0.6]}, "control": {"scale_range": 10}}`), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Flight.ThrustScale != 1.5 || c.Flight.Gravity != 9.81 {
		t.Errorf("got flight config %+v", c.Flight)
	}
	if c.Layout.TailCenter != (mgl64.Vec3{0, 0, -0.6}) || c.Layout.WingCenter != (mgl64.Vec3{0, 0, 0.05}) {
		t.Errorf("got layout %+v", c.Layout)
	}
	if c.Control.ScaleRange != 10 || c.Control.ThrottleTravel != control.DefaultThrottleTravel {
		t.Errorf("got control settings %+v", c.Control)
	}

	for _, bad := range []string{
		`{"flihgt": {}}`,
		`{"flight": {"gravity": -1}}`,
		`{"control": {"scale_range": 0.5}}`,
		`{"flight": `,
	} {
		if _, err := LoadConfig(write("bad.json", bad), nil); err == nil {
			t.Errorf("%s: expected an error", bad)
		}
	}
	if _, err := LoadConfig(filepath.Join(dir, "missing.json"), nil); err == nil {
		t.Errorf("expected an error for a missing file")
	}
}

func TestForcesReport(t *testing.T) {
	st := flight.BodyState{LinearVelocity: velocityFor(20, 4, 0)}
	r := newRig(DefaultConfig(), mgl64.Vec3{2, 1, 1}, mgl64.Vec3{1, 1, 1}, mgl64.Vec3{1, 2, 1}, st, nil)
	ctl, out, err := r.tick(control.Input{ThrottleLever: 0.15})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ctl.Throttle != 0.5 {
		t.Errorf("got throttle %g, expected 0.5", ctl.Throttle)
	}

	af, _ := r.model.Airframe()
	o := forcesReport(ctl, af, out, r.body, r.material.DynamicFriction)

	keys := []string{"control", "scale", "mass", "airframe", "flow", "forces", "applications",
		"net_force", "net_torque", "ground_friction", "guard_trips"}
	if !slices.Equal(o.Keys(), keys) {
		t.Errorf("got keys %v, expected %v", o.Keys(), keys)
	}

	b, err := json.Marshal(o)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded struct {
		Applications []map[string]any `json:"applications"`
		Friction     float64          `json:"ground_friction"`
	}
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(decoded.Applications) != int(flight.NumApplicationKinds) {
		t.Errorf("got %d applications, expected %d", len(decoded.Applications), flight.NumApplicationKinds)
	}
	if decoded.Friction != 0 {
		t.Errorf("got friction %g with the throttle open, expected 0", decoded.Friction)
	}
}

func TestSweep(t *testing.T) {
	opt := sweepOptions{Cases: 40, Ticks: 10, Workers: 3, Seed: 7}

	var buf bytes.Buffer
	rec, err := flight.NewRecorder(&buf)
	if err != nil {
		t.Fatal(err)
	}
	stats, err := sweep(context.Background(), DefaultConfig(), opt, rec, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := rec.Close(); err != nil {
		t.Fatal(err)
	}

	if stats.Ticks != opt.Cases*opt.Ticks || rec.Frames() != stats.Ticks {
		t.Errorf("got %d ticks, %d frames; expected %d", stats.Ticks, rec.Frames(), opt.Cases*opt.Ticks)
	}
	if stats.NonFinite != 0 || stats.FirstNonFinite != -1 {
		t.Errorf("got %d non-finite ticks, first in case %d", stats.NonFinite, stats.FirstNonFinite)
	}

	// The results don't depend on the number of workers.
	opt.Workers = 1
	single, err := sweep(context.Background(), DefaultConfig(), opt, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if single != stats {
		t.Errorf("one worker gave %+v, three gave %+v", single, stats)
	}

	var out strings.Builder
	if err := replay(&out, &buf, false); err != nil {
		t.Fatalf("replay: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != stats.Ticks+1 || !strings.HasPrefix(lines[len(lines)-1], "400 frames") {
		t.Errorf("got %d lines ending with %q", len(lines), lines[len(lines)-1])
	}
}

func TestSweepCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := sweep(ctx, DefaultConfig(), sweepOptions{Cases: 10, Ticks: 5, Workers: 2}, nil, nil); err == nil {
		t.Errorf("expected an error from a canceled sweep")
	}
}

func TestReplayEmpty(t *testing.T) {
	var buf bytes.Buffer
	rec, err := flight.NewRecorder(&buf)
	if err != nil {
		t.Fatal(err)
	}
	rec.Close()

	if err := replay(&strings.Builder{}, &buf, false); err != flight.ErrNoRecording {
		t.Errorf("got %v, expected ErrNoRecording", err)
	}
}
