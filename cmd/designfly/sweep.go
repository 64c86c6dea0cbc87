// cmd/designfly/sweep.go
// Copyright(c) 2022-2026 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/DogePool531/Augmented-Reality-Design-And-Fly/control"
	"github.com/DogePool531/Augmented-Reality-Design-And-Fly/flight"
	"github.com/DogePool531/Augmented-Reality-Design-And-Fly/log"
	"github.com/DogePool531/Augmented-Reality-Design-And-Fly/math"
	"github.com/DogePool531/Augmented-Reality-Design-And-Fly/rand"
	"github.com/DogePool531/Augmented-Reality-Design-And-Fly/util"

	"github.com/brunoga/deep"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/shirou/gopsutil/v3/cpu"
	"golang.org/x/sync/errgroup"
)

const (
	sweepDt = 1. / 50
	// Beyond this the StaticBody's explicit integration has run away; the
	// case starts over from a fresh random state.
	sweepMaxSpeed = 500
)

type sweepOptions struct {
	Cases   int
	Ticks   int
	Workers int
	Seed    int64
}

type sweepResult struct {
	Case      int
	Frame     flight.Frame
	NonFinite bool
	Diverged  bool
}

type sweepStats struct {
	Cases, Ticks int
	GuardTrips   int
	NonFinite    int
	Diverged     int
	MaxSpeed     float64
	// FirstNonFinite is the first case that produced a non-finite output,
	// or -1.
	FirstNonFinite int
}

func (s *sweepStats) add(r sweepResult) {
	s.Ticks++
	s.GuardTrips += r.Frame.Output.GuardTrips
	s.MaxSpeed = max(s.MaxSpeed, r.Frame.Output.Speed)
	if r.Diverged {
		s.Diverged++
	}
	if r.NonFinite {
		s.NonFinite++
		if s.FirstNonFinite == -1 || r.Case < s.FirstNonFinite {
			s.FirstNonFinite = r.Case
		}
	}
}

func defaultWorkers() int {
	if n, err := cpu.Counts(false); err == nil && n > 0 {
		return n
	}
	return runtime.NumCPU()
}

func runSweep(w io.Writer, c Config, lg *log.Logger) error {
	opt := sweepOptions{Cases: *nCases, Ticks: *nTicks, Workers: *nWorkers, Seed: *seed}
	if opt.Workers <= 0 {
		opt.Workers = defaultWorkers()
	}

	var rec *flight.Recorder
	if *recordFile != "" {
		f, err := os.Create(*recordFile)
		if err != nil {
			return err
		}
		defer f.Close()

		if rec, err = flight.NewRecorder(f); err != nil {
			return err
		}
	}

	start := time.Now()
	stats, err := sweep(context.Background(), c, opt, rec, lg)
	if rec != nil {
		if cerr := rec.Close(); err == nil {
			err = cerr
		}
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%d cases, %d ticks in %s with %d workers\n", stats.Cases, stats.Ticks,
		time.Since(start).Round(time.Millisecond), opt.Workers)
	fmt.Fprintf(w, "guard trips: %d, diverged bodies: %d, max speed %.1f m/s\n", stats.GuardTrips,
		stats.Diverged, stats.MaxSpeed)
	if rec != nil {
		fmt.Fprintf(w, "recorded %d frames to %s\n", rec.Frames(), *recordFile)
	}
	if stats.NonFinite > 0 {
		return fmt.Errorf("%d ticks produced non-finite output, first in case %d", stats.NonFinite,
			stats.FirstNonFinite)
	}
	return nil
}

// sweep runs randomized cases across opt.Workers goroutines. Each case
// draws from its own generator seeded from opt.Seed and the case index,
// so the results don't depend on the number of workers. If rec is
// non-nil, every tick is recorded; frames from different workers are
// interleaved.
func sweep(ctx context.Context, c Config, opt sweepOptions, rec *flight.Recorder, lg *log.Logger) (sweepStats, error) {
	stats := sweepStats{Cases: opt.Cases, FirstNonFinite: -1}
	workers := max(1, opt.Workers)

	results := util.MakeChunkedChan[sweepResult](64, 2*workers)
	collected := make(chan error, 1)
	go func() {
		var err error
		for chunk := range results.Ch() {
			for _, r := range chunk {
				stats.add(r)
				if rec != nil && err == nil {
					err = rec.Record(r.Frame.Control, r.Frame.Output)
				}
			}
		}
		collected <- err
	}()

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for wk := range workers {
		eg.Go(func() error {
			s := results.Sender()
			defer s.Flush()

			wlg := lg.With(slog.Int("worker", wk))
			for i := wk; i < opt.Cases; i += workers {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := runCase(c, i, opt, s, wlg); err != nil {
					return fmt.Errorf("case %d: %w", i, err)
				}
			}
			return nil
		})
	}

	err := eg.Wait()
	results.Close()
	if cerr := <-collected; err == nil {
		err = cerr
	}
	return stats, err
}

type sweepCase struct {
	wing, tail, fuselage mgl64.Vec3
	state                flight.BodyState
	displacement         float64
}

func makeSweepCase(r *rand.Rand) sweepCase {
	sc := sweepCase{
		wing:         r.Vec3(-0.5, 4),
		tail:         r.Vec3(-0.5, 4),
		fuselage:     r.Vec3(-0.5, 4),
		state:        randomState(r),
		displacement: r.Range(-0.2, 1.2),
	}
	// Exercise exactly-zero dimensions too.
	if r.Intn(8) == 0 {
		v := rand.Sample(r, &sc.wing, &sc.tail, &sc.fuselage)
		v[r.Intn(3)] = 0
	}
	return sc
}

func randomState(r *rand.Rand) flight.BodyState {
	return flight.BodyState{
		Pose: flight.Pose{
			Position:    r.Vec3(-10, 10),
			Orientation: r.Quat(),
		},
		LinearVelocity:  r.Vec3(-40, 40),
		AngularVelocity: r.Vec3(-5, 5),
	}
}

func randomInput(r *rand.Rand, travel float64) control.Input {
	return control.Input{
		Roll:          r.Range(-1.5, 1.5),
		Pitch:         r.Range(-1.5, 1.5),
		ThrottleLever: r.Range(-0.2, 1.2) * travel,
		Reset:         r.Intn(50) == 0,
	}
}

func runCase(c Config, index int, opt sweepOptions, s *util.ChunkSender[sweepResult], lg *log.Logger) error {
	r := rand.Make(opt.Seed*1_000_003 + int64(index))
	sc := makeSweepCase(&r)

	rg := newRig(c, sc.wing, sc.tail, sc.fuselage, sc.state, lg)
	rg.scale.SetDisplacement(sc.displacement)

	for range opt.Ticks {
		ctl, out, err := rg.tick(randomInput(&r, c.Control.ThrottleTravel))
		if err != nil {
			return err
		}
		res := sweepResult{
			Case:      index,
			Frame:     flight.Frame{Control: ctl, Output: deep.MustCopy(out)},
			NonFinite: !out.Finite(),
		}

		rg.body.Integrate(sweepDt)
		st := rg.body.State
		if !math.FiniteVec3(st.LinearVelocity) || !math.FiniteVec3(st.AngularVelocity) ||
			!math.FiniteVec3(st.Pose.Position) || st.LinearVelocity.Len() > sweepMaxSpeed {
			res.Diverged = true
			rg.body.State = randomState(&r)
			rg.solver.SetOrigin(rg.body.State)
		}
		s.Send(res)
	}
	return nil
}
