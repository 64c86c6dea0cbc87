// cmd/designfly/replay.go
// Copyright(c) 2022-2026 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/DogePool531/Augmented-Reality-Design-And-Fly/flight"

	"github.com/goforj/godump"
)

// runReplay prints a one-line summary of each frame of a recording made
// by the sweep command, or the complete frame if full is set.
func runReplay(w io.Writer, filename string, full bool) error {
	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	return replay(w, bufio.NewReader(f), full)
}

func replay(w io.Writer, r io.Reader, full bool) error {
	n, trips := 0, 0
	for fr, err := range flight.ReadRecording(r) {
		if err != nil {
			return err
		}
		n++
		trips += fr.Output.GuardTrips

		if full {
			godump.Fdump(w, fr)
			continue
		}
		o := fr.Output
		fmt.Fprintf(w, "%6d scale %5.2f speed %7.2f aoa %7.2f yaw %7.2f lift %8.3f/%8.3f thrust %6.3f "+
			"roll %5.2f pitch %5.2f throttle %4.2f", o.Tick, o.Scale, o.Speed, o.AoA, o.Yaw, o.LiftLeft,
			o.LiftRight, o.Thrust, fr.Control.Roll, fr.Control.Pitch, fr.Control.Throttle)
		if fr.Control.Reset {
			fmt.Fprintf(w, " reset")
		}
		if o.GuardTrips > 0 {
			fmt.Fprintf(w, " guard %d", o.GuardTrips)
		}
		fmt.Fprintln(w)
	}
	if n == 0 {
		return flight.ErrNoRecording
	}

	fmt.Fprintf(w, "%d frames, %d guard trips\n", n, trips)
	return nil
}
