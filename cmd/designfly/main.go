// cmd/designfly/main.go
// Copyright(c) 2022-2026 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// designfly evaluates the flight model outside of the AR host: it prints
// the forces for a single airframe and flight condition, charts the
// airfoil polar, runs randomized sweeps looking for numeric failures and
// replays recorded sweeps.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/DogePool531/Augmented-Reality-Design-And-Fly/log"
	"github.com/DogePool531/Augmented-Reality-Design-And-Fly/util"

	"github.com/apenwarr/fixconsole"
)

var (
	cpuprofile = flag.String("cpuprofile", "", "write CPU profile to file")
	memprofile = flag.String("memprofile", "", "write memory profile to this file")
	logLevel   = flag.String("loglevel", "info", "logging level: debug, info, warn, error")
	logDir     = flag.String("logdir", "", "log file directory")
	configFile = flag.String("config", "", "JSON file with solver, layout and control settings")

	wingScale     = flag.String("wing", "1,1,1", "wing scale as x,y,z")
	tailScale     = flag.String("tail", "1,1,1", "tail scale as x,y,z")
	fuselageScale = flag.String("fuselage", "1,1,1", "fuselage scale as x,y,z")
	displacement  = flag.Float64("displacement", 1, "scale slider displacement in [0,1]; 1 flies at full size")

	speed    = flag.Float64("speed", 10, "body speed in m/s; the airspeed is this times the slider's scale factor")
	aoa      = flag.Float64("aoa", 0, "angle of attack in degrees")
	sideslip = flag.Float64("sideslip", 0, "sideslip angle in degrees, positive to the right")
	roll     = flag.Float64("roll", 0, "roll command in [-1,1]")
	pitch    = flag.Float64("pitch", 0, "pitch command in [-1,1]")
	throttle = flag.Float64("throttle", 0, "throttle as a fraction of the lever's travel")

	polarMin  = flag.Float64("min", -30, "lowest angle of attack to chart, degrees")
	polarMax  = flag.Float64("max", 30, "highest angle of attack to chart, degrees")
	polarStep = flag.Float64("step", 0.5, "angle of attack step, degrees")
	pngFile   = flag.String("png", "", "also write the polar chart to this PNG file")
	openPNG   = flag.Bool("open", false, "open the PNG chart once it has been written")

	nCases     = flag.Int("n", 10000, "number of randomized sweep cases")
	nTicks     = flag.Int("ticks", 50, "ticks to simulate per sweep case")
	nWorkers   = flag.Int("nworkers", 0, "sweep worker goroutines (0: one per physical core)")
	seed       = flag.Int64("seed", 1, "sweep random seed")
	recordFile = flag.String("record", "", "write every sweep frame to this file")
	dump       = flag.Bool("dump", false, "dump each replayed frame in full")
)

func main() {
	flag.Parse()

	usage := func() {
		fmt.Fprintf(os.Stderr, "usage: designfly [flags] [forces|polar|sweep|replay <file>]\nwhere [flags] may be:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := fixconsole.FixConsoleIfNeeded(); err != nil {
		fmt.Fprintf(os.Stderr, "FixConsole: %v\n", err)
	}

	lg := log.New(*logLevel, *logDir)
	defer lg.CatchAndReportCrash()

	prof, err := util.CreateProfiler(*cpuprofile, *memprofile)
	if err != nil {
		lg.Errorf("%v", err)
	}
	defer prof.Cleanup()

	config, err := LoadConfig(*configFile, lg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", *configFile, err)
		os.Exit(1)
	}

	if flag.NArg() == 0 {
		usage()
	}
	switch cmd := strings.ToLower(flag.Arg(0)); cmd {
	case "forces":
		err = runForces(os.Stdout, config, lg)
	case "polar":
		err = runPolar(os.Stdout, config)
	case "sweep":
		err = runSweep(os.Stdout, config, lg)
	case "replay":
		if flag.NArg() != 2 {
			usage()
		}
		err = runReplay(os.Stdout, flag.Arg(1), *dump)
	default:
		usage()
	}

	if err != nil {
		lg.Errorf("%s: %v", flag.Arg(0), err)
		prof.Cleanup()
		os.Exit(1)
	}
}
