// util/prof.go
// Copyright(c) 2022-2026 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
)

// Profiler optionally records CPU and heap profiles for a command-line
// run. The zero value does nothing.
type Profiler struct {
	cpu, mem *os.File
}

// CreateProfiler starts a CPU profile written to cpu and arranges for a
// heap profile to be written to mem at Cleanup; either may be empty.
func CreateProfiler(cpu, mem string) (*Profiler, error) {
	p := &Profiler{}

	var err error
	if cpu != "" {
		if p.cpu, err = os.Create(cpu); err != nil {
			return nil, fmt.Errorf("%s: unable to create CPU profile file: %w", cpu, err)
		} else if err = pprof.StartCPUProfile(p.cpu); err != nil {
			p.cpu.Close()
			return nil, fmt.Errorf("unable to start CPU profile: %w", err)
		}
	}

	if mem != "" {
		if p.mem, err = os.Create(mem); err != nil {
			p.Cleanup()
			return nil, fmt.Errorf("%s: unable to create memory profile file: %w", mem, err)
		}
	}

	if p.cpu != nil || p.mem != nil {
		// Sweeps can run for a while; write the profiles out on ctrl-c.
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt)

		go func() {
			<-sig
			p.Cleanup()
			os.Exit(1)
		}()
	}

	return p, nil
}

func (p *Profiler) Cleanup() {
	if p == nil {
		return
	}
	if p.cpu != nil {
		pprof.StopCPUProfile()
		p.cpu.Close()
		p.cpu = nil
	}
	if p.mem != nil {
		if err := pprof.WriteHeapProfile(p.mem); err != nil {
			fmt.Fprintf(os.Stderr, "unable to write memory profile file: %v\n", err)
		}
		p.mem.Close()
		p.mem = nil
	}
}
