// log/stack.go
// Copyright(c) 2022-2026 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package log

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
)

const (
	modulePath = "github.com/DogePool531/Augmented-Reality-Design-And-Fly/"
	// Deep enough to get from a solver warning back to the tick loop.
	maxStackDepth = 16
)

// StackFrame identifies a single caller in a Callstack.
type StackFrame struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Function string `json:"function"`
}

// Callstack returns the callers of the function that called Callstack's
// caller, i.e. it skips the logging method itself. fr is reused if it has
// sufficient capacity. The walk stops at main.main or at the first frame
// of the Go runtime.
func Callstack(fr []StackFrame) []StackFrame {
	return callstack(fr, 4)
}

// callstack skips the given number of frames, counting runtime.Callers
// and callstack itself.
func callstack(fr []StackFrame, skip int) []StackFrame {
	var pcs [maxStackDepth]uintptr
	n := runtime.Callers(skip, pcs[:])

	fr = fr[:0]
	frames := runtime.CallersFrames(pcs[:n])
	for {
		f, more := frames.Next()
		if f.Function == "" || strings.HasPrefix(f.Function, "runtime.") {
			break
		}

		fr = append(fr, StackFrame{
			File:     filepath.Base(f.File),
			Line:     f.Line,
			Function: shortFunction(f.Function),
		})

		if !more || f.Function == "main.main" {
			break
		}
	}
	return fr
}

// shortFunction strips the module path and the main package qualifier so
// that "github.com/.../flight.(*Solver).Tick" logs as "flight.(*Solver).Tick".
func shortFunction(fn string) string {
	fn = strings.TrimPrefix(fn, modulePath)
	return strings.TrimPrefix(fn, "main.")
}

func (f StackFrame) String() string {
	return fmt.Sprintf("%s:%d:%s", f.File, f.Line, f.Function)
}
