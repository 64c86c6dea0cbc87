// flight/errors.go
// Copyright(c) 2022-2026 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package flight

import "errors"

var (
	ErrConfiguration = errors.New("Missing rigid body or geometry reference")
	ErrNumericGuard  = errors.New("Non-finite force or torque replaced with zero")
	ErrNoRecording   = errors.New("Recording is empty")
)
