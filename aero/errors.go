// aero/errors.go
// Copyright(c) 2022-2026 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aero

import "errors"

var (
	ErrConfiguration      = errors.New("Missing geometry reference")
	ErrDegenerateGeometry = errors.New("Degenerate airframe geometry")
)
