// cmd/designfly/config.go
// Copyright(c) 2022-2026 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/DogePool531/Augmented-Reality-Design-And-Fly/aero"
	"github.com/DogePool531/Augmented-Reality-Design-And-Fly/control"
	"github.com/DogePool531/Augmented-Reality-Design-And-Fly/flight"
	"github.com/DogePool531/Augmented-Reality-Design-And-Fly/log"
	"github.com/DogePool531/Augmented-Reality-Design-And-Fly/math"
	"github.com/DogePool531/Augmented-Reality-Design-And-Fly/util"

	"github.com/go-gl/mathgl/mgl64"
)

// Config collects everything that can be overridden with -config. Fields
// missing from the file keep their default values.
type Config struct {
	Flight  flight.Config    `json:"flight"`
	Layout  aero.Layout      `json:"layout"`
	Control control.Settings `json:"control"`
}

func DefaultConfig() Config {
	return Config{
		Flight:  flight.DefaultConfig(),
		Layout:  aero.DefaultLayout(),
		Control: control.DefaultSettings(),
	}
}

// LoadConfig returns the default configuration, updated from the JSON
// file at path if path is non-empty.
func LoadConfig(path string, lg *log.Logger) (Config, error) {
	c := DefaultConfig()
	if path == "" {
		return c, nil
	}

	var e util.ErrorLogger
	util.LoadJSONFile(path, &c, &e)
	if !e.HaveErrors() {
		c.Validate(&e)
	}
	if e.HaveErrors() {
		e.PrintErrors(lg)
		return c, e.Err()
	}

	lg.Info("loaded configuration", slog.String("path", path))
	return c, nil
}

func (c *Config) Validate(e *util.ErrorLogger) {
	c.Flight.Validate(e)
	c.Control.Validate(e)

	e.Push("layout")
	for _, v := range []mgl64.Vec3{c.Layout.WingCenter, c.Layout.TailCenter, c.Layout.FuselageCenter} {
		if !math.FiniteVec3(v) {
			e.ErrorString("%v: attachment points must be finite", v)
		}
	}
	e.Pop()
}

// parseVec3 parses a vector given as "x,y,z".
func parseVec3(s string) (mgl64.Vec3, error) {
	var v mgl64.Vec3
	f := strings.Split(s, ",")
	if len(f) != 3 {
		return v, fmt.Errorf("%q: expected three comma-separated values", s)
	}
	for i, c := range f {
		var err error
		if v[i], err = strconv.ParseFloat(strings.TrimSpace(c), 64); err != nil {
			return v, fmt.Errorf("%q: %w", s, err)
		}
	}
	return v, nil
}
