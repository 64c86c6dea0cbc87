// cmd/designfly/polar.go
// Copyright(c) 2022-2026 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/DogePool531/Augmented-Reality-Design-And-Fly/aero"

	"github.com/guptarohit/asciigraph"
	"github.com/pkg/browser"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// runPolar prints the wing's lift and drag coefficients over a range of
// angles of attack, as a table and as terminal charts, and optionally
// writes a PNG chart.
func runPolar(w io.Writer, c Config) error {
	wing, tail, fuselage, err := parseScales()
	if err != nil {
		return err
	}
	af, err := aero.Compute(wing, tail, fuselage, c.Layout, aero.Airframe{})
	if err != nil && !errors.Is(err, aero.ErrDegenerateGeometry) {
		return err
	} else if err != nil {
		fmt.Fprintf(w, "warning: %v\n", err)
	}

	pts := aero.PolarTable(*polarMin, *polarMax, *polarStep, af.Wing.LiftSlope)
	if len(pts) == 0 {
		return errors.New("No angles of attack in range")
	}

	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "aoa\tcl\tcd\tl/d\t\n")
	for _, p := range pts {
		ld := 0.
		if p.Cd > 0 {
			ld = p.Cl / p.Cd
		}
		fmt.Fprintf(tw, "%.2f\t%.4f\t%.4f\t%.2f\t\n", p.AoA, p.Cl, p.Cd, ld)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	cl, cd := make([]float64, len(pts)), make([]float64, len(pts))
	for i, p := range pts {
		cl[i], cd[i] = p.Cl, p.Cd
	}
	caption := func(what string) asciigraph.Option {
		return asciigraph.Caption(fmt.Sprintf("%s vs. aoa %.1f..%.1f deg, lift slope %.3f/rad", what,
			pts[0].AoA, pts[len(pts)-1].AoA, af.Wing.LiftSlope))
	}
	width := min(len(pts), 100)
	fmt.Fprintf(w, "\n%s\n\n", asciigraph.Plot(cl, asciigraph.Height(12), asciigraph.Width(width), caption("Cl")))
	fmt.Fprintf(w, "%s\n", asciigraph.Plot(cd, asciigraph.Height(8), asciigraph.Width(width), caption("Cd")))

	if *pngFile == "" {
		return nil
	}
	if err := savePolarPNG(pts, *pngFile); err != nil {
		return err
	}
	fmt.Fprintf(w, "\nwrote %s\n", *pngFile)
	if *openPNG {
		return browser.OpenFile(*pngFile)
	}
	return nil
}

func savePolarPNG(pts []aero.PolarPoint, filename string) error {
	p := plot.New()
	p.Title.Text = "Wing polar"
	p.X.Label.Text = "angle of attack (deg)"
	p.Y.Label.Text = "coefficient"
	p.Add(plotter.NewGrid())

	for i, series := range []struct {
		name string
		y    func(aero.PolarPoint) float64
	}{
		{"Cl", func(p aero.PolarPoint) float64 { return p.Cl }},
		{"Cd", func(p aero.PolarPoint) float64 { return p.Cd }},
	} {
		xys := make(plotter.XYs, len(pts))
		for j, pt := range pts {
			xys[j].X, xys[j].Y = pt.AoA, series.y(pt)
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return err
		}
		line.LineStyle.Width = vg.Points(2)
		line.LineStyle.Color = plotutil.Color(i)
		p.Add(line)
		p.Legend.Add(series.name, line)
	}

	if err := p.Save(8*vg.Inch, 5*vg.Inch, filename); err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}
	return nil
}
