// Package plot renders stress-strain and stress-time charts to PNG files.
// Rendering is a side effect of a run: a failure here is reported to the
// caller so it can degrade to report-only output, never abort computation.
package plot

import (
	"fmt"
	"image/color"
	"math"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"astmd/domain/material"
)

var (
	sampleGray = color.RGBA{R: 0xB2, G: 0xB2, B: 0xB2, A: 0xFF}
	overlayRed = color.RGBA{R: 0xCC, A: 0xFF}
)

// Renderer writes charts into Dir.
type Renderer struct {
	Dir string
}

func NewRenderer(dir string) *Renderer {
	return &Renderer{Dir: dir}
}

// SampleCurves draws every sample curve in gray with the average curve
// overlaid in red, one legend entry each.
func (r *Renderer) SampleCurves(file, title, xLabel, yLabel string, samples []material.Series, average *material.Series) error {
	p := newChart(title, xLabel, yLabel)

	var last *plotter.Line
	for _, s := range samples {
		line, err := plotter.NewLine(toXYs(s))
		if err != nil {
			return fmt.Errorf("plot %s: %w", file, err)
		}
		line.Color = sampleGray
		p.Add(line)
		last = line
	}
	if last != nil {
		p.Legend.Add("Samples", last)
	}

	if average != nil {
		avg, err := plotter.NewLine(toXYs(*average))
		if err != nil {
			return fmt.Errorf("plot %s: %w", file, err)
		}
		avg.Color = overlayRed
		p.Add(avg)
		p.Legend.Add("Average", avg)
	}

	return r.save(p, file)
}

// ModulusOverlay draws one curve with the line y = modulus*x overlaid up
// to the curve's peak, the usual visual check that the fitted slope tracks
// the initial linear region.
func (r *Renderer) ModulusOverlay(file, title, xLabel, yLabel string, curve material.Series, modulus float64) error {
	p := newChart(title, xLabel, yLabel)

	line, err := plotter.NewLine(toXYs(curve))
	if err != nil {
		return fmt.Errorf("plot %s: %w", file, err)
	}
	p.Add(line)
	p.Legend.Add("SS Curve", line)

	fit, err := plotter.NewLine(modulusXYs(curve, modulus))
	if err != nil {
		return fmt.Errorf("plot %s: %w", file, err)
	}
	fit.Color = overlayRed
	p.Add(fit)
	p.Legend.Add("Modulus", fit)

	return r.save(p, file)
}

// ValidationOverlay draws every sample with its own modulus line, used when
// a run is asked to validate the per-sample fits. moduli[i] belongs to
// samples[i]; samples without a modulus pass NaN and get no overlay.
func (r *Renderer) ValidationOverlay(file, title, xLabel, yLabel string, samples []material.Series, moduli []float64) error {
	p := newChart(title, xLabel, yLabel)

	var lastCurve, lastFit *plotter.Line
	for i, s := range samples {
		line, err := plotter.NewLine(toXYs(s))
		if err != nil {
			return fmt.Errorf("plot %s: %w", file, err)
		}
		line.Color = sampleGray
		p.Add(line)
		lastCurve = line

		if i < len(moduli) && !math.IsNaN(moduli[i]) {
			fit, err := plotter.NewLine(modulusXYs(s, moduli[i]))
			if err != nil {
				return fmt.Errorf("plot %s: %w", file, err)
			}
			fit.Color = overlayRed
			p.Add(fit)
			lastFit = fit
		}
	}
	if lastCurve != nil {
		p.Legend.Add("Samples", lastCurve)
	}
	if lastFit != nil {
		p.Legend.Add("Modulus", lastFit)
	}

	return r.save(p, file)
}

func newChart(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())
	return p
}

func (r *Renderer) save(p *plot.Plot, file string) error {
	path := filepath.Join(r.Dir, file)
	if err := p.Save(8*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func toXYs(s material.Series) plotter.XYs {
	n := s.Len()
	if len(s.X) < n {
		n = len(s.X)
	}
	xys := make(plotter.XYs, n)
	for i := 0; i < n; i++ {
		xys[i].X = s.X[i]
		xys[i].Y = s.Y[i]
	}
	return xys
}

// modulusXYs builds the y = modulus*x line over the curve's x values up to
// its peak.
func modulusXYs(s material.Series, modulus float64) plotter.XYs {
	peak, _ := s.MaxY()
	if peak < 0 {
		return nil
	}
	xys := make(plotter.XYs, peak+1)
	for i := 0; i <= peak; i++ {
		xys[i].X = s.X[i]
		xys[i].Y = s.X[i] * modulus
	}
	return xys
}
