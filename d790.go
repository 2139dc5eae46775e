package astmd

import (
	"errors"
	"math"

	"astmd/adapters/loader"
	"astmd/adapters/plot"
	"astmd/adapters/report"
	"astmd/domain/core"
	"astmd/domain/material"
	"astmd/internal/analysis"
)

// D790Options configures a flexural run.
type D790Options struct {
	MaterialName string
	// LargeSpan applies the D790 Eq. 4 large-span correction factor to
	// the stress; Eq. 3 is used otherwise.
	LargeSpan bool
	// ValidateModulus adds a chart overlaying every sample's own modulus
	// line for visual verification of the fits.
	ValidateModulus bool
	Output          OutputOptions
}

// Tangent-modulus slope search over the load-deflection record: fit
// windows of 25 samples every 5 samples and take the steepest.
const (
	d790SlopeWindow = 25
	d790SlopeStride = 5
)

// D790 computes flexural properties (ASTM D790) for one set of sample
// files. widths and depths carry one entry per file (mm); span is shared
// (mm). Samples that fail are excluded from the aggregates and noted in
// the report; the invocation fails only on argument-shape errors or when
// no sample at all succeeded.
func D790(files []string, widths, depths []float64, span float64, opts D790Options) (*material.Material, error) {
	if err := checkLengths(len(files),
		namedList{"widths", len(widths)},
		namedList{"depths", len(depths)},
	); err != nil {
		return nil, err
	}

	m := material.New(material.StandardD790, opts.MaterialName)
	for i := range files {
		m.Add(d790Sample(files[i], widths[i], depths[i], span, opts.LargeSpan))
	}
	if err := finalize(m, true); err != nil {
		return nil, err
	}

	spanValue := joinValues([]float64{span}, "mm")
	if opts.LargeSpan {
		spanValue += " (Large span)"
	}
	spec := report.Spec{
		Params: []report.Param{
			{Label: "Width of samples", Value: joinValues(widths, "mm")},
			{Label: "Depths of samples", Value: joinValues(depths, "mm")},
			{Label: "Span used", Value: spanValue},
		},
		StrengthLabel: "Flexural strength",
		ModulusLabel:  "Tangent modulus",
	}

	dir := resolveDir(opts.Output, files)
	render := func(r *plot.Renderer) error {
		const (
			xLabel = "Strain at the bottom face of the sample (mm/mm)"
			yLabel = "Stress at bottom face of the sample (MPa)"
		)
		avg := m.AvgCurve
		if err := r.SampleCurves("D790_stress_strain.png", "Stress-Strain curve", xLabel, yLabel, m.Curves(), &avg); err != nil {
			return err
		}
		if m.Modulus != nil {
			if err := r.ModulusOverlay("D790_modulus.png", "Tangent modulus and Stress Strain curve",
				"Strain (mm/mm)", "Stress (MPa)", avg, m.Modulus.Mean); err != nil {
				return err
			}
		}
		if opts.ValidateModulus {
			return r.ValidationOverlay("D790_modulus_validation.png", "Per-sample tangent modulus",
				"Strain (mm/mm)", "Stress (MPa)", m.Curves(), sampleModuli(m))
		}
		return nil
	}
	if err := writeArtifacts(m, spec, opts.Output, dir, render); err != nil {
		return nil, err
	}
	return m, nil
}

func d790Sample(file string, width, depth, span float64, largeSpan bool) *material.Sample {
	s := &material.Sample{
		File:     file,
		Geometry: material.Geometry{Width: width, Depth: depth, Span: span},
	}
	fail := func(err error) *material.Sample {
		s.Err = err
		return s
	}

	if width <= 0 {
		return fail(core.NewInvalidGeometryError(file, "width", width))
	}
	if depth <= 0 {
		return fail(core.NewInvalidGeometryError(file, "depth", depth))
	}
	if span <= 0 {
		return fail(core.NewInvalidGeometryError(file, "span", span))
	}

	tbl, err := loader.Load(file)
	if err != nil {
		return fail(err)
	}
	load, err := tbl.Column("Load")
	if err != nil {
		return fail(err)
	}
	defl, err := tbl.Column("Crosshead")
	if err != nil {
		return fail(err)
	}
	if len(load) < 2 {
		return fail(core.NewInsufficientDataError(file, len(load), 2))
	}

	stress := make([]float64, len(load))
	strain := make([]float64, len(load))
	for i := range load {
		// Eq. 3 in ASTM D790 section 12.2
		sigma := (3 * load[i] * span) / (2 * width * depth * depth)
		if largeSpan {
			// Eq. 4 in ASTM D790 section 12.3
			d := defl[i]
			sigma *= 1 + 6*math.Pow(d/span, 2) - 4*(depth/span)*(d/span)
		}
		stress[i] = sigma
		// Eq. 5 in ASTM D790 section 12.4
		strain[i] = (6 * defl[i] * depth) / (span * span)
	}
	s.Curve = material.Series{X: strain, Y: stress}

	peak, max := s.Curve.MaxY()
	s.Ultimate = max
	s.XAtPeak = strain[peak]

	// Steepest slope of the load-deflection record below peak load;
	// Eq. 6 in ASTM D790 section 12.5 converts it to the modulus.
	end := indexOfMax(load)
	if end < d790SlopeWindow {
		end = len(load)
	}
	slope, err := analysis.MaxWindowSlope(defl[:end], load[:end], d790SlopeWindow, d790SlopeStride)
	if errors.Is(err, core.ErrInsufficientRange) {
		// Record too short for one window: single fit over the region.
		slope, _, err = analysis.FitLine(defl[:end], load[:end])
	}
	if err != nil {
		return fail(err)
	}
	s.Modulus = (math.Pow(span, 3) * slope) / (4 * width * math.Pow(depth, 3))
	s.HasModulus = true
	return s
}

func indexOfMax(v []float64) int {
	idx := 0
	for i, x := range v {
		if x > v[idx] {
			idx = i
		}
	}
	return idx
}

// sampleModuli returns one modulus per successful sample, NaN where the
// sample has none, aligned with Material.Curves.
func sampleModuli(m *material.Material) []float64 {
	out := make([]float64, 0, len(m.Samples))
	for _, s := range m.Succeeded() {
		if s.HasModulus {
			out = append(out, s.Modulus)
		} else {
			out = append(out, math.NaN())
		}
	}
	return out
}
