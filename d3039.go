package astmd

import (
	"astmd/adapters/loader"
	"astmd/adapters/plot"
	"astmd/adapters/report"
	"astmd/domain/core"
	"astmd/domain/material"
	"astmd/internal/analysis"
)

// DefaultExtensometerLength is the 2 in gauge length in mm.
const DefaultExtensometerLength = 50.8

// Chord modulus strain targets mandated by D3039 Table 3.
const (
	chordStrainLow  = 0.001
	chordStrainHigh = 0.002
)

// D3039Options configures a tensile run.
type D3039Options struct {
	MaterialName string
	// ExtensometerLength is the gauge length in mm; zero means
	// DefaultExtensometerLength.
	ExtensometerLength float64
	ValidateModulus    bool
	Output             OutputOptions
}

// D3039 computes tensile properties (ASTM D3039) for one set of sample
// files. widths, thicknesses and lengths carry one entry per file (mm).
// The chord modulus is taken between the recorded points nearest strain
// 0.001 and 0.002 (nearest sample, no interpolation); a sample whose
// strain never reaches 0.002 keeps its strength but contributes no
// modulus.
func D3039(files []string, widths, thicknesses, lengths []float64, opts D3039Options) (*material.Material, error) {
	if err := checkLengths(len(files),
		namedList{"widths", len(widths)},
		namedList{"thicknesses", len(thicknesses)},
		namedList{"lengths", len(lengths)},
	); err != nil {
		return nil, err
	}

	gauge := opts.ExtensometerLength
	if gauge == 0 {
		gauge = DefaultExtensometerLength
	}

	m := material.New(material.StandardD3039, opts.MaterialName)
	for i := range files {
		m.Add(d3039Sample(files[i], widths[i], thicknesses[i], lengths[i], gauge))
	}
	if err := finalize(m, true); err != nil {
		return nil, err
	}

	spec := report.Spec{
		Params: []report.Param{
			{Label: "Width of samples", Value: joinValues(widths, "mm")},
			{Label: "Thickness of samples", Value: joinValues(thicknesses, "mm")},
			{Label: "Lengths of samples", Value: joinValues(lengths, "mm")},
			{Label: "Extensometer length", Value: joinValues([]float64{gauge}, "mm")},
		},
		StrengthLabel: "Tensile strength",
		ModulusLabel:  "Chord tensile modulus",
	}

	dir := resolveDir(opts.Output, files)
	render := func(r *plot.Renderer) error {
		const (
			xLabel = "Strain at the middle of the sample (mm/mm)"
			yLabel = "Tensile stress (MPa)"
		)
		avg := m.AvgCurve
		if err := r.SampleCurves("D3039_stress_strain.png", "Stress-Strain curve", xLabel, yLabel, m.Curves(), &avg); err != nil {
			return err
		}
		if m.Modulus != nil {
			if err := r.ModulusOverlay("D3039_modulus.png", "Chord modulus and Stress Strain curve",
				"Strain (mm/mm)", "Stress (MPa)", avg, m.Modulus.Mean); err != nil {
				return err
			}
		}
		if opts.ValidateModulus {
			return r.ValidationOverlay("D3039_modulus_validation.png", "Per-sample chord modulus",
				"Strain (mm/mm)", "Stress (MPa)", m.Curves(), sampleModuli(m))
		}
		return nil
	}
	if err := writeArtifacts(m, spec, opts.Output, dir, render); err != nil {
		return nil, err
	}
	return m, nil
}

func d3039Sample(file string, width, thickness, length, gauge float64) *material.Sample {
	s := &material.Sample{
		File:     file,
		Geometry: material.Geometry{Width: width, Thickness: thickness, Length: length, GaugeLength: gauge},
	}
	fail := func(err error) *material.Sample {
		s.Err = err
		return s
	}

	if width <= 0 {
		return fail(core.NewInvalidGeometryError(file, "width", width))
	}
	if thickness <= 0 {
		return fail(core.NewInvalidGeometryError(file, "thickness", thickness))
	}
	if length <= 0 {
		return fail(core.NewInvalidGeometryError(file, "length", length))
	}
	if gauge <= 0 {
		return fail(core.NewInvalidGeometryError(file, "extensometer length", gauge))
	}

	tbl, err := loader.Load(file)
	if err != nil {
		return fail(err)
	}
	load, err := tbl.Column("Load")
	if err != nil {
		return fail(err)
	}
	ext, err := tbl.Column("Extensometer")
	if err != nil {
		return fail(err)
	}
	if len(load) < 2 {
		return fail(core.NewInsufficientDataError(file, len(load), 2))
	}

	stress := make([]float64, len(load))
	strain := make([]float64, len(load))
	for i := range load {
		// Eq. 6 in ASTM D3039 section 13
		stress[i] = load[i] / (width * thickness)
		// Eq. 7 in ASTM D3039 section 13
		strain[i] = ext[i] / gauge
	}

	// Everything past rupture is noise; trim at the peak before modulus
	// and plotting.
	s.Curve = material.Series{X: strain, Y: stress}.TrimAtPeak()

	peak, max := s.Curve.MaxY()
	s.Ultimate = max
	s.XAtPeak = s.Curve.X[peak]

	// Eq. 8 in ASTM D3039 section 13
	slope, err := analysis.ChordSlope(s.Curve.X, s.Curve.Y, chordStrainLow, chordStrainHigh, file)
	if err != nil {
		// Strength stays valid; only the modulus aggregate loses this sample.
		s.ModulusErr = err
		return s
	}
	s.Modulus = slope
	s.HasModulus = true
	return s
}
