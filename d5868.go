package astmd

import (
	"astmd/adapters/loader"
	"astmd/adapters/plot"
	"astmd/adapters/report"
	"astmd/domain/core"
	"astmd/domain/material"
)

// D5868Options configures a lap-shear run.
type D5868Options struct {
	MaterialName string
	Output       OutputOptions
}

// D5868 computes lap-shear adhesion results (ASTM D5868) for one set of
// sample files. areas carries the bonded area per file (mm^2). The
// standard defines no modulus for adhesive shear, so the result is the
// stress-time record and the ultimate shear stress only.
func D5868(files []string, areas []float64, opts D5868Options) (*material.Material, error) {
	if err := checkLengths(len(files), namedList{"areas", len(areas)}); err != nil {
		return nil, err
	}

	m := material.New(material.StandardD5868, opts.MaterialName)
	for i := range files {
		m.Add(d5868Sample(files[i], areas[i]))
	}
	if err := finalize(m, false); err != nil {
		return nil, err
	}

	spec := report.Spec{
		Params: []report.Param{
			{Label: "Areas of bonded joints", Value: joinValues(areas, " mm^2")},
		},
		StrengthLabel: "Average Shear strength",
	}

	dir := resolveDir(opts.Output, files)
	render := func(r *plot.Renderer) error {
		// Stress past the joint failure is noise; plot up to the peak.
		curves := make([]material.Series, 0, len(m.Samples))
		for _, s := range m.Succeeded() {
			curves = append(curves, s.Curve.TrimAtPeak())
		}
		avg := material.AverageSeries(curves)
		return r.SampleCurves("D5868_stress_time.png", "Stress-Time curves",
			"Time (s)", "Shear stress (MPa)", curves, &avg)
	}
	if err := writeArtifacts(m, spec, opts.Output, dir, render); err != nil {
		return nil, err
	}
	return m, nil
}

func d5868Sample(file string, area float64) *material.Sample {
	s := &material.Sample{
		File:     file,
		Geometry: material.Geometry{Area: area},
	}
	fail := func(err error) *material.Sample {
		s.Err = err
		return s
	}

	if area <= 0 {
		return fail(core.NewInvalidGeometryError(file, "area", area))
	}

	tbl, err := loader.Load(file)
	if err != nil {
		return fail(err)
	}
	load, err := tbl.Column("Load")
	if err != nil {
		return fail(err)
	}
	times, err := tbl.Column("Time")
	if err != nil {
		return fail(err)
	}
	if len(load) < 2 {
		return fail(core.NewInsufficientDataError(file, len(load), 2))
	}

	stress := make([]float64, len(load))
	for i := range load {
		stress[i] = load[i] / area
	}
	s.Curve = material.Series{X: times, Y: stress}

	peak, max := s.Curve.MaxY()
	s.Ultimate = max
	s.XAtPeak = times[peak]
	return s
}
