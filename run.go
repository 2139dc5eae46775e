// Package astmd computes mechanical-properties test results per ASTM
// D-series standards from raw instrument data files: one entry point per
// standard (D790 flexural, D3039 tensile, D5868 lap shear), each running
// the same pipeline of load, per-sample formula evaluation, cross-sample
// aggregation, chart rendering and report writing.
package astmd

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"astmd/adapters/plot"
	"astmd/adapters/report"
	"astmd/domain/core"
	"astmd/domain/material"
	"astmd/internal/analysis"
)

// OutputOptions controls where and how run artifacts are written.
type OutputOptions struct {
	// Dir receives reports and charts. Empty means the directory of the
	// first input file, matching the legacy convention of writing results
	// alongside the data.
	Dir string
	// Formats defaults to a single text report.
	Formats []report.Format
	// DisablePlots skips chart rendering.
	DisablePlots bool
}

type namedList struct {
	name string
	n    int
}

// checkLengths validates the one-entry-per-sample shape of every list
// parameter before any file is touched.
func checkLengths(nFiles int, lists ...namedList) error {
	if nFiles == 0 {
		return core.NewArgumentLengthMismatchError("filenames", 0, 1)
	}
	for _, l := range lists {
		if l.n != nFiles {
			return core.NewArgumentLengthMismatchError(l.name, l.n, nFiles)
		}
	}
	return nil
}

func resolveDir(opts OutputOptions, files []string) string {
	if opts.Dir != "" {
		return opts.Dir
	}
	if len(files) > 0 {
		if dir := filepath.Dir(files[0]); dir != "" {
			return dir
		}
	}
	return "."
}

// finalize computes the aggregates and the average curve. An empty
// strength aggregate aborts the invocation; an empty modulus aggregate
// only drops the modulus section (strengths may still be valid when no
// sample reached the modulus sub-range).
func finalize(m *material.Material, withModulus bool) error {
	for _, s := range m.Failed() {
		log.Printf("[%s] sample %s excluded: %v", m.Standard, s.File, s.Err)
	}

	strength, err := analysis.Aggregate(m.Strengths())
	if err != nil {
		return fmt.Errorf("ASTM %s: %w", m.Standard, err)
	}
	m.Strength = strength

	if withModulus {
		moduli := m.Moduli()
		if len(moduli) == 0 {
			log.Printf("[%s] no sample produced a modulus; report carries strength only", m.Standard)
		} else {
			agg, err := analysis.Aggregate(moduli)
			if err != nil {
				return fmt.Errorf("ASTM %s: %w", m.Standard, err)
			}
			m.Modulus = &agg
		}
	}

	m.AvgCurve = material.AverageSeries(m.Curves())
	return nil
}

// writeArtifacts renders charts and reports after all sample computation
// is done. Chart failures degrade to report-only output.
func writeArtifacts(m *material.Material, spec report.Spec, opts OutputOptions, dir string, render func(*plot.Renderer) error) error {
	if !opts.DisablePlots && render != nil {
		if err := render(plot.NewRenderer(dir)); err != nil {
			log.Printf("[Plot] warning: %v; continuing with report only", err)
		}
	}

	if _, err := report.NewWriter(dir, opts.Formats).Write(m, spec); err != nil {
		return fmt.Errorf("ASTM %s: %w", m.Standard, err)
	}
	return nil
}

func joinValues(values []float64, unit string) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%g%s", v, unit)
	}
	return strings.Join(parts, ", ")
}
