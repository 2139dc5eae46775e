// Package report writes the per-standard results file. Reports are
// write-only artifacts: a rerun overwrites the previous file of the same
// name without warning, which is the documented behavior.
package report

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"astmd/domain/material"
)

// Format selects a report rendering.
type Format string

const (
	FormatText  Format = "text"  // results_<std>.txt, legacy layout
	FormatExcel Format = "excel" // results_<std>.xlsx workbook
	FormatHTML  Format = "html"  // results_<std>.html via markdown
)

// ParseFormat validates a format name from config or CLI input.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatText:
		return FormatText, nil
	case FormatExcel:
		return FormatExcel, nil
	case FormatHTML:
		return FormatHTML, nil
	}
	return "", fmt.Errorf("unknown report format %q", s)
}

// Param is one testing-parameters line of the report, e.g.
// {"Width of samples", "10mm, 10.1mm"}.
type Param struct {
	Label string
	Value string
}

// Spec carries the standard-specific wording of a report.
type Spec struct {
	Params []Param
	// StrengthLabel names the ultimate-stress result, e.g. "Flexural strength".
	StrengthLabel string
	// ModulusLabel names the modulus result; empty when the standard
	// defines none (D5868).
	ModulusLabel string
}

// Writer renders a Material into one file per configured format.
type Writer struct {
	Dir     string
	Formats []Format
}

func NewWriter(dir string, formats []Format) *Writer {
	if len(formats) == 0 {
		formats = []Format{FormatText}
	}
	return &Writer{Dir: dir, Formats: formats}
}

// Write renders every configured format and returns the written paths.
func (w *Writer) Write(m *material.Material, spec Spec) ([]string, error) {
	var paths []string
	for _, f := range w.Formats {
		var (
			path string
			err  error
		)
		switch f {
		case FormatText:
			path, err = w.writeText(m, spec)
		case FormatExcel:
			path, err = w.writeExcel(m, spec)
		case FormatHTML:
			path, err = w.writeHTML(m, spec)
		default:
			err = fmt.Errorf("unknown report format %q", f)
		}
		if err != nil {
			return paths, err
		}
		log.Printf("[Report] wrote %s", path)
		paths = append(paths, path)
	}
	return paths, nil
}

func (w *Writer) path(m *material.Material, ext string) string {
	return filepath.Join(w.Dir, fmt.Sprintf("results_%s.%s", m.Standard, ext))
}

func sampleStatus(s *material.Sample) string {
	if !s.OK() {
		return "excluded: " + s.Err.Error()
	}
	if s.ModulusErr != nil {
		return "no modulus: " + s.ModulusErr.Error()
	}
	return "ok"
}

func formatGeometry(g material.Geometry) string {
	parts := make([]string, 0, 4)
	add := func(label string, v float64, unit string) {
		if v != 0 {
			parts = append(parts, fmt.Sprintf("%s %g%s", label, v, unit))
		}
	}
	add("width", g.Width, "mm")
	add("depth", g.Depth, "mm")
	add("thickness", g.Thickness, "mm")
	add("length", g.Length, "mm")
	add("span", g.Span, "mm")
	add("area", g.Area, "mm^2")
	add("gauge", g.GaugeLength, "mm")
	return strings.Join(parts, ", ")
}
