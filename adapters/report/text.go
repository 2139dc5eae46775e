package report

import (
	"fmt"
	"os"
	"strings"

	"astmd/domain/material"
)

func (w *Writer) writeText(m *material.Material, spec Spec) (string, error) {
	path := w.path(m, "txt")
	if err := os.WriteFile(path, []byte(renderText(m, spec)), 0644); err != nil {
		return "", fmt.Errorf("write report %s: %w", path, err)
	}
	return path, nil
}

// renderText keeps the layout of the legacy results files: a header, a
// testing-parameters section and a results section, extended with the
// per-sample listing.
func renderText(m *material.Material, spec Spec) string {
	var b strings.Builder

	fmt.Fprintf(&b, "ASTM %s Standard Report\n\n", m.Standard)
	fmt.Fprintf(&b, "Run : %s\n\n", m.RunID)

	b.WriteString("1. Testing parameters\n")
	fmt.Fprintf(&b, "Material name : %s\n", m.Name)
	for _, p := range spec.Params {
		fmt.Fprintf(&b, "%s : %s\n", p.Label, p.Value)
	}
	b.WriteString("\n")

	b.WriteString("2. Test Results\n")
	if spec.ModulusLabel != "" && m.Modulus != nil {
		fmt.Fprintf(&b, "%s : %.0f MPa\n", spec.ModulusLabel, m.Modulus.Mean)
		fmt.Fprintf(&b, "Standard Deviation : (%.0f)\n", m.Modulus.StdDev)
	}
	fmt.Fprintf(&b, "%s : %.2f MPa\n", spec.StrengthLabel, m.Strength.Mean)
	fmt.Fprintf(&b, "Standard Deviation : (%.2f)\n", m.Strength.StdDev)
	fmt.Fprintf(&b, "Samples in aggregate : %d of %d\n", m.Strength.N, len(m.Samples))
	b.WriteString("\n")

	b.WriteString("3. Samples\n")
	for _, s := range m.Samples {
		if s.OK() {
			if s.HasModulus {
				fmt.Fprintf(&b, "%s : %s : strength %.3f MPa, modulus %.0f MPa\n",
					s.File, formatGeometry(s.Geometry), s.Ultimate, s.Modulus)
			} else {
				fmt.Fprintf(&b, "%s : %s : strength %.3f MPa\n",
					s.File, formatGeometry(s.Geometry), s.Ultimate)
			}
			if s.ModulusErr != nil {
				fmt.Fprintf(&b, "%s : modulus not computed: %v\n", s.File, s.ModulusErr)
			}
		} else {
			fmt.Fprintf(&b, "%s : excluded: %v\n", s.File, s.Err)
		}
	}

	return b.String()
}
