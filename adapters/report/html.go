package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"astmd/domain/material"
)

// writeHTML composes the report as markdown and renders it to a standalone
// HTML file.
func (w *Writer) writeHTML(m *material.Material, spec Spec) (string, error) {
	path := w.path(m, "html")

	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{
		Title: fmt.Sprintf("ASTM %s Standard Report", m.Standard),
		Flags: html.CommonFlags | html.CompletePage,
	})
	out := markdown.ToHTML([]byte(renderMarkdown(m, spec)), p, renderer)

	if err := os.WriteFile(path, out, 0644); err != nil {
		return "", fmt.Errorf("write report %s: %w", path, err)
	}
	return path, nil
}

func renderMarkdown(m *material.Material, spec Spec) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# ASTM %s Standard Report\n\n", m.Standard)
	fmt.Fprintf(&b, "Run `%s`\n\n", m.RunID)

	b.WriteString("## Testing parameters\n\n")
	fmt.Fprintf(&b, "- Material name: %s\n", m.Name)
	for _, p := range spec.Params {
		fmt.Fprintf(&b, "- %s: %s\n", p.Label, p.Value)
	}
	b.WriteString("\n")

	b.WriteString("## Test results\n\n")
	b.WriteString("| Result | Mean | Std Dev | Min | Max | N |\n")
	b.WriteString("|---|---|---|---|---|---|\n")
	fmt.Fprintf(&b, "| %s (MPa) | %.2f | %.2f | %.2f | %.2f | %d |\n",
		spec.StrengthLabel, m.Strength.Mean, m.Strength.StdDev, m.Strength.Min, m.Strength.Max, m.Strength.N)
	if spec.ModulusLabel != "" && m.Modulus != nil {
		fmt.Fprintf(&b, "| %s (MPa) | %.0f | %.0f | %.0f | %.0f | %d |\n",
			spec.ModulusLabel, m.Modulus.Mean, m.Modulus.StdDev, m.Modulus.Min, m.Modulus.Max, m.Modulus.N)
	}
	b.WriteString("\n")

	b.WriteString("## Samples\n\n")
	b.WriteString("| File | Geometry | Strength (MPa) | Modulus (MPa) | Status |\n")
	b.WriteString("|---|---|---|---|---|\n")
	for _, s := range m.Samples {
		strength, modulus := "-", "-"
		if s.OK() {
			strength = fmt.Sprintf("%.3f", s.Ultimate)
			if s.HasModulus {
				modulus = fmt.Sprintf("%.0f", s.Modulus)
			}
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			s.File, formatGeometry(s.Geometry), strength, modulus, sampleStatus(s))
	}

	return b.String()
}
