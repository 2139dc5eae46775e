// Package testkit writes synthetic instrument-export files for tests:
// deterministic tables with known closed-form results, so assertions can
// check exact stresses and moduli instead of golden files.
package testkit

import (
	"fmt"
	"os"
	"strings"
)

// WriteTable writes a tab-separated table with a header row, the shape of
// a universal-testing-machine export.
func WriteTable(path string, header []string, rows [][]float64) error {
	var b strings.Builder
	b.WriteString(strings.Join(header, "\t"))
	b.WriteString("\n")
	for _, row := range rows {
		for j, v := range row {
			if j > 0 {
				b.WriteString("\t")
			}
			fmt.Fprintf(&b, "%g", v)
		}
		b.WriteString("\n")
	}
	return os.WriteFile(path, []byte(b.String()), 0644)
}

// RampRows builds n rows where column j at row i is i*steps[j]: every
// channel a perfect linear ramp.
func RampRows(n int, steps ...float64) [][]float64 {
	rows := make([][]float64, n)
	for i := 0; i < n; i++ {
		row := make([]float64, len(steps))
		for j, step := range steps {
			row[j] = float64(i) * step
		}
		rows[i] = row
	}
	return rows
}

// RampPeakRows ramps the first column up for peak rows and back down
// afterwards while the remaining columns keep ramping, the shape of a
// load record through specimen rupture.
func RampPeakRows(n, peak int, steps ...float64) [][]float64 {
	rows := RampRows(n, steps...)
	for i := peak + 1; i < n; i++ {
		rows[i][0] = rows[peak][0] - float64(i-peak)*steps[0]
	}
	return rows
}
