package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"astmd/domain/material"
)

// writeExcel renders the report as a workbook: Parameters, Samples and
// Aggregate sheets plus the average curve as raw columns for downstream
// spreadsheet work.
func (w *Writer) writeExcel(m *material.Material, spec Spec) (string, error) {
	path := w.path(m, "xlsx")

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", "Parameters")
	paramRows := [][]interface{}{
		{"Standard", fmt.Sprintf("ASTM %s", m.Standard)},
		{"Material name", m.Name},
		{"Run", m.RunID.String()},
	}
	for _, p := range spec.Params {
		paramRows = append(paramRows, []interface{}{p.Label, p.Value})
	}
	for i, row := range paramRows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Parameters", cell, &row); err != nil {
			return "", fmt.Errorf("report %s: %w", path, err)
		}
	}

	if _, err := f.NewSheet("Samples"); err != nil {
		return "", fmt.Errorf("report %s: %w", path, err)
	}
	header := []interface{}{"File", "Geometry", "Strength (MPa)", "Modulus (MPa)", "Status"}
	if err := f.SetSheetRow("Samples", "A1", &header); err != nil {
		return "", fmt.Errorf("report %s: %w", path, err)
	}
	for i, s := range m.Samples {
		row := []interface{}{s.File, formatGeometry(s.Geometry), nil, nil, sampleStatus(s)}
		if s.OK() {
			row[2] = s.Ultimate
			if s.HasModulus {
				row[3] = s.Modulus
			}
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow("Samples", cell, &row); err != nil {
			return "", fmt.Errorf("report %s: %w", path, err)
		}
	}

	if _, err := f.NewSheet("Aggregate"); err != nil {
		return "", fmt.Errorf("report %s: %w", path, err)
	}
	aggRows := [][]interface{}{
		{"Result", "Mean", "Std Dev", "Min", "Max", "N"},
		{spec.StrengthLabel, m.Strength.Mean, m.Strength.StdDev, m.Strength.Min, m.Strength.Max, m.Strength.N},
	}
	if spec.ModulusLabel != "" && m.Modulus != nil {
		aggRows = append(aggRows, []interface{}{
			spec.ModulusLabel, m.Modulus.Mean, m.Modulus.StdDev, m.Modulus.Min, m.Modulus.Max, m.Modulus.N,
		})
	}
	for i, row := range aggRows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Aggregate", cell, &row); err != nil {
			return "", fmt.Errorf("report %s: %w", path, err)
		}
	}

	if m.AvgCurve.Len() > 0 {
		if err := writeCurveSheet(f, m.AvgCurve); err != nil {
			return "", fmt.Errorf("report %s: %w", path, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("report %s: %w", path, err)
	}
	return path, nil
}

// writeCurveSheet streams the average curve; records can run to tens of
// thousands of rows so the stream writer is used rather than per-cell sets.
func writeCurveSheet(f *excelize.File, curve material.Series) error {
	if _, err := f.NewSheet("AverageCurve"); err != nil {
		return err
	}
	sw, err := f.NewStreamWriter("AverageCurve")
	if err != nil {
		return err
	}
	if err := sw.SetRow("A1", []interface{}{"X", "Y"}); err != nil {
		return err
	}
	for i := 0; i < curve.Len() && i < len(curve.X); i++ {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := sw.SetRow(cell, []interface{}{curve.X[i], curve.Y[i]}); err != nil {
			return err
		}
	}
	return sw.Flush()
}
