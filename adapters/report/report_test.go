package report

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"astmd/domain/material"
)

func fixtureMaterial() *material.Material {
	m := material.New(material.StandardD790, "carbon")
	m.Add(&material.Sample{
		File:       "sample1.txt",
		Geometry:   material.Geometry{Width: 10, Depth: 1, Span: 100},
		Ultimate:   120.5,
		Modulus:    3400,
		HasModulus: true,
		Curve:      material.Series{X: []float64{0, 0.01}, Y: []float64{0, 120.5}},
	})
	m.Add(&material.Sample{
		File: "sample2.txt",
		Err:  errors.New("unparseable test data: sample2.txt line 3: field \"x\" is not numeric"),
	})
	m.Strength = material.Aggregate{Mean: 120.5, Min: 120.5, Max: 120.5, N: 1}
	m.Modulus = &material.Aggregate{Mean: 3400, Min: 3400, Max: 3400, N: 1}
	m.AvgCurve = material.Series{X: []float64{0, 0.01}, Y: []float64{0, 120.5}}
	return m
}

func fixtureSpec() Spec {
	return Spec{
		Params: []Param{
			{Label: "Width of samples", Value: "10mm"},
			{Label: "Span used", Value: "100mm"},
		},
		StrengthLabel: "Flexural strength",
		ModulusLabel:  "Tangent modulus",
	}
}

func TestWriteTextReport(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, []Format{FormatText})

	paths, err := w.Write(fixtureMaterial(), fixtureSpec())
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Equal(t, filepath.Join(dir, "results_D790.txt"), paths[0])

	data, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	text := string(data)

	assert.Contains(t, text, "ASTM D790 Standard Report")
	assert.Contains(t, text, "Material name : carbon")
	assert.Contains(t, text, "Tangent modulus : 3400 MPa")
	assert.Contains(t, text, "Flexural strength : 120.50 MPa")
	assert.Contains(t, text, "Samples in aggregate : 1 of 2")
	assert.Contains(t, text, "sample2.txt : excluded:")
}

func TestWriteTextReportOverwrites(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, []Format{FormatText})

	m := fixtureMaterial()
	_, err := w.Write(m, fixtureSpec())
	require.NoError(t, err)

	m.Name = "flax"
	paths, err := w.Write(m, fixtureSpec())
	require.NoError(t, err)

	data, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "Material name : flax")
	assert.NotContains(t, string(data), "carbon")
}

func TestWriteExcelReport(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, []Format{FormatExcel})

	paths, err := w.Write(fixtureMaterial(), fixtureSpec())
	require.NoError(t, err)
	require.Len(t, paths, 1)

	f, err := excelize.OpenFile(paths[0])
	require.NoError(t, err)
	defer f.Close()

	std, err := f.GetCellValue("Parameters", "B1")
	require.NoError(t, err)
	assert.Equal(t, "ASTM D790", std)

	file, err := f.GetCellValue("Samples", "A2")
	require.NoError(t, err)
	assert.Equal(t, "sample1.txt", file)

	status, err := f.GetCellValue("Samples", "E3")
	require.NoError(t, err)
	assert.Contains(t, status, "excluded")

	label, err := f.GetCellValue("Aggregate", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Flexural strength", label)

	curveHeader, err := f.GetCellValue("AverageCurve", "A1")
	require.NoError(t, err)
	assert.Equal(t, "X", curveHeader)
}

func TestWriteHTMLReport(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, []Format{FormatHTML})

	paths, err := w.Write(fixtureMaterial(), fixtureSpec())
	require.NoError(t, err)

	data, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	html := string(data)

	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, "ASTM D790 Standard Report")
	assert.Contains(t, html, "Flexural strength")
}

func TestWriteDefaultsToText(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, nil)

	paths, err := w.Write(fixtureMaterial(), fixtureSpec())
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Equal(t, filepath.Join(dir, "results_D790.txt"), paths[0])
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" Excel ")
	require.NoError(t, err)
	assert.Equal(t, FormatExcel, f)

	_, err = ParseFormat("pdf")
	assert.Error(t, err)
}
