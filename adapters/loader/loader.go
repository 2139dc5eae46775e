// Package loader reads delimited instrument-export tables into named
// numeric columns. One file per specimen: a header row naming the
// recorded channels (Load, Crosshead, Extensometer, Time, ...) followed
// by numeric rows. The delimiter and header convention are a property of
// the instrument export, not auto-detected beyond the file extension.
package loader

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"astmd/domain/core"
)

// Table is one specimen's parsed measurement record.
type Table struct {
	Path   string
	Header []string

	columns map[string][]float64
	rows    int
}

// Load parses the file at path. Excel workbooks (.xlsx) are read from
// their first sheet; .csv files are comma-delimited; anything else is
// split on tabs, commas or whitespace.
func Load(path string) (*Table, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, core.NewDataFormatError(path, 0, "file not readable")
	}

	var records [][]string
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		records, err = readExcelRows(path)
	case ".csv":
		records, err = readCSVRows(path)
	default:
		records, err = readDelimitedRows(path)
	}
	if err != nil {
		return nil, err
	}

	t, err := buildTable(path, records)
	if err != nil {
		return nil, err
	}
	log.Printf("[Loader] %s: %d rows, columns %v", path, t.rows, t.Header)
	return t, nil
}

// Rows returns the number of data rows.
func (t *Table) Rows() int { return t.rows }

// Column returns the named channel. Names are matched case-insensitively.
func (t *Table) Column(name string) ([]float64, error) {
	if col, ok := t.columns[strings.ToLower(name)]; ok {
		return col, nil
	}
	return nil, core.NewDataFormatError(t.Path, 0,
		fmt.Sprintf("column %q not found (have %v)", name, t.Header))
}

func readExcelRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, core.NewDataFormatError(path, 0, err.Error())
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, core.NewDataFormatError(path, 0, "workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, core.NewDataFormatError(path, 0, err.Error())
	}
	return rows, nil
}

func readCSVRows(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, core.NewDataFormatError(path, 0, err.Error())
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // length checked against the header later
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, core.NewDataFormatError(path, 0, err.Error())
	}
	return records, nil
}

func readDelimitedRows(path string) ([][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, core.NewDataFormatError(path, 0, err.Error())
	}

	var records [][]string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		// Commas and tabs collapse to whitespace field separation.
		fields := strings.Fields(strings.NewReplacer(",", " ", "\t", " ").Replace(line))
		records = append(records, fields)
	}
	return records, nil
}

func buildTable(path string, records [][]string) (*Table, error) {
	header := []string(nil)
	headerLine := 0
	for i, rec := range records {
		if len(rec) > 0 && strings.TrimSpace(strings.Join(rec, "")) != "" {
			header = rec
			headerLine = i + 1
			break
		}
	}
	if header == nil {
		return nil, core.NewDataFormatError(path, 0, "empty file")
	}
	if rowIsNumeric(header) {
		return nil, core.NewDataFormatError(path, headerLine, "missing header row naming columns")
	}

	t := &Table{
		Path:    path,
		Header:  make([]string, len(header)),
		columns: make(map[string][]float64, len(header)),
	}
	for i, name := range header {
		t.Header[i] = strings.TrimSpace(name)
		t.columns[strings.ToLower(t.Header[i])] = nil
	}

	for i := headerLine; i < len(records); i++ {
		rec := records[i]
		if len(rec) == 0 || strings.TrimSpace(strings.Join(rec, "")) == "" {
			continue
		}
		if len(rec) != len(header) {
			return nil, core.NewDataFormatError(path, i+1,
				fmt.Sprintf("row has %d fields, header has %d", len(rec), len(header)))
		}
		for j, cell := range rec {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, core.NewDataFormatError(path, i+1,
					fmt.Sprintf("field %q is not numeric", cell))
			}
			key := strings.ToLower(t.Header[j])
			t.columns[key] = append(t.columns[key], v)
		}
		t.rows++
	}
	if t.rows == 0 {
		return nil, core.NewDataFormatError(path, 0, "no data rows after header")
	}
	return t, nil
}

func rowIsNumeric(rec []string) bool {
	for _, cell := range rec {
		if _, err := strconv.ParseFloat(strings.TrimSpace(cell), 64); err != nil {
			return false
		}
	}
	return true
}
