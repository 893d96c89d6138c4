package schedparse

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
)

var (
	// ErrNoSheets is returned for a workbook without worksheets.
	ErrNoSheets = errors.New("no sheets found in workbook")
	// ErrLegacyWorkbook is returned for binary .xls files.
	ErrLegacyWorkbook = errors.New("legacy .xls workbooks are not supported, save as .xlsx or .csv")
)

var (
	zipMagic = []byte("PK\x03\x04")
	cfbMagic = []byte{0xD0, 0xCF, 0x11, 0xE0}
	utf8BOM  = []byte{0xEF, 0xBB, 0xBF}
)

// LoadGrid reads the first worksheet of an xlsx workbook, or a CSV file,
// into a row-major grid of cell strings. Rows may be ragged.
func LoadGrid(data []byte) ([][]string, error) {
	switch {
	case bytes.HasPrefix(data, zipMagic):
		return loadXLSX(data)
	case bytes.HasPrefix(data, cfbMagic):
		return nil, ErrLegacyWorkbook
	default:
		return loadCSV(data)
	}
}

func loadXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return normalizeGrid(rows), nil
}

func loadCSV(data []byte) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return normalizeGrid(rows), nil
}

func normalizeGrid(rows [][]string) [][]string {
	for _, row := range rows {
		for i, cell := range row {
			row[i] = normalizeText(cell)
		}
	}
	return rows
}
