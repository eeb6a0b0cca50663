package sheets

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// XLSXReader reads the first sheet of an XLSX workbook
type XLSXReader struct{}

// NewXLSXReader creates a new XLSX reader
func NewXLSXReader() *XLSXReader {
	return &XLSXReader{}
}

func (r *XLSXReader) Read(data []byte) ([]Entry, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		if strings.Contains(err.Error(), "zip: not a valid zip file") {
			return nil, fmt.Errorf("failed to open XLSX file: %w. (Hint: If this is a CSV file, please ensure it has a .csv extension)", err)
		}
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("XLSX file has no sheets")
	}

	sheetName := sheets[0]
	cells, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
	}

	var rows []row
	for i, c := range cells {
		if isBlank(c) {
			continue
		}
		rows = append(rows, row{line: i + 1, cells: c})
	}

	return extractEntries(rows, "XLSX")
}
