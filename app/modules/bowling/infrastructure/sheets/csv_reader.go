package sheets

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// CSVReader reads comma, semicolon or tab separated batch files
type CSVReader struct{}

// NewCSVReader creates a new CSV reader
func NewCSVReader() *CSVReader {
	return &CSVReader{}
}

func (r *CSVReader) Read(data []byte) ([]Entry, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = detectDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	var rows []row
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		if isBlank(record) {
			continue
		}
		line, _ := reader.FieldPos(0)
		rows = append(rows, row{line: line, cells: record})
	}

	return extractEntries(rows, "CSV")
}

// detectDelimiter picks the most frequent of ',', ';' and tab on the first
// non-empty line. Notation never contains any of them.
func detectDelimiter(data []byte) rune {
	first := ""
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) != "" {
			first = line
			break
		}
	}

	best, bestCount := ',', 0
	for _, d := range []rune{',', ';', '\t'} {
		if n := strings.Count(first, string(d)); n > bestCount {
			best, bestCount = d, n
		}
	}
	return best
}
