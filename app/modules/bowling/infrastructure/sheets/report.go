package sheets

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Result is the outcome of scoring one entry. Error is empty for accepted games.
type Result struct {
	Entry
	Score    int    `json:"score"`
	Strategy string `json:"strategy"`
	Error    string `json:"error,omitempty"`
}

// ReportSheet is the sheet name of XLSX reports.
const ReportSheet = "Results"

var reportHeader = []string{"row", "player", "notation", "strategy", "score", "error"}

func (r Result) record() []string {
	score := ""
	if r.Error == "" {
		score = strconv.Itoa(r.Score)
	}
	return []string{strconv.Itoa(r.Row), r.Player, r.Notation, r.Strategy, score, r.Error}
}

// WriteResults writes a report in the format named by the extension of
// filename: XLSX for ".xlsx", CSV otherwise.
func WriteResults(w io.Writer, filename string, results []Result) error {
	if strings.EqualFold(filepath.Ext(filename), ".xlsx") {
		return writeXLSX(w, results)
	}
	return writeCSV(w, results)
}

func writeCSV(w io.Writer, results []Result) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(reportHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range results {
		if err := writer.Write(r.record()); err != nil {
			return fmt.Errorf("failed to write CSV row %d: %w", r.Row, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func writeXLSX(w io.Writer, results []Result) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ReportSheet); err != nil {
		return fmt.Errorf("failed to name report sheet: %w", err)
	}

	if err := f.SetSheetRow(ReportSheet, "A1", &reportHeader); err != nil {
		return fmt.Errorf("failed to write XLSX header: %w", err)
	}
	for i, r := range results {
		cellRef, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []any{r.Row, r.Player, r.Notation, r.Strategy, "", r.Error}
		if r.Error == "" {
			values[4] = r.Score
		}
		if err := f.SetSheetRow(ReportSheet, cellRef, &values); err != nil {
			return fmt.Errorf("failed to write XLSX row %d: %w", r.Row, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write XLSX report: %w", err)
	}
	return nil
}
