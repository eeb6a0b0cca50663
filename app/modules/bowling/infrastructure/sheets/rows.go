package sheets

import (
	"fmt"
	"strings"
)

var (
	playerColumns   = []string{"player", "name", "bowler"}
	notationColumns = []string{"notation", "game", "frames", "score card", "scorecard"}
)

// row is a record with the 1-based line it came from.
type row struct {
	line  int
	cells []string
}

// findColumn searches for a column by multiple possible names (case-insensitive)
// Removes spaces, underscores, and hyphens for normalization
func findColumn(header []string, possibleNames []string) int {
	for i, col := range header {
		colNorm := normalize(col)
		for _, name := range possibleNames {
			if colNorm == normalize(name) {
				return i
			}
		}
	}
	return -1
}

func normalize(s string) string {
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(strings.ToLower(strings.TrimSpace(s)))
}

// extractEntries maps rows to entries. A first row naming a notation column is
// a header; without one, a single column holds the notation and two or more
// hold the player then the notation.
func extractEntries(rows []row, source string) ([]Entry, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s file is empty", source)
	}

	playerCol, notationCol := -1, 0
	start := 0
	if col := findColumn(rows[0].cells, notationColumns); col >= 0 {
		notationCol = col
		playerCol = findColumn(rows[0].cells, playerColumns)
		start = 1
	} else if len(rows[0].cells) > 1 {
		playerCol, notationCol = 0, 1
	}

	var entries []Entry
	for _, r := range rows[start:] {
		notation := cell(r.cells, notationCol)
		if notation == "" {
			continue
		}
		entries = append(entries, Entry{
			Row:      r.line,
			Player:   cell(r.cells, playerCol),
			Notation: notation,
		})
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("no games found in %s file", source)
	}
	return entries, nil
}

func cell(cells []string, i int) string {
	if i < 0 || i >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[i])
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
