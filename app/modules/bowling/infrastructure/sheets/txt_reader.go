package sheets

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"
)

// TextReader reads one notation per line. Blank lines and lines starting
// with '#' are skipped.
type TextReader struct{}

// NewTextReader creates a new text reader
func NewTextReader() *TextReader {
	return &TextReader{}
}

func (r *TextReader) Read(data []byte) ([]Entry, error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))

	var entries []Entry
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		entries = append(entries, Entry{Row: line, Notation: text})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read text file: %w", err)
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("no games found in text file")
	}
	return entries, nil
}
