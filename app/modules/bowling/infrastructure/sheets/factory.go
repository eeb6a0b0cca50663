package sheets

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Entry is one game found in a batch file. Row is 1-based.
type Entry struct {
	Row      int    `json:"row"`
	Player   string `json:"player,omitempty"`
	Notation string `json:"notation"`
}

// Reader extracts game entries from a batch file
type Reader interface {
	Read(data []byte) ([]Entry, error)
}

// ReaderFactory defines the interface for creating readers
type ReaderFactory interface {
	GetReader(filename string) (Reader, error)
}

// Factory creates the appropriate reader based on file extension
type Factory struct{}

// NewFactory creates a new reader factory
func NewFactory() *Factory {
	return &Factory{}
}

// GetReader returns the reader for the extension of filename
func (f *Factory) GetReader(filename string) (Reader, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".csv", ".tsv":
		return NewCSVReader(), nil
	case ".xlsx":
		return NewXLSXReader(), nil
	case ".txt", "":
		return NewTextReader(), nil
	default:
		return nil, fmt.Errorf("unsupported file type: %s", ext)
	}
}

var _ ReaderFactory = (*Factory)(nil)
