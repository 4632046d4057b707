// Package table loads delimited text files into in-memory tables.
package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound reports that a source file does not exist. Callers treat this
// differently from a parse failure: a missing file is a warning, a broken
// file is an error.
var ErrNotFound = errors.New("source file not found")

// Table is one parsed source file: an ordered header plus data rows.
// encoding/csv enforces that every record has the same field count as the
// header, so all columns share the same row count.
type Table struct {
	Columns []string
	Records [][]string
	Source  string
}

// LoadOptions configures how a source file is parsed.
type LoadOptions struct {
	// Delimiter is the field separator. Zero means comma.
	Delimiter rune
}

// Load reads a delimited text file into a Table.
// A nonexistent path returns ErrNotFound; anything else that goes wrong
// during parsing is returned as a regular error.
func Load(path string, opts LoadOptions) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("could not open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("could not parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("could not parse %s: file has no header row", path)
	}

	return &Table{
		Columns: records[0],
		Records: records[1:],
		Source:  path,
	}, nil
}

// RowCount returns the number of data rows (header excluded).
func (t *Table) RowCount() int { return len(t.Records) }

// ColumnCount returns the number of columns.
func (t *Table) ColumnCount() int { return len(t.Columns) }

// Stem returns the source file's base name without its extension,
// e.g. "data/Speed_Limits.csv" → "Speed_Limits".
func (t *Table) Stem() string {
	base := filepath.Base(t.Source)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
