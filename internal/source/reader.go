// Package source is the input collaborator: it reads the raw FlexiMart CSV
// exports from disk and hands them to the cleaners as ordered tables of raw
// text cells.
//
// It absorbs the usual CSV file mess before any transform sees the data:
//
//   - UTF-8 BOM from Windows exports
//   - invalid UTF-8 sequences (replaced with U+FFFD)
//   - ragged rows and lazy quoting
//   - fully empty rows
//
// A missing source file is fatal (ErrMissing); every other row-level oddity
// is left for the cleaners to count and explain.
package source

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/fleximart/etl/internal/schema"
)

// ErrMissing reports an absent source file. The run aborts before any
// transform executes when a source is missing.
var ErrMissing = errors.New("source file missing")

// utf8BOM is the byte order mark some Windows programs prepend to CSV files.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Table is one raw export: an ordered sequence of rows addressed by column name.
type Table struct {
	Name   string     // base filename, used in report sections and log entries
	Header []string   // header row as found in the file
	Rows   [][]string // data rows in file order, header excluded

	index map[string]int // lowercased column name -> position
}

// NewTable builds a Table directly from already-parsed rows.
func NewTable(name string, header []string, rows [][]string) *Table {
	return &Table{
		Name:   name,
		Header: header,
		Rows:   rows,
		index:  makeHeaderIndex(header),
	}
}

// ReadTable reads and parses one CSV export, validating that every required
// column from specs is present in the header.
func ReadTable(path string, specs []schema.FieldSpec) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissing, path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	data = bytes.TrimPrefix(data, utf8BOM)
	data = sanitizeUTF8(data)

	records, err := parseCSV(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("parse %s: empty file", path)
	}

	t := &Table{
		Name:   baseName(path),
		Header: records[0],
		index:  makeHeaderIndex(records[0]),
	}

	for _, spec := range specs {
		if !spec.Required {
			continue
		}
		if _, ok := t.index[strings.ToLower(spec.Name)]; !ok {
			return nil, fmt.Errorf("parse %s: missing required column %q", path, spec.Name)
		}
	}

	for _, row := range records[1:] {
		if isEmptyRow(row) {
			continue
		}
		t.Rows = append(t.Rows, row)
	}

	return t, nil
}

// Cell returns the cleaned value of the named column in row, or "" when the
// column is absent or the row is too short.
func (t *Table) Cell(row []string, col string) string {
	pos, ok := t.index[strings.ToLower(col)]
	if !ok || pos >= len(row) {
		return ""
	}
	return CleanCell(row[pos])
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.Rows) }

// CleanCell removes common CSV artifacts from a cell value:
// - Trims whitespace
// - Removes Excel formula prefix (="...")
// - Removes surrounding quotes
func CleanCell(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	s = strings.Trim(s, `"'`)

	return strings.TrimSpace(s)
}

// makeHeaderIndex maps lowercased column names to their position in the row.
func makeHeaderIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(CleanCell(h))] = i
	}
	return idx
}

// sanitizeUTF8 replaces invalid UTF-8 sequences with the replacement character.
func sanitizeUTF8(data []byte) []byte {
	if utf8.Valid(data) {
		return data
	}

	var buf bytes.Buffer
	buf.Grow(len(data))

	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			buf.WriteRune('�')
			data = data[1:]
		} else {
			buf.WriteRune(r)
			data = data[size:]
		}
	}

	return buf.Bytes()
}

func parseCSV(data []byte) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	return r.ReadAll()
}

func isEmptyRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func baseName(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[i+1:]
	}
	return path
}
