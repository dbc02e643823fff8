// Package decode turns a raw uploaded byte buffer into a Table. It supports
// CSV and first-sheet xlsx workbooks. Cells are preserved as trimmed strings
// (no premature type coercion; the type-inference stage owns conversion) and
// empty cells become nil.
//
// Structural failures (empty buffer, missing header row, unbalanced CSV
// quoting, unsupported extension) are fatal and reported as *ParseError; the
// caller receives no partial result. Shape irregularities such as short or
// long rows are tolerated by padding/truncating to the header width.
package decode

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"dataprep/pkg/table"
)

// maxShapeLogs caps per-row shape warnings per decode so a uniformly ragged
// file cannot flood the log.
const maxShapeLogs = 200

// ParseError is the fatal decode failure: the buffer could not be read as a
// supported tabular format.
type ParseError struct {
	Filename string
	Format   string
	Reason   string
	Err      error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode %s (%s): %s: %v", e.Filename, e.Format, e.Reason, e.Err)
	}
	return fmt.Sprintf("decode %s (%s): %s", e.Filename, e.Format, e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Decode parses buf according to the filename extension. Recognized
// extensions: .csv/.txt/.tsv (delimited text) and .xlsx/.xls (workbook).
// A zip signature in the buffer overrides a text extension, which covers
// spreadsheets uploaded with a wrong name.
func Decode(buf []byte, filename string) (table.Table, error) {
	if len(buf) == 0 {
		return table.Table{}, &ParseError{Filename: filename, Format: "unknown", Reason: "empty file"}
	}

	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".csv", ".txt", ".tsv":
		if isZip(buf) {
			return decodeXLSX(buf, filename)
		}
		comma := ','
		if ext == ".tsv" {
			comma = '\t'
		}
		return decodeCSV(buf, filename, comma)
	case ".xlsx", ".xls":
		return decodeXLSX(buf, filename)
	default:
		return table.Table{}, &ParseError{Filename: filename, Format: ext, Reason: "unsupported file type"}
	}
}

// isZip reports whether buf starts with the PK zip signature used by xlsx.
func isZip(buf []byte) bool {
	return len(buf) >= 4 && buf[0] == 'P' && buf[1] == 'K' && buf[2] == 0x03 && buf[3] == 0x04
}

// buildTable assembles header + body rows into a Table. Blank header names
// are dropped (their cells are discarded), duplicate header names are
// disambiguated with a numeric suffix, and every body row is padded or
// truncated to the header width. Empty cells become nil.
func buildTable(headers []string, body [][]string, filename, format string) (table.Table, error) {
	type col struct {
		name string
		idx  int
	}
	seen := map[string]int{}
	cols := make([]col, 0, len(headers))
	for i, h := range headers {
		name := strings.TrimSpace(h)
		if i == 0 {
			name = strings.TrimPrefix(name, "\uFEFF")
		}
		if name == "" {
			continue
		}
		seen[name]++
		if n := seen[name]; n > 1 {
			name = fmt.Sprintf("%s_%d", name, n)
		}
		cols = append(cols, col{name: name, idx: i})
	}
	if len(cols) == 0 {
		return table.Table{}, &ParseError{Filename: filename, Format: format, Reason: "no header row"}
	}

	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.name
	}

	rows := make([]table.Row, 0, len(body))
	shapeLogs := 0
	for i, raw := range body {
		if len(raw) != len(headers) {
			if shapeLogs < maxShapeLogs {
				log.Printf("decode %s: row %d has %d cells, header has %d; padding/truncating", filename, i+2, len(raw), len(headers))
			}
			shapeLogs++
		}
		r := make(table.Row, len(cols))
		for _, c := range cols {
			var v any
			if c.idx < len(raw) {
				s := strings.TrimSpace(raw[c.idx])
				if s != "" {
					v = s
				}
			}
			r[c.name] = v
		}
		rows = append(rows, r)
	}
	if shapeLogs > maxShapeLogs {
		log.Printf("decode %s: %d further shape warnings suppressed", filename, shapeLogs-maxShapeLogs)
	}

	return table.New(names, rows), nil
}
