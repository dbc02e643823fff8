// Package table defines the in-memory tabular data model shared by every
// pipeline stage. A Table is an ordered list of column names plus a sequence
// of row records; cell values are nil, float64, bool, or string (dates are
// normalized ISO strings). Row order is insertion order and is never
// reordered by a stage, only reduced.
package table

import "strings"

// Row maps a column name to a cell value.
type Row map[string]any

// Table is an ordered-column view over a slice of rows. Stages receive a
// Table by value and return a new Table value; cell maps may be mutated in
// place by transforming stages, but the column slice is copied on any
// structural change.
type Table struct {
	Columns []string
	Rows    []Row
}

// New constructs a Table from a column list and rows.
func New(columns []string, rows []Row) Table {
	return Table{Columns: columns, Rows: rows}
}

// HasColumn reports whether name is one of the table's columns.
func (t Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// ColumnValues returns the cell values of column name in row order.
func (t Table) ColumnValues(name string) []any {
	out := make([]any, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r[name]
	}
	return out
}

// WithColumns returns a copy of t whose column list is replaced by cols. The
// rows are shared with the receiver.
func (t Table) WithColumns(cols []string) Table {
	return Table{Columns: cols, Rows: t.Rows}
}

// DropColumns returns a copy of t with the named columns removed from the
// column list and deleted from every row.
func (t Table) DropColumns(names ...string) Table {
	drop := make(map[string]struct{}, len(names))
	for _, n := range names {
		drop[n] = struct{}{}
	}
	cols := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		if _, ok := drop[c]; !ok {
			cols = append(cols, c)
		}
	}
	for _, r := range t.Rows {
		for n := range drop {
			delete(r, n)
		}
	}
	return Table{Columns: cols, Rows: t.Rows}
}

// AppendColumn adds name to the end of the column list if not already
// present. Cell values are the caller's responsibility.
func (t Table) AppendColumn(name string) Table {
	if t.HasColumn(name) {
		return t
	}
	cols := make([]string, 0, len(t.Columns)+1)
	cols = append(cols, t.Columns...)
	cols = append(cols, name)
	return Table{Columns: cols, Rows: t.Rows}
}

// IsMissing reports whether v counts as a missing cell: nil, or a string
// that is empty after trimming.
func IsMissing(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}
