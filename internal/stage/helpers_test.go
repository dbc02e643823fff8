package stage

import (
	"dataprep/pkg/table"
)

// tbl builds a table from a column list and cell slices, one slice per row.
func tbl(cols []string, cells ...[]any) table.Table {
	rows := make([]table.Row, len(cells))
	for i, c := range cells {
		r := table.Row{}
		for j, col := range cols {
			r[col] = c[j]
		}
		rows[i] = r
	}
	return table.New(cols, rows)
}
