package stage

import (
	"fmt"

	"dataprep/pkg/table"
)

// Prune drops fully-empty rows and fully-empty columns. Column emptiness is
// judged against the rows as they arrive, before any rows are removed, so
// the reported column count does not depend on row pruning.
type Prune struct {
	Rows    bool
	Columns bool
}

func (Prune) Name() string { return "prune" }

func (p Prune) Apply(t table.Table) (table.Table, Outcome) {
	var out Outcome

	if p.Columns {
		var emptyCols []string
		for _, col := range t.Columns {
			empty := true
			for _, r := range t.Rows {
				if !table.IsMissing(r[col]) {
					empty = false
					break
				}
			}
			if empty && len(t.Rows) > 0 {
				emptyCols = append(emptyCols, col)
			}
		}
		if len(emptyCols) > 0 {
			t = t.DropColumns(emptyCols...)
			out.RemovedColumns = append(out.RemovedColumns, emptyCols...)
			out.Suggestions = append(out.Suggestions,
				fmt.Sprintf("Removed %d empty columns.", len(emptyCols)))
		}
	}

	if p.Rows {
		kept := t.Rows[:0:0]
		for _, r := range t.Rows {
			if !rowEmpty(r, t.Columns) {
				kept = append(kept, r)
			}
		}
		if removed := len(t.Rows) - len(kept); removed > 0 {
			out.RemovedRows = removed
			t.Rows = kept
		}
	}

	return t, out
}

// rowEmpty reports whether every cell of r is missing.
func rowEmpty(r table.Row, columns []string) bool {
	for _, c := range columns {
		if !table.IsMissing(r[c]) {
			return false
		}
	}
	return true
}
