package stage

import (
	"reflect"
	"testing"
)

func TestPruneEmptyRowsAndColumns(t *testing.T) {
	in := tbl([]string{"name", "blank"},
		[]any{"ada", nil},
		[]any{nil, "  "},
		[]any{"bob", ""},
	)
	got, out := Prune{Rows: true, Columns: true}.Apply(in)

	if !reflect.DeepEqual(got.Columns, []string{"name"}) {
		t.Fatalf("columns: got %v want [name]", got.Columns)
	}
	if !reflect.DeepEqual(out.RemovedColumns, []string{"blank"}) {
		t.Fatalf("RemovedColumns: got %v", out.RemovedColumns)
	}
	if len(got.Rows) != 2 || out.RemovedRows != 1 {
		t.Fatalf("rows: got %d (removed %d), want 2 (removed 1)", len(got.Rows), out.RemovedRows)
	}
}

func TestPruneDisabled(t *testing.T) {
	in := tbl([]string{"a"}, []any{nil})
	got, out := Prune{}.Apply(in)
	if len(got.Rows) != 1 || out.RemovedRows != 0 || len(out.RemovedColumns) != 0 {
		t.Fatalf("disabled prune changed the table: %#v %#v", got, out)
	}
}
