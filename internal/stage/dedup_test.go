package stage

import (
	"reflect"
	"testing"

	"dataprep/internal/report"
)

func TestDedupKeepFirst(t *testing.T) {
	in := tbl([]string{"name", "city"},
		[]any{"ada", "london"},
		[]any{"ada", "london"},
		[]any{"ada", "paris"},
	)
	got, out := Dedup{}.Apply(in)
	if len(got.Rows) != 2 {
		t.Fatalf("rows: got %d want 2", len(got.Rows))
	}
	if out.RemovedRows != 1 {
		t.Fatalf("RemovedRows: got %d want 1", out.RemovedRows)
	}
	if got.Rows[0]["city"] != "london" || got.Rows[1]["city"] != "paris" {
		t.Fatalf("wrong rows kept: %#v", got.Rows)
	}
	if len(out.Issues) != 1 || out.Issues[0].Kind != report.KindDuplicates || out.Issues[0].Count != 1 {
		t.Fatalf("issues: got %#v", out.Issues)
	}
}

// Applying dedup twice must be a no-op the second time.
func TestDedupIdempotent(t *testing.T) {
	in := tbl([]string{"a"}, []any{"x"}, []any{"x"}, []any{"y"})
	once, _ := Dedup{}.Apply(in)
	twice, out := Dedup{}.Apply(once)
	if out.RemovedRows != 0 {
		t.Fatalf("second pass removed %d rows, want 0", out.RemovedRows)
	}
	if !reflect.DeepEqual(once.Rows, twice.Rows) {
		t.Fatalf("second pass changed rows: %#v vs %#v", once.Rows, twice.Rows)
	}
}

// The string "1" and the number 1 must not collide in the row key.
func TestRowKeyTypeTagged(t *testing.T) {
	cols := []string{"v"}
	a := tbl(cols, []any{"1"}).Rows[0]
	b := tbl(cols, []any{float64(1)}).Rows[0]
	if rowKey(a, cols) == rowKey(b, cols) {
		t.Fatal(`rowKey("1") == rowKey(1.0)`)
	}
}
