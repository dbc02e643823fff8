package stage

import (
	"testing"

	"dataprep/internal/config"
)

func TestMissingRemoveDropsIncompleteRows(t *testing.T) {
	in := tbl([]string{"a", "b"},
		[]any{"x", float64(1)},
		[]any{nil, float64(2)},
		[]any{"z", nil},
	)
	got, out := Missing{Mode: config.MissingRemove}.Apply(in)
	if len(got.Rows) != 1 || out.RemovedRows != 2 {
		t.Fatalf("got %d rows (removed %d), want 1 (removed 2)", len(got.Rows), out.RemovedRows)
	}
}

func TestMissingFillNumericStrategies(t *testing.T) {
	mk := func() []any { return []any{float64(1), float64(2), nil, float64(9)} }
	cases := []struct {
		strategy config.FillStrategy
		want     float64
	}{
		{config.FillMean, 4},   // (1+2+9)/3
		{config.FillMedian, 2}, // sorted [1 2 9], floor(3*0.5)=1
		{config.FillZero, 0},
	}
	for _, tc := range cases {
		vals := mk()
		var cells [][]any
		for _, v := range vals {
			cells = append(cells, []any{v})
		}
		got, out := Missing{Mode: config.MissingFill, Strategy: tc.strategy}.Apply(tbl([]string{"n"}, cells...))
		if out.FilledCells != 1 {
			t.Fatalf("%s: FilledCells got %d want 1", tc.strategy, out.FilledCells)
		}
		if v := got.Rows[2]["n"]; v != tc.want {
			t.Fatalf("%s: got %#v want %v", tc.strategy, v, tc.want)
		}
	}
}

// Mean is meaningless for text, so a text column filled with the mean
// strategy takes the most frequent value instead.
func TestMissingFillMeanFallsBackToModeForText(t *testing.T) {
	in := tbl([]string{"c"},
		[]any{"red"}, []any{"blue"}, []any{"red"}, []any{nil},
	)
	got, _ := Missing{Mode: config.MissingFill, Strategy: config.FillMean}.Apply(in)
	if v := got.Rows[3]["c"]; v != "red" {
		t.Fatalf("got %#v want red", v)
	}
}

func TestMissingFillForwardBackward(t *testing.T) {
	in := tbl([]string{"c"},
		[]any{nil}, []any{"a"}, []any{nil}, []any{"b"}, []any{nil},
	)
	fwd, _ := Missing{Mode: config.MissingFill, Strategy: config.FillForward}.Apply(in)
	want := []any{nil, "a", "a", "b", "b"}
	for i, w := range want {
		if fwd.Rows[i]["c"] != w {
			t.Fatalf("forward row %d: got %#v want %#v", i, fwd.Rows[i]["c"], w)
		}
	}

	in2 := tbl([]string{"c"},
		[]any{nil}, []any{"a"}, []any{nil}, []any{"b"}, []any{nil},
	)
	bwd, _ := Missing{Mode: config.MissingFill, Strategy: config.FillBackward}.Apply(in2)
	want2 := []any{"a", "a", "b", "b", nil}
	for i, w := range want2 {
		if bwd.Rows[i]["c"] != w {
			t.Fatalf("backward row %d: got %#v want %#v", i, bwd.Rows[i]["c"], w)
		}
	}
}

// An entirely missing column has no observed values to fill from and stays
// missing.
func TestMissingFillSkipsEmptyColumn(t *testing.T) {
	in := tbl([]string{"c"}, []any{nil}, []any{nil})
	got, out := Missing{Mode: config.MissingFill, Strategy: config.FillMean}.Apply(in)
	if out.FilledCells != 0 || got.Rows[0]["c"] != nil {
		t.Fatalf("empty column was filled: %#v", got.Rows)
	}
}
