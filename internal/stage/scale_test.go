package stage

import (
	"fmt"
	"math"
	"testing"

	"gonum.org/v1/gonum/stat"

	"dataprep/internal/config"
)

func floatColumn(vals ...float64) [][]any {
	cells := make([][]any, len(vals))
	for i, v := range vals {
		cells[i] = []any{v}
	}
	return cells
}

// After standard scaling a column has mean ~0 and sample std ~1.
func TestScaleStandard(t *testing.T) {
	in := tbl([]string{"n"}, floatColumn(2, 4, 4, 4, 5, 5, 7, 9)...)
	got, out := Scale{Method: config.ScaleStandard}.Apply(in)

	sc := out.Scalings["n"]
	if sc.Method != "standard" || sc.Standard == nil {
		t.Fatalf("scaling params: %#v", sc)
	}
	scaled, _ := columnFloats(got, "n")
	if m := stat.Mean(scaled, nil); math.Abs(m) > 1e-9 {
		t.Fatalf("mean after scaling: %v", m)
	}
	if sd := stat.StdDev(scaled, nil); math.Abs(sd-1) > 1e-9 {
		t.Fatalf("std after scaling: %v", sd)
	}
}

func TestScaleMinMax(t *testing.T) {
	in := tbl([]string{"n"}, floatColumn(10, 20, 30)...)
	got, out := Scale{Method: config.ScaleMinMax}.Apply(in)

	sc := out.Scalings["n"]
	if sc.MinMax == nil || sc.MinMax.Min != 10 || sc.MinMax.Max != 30 {
		t.Fatalf("params: %#v", sc)
	}
	want := []float64{0, 0.5, 1}
	scaled, _ := columnFloats(got, "n")
	for i, w := range want {
		if scaled[i] != w {
			t.Fatalf("row %d: got %v want %v", i, scaled[i], w)
		}
	}
}

func TestScaleRobust(t *testing.T) {
	in := tbl([]string{"n"}, floatColumn(1, 2, 3, 4, 5, 6, 7, 8)...)
	_, out := Scale{Method: config.ScaleRobust}.Apply(in)

	// floor-index quantiles on 8 values: Q1=sorted[2]=3, median=sorted[4]=5,
	// Q3=sorted[6]=7.
	sc := out.Scalings["n"]
	if sc.Robust == nil || sc.Robust.Q1 != 3 || sc.Robust.Median != 5 || sc.Robust.Q3 != 7 {
		t.Fatalf("params: %#v", sc)
	}
}

// A constant column cannot be scaled: its values stay put and no params
// entry is recorded for it.
func TestScaleSkipsConstantColumn(t *testing.T) {
	in := tbl([]string{"n", "m"}, []any{float64(5), float64(1)}, []any{float64(5), float64(2)}, []any{float64(5), float64(3)})
	got, out := Scale{Method: config.ScaleStandard}.Apply(in)
	if got.Rows[0]["n"] != float64(5) {
		t.Fatalf("constant column changed: %#v", got.Rows[0]["n"])
	}
	if sc, ok := out.Scalings["n"]; ok {
		t.Fatalf("constant column got a params entry: %#v", sc)
	}
	if _, ok := out.Scalings["m"]; !ok {
		t.Fatalf("varying column missing params: %#v", out.Scalings)
	}
}

// Many numeric columns are fitted concurrently; every column must come out
// scaled correctly and no cell of another column may be disturbed.
func TestScaleManyColumns(t *testing.T) {
	const nCols, nRows = 16, 400
	cols := make([]string, nCols)
	for c := range cols {
		cols[c] = fmt.Sprintf("c%d", c)
	}
	rows := make([][]any, nRows)
	for r := range rows {
		cells := make([]any, nCols)
		for c := range cells {
			cells[c] = float64(r + c)
		}
		rows[r] = cells
	}

	got, out := Scale{Method: config.ScaleMinMax}.Apply(tbl(cols, rows...))
	if len(out.Scalings) != nCols {
		t.Fatalf("scaled %d columns, want %d", len(out.Scalings), nCols)
	}
	for c, col := range cols {
		sc := out.Scalings[col]
		if sc.MinMax == nil || sc.MinMax.Min != float64(c) || sc.MinMax.Max != float64(c+nRows-1) {
			t.Fatalf("%s params: %#v", col, sc)
		}
		vals, _ := columnFloats(got, col)
		for r, v := range vals {
			if want := float64(r) / float64(nRows-1); math.Abs(v-want) > 1e-12 {
				t.Fatalf("%s row %d: got %v want %v", col, r, v, want)
			}
		}
	}
}
