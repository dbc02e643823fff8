package stage

import (
	"testing"

	"dataprep/internal/report"
)

// 1..12 plus 100: Q1=4, Q3=10 under the floor-index quantile rule, so the
// fences are [-5, 19] and only 100 is flagged.
func TestOutliersFlagsIQROutliers(t *testing.T) {
	var cells [][]any
	for i := 1; i <= 12; i++ {
		cells = append(cells, []any{float64(i)})
	}
	cells = append(cells, []any{float64(100)})

	got, out := Outliers{}.Apply(tbl([]string{"n"}, cells...))
	if len(got.Rows) != 13 {
		t.Fatalf("detect-only run removed rows: %d", len(got.Rows))
	}
	if len(out.Issues) != 1 || out.Issues[0].Kind != report.KindOutliers || out.Issues[0].Count != 1 {
		t.Fatalf("issues: got %#v", out.Issues)
	}
}

func TestOutliersRemovePreservesOrder(t *testing.T) {
	var cells [][]any
	for i := 1; i <= 12; i++ {
		cells = append(cells, []any{float64(i)})
	}
	cells = append(cells, []any{float64(100)})
	cells = append(cells, []any{float64(5)})

	got, out := Outliers{Remove: true}.Apply(tbl([]string{"n"}, cells...))
	if out.RemovedRows != 1 {
		t.Fatalf("RemovedRows: got %d want 1", out.RemovedRows)
	}
	if len(got.Rows) != 13 || got.Rows[12]["n"] != float64(5) {
		t.Fatalf("row order broken: %#v", got.Rows)
	}
}

// Fewer than four numeric values is not enough signal for fences.
func TestOutliersSkipsTinyColumns(t *testing.T) {
	in := tbl([]string{"n"}, []any{float64(1)}, []any{float64(2)}, []any{float64(1000)})
	_, out := Outliers{}.Apply(in)
	if len(out.Issues) != 0 {
		t.Fatalf("tiny column produced issues: %#v", out.Issues)
	}
}
