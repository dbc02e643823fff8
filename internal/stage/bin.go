package stage

import (
	"dataprep/internal/config"
	"dataprep/pkg/table"
)

// Bin discretizes numeric columns into `{col}_bin` companion columns holding
// 0-based bin indices. The source column is kept. K-means binning is not
// implemented and behaves as equal-width.
type Bin struct {
	Strategy config.BinningStrategy
	Bins     int
}

func (Bin) Name() string { return "bin_numerical" }

func (b Bin) Apply(t table.Table) (table.Table, Outcome) {
	var out Outcome
	bins := b.Bins
	if bins < 2 {
		bins = 2
	}

	for _, col := range numericColumns(t) {
		vals, rows := columnFloats(t, col)
		if len(vals) < 2 {
			continue
		}

		var index func(float64) int
		switch b.Strategy {
		case config.BinEqualFrequency, config.BinQuantile:
			index = quantileBinner(vals, bins)
		default: // equal-width (also the kmeans fallback)
			index = equalWidthBinner(vals, bins)
		}
		if index == nil {
			continue
		}

		name := uniqueColumnName(t, col+"_bin")
		for i := range t.Rows {
			t.Rows[i][name] = nil
		}
		for j, row := range rows {
			t.Rows[row][name] = float64(index(vals[j]))
		}
		t = t.AppendColumn(name)
	}

	return t, out
}

// equalWidthBinner splits [min, max] into bins equal intervals. The maximum
// clamps into the last bin. Constant columns yield no binner.
func equalWidthBinner(vals []float64, bins int) func(float64) int {
	sorted := sortedCopy(vals)
	lo, hi := sorted[0], sorted[len(sorted)-1]
	if hi == lo {
		return nil
	}
	width := (hi - lo) / float64(bins)
	return func(v float64) int {
		i := int((v - lo) / width)
		if i >= bins {
			i = bins - 1
		}
		if i < 0 {
			i = 0
		}
		return i
	}
}

// quantileBinner places upper edges at sorted[i*n/bins] so each bin holds
// roughly the same number of values.
func quantileBinner(vals []float64, bins int) func(float64) int {
	sorted := sortedCopy(vals)
	n := len(sorted)
	edges := make([]float64, 0, bins-1)
	for i := 1; i < bins; i++ {
		edges = append(edges, sorted[i*n/bins])
	}
	if sorted[0] == sorted[n-1] {
		return nil
	}
	return func(v float64) int {
		for i, e := range edges {
			if v < e {
				return i
			}
		}
		return bins - 1
	}
}
