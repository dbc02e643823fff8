package stage

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"dataprep/internal/config"
	"dataprep/pkg/table"
)

// Select drops uninformative numeric columns. Variance selection removes
// columns whose population variance falls below VarianceThreshold;
// correlation selection removes the later of each highly correlated pair.
// The auto method runs variance then correlation. Mutual-information and
// chi-squared selection are not implemented and behave as correlation.
type Select struct {
	Method               config.SelectionMethod
	VarianceThreshold    float64
	CorrelationThreshold float64
}

func (Select) Name() string { return "feature_selection" }

func (s Select) Apply(t table.Table) (table.Table, Outcome) {
	var out Outcome

	method := s.Method
	if method == config.SelectMutualInfo || method == config.SelectChi2 {
		method = config.SelectCorrelation
	}

	var dropped []string
	if method == config.SelectVariance || method == config.SelectAuto {
		t, dropped = s.dropLowVariance(t, dropped)
	}
	if method == config.SelectCorrelation || method == config.SelectAuto {
		t, dropped = s.dropCorrelated(t, dropped)
	}

	if len(dropped) > 0 {
		out.RemovedColumns = dropped
		out.Suggestions = append(out.Suggestions,
			fmt.Sprintf("Feature selection removed %d columns: %v", len(dropped), dropped))
	}

	return t, out
}

func (s Select) dropLowVariance(t table.Table, dropped []string) (table.Table, []string) {
	var drop []string
	for _, col := range numericColumns(t) {
		vals, _ := columnFloats(t, col)
		if len(vals) < 2 {
			continue
		}
		if popVariance(vals) < s.VarianceThreshold {
			drop = append(drop, col)
		}
	}
	if len(drop) == 0 {
		return t, dropped
	}
	return t.DropColumns(drop...), append(dropped, drop...)
}

// dropCorrelated walks numeric column pairs in column order and marks the
// second column of any pair whose absolute Pearson correlation exceeds the
// threshold. Rows where either value is missing are excluded pairwise.
func (s Select) dropCorrelated(t table.Table, dropped []string) (table.Table, []string) {
	cols := numericColumns(t)
	doomed := map[string]bool{}

	for i := 0; i < len(cols); i++ {
		if doomed[cols[i]] {
			continue
		}
		for j := i + 1; j < len(cols); j++ {
			if doomed[cols[j]] {
				continue
			}
			r := pairwiseCorrelation(t, cols[i], cols[j])
			if math.Abs(r) > s.CorrelationThreshold {
				doomed[cols[j]] = true
			}
		}
	}

	if len(doomed) == 0 {
		return t, dropped
	}
	var drop []string
	for _, c := range cols {
		if doomed[c] {
			drop = append(drop, c)
		}
	}
	return t.DropColumns(drop...), append(dropped, drop...)
}

func pairwiseCorrelation(t table.Table, a, b string) float64 {
	var xs, ys []float64
	for _, r := range t.Rows {
		x, okx := cellNumber(r[a])
		y, oky := cellNumber(r[b])
		if !okx || !oky {
			continue
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}
	if len(xs) < 3 {
		return 0
	}
	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) {
		return 0
	}
	return r
}
