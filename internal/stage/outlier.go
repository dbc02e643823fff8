package stage

import (
	"fmt"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"dataprep/internal/report"
	"dataprep/pkg/table"
)

// Outliers flags rows holding IQR-fenced numeric outliers and optionally
// drops them. For each numeric column with at least four non-null values it
// computes Q1/Q3 by the fixed floor-index rule and fences at 1.5 IQR; the
// flagged row indices are unioned across columns into one finding.
//
// Per-column fences are independent, so they are computed concurrently into
// preallocated slots; the union is then taken in column order, keeping the
// result deterministic.
type Outliers struct {
	Remove bool
}

func (Outliers) Name() string { return "outliers" }

type columnFences struct {
	lo, hi  float64
	flagged []int // row indices outside the fences, ascending
}

func (o Outliers) Apply(t table.Table) (table.Table, Outcome) {
	cols := numericColumns(t)
	fences := make([]*columnFences, len(cols))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, col := range cols {
		g.Go(func() error {
			vals, rowIdx := columnFloats(t, col)
			if len(vals) < 4 {
				return nil
			}
			sorted := sortedCopy(vals)
			q1 := quantileAt(sorted, 0.25)
			q3 := quantileAt(sorted, 0.75)
			iqr := q3 - q1
			f := &columnFences{lo: q1 - 1.5*iqr, hi: q3 + 1.5*iqr}
			for j, v := range vals {
				if v < f.lo || v > f.hi {
					f.flagged = append(f.flagged, rowIdx[j])
				}
			}
			fences[i] = f
			return nil
		})
	}
	_ = g.Wait() // workers never return errors; Wait is just the barrier

	flagged := map[int]struct{}{}
	for _, f := range fences {
		if f == nil {
			continue
		}
		for _, idx := range f.flagged {
			flagged[idx] = struct{}{}
		}
	}

	var out Outcome
	if len(flagged) == 0 {
		return t, out
	}

	out.Issues = append(out.Issues, report.Issue{
		Kind:        report.KindOutliers,
		Count:       len(flagged),
		Severity:    report.SeverityLow,
		Description: fmt.Sprintf("%d rows contain IQR outliers in numeric columns", len(flagged)),
	})
	if !o.Remove {
		out.Suggestions = append(out.Suggestions,
			fmt.Sprintf("%d rows hold outlier values; enable outlier removal to drop them.", len(flagged)))
		return t, out
	}

	idxs := make([]int, 0, len(flagged))
	for i := range flagged {
		idxs = append(idxs, i)
	}
	sort.Ints(idxs)

	kept := t.Rows[:0:0]
	drop := map[int]struct{}{}
	for _, i := range idxs {
		drop[i] = struct{}{}
	}
	for i, r := range t.Rows {
		if _, gone := drop[i]; !gone {
			kept = append(kept, r)
		}
	}
	out.RemovedRows = len(t.Rows) - len(kept)
	t.Rows = kept
	return t, out
}
