package stage

import (
	"dataprep/internal/report"
	"dataprep/pkg/table"
)

// Stats summarizes the processed table. It never mutates data; it fills
// Outcome.Stats for the final result.
type Stats struct{}

func (Stats) Name() string { return "statistics" }

func (Stats) Apply(t table.Table) (table.Table, Outcome) {
	var out Outcome

	st := &report.Statistics{
		TotalRows:    len(t.Rows),
		TotalColumns: len(t.Columns),
	}

	missing := 0
	for _, col := range t.Columns {
		vals := t.ColumnValues(col)
		for _, v := range vals {
			if table.IsMissing(v) {
				missing++
			}
		}
		switch {
		case numericRatio(vals) >= 0.8:
			st.NumericColumns++
		case dateRatio(vals) >= 0.5:
			st.DateColumns++
		default:
			st.CategoricalColumns++
		}
	}

	cells := st.TotalRows * st.TotalColumns
	if cells > 0 {
		st.MissingValuesPct = float64(missing) / float64(cells) * 100
	}
	if st.TotalRows > 0 {
		st.DuplicateRowsPct = float64(duplicateCount(t)) / float64(st.TotalRows) * 100
	}

	score := 100 - st.MissingValuesPct - st.DuplicateRowsPct
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	st.DataQualityScore = score

	out.Stats = st
	return t, out
}
