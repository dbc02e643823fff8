package stage

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"dataprep/internal/config"
	"dataprep/pkg/table"
)

// Missing applies the configured missing-value policy: remove drops any row
// with a nil in any column; fill rewrites missing cells per column using the
// column's inferred type and the fill strategy. Columns that are entirely
// missing are left untouched.
type Missing struct {
	Mode     config.MissingMode
	Strategy config.FillStrategy
}

func (Missing) Name() string { return "missing_values" }

func (m Missing) Apply(t table.Table) (table.Table, Outcome) {
	switch m.Mode {
	case config.MissingRemove:
		return m.removeRows(t)
	case config.MissingFill:
		return m.fill(t)
	default:
		return t, Outcome{}
	}
}

func (Missing) removeRows(t table.Table) (table.Table, Outcome) {
	kept := t.Rows[:0:0]
	for _, r := range t.Rows {
		complete := true
		for _, c := range t.Columns {
			if table.IsMissing(r[c]) {
				complete = false
				break
			}
		}
		if complete {
			kept = append(kept, r)
		}
	}
	removed := len(t.Rows) - len(kept)
	t.Rows = kept
	return t, Outcome{RemovedRows: removed}
}

func (m Missing) fill(t table.Table) (table.Table, Outcome) {
	var out Outcome
	for _, col := range t.Columns {
		vals := t.ColumnValues(col)
		if len(nonMissing(vals)) == 0 {
			continue // nothing to fill from
		}
		filled := m.fillColumn(t, col, vals)
		out.FilledCells += filled
	}
	if out.FilledCells > 0 {
		out.Suggestions = append(out.Suggestions,
			fmt.Sprintf("Filled %d missing cells using the %q strategy.", out.FilledCells, m.Strategy))
	}
	return t, out
}

// fillColumn fills the missing cells of one column and returns how many it
// rewrote. Numeric columns honor mean/median/zero; everything else falls
// back to mode, and the positional forward/backward strategies work for any
// type.
func (m Missing) fillColumn(t table.Table, col string, vals []any) int {
	switch m.Strategy {
	case config.FillForward:
		return fillDirectional(t, col, true)
	case config.FillBackward:
		return fillDirectional(t, col, false)
	}

	numeric := classifyColumn(vals) == kindNumber
	var fillValue any
	if numeric {
		nums, _ := columnFloats(t, col)
		switch m.Strategy {
		case config.FillMedian:
			fillValue = quantileAt(sortedCopy(nums), 0.5)
		case config.FillZero:
			fillValue = float64(0)
		case config.FillMode:
			fillValue = modeValue(vals)
		default: // mean
			fillValue = stat.Mean(nums, nil)
		}
	} else {
		// mean/median/zero are meaningless for non-numeric data; use the
		// most frequent value instead.
		fillValue = modeValue(vals)
	}
	if fillValue == nil {
		return 0
	}

	filled := 0
	for _, r := range t.Rows {
		if table.IsMissing(r[col]) {
			r[col] = fillValue
			filled++
		}
	}
	return filled
}

// fillDirectional carries the previous (or next) observed value into missing
// cells. Leading (or trailing) gaps stay missing.
func fillDirectional(t table.Table, col string, forward bool) int {
	filled := 0
	var last any
	idx := func(i int) int {
		if forward {
			return i
		}
		return len(t.Rows) - 1 - i
	}
	for i := 0; i < len(t.Rows); i++ {
		r := t.Rows[idx(i)]
		if table.IsMissing(r[col]) {
			if last != nil {
				r[col] = last
				filled++
			}
			continue
		}
		last = r[col]
	}
	return filled
}

// modeValue picks the most frequent non-missing value; first-seen wins ties.
func modeValue(vals []any) any {
	counts := map[string]int{}
	firstSeen := map[string]any{}
	order := []string{}
	for _, v := range vals {
		if table.IsMissing(v) {
			continue
		}
		k := categoryString(v)
		if _, ok := counts[k]; !ok {
			firstSeen[k] = v
			order = append(order, k)
		}
		counts[k]++
	}
	best, bestCount := "", -1
	for _, k := range order {
		if counts[k] > bestCount {
			best, bestCount = k, counts[k]
		}
	}
	if bestCount < 0 {
		return nil
	}
	return firstSeen[best]
}
