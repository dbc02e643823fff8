package stage

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"gonum.org/v1/gonum/stat"

	"dataprep/pkg/table"
)

// colKind is the inferred logical type of a column.
type colKind int

const (
	kindString colKind = iota
	kindBoolean
	kindNumber
	kindDate
)

func (k colKind) String() string {
	switch k {
	case kindBoolean:
		return "boolean"
	case kindNumber:
		return "number"
	case kindDate:
		return "date"
	default:
		return "string"
	}
}

// numberScrubber strips the decorations commonly found around numbers in
// spreadsheets: currency symbols, thousands separators, percent signs, and
// interior whitespace.
var numberScrubber = strings.NewReplacer(
	"$", "", "€", "", "£", "",
	",", "", "%", "", " ", "", " ", "",
)

// parseNumber parses s as a float after scrubbing currency symbols, commas,
// percent signs, and whitespace.
func parseNumber(s string) (float64, bool) {
	cleaned := numberScrubber.Replace(strings.TrimSpace(s))
	if cleaned == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// cellNumber extracts a float from an already-typed or raw string cell.
func cellNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return 0, false
		}
		return t, true
	case string:
		return parseNumber(t)
	default:
		return 0, false
	}
}

// booleanLexicon is the fixed set of accepted boolean spellings.
func parseBoolean(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "y", "1":
		return true, true
	case "false", "no", "n", "0":
		return false, true
	default:
		return false, false
	}
}

// dateLayouts are the date-only layouts; parseDate tries timestampLayouts
// before these.
var dateLayouts = []string{
	"2006-01-02", // ISO
	"2006/01/02",
	"01/02/2006", // MDY slash
	"02.01.2006", // DMY dot
	"2 Jan 2006",
	"Jan 2, 2006",
	"02-Jan-2006",
	"January 2, 2006",
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"01/02/2006 15:04:05",
	"2006/01/02 15:04:05",
}

// parseDate tries the known layouts, timestamps first so a time component is
// not silently truncated. hasTime reports whether the matched layout carried
// a clock component.
func parseDate(s string) (t time.Time, hasTime bool, ok bool) {
	st := strings.TrimSpace(s)
	if st == "" {
		return time.Time{}, false, false
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, st); err == nil {
			return ts, true, true
		}
	}
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, st); err == nil {
			return ts, false, true
		}
	}
	return time.Time{}, false, false
}

// cellDate extracts a date from a cell holding either an already-normalized
// ISO string or a raw date string.
func cellDate(v any) (time.Time, bool) {
	s, ok := v.(string)
	if !ok {
		return time.Time{}, false
	}
	t, _, ok := parseDate(s)
	return t, ok
}

// nonMissing returns the values that do not satisfy the missing predicate.
func nonMissing(vals []any) []any {
	out := make([]any, 0, len(vals))
	for _, v := range vals {
		if !table.IsMissing(v) {
			out = append(out, v)
		}
	}
	return out
}

// numericRatio reports the fraction of non-missing values that parse as
// numbers. Zero when the column has no non-missing values.
func numericRatio(vals []any) float64 {
	present := nonMissing(vals)
	if len(present) == 0 {
		return 0
	}
	n := 0
	for _, v := range present {
		if _, ok := cellNumber(v); ok {
			n++
		}
	}
	return float64(n) / float64(len(present))
}

// dateRatio reports the fraction of non-missing values that parse as dates.
func dateRatio(vals []any) float64 {
	present := nonMissing(vals)
	if len(present) == 0 {
		return 0
	}
	n := 0
	for _, v := range present {
		if s, ok := v.(string); ok {
			if _, _, ok := parseDate(s); ok {
				n++
			}
		}
	}
	return float64(n) / float64(len(present))
}

// isNumericColumn applies the shared >=80% threshold on t's column col.
func isNumericColumn(t table.Table, col string) bool {
	return numericRatio(t.ColumnValues(col)) >= 0.8
}

// numericColumns lists the columns satisfying isNumericColumn, in table
// column order.
func numericColumns(t table.Table) []string {
	out := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		if isNumericColumn(t, c) {
			out = append(out, c)
		}
	}
	return out
}

// columnFloats returns (value, rowIndex) pairs for the non-missing numeric
// cells of col, preserving row order.
func columnFloats(t table.Table, col string) (vals []float64, rowIdx []int) {
	for i, r := range t.Rows {
		if f, ok := cellNumber(r[col]); ok {
			vals = append(vals, f)
			rowIdx = append(rowIdx, i)
		}
	}
	return vals, rowIdx
}

// classifyColumn infers the logical type of a column of raw values, in
// priority order: boolean, number (>=80% parseable), date (>=70% parseable),
// string.
func classifyColumn(vals []any) colKind {
	present := nonMissing(vals)
	if len(present) == 0 {
		return kindString
	}

	distinct := map[string]struct{}{}
	allBool := true
	for _, v := range present {
		s, ok := v.(string)
		if !ok {
			if _, isB := v.(bool); isB {
				continue
			}
			allBool = false
			break
		}
		if _, ok := parseBoolean(s); !ok {
			allBool = false
			break
		}
		distinct[strings.ToLower(strings.TrimSpace(s))] = struct{}{}
	}
	if allBool && len(distinct) <= 2 {
		return kindBoolean
	}

	if numericRatio(vals) >= 0.8 {
		return kindNumber
	}
	if dateRatio(vals) >= 0.7 {
		return kindDate
	}
	return kindString
}

// cardinality counts distinct non-missing values by canonical string form.
func cardinality(vals []any) int {
	seen := map[string]struct{}{}
	for _, v := range vals {
		if table.IsMissing(v) {
			continue
		}
		seen[categoryString(v)] = struct{}{}
	}
	return len(seen)
}

// categoryString renders a cell value as a category key.
func categoryString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	default:
		return ""
	}
}

// sortedCopy returns an ascending copy of vals.
func sortedCopy(vals []float64) []float64 {
	cp := make([]float64, len(vals))
	copy(cp, vals)
	sort.Float64s(cp)
	return cp
}

// quantileAt picks the floor(n*p)-th element of an ascending slice. This is
// the pipeline's fixed quantile rule; it intentionally does not interpolate.
func quantileAt(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	idx := int(float64(len(sorted)) * p)
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

// popVariance is the population variance (divides by n, not n-1), used by
// the variance-based feature selector.
func popVariance(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	m := stat.Mean(vals, nil)
	var sum float64
	for _, v := range vals {
		d := v - m
		sum += d * d
	}
	return sum / float64(len(vals))
}

// skewness is the population third standardized moment: the mean of cubed
// z-scores using the population standard deviation.
func skewness(vals []float64) float64 {
	n := len(vals)
	if n == 0 {
		return 0
	}
	m := stat.Mean(vals, nil)
	sd := math.Sqrt(popVariance(vals))
	if sd == 0 {
		return 0
	}
	var sum float64
	for _, v := range vals {
		z := (v - m) / sd
		sum += z * z * z
	}
	return sum / float64(n)
}
