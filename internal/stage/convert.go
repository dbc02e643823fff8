package stage

import (
	"time"

	"dataprep/pkg/table"
)

// Convert infers a logical type per column and coerces every cell to it.
// Classification priority: boolean (two-valued lexicon), number (>=80%
// parseable after scrubbing), date (>=70% parseable), else string. Cells
// that fail to parse for the inferred type degrade to nil, never to an
// error.
//
// Dates are normalized to ISO strings so the table stays JSON-shaped: plain
// "2006-01-02" when no clock component was present, RFC 3339 otherwise.
// This stage must run before anything numeric-dependent (outliers, encoding
// cardinality checks, scaling).
type Convert struct{}

func (Convert) Name() string { return "convert_types" }

func (Convert) Apply(t table.Table) (table.Table, Outcome) {
	for _, col := range t.Columns {
		kind := classifyColumn(t.ColumnValues(col))
		switch kind {
		case kindBoolean:
			convertCells(t, col, func(s string) (any, bool) {
				b, ok := parseBoolean(s)
				return b, ok
			})
		case kindNumber:
			convertCells(t, col, func(s string) (any, bool) {
				f, ok := parseNumber(s)
				return f, ok
			})
		case kindDate:
			convertCells(t, col, func(s string) (any, bool) {
				ts, hasTime, ok := parseDate(s)
				if !ok {
					return nil, false
				}
				return isoString(ts, hasTime), true
			})
		case kindString:
			// Already strings; just canonicalize empties to nil.
			for _, r := range t.Rows {
				if table.IsMissing(r[col]) {
					r[col] = nil
				}
			}
		}
	}
	return t, Outcome{}
}

// convertCells rewrites every cell of col through parse; unparseable or
// missing cells become nil, already-typed non-string cells are kept.
func convertCells(t table.Table, col string, parse func(string) (any, bool)) {
	for _, r := range t.Rows {
		v := r[col]
		if table.IsMissing(v) {
			r[col] = nil
			continue
		}
		s, isStr := v.(string)
		if !isStr {
			continue
		}
		if parsed, ok := parse(s); ok {
			r[col] = parsed
		} else {
			r[col] = nil
		}
	}
}

// isoString renders a parsed date in its canonical table form.
func isoString(ts time.Time, hasTime bool) string {
	if hasTime {
		return ts.Format(time.RFC3339)
	}
	return ts.Format("2006-01-02")
}
