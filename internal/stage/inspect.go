package stage

import (
	"fmt"

	"dataprep/internal/report"
	"dataprep/pkg/table"
)

// Inspect scans the decoded table for missing values, duplicate rows, and
// empty columns. It is strictly read-only: the table passes through
// untouched and every finding becomes an Issue. SkipDuplicates suppresses
// the duplicate finding when a later dedup stage will report what it
// actually removed (it sees the table after normalization and filling, so
// its count is the authoritative one).
type Inspect struct {
	SkipDuplicates bool
}

func (Inspect) Name() string { return "inspect" }

func (in Inspect) Apply(t table.Table) (table.Table, Outcome) {
	var out Outcome
	total := len(t.Rows)

	for _, col := range t.Columns {
		missing := 0
		empty := true
		for _, r := range t.Rows {
			if table.IsMissing(r[col]) {
				missing++
			} else {
				empty = false
			}
		}

		if missing > 0 && total > 0 {
			ratio := float64(missing) / float64(total)
			sev := report.MissingSeverity(ratio)
			out.Issues = append(out.Issues, report.Issue{
				Kind:        report.KindMissingValues,
				Column:      col,
				Count:       missing,
				Severity:    sev,
				Description: fmt.Sprintf("column %q has %d missing values (%.1f%%)", col, missing, ratio*100),
			})
			if sev != report.SeverityLow {
				out.Suggestions = append(out.Suggestions,
					fmt.Sprintf("Column %q is %.0f%% empty; consider filling or removing missing values.", col, ratio*100))
			}
		}

		if empty && total > 0 {
			out.Issues = append(out.Issues, report.Issue{
				Kind:        report.KindEmptyColumns,
				Column:      col,
				Count:       total,
				Severity:    report.SeverityMedium,
				Description: fmt.Sprintf("column %q is entirely empty", col),
			})
			out.Suggestions = append(out.Suggestions,
				fmt.Sprintf("Column %q contains no data and can be dropped.", col))
		}
	}

	if d := duplicateCount(t); d > 0 && !in.SkipDuplicates {
		out.Issues = append(out.Issues, report.Issue{
			Kind:        report.KindDuplicates,
			Count:       d,
			Severity:    report.SeverityMedium,
			Description: fmt.Sprintf("%d duplicate rows detected", d),
		})
		out.Suggestions = append(out.Suggestions,
			fmt.Sprintf("%d rows are exact duplicates; deduplication is recommended.", d))
	}

	return t, out
}

// duplicateCount is totalRows minus the number of canonically-distinct rows.
func duplicateCount(t table.Table) int {
	seen := make(map[uint64]struct{}, len(t.Rows))
	for _, r := range t.Rows {
		seen[rowKey(r, t.Columns)] = struct{}{}
	}
	return len(t.Rows) - len(seen)
}
