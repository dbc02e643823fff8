package stage

import (
	"fmt"

	"dataprep/internal/report"
	"dataprep/pkg/table"
)

// Dedup removes rows that are exact duplicates of an earlier row, keeping
// the first occurrence. Rows are compared by a canonical column-ordered
// serialization, so the result is independent of map iteration order and
// the stage is idempotent. Removals are reported as a duplicates issue;
// rows made identical by earlier normalization or filling count.
type Dedup struct{}

func (Dedup) Name() string { return "dedup" }

func (Dedup) Apply(t table.Table) (table.Table, Outcome) {
	seen := make(map[uint64]struct{}, len(t.Rows))
	kept := t.Rows[:0:0]
	for _, r := range t.Rows {
		k := rowKey(r, t.Columns)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		kept = append(kept, r)
	}

	removed := len(t.Rows) - len(kept)
	t.Rows = kept

	var out Outcome
	if removed > 0 {
		out.RemovedRows = removed
		out.Issues = append(out.Issues, report.Issue{
			Kind:        report.KindDuplicates,
			Count:       removed,
			Severity:    report.SeverityMedium,
			Description: fmt.Sprintf("%d duplicate rows removed", removed),
		})
	}
	return t, out
}
