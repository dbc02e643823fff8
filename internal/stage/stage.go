// Package stage implements the pipeline's transform stages. Each stage is a
// small struct configured by its public fields and applied through a common
// interface, so stages can be composed, reordered for testing, or unit-tested
// in isolation.
//
// Stages are pure with respect to accumulation: findings, suggestions, and
// per-column metadata are returned in an explicit Outcome value, not appended
// to shared state. The orchestrator merges outcomes in stage order.
package stage

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/zeebo/xxh3"

	"dataprep/internal/report"
	"dataprep/pkg/table"
)

// Stage is a single table transform.
type Stage interface {
	// Name identifies the stage in logs and metrics.
	Name() string

	// Apply transforms t and reports what happened. Implementations may
	// mutate row maps in place but must not reorder rows.
	Apply(t table.Table) (table.Table, Outcome)
}

// Outcome carries everything a stage produced besides the table itself.
// Only the fields relevant to a given stage are set.
type Outcome struct {
	Issues      []report.Issue
	Suggestions []string

	// RemovedRows counts rows dropped by pruning, dedup, missing-value
	// removal, or outlier removal.
	RemovedRows int

	// RemovedColumns lists columns dropped by pruning or feature selection.
	RemovedColumns []string

	// FilledCells counts cells rewritten by the missing-value handler.
	FilledCells int

	// Encodings is set by the categorical encoder, keyed by source column.
	Encodings map[string]Encoding

	// Scalings is set by the numerical scaler, keyed by column.
	Scalings map[string]Scaling

	// Stats is set by the final statistics stage.
	Stats *report.Statistics
}

// Merge folds o2 into o.
func (o *Outcome) Merge(o2 Outcome) {
	o.Issues = append(o.Issues, o2.Issues...)
	o.Suggestions = append(o.Suggestions, o2.Suggestions...)
	o.RemovedRows += o2.RemovedRows
	o.RemovedColumns = append(o.RemovedColumns, o2.RemovedColumns...)
	o.FilledCells += o2.FilledCells
	if o2.Encodings != nil {
		if o.Encodings == nil {
			o.Encodings = map[string]Encoding{}
		}
		for k, v := range o2.Encodings {
			o.Encodings[k] = v
		}
	}
	if o2.Scalings != nil {
		if o.Scalings == nil {
			o.Scalings = map[string]Scaling{}
		}
		for k, v := range o2.Scalings {
			o.Scalings[k] = v
		}
	}
	if o2.Stats != nil {
		o.Stats = o2.Stats
	}
}

// rowKey hashes a row into a canonical 64-bit key. The serialization walks
// the column list in order, so keys are stable regardless of map iteration,
// and tags each value with its dynamic type so "1" and 1 do not collide.
func rowKey(r table.Row, columns []string) uint64 {
	var b strings.Builder
	for _, c := range columns {
		b.WriteString(c)
		b.WriteByte('=')
		writeCanonical(&b, r[c])
		b.WriteByte('\x1f')
	}
	return xxh3.HashString(b.String())
}

func writeCanonical(b *strings.Builder, v any) {
	switch t := v.(type) {
	case nil:
		b.WriteByte('\x00')
	case string:
		b.WriteByte('s')
		b.WriteString(t)
	case bool:
		b.WriteByte('b')
		b.WriteString(strconv.FormatBool(t))
	case float64:
		b.WriteByte('n')
		b.WriteString(strconv.FormatFloat(t, 'g', -1, 64))
	default:
		b.WriteByte('?')
		fmt.Fprint(b, t)
	}
}
