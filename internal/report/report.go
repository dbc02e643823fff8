// Package report defines the data-quality findings produced by the pipeline.
//
// Findings are values, never errors: stages record what they saw and the
// pipeline always completes with a best-effort result. Each stage returns its
// findings in an explicit outcome; nothing here is shared mutable state.
package report

// Severity grades how much a finding degrades the dataset.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Issue kinds recorded by the pipeline stages.
const (
	KindMissingValues = "missing_values"
	KindDuplicates    = "duplicates"
	KindEmptyColumns  = "empty_columns"
	KindOutliers      = "outliers"
)

// Issue is a single data-quality finding. Append-only; never mutated after
// creation.
type Issue struct {
	Kind        string   `json:"type"`
	Column      string   `json:"column,omitempty"`
	Count       int      `json:"count"`
	Severity    Severity `json:"severity"`
	Description string   `json:"description"`
}

// Statistics is the final data-quality summary over the processed table.
type Statistics struct {
	TotalRows          int     `json:"totalRows"`
	TotalColumns       int     `json:"totalColumns"`
	NumericColumns     int     `json:"numericColumns"`
	CategoricalColumns int     `json:"categoricalColumns"`
	DateColumns        int     `json:"dateColumns"`
	MissingValuesPct   float64 `json:"missingValuesPct"`
	DuplicateRowsPct   float64 `json:"duplicateRowsPct"`
	DataQualityScore   float64 `json:"dataQualityScore"`
}

// MissingSeverity maps a missing-value ratio onto a Severity per the fixed
// thresholds: high above 50%, medium above 20%, low otherwise.
func MissingSeverity(ratio float64) Severity {
	switch {
	case ratio > 0.5:
		return SeverityHigh
	case ratio > 0.2:
		return SeverityMedium
	default:
		return SeverityLow
	}
}
