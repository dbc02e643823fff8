// Package pipeline wires the decoder and the transform stages into the
// caller-facing preprocessing entry points.
package pipeline

import (
	"fmt"
	"log"
	"math"
	"time"

	"dataprep/internal/config"
	"dataprep/internal/decode"
	"dataprep/internal/metrics"
	"dataprep/internal/report"
	"dataprep/internal/stage"
	"dataprep/pkg/table"
)

// Result is the full output of one preprocessing run. It is shaped for JSON
// serialization at the API boundary; cell values are restricted to nil,
// float64, bool, and string.
type Result struct {
	Data    []table.Row `json:"data"`
	Columns []string    `json:"columns"`

	OriginalRows  int `json:"originalRows"`
	ProcessedRows int `json:"processedRows"`
	RemovedRows   int `json:"removedRows"`

	Issues      []report.Issue    `json:"issues"`
	Suggestions []string          `json:"suggestions"`
	Statistics  report.Statistics `json:"statistics"`

	EncodingMap   map[string]stage.Encoding `json:"encodingMap,omitempty"`
	ScalingParams map[string]stage.Scaling  `json:"scalingParams,omitempty"`
}

// Preprocess decodes buf as the file named filename and runs the configured
// stages over it. Option validation and decode failures abort the run;
// anything past that point degrades per cell rather than failing the whole
// file.
func Preprocess(buf []byte, filename string, opts config.Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	t, err := decode.Decode(buf, filename)
	if err != nil {
		return nil, fmt.Errorf("preprocess %s: %w", filename, err)
	}
	metrics.RecordRows("decoded", int64(len(t.Rows)))

	return run(t, opts)
}

// Reprocess runs the configured stages over an already-decoded table, e.g.
// one edited by a client after a first pass.
func Reprocess(columns []string, rows []table.Row, opts config.Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return run(table.New(columns, rows), opts)
}

func run(t table.Table, opts config.Options) (*Result, error) {
	originalRows := len(t.Rows)

	var acc stage.Outcome
	for _, s := range stagesFor(opts) {
		start := time.Now()
		var out stage.Outcome
		t, out = s.Apply(t)
		d := time.Since(start)
		metrics.RecordStage(s.Name(), nil, d)
		log.Printf("stage %s: rows=%d cols=%d elapsed=%s", s.Name(), len(t.Rows), len(t.Columns), d.Round(time.Microsecond))
		acc.Merge(out)
	}
	metrics.RecordRows("removed", int64(acc.RemovedRows))
	metrics.RecordRows("processed", int64(len(t.Rows)))

	sanitize(t)

	res := &Result{
		Data:          t.Rows,
		Columns:       t.Columns,
		OriginalRows:  originalRows,
		ProcessedRows: len(t.Rows),
		RemovedRows:   acc.RemovedRows,
		Issues:        acc.Issues,
		Suggestions:   acc.Suggestions,
		EncodingMap:   acc.Encodings,
		ScalingParams: acc.Scalings,
	}
	if acc.Stats != nil {
		res.Statistics = *acc.Stats
	}
	if res.Issues == nil {
		res.Issues = []report.Issue{}
	}
	if res.Suggestions == nil {
		res.Suggestions = []string{}
	}
	return res, nil
}

// stagesFor assembles the stage list for one run. Order is fixed; options
// only decide which stages participate. Inspection and statistics always
// run. Dedup runs after the missing-value handler so rows that filling
// makes identical are deduplicated too; inspection hands the duplicate
// finding to dedup in that case.
func stagesFor(o config.Options) []stage.Stage {
	stages := []stage.Stage{stage.Inspect{SkipDuplicates: o.RemoveDuplicates}}

	if o.TrimWhitespace || o.NormalizeText {
		stages = append(stages, stage.NormalizeText{Trim: o.TrimWhitespace, Collapse: o.NormalizeText})
	}
	if o.RemoveEmptyRows || o.RemoveEmptyColumns {
		stages = append(stages, stage.Prune{Rows: o.RemoveEmptyRows, Columns: o.RemoveEmptyColumns})
	}
	if o.ConvertTypes {
		stages = append(stages, stage.Convert{})
	}
	if o.HandleMissing != config.MissingKeep {
		stages = append(stages, stage.Missing{Mode: o.HandleMissing, Strategy: o.FillStrategy})
	}
	if o.RemoveDuplicates {
		stages = append(stages, stage.Dedup{})
	}
	if o.DetectOutliers {
		stages = append(stages, stage.Outliers{Remove: o.RemoveOutliers})
	}
	if o.StandardizeFormats {
		stages = append(stages, stage.StandardizeFormats{})
	}
	if o.EncodeCategorical {
		stages = append(stages, stage.Encode{
			Strategy:              o.EncodingStrategy,
			HandleHighCardinality: o.HandleHighCardinality,
			CardinalityThreshold:  o.CardinalityThreshold,
		})
	}
	if o.ScaleNumerical && o.ScalingMethod != config.ScaleNone {
		stages = append(stages, stage.Scale{Method: o.ScalingMethod})
	}
	if o.HandleTextData && o.TextProcessingLevel != config.TextBasic {
		stages = append(stages, stage.TextFeatures{Level: o.TextProcessingLevel})
	}
	if o.ExtractDateFeatures {
		stages = append(stages, stage.DateFeatures{Level: o.DateFeatureLevel})
	}
	if o.HandleSkewness {
		stages = append(stages, stage.Skew{Method: o.TransformMethod, Threshold: o.SkewnessThreshold})
	}
	if o.BinNumerical {
		stages = append(stages, stage.Bin{Strategy: o.BinningStrategy, Bins: o.NumberOfBins})
	}
	if o.FeatureSelection {
		stages = append(stages, stage.Select{
			Method:               o.SelectionMethod,
			VarianceThreshold:    o.VarianceThreshold,
			CorrelationThreshold: o.CorrelationThreshold,
		})
	}

	return append(stages, stage.Stats{})
}

// sanitize replaces NaN and infinite floats with nil so the result is always
// JSON-serializable.
func sanitize(t table.Table) {
	for _, r := range t.Rows {
		for k, v := range r {
			if f, ok := v.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
				r[k] = nil
			}
		}
	}
}
