// Package config defines the canonical configuration model for the
// preprocessing pipeline. It is intentionally small, explicit, and mirrors
// the JSON shape accepted from callers (camelCase keys, all fields optional).
//
// Design goals:
//
//  1. Defaults: an absent field always takes its documented default; callers
//     never see a zero-value surprise.
//  2. Fail fast: enum values outside the documented sets are rejected at
//     pipeline entry with a ConfigError rather than misbehaving mid-pipeline.
//  3. Read-only: an Options value is built once per invocation and passed by
//     value through every stage; no stage re-reads ambient state.
package config

import (
	"encoding/json"
	"fmt"
)

// MissingMode selects how missing cells are handled.
type MissingMode string

const (
	MissingKeep   MissingMode = "keep"
	MissingRemove MissingMode = "remove"
	MissingFill   MissingMode = "fill"
)

// FillStrategy selects the fill value for MissingFill.
type FillStrategy string

const (
	FillMean     FillStrategy = "mean"
	FillMedian   FillStrategy = "median"
	FillMode     FillStrategy = "mode"
	FillZero     FillStrategy = "zero"
	FillForward  FillStrategy = "forward"
	FillBackward FillStrategy = "backward"
)

// EncodingStrategy selects how categorical columns become numeric.
type EncodingStrategy string

const (
	EncodeAuto      EncodingStrategy = "auto"
	EncodeOneHot    EncodingStrategy = "onehot"
	EncodeLabel     EncodingStrategy = "label"
	EncodeTarget    EncodingStrategy = "target"
	EncodeFrequency EncodingStrategy = "frequency"
)

// ScalingMethod selects the numeric rescaling transform.
type ScalingMethod string

const (
	ScaleStandard ScalingMethod = "standard"
	ScaleMinMax   ScalingMethod = "minmax"
	ScaleRobust   ScalingMethod = "robust"
	ScaleNone     ScalingMethod = "none"
)

// TextLevel controls how many derived text features are extracted.
type TextLevel string

const (
	TextBasic    TextLevel = "basic"
	TextAdvanced TextLevel = "advanced"
	TextNLP      TextLevel = "nlp"
)

// DateLevel controls how many derived calendar features are extracted.
type DateLevel string

const (
	DateBasic       DateLevel = "basic"
	DateDetailed    DateLevel = "detailed"
	DateEngineering DateLevel = "engineering"
)

// TransformMethod selects the skewness-correction transform.
type TransformMethod string

const (
	TransformLog        TransformMethod = "log"
	TransformSqrt       TransformMethod = "sqrt"
	TransformBoxCox     TransformMethod = "boxcox"
	TransformYeoJohnson TransformMethod = "yeo-johnson"
	TransformAuto       TransformMethod = "auto"
)

// BinningStrategy selects how numeric bin edges are computed.
type BinningStrategy string

const (
	BinEqualWidth     BinningStrategy = "equal-width"
	BinEqualFrequency BinningStrategy = "equal-frequency"
	BinKMeans         BinningStrategy = "kmeans"
	BinQuantile       BinningStrategy = "quantile"
)

// SelectionMethod selects the feature-selection criterion.
type SelectionMethod string

const (
	SelectCorrelation SelectionMethod = "correlation"
	SelectVariance    SelectionMethod = "variance"
	SelectMutualInfo  SelectionMethod = "mutual-info"
	SelectChi2        SelectionMethod = "chi2"
	SelectAuto        SelectionMethod = "auto"
)

// Options carries every toggle and enum recognized by the pipeline. JSON
// field names mirror the caller-facing contract.
type Options struct {
	RemoveEmptyRows    bool         `json:"removeEmptyRows"`
	RemoveEmptyColumns bool         `json:"removeEmptyColumns"`
	HandleMissing      MissingMode  `json:"handleMissingValues"`
	FillStrategy       FillStrategy `json:"fillStrategy"`
	RemoveDuplicates   bool         `json:"removeDuplicates"`
	NormalizeText      bool         `json:"normalizeText"`
	TrimWhitespace     bool         `json:"trimWhitespace"`
	DetectOutliers     bool         `json:"detectOutliers"`
	RemoveOutliers     bool         `json:"removeOutliers"`
	ConvertTypes       bool         `json:"convertTypes"`
	StandardizeFormats bool         `json:"standardizeFormats"`

	EncodeCategorical     bool             `json:"encodeCategorical"`
	EncodingStrategy      EncodingStrategy `json:"encodingStrategy"`
	HandleHighCardinality bool             `json:"handleHighCardinality"`
	CardinalityThreshold  int              `json:"cardinalityThreshold"`

	ScaleNumerical bool          `json:"scaleNumerical"`
	ScalingMethod  ScalingMethod `json:"scalingMethod"`

	HandleTextData      bool      `json:"handleTextData"`
	TextProcessingLevel TextLevel `json:"textProcessingLevel"`

	ExtractDateFeatures bool      `json:"extractDateFeatures"`
	DateFeatureLevel    DateLevel `json:"dateFeatureLevel"`

	HandleSkewness    bool            `json:"handleSkewness"`
	SkewnessThreshold float64         `json:"skewnessThreshold"`
	TransformMethod   TransformMethod `json:"transformMethod"`

	BinNumerical    bool            `json:"binNumerical"`
	BinningStrategy BinningStrategy `json:"binningStrategy"`
	NumberOfBins    int             `json:"numberOfBins"`

	FeatureSelection     bool            `json:"featureSelection"`
	SelectionMethod      SelectionMethod `json:"selectionMethod"`
	CorrelationThreshold float64         `json:"correlationThreshold"`
	VarianceThreshold    float64         `json:"varianceThreshold"`
}

// Default returns the documented default option set.
func Default() Options {
	return Options{
		RemoveEmptyRows:    true,
		RemoveEmptyColumns: true,
		HandleMissing:      MissingKeep,
		FillStrategy:       FillMean,
		RemoveDuplicates:   true,
		NormalizeText:      true,
		TrimWhitespace:     true,
		DetectOutliers:     true,
		RemoveOutliers:     false,
		ConvertTypes:       true,
		StandardizeFormats: true,

		EncodeCategorical:     true,
		EncodingStrategy:      EncodeAuto,
		HandleHighCardinality: true,
		CardinalityThreshold:  50,

		ScaleNumerical: false,
		ScalingMethod:  ScaleStandard,

		HandleTextData:      true,
		TextProcessingLevel: TextBasic,

		ExtractDateFeatures: true,
		DateFeatureLevel:    DateBasic,

		HandleSkewness:    false,
		SkewnessThreshold: 2.0,
		TransformMethod:   TransformAuto,

		BinNumerical:    false,
		BinningStrategy: BinEqualWidth,
		NumberOfBins:    5,

		FeatureSelection:     false,
		SelectionMethod:      SelectAuto,
		CorrelationThreshold: 0.95,
		VarianceThreshold:    0.01,
	}
}

// FromJSON merges a caller-supplied JSON object over the defaults. Absent
// keys keep their default value; present keys override it. The merged set is
// validated before being returned.
func FromJSON(data []byte) (Options, error) {
	opt := Default()
	if len(data) > 0 {
		if err := json.Unmarshal(data, &opt); err != nil {
			return Options{}, &ConfigError{Option: "options", Value: "<json>", Reason: err.Error()}
		}
	}
	if err := opt.Validate(); err != nil {
		return Options{}, err
	}
	return opt, nil
}

// ConfigError reports a configuration value outside the documented contract.
type ConfigError struct {
	Option string
	Value  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: invalid %s=%q: %s", e.Option, e.Value, e.Reason)
}

// Validate checks every enum and numeric bound; the first violation is
// returned as a *ConfigError. A zero-valued enum or threshold field is
// treated as "take the default" so literal struct construction stays
// convenient.
func (o *Options) Validate() error {
	def := Default()
	if o.HandleMissing == "" {
		o.HandleMissing = def.HandleMissing
	}
	if o.FillStrategy == "" {
		o.FillStrategy = def.FillStrategy
	}
	if o.EncodingStrategy == "" {
		o.EncodingStrategy = def.EncodingStrategy
	}
	if o.ScalingMethod == "" {
		o.ScalingMethod = def.ScalingMethod
	}
	if o.TextProcessingLevel == "" {
		o.TextProcessingLevel = def.TextProcessingLevel
	}
	if o.DateFeatureLevel == "" {
		o.DateFeatureLevel = def.DateFeatureLevel
	}
	if o.TransformMethod == "" {
		o.TransformMethod = def.TransformMethod
	}
	if o.BinningStrategy == "" {
		o.BinningStrategy = def.BinningStrategy
	}
	if o.SelectionMethod == "" {
		o.SelectionMethod = def.SelectionMethod
	}
	if o.NumberOfBins == 0 {
		o.NumberOfBins = def.NumberOfBins
	}
	if o.CardinalityThreshold == 0 {
		o.CardinalityThreshold = def.CardinalityThreshold
	}
	if o.SkewnessThreshold == 0 {
		o.SkewnessThreshold = def.SkewnessThreshold
	}
	if o.CorrelationThreshold == 0 {
		o.CorrelationThreshold = def.CorrelationThreshold
	}

	checks := []struct {
		option  string
		value   string
		allowed []string
	}{
		{"handleMissingValues", string(o.HandleMissing), []string{"keep", "remove", "fill"}},
		{"fillStrategy", string(o.FillStrategy), []string{"mean", "median", "mode", "zero", "forward", "backward"}},
		{"encodingStrategy", string(o.EncodingStrategy), []string{"auto", "onehot", "label", "target", "frequency"}},
		{"scalingMethod", string(o.ScalingMethod), []string{"standard", "minmax", "robust", "none"}},
		{"textProcessingLevel", string(o.TextProcessingLevel), []string{"basic", "advanced", "nlp"}},
		{"dateFeatureLevel", string(o.DateFeatureLevel), []string{"basic", "detailed", "engineering"}},
		{"transformMethod", string(o.TransformMethod), []string{"log", "sqrt", "boxcox", "yeo-johnson", "auto"}},
		{"binningStrategy", string(o.BinningStrategy), []string{"equal-width", "equal-frequency", "kmeans", "quantile"}},
		{"selectionMethod", string(o.SelectionMethod), []string{"correlation", "variance", "mutual-info", "chi2", "auto"}},
	}
	for _, c := range checks {
		if !contains(c.allowed, c.value) {
			return &ConfigError{Option: c.option, Value: c.value, Reason: fmt.Sprintf("must be one of %v", c.allowed)}
		}
	}

	if o.NumberOfBins < 2 {
		return &ConfigError{Option: "numberOfBins", Value: fmt.Sprint(o.NumberOfBins), Reason: "must be at least 2"}
	}
	if o.CardinalityThreshold < 1 {
		return &ConfigError{Option: "cardinalityThreshold", Value: fmt.Sprint(o.CardinalityThreshold), Reason: "must be at least 1"}
	}
	if o.SkewnessThreshold < 0 {
		return &ConfigError{Option: "skewnessThreshold", Value: fmt.Sprint(o.SkewnessThreshold), Reason: "must not be negative"}
	}
	if o.CorrelationThreshold <= 0 || o.CorrelationThreshold > 1 {
		return &ConfigError{Option: "correlationThreshold", Value: fmt.Sprint(o.CorrelationThreshold), Reason: "must be in (0, 1]"}
	}
	if o.VarianceThreshold < 0 {
		return &ConfigError{Option: "varianceThreshold", Value: fmt.Sprint(o.VarianceThreshold), Reason: "must not be negative"}
	}

	return nil
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
