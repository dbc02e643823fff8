package config

import (
	"errors"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	o := Default()
	if err := o.Validate(); err != nil {
		t.Fatalf("default options invalid: %v", err)
	}
	if o.HandleMissing != MissingKeep || !o.RemoveDuplicates || o.ScaleNumerical {
		t.Fatalf("unexpected defaults: %+v", o)
	}
}

// Absent JSON keys keep their default; present keys override.
func TestFromJSONMergesOverDefaults(t *testing.T) {
	o, err := FromJSON([]byte(`{"handleMissingValues":"fill","fillStrategy":"median","removeDuplicates":false}`))
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if o.HandleMissing != MissingFill || o.FillStrategy != FillMedian {
		t.Fatalf("overrides not applied: %+v", o)
	}
	if o.RemoveDuplicates {
		t.Fatal("explicit false was overridden")
	}
	if !o.RemoveEmptyRows || o.NumberOfBins != 5 {
		t.Fatalf("defaults lost: %+v", o)
	}
}

func TestFromJSONRejectsUnknownEnum(t *testing.T) {
	_, err := FromJSON([]byte(`{"encodingStrategy":"cleverness"}`))
	var ce *ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("want *ConfigError, got %v", err)
	}
	if ce.Option != "encodingStrategy" {
		t.Fatalf("wrong option reported: %+v", ce)
	}
}

func TestValidateBounds(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Options)
		option string
	}{
		{"bins", func(o *Options) { o.NumberOfBins = 1 }, "numberOfBins"},
		{"cardinality", func(o *Options) { o.CardinalityThreshold = -3 }, "cardinalityThreshold"},
		{"skewness", func(o *Options) { o.SkewnessThreshold = -1 }, "skewnessThreshold"},
		{"correlation", func(o *Options) { o.CorrelationThreshold = 1.5 }, "correlationThreshold"},
		{"variance", func(o *Options) { o.VarianceThreshold = -0.1 }, "varianceThreshold"},
	}
	for _, tc := range cases {
		o := Default()
		tc.mutate(&o)
		err := o.Validate()
		var ce *ConfigError
		if !errors.As(err, &ce) || ce.Option != tc.option {
			t.Fatalf("%s: got %v, want ConfigError for %s", tc.name, err, tc.option)
		}
	}
}

// A zero-valued enum in a literal Options is treated as "take the default".
func TestValidateFillsZeroEnums(t *testing.T) {
	o := Options{NumberOfBins: 5, CardinalityThreshold: 50, SkewnessThreshold: 2, CorrelationThreshold: 0.95}
	if err := o.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if o.HandleMissing != MissingKeep || o.ScalingMethod != ScaleStandard {
		t.Fatalf("zero enums not defaulted: %+v", o)
	}
}
