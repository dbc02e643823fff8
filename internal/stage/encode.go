package stage

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"dataprep/internal/config"
	"dataprep/pkg/table"
)

// Encoding records how one categorical column was turned numeric. Exactly
// one variant field is set, matching Type.
type Encoding struct {
	Type      string             `json:"type"`
	Label     *LabelEncoding     `json:"label,omitempty"`
	OneHot    *OneHotEncoding    `json:"onehot,omitempty"`
	Frequency *FrequencyEncoding `json:"frequency,omitempty"`
}

// LabelEncoding maps each category to its index of first appearance.
type LabelEncoding struct {
	Mapping map[string]int `json:"mapping"`
}

// OneHotEncoding lists the categories and the binary columns that replaced
// the source column, aligned by index.
type OneHotEncoding struct {
	Categories     []string `json:"categories"`
	EncodedColumns []string `json:"encodedColumns"`
}

// FrequencyEncoding maps each category to its occurrence count in the
// original column.
type FrequencyEncoding struct {
	Counts map[string]int `json:"counts"`
}

// Encode converts categorical columns to numeric representations. Columns
// that are mostly numeric (>=80%), mostly dates (>=50%), ID-like (uniqueness
// ratio above 0.9 or cardinality equal to the row count), or entirely empty
// are excluded. Strategy "auto" picks label for two-valued columns, one-hot
// up to ten categories, and frequency beyond that.
type Encode struct {
	Strategy              config.EncodingStrategy
	HandleHighCardinality bool
	CardinalityThreshold  int
}

func (Encode) Name() string { return "encode_categorical" }

func (e Encode) Apply(t table.Table) (table.Table, Outcome) {
	var out Outcome
	rowCount := len(t.Rows)
	if rowCount == 0 {
		return t, out
	}

	// Snapshot: one-hot splices mutate the column list while we iterate.
	original := make([]string, len(t.Columns))
	copy(original, t.Columns)

	for _, col := range original {
		vals := t.ColumnValues(col)
		if !isCategorical(vals, rowCount) {
			continue
		}
		k := cardinality(vals)

		strategy := e.resolveStrategy(k)
		var enc Encoding
		switch strategy {
		case config.EncodeOneHot:
			t, enc = encodeOneHot(t, col, vals)
			if k > 10 {
				out.Suggestions = append(out.Suggestions,
					fmt.Sprintf("One-hot encoding column %q produced %d columns; frequency encoding may be preferable.", col, k))
			}
		case config.EncodeFrequency:
			enc = encodeFrequency(t, col, vals)
		default: // label (also the target-encoding fallback)
			enc = encodeLabel(t, col, vals)
		}

		if out.Encodings == nil {
			out.Encodings = map[string]Encoding{}
		}
		out.Encodings[col] = enc
	}

	return t, out
}

// resolveStrategy maps the configured strategy plus the column cardinality k
// onto a concrete encoding. Target encoding needs a label column this
// pipeline does not have, so it degrades to label encoding.
func (e Encode) resolveStrategy(k int) config.EncodingStrategy {
	s := e.Strategy
	if s == config.EncodeAuto {
		switch {
		case k == 2:
			s = config.EncodeLabel
		case k <= 10:
			s = config.EncodeOneHot
		default:
			s = config.EncodeFrequency
		}
	}
	if s == config.EncodeTarget {
		s = config.EncodeLabel
	}
	if s == config.EncodeOneHot && e.HandleHighCardinality && k > e.CardinalityThreshold {
		s = config.EncodeFrequency
	}
	return s
}

// isCategorical applies the exclusion rules of the encoder to one column.
func isCategorical(vals []any, rowCount int) bool {
	present := nonMissing(vals)
	if len(present) == 0 {
		return false
	}
	if numericRatio(vals) >= 0.8 {
		return false
	}
	if dateRatio(vals) >= 0.5 {
		return false
	}
	k := cardinality(vals)
	if k < 1 || k >= rowCount {
		return false
	}
	if float64(k)/float64(len(present)) > 0.9 {
		return false // ID-like
	}
	return true
}

// categoriesInOrder returns the distinct category strings by first
// appearance.
func categoriesInOrder(vals []any) []string {
	seen := map[string]struct{}{}
	var order []string
	for _, v := range vals {
		if table.IsMissing(v) {
			continue
		}
		k := categoryString(v)
		if _, ok := seen[k]; !ok {
			seen[k] = struct{}{}
			order = append(order, k)
		}
	}
	return order
}

func encodeLabel(t table.Table, col string, vals []any) Encoding {
	mapping := map[string]int{}
	for i, c := range categoriesInOrder(vals) {
		mapping[c] = i
	}
	for _, r := range t.Rows {
		if table.IsMissing(r[col]) {
			r[col] = float64(-1)
			continue
		}
		r[col] = float64(mapping[categoryString(r[col])])
	}
	return Encoding{Type: "label", Label: &LabelEncoding{Mapping: mapping}}
}

func encodeFrequency(t table.Table, col string, vals []any) Encoding {
	counts := map[string]int{}
	for _, v := range vals {
		if !table.IsMissing(v) {
			counts[categoryString(v)]++
		}
	}
	for _, r := range t.Rows {
		if table.IsMissing(r[col]) {
			r[col] = float64(0)
			continue
		}
		r[col] = float64(counts[categoryString(r[col])])
	}
	return Encoding{Type: "frequency", Frequency: &FrequencyEncoding{Counts: counts}}
}

// encodeOneHot replaces col with one binary column per category, spliced in
// at the original column's position.
func encodeOneHot(t table.Table, col string, vals []any) (table.Table, Encoding) {
	cats := categoriesInOrder(vals)
	encoded := make([]string, len(cats))
	for i, c := range cats {
		encoded[i] = uniqueColumnName(t, fmt.Sprintf("%s_%s", col, sanitizeCategory(c)))
	}

	for _, r := range t.Rows {
		v := r[col]
		missing := table.IsMissing(v)
		key := categoryString(v)
		for i, c := range cats {
			if !missing && key == c {
				r[encoded[i]] = float64(1)
			} else {
				r[encoded[i]] = float64(0)
			}
		}
		delete(r, col)
	}

	cols := make([]string, 0, len(t.Columns)+len(encoded)-1)
	for _, c := range t.Columns {
		if c == col {
			cols = append(cols, encoded...)
			continue
		}
		cols = append(cols, c)
	}
	t.Columns = cols

	return t, Encoding{Type: "onehot", OneHot: &OneHotEncoding{Categories: cats, EncodedColumns: encoded}}
}

// uniqueColumnName suffixes name until it does not collide with an existing
// column.
func uniqueColumnName(t table.Table, name string) string {
	out := name
	for n := 2; t.HasColumn(out); n++ {
		out = fmt.Sprintf("%s_%d", name, n)
	}
	return out
}

// sanitizeCategory converts a category value into a lowercase ASCII
// identifier fragment:
//  1. lowercase
//  2. strip accents (NFD, remove Mn, NFC)
//  3. keep [a-z0-9_]; convert space/dash/dot to underscore; drop the rest
//  4. fall back to "value" when nothing survives
func sanitizeCategory(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	ch := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		norm.NFC,
	)
	ascii, _, _ := transform.String(ch, s)

	var b strings.Builder
	prevUnderscore := false
	for _, r := range ascii {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prevUnderscore = false
		case r == '_' || r == ' ' || r == '-' || r == '.':
			if !prevUnderscore {
				b.WriteRune('_')
				prevUnderscore = true
			}
		}
	}
	name := strings.Trim(b.String(), "_")
	if name == "" {
		return "value"
	}
	return name
}
