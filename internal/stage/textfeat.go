package stage

import (
	"strings"
	"unicode"

	"dataprep/internal/config"
	"dataprep/pkg/table"
)

// TextFeatures derives numeric features from free-text columns. A column
// counts as free text when its string values average more than 20 characters
// and at least one value contains a space. The source column is kept.
type TextFeatures struct {
	Level config.TextLevel
}

func (TextFeatures) Name() string { return "text_features" }

func (tf TextFeatures) Apply(t table.Table) (table.Table, Outcome) {
	var out Outcome

	for _, col := range append([]string(nil), t.Columns...) {
		strs, rows := columnStrings(t, col)
		if !isFreeText(strs) {
			continue
		}

		t = addTextColumn(t, col, "_length", rows, strs, func(s string) float64 {
			return float64(len([]rune(s)))
		})
		t = addTextColumn(t, col, "_word_count", rows, strs, func(s string) float64 {
			return float64(len(strings.Fields(s)))
		})
		t = addTextColumn(t, col, "_avg_word_length", rows, strs, avgWordLength)

		if tf.Level == config.TextNLP {
			t = addTextColumn(t, col, "_has_numbers", rows, strs, boolFeature(func(s string) bool {
				return strings.ContainsFunc(s, unicode.IsDigit)
			}))
			t = addTextColumn(t, col, "_has_special_chars", rows, strs, boolFeature(hasSpecialChars))
			t = addTextColumn(t, col, "_is_uppercase", rows, strs, boolFeature(func(s string) bool {
				return s != "" && s == strings.ToUpper(s) && s != strings.ToLower(s)
			}))
		}
	}

	return t, out
}

// columnStrings returns the non-missing string values of a column together
// with their row indices.
func columnStrings(t table.Table, col string) ([]string, []int) {
	var strs []string
	var rows []int
	for i, r := range t.Rows {
		s, ok := r[col].(string)
		if !ok || table.IsMissing(s) {
			continue
		}
		strs = append(strs, s)
		rows = append(rows, i)
	}
	return strs, rows
}

func isFreeText(strs []string) bool {
	if len(strs) == 0 {
		return false
	}
	total := 0
	hasSpace := false
	for _, s := range strs {
		total += len([]rune(s))
		if strings.Contains(s, " ") {
			hasSpace = true
		}
	}
	return hasSpace && float64(total)/float64(len(strs)) > 20
}

// addTextColumn appends a derived column named col+suffix. Rows whose source
// value was missing get nil.
func addTextColumn(t table.Table, col, suffix string, rows []int, strs []string, f func(string) float64) table.Table {
	name := uniqueColumnName(t, col+suffix)
	for i := range t.Rows {
		t.Rows[i][name] = nil
	}
	for j, row := range rows {
		t.Rows[row][name] = f(strs[j])
	}
	return t.AppendColumn(name)
}

func avgWordLength(s string) float64 {
	words := strings.Fields(s)
	if len(words) == 0 {
		return 0
	}
	total := 0
	for _, w := range words {
		total += len([]rune(w))
	}
	return float64(total) / float64(len(words))
}

func hasSpecialChars(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			continue
		}
		return true
	}
	return false
}

func boolFeature(f func(string) bool) func(string) float64 {
	return func(s string) float64 {
		if f(s) {
			return 1
		}
		return 0
	}
}
