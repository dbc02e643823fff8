package stage

import (
	"regexp"
	"strings"

	"dataprep/pkg/table"
)

// NormalizeText cleans string cells: Trim removes leading/trailing
// whitespace; Collapse squeezes interior whitespace runs to a single space
// and rewrites curly quotes and ellipses to their ASCII forms. Non-string
// cells pass through untouched.
type NormalizeText struct {
	Trim     bool
	Collapse bool
}

func (NormalizeText) Name() string { return "normalize_text" }

var whitespaceRun = regexp.MustCompile(`\s+`)

// punctuation normalizations applied in Collapse mode.
var punctReplacer = strings.NewReplacer(
	"‘", "'", "’", "'", // curly single quotes
	"“", `"`, "”", `"`, // curly double quotes
	"…", "...", // ellipsis
)

func (n NormalizeText) Apply(t table.Table) (table.Table, Outcome) {
	if !n.Trim && !n.Collapse {
		return t, Outcome{}
	}
	for _, r := range t.Rows {
		for _, col := range t.Columns {
			s, ok := r[col].(string)
			if !ok {
				continue
			}
			if n.Trim {
				s = strings.TrimSpace(s)
			}
			if n.Collapse {
				s = whitespaceRun.ReplaceAllString(s, " ")
				s = punctReplacer.Replace(s)
			}
			if s == "" {
				r[col] = nil
			} else {
				r[col] = s
			}
		}
	}
	return t, Outcome{}
}
