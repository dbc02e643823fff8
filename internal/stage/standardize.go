package stage

import (
	"regexp"
	"strings"

	"dataprep/pkg/table"
)

// StandardizeFormats applies best-effort normalizations to string cells that
// look like phone numbers, emails, or currency amounts. Heuristics only:
// nothing here is validated, and cells that match no pattern pass through.
type StandardizeFormats struct{}

func (StandardizeFormats) Name() string { return "standardize_formats" }

var (
	phoneCandidate = regexp.MustCompile(`^[+()\d][\d\s().+-]{8,}$`)
	nonDigits      = regexp.MustCompile(`\D`)
	currencyValue  = regexp.MustCompile(`^\$\s*[\d,]+(\.\d+)?$`)
)

func (StandardizeFormats) Apply(t table.Table) (table.Table, Outcome) {
	for _, r := range t.Rows {
		for _, col := range t.Columns {
			s, ok := r[col].(string)
			if !ok || s == "" {
				continue
			}

			// Email: anything with an @ is lowercased and trimmed.
			if strings.Contains(s, "@") {
				r[col] = strings.ToLower(strings.TrimSpace(s))
				continue
			}

			// Currency: "$1,234.50" becomes the plain number.
			if currencyValue.MatchString(strings.TrimSpace(s)) {
				if f, ok := parseNumber(s); ok {
					r[col] = f
				}
				continue
			}

			// Phone: 10+ digits with separators, US-style best effort.
			if phoneCandidate.MatchString(strings.TrimSpace(s)) {
				if p, ok := formatPhone(s); ok {
					r[col] = p
				}
			}
		}
	}
	return t, Outcome{}
}

// formatPhone renders a digits-with-separators string as NNN-NNN-NNNN. An
// 11-digit number with a leading country 1 is accepted; anything else is
// left alone.
func formatPhone(s string) (string, bool) {
	digits := nonDigits.ReplaceAllString(s, "")
	if len(digits) == 11 && digits[0] == '1' {
		digits = digits[1:]
	}
	if len(digits) != 10 {
		return "", false
	}
	return digits[0:3] + "-" + digits[3:6] + "-" + digits[6:10], true
}
