package stage

import (
	"math"
	"testing"
)

func TestParseNumberScrubbing(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"1,234.50", 1234.5, true},
		{"$99", 99, true},
		{"€7,5", 75, true}, // separators are stripped, not localized
		{"15%", 15, true},
		{" 42 ", 42, true},
		{"n/a", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, ok := parseNumber(tc.in)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Fatalf("parseNumber(%q): got %v,%v want %v,%v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestParseDateLayouts(t *testing.T) {
	cases := []struct {
		in      string
		wantISO string
		hasTime bool
	}{
		{"2023-01-15", "2023-01-15", false},
		{"01/15/2023", "2023-01-15", false},
		{"15.01.2023", "2023-01-15", false},
		{"Jan 15, 2023", "2023-01-15", false},
		{"2023-01-15 10:30:00", "2023-01-15", true},
		{"2023-01-15T10:30:00Z", "2023-01-15", true},
	}
	for _, tc := range cases {
		ts, hasTime, ok := parseDate(tc.in)
		if !ok {
			t.Fatalf("parseDate(%q): no layout matched", tc.in)
		}
		if got := ts.Format("2006-01-02"); got != tc.wantISO || hasTime != tc.hasTime {
			t.Fatalf("parseDate(%q): got %s,%v want %s,%v", tc.in, got, hasTime, tc.wantISO, tc.hasTime)
		}
	}
	if _, _, ok := parseDate("not a date"); ok {
		t.Fatal(`parseDate("not a date") succeeded`)
	}
}

func TestQuantileAtFloorRule(t *testing.T) {
	sorted := []float64{10, 20, 30, 40}
	cases := []struct {
		p    float64
		want float64
	}{
		{0.25, 20}, // int(4*0.25)=1
		{0.5, 30},
		{0.75, 40},
		{1.0, 40}, // clamped
	}
	for _, tc := range cases {
		if got := quantileAt(sorted, tc.p); got != tc.want {
			t.Fatalf("quantileAt(%v): got %v want %v", tc.p, got, tc.want)
		}
	}
	if got := quantileAt(nil, 0.5); !math.IsNaN(got) {
		t.Fatalf("quantileAt(nil): got %v want NaN", got)
	}
}

func TestClassifyColumn(t *testing.T) {
	cases := []struct {
		name string
		vals []any
		want colKind
	}{
		{"booleans", []any{"yes", "no", "yes", nil}, kindBoolean},
		{"numbers", []any{"1", "2", "x", "4", "5"}, kindNumber},
		{"dates", []any{"2023-01-01", "2023-01-02", "2023-01-03", "soon"}, kindDate},
		{"strings", []any{"alpha", "beta", "gamma"}, kindString},
		{"empty", []any{nil, nil}, kindString},
	}
	for _, tc := range cases {
		if got := classifyColumn(tc.vals); got != tc.want {
			t.Fatalf("%s: got %v want %v", tc.name, got, tc.want)
		}
	}
}

func TestSkewnessSymmetricIsZero(t *testing.T) {
	if got := skewness([]float64{1, 2, 3, 4, 5}); math.Abs(got) > 1e-12 {
		t.Fatalf("symmetric skewness: got %v", got)
	}
	if got := skewness([]float64{1, 1, 1, 10}); got <= 0 {
		t.Fatalf("right-skewed data gave skewness %v", got)
	}
}
