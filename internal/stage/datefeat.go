package stage

import (
	"strings"
	"time"

	"dataprep/internal/config"
	"dataprep/pkg/table"
)

var monthDayKeywords = []string{
	"jan", "feb", "mar", "apr", "may", "jun",
	"jul", "aug", "sep", "oct", "nov", "dec",
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

// DateFeatures expands date-like columns into calendar components. The
// source column is kept as its normalized string form.
type DateFeatures struct {
	Level config.DateLevel
}

func (DateFeatures) Name() string { return "date_features" }

func (df DateFeatures) Apply(t table.Table) (table.Table, Outcome) {
	var out Outcome

	for _, col := range append([]string(nil), t.Columns...) {
		times, rows := columnDates(t, col)
		if len(times) == 0 {
			continue
		}

		t = addDateColumn(t, col, "_year", rows, times, func(tm time.Time) float64 {
			return float64(tm.Year())
		})
		t = addDateColumn(t, col, "_month", rows, times, func(tm time.Time) float64 {
			return float64(tm.Month())
		})
		t = addDateColumn(t, col, "_day_of_week", rows, times, func(tm time.Time) float64 {
			return float64(tm.Weekday())
		})

		if df.Level == config.DateDetailed || df.Level == config.DateEngineering {
			t = addDateColumn(t, col, "_quarter", rows, times, func(tm time.Time) float64 {
				return float64((int(tm.Month())-1)/3 + 1)
			})
			t = addDateColumn(t, col, "_week_of_year", rows, times, func(tm time.Time) float64 {
				_, week := tm.ISOWeek()
				return float64(week)
			})
			t = addDateColumn(t, col, "_is_weekend", rows, times, func(tm time.Time) float64 {
				if tm.Weekday() == time.Saturday || tm.Weekday() == time.Sunday {
					return 1
				}
				return 0
			})
		}

		// date-only values carry an implicit midnight, so hour is 0
		if df.Level == config.DateEngineering {
			t = addDateColumn(t, col, "_hour", rows, times, func(tm time.Time) float64 {
				return float64(tm.Hour())
			})
			t = addDateColumn(t, col, "_is_business_hour", rows, times, func(tm time.Time) float64 {
				if h := tm.Hour(); h >= 9 && h <= 17 {
					return 1
				}
				return 0
			})
		}
	}

	return t, out
}

// columnDates parses a date-like column. It returns nothing at all when the
// column does not qualify: mostly-numeric columns are skipped, string values
// must show date separators or month/day names, and at least 70% of the
// non-missing values must parse to a year between 1900 and 2100.
func columnDates(t table.Table, col string) (times []time.Time, rows []int) {
	vals := t.ColumnValues(col)
	if numericRatio(vals) >= 0.8 {
		return nil, nil
	}

	present := 0
	dateLooking := 0
	for i, v := range vals {
		if table.IsMissing(v) {
			continue
		}
		present++
		s, ok := v.(string)
		if !ok || !looksDateLike(s) {
			continue
		}
		tm, _, parsed := parseDate(s)
		if !parsed || tm.Year() < 1900 || tm.Year() > 2100 {
			continue
		}
		dateLooking++
		times = append(times, tm)
		rows = append(rows, i)
	}
	if present == 0 || float64(dateLooking)/float64(present) < 0.7 {
		return nil, nil
	}
	return times, rows
}

func looksDateLike(s string) bool {
	if strings.ContainsAny(s, "-/:") {
		return true
	}
	low := strings.ToLower(s)
	for _, kw := range monthDayKeywords {
		if strings.Contains(low, kw) {
			return true
		}
	}
	return false
}

func addDateColumn(t table.Table, col, suffix string, rows []int, times []time.Time, f func(time.Time) float64) table.Table {
	name := uniqueColumnName(t, col+suffix)
	for i := range t.Rows {
		t.Rows[i][name] = nil
	}
	for j, row := range rows {
		t.Rows[row][name] = f(times[j])
	}
	return t.AppendColumn(name)
}
