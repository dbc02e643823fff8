package stage

import (
	"fmt"
	"math"

	"dataprep/internal/config"
	"dataprep/pkg/table"
)

// Skew reduces skewness of numeric columns. A column is transformed when it
// has at least ten positive values and its absolute skewness exceeds
// Threshold. The log transform uses ln(x+1); sqrt maps negatives to nil.
// Box-Cox and Yeo-Johnson are not estimated here and fall back to sqrt.
type Skew struct {
	Method    config.TransformMethod
	Threshold float64
}

func (Skew) Name() string { return "skew_correction" }

func (sk Skew) Apply(t table.Table) (table.Table, Outcome) {
	var out Outcome

	for _, col := range numericColumns(t) {
		vals, rows := columnFloats(t, col)

		positives := 0
		allPositive := true
		for _, v := range vals {
			if v > 0 {
				positives++
			} else {
				allPositive = false
			}
		}
		if positives < 10 {
			continue
		}

		s := skewness(vals)
		if math.Abs(s) <= sk.Threshold {
			continue
		}

		method := sk.resolve(s, allPositive)
		for j, v := range vals {
			t.Rows[rows[j]][col] = applyTransform(method, v)
		}
		out.Suggestions = append(out.Suggestions,
			fmt.Sprintf("Applied %s transform to column %q (skewness %.2f).", method, col, s))
	}

	return t, out
}

func (sk Skew) resolve(skew float64, allPositive bool) config.TransformMethod {
	switch sk.Method {
	case config.TransformLog, config.TransformSqrt:
		return sk.Method
	case config.TransformBoxCox, config.TransformYeoJohnson:
		return config.TransformSqrt
	default: // auto
		if allPositive && skew > 0 {
			return config.TransformLog
		}
		return config.TransformSqrt
	}
}

func applyTransform(method config.TransformMethod, v float64) any {
	switch method {
	case config.TransformLog:
		if v+1 <= 0 {
			return nil
		}
		return math.Log(v + 1)
	default: // sqrt
		if v < 0 {
			return nil
		}
		return math.Sqrt(v)
	}
}
