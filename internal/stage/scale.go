package stage

import (
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"dataprep/internal/config"
	"dataprep/pkg/table"
)

// Scaling records the parameters used to scale one numeric column. Exactly
// one variant field is set, matching Method.
type Scaling struct {
	Method   string          `json:"method"`
	Standard *StandardParams `json:"standard,omitempty"`
	MinMax   *MinMaxParams   `json:"minmax,omitempty"`
	Robust   *RobustParams   `json:"robust,omitempty"`
}

type StandardParams struct {
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
}

type MinMaxParams struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type RobustParams struct {
	Median float64 `json:"median"`
	Q1     float64 `json:"q1"`
	Q3     float64 `json:"q3"`
}

// Scale rescales numeric columns in place. Columns whose spread parameter is
// zero (constant columns) are left untouched and omitted from the params map.
type Scale struct {
	Method config.ScalingMethod
}

func (Scale) Name() string { return "scale_numerical" }

// scaledColumn holds one worker's result until the sequential write-back.
// Workers only read the row maps; cells are written after Wait.
type scaledColumn struct {
	scaling Scaling
	rows    []int
	vals    []float64
}

func (s Scale) Apply(t table.Table) (table.Table, Outcome) {
	var out Outcome
	cols := numericColumns(t)
	if len(cols) == 0 {
		return t, out
	}

	fitted := make([]scaledColumn, len(cols))

	g := new(errgroup.Group)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, col := range cols {
		g.Go(func() error {
			vals, rows := columnFloats(t, col)
			if len(vals) == 0 {
				return nil
			}
			sc, scale := s.fit(vals)
			if scale == nil {
				return nil
			}
			for j, v := range vals {
				vals[j] = scale(v)
			}
			fitted[i] = scaledColumn{scaling: sc, rows: rows, vals: vals}
			return nil
		})
	}
	g.Wait()

	for i, col := range cols {
		fc := fitted[i]
		if fc.scaling.Method == "" {
			continue
		}
		for j, row := range fc.rows {
			t.Rows[row][col] = fc.vals[j]
		}
		if out.Scalings == nil {
			out.Scalings = map[string]Scaling{}
		}
		out.Scalings[col] = fc.scaling
	}

	return t, out
}

// fit computes the scaling parameters for one column and returns the
// transform to apply per value. A column that cannot be scaled yields a
// zero Scaling and a nil transform.
func (s Scale) fit(vals []float64) (Scaling, func(float64) float64) {
	switch s.Method {
	case config.ScaleMinMax:
		sorted := sortedCopy(vals)
		lo, hi := sorted[0], sorted[len(sorted)-1]
		if hi == lo {
			return Scaling{}, nil
		}
		span := hi - lo
		return Scaling{Method: "minmax", MinMax: &MinMaxParams{Min: lo, Max: hi}},
			func(v float64) float64 { return (v - lo) / span }
	case config.ScaleRobust:
		sorted := sortedCopy(vals)
		med := quantileAt(sorted, 0.5)
		q1 := quantileAt(sorted, 0.25)
		q3 := quantileAt(sorted, 0.75)
		iqr := q3 - q1
		if iqr == 0 {
			return Scaling{}, nil
		}
		return Scaling{Method: "robust", Robust: &RobustParams{Median: med, Q1: q1, Q3: q3}},
			func(v float64) float64 { return (v - med) / iqr }
	default: // standard
		mean := stat.Mean(vals, nil)
		std := stat.StdDev(vals, nil)
		if std == 0 || len(vals) < 2 {
			return Scaling{}, nil
		}
		return Scaling{Method: "standard", Standard: &StandardParams{Mean: mean, Std: std}},
			func(v float64) float64 { return (v - mean) / std }
	}
}
