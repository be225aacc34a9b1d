// Package plotfuncs holds the preprocess, reduce and draw callbacks the CLI
// plugs into the presenters: every task payload is read as a numeric series.
package plotfuncs

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/specialistvlad/hpcgrid/internal/present"
	"github.com/specialistvlad/hpcgrid/internal/taskdata"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
)

// Series is one task's numeric sequence and the label built from its
// parameters.
type Series struct {
	Label string
	Y     []float64
}

// SeriesOf returns a preprocess that reads data[key] as a numeric sequence.
// With an empty key the payload itself must be the sequence.
func SeriesOf(key string) present.PreprocessFunc[Series] {
	return func(data any, params taskdata.Params) (Series, error) {
		raw := data
		if key != "" {
			m, ok := data.(map[string]any)
			if !ok {
				return Series{}, fmt.Errorf("payload is %T, not a map holding %q", data, key)
			}
			raw, ok = m[key]
			if !ok {
				return Series{}, fmt.Errorf("payload has no key %q", key)
			}
		}
		y, err := toFloats(raw)
		if err != nil {
			return Series{}, err
		}
		return Series{Label: Label(params), Y: y}, nil
	}
}

// Label renders params as sorted "k=v" pairs.
func Label(params taskdata.Params) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, params[k])
	}
	return strings.Join(parts, ", ")
}

// DrawSeries draws s as a line and titles the cell with its label.
func DrawSeries(s Series, cell *plot.Plot) error {
	line, err := plotter.NewLine(xys(s.Y))
	if err != nil {
		return err
	}
	cell.Title.Text = s.Label
	cell.Add(line)
	return nil
}

// Collect keeps every series in task order.
func Collect(items []Series, _ []taskdata.Params) ([]Series, error) {
	return items, nil
}

// DrawOverlay draws all series into one cell with a legend entry each.
func DrawOverlay(all []Series, cell *plot.Plot) error {
	if len(all) == 0 {
		return errors.New("nothing to draw")
	}
	args := make([]any, 0, 2*len(all))
	for _, s := range all {
		args = append(args, s.Label, xys(s.Y))
	}
	return plotutil.AddLines(cell, args...)
}

func xys(y []float64) plotter.XYs {
	pts := make(plotter.XYs, len(y))
	for i, v := range y {
		pts[i].X = float64(i)
		pts[i].Y = v
	}
	return pts
}

// toFloats accepts whatever msgpack decodes a numeric array into.
func toFloats(v any) ([]float64, error) {
	switch s := v.(type) {
	case []float64:
		return s, nil
	case []any:
		out := make([]float64, len(s))
		for i, e := range s {
			f, ok := toFloat(e)
			if !ok {
				return nil, fmt.Errorf("element %d is %T, not a number", i, e)
			}
			out[i] = f
		}
		return out, nil
	default:
		if f, ok := toFloat(v); ok {
			return []float64{f}, nil
		}
		return nil, fmt.Errorf("payload is %T, not a numeric sequence", v)
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}
