// Package paramgrid expands a grid-search parameter mapping into one row per
// combination and moves those rows through the delimited table that the
// array-job tasks read back, one task per row.
package paramgrid

import (
	"fmt"
	"sort"

	"github.com/zclconf/go-cty/cty"
)

// Grid is the flattened cartesian product of a parameter mapping. Columns are
// the parameter names; each row holds one value per column.
type Grid struct {
	Columns []string
	Rows    [][]cty.Value
}

// Len returns the number of rows, which is also the number of array-job tasks.
func (g Grid) Len() int {
	return len(g.Rows)
}

// Row returns row i (0-based) as a mapping from column name to value.
func (g Grid) Row(i int) map[string]cty.Value {
	m := make(map[string]cty.Value, len(g.Columns))
	for c, name := range g.Columns {
		m[name] = g.Rows[i][c]
	}
	return m
}

// Expand builds the grid for params. Columns are sorted by name and the last
// column varies fastest, the usual grid-search enumeration order.
func Expand(params map[string][]cty.Value) (Grid, error) {
	if len(params) == 0 {
		return Grid{}, fmt.Errorf("parameter grid is empty")
	}

	columns := make([]string, 0, len(params))
	for name, values := range params {
		if len(values) == 0 {
			return Grid{}, fmt.Errorf("parameter %q has no values", name)
		}
		for i, v := range values {
			if !v.IsKnown() || v.IsNull() {
				return Grid{}, fmt.Errorf("parameter %q value %d is null or unknown", name, i)
			}
		}
		columns = append(columns, name)
	}
	sort.Strings(columns)

	total := 1
	for _, name := range columns {
		total *= len(params[name])
	}

	rows := make([][]cty.Value, 0, total)
	idx := make([]int, len(columns))
	for {
		row := make([]cty.Value, len(columns))
		for c, name := range columns {
			row[c] = params[name][idx[c]]
		}
		rows = append(rows, row)

		// Odometer increment, rightmost column first.
		c := len(columns) - 1
		for ; c >= 0; c-- {
			idx[c]++
			if idx[c] < len(params[columns[c]]) {
				break
			}
			idx[c] = 0
		}
		if c < 0 {
			break
		}
	}

	return Grid{Columns: columns, Rows: rows}, nil
}
