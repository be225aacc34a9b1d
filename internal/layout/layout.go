// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package layout derives the rows×columns shape of a subplot grid that holds
// one cell per task.
//
// When neither dimension is given the grid is the smallest square that fits
// every item. When one dimension is given the other is the smallest value that
// still fits every item. When both are given they are used as-is and only
// validated.
package layout

import (
	"fmt"
)

// Grid is a rows×columns cell layout.
type Grid struct {
	Rows int
	Cols int
}

// Cells returns the number of cells in the grid.
func (g Grid) Cells() int {
	return g.Rows * g.Cols
}

// Position returns the row and column of the i-th item in row-major order.
func (g Grid) Position(i int) (row, col int) {
	return i / g.Cols, i % g.Cols
}

// Options controls how Plan derives the grid. A zero Rows or Cols means the
// dimension is derived.
type Options struct {
	Rows   int
	Cols   int
	Strict bool // require Rows*Cols to equal the item count exactly
}

// TooSmallError is returned when the grid has fewer cells than items.
type TooSmallError struct {
	Grid  Grid
	Items int
}

func (e *TooSmallError) Error() string {
	return fmt.Sprintf("layout %dx%d has %d cells, fewer than the %d items to place", e.Grid.Rows, e.Grid.Cols, e.Grid.Cells(), e.Items)
}

// NotExactError is returned under strict mode when the grid does not hold
// exactly one cell per item.
type NotExactError struct {
	Grid  Grid
	Items int
}

func (e *NotExactError) Error() string {
	return fmt.Sprintf("strict layout %dx%d has %d cells but there are %d items", e.Grid.Rows, e.Grid.Cols, e.Grid.Cells(), e.Items)
}

// InvalidInputError is returned for a non-positive item count or a negative
// dimension.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return "invalid layout input: " + e.Reason
}

// Plan computes the grid for n items.
//
// The too-small check runs before the strict check, so a grid that is both
// too small and inexact reports *TooSmallError.
func Plan(n int, opts Options) (Grid, error) {
	if n < 1 {
		return Grid{}, &InvalidInputError{Reason: fmt.Sprintf("item count must be at least 1, got %d", n)}
	}
	if opts.Rows < 0 || opts.Cols < 0 {
		return Grid{}, &InvalidInputError{Reason: fmt.Sprintf("dimensions must not be negative, got rows=%d cols=%d", opts.Rows, opts.Cols)}
	}

	g := Grid{Rows: opts.Rows, Cols: opts.Cols}
	switch {
	case g.Rows == 0 && g.Cols == 0:
		side := ceilSqrt(n)
		g.Rows, g.Cols = side, side
	case g.Rows == 0:
		g.Rows = ceilDiv(n, g.Cols)
	case g.Cols == 0:
		g.Cols = ceilDiv(n, g.Rows)
	}

	if g.Cells() < n {
		return Grid{}, &TooSmallError{Grid: g, Items: n}
	}
	if opts.Strict && g.Cells() != n {
		return Grid{}, &NotExactError{Grid: g, Items: n}
	}
	return g, nil
}

// ceilDiv is n/d + ceil((n mod d)/d): the smallest k with k*d >= n.
func ceilDiv(n, d int) int {
	q, r := n/d, n%d
	if r > 0 {
		q++
	}
	return q
}

// ceilSqrt returns the smallest s with s*s >= n.
func ceilSqrt(n int) int {
	s := 0
	for s*s < n {
		s++
	}
	return s
}
