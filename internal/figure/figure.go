// Package figure is the drawing surface the presenters draw into: a grid of
// gonum plots that is rendered to a single image file.
//
// Cells are created on first access, so a cell nobody asked for stays blank
// in the rendered output.
package figure

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Default cell size.
const (
	DefaultCellWidth  = 4 * vg.Inch
	DefaultCellHeight = 3 * vg.Inch
)

const (
	titleHeight = 0.5 * vg.Inch
	cellPadding = 2 * vg.Millimeter
)

// Options controls the rendered size of each cell. Zero values select the
// defaults.
type Options struct {
	CellWidth  vg.Length
	CellHeight vg.Length
}

// Figure is a rows×cols grid of plots plus an optional overall title.
type Figure struct {
	rows, cols int
	cells      [][]*plot.Plot
	title      string
	cellWidth  vg.Length
	cellHeight vg.Length
}

// New creates an empty figure. It panics on a non-positive dimension, which
// is a programming error: layouts are validated before a figure is created.
func New(rows, cols int, opts Options) *Figure {
	if rows < 1 || cols < 1 {
		panic(fmt.Sprintf("figure: invalid grid %dx%d", rows, cols))
	}
	cells := make([][]*plot.Plot, rows)
	for r := range cells {
		cells[r] = make([]*plot.Plot, cols)
	}
	f := &Figure{
		rows:       rows,
		cols:       cols,
		cells:      cells,
		cellWidth:  opts.CellWidth,
		cellHeight: opts.CellHeight,
	}
	if f.cellWidth <= 0 {
		f.cellWidth = DefaultCellWidth
	}
	if f.cellHeight <= 0 {
		f.cellHeight = DefaultCellHeight
	}
	return f
}

// Rows returns the number of rows.
func (f *Figure) Rows() int { return f.rows }

// Cols returns the number of columns.
func (f *Figure) Cols() int { return f.cols }

// Title returns the overall title.
func (f *Figure) Title() string { return f.title }

// SetTitle sets the overall title drawn above the grid.
func (f *Figure) SetTitle(title string) { f.title = title }

// Cell returns the plot at (row, col), creating it on first use.
func (f *Figure) Cell(row, col int) *plot.Plot {
	if f.cells[row][col] == nil {
		f.cells[row][col] = plot.New()
	}
	return f.cells[row][col]
}

// At returns the plot at (row, col) without creating it. The boolean is false
// for a blank cell.
func (f *Figure) At(row, col int) (*plot.Plot, bool) {
	p := f.cells[row][col]
	return p, p != nil
}

// Size returns the rendered width and height of the whole figure.
func (f *Figure) Size() (w, h vg.Length) {
	w = vg.Length(f.cols) * f.cellWidth
	h = vg.Length(f.rows) * f.cellHeight
	if f.title != "" {
		h += titleHeight
	}
	return w, h
}

// Save renders the figure to path. The image format is taken from the file
// extension (png, jpg, jpeg, svg, pdf, eps, tif, tiff, tex).
func (f *Figure) Save(path string) error {
	w, h := f.Size()
	c, err := newCanvas(path, w, h)
	if err != nil {
		return err
	}
	dc := draw.New(c)

	body := dc
	if f.title != "" {
		header := draw.Crop(dc, 0, 0, h-titleHeight, 0)
		body = draw.Crop(dc, 0, 0, 0, -titleHeight)

		tp := plot.New()
		tp.Title.Text = f.title
		tp.HideAxes()
		tp.Draw(header)
	}

	tiles := draw.Tiles{
		Rows:      f.rows,
		Cols:      f.cols,
		PadX:      cellPadding,
		PadY:      cellPadding,
		PadTop:    cellPadding,
		PadBottom: cellPadding,
		PadLeft:   cellPadding,
		PadRight:  cellPadding,
	}
	for r := 0; r < f.rows; r++ {
		for col := 0; col < f.cols; col++ {
			if p := f.cells[r][col]; p != nil {
				p.Draw(tiles.At(body, col, r))
			}
		}
	}

	return writeCanvas(c, path)
}

// SavePlot renders a single plot to path with the given size, using the same
// extension rules as Figure.Save.
func SavePlot(p *plot.Plot, path string, w, h vg.Length) error {
	c, err := newCanvas(path, w, h)
	if err != nil {
		return err
	}
	p.Draw(draw.New(c))
	return writeCanvas(c, path)
}

func newCanvas(path string, w, h vg.Length) (vg.CanvasWriterTo, error) {
	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if format == "" {
		return nil, fmt.Errorf("cannot infer image format of %s: missing file extension", path)
	}
	c, err := draw.NewFormattedCanvas(w, h, format)
	if err != nil {
		return nil, fmt.Errorf("cannot render %s: %w", path, err)
	}
	return c, nil
}

func writeCanvas(c vg.CanvasWriterTo, path string) (err error) {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create figure file %s: %w", path, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close figure file %s: %w", path, cerr)
		}
	}()

	if _, err := c.WriteTo(out); err != nil {
		return fmt.Errorf("failed to write figure file %s: %w", path, err)
	}
	return nil
}
