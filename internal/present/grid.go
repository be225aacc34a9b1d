package present

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/hpcgrid/internal/ctxlog"
	"github.com/specialistvlad/hpcgrid/internal/discovery"
	"github.com/specialistvlad/hpcgrid/internal/figure"
	"github.com/specialistvlad/hpcgrid/internal/layout"
	"github.com/specialistvlad/hpcgrid/internal/taskdata"
	"gonum.org/v1/plot/vg"
)

// GridConfig configures a Grid presenter.
type GridConfig[T any] struct {
	Root       string
	Loader     taskdata.Loader // defaults to the msgpack loader
	Preprocess PreprocessFunc[T]
	Draw       DrawFunc[T]
	Title      string
	Rows       int // 0 derives the dimension
	Cols       int // 0 derives the dimension
	Strict     bool
	CellWidth  vg.Length
	CellHeight vg.Length
}

// Grid draws each task of an experiment into its own cell.
type Grid[T any] struct {
	cfg       GridConfig[T]
	loader    taskdata.Loader
	dirs      []discovery.TaskDirectory
	layout    layout.Grid
	fig       *figure.Figure
	presented bool
}

// NewGrid discovers the task directories under cfg.Root and plans the layout.
func NewGrid[T any](ctx context.Context, cfg GridConfig[T]) (*Grid[T], error) {
	if cfg.Preprocess == nil || cfg.Draw == nil {
		return nil, errors.New("grid presenter requires both a preprocess and a draw function")
	}

	dirs, err := discovery.Discover(ctx, cfg.Root)
	if err != nil {
		return nil, err
	}
	g, err := layout.Plan(len(dirs), layout.Options{Rows: cfg.Rows, Cols: cfg.Cols, Strict: cfg.Strict})
	if err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Debug("Grid presenter ready.", "root", cfg.Root, "tasks", len(dirs), "rows", g.Rows, "cols", g.Cols)

	return &Grid[T]{
		cfg:    cfg,
		loader: loaderOrDefault(cfg.Loader),
		dirs:   dirs,
		layout: g,
	}, nil
}

// Tasks returns the discovered task directories in presentation order.
func (p *Grid[T]) Tasks() []discovery.TaskDirectory { return p.dirs }

// Layout returns the planned grid.
func (p *Grid[T]) Layout() layout.Grid { return p.layout }

// Figure returns the figure built by the last Present, or nil.
func (p *Grid[T]) Figure() *figure.Figure { return p.fig }

// Presented reports whether Present has completed.
func (p *Grid[T]) Presented() bool { return p.presented }

// Present builds a fresh figure and draws every task into it.
func (p *Grid[T]) Present(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Presenting task grid.", "tasks", len(p.dirs))

	fig := figure.New(p.layout.Rows, p.layout.Cols, figure.Options{
		CellWidth:  p.cfg.CellWidth,
		CellHeight: p.cfg.CellHeight,
	})
	for i, dir := range p.dirs {
		item, _, err := loadItem(ctx, p.loader, p.cfg.Preprocess, dir)
		if err != nil {
			return err
		}
		row, col := p.layout.Position(i)
		if err := p.cfg.Draw(item, fig.Cell(row, col)); err != nil {
			return fmt.Errorf("task %d: draw failed: %w", dir.Index, err)
		}
	}
	if p.cfg.Title != "" {
		fig.SetTitle(p.cfg.Title)
	}

	p.fig = fig
	p.presented = true
	return nil
}

// Export presents if needed and writes the figure to path.
func (p *Grid[T]) Export(ctx context.Context, path string) error {
	if !p.presented {
		if err := p.Present(ctx); err != nil {
			return err
		}
	}
	if err := p.fig.Save(path); err != nil {
		return err
	}
	ctxlog.FromContext(ctx).Info("Task grid written.", "path", path, "tasks", len(p.dirs))
	return nil
}
