package present

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/hpcgrid/internal/ctxlog"
	"github.com/specialistvlad/hpcgrid/internal/discovery"
	"github.com/specialistvlad/hpcgrid/internal/figure"
	"github.com/specialistvlad/hpcgrid/internal/taskdata"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
)

// surface is where an Aggregate draws: either a figure it owns or a cell that
// belongs to the caller.
type surface interface {
	cell() *plot.Plot
}

// ownedSurface is a single-cell figure created and exported by the presenter.
type ownedSurface struct {
	fig *figure.Figure
}

func (s ownedSurface) cell() *plot.Plot { return s.fig.Cell(0, 0) }

// borrowedSurface is a cell supplied by the caller, who also exports it.
type borrowedSurface struct {
	p *plot.Plot
}

func (s borrowedSurface) cell() *plot.Plot { return s.p }

// AggregateConfig configures an Aggregate presenter.
type AggregateConfig[T, A any] struct {
	Root       string
	Loader     taskdata.Loader // defaults to the msgpack loader
	Preprocess PreprocessFunc[T]
	Reduce     ReduceFunc[T, A]
	Draw       DrawFunc[A]
	// Cell, when set, is drawn into instead of a presenter-owned figure.
	Cell       *plot.Plot
	Title      string
	CellWidth  vg.Length
	CellHeight vg.Length
}

// Aggregate reduces every task of an experiment into one value and draws it
// once.
type Aggregate[T, A any] struct {
	cfg       AggregateConfig[T, A]
	loader    taskdata.Loader
	dirs      []discovery.TaskDirectory
	surface   surface
	result    A
	presented bool
}

// NewAggregate discovers the task directories under cfg.Root.
func NewAggregate[T, A any](ctx context.Context, cfg AggregateConfig[T, A]) (*Aggregate[T, A], error) {
	if cfg.Preprocess == nil || cfg.Reduce == nil || cfg.Draw == nil {
		return nil, errors.New("aggregate presenter requires preprocess, reduce and draw functions")
	}

	dirs, err := discovery.Discover(ctx, cfg.Root)
	if err != nil {
		return nil, err
	}

	p := &Aggregate[T, A]{
		cfg:    cfg,
		loader: loaderOrDefault(cfg.Loader),
		dirs:   dirs,
	}
	if cfg.Cell != nil {
		p.surface = borrowedSurface{p: cfg.Cell}
	} else {
		p.surface = p.newOwnedSurface()
	}
	ctxlog.FromContext(ctx).Debug("Aggregate presenter ready.", "root", cfg.Root, "tasks", len(dirs), "owns_surface", cfg.Cell == nil)

	return p, nil
}

func (p *Aggregate[T, A]) newOwnedSurface() ownedSurface {
	return ownedSurface{fig: figure.New(1, 1, figure.Options{CellWidth: p.cfg.CellWidth, CellHeight: p.cfg.CellHeight})}
}

// Tasks returns the discovered task directories in load order.
func (p *Aggregate[T, A]) Tasks() []discovery.TaskDirectory { return p.dirs }

// Result returns the value produced by the last reduction.
func (p *Aggregate[T, A]) Result() A { return p.result }

// Presented reports whether Present has completed.
func (p *Aggregate[T, A]) Presented() bool { return p.presented }

// Figure returns the presenter-owned figure, or nil when drawing into a
// caller's cell.
func (p *Aggregate[T, A]) Figure() *figure.Figure {
	if s, ok := p.surface.(ownedSurface); ok {
		return s.fig
	}
	return nil
}

// Present loads every task, reduces the items and draws the result. An owned
// figure is rebuilt on each call; a caller's cell is only drawn into by the
// first call.
func (p *Aggregate[T, A]) Present(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Presenting aggregate.", "tasks", len(p.dirs))

	switch p.surface.(type) {
	case ownedSurface:
		p.surface = p.newOwnedSurface()
	case borrowedSurface:
		// The caller's cell cannot be reset, so it is drawn into once.
		if p.presented {
			logger.Debug("Aggregate already drawn into the caller's cell, skipping.")
			return nil
		}
	}

	items := make([]T, 0, len(p.dirs))
	params := make([]taskdata.Params, 0, len(p.dirs))
	for _, dir := range p.dirs {
		item, prm, err := loadItem(ctx, p.loader, p.cfg.Preprocess, dir)
		if err != nil {
			return err
		}
		items = append(items, item)
		params = append(params, prm)
	}

	result, err := p.cfg.Reduce(items, params)
	if err != nil {
		return fmt.Errorf("reduce failed: %w", err)
	}
	if err := p.cfg.Draw(result, p.surface.cell()); err != nil {
		return fmt.Errorf("draw failed: %w", err)
	}
	if s, ok := p.surface.(ownedSurface); ok && p.cfg.Title != "" {
		s.fig.SetTitle(p.cfg.Title)
	}

	p.result = result
	p.presented = true
	return nil
}

// Export presents if needed and writes the owned figure to path. When drawing
// into a caller's cell the caller owns the output, so Export only warns.
func (p *Aggregate[T, A]) Export(ctx context.Context, path string) error {
	logger := ctxlog.FromContext(ctx)

	switch s := p.surface.(type) {
	case borrowedSurface:
		logger.Warn("Aggregate draws into a caller-owned cell; export it from the caller's figure instead.", "path", path)
		return nil
	case ownedSurface:
		if !p.presented {
			if err := p.Present(ctx); err != nil {
				return err
			}
		}
		// Present replaces the owned figure.
		if err := p.Figure().Save(path); err != nil {
			return err
		}
		logger.Info("Aggregate figure written.", "path", path, "tasks", len(p.dirs))
		return nil
	default:
		panic(fmt.Sprintf("present: unknown surface %T", s))
	}
}
