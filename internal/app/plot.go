package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/hpcgrid/internal/ctxlog"
	"github.com/specialistvlad/hpcgrid/internal/plotfuncs"
	"github.com/specialistvlad/hpcgrid/internal/present"
)

// plotGrid draws every task's series into its own cell.
func (a *App) plotGrid(ctx context.Context) error {
	ctx, _ = ctxlog.With(ctx, "root", a.cfg.Root)
	p, err := present.NewGrid(ctx, present.GridConfig[plotfuncs.Series]{
		Root:       a.cfg.Root,
		Loader:     a.tasks,
		Preprocess: plotfuncs.SeriesOf(a.cfg.Key),
		Draw:       plotfuncs.DrawSeries,
		Title:      a.cfg.Title,
		Rows:       a.cfg.Rows,
		Cols:       a.cfg.Cols,
		Strict:     a.cfg.Strict,
	})
	if err != nil {
		return err
	}
	if err := p.Export(ctx, a.cfg.Out); err != nil {
		return err
	}
	l := p.Layout()
	fmt.Fprintf(a.outW, "%s (%d tasks, %dx%d)\n", a.cfg.Out, len(p.Tasks()), l.Rows, l.Cols)
	return nil
}

// plotAggregate overlays every task's series in a single plot.
func (a *App) plotAggregate(ctx context.Context) error {
	ctx, _ = ctxlog.With(ctx, "root", a.cfg.Root)
	p, err := present.NewAggregate(ctx, present.AggregateConfig[plotfuncs.Series, []plotfuncs.Series]{
		Root:       a.cfg.Root,
		Loader:     a.tasks,
		Preprocess: plotfuncs.SeriesOf(a.cfg.Key),
		Reduce:     plotfuncs.Collect,
		Draw:       plotfuncs.DrawOverlay,
		Title:      a.cfg.Title,
	})
	if err != nil {
		return err
	}
	if err := p.Export(ctx, a.cfg.Out); err != nil {
		return err
	}
	fmt.Fprintf(a.outW, "%s (%d tasks)\n", a.cfg.Out, len(p.Tasks()))
	return nil
}
