package present

import (
	"context"
	"fmt"

	"github.com/specialistvlad/hpcgrid/internal/discovery"
	"github.com/specialistvlad/hpcgrid/internal/taskdata"
	"gonum.org/v1/plot"
)

// PreprocessFunc turns one task's raw data and parameters into the item that
// gets drawn or reduced.
type PreprocessFunc[T any] func(data any, params taskdata.Params) (T, error)

// DrawFunc draws a value into a cell.
type DrawFunc[T any] func(v T, cell *plot.Plot) error

// ReduceFunc combines every preprocessed item, with the parameters of the task
// it came from at the same index, into one value.
type ReduceFunc[T, A any] func(items []T, params []taskdata.Params) (A, error)

// loadItem loads and preprocesses a single task directory.
func loadItem[T any](ctx context.Context, loader taskdata.Loader, pre PreprocessFunc[T], dir discovery.TaskDirectory) (T, taskdata.Params, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, nil, err
	}
	rec, err := loader.Load(ctx, dir)
	if err != nil {
		return zero, nil, fmt.Errorf("task %d: %w", dir.Index, err)
	}
	item, err := pre(rec.Data, rec.Params)
	if err != nil {
		return zero, nil, fmt.Errorf("task %d: preprocess failed: %w", dir.Index, err)
	}
	return item, rec.Params, nil
}

func loaderOrDefault(l taskdata.Loader) taskdata.Loader {
	if l == nil {
		return taskdata.NewMsgpackLoader()
	}
	return l
}
