package present

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/hpcgrid/internal/discovery"
	"github.com/specialistvlad/hpcgrid/internal/layout"
	"github.com/specialistvlad/hpcgrid/internal/taskdata"
	"github.com/specialistvlad/hpcgrid/internal/taskdata/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gonum.org/v1/plot"
)

func TestGrid_PlacesTasksRowMajor(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	ctx, _ := testContext(t)
	root := newExperiment(t, 3, 1, 2)

	p, err := NewGrid(ctx, GridConfig[string]{
		Root:       root,
		Preprocess: labelPreprocess,
		Draw:       titleDraw,
		Title:      "three tasks",
	})
	require.NoError(t, err)

	// --- Act ---
	err = p.Present(ctx)

	// --- Assert ---
	require.NoError(t, err)
	require.True(t, p.Presented())
	require.Equal(t, layout.Grid{Rows: 2, Cols: 2}, p.Layout())

	fig := p.Figure()
	require.Equal(t, "three tasks", fig.Title())
	want := map[[2]int]string{
		{0, 0}: "task-1",
		{0, 1}: "task-2",
		{1, 0}: "task-3",
	}
	for pos, label := range want {
		cell, ok := fig.At(pos[0], pos[1])
		require.True(t, ok, "cell %v should be drawn", pos)
		assert.Equal(t, label, cell.Title.Text, "cell %v", pos)
	}
	_, ok := fig.At(1, 1)
	assert.False(t, ok, "cell (1,1) must stay blank")
}

func TestGrid_ExplicitColumns(t *testing.T) {
	t.Parallel()

	ctx, _ := testContext(t)
	root := newExperiment(t, 1, 2, 3, 4, 5)

	p, err := NewGrid(ctx, GridConfig[string]{Root: root, Preprocess: labelPreprocess, Draw: titleDraw, Cols: 1})
	require.NoError(t, err)
	require.NoError(t, p.Present(ctx))

	require.Equal(t, layout.Grid{Rows: 5, Cols: 1}, p.Layout())
	cell, ok := p.Figure().At(4, 0)
	require.True(t, ok)
	require.Equal(t, "task-5", cell.Title.Text)
}

func TestNewGrid_FailsEarly(t *testing.T) {
	t.Parallel()

	ctx, _ := testContext(t)

	t.Run("no task directories", func(t *testing.T) {
		t.Parallel()
		_, err := NewGrid(ctx, GridConfig[string]{Root: t.TempDir(), Preprocess: labelPreprocess, Draw: titleDraw})
		var emptyErr *discovery.EmptyDiscoveryError
		require.True(t, errors.As(err, &emptyErr), "got %v", err)
	})

	t.Run("layout too small", func(t *testing.T) {
		t.Parallel()
		root := newExperiment(t, 1, 2, 3, 4, 5)
		_, err := NewGrid(ctx, GridConfig[string]{Root: root, Preprocess: labelPreprocess, Draw: titleDraw, Rows: 2, Cols: 2})
		var tooSmall *layout.TooSmallError
		require.True(t, errors.As(err, &tooSmall), "got %v", err)
	})

	t.Run("strict layout not exact", func(t *testing.T) {
		t.Parallel()
		root := newExperiment(t, 1, 2, 3)
		_, err := NewGrid(ctx, GridConfig[string]{Root: root, Preprocess: labelPreprocess, Draw: titleDraw, Strict: true})
		var notExact *layout.NotExactError
		require.True(t, errors.As(err, &notExact), "got %v", err)
	})

	t.Run("missing callbacks", func(t *testing.T) {
		t.Parallel()
		root := newExperiment(t, 1)
		_, err := NewGrid(ctx, GridConfig[string]{Root: root, Preprocess: labelPreprocess})
		require.Error(t, err)
	})
}

func TestGrid_ExportPresentsOnce(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	ctx, _ := testContext(t)
	root := newExperiment(t, 1, 2)
	calls := 0
	p, err := NewGrid(ctx, GridConfig[string]{
		Root: root,
		Preprocess: func(data any, params taskdata.Params) (string, error) {
			calls++
			return labelPreprocess(data, params)
		},
		Draw: titleDraw,
	})
	require.NoError(t, err)
	out := t.TempDir()

	// --- Act ---
	require.NoError(t, p.Export(ctx, filepath.Join(out, "first.png")))
	require.NoError(t, p.Export(ctx, filepath.Join(out, "second.svg")))

	// --- Assert ---
	require.Equal(t, 2, calls, "each task is preprocessed exactly once across both exports")
	for _, name := range []string{"first.png", "second.svg"} {
		info, err := os.Stat(filepath.Join(out, name))
		require.NoError(t, err)
		require.Positive(t, info.Size())
	}
}

func TestGrid_LoadsInTaskOrderAndAbortsOnError(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	ctx, _ := testContext(t)
	root := newExperiment(t, 2, 1, 3)
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockLoader(ctrl)

	loadErr := errors.New("disk on fire")
	gomock.InOrder(
		loader.EXPECT().Load(gomock.Any(), discovery.TaskDirectory{Path: filepath.Join(root, "n1"), Index: 1}).
			Return(taskdata.Record{Data: "task-1"}, nil),
		loader.EXPECT().Load(gomock.Any(), discovery.TaskDirectory{Path: filepath.Join(root, "n2"), Index: 2}).
			Return(taskdata.Record{}, loadErr),
	)

	drawn := 0
	p, err := NewGrid(ctx, GridConfig[string]{
		Root:       root,
		Loader:     loader,
		Preprocess: labelPreprocess,
		Draw: func(label string, cell *plot.Plot) error {
			drawn++
			return nil
		},
	})
	require.NoError(t, err)

	// --- Act ---
	err = p.Present(ctx)

	// --- Assert ---
	require.ErrorIs(t, err, loadErr)
	require.Contains(t, err.Error(), "task 2")
	require.Equal(t, 1, drawn)
	require.False(t, p.Presented())
}

func TestGrid_DrawErrorIsWrapped(t *testing.T) {
	t.Parallel()

	ctx, _ := testContext(t)
	root := newExperiment(t, 1)
	drawErr := errors.New("bad axis")

	p, err := NewGrid(ctx, GridConfig[string]{
		Root:       root,
		Preprocess: labelPreprocess,
		Draw:       func(string, *plot.Plot) error { return drawErr },
	})
	require.NoError(t, err)

	err = p.Export(ctx, filepath.Join(t.TempDir(), "never.png"))
	require.ErrorIs(t, err, drawErr)
	require.Contains(t, err.Error(), "task 1: draw failed")
}

func TestGrid_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, _ := testContext(t)
	root := newExperiment(t, 1, 2)
	p, err := NewGrid(ctx, GridConfig[string]{Root: root, Preprocess: labelPreprocess, Draw: titleDraw})
	require.NoError(t, err)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()

	require.ErrorIs(t, p.Present(cancelled), context.Canceled)
}
