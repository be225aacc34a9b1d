package present

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/hpcgrid/internal/ctxlog"
	"github.com/specialistvlad/hpcgrid/internal/discovery"
	"github.com/specialistvlad/hpcgrid/internal/taskdata"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot"
)

// newExperiment writes task directories for the given indices, in the given
// order, each holding "task-<k>" as data and {"k": "<k>"} as parameters.
func newExperiment(t *testing.T, indices ...int) string {
	t.Helper()
	root := t.TempDir()
	for _, k := range indices {
		dir := filepath.Join(root, discovery.DirName(k))
		err := taskdata.Save(dir, fmt.Sprintf("task-%d", k), taskdata.Params{"k": fmt.Sprint(k)})
		require.NoError(t, err)
	}
	return root
}

// testContext returns a context whose logger writes into the returned buffer.
func testContext(t *testing.T) (context.Context, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return ctxlog.WithLogger(context.Background(), logger), buf
}

func labelPreprocess(data any, params taskdata.Params) (string, error) {
	s, ok := data.(string)
	if !ok {
		return "", fmt.Errorf("unexpected data %T", data)
	}
	return s, nil
}

func titleDraw(label string, cell *plot.Plot) error {
	cell.Title.Text = label
	return nil
}
