package testutil

import (
	"path/filepath"
	"testing"

	"github.com/specialistvlad/hpcgrid/internal/discovery"
	"github.com/specialistvlad/hpcgrid/internal/taskdata"
	"github.com/stretchr/testify/require"
)

// WriteExperiment writes tasks 1..n under a fresh directory. Task k holds
// {"loss": [1, 1/(k+1), 0.1]} and the parameters {"seed": k}.
func WriteExperiment(t *testing.T, n int) string {
	t.Helper()
	root := t.TempDir()
	for k := 1; k <= n; k++ {
		data := map[string]any{"loss": []float64{1, 1 / float64(k+1), 0.1}}
		err := taskdata.Save(filepath.Join(root, discovery.DirName(k)), data, taskdata.Params{"seed": float64(k)})
		require.NoError(t, err)
	}
	return root
}
