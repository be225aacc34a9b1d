// Package testutil runs hpcgrid commands end to end against temporary
// directories and captures what they print and log.
package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/specialistvlad/hpcgrid/internal/app"
	"github.com/specialistvlad/hpcgrid/internal/hcl"
	"github.com/specialistvlad/hpcgrid/internal/taskdata"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcome of one command run.
type HarnessResult struct {
	Stdout    string
	LogOutput string
	Err       error
}

// RunCommand validates cfg, runs it with debug text logging and returns what
// it printed and logged. Set HPCGRID_TEST_LOGS=true to echo the logs.
func RunCommand(t *testing.T, cfg app.Config) *HarnessResult {
	t.Helper()
	return RunCommandWithContext(context.Background(), t, cfg)
}

// RunCommandWithContext is RunCommand with a caller-supplied context.
func RunCommandWithContext(ctx context.Context, t *testing.T, cfg app.Config) *HarnessResult {
	t.Helper()

	cfg.LogLevel = "debug"
	cfg.LogFormat = "text"
	valid, err := app.NewConfig(cfg)
	require.NoError(t, err)

	out, logs := &SafeBuffer{}, &SafeBuffer{}
	a := app.NewApp(out, logs, valid, hcl.NewLoader(), taskdata.NewMsgpackLoader())
	runErr := a.Run(ctx)

	if os.Getenv("HPCGRID_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
	}

	return &HarnessResult{
		Stdout:    out.String(),
		LogOutput: logs.String(),
		Err:       runErr,
	}
}

// WriteFiles writes files (relative path to content) under a fresh temporary
// directory and returns it.
func WriteFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return root
}
