package ledger

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) (*Ledger, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ledger.db")
	l, err := Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })
	return l, path
}

func TestRecordAndList_NewestFirst(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	ctx := context.Background()
	l, _ := openTemp(t)
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	// --- Act ---
	id1, err := l.Record(ctx, Entry{Name: "old", ScriptPath: "/a.py", SubmissionPath: "/s/a.sh", TablePath: "/r/a/t.csv", TaskCount: 4, CreatedAt: base})
	require.NoError(t, err)
	id2, err := l.Record(ctx, Entry{Name: "new", ScriptPath: "/b.py", SubmissionPath: "/s/b.sh", TablePath: "/r/b/t.csv", TaskCount: 9, CreatedAt: base.Add(time.Hour)})
	require.NoError(t, err)
	entries, err := l.List(ctx)

	// --- Assert ---
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, Entry{ID: id2, Name: "new", ScriptPath: "/b.py", SubmissionPath: "/s/b.sh", TablePath: "/r/b/t.csv", TaskCount: 9, CreatedAt: base.Add(time.Hour)}, entries[0])
	assert.Equal(t, id1, entries[1].ID)
	assert.Equal(t, "old", entries[1].Name)
}

func TestRecord_DefaultsCreatedAt(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	l, _ := openTemp(t)
	fixed := time.Date(2025, 6, 7, 8, 9, 10, 0, time.UTC)
	l.now = func() time.Time { return fixed }

	_, err := l.Record(ctx, Entry{Name: "job", TaskCount: 1})
	require.NoError(t, err)

	entries, err := l.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, fixed.Equal(entries[0].CreatedAt))
}

func TestOpen_PersistsAcrossReopen(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	l, path := openTemp(t)
	_, err := l.Record(ctx, Entry{Name: "kept", TaskCount: 2})
	require.NoError(t, err)
	require.NoError(t, l.Close())

	reopened, err := Open(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()

	entries, err := reopened.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "kept", entries[0].Name)
}

func TestList_Empty(t *testing.T) {
	t.Parallel()

	l, _ := openTemp(t)
	entries, err := l.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestOpen_EmptyPath(t *testing.T) {
	t.Parallel()

	_, err := Open(context.Background(), "")
	require.Error(t, err)
}
