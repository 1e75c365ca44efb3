package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hugo9809/pdfcraft/core"
)

// Interface compliance (compile-time assertions)
var (
	_ core.HistoryStore = (*SQLiteStore)(nil)
	_ core.HistoryStore = (*InMemoryStore)(nil)
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestOpen_UnopenablePathIsUnsupported(t *testing.T) {
	// A directory path can never be opened as a database file.
	_, err := Open(t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrUnsupported)
	assert.False(t, core.IsStoreError(err))
}

func TestSQLiteStore_ListAfterCloseFails(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	require.NoError(t, store.Close())

	_, err = store.List(context.Background())
	assert.True(t, core.IsStoreError(err))
}

func TestSQLiteStore_AddListNewestFirst(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	older := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	newer := older.Add(time.Hour)

	_, err := store.Add(ctx, core.HistoryEntry{Name: "a.pdf", Size: 10, Processed: older, Tool: core.ToolSign, ToolName: core.ToolSign.DisplayName()})
	require.NoError(t, err)
	idNewer, err := store.Add(ctx, core.HistoryEntry{Name: "b.pdf", Size: 20, Processed: newer, Tool: core.ToolEdit, ToolName: core.ToolEdit.DisplayName(), StorageName: "history-b.pdf"})
	require.NoError(t, err)

	entries, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, idNewer, entries[0].ID)
	assert.Equal(t, "b.pdf", entries[0].Name)
	assert.Equal(t, int64(20), entries[0].Size)
	assert.Equal(t, core.ToolEdit, entries[0].Tool)
	assert.Equal(t, "Edit PDF", entries[0].ToolName)
	assert.Equal(t, "history-b.pdf", entries[0].StorageName)
	assert.Equal(t, newer, entries[0].Processed)
	assert.Empty(t, entries[1].StorageName)
}

func TestSQLiteStore_RemoveIdempotentAndClear(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	id, err := store.Add(ctx, core.HistoryEntry{Name: "a.pdf", Tool: core.ToolSign})
	require.NoError(t, err)
	_, err = store.Add(ctx, core.HistoryEntry{Name: "b.pdf", Tool: core.ToolSign})
	require.NoError(t, err)

	require.NoError(t, store.Remove(ctx, id))
	assert.NoError(t, store.Remove(ctx, id))
	assert.NoError(t, store.Remove(ctx, "no-such-id"))

	entries, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	require.NoError(t, store.Clear(ctx))
	entries, err = store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestInMemoryStore_MatchesContract(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	id1, err := store.Add(ctx, core.HistoryEntry{Name: "a.pdf", Tool: core.ToolSign})
	require.NoError(t, err)
	id2, err := store.Add(ctx, core.HistoryEntry{Name: "b.pdf", Tool: core.ToolEdit})
	require.NoError(t, err)
	require.NotEqual(t, id1, id2)

	entries, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, id2, entries[0].ID)

	require.NoError(t, store.Remove(ctx, "missing"))
	require.NoError(t, store.Clear(ctx))
	entries, _ = store.List(ctx)
	assert.Empty(t, entries)
}
