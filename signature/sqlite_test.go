package signature

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hugo9809/pdfcraft/core"
)

// Interface compliance (compile-time assertion)
var _ core.SignatureStore = (*SQLiteStore)(nil)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "signatures.db"))
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

func TestSQLiteStore_SaveAssignsUniqueIDs(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	id1, err := store.Save(ctx, core.Signature{Kind: core.SignatureVector, Payload: []byte("M 0 0 L 10 10")})
	require.NoError(t, err)
	id2, err := store.Save(ctx, core.Signature{Kind: core.SignatureRaster, Payload: []byte{0x89, 0x50}})
	require.NoError(t, err)

	assert.NotEmpty(t, id1)
	assert.NotEqual(t, id1, id2)
}

func TestSQLiteStore_GetAllNewestFirst(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	id1, err := store.Save(ctx, core.Signature{Kind: core.SignatureVector, Payload: []byte("r1")})
	require.NoError(t, err)
	id2, err := store.Save(ctx, core.Signature{Kind: core.SignatureRaster, Payload: []byte("r2"), Width: 200, Height: 80})
	require.NoError(t, err)

	sigs, err := store.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, sigs, 2)
	assert.Equal(t, id2, sigs[0].ID)
	assert.Equal(t, id1, sigs[1].ID)
	assert.Equal(t, core.SignatureRaster, sigs[0].Kind)
	assert.Equal(t, []byte("r2"), sigs[0].Payload)
	assert.Equal(t, 200, sigs[0].Width)
	assert.Equal(t, 80, sigs[0].Height)
	assert.False(t, sigs[0].Created.IsZero())
}

func TestSQLiteStore_DeleteIdempotent(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	id, err := store.Save(ctx, core.Signature{Kind: core.SignatureVector, Payload: []byte("r")})
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, id))
	sigs, err := store.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, sigs)

	// second delete of the same id, and a delete of a never-saved id
	assert.NoError(t, store.Delete(ctx, id))
	assert.NoError(t, store.Delete(ctx, "no-such-id"))
}

func TestSQLiteStore_ReopenKeepsRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "signatures.db")
	store, err := Open(path)
	require.NoError(t, err)
	id, err := store.Save(context.Background(), core.Signature{Kind: core.SignatureVector, Payload: []byte("persisted")})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	sigs, err := reopened.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, sigs, 1)
	assert.Equal(t, id, sigs[0].ID)
	assert.Equal(t, []byte("persisted"), sigs[0].Payload)
}
