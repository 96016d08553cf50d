package journal

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/fastnear/near-outlayer/internal/common"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "journal.db")
	db, err := InitDatabase(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db)
}

func newSession(hash string) *Session {
	return &Session{
		ID:          uuid.NewString(),
		File:        "artifact.wasm",
		ContentHash: hash,
		Size:        2500,
		Chunks:      3,
		Nonce:       42,
		Status:      StatusPending,
	}
}

func TestRepository_CompleteLifecycle(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	s := newSession("hash-a")
	require.NoError(t, repo.CreateSession(ctx, s))

	txs := []Transaction{
		{SessionID: s.ID, ChunkIndex: 0, Offset: 0, TxID: "tx0"},
		{SessionID: s.ID, ChunkIndex: 1, Offset: 1048576, TxID: "tx1"},
	}
	require.NoError(t, repo.Complete(ctx, s.ID, "https://a.fastfs.io/b/c.wasm", txs))

	found, err := repo.FindCompleteByHash(ctx, "hash-a")
	require.NoError(t, err)
	assert.Equal(t, s.ID, found.ID)
	assert.Equal(t, StatusComplete, found.Status)
	assert.Equal(t, "https://a.fastfs.io/b/c.wasm", found.URL)
	assert.Equal(t, uint32(42), found.Nonce)

	got, err := repo.Transactions(ctx, s.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "tx0", got[0].TxID)
	assert.Equal(t, uint32(1048576), got[1].Offset)
}

func TestRepository_MarkFailed(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	s := newSession("hash-b")
	require.NoError(t, repo.CreateSession(ctx, s))
	require.NoError(t, repo.MarkFailed(ctx, s.ID))

	// Failed sessions are not candidates for dedup hints.
	_, err := repo.FindCompleteByHash(ctx, "hash-b")
	assert.True(t, errors.Is(err, common.ErrorNotFound))
}

func TestRepository_FindCompleteByHash_NotFound(t *testing.T) {
	repo := newTestRepo(t)
	_, err := repo.FindCompleteByHash(context.Background(), "nope")
	assert.True(t, errors.Is(err, common.ErrorNotFound))
}

func TestRepository_ListRecent(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for _, h := range []string{"h1", "h2", "h3"} {
		require.NoError(t, repo.CreateSession(ctx, newSession(h)))
	}

	sessions, err := repo.ListRecent(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, sessions, 2)

	all, err := repo.ListRecent(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
