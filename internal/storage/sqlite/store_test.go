package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/users-admin/internal/storage"
	"github.com/baharkarakas/users-admin/internal/storage/storagetest"
)

func openMem(t *testing.T) storage.Store {
	t.Helper()
	s, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore(t *testing.T) {
	storagetest.Run(t, openMem)
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "admin.db")

	s, err := Open(ctx, path)
	require.NoError(t, err)
	_, err = s.Set(ctx, "users", []byte(`[1,2,3]`), 0)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(ctx, path)
	require.NoError(t, err)
	defer s.Close()

	e, err := s.Get(ctx, "users")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[1,2,3]`), e.Value)
	assert.Equal(t, int64(1), e.Version)
}

func TestStore_ClosedIsUnavailable(t *testing.T) {
	s, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = s.Get(context.Background(), "users")
	assert.ErrorIs(t, err, storage.ErrUnavailable)
}
