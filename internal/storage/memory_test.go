package storage_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/users-admin/internal/storage"
	"github.com/baharkarakas/users-admin/internal/storage/storagetest"
)

func TestMemoryStore(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Store {
		return storage.NewMemoryStore()
	})
}

func TestMemoryStore_ReturnedBytesAreCopies(t *testing.T) {
	s := storage.NewMemoryStore()
	ctx := context.Background()
	_, err := s.Set(ctx, "k", []byte("abc"), 0)
	require.NoError(t, err)

	e, err := s.Get(ctx, "k")
	require.NoError(t, err)
	e.Value[0] = 'X'

	again, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), again.Value)
}

func TestMemoryStore_ClosedIsUnavailable(t *testing.T) {
	s := storage.NewMemoryStore()
	require.NoError(t, s.Close())

	_, err := s.Get(context.Background(), "k")
	assert.ErrorIs(t, err, storage.ErrUnavailable)

	var se *storage.Error
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "get", se.Op)
	assert.Equal(t, "k", se.Key)
}

func TestMemoryStore_CanceledContext(t *testing.T) {
	s := storage.NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Set(ctx, "k", []byte("v"), 0)
	assert.ErrorIs(t, err, storage.ErrUnavailable)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWrap_PassesSentinelsThrough(t *testing.T) {
	assert.NoError(t, storage.Wrap("get", "k", nil))
	assert.Equal(t, storage.ErrNotFound, storage.Wrap("get", "k", storage.ErrNotFound))
	assert.Equal(t, storage.ErrStale, storage.Wrap("set", "k", storage.ErrStale))
}
