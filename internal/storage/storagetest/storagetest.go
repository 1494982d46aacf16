// Package storagetest holds the behaviour every storage.Store backend must share.
package storagetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/users-admin/internal/storage"
)

// Run exercises a fresh store returned by newStore for each subtest.
func Run(t *testing.T, newStore func(t *testing.T) storage.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("get absent", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Get(ctx, "users")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("round trip", func(t *testing.T) {
		s := newStore(t)
		val := []byte(`[{"id":"b"},{"id":"a"}]`)
		v, err := s.Set(ctx, "users", val, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(1), v)

		e, err := s.Get(ctx, "users")
		require.NoError(t, err)
		assert.Equal(t, val, e.Value)
		assert.Equal(t, int64(1), e.Version)
	})

	t.Run("versions increment", func(t *testing.T) {
		s := newStore(t)
		v1, err := s.Set(ctx, "k", []byte("1"), 0)
		require.NoError(t, err)
		v2, err := s.Set(ctx, "k", []byte("2"), v1)
		require.NoError(t, err)
		assert.Equal(t, v1+1, v2)

		e, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("2"), e.Value)
		assert.Equal(t, v2, e.Version)
	})

	t.Run("insert over existing is stale", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Set(ctx, "k", []byte("1"), 0)
		require.NoError(t, err)
		_, err = s.Set(ctx, "k", []byte("2"), 0)
		assert.ErrorIs(t, err, storage.ErrStale)
	})

	t.Run("wrong version is stale and keeps value", func(t *testing.T) {
		s := newStore(t)
		v, err := s.Set(ctx, "k", []byte("1"), 0)
		require.NoError(t, err)
		_, err = s.Set(ctx, "k", []byte("2"), v+5)
		assert.ErrorIs(t, err, storage.ErrStale)

		e, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("1"), e.Value)
	})

	t.Run("update of absent key is stale", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Set(ctx, "k", []byte("1"), 3)
		assert.ErrorIs(t, err, storage.ErrStale)
	})

	t.Run("keys are independent", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Set(ctx, "a", []byte("A"), 0)
		require.NoError(t, err)
		_, err = s.Set(ctx, "b", []byte("B"), 0)
		require.NoError(t, err)
		e, err := s.Get(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, []byte("A"), e.Value)
	})
}
