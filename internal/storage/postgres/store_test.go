package postgres

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/users-admin/internal/storage"
)

type fakeRow struct {
	vals []any
	err  error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *[]byte:
			*p = r.vals[i].([]byte)
		case *int64:
			*p = r.vals[i].(int64)
		}
	}
	return nil
}

type fakeQuerier struct {
	row   fakeRow
	sql   string
	args  []any
	calls int
}

func (f *fakeQuerier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	f.calls++
	f.sql, f.args = sql, args
	return f.row
}

func TestGet_Found(t *testing.T) {
	q := &fakeQuerier{row: fakeRow{vals: []any{[]byte(`[]`), int64(4)}}}
	s := &Store{q: q}

	e, err := s.Get(context.Background(), "users")
	require.NoError(t, err)
	assert.Equal(t, storage.Entry{Value: []byte(`[]`), Version: 4}, e)
	assert.Equal(t, []any{"users"}, q.args)
}

func TestGet_NotFound(t *testing.T) {
	s := &Store{q: &fakeQuerier{row: fakeRow{err: pgx.ErrNoRows}}}
	_, err := s.Get(context.Background(), "users")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestGet_DBError(t *testing.T) {
	s := &Store{q: &fakeQuerier{row: fakeRow{err: errors.New("db down")}}}
	_, err := s.Get(context.Background(), "users")
	assert.ErrorIs(t, err, storage.ErrUnavailable)
	assert.Contains(t, err.Error(), "db down")
}

func TestSet_InsertWhenExpectedZero(t *testing.T) {
	q := &fakeQuerier{row: fakeRow{vals: []any{int64(1)}}}
	s := &Store{q: q}

	v, err := s.Set(context.Background(), "users", []byte(`[]`), 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)
	assert.True(t, strings.Contains(q.sql, "INSERT INTO kv_store"))
	assert.Len(t, q.args, 2)
}

func TestSet_UpdateWithVersion(t *testing.T) {
	q := &fakeQuerier{row: fakeRow{vals: []any{int64(8)}}}
	s := &Store{q: q}

	v, err := s.Set(context.Background(), "users", []byte(`[]`), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(8), v)
	assert.True(t, strings.Contains(q.sql, "version = $3"))
	assert.Equal(t, int64(7), q.args[2])
}

func TestSet_NoRowIsStale(t *testing.T) {
	s := &Store{q: &fakeQuerier{row: fakeRow{err: pgx.ErrNoRows}}}
	_, err := s.Set(context.Background(), "users", []byte(`[]`), 2)
	assert.ErrorIs(t, err, storage.ErrStale)
	assert.NotErrorIs(t, err, storage.ErrUnavailable)
}
