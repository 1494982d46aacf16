package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/baharkarakas/users-admin/internal/storage"
)

// querier is the part of *pgxpool.Pool the store needs.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Store struct {
	q     querier
	close func()
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{q: pool, close: pool.Close}
}

func (s *Store) Get(ctx context.Context, key string) (storage.Entry, error) {
	var e storage.Entry
	err := s.q.QueryRow(ctx,
		`SELECT value, version FROM kv_store WHERE key=$1`, key,
	).Scan(&e.Value, &e.Version)
	if errors.Is(err, pgx.ErrNoRows) {
		return storage.Entry{}, storage.ErrNotFound
	}
	if err != nil {
		return storage.Entry{}, storage.Wrap("get", key, err)
	}
	return e, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte, expected int64) (int64, error) {
	var (
		next int64
		err  error
	)
	if expected == 0 {
		err = s.q.QueryRow(ctx,
			`INSERT INTO kv_store(key, value, version, updated_at)
			 VALUES($1, $2, 1, now())
			 ON CONFLICT (key) DO NOTHING
			 RETURNING version`,
			key, value,
		).Scan(&next)
	} else {
		err = s.q.QueryRow(ctx,
			`UPDATE kv_store
			    SET value = $2,
			        version = version + 1,
			        updated_at = now()
			  WHERE key = $1 AND version = $3
			  RETURNING version`,
			key, value, expected,
		).Scan(&next)
	}
	// no row back means another writer got there first
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, storage.ErrStale
	}
	if err != nil {
		return 0, storage.Wrap("set", key, err)
	}
	return next, nil
}

func (s *Store) Close() error {
	if s.close != nil {
		s.close()
	}
	return nil
}
