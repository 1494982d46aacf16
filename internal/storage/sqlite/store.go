// Package sqlite keeps the key-value store in a local SQLite file
// through the pure-Go modernc driver.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/baharkarakas/users-admin/internal/storage"
)

const schema = `
CREATE TABLE IF NOT EXISTS kv_store (
  key     TEXT PRIMARY KEY,
  value   BLOB    NOT NULL,
  version INTEGER NOT NULL DEFAULT 1
);`

type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at dsn and makes sure the table exists.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// one connection: ":memory:" databases are per-connection and sqlite serializes writers anyway
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create kv_store: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Get(ctx context.Context, key string) (storage.Entry, error) {
	var e storage.Entry
	err := s.db.QueryRowContext(ctx,
		`SELECT value, version FROM kv_store WHERE key = ?`, key,
	).Scan(&e.Value, &e.Version)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.Entry{}, storage.ErrNotFound
	}
	if err != nil {
		return storage.Entry{}, storage.Wrap("get", key, err)
	}
	return e, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte, expected int64) (int64, error) {
	var (
		res sql.Result
		err error
	)
	if expected == 0 {
		res, err = s.db.ExecContext(ctx, `
			INSERT INTO kv_store (key, value, version) VALUES (?, ?, 1)
			ON CONFLICT(key) DO NOTHING
		`, key, value)
	} else {
		res, err = s.db.ExecContext(ctx, `
			UPDATE kv_store SET value = ?, version = version + 1
			WHERE key = ? AND version = ?
		`, value, key, expected)
	}
	if err != nil {
		return 0, storage.Wrap("set", key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, storage.Wrap("set", key, err)
	}
	if n == 0 {
		return 0, storage.ErrStale
	}
	return expected + 1, nil
}

func (s *Store) Close() error { return s.db.Close() }
