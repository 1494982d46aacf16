package db

import (
	"context"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type boolRow bool

func (r boolRow) Scan(dest ...any) error {
	*dest[0].(*bool) = bool(r)
	return nil
}

type fakeDB struct {
	applied map[string]bool
	execs   []string
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.execs = append(f.execs, sql)
	if strings.HasPrefix(sql, "INSERT INTO schema_migrations") {
		f.applied[args[0].(string)] = true
	}
	return pgconn.CommandTag{}, nil
}

func (f *fakeDB) QueryRow(_ context.Context, _ string, args ...any) pgx.Row {
	return boolRow(f.applied[args[0].(string)])
}

func TestPending_OnlyUpFiles(t *testing.T) {
	names, err := Pending()
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_kv_store.up.sql"}, names)
}

func TestRunMigrations_AppliesOnce(t *testing.T) {
	db := &fakeDB{applied: map[string]bool{}}
	require.NoError(t, RunMigrations(context.Background(), db))
	assert.True(t, db.applied["0001_kv_store.up.sql"])
	n := len(db.execs)

	require.NoError(t, RunMigrations(context.Background(), db))
	// second run only ensures schema_migrations exists
	assert.Equal(t, n+1, len(db.execs))
}
