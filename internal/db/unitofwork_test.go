package db_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomoplan/internal/db"
)

func openTestUoW(t *testing.T) *db.SQLiteUnitOfWork {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return db.NewSQLiteUnitOfWork(database)
}

func readRecord(uow *db.SQLiteUnitOfWork, key string) (string, bool) {
	var val string
	var found bool
	_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		row := tx.QueryRowContext(ctx, `SELECT value FROM records WHERE key = ?`, key)
		if err := row.Scan(&val); err != nil {
			return nil // not found
		}
		found = true
		return nil
	})
	return val, found
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	uow := openTestUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO records (key, value, updated_at) VALUES (?, ?, ?)`,
			"session-2025-06-15", `{}`, "2025-06-15T09:00:00Z")
		return err
	})
	require.NoError(t, err)

	val, found := readRecord(uow, "session-2025-06-15")
	assert.True(t, found, "row should exist after commit")
	assert.Equal(t, `{}`, val)
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	uow := openTestUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO records (key, value, updated_at) VALUES (?, ?, ?)`,
			"session-2025-06-16", `{}`, "2025-06-16T09:00:00Z"); err != nil {
			return err
		}
		return fmt.Errorf("boom")
	})
	require.Error(t, err)

	_, found := readRecord(uow, "session-2025-06-16")
	assert.False(t, found, "row should not exist after rollback")
}

func TestMigrate_Idempotent(t *testing.T) {
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	require.NoError(t, db.Migrate(database))
	require.NoError(t, db.Migrate(database))

	var version int
	row := database.QueryRow(`SELECT value FROM sync_meta WHERE key = 'global_version'`)
	require.NoError(t, row.Scan(&version))
	assert.Zero(t, version, "re-running migrations must not reset state sneakily")
}
