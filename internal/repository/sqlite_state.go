package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"pomoplan/internal/db"
)

const globalVersionKey = "global_version"

// SQLiteStateStore implements StateStore over a SQLite database or
// transaction.
type SQLiteStateStore struct {
	db db.DBTX
}

// NewSQLiteStateStore creates a new SQLiteStateStore.
func NewSQLiteStateStore(dbtx db.DBTX) *SQLiteStateStore {
	return &SQLiteStateStore{db: dbtx}
}

// LastMutationID returns the last mutation id applied for the client, or 0
// for a client that has never pushed.
func (r *SQLiteStateStore) LastMutationID(ctx context.Context, clientID string) (int, error) {
	query := `SELECT last_mutation_id FROM client_versions WHERE client_id = ?`
	var id int
	err := r.db.QueryRowContext(ctx, query, clientID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("getting last mutation id for %s: %w", clientID, err)
	}
	return id, nil
}

func (r *SQLiteStateStore) SetLastMutationID(ctx context.Context, clientID string, id int) error {
	query := `INSERT INTO client_versions (client_id, last_mutation_id, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(client_id) DO UPDATE SET last_mutation_id = excluded.last_mutation_id, updated_at = excluded.updated_at`
	if _, err := r.db.ExecContext(ctx, query, clientID, id, nowUTC()); err != nil {
		return fmt.Errorf("setting last mutation id for %s: %w", clientID, err)
	}
	return nil
}

func (r *SQLiteStateStore) GlobalVersion(ctx context.Context) (int, error) {
	query := `SELECT value FROM sync_meta WHERE key = ?`
	var version int
	err := r.db.QueryRowContext(ctx, query, globalVersionKey).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("getting global version: %w", err)
	}
	return version, nil
}

func (r *SQLiteStateStore) SetGlobalVersion(ctx context.Context, version int) error {
	query := `INSERT INTO sync_meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`
	if _, err := r.db.ExecContext(ctx, query, globalVersionKey, version); err != nil {
		return fmt.Errorf("setting global version: %w", err)
	}
	return nil
}
