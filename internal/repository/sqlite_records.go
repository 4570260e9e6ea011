package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"pomoplan/internal/db"
)

// SQLiteRecordStore implements RecordStore over a SQLite database or
// transaction.
type SQLiteRecordStore struct {
	db db.DBTX
}

// NewSQLiteRecordStore creates a new SQLiteRecordStore.
func NewSQLiteRecordStore(dbtx db.DBTX) *SQLiteRecordStore {
	return &SQLiteRecordStore{db: dbtx}
}

func (r *SQLiteRecordStore) Get(ctx context.Context, key string) (json.RawMessage, error) {
	query := `SELECT value FROM records WHERE key = ?`
	var value string
	err := r.db.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting record %s: %w", key, err)
	}
	return json.RawMessage(value), nil
}

func (r *SQLiteRecordStore) Put(ctx context.Context, key string, value json.RawMessage) error {
	query := `INSERT INTO records (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	if _, err := r.db.ExecContext(ctx, query, key, string(value), nowUTC()); err != nil {
		return fmt.Errorf("putting record %s: %w", key, err)
	}
	return nil
}

func (r *SQLiteRecordStore) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM records WHERE key = ?`
	if _, err := r.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("deleting record %s: %w", key, err)
	}
	return nil
}

func (r *SQLiteRecordStore) DeletePrefix(ctx context.Context, prefix string) error {
	query := `DELETE FROM records WHERE key LIKE ? ESCAPE '\'`
	if _, err := r.db.ExecContext(ctx, query, escapeLike(prefix)+"%"); err != nil {
		return fmt.Errorf("deleting records with prefix %s: %w", prefix, err)
	}
	return nil
}

func (r *SQLiteRecordStore) List(ctx context.Context) ([]Record, error) {
	query := `SELECT key, value FROM records ORDER BY key`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		records = append(records, Record{Key: key, Value: json.RawMessage(value)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating records: %w", err)
	}
	return records, nil
}
