package repository

import (
	"context"
	"encoding/json"
)

// RecordPrefix is the key namespace for synced session records.
const RecordPrefix = "session-"

// Record is one versioned entry in the synced key-value space.
type Record struct {
	Key   string
	Value json.RawMessage
}

// RecordStore is the canonical record space the sync engine mutates.
// Implementations must return ErrNotFound from Get for absent keys and keep
// List output sorted by key so pull patches are deterministic.
type RecordStore interface {
	Get(ctx context.Context, key string) (json.RawMessage, error)
	Put(ctx context.Context, key string, value json.RawMessage) error
	Delete(ctx context.Context, key string) error
	DeletePrefix(ctx context.Context, prefix string) error
	List(ctx context.Context) ([]Record, error)
}

// StateStore tracks the sync protocol's counters: each client's last applied
// mutation id and the single global version clock.
type StateStore interface {
	LastMutationID(ctx context.Context, clientID string) (int, error)
	SetLastMutationID(ctx context.Context, clientID string, id int) error
	GlobalVersion(ctx context.Context) (int, error)
	SetGlobalVersion(ctx context.Context, version int) error
}
