package repository

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
)

// MemoryStore is an in-memory RecordStore used as the client-side replica
// and in tests. It is safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]json.RawMessage
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]json.RawMessage)}
}

func (m *MemoryStore) Get(_ context.Context, key string) (json.RawMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.records[key]
	if !ok {
		return nil, ErrNotFound
	}
	return value, nil
}

func (m *MemoryStore) Put(_ context.Context, key string, value json.RawMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	buf := make(json.RawMessage, len(value))
	copy(buf, value)
	m.records[key] = buf
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, key)
	return nil
}

func (m *MemoryStore) DeletePrefix(_ context.Context, prefix string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key := range m.records {
		if strings.HasPrefix(key, prefix) {
			delete(m.records, key)
		}
	}
	return nil
}

func (m *MemoryStore) List(_ context.Context) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	records := make([]Record, 0, len(m.records))
	for key, value := range m.records {
		records = append(records, Record{Key: key, Value: value})
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Key < records[j].Key })
	return records, nil
}

// Replace swaps the full record set, used when applying a pull snapshot.
func (m *MemoryStore) Replace(records []Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = make(map[string]json.RawMessage, len(records))
	for _, rec := range records {
		buf := make(json.RawMessage, len(rec.Value))
		copy(buf, rec.Value)
		m.records[rec.Key] = buf
	}
}
