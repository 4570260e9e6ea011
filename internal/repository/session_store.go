package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"pomoplan/internal/domain"
)

// SessionStore is a typed view over a RecordStore that maps sessions to
// date-keyed records.
type SessionStore struct {
	records RecordStore
}

// NewSessionStore creates a SessionStore over the given record store.
func NewSessionStore(records RecordStore) *SessionStore {
	return &SessionStore{records: records}
}

// SessionKey returns the record key for a session date.
func SessionKey(date string) string {
	return RecordPrefix + date
}

// Get loads the session for a date. Returns nil without error when no
// session exists for that date.
func (s *SessionStore) Get(ctx context.Context, date string) (*domain.Session, error) {
	raw, err := s.records.Get(ctx, SessionKey(date))
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var session domain.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("decoding session %s: %w", date, err)
	}
	return &session, nil
}

// Put stores the session under its date key.
func (s *SessionStore) Put(ctx context.Context, session *domain.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encoding session %s: %w", session.Date, err)
	}
	return s.records.Put(ctx, SessionKey(session.Date), raw)
}

// Delete removes the session for a date. Deleting an absent date is a no-op.
func (s *SessionStore) Delete(ctx context.Context, date string) error {
	return s.records.Delete(ctx, SessionKey(date))
}

// DeleteAll removes every stored session.
func (s *SessionStore) DeleteAll(ctx context.Context) error {
	return s.records.DeletePrefix(ctx, RecordPrefix)
}

// List returns all stored sessions ordered by date descending, newest first.
func (s *SessionStore) List(ctx context.Context) ([]*domain.Session, error) {
	records, err := s.records.List(ctx)
	if err != nil {
		return nil, err
	}
	var sessions []*domain.Session
	for _, rec := range records {
		if !strings.HasPrefix(rec.Key, RecordPrefix) {
			continue
		}
		var session domain.Session
		if err := json.Unmarshal(rec.Value, &session); err != nil {
			return nil, fmt.Errorf("decoding session record %s: %w", rec.Key, err)
		}
		sessions = append(sessions, &session)
	}
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].Date > sessions[j].Date })
	return sessions, nil
}
