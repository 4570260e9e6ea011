package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pomoplan/internal/db"
	"pomoplan/internal/domain"
	"pomoplan/internal/repository"
)

var (
	// ErrSessionNotFound is returned when no session exists for a date.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionArchived is returned when a mutation targets an archived
	// session. Archived sessions are frozen except for deletion.
	ErrSessionArchived = errors.New("session is archived")
)

type sessionService struct {
	sessions *repository.SessionStore
	uow      db.UnitOfWork
	observer UseCaseObserver
	now      func() time.Time
}

// NewSessionService creates the session lifecycle use cases over the store.
func NewSessionService(sessions *repository.SessionStore, uow db.UnitOfWork, observer UseCaseObserver) SessionService {
	if observer == nil {
		observer = NoopUseCaseObserver{}
	}
	return &sessionService{
		sessions: sessions,
		uow:      uow,
		observer: observer,
		now:      func() time.Time { return time.Now() },
	}
}

func (s *sessionService) Save(ctx context.Context, session *domain.Session) (err error) {
	started := time.Now()
	defer func() {
		observe(ctx, s.observer, "session_save", started, err, map[string]any{"date": session.Date})
	}()

	if !domain.ValidDate(session.Date) {
		return fmt.Errorf("invalid session date %q, want YYYY-MM-DD", session.Date)
	}

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		store := txSessionStore(tx)
		existing, err := store.Get(ctx, session.Date)
		if err != nil {
			return err
		}
		if existing != nil && existing.Status == domain.SessionArchived {
			return fmt.Errorf("saving session %s: %w", session.Date, ErrSessionArchived)
		}
		session.RecalcTotals()
		session.Touch(s.now())
		return store.Put(ctx, session)
	})
}

func (s *sessionService) Get(ctx context.Context, date string) (*domain.Session, error) {
	session, err := s.sessions.Get(ctx, date)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, fmt.Errorf("session %s: %w", date, ErrSessionNotFound)
	}
	return session, nil
}

func (s *sessionService) List(ctx context.Context) ([]*domain.Session, error) {
	return s.sessions.List(ctx)
}

func (s *sessionService) Delete(ctx context.Context, date string) (err error) {
	started := time.Now()
	defer func() {
		observe(ctx, s.observer, "session_delete", started, err, map[string]any{"date": date})
	}()

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return txSessionStore(tx).Delete(ctx, date)
	})
}

func (s *sessionService) Start(ctx context.Context, date string) (*domain.Session, error) {
	return s.transition(ctx, "session_start", date, func(session *domain.Session) error {
		return session.Start(s.now())
	})
}

func (s *sessionService) Complete(ctx context.Context, date string) (*domain.Session, error) {
	return s.transition(ctx, "session_complete", date, func(session *domain.Session) error {
		return session.Complete(s.now())
	})
}

func (s *sessionService) Archive(ctx context.Context, date string) (*domain.Session, error) {
	return s.transition(ctx, "session_archive", date, func(session *domain.Session) error {
		return session.Archive(s.now())
	})
}

// transition loads, mutates, and stores a session in one unit of work.
func (s *sessionService) transition(ctx context.Context, name, date string, fn func(*domain.Session) error) (result *domain.Session, err error) {
	started := time.Now()
	defer func() {
		observe(ctx, s.observer, name, started, err, map[string]any{"date": date})
	}()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		store := txSessionStore(tx)
		session, err := store.Get(ctx, date)
		if err != nil {
			return err
		}
		if session == nil {
			return fmt.Errorf("session %s: %w", date, ErrSessionNotFound)
		}
		if err := fn(session); err != nil {
			return err
		}
		if err := store.Put(ctx, session); err != nil {
			return err
		}
		result = session
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func txSessionStore(tx db.DBTX) *repository.SessionStore {
	return repository.NewSessionStore(repository.NewSQLiteRecordStore(tx))
}
