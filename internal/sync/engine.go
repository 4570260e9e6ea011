package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	gosync "sync"

	"pomoplan/internal/db"
	"pomoplan/internal/repository"
)

// Engine applies pushes and answers pulls against the canonical store.
//
// Pushes from all clients are serialized: each push runs to completion inside
// a single unit of work before the next is admitted, so no two pushes
// interleave mutation-by-mutation. A sequence gap commits the in-order prefix
// of the batch and rejects the rest; the client recovers by resending from
// the acknowledged position.
type Engine struct {
	mu     gosync.Mutex
	uow    db.UnitOfWork
	logger *slog.Logger
}

// NewEngine creates a sync engine over the given unit of work.
func NewEngine(uow db.UnitOfWork, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{uow: uow, logger: logger}
}

// ApplyPush applies the batch in client order. The returned response always
// reflects the client's sequence position after the call, including when a
// gap or argument error rejected the tail of the batch.
func (e *Engine) ApplyPush(ctx context.Context, req *PushRequest) (*PushResponse, error) {
	if err := validatePush(req); err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	var last int
	var applyErr error
	err := e.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		records := repository.NewSQLiteRecordStore(tx)
		state := repository.NewSQLiteStateStore(tx)
		last, applyErr = e.applyMutations(ctx, records, state, req.ClientID, req.Mutations)
		// Mutations applied before a protocol rejection stay committed; only
		// infrastructure failures roll the batch back.
		var gap *SequenceGapError
		if applyErr != nil && !errors.As(applyErr, &gap) && !errors.Is(applyErr, ErrValidation) {
			return applyErr
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("applying push for %s: %w", req.ClientID, err)
	}
	return &PushResponse{LastMutationID: last}, applyErr
}

func (e *Engine) applyMutations(ctx context.Context, records repository.RecordStore, state repository.StateStore, clientID string, mutations []Mutation) (int, error) {
	last, err := state.LastMutationID(ctx, clientID)
	if err != nil {
		return 0, err
	}
	version, err := state.GlobalVersion(ctx)
	if err != nil {
		return last, err
	}

	persist := func() error {
		if err := state.SetLastMutationID(ctx, clientID, last); err != nil {
			return err
		}
		return state.SetGlobalVersion(ctx, version)
	}

	for _, m := range mutations {
		expected := last + 1
		if m.ID < expected {
			e.logger.Debug("skipping already-applied mutation",
				"clientID", clientID, "mutationID", m.ID, "expected", expected)
			continue
		}
		if m.ID > expected {
			if err := persist(); err != nil {
				return last, err
			}
			return last, &SequenceGapError{
				ClientID:       clientID,
				Expected:       expected,
				Got:            m.ID,
				LastMutationID: last,
			}
		}
		if err := e.applyMutation(ctx, records, m); err != nil {
			if perr := persist(); perr != nil {
				return last, perr
			}
			return last, err
		}
		last = m.ID
		version++
	}

	if err := persist(); err != nil {
		return last, err
	}
	return last, nil
}

func (e *Engine) applyMutation(ctx context.Context, records repository.RecordStore, m Mutation) error {
	switch m.Name {
	case MutationSaveSession:
		args, err := decodeSessionArgs(m)
		if err != nil {
			return err
		}
		return records.Put(ctx, repository.SessionKey(args.Date), args.Session)

	case MutationDeleteSession:
		args, err := decodeSessionArgs(m)
		if err != nil {
			return err
		}
		return records.Delete(ctx, repository.SessionKey(args.Date))

	case MutationClearAllSessions:
		return records.DeletePrefix(ctx, repository.RecordPrefix)

	case MutationUpdateTimeBoxStatus, MutationUpdateTaskStatus, MutationSaveTimerState:
		// Accepted but inert: the authoritative change arrives in the full
		// saveSession the client sends next.
		return nil

	default:
		e.logger.Warn("ignoring unknown mutation name", "name", m.Name, "mutationID", m.ID)
		return nil
	}
}

// ApplyPull returns the client's sequence position, the current version
// cookie, and a full-state patch of put operations. It runs in its own
// transaction so no pull observes a half-applied push.
func (e *Engine) ApplyPull(ctx context.Context, req *PullRequest) (*PullResponse, error) {
	if err := validatePull(req); err != nil {
		return nil, err
	}

	var resp *PullResponse
	err := e.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		records := repository.NewSQLiteRecordStore(tx)
		state := repository.NewSQLiteStateStore(tx)

		last, err := state.LastMutationID(ctx, req.ClientID)
		if err != nil {
			return err
		}
		version, err := state.GlobalVersion(ctx)
		if err != nil {
			return err
		}
		all, err := records.List(ctx)
		if err != nil {
			return err
		}

		patch := make([]PatchOp, 0, len(all))
		for _, rec := range all {
			patch = append(patch, PatchOp{Op: "put", Key: rec.Key, Value: rec.Value})
		}
		resp = &PullResponse{LastMutationID: last, Cookie: version, Patch: patch}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("applying pull for %s: %w", req.ClientID, err)
	}
	return resp, nil
}
