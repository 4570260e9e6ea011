package service

import (
	"context"

	"pomoplan/internal/domain"
	"pomoplan/internal/planner"
)

// PlanResult is the outcome of planning a day from raw task lines.
type PlanResult struct {
	Session   *domain.Session
	Gaps      []string
	Estimates planner.TimeEstimates
}

// PlanService turns free-form task lines into a scheduled session.
type PlanService interface {
	PlanDay(ctx context.Context, date string, lines []string) (*PlanResult, error)
}

// SessionService manages stored sessions and their lifecycle.
type SessionService interface {
	Save(ctx context.Context, session *domain.Session) error
	Get(ctx context.Context, date string) (*domain.Session, error)
	List(ctx context.Context) ([]*domain.Session, error)
	Delete(ctx context.Context, date string) error
	Start(ctx context.Context, date string) (*domain.Session, error)
	Complete(ctx context.Context, date string) (*domain.Session, error)
	Archive(ctx context.Context, date string) (*domain.Session, error)
}
