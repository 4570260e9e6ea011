package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"pomoplan/internal/domain"
	"pomoplan/internal/organizer"
	"pomoplan/internal/planner"
)

type planService struct {
	organizer organizer.Organizer
	observer  UseCaseObserver
	logger    *slog.Logger
	now       func() time.Time
}

// NewPlanService creates the planning use case over the given organizer.
func NewPlanService(org organizer.Organizer, observer UseCaseObserver, logger *slog.Logger) PlanService {
	if observer == nil {
		observer = NoopUseCaseObserver{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &planService{
		organizer: org,
		observer:  observer,
		logger:    logger,
		now:       func() time.Time { return time.Now() },
	}
}

// PlanDay organizes the raw lines into stories, normalizes durations, checks
// that no input task went missing, and builds the time-boxed session.
func (s *planService) PlanDay(ctx context.Context, date string, lines []string) (result *PlanResult, err error) {
	started := time.Now()
	defer func() {
		observe(ctx, s.observer, "plan_day", started, err, map[string]any{"date": date, "lines": len(lines)})
	}()

	if !domain.ValidDate(date) {
		return nil, fmt.Errorf("invalid session date %q, want YYYY-MM-DD", date)
	}

	input := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			input = append(input, line)
		}
	}

	raw, err := s.organizer.Organize(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("organizing tasks: %w", err)
	}
	stories := organizer.NormalizePlan(raw)

	gaps := organizer.CheckCoverage(input, stories)
	organizer.LogCoverageGaps(s.logger, gaps)

	session := planner.BuildSession(stories, date, s.now())
	estimates := planner.ComputeTimeEstimates(session.TotalDuration, s.now())

	return &PlanResult{Session: session, Gaps: gaps, Estimates: estimates}, nil
}
