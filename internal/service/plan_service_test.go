package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomoplan/internal/domain"
	"pomoplan/internal/organizer"
	"pomoplan/internal/service"
)

type stubOrganizer struct {
	plan *organizer.RawPlan
	err  error
	got  []string
}

func (s *stubOrganizer) Organize(_ context.Context, lines []string) (*organizer.RawPlan, error) {
	s.got = lines
	return s.plan, s.err
}

func intPtr(n int) *int { return &n }

func TestPlanDay(t *testing.T) {
	org := &stubOrganizer{plan: &organizer.RawPlan{Stories: []organizer.RawStory{
		{
			Title: "Morning focus",
			Tasks: []organizer.RawTask{
				{Title: "Write report", Duration: intPtr(47)},
				{Title: "Review PRs", Duration: intPtr(30)},
			},
		},
	}}}
	svc := service.NewPlanService(org, nil, nil)

	result, err := svc.PlanDay(context.Background(), "2025-06-15", []string{
		"Write report",
		"",
		"Review PRs",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Write report", "Review PRs"}, org.got, "blank lines are dropped before organizing")
	assert.Empty(t, result.Gaps)

	session := result.Session
	assert.Equal(t, "2025-06-15", session.Date)
	assert.Equal(t, domain.SessionPlanned, session.Status)
	assert.Equal(t, 75, session.TotalDuration, "47 rounds to 45")
	assert.Equal(t, "1h 15m", result.Estimates.TotalTime)
}

func TestPlanDay_ReportsCoverageGaps(t *testing.T) {
	org := &stubOrganizer{plan: &organizer.RawPlan{Stories: []organizer.RawStory{
		{Title: "Focus", Tasks: []organizer.RawTask{{Title: "Write report"}}},
	}}}
	svc := service.NewPlanService(org, nil, nil)

	result, err := svc.PlanDay(context.Background(), "2025-06-15", []string{
		"Write report",
		"Water the plants",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Water the plants"}, result.Gaps)
}

func TestPlanDay_InvalidDate(t *testing.T) {
	svc := service.NewPlanService(&stubOrganizer{}, nil, nil)

	_, err := svc.PlanDay(context.Background(), "15/06/2025", []string{"Write report"})
	assert.Error(t, err)
}

func TestPlanDay_OrganizerError(t *testing.T) {
	boom := errors.New("model unavailable")
	svc := service.NewPlanService(&stubOrganizer{err: boom}, nil, nil)

	_, err := svc.PlanDay(context.Background(), "2025-06-15", []string{"Write report"})
	assert.ErrorIs(t, err, boom)
}
