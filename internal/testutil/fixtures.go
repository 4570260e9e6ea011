package testutil

import (
	"github.com/google/uuid"

	"pomoplan/internal/domain"
)

// Task options
type TaskOption func(*domain.Task)

func WithDuration(minutes int) TaskOption {
	return func(t *domain.Task) {
		t.Duration = minutes
	}
}

func WithFrog() TaskOption {
	return func(t *domain.Task) {
		t.IsFrog = true
	}
}

func WithCategory(c domain.TaskCategory) TaskOption {
	return func(t *domain.Task) {
		t.TaskCategory = c
	}
}

func WithTaskStatus(s domain.TaskStatus) TaskOption {
	return func(t *domain.Task) {
		t.Status = s
	}
}

func WithBreaks(breaks ...domain.SuggestedBreak) TaskOption {
	return func(t *domain.Task) {
		t.SuggestedBreaks = breaks
	}
}

func NewTestTask(title string, opts ...TaskOption) domain.Task {
	t := domain.Task{
		ID:           uuid.New().String(),
		Title:        title,
		Duration:     30,
		TaskCategory: domain.CategoryFocus,
		Status:       domain.TaskTodo,
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

// Story options
type StoryOption func(*domain.Story)

func WithStoryType(st domain.StoryType) StoryOption {
	return func(s *domain.Story) {
		s.Type = st
	}
}

func WithTasks(tasks ...domain.Task) StoryOption {
	return func(s *domain.Story) {
		s.Tasks = tasks
		s.EstimatedDuration = s.TaskDurationSum()
	}
}

func NewTestStory(title string, opts ...StoryOption) domain.Story {
	s := domain.Story{
		ID:    uuid.New().String(),
		Title: title,
		Icon:  "📋",
		Type:  domain.StoryTimeboxed,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Session options
type SessionOption func(*domain.Session)

func WithSessionStatus(s domain.SessionStatus) SessionOption {
	return func(sess *domain.Session) {
		sess.Status = s
	}
}

func WithStories(stories ...domain.Story) SessionOption {
	return func(sess *domain.Session) {
		sess.StoryBlocks = stories
		sess.RecalcTotals()
	}
}

func NewTestSession(date string, opts ...SessionOption) *domain.Session {
	sess := &domain.Session{
		Date:   date,
		Status: domain.SessionPlanned,
	}
	for _, opt := range opts {
		opt(sess)
	}
	return sess
}
