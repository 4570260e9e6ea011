package domain

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-date key format for sessions.
const DateLayout = "2006-01-02"

// IncompleteTask is one entry in the archive-time snapshot of work that was
// not finished during the session.
type IncompleteTask struct {
	Title      string `json:"title"`
	StoryTitle string `json:"storyTitle"`
	Duration   int    `json:"duration"`
	Mitigated  bool   `json:"mitigated"`
	RolledOver bool   `json:"rolledOver"`
}

// IncompleteTasksSnapshot is computed once, when a session is archived.
type IncompleteTasksSnapshot struct {
	Count int              `json:"count"`
	Tasks []IncompleteTask `json:"tasks"`
}

// Session is the full day's schedule, keyed by calendar date. It is the unit
// of persistence and sync: one session per date per user.
type Session struct {
	Date            string                   `json:"date"` // YYYY-MM-DD
	Status          SessionStatus            `json:"status"`
	StoryBlocks     []Story                  `json:"storyBlocks"`
	TotalDuration   int                      `json:"totalDuration"`
	LastUpdated     string                   `json:"lastUpdated"` // RFC3339
	IncompleteTasks *IncompleteTasksSnapshot `json:"incompleteTasks,omitempty"`
}

// ValidDate reports whether s is a well-formed YYYY-MM-DD calendar date.
func ValidDate(s string) bool {
	t, err := time.Parse(DateLayout, s)
	return err == nil && t.Format(DateLayout) == s
}

// Touch updates LastUpdated to now.
func (s *Session) Touch(now time.Time) {
	s.LastUpdated = now.UTC().Format(time.RFC3339)
}

// Start moves a planned session into progress. Planned sessions are gated
// behind this explicit confirmation before they become editable.
func (s *Session) Start(now time.Time) error {
	if s.Status != SessionPlanned {
		return fmt.Errorf("cannot start session in status %q", s.Status)
	}
	s.Status = SessionInProgress
	s.Touch(now)
	return nil
}

// Complete marks an in-progress session as finished.
func (s *Session) Complete(now time.Time) error {
	switch s.Status {
	case SessionInProgress, SessionPlanned:
		s.Status = SessionCompleted
		s.Touch(now)
		return nil
	default:
		return fmt.Errorf("cannot complete session in status %q", s.Status)
	}
}

// Archive moves the session to its terminal state and computes the
// incomplete-task snapshot. Archived sessions accept no further task
// mutation; only deletion remains possible.
func (s *Session) Archive(now time.Time) error {
	if s.Status == SessionArchived {
		return fmt.Errorf("session %s is already archived", s.Date)
	}
	snapshot := &IncompleteTasksSnapshot{}
	for _, story := range s.StoryBlocks {
		for _, task := range story.Tasks {
			if task.Status == TaskCompleted {
				continue
			}
			snapshot.Tasks = append(snapshot.Tasks, IncompleteTask{
				Title:      task.Title,
				StoryTitle: story.Title,
				Duration:   task.Duration,
				Mitigated:  task.Status == TaskMitigated,
				RolledOver: false,
			})
		}
	}
	snapshot.Count = len(snapshot.Tasks)
	s.IncompleteTasks = snapshot
	s.Status = SessionArchived
	s.Touch(now)
	return nil
}

// Mutable reports whether task-state mutations are still allowed.
func (s *Session) Mutable() bool {
	return s.Status != SessionArchived
}

// RecalcTotals recomputes every story's estimated duration and the session
// total from the contained task durations.
func (s *Session) RecalcTotals() {
	total := 0
	for i := range s.StoryBlocks {
		s.StoryBlocks[i].EstimatedDuration = s.StoryBlocks[i].TaskDurationSum()
		total += s.StoryBlocks[i].EstimatedDuration
	}
	s.TotalDuration = total
}
