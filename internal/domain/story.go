package domain

// TimeBox is one scheduled slot inside a story. Tasks are present only on
// work boxes; break and debrief boxes carry just a duration.
type TimeBox struct {
	Type               TimeBoxType `json:"type"`
	Duration           int         `json:"duration"` // minutes
	Tasks              []Task      `json:"tasks,omitempty"`
	EstimatedStartTime string      `json:"estimatedStartTime,omitempty"` // RFC3339
	EstimatedEndTime   string      `json:"estimatedEndTime,omitempty"`   // RFC3339
	Completed          bool        `json:"completed"`
}

// Story is a themed cluster of related tasks scheduled together.
//
// EstimatedDuration always equals the sum of contained task durations; it is
// recomputed by the normalizer and the planner, never edited independently.
type Story struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Summary           string    `json:"summary,omitempty"`
	Icon              string    `json:"icon,omitempty"`
	Type              StoryType `json:"type"`
	EstimatedDuration int       `json:"estimatedDuration"`
	Tasks             []Task    `json:"tasks"`
	TimeBoxes         []TimeBox `json:"timeBoxes,omitempty"`
	Progress          int       `json:"progress"` // 0-100
}

// TaskDurationSum returns the sum of all task durations in minutes.
func (s *Story) TaskDurationSum() int {
	total := 0
	for _, t := range s.Tasks {
		total += t.Duration
	}
	return total
}

// RecalcProgress recomputes Progress from completed vs total tasks.
func (s *Story) RecalcProgress() {
	if len(s.Tasks) == 0 {
		s.Progress = 0
		return
	}
	done := 0
	for _, t := range s.Tasks {
		if t.Status == TaskCompleted {
			done++
		}
	}
	s.Progress = done * 100 / len(s.Tasks)
}
