package domain

// SuggestedBreak is an advisory break attached to a task. It records where a
// pause would help ("after" minutes into the task) but is not itself part of
// the authoritative schedule; the planner decides whether to honor it.
type SuggestedBreak struct {
	After    int    `json:"after"`
	Duration int    `json:"duration"`
	Reason   string `json:"reason,omitempty"`
}

// Task is the atomic unit of work inside a story.
type Task struct {
	ID              string           `json:"id"`
	Title           string           `json:"title"`
	Duration        int              `json:"duration"` // minutes
	IsFrog          bool             `json:"isFrog"`
	TaskCategory    TaskCategory     `json:"taskCategory"`
	ProjectType     string           `json:"projectType,omitempty"`
	IsFlexible      bool             `json:"isFlexible"`
	SuggestedBreaks []SuggestedBreak `json:"suggestedBreaks,omitempty"`
	NeedsSplitting  bool             `json:"needsSplitting"`
	SplitPart       bool             `json:"splitPart,omitempty"`
	Status          TaskStatus       `json:"status"`
}

// IsTerminal reports whether the task can no longer move to another status
// through timer or board interactions.
func (t *Task) IsTerminal() bool {
	return t.Status == TaskCompleted || t.Status == TaskMitigated
}
