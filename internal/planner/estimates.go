package planner

import (
	"fmt"
	"time"

	"pomoplan/internal/domain"
)

// TimeEstimates is the human-facing summary of a planned session's length.
type TimeEstimates struct {
	TotalTime    string `json:"totalTime"`    // e.g. "4h 35m"
	EstimatedEnd string `json:"estimatedEnd"` // e.g. "5:35 PM"
}

// ComputeTimeEstimates derives display estimates from a total duration and a
// start time. Pure formatting, no side effects.
func ComputeTimeEstimates(totalMin int, start time.Time) TimeEstimates {
	return TimeEstimates{
		TotalTime:    FormatMinutes(totalMin),
		EstimatedEnd: start.Add(time.Duration(totalMin) * time.Minute).Format(time.Kitchen),
	}
}

// FormatMinutes renders minutes as "Xh Ym", omitting zero components.
func FormatMinutes(min int) string {
	if min < 60 {
		return fmt.Sprintf("%dm", min)
	}
	if min%60 == 0 {
		return fmt.Sprintf("%dh", min/60)
	}
	return fmt.Sprintf("%dh %dm", min/60, min%60)
}

// CompletionPercentage reports how much of the session's work is done.
//
// The primary path counts completed tasks across all work timeboxes. When a
// session carries no work-box tasks (archived sessions whose boxes were
// compacted) it falls back to the archive snapshot: the total is inferred as
// incomplete count plus completed story tasks. Mitigated tasks are
// incomplete in both paths; deferring work never raises the percentage.
func CompletionPercentage(s *domain.Session) int {
	total, done := 0, 0
	for _, story := range s.StoryBlocks {
		for _, box := range story.TimeBoxes {
			if box.Type != domain.BoxWork {
				continue
			}
			for _, task := range box.Tasks {
				total++
				if task.Status == domain.TaskCompleted {
					done++
				}
			}
		}
	}

	if total == 0 && s.IncompleteTasks != nil {
		for _, story := range s.StoryBlocks {
			for _, task := range story.Tasks {
				if task.Status == domain.TaskCompleted {
					done++
				}
			}
		}
		total = s.IncompleteTasks.Count + done
	}

	if total == 0 {
		return 0
	}
	return done * 100 / total
}
