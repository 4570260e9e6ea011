package planner

import (
	"sort"
	"time"

	"pomoplan/internal/domain"
)

// DebriefDuration is the review slot appended after every scheduled story.
const DebriefDuration = 5

// longBreakThreshold separates short-break from long-break boxes.
const longBreakThreshold = 10

// BuildSession converts normalized stories into a full-day session: one
// linear, non-overlapping sequence of timeboxes. Work is segmented around
// each task's positive suggested breaks; every non-milestone story ends with
// a debrief box. Milestone stories contribute only a zero-duration marker.
func BuildSession(stories []domain.Story, date string, start time.Time) *domain.Session {
	session := &domain.Session{
		Date:        date,
		Status:      domain.SessionPlanned,
		StoryBlocks: make([]domain.Story, len(stories)),
	}
	copy(session.StoryBlocks, stories)

	for i := range session.StoryBlocks {
		story := &session.StoryBlocks[i]
		if story.Type == domain.StoryMilestone {
			story.TimeBoxes = []domain.TimeBox{{Type: domain.BoxDebrief, Duration: 0}}
			continue
		}

		var boxes []domain.TimeBox
		for _, task := range story.Tasks {
			boxes = append(boxes, taskBoxes(task)...)
		}
		boxes = append(boxes, domain.TimeBox{Type: domain.BoxDebrief, Duration: DebriefDuration})
		story.TimeBoxes = boxes
	}

	propagateTimes(session, start)
	session.RecalcTotals()
	session.Touch(start)
	return session
}

// taskBoxes expands one task into work boxes interleaved with its suggested
// breaks. Zero-duration advisories and offsets outside the task are skipped.
// The task itself rides on the first work segment only, so task counts stay
// exact for progress calculations.
func taskBoxes(task domain.Task) []domain.TimeBox {
	breaks := make([]domain.SuggestedBreak, 0, len(task.SuggestedBreaks))
	for _, b := range task.SuggestedBreaks {
		if b.Duration > 0 && b.After > 0 && b.After < task.Duration {
			breaks = append(breaks, b)
		}
	}
	sort.SliceStable(breaks, func(i, j int) bool { return breaks[i].After < breaks[j].After })

	var boxes []domain.TimeBox
	offset := 0
	for _, b := range breaks {
		if b.After <= offset {
			continue
		}
		boxes = append(boxes, workBox(task, b.After-offset, offset == 0))
		boxes = append(boxes, breakBox(b.Duration))
		offset = b.After
	}
	if offset < task.Duration {
		boxes = append(boxes, workBox(task, task.Duration-offset, offset == 0))
	}
	return boxes
}

func workBox(task domain.Task, duration int, carryTask bool) domain.TimeBox {
	box := domain.TimeBox{Type: domain.BoxWork, Duration: duration}
	if carryTask {
		box.Tasks = []domain.Task{task}
	}
	return box
}

func breakBox(duration int) domain.TimeBox {
	t := domain.BoxShortBreak
	if duration >= longBreakThreshold {
		t = domain.BoxLongBreak
	}
	return domain.TimeBox{Type: t, Duration: duration}
}

// propagateTimes walks every timebox across every story in order, assigning
// start and end estimates so the whole session forms a strict total order.
func propagateTimes(session *domain.Session, start time.Time) {
	cursor := start
	for i := range session.StoryBlocks {
		boxes := session.StoryBlocks[i].TimeBoxes
		for j := range boxes {
			end := cursor.Add(time.Duration(boxes[j].Duration) * time.Minute)
			boxes[j].EstimatedStartTime = cursor.Format(time.RFC3339)
			boxes[j].EstimatedEndTime = end.Format(time.RFC3339)
			cursor = end
		}
	}
}
