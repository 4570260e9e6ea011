package planner

import (
	"fmt"
	"math"
	"sort"

	"pomoplan/internal/domain"
)

// RescaleStoryDuration proportionally resizes every task in the story so the
// task durations sum to exactly newDuration. Rounding drift is corrected
// deterministically: tasks are visited in descending duration order (stable
// for ties) and absorb one minute each until the sum matches.
func RescaleStoryDuration(story *domain.Story, newDuration int) error {
	if newDuration <= 0 {
		return fmt.Errorf("new duration must be positive, got %d", newDuration)
	}
	if newDuration < len(story.Tasks) {
		return fmt.Errorf("cannot fit %d tasks into %d minutes, each task needs at least one minute",
			len(story.Tasks), newDuration)
	}
	oldDuration := story.TaskDurationSum()
	if oldDuration == 0 {
		return fmt.Errorf("story %q has no task durations to rescale", story.Title)
	}

	factor := float64(newDuration) / float64(oldDuration)
	for i := range story.Tasks {
		scaled := int(math.Round(float64(story.Tasks[i].Duration) * factor))
		if scaled < 1 {
			scaled = 1
		}
		story.Tasks[i].Duration = scaled
	}

	// Largest tasks absorb the residual first.
	order := make([]int, len(story.Tasks))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return story.Tasks[order[a]].Duration > story.Tasks[order[b]].Duration
	})

	drift := newDuration - story.TaskDurationSum()
	for drift != 0 && len(order) > 0 {
		moved := false
		for _, idx := range order {
			if drift == 0 {
				break
			}
			if drift > 0 {
				story.Tasks[idx].Duration++
				drift--
				moved = true
				continue
			}
			if story.Tasks[idx].Duration > 1 {
				story.Tasks[idx].Duration--
				drift++
				moved = true
			}
		}
		if !moved {
			break
		}
	}

	story.EstimatedDuration = story.TaskDurationSum()
	return nil
}
