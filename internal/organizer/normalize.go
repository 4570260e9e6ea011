package organizer

import (
	"fmt"

	"github.com/google/uuid"

	"pomoplan/internal/domain"
)

// DefaultTaskDuration is assumed when the AI omits a duration entirely.
const DefaultTaskDuration = 30

// splitThreshold is the rounded duration above which a task is flagged for
// splitting into smaller parts. Tasks that are already split parts are exempt.
const splitThreshold = 90

// NormalizeTask reshapes a raw AI task candidate into a canonical Task.
// Legacy field names are migrated, a fresh id is assigned when missing, the
// duration is rounded to a valid schedule block, and advisory break
// suggestions are computed.
func NormalizeTask(raw RawTask) domain.Task {
	migrateLegacyFields(&raw)

	id := domain.CoalesceStr(raw.ID, uuid.New().String())

	category := domain.CategoryFocus
	if domain.ValidTaskCategories[raw.TaskCategory] {
		category = domain.TaskCategory(raw.TaskCategory)
	}

	status := domain.TaskTodo
	switch domain.TaskStatus(raw.Status) {
	case domain.TaskInProgress, domain.TaskCompleted, domain.TaskMitigated:
		status = domain.TaskStatus(raw.Status)
	}

	rawDuration := domain.IntFromPtrWithDefault(DefaultTaskDuration, raw.Duration)
	breaks := append([]domain.SuggestedBreak(nil), raw.SuggestedBreaks...)

	// A duration that is not a block multiple is rounded, and anything past
	// MaxDuration is capped so the task stays schedulable. Either adjustment
	// is recorded as a zero-effect advisory entry so the user can see it.
	duration := domain.RoundToNearestBlock(rawDuration)
	if duration > domain.MaxDuration {
		duration = domain.MaxDuration
	}
	if rawDuration%domain.BlockSize != 0 {
		breaks = append(breaks, domain.SuggestedBreak{
			After:    duration,
			Duration: 0,
			Reason:   fmt.Sprintf("duration rounded from %d to %d minutes", rawDuration, duration),
		})
	} else if rawDuration > domain.MaxDuration {
		breaks = append(breaks, domain.SuggestedBreak{
			After:    duration,
			Duration: 0,
			Reason:   fmt.Sprintf("duration capped from %d to %d minutes", rawDuration, duration),
		})
	}

	if duration >= 60 && len(raw.SuggestedBreaks) == 0 {
		breaks = append(breaks, domain.SuggestedBreak{After: 25, Duration: 5, Reason: "short break"})
		if duration >= 90 {
			breaks = append(breaks, domain.SuggestedBreak{After: 70, Duration: 10, Reason: "long break"})
		}
	}

	return domain.Task{
		ID:              id,
		Title:           raw.Title,
		Duration:        duration,
		IsFrog:          raw.IsFrog,
		TaskCategory:    category,
		ProjectType:     raw.ProjectType,
		IsFlexible:      domain.BoolFromPtrWithDefault(false, raw.IsFlexible),
		SuggestedBreaks: breaks,
		NeedsSplitting:  duration > splitThreshold && !raw.SplitPart,
		SplitPart:       raw.SplitPart,
		Status:          status,
	}
}

// NormalizeStory reshapes a raw AI story candidate into a canonical Story.
// The estimated duration is always recomputed from the normalized task
// durations; any AI-provided total is discarded.
func NormalizeStory(raw RawStory) domain.Story {
	id := domain.CoalesceStr(raw.ID, uuid.New().String())

	storyType := domain.StoryTimeboxed
	switch domain.StoryType(raw.Type) {
	case domain.StoryFlexible, domain.StoryMilestone:
		storyType = domain.StoryType(raw.Type)
	}

	tasks := make([]domain.Task, 0, len(raw.Tasks))
	for _, rt := range raw.Tasks {
		tasks = append(tasks, NormalizeTask(rt))
	}

	story := domain.Story{
		ID:      id,
		Title:   raw.Title,
		Summary: raw.Summary,
		Icon:    raw.Icon,
		Type:    storyType,
		Tasks:   tasks,
	}
	story.EstimatedDuration = story.TaskDurationSum()
	story.RecalcProgress()
	return story
}

// NormalizePlan normalizes every story in a raw plan.
func NormalizePlan(raw *RawPlan) []domain.Story {
	stories := make([]domain.Story, 0, len(raw.Stories))
	for _, rs := range raw.Stories {
		stories = append(stories, NormalizeStory(rs))
	}
	return stories
}
