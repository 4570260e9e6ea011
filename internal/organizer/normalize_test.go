package organizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomoplan/internal/domain"
)

func intPtr(n int) *int { return &n }

func TestNormalizeTask_LegacyFieldMigration(t *testing.T) {
	task := NormalizeTask(RawTask{
		Title:         "Read chapter 4",
		Duration:      intPtr(30),
		LegacyType:    "learning",
		LegacyProject: "studies",
	})

	assert.Equal(t, domain.CategoryLearning, task.TaskCategory)
	assert.Equal(t, "studies", task.ProjectType)
}

func TestNormalizeTask_CanonicalFieldsNotOverwritten(t *testing.T) {
	task := NormalizeTask(RawTask{
		Title:         "Review PR",
		Duration:      intPtr(20),
		TaskCategory:  "review",
		LegacyType:    "focus",
		ProjectType:   "work",
		LegacyProject: "legacy",
	})

	assert.Equal(t, domain.CategoryReview, task.TaskCategory)
	assert.Equal(t, "work", task.ProjectType)
}

func TestNormalizeTask_AssignsIDWhenMissing(t *testing.T) {
	a := NormalizeTask(RawTask{Title: "A", Duration: intPtr(15)})
	b := NormalizeTask(RawTask{Title: "B", Duration: intPtr(15)})

	assert.NotEmpty(t, a.ID)
	assert.NotEmpty(t, b.ID)
	assert.NotEqual(t, a.ID, b.ID)

	keep := NormalizeTask(RawTask{ID: "task-7", Title: "C", Duration: intPtr(15)})
	assert.Equal(t, "task-7", keep.ID)
}

func TestNormalizeTask_RoundsDuration(t *testing.T) {
	task := NormalizeTask(RawTask{Title: "Odd", Duration: intPtr(47)})

	assert.Equal(t, 45, task.Duration)
	require.NotEmpty(t, task.SuggestedBreaks)
	last := task.SuggestedBreaks[len(task.SuggestedBreaks)-1]
	assert.Zero(t, last.Duration, "rounding advisory must be zero-effect")
	assert.Contains(t, last.Reason, "rounded")
}

func TestNormalizeTask_CapsOversizeDuration(t *testing.T) {
	task := NormalizeTask(RawTask{Title: "Marathon", Duration: intPtr(240)})

	assert.Equal(t, domain.MaxDuration, task.Duration)
	assert.True(t, domain.ValidDuration(task.Duration))
	assert.True(t, task.NeedsSplitting, "capped tasks are still over the split threshold")

	var advisory *domain.SuggestedBreak
	for i := range task.SuggestedBreaks {
		if strings.Contains(task.SuggestedBreaks[i].Reason, "capped") {
			advisory = &task.SuggestedBreaks[i]
		}
	}
	require.NotNil(t, advisory, "cap must leave an advisory entry")
	assert.Zero(t, advisory.Duration, "cap advisory must be zero-effect")
	assert.Contains(t, advisory.Reason, "capped from 240 to 180")
}

func TestNormalizeTask_BreakSuggestions(t *testing.T) {
	short := NormalizeTask(RawTask{Title: "Short", Duration: intPtr(45)})
	assert.Empty(t, short.SuggestedBreaks)

	hour := NormalizeTask(RawTask{Title: "Hour", Duration: intPtr(60)})
	require.Len(t, hour.SuggestedBreaks, 1)
	assert.Equal(t, domain.SuggestedBreak{After: 25, Duration: 5, Reason: "short break"}, hour.SuggestedBreaks[0])

	long := NormalizeTask(RawTask{Title: "Long", Duration: intPtr(120)})
	require.Len(t, long.SuggestedBreaks, 2)
	assert.Equal(t, 25, long.SuggestedBreaks[0].After)
	assert.Equal(t, 70, long.SuggestedBreaks[1].After)
	assert.Equal(t, 10, long.SuggestedBreaks[1].Duration)
}

func TestNormalizeTask_ExistingBreaksPreserved(t *testing.T) {
	provided := []domain.SuggestedBreak{{After: 30, Duration: 5, Reason: "coffee"}}
	task := NormalizeTask(RawTask{Title: "Pre-planned", Duration: intPtr(90), SuggestedBreaks: provided})

	assert.Equal(t, provided, task.SuggestedBreaks, "no auto breaks when the AI already suggested some")
}

func TestNormalizeTask_NeedsSplitting(t *testing.T) {
	assert.False(t, NormalizeTask(RawTask{Title: "x", Duration: intPtr(90)}).NeedsSplitting)
	assert.True(t, NormalizeTask(RawTask{Title: "x", Duration: intPtr(95)}).NeedsSplitting)
	assert.False(t, NormalizeTask(RawTask{Title: "x", Duration: intPtr(120), SplitPart: true}).NeedsSplitting,
		"split parts are never re-flagged")
}

func TestNormalizeTask_Defaults(t *testing.T) {
	task := NormalizeTask(RawTask{Title: "No info"})

	assert.Equal(t, DefaultTaskDuration, task.Duration)
	assert.Equal(t, domain.CategoryFocus, task.TaskCategory)
	assert.Equal(t, domain.TaskTodo, task.Status)
	assert.False(t, task.IsFrog)
}

func TestNormalizeStory_DurationIsAuthoritative(t *testing.T) {
	story := NormalizeStory(RawStory{
		Title:             "Morning",
		EstimatedDuration: intPtr(999), // AI-provided total is discarded
		Tasks: []RawTask{
			{Title: "A", Duration: intPtr(30)},
			{Title: "B", Duration: intPtr(47)},
		},
	})

	assert.Equal(t, 30+45, story.EstimatedDuration)
	assert.Equal(t, story.TaskDurationSum(), story.EstimatedDuration)
}

func TestNormalizeStory_TypeDefaultsToTimeboxed(t *testing.T) {
	assert.Equal(t, domain.StoryTimeboxed, NormalizeStory(RawStory{Title: "s"}).Type)
	assert.Equal(t, domain.StoryMilestone, NormalizeStory(RawStory{Title: "s", Type: "milestone"}).Type)
	assert.Equal(t, domain.StoryTimeboxed, NormalizeStory(RawStory{Title: "s", Type: "bogus"}).Type)
}

// Mirrors the end-to-end organization scenario: a frog task, a long task
// with auto breaks and splitting, and an unsized task.
func TestNormalizePlan_Scenario(t *testing.T) {
	plan := &RawPlan{Stories: []RawStory{{
		Title: "Day",
		Tasks: []RawTask{
			{Title: "Design landing page", IsFrog: true, Duration: intPtr(45)},
			{Title: "API integration", Duration: intPtr(120)},
			{Title: "Write docs"},
		},
	}}}

	stories := NormalizePlan(plan)
	require.Len(t, stories, 1)
	tasks := stories[0].Tasks
	require.Len(t, tasks, 3)

	assert.True(t, tasks[0].IsFrog)

	assert.Equal(t, 120, tasks[1].Duration)
	assert.True(t, tasks[1].NeedsSplitting)
	require.Len(t, tasks[1].SuggestedBreaks, 2)
	assert.Equal(t, 25, tasks[1].SuggestedBreaks[0].After)
	assert.Equal(t, 70, tasks[1].SuggestedBreaks[1].After)

	assert.GreaterOrEqual(t, tasks[2].Duration, domain.MinDuration)
	assert.Zero(t, tasks[2].Duration%domain.BlockSize)
}

func TestCheckCoverage(t *testing.T) {
	stories := []domain.Story{{
		Title: "Day",
		Tasks: []domain.Task{
			{Title: "Design landing page"},
			{Title: "API integration"},
		},
	}}

	gaps := CheckCoverage([]string{
		"design landing page FROG",
		"2 hours of API integration",
		"Write docs",
		"   ",
	}, stories)

	require.Len(t, gaps, 1)
	assert.Equal(t, "Write docs", gaps[0])
}

func TestValidateRawPlan(t *testing.T) {
	assert.Error(t, ValidateRawPlan(RawPlan{}))
	assert.Error(t, ValidateRawPlan(RawPlan{Stories: []RawStory{{Title: ""}}}))
	assert.Error(t, ValidateRawPlan(RawPlan{Stories: []RawStory{{Title: "s", Tasks: []RawTask{{Title: "  "}}}}}))
	assert.NoError(t, ValidateRawPlan(RawPlan{Stories: []RawStory{}}))
	assert.NoError(t, ValidateRawPlan(RawPlan{Stories: []RawStory{{Title: "s", Tasks: []RawTask{{Title: "t"}}}}}))
}
