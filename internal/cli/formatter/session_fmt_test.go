package formatter_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"pomoplan/internal/cli/formatter"
	"pomoplan/internal/domain"
	"pomoplan/internal/planner"
	"pomoplan/internal/testutil"
)

func TestFormatSessionList_Empty(t *testing.T) {
	out := formatter.FormatSessionList(nil)
	assert.Contains(t, out, "No sessions yet")
}

func TestFormatSessionList(t *testing.T) {
	sessions := []*domain.Session{
		testutil.NewTestSession("2025-06-15",
			testutil.WithStories(testutil.NewTestStory("Focus",
				testutil.WithTasks(testutil.NewTestTask("Write report", testutil.WithDuration(45))),
			)),
		),
	}

	out := formatter.FormatSessionList(sessions)
	assert.Contains(t, out, "2025-06-15")
	assert.Contains(t, out, "planned")
	assert.Contains(t, out, "45m")
}

func TestFormatSessionDetail(t *testing.T) {
	start := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)
	stories := []domain.Story{
		testutil.NewTestStory("Morning block",
			testutil.WithTasks(
				testutil.NewTestTask("Eat the frog", testutil.WithFrog(), testutil.WithDuration(25)),
				testutil.NewTestTask("Review PRs", testutil.WithDuration(30)),
			),
		),
	}
	session := planner.BuildSession(stories, "2025-06-15", start)
	estimates := planner.ComputeTimeEstimates(session.TotalDuration, start)

	out := formatter.FormatSessionDetail(session, estimates)
	assert.Contains(t, out, "2025-06-15")
	assert.Contains(t, out, "Morning block")
	assert.Contains(t, out, "🐸 Eat the frog")
	assert.Contains(t, out, "09:00–09:25")
	assert.Contains(t, out, "debrief")
	assert.Contains(t, out, "1h")
}

func TestFormatCoverageGaps(t *testing.T) {
	assert.Empty(t, formatter.FormatCoverageGaps(nil))

	out := formatter.FormatCoverageGaps([]string{"Water the plants"})
	assert.Contains(t, out, "Water the plants")
	assert.Contains(t, out, "missing")
}

func TestRenderProgress(t *testing.T) {
	out := formatter.RenderProgress(0.5, 10)
	assert.Contains(t, out, "50%")
	assert.Contains(t, out, "█████")
}
