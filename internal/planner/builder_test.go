package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomoplan/internal/domain"
)

var planStart = time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)

func buildStories() []domain.Story {
	return []domain.Story{
		{
			ID:    "story-1",
			Title: "Deep work",
			Type:  domain.StoryTimeboxed,
			Tasks: []domain.Task{
				{
					ID: "t1", Title: "API integration", Duration: 120,
					SuggestedBreaks: []domain.SuggestedBreak{
						{After: 25, Duration: 5},
						{After: 70, Duration: 10},
					},
				},
				{ID: "t2", Title: "Code review", Duration: 30},
			},
		},
		{
			ID:    "story-2",
			Title: "Ship v1",
			Type:  domain.StoryMilestone,
		},
	}
}

func TestBuildSession_BoxSequence(t *testing.T) {
	s := BuildSession(buildStories(), "2025-06-15", planStart)

	require.Len(t, s.StoryBlocks, 2)
	boxes := s.StoryBlocks[0].TimeBoxes

	types := make([]domain.TimeBoxType, len(boxes))
	durations := make([]int, len(boxes))
	for i, b := range boxes {
		types[i] = b.Type
		durations[i] = b.Duration
	}

	// 120min task split at 25 and 70, then the 30min task, then debrief.
	assert.Equal(t, []domain.TimeBoxType{
		domain.BoxWork, domain.BoxShortBreak,
		domain.BoxWork, domain.BoxLongBreak,
		domain.BoxWork,
		domain.BoxWork,
		domain.BoxDebrief,
	}, types)
	assert.Equal(t, []int{25, 5, 45, 10, 50, 30, DebriefDuration}, durations)

	// The split task rides only its first segment.
	require.Len(t, boxes[0].Tasks, 1)
	assert.Equal(t, "t1", boxes[0].Tasks[0].ID)
	assert.Empty(t, boxes[2].Tasks)
	assert.Empty(t, boxes[4].Tasks)
	require.Len(t, boxes[5].Tasks, 1)
	assert.Equal(t, "t2", boxes[5].Tasks[0].ID)
}

func TestBuildSession_MilestoneMarker(t *testing.T) {
	s := BuildSession(buildStories(), "2025-06-15", planStart)

	boxes := s.StoryBlocks[1].TimeBoxes
	require.Len(t, boxes, 1)
	assert.Equal(t, domain.BoxDebrief, boxes[0].Type)
	assert.Zero(t, boxes[0].Duration)
}

func TestBuildSession_TimePropagation(t *testing.T) {
	s := BuildSession(buildStories(), "2025-06-15", planStart)

	cursor := planStart
	for _, story := range s.StoryBlocks {
		for _, box := range story.TimeBoxes {
			start, err := time.Parse(time.RFC3339, box.EstimatedStartTime)
			require.NoError(t, err)
			end, err := time.Parse(time.RFC3339, box.EstimatedEndTime)
			require.NoError(t, err)

			assert.True(t, start.Equal(cursor), "box must start where the previous one ended")
			assert.True(t, end.Equal(start.Add(time.Duration(box.Duration)*time.Minute)))
			cursor = end
		}
	}
}

func TestBuildSession_Totals(t *testing.T) {
	s := BuildSession(buildStories(), "2025-06-15", planStart)

	assert.Equal(t, domain.SessionPlanned, s.Status)
	assert.Equal(t, 150, s.StoryBlocks[0].EstimatedDuration)
	assert.Equal(t, 150, s.TotalDuration)
	assert.NotEmpty(t, s.LastUpdated)
}

func TestBuildSession_ZeroEffectBreaksIgnored(t *testing.T) {
	stories := []domain.Story{{
		Title: "S",
		Type:  domain.StoryTimeboxed,
		Tasks: []domain.Task{{
			ID: "t", Title: "Rounded", Duration: 45,
			SuggestedBreaks: []domain.SuggestedBreak{
				{After: 45, Duration: 0, Reason: "duration rounded from 47 to 45 minutes"},
			},
		}},
	}}

	s := BuildSession(stories, "2025-06-15", planStart)
	boxes := s.StoryBlocks[0].TimeBoxes
	require.Len(t, boxes, 2) // one work box + debrief
	assert.Equal(t, 45, boxes[0].Duration)
}
