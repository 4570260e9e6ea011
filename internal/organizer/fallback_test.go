package organizer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackOrganizer(t *testing.T) {
	org := NewFallbackOrganizer()

	plan, err := org.Organize(context.Background(), []string{"Write report", "Review PRs"})
	require.NoError(t, err)
	require.Len(t, plan.Stories, 1)
	assert.Equal(t, "Today's tasks", plan.Stories[0].Title)
	require.Len(t, plan.Stories[0].Tasks, 2)

	stories := NormalizePlan(plan)
	require.Len(t, stories, 1)
	assert.Equal(t, 60, stories[0].EstimatedDuration, "unsized tasks default to 30 minutes each")
}

func TestFallbackOrganizer_Empty(t *testing.T) {
	org := NewFallbackOrganizer()

	plan, err := org.Organize(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, plan.Stories)
}
