package organizer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomoplan/internal/llm"
)

// newOrganizerWithCannedResponse spins up a fake model server that always
// returns the given text as the generation result.
func newOrganizerWithCannedResponse(t *testing.T, text string) Organizer {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"model": "llama3.2", "response": text})
	}))
	t.Cleanup(srv.Close)

	cfg := llm.DefaultConfig()
	cfg.Enabled = true
	cfg.Endpoint = srv.URL
	return NewLLMOrganizer(llm.NewOllamaClient(cfg, llm.NoopObserver{}), llm.NoopObserver{})
}

func TestLLMOrganizer_ParsesStories(t *testing.T) {
	canned := "Here you go:\n```json\n" +
		`{"stories":[{"title":"Website","tasks":[{"title":"Design landing page","duration":45,"isFrog":true,"type":"focus"}]}]}` +
		"\n```"
	org := newOrganizerWithCannedResponse(t, canned)

	plan, err := org.Organize(context.Background(), []string{"Design landing page FROG"})
	require.NoError(t, err)
	require.Len(t, plan.Stories, 1)
	require.Len(t, plan.Stories[0].Tasks, 1)

	task := NormalizeTask(plan.Stories[0].Tasks[0])
	assert.True(t, task.IsFrog)
	assert.Equal(t, "focus", string(task.TaskCategory), "legacy type field migrates")
}

func TestLLMOrganizer_MalformedOutput(t *testing.T) {
	org := newOrganizerWithCannedResponse(t, "I could not organize these tasks, sorry.")

	_, err := org.Organize(context.Background(), []string{"Write docs"})
	assert.ErrorIs(t, err, llm.ErrInvalidOutput)
}

func TestLLMOrganizer_EmptyInputSkipsModelCall(t *testing.T) {
	// No server at all: empty input must not reach the client.
	org := NewLLMOrganizer(nil, llm.NoopObserver{})

	plan, err := org.Organize(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, plan.Stories)
}
