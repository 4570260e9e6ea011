package organizer

import (
	"context"
	"fmt"
	"strings"

	"pomoplan/internal/llm"
)

// Organizer groups, estimates and prioritizes raw task text into story
// candidates. Implementations talk to an external model; the rest of the
// system only sees RawPlan.
type Organizer interface {
	Organize(ctx context.Context, lines []string) (*RawPlan, error)
}

type llmOrganizer struct {
	client   llm.Client
	observer llm.Observer
}

// NewLLMOrganizer creates an Organizer backed by an LLM client.
func NewLLMOrganizer(client llm.Client, observer llm.Observer) Organizer {
	return &llmOrganizer{client: client, observer: observer}
}

func (o *llmOrganizer) Organize(ctx context.Context, lines []string) (*RawPlan, error) {
	if len(lines) == 0 {
		return &RawPlan{Stories: []RawStory{}}, nil
	}

	resp, err := o.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskOrganize,
		SystemPrompt: organizeSystemPrompt,
		UserPrompt:   buildOrganizePrompt(lines),
	})
	if err != nil {
		return nil, fmt.Errorf("organizing tasks: %w", err)
	}

	plan, err := llm.ExtractJSON[RawPlan](resp.Text, ValidateRawPlan)
	if err != nil {
		return nil, fmt.Errorf("extracting organized plan: %w", err)
	}
	return &plan, nil
}

func buildOrganizePrompt(lines []string) string {
	var b strings.Builder
	b.WriteString("Organize these tasks into stories:\n\n")
	for _, line := range lines {
		b.WriteString("- ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
