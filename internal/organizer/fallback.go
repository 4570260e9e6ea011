package organizer

import "context"

// fallbackOrganizer builds a plan without a model: every input line becomes
// one task in a single story, with durations left for the normalizer to
// default. Used when the LLM is disabled so planning still works offline.
type fallbackOrganizer struct{}

// NewFallbackOrganizer creates the model-free organizer.
func NewFallbackOrganizer() Organizer {
	return fallbackOrganizer{}
}

func (fallbackOrganizer) Organize(_ context.Context, lines []string) (*RawPlan, error) {
	if len(lines) == 0 {
		return &RawPlan{Stories: []RawStory{}}, nil
	}

	tasks := make([]RawTask, 0, len(lines))
	for _, line := range lines {
		tasks = append(tasks, RawTask{Title: line})
	}
	return &RawPlan{Stories: []RawStory{
		{Title: "Today's tasks", Type: "flexible", Tasks: tasks},
	}}, nil
}
