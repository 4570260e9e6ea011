package organizer

import (
	"fmt"
	"strings"

	"pomoplan/internal/domain"
)

// RawPlan is the top-level shape returned by the task organizer collaborator.
type RawPlan struct {
	Stories []RawStory `json:"stories"`
}

// RawStory is a story candidate as produced by the AI. Field names may use
// either the legacy or the canonical vocabulary; migrateLegacyFields is the
// single place where the legacy shape is tolerated.
type RawStory struct {
	ID                string    `json:"id,omitempty"`
	Title             string    `json:"title"`
	Summary           string    `json:"summary,omitempty"`
	Icon              string    `json:"icon,omitempty"`
	Type              string    `json:"type,omitempty"`
	EstimatedDuration *int      `json:"estimatedDuration,omitempty"`
	Tasks             []RawTask `json:"tasks"`
}

// RawTask is a task candidate as produced by the AI.
type RawTask struct {
	ID       string `json:"id,omitempty"`
	Title    string `json:"title"`
	Duration *int   `json:"duration,omitempty"`
	IsFrog   bool   `json:"isFrog,omitempty"`

	// Canonical field names.
	TaskCategory string `json:"taskCategory,omitempty"`
	ProjectType  string `json:"projectType,omitempty"`

	// Legacy field names, still emitted by older prompt versions.
	LegacyType    string `json:"type,omitempty"`
	LegacyProject string `json:"project,omitempty"`

	IsFlexible      *bool                   `json:"isFlexible,omitempty"`
	SuggestedBreaks []domain.SuggestedBreak `json:"suggestedBreaks,omitempty"`
	SplitPart       bool                    `json:"splitPart,omitempty"`
	Status          string                  `json:"status,omitempty"`
}

// migrateLegacyFields maps legacy field names onto their canonical
// counterparts without overwriting already-canonical values. Downstream code
// only ever sees the canonical fields.
func migrateLegacyFields(t *RawTask) {
	if t.TaskCategory == "" && t.LegacyType != "" {
		t.TaskCategory = t.LegacyType
	}
	if t.ProjectType == "" && t.LegacyProject != "" {
		t.ProjectType = t.LegacyProject
	}
	t.LegacyType = ""
	t.LegacyProject = ""
}

// ValidateRawPlan is the schema validator applied to extracted LLM output.
func ValidateRawPlan(p RawPlan) error {
	if p.Stories == nil {
		return fmt.Errorf("missing stories array")
	}
	for i, s := range p.Stories {
		if strings.TrimSpace(s.Title) == "" {
			return fmt.Errorf("story %d has no title", i)
		}
		for j, task := range s.Tasks {
			if strings.TrimSpace(task.Title) == "" {
				return fmt.Errorf("story %d task %d has no title", i, j)
			}
		}
	}
	return nil
}
