package domain

type TaskCategory string

const (
	CategoryFocus    TaskCategory = "focus"
	CategoryLearning TaskCategory = "learning"
	CategoryReview   TaskCategory = "review"
	CategoryResearch TaskCategory = "research"
	CategoryBreak    TaskCategory = "break"
)

// ValidTaskCategories is the canonical set of accepted task category strings.
var ValidTaskCategories = map[string]bool{
	"focus": true, "learning": true, "review": true,
	"research": true, "break": true,
}

type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in-progress"
	TaskCompleted  TaskStatus = "completed"
	TaskMitigated  TaskStatus = "mitigated"
)

type StoryType string

const (
	StoryTimeboxed StoryType = "timeboxed"
	StoryFlexible  StoryType = "flexible"
	StoryMilestone StoryType = "milestone"
)

type TimeBoxType string

const (
	BoxWork       TimeBoxType = "work"
	BoxShortBreak TimeBoxType = "short-break"
	BoxLongBreak  TimeBoxType = "long-break"
	BoxDebrief    TimeBoxType = "debrief"
)

type SessionStatus string

const (
	SessionPlanned    SessionStatus = "planned"
	SessionInProgress SessionStatus = "in-progress"
	SessionCompleted  SessionStatus = "completed"
	SessionArchived   SessionStatus = "archived"
)
