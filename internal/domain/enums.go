package domain

type ProjectStatus string

const (
	ProjectNotStarted ProjectStatus = "not_started"
	ProjectInProgress ProjectStatus = "in_progress"
	ProjectSuspended  ProjectStatus = "suspended"
	ProjectArchived   ProjectStatus = "archived"
)

type IterationStatus string

const (
	IterationNotStarted IterationStatus = "not_started"
	IterationInProgress IterationStatus = "in_progress"
	IterationCompleted  IterationStatus = "completed"
)

// TaskStatus values are stored uppercase, matching the wire format used by
// API clients.
type TaskStatus string

const (
	TaskTodo       TaskStatus = "TODO"
	TaskInProgress TaskStatus = "IN_PROGRESS"
	TaskDone       TaskStatus = "DONE"
)

type Priority string

const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

// ValidTaskStatuses is the canonical set of accepted task status strings.
var ValidTaskStatuses = map[string]bool{
	"TODO": true, "IN_PROGRESS": true, "DONE": true,
}

// ValidTaskTypes is the canonical set of accepted task type strings.
var ValidTaskTypes = map[string]bool{
	"feature": true, "bug": true, "chore": true,
	"research": true, "design": true, "task": true,
}

type LinkKind string

const (
	LinkFinishToStart  LinkKind = "finish_to_start"
	LinkStartToStart   LinkKind = "start_to_start"
	LinkFinishToFinish LinkKind = "finish_to_finish"
)
