package domain

import "time"

type Task struct {
	ID          string
	ProjectID   string
	IterationID *string
	ParentID    *string
	Title       string
	Type        string
	Priority    Priority
	AssigneeID  string
	Status      TaskStatus

	PlannedStart *time.Time
	PlannedEnd   *time.Time
	ActualStart  *time.Time
	ActualEnd    *time.Time

	EstimatedHours float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTopLevel reports whether the task has no parent task.
func (t *Task) IsTopLevel() bool {
	return t.ParentID == nil
}

// IsOrphan reports whether the task is top-level and has no iteration
// assignment. Orphans are appended after iteration subtrees in the
// schedule view.
func (t *Task) IsOrphan() bool {
	return t.ParentID == nil && t.IterationID == nil
}
