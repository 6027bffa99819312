package domain

// TaskLink records a task-to-task dependency edge. Links are stored and
// cycle-checked but carry no scheduling propagation semantics.
type TaskLink struct {
	PredecessorID string
	SuccessorID   string
	Kind          LinkKind
}
