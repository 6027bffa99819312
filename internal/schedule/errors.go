package schedule

import "errors"

// Validation failures carry a distinguishing sentinel so the facade can map
// them to its public error taxonomy without string matching. Missing
// project/task/parent lookups surface repository.ErrNotFound instead.
var (
	ErrInvalidRange         = errors.New("planned end is before planned start")
	ErrSelfParent           = errors.New("task cannot be its own parent")
	ErrCrossProject         = errors.New("parent task belongs to a different project")
	ErrCycleDetected        = errors.New("operation would create a cycle in the task hierarchy")
	ErrDateOutOfParentRange = errors.New("planned dates fall outside the parent's planned range")
)
