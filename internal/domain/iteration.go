package domain

import "time"

// Iteration is a flat child of exactly one project. Iterations never nest;
// a task may belong to zero or one iteration.
type Iteration struct {
	ID           string
	ProjectID    string
	Name         string
	Status       IterationStatus
	PlannedStart *time.Time
	PlannedEnd   *time.Time
	ActualStart  *time.Time
	ActualEnd    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
