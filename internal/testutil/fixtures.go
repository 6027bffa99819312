package testutil

import (
	"sync/atomic"
	"time"

	"github.com/dedatech/workplan/internal/domain"
	"github.com/google/uuid"
)

var fixtureSeq atomic.Int64

var fixtureBase = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// nextCreatedAt hands out strictly increasing timestamps so fixtures keep a
// deterministic creation order (list queries order by created_at).
func nextCreatedAt() time.Time {
	return fixtureBase.Add(time.Duration(fixtureSeq.Add(1)) * time.Second)
}

// Date builds a whole-day UTC date, the normalization used for all
// planned/actual dates.
func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Project options

type ProjectOption func(*domain.Project)

func WithProjectStatus(s domain.ProjectStatus) ProjectOption {
	return func(p *domain.Project) {
		p.Status = s
	}
}

func WithProjectManager(userID string) ProjectOption {
	return func(p *domain.Project) {
		p.ManagerID = userID
	}
}

func WithProjectPlannedRange(start, end time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.PlannedStart = &start
		p.PlannedEnd = &end
	}
}

func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	now := nextCreatedAt()
	p := &domain.Project{
		ID:        uuid.New().String(),
		Name:      name,
		Status:    domain.ProjectInProgress,
		ManagerID: "mgr-1",
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Iteration options

type IterationOption func(*domain.Iteration)

func WithIterationStatus(s domain.IterationStatus) IterationOption {
	return func(it *domain.Iteration) {
		it.Status = s
	}
}

func WithIterationPlannedRange(start, end time.Time) IterationOption {
	return func(it *domain.Iteration) {
		it.PlannedStart = &start
		it.PlannedEnd = &end
	}
}

func NewTestIteration(projectID, name string, opts ...IterationOption) *domain.Iteration {
	now := nextCreatedAt()
	it := &domain.Iteration{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Name:      name,
		Status:    domain.IterationNotStarted,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(it)
	}
	return it
}

// Task options

type TaskOption func(*domain.Task)

func WithTaskIteration(iterationID string) TaskOption {
	return func(t *domain.Task) {
		t.IterationID = &iterationID
	}
}

func WithTaskParent(parentID string) TaskOption {
	return func(t *domain.Task) {
		t.ParentID = &parentID
	}
}

func WithTaskStatus(s domain.TaskStatus) TaskOption {
	return func(t *domain.Task) {
		t.Status = s
	}
}

func WithTaskPriority(p domain.Priority) TaskOption {
	return func(t *domain.Task) {
		t.Priority = p
	}
}

func WithTaskAssignee(userID string) TaskOption {
	return func(t *domain.Task) {
		t.AssigneeID = userID
	}
}

func WithTaskPlannedRange(start, end time.Time) TaskOption {
	return func(t *domain.Task) {
		t.PlannedStart = &start
		t.PlannedEnd = &end
	}
}

func WithTaskActualRange(start, end *time.Time) TaskOption {
	return func(t *domain.Task) {
		t.ActualStart = start
		t.ActualEnd = end
	}
}

func WithTaskEstimate(hours float64) TaskOption {
	return func(t *domain.Task) {
		t.EstimatedHours = hours
	}
}

func NewTestTask(projectID, title string, opts ...TaskOption) *domain.Task {
	now := nextCreatedAt()
	task := &domain.Task{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Title:     title,
		Type:      "task",
		Priority:  domain.PriorityMedium,
		Status:    domain.TaskTodo,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(task)
	}
	return task
}

// NewTestUser creates a user row for display-name resolution tests.
func NewTestUser(id, displayName string) *domain.User {
	return &domain.User{ID: id, DisplayName: displayName}
}
