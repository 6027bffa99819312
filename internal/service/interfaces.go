package service

import (
	"context"
	"time"

	"github.com/dedatech/workplan/internal/domain"
	"github.com/dedatech/workplan/internal/schedule"
)

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Archive(ctx context.Context, id string) error
	AddMember(ctx context.Context, projectID, userID, role string) error
	RemoveMember(ctx context.Context, projectID, userID string) error
}

type IterationService interface {
	Create(ctx context.Context, it *domain.Iteration) error
	GetByID(ctx context.Context, id string) (*domain.Iteration, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Iteration, error)
	Update(ctx context.Context, it *domain.Iteration) error
	Delete(ctx context.Context, id string) error
}

type TaskService interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error)
	CountByProject(ctx context.Context, projectID string) (int, error)
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id string) error
}

// UserService manages the directory of known users. Display names recorded
// here feed the schedule view through the directory cache.
type UserService interface {
	Register(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// ScheduleService is the facade over the scheduling engine. Every operation
// takes the acting user's ID and authorizes against project membership before
// touching the hierarchy.
type ScheduleService interface {
	GetScheduleTree(ctx context.Context, userID, projectID string, rangeStart, rangeEnd *time.Time) (*schedule.Node, error)
	ReparentTask(ctx context.Context, userID, taskID string, newParentID *string) error
	RescheduleTask(ctx context.Context, userID, taskID string, newStart, newEnd time.Time) error
	TransitionTaskStatus(ctx context.Context, userID, taskID string, requested domain.TaskStatus, overrideStart, overrideEnd *time.Time) (*domain.Task, error)
	CreateTaskLink(ctx context.Context, userID string, link *domain.TaskLink) error
	DeleteTaskLink(ctx context.Context, userID, predecessorID, successorID string) error
	ListTaskLinks(ctx context.Context, userID, taskID string) (predecessors, successors []domain.TaskLink, err error)
}
