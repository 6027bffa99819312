package repository

import (
	"context"
	"time"

	"github.com/dedatech/workplan/internal/domain"
)

// ProjectRepo is the persistence contract for projects. Projects are never
// deleted by the scheduling engine.
type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
}

type IterationRepo interface {
	Create(ctx context.Context, it *domain.Iteration) error
	GetByID(ctx context.Context, id string) (*domain.Iteration, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Iteration, error)
	Update(ctx context.Context, it *domain.Iteration) error
	Delete(ctx context.Context, id string) error
}

// TaskRepo is the hierarchy store for tasks. The partial-update methods
// (UpdateParent, UpdateDates, UpdateStatusAndDates) each write a single row
// atomically; the engine validates before calling any of them.
type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error)
	CountByProject(ctx context.Context, projectID string) (int, error)
	Update(ctx context.Context, t *domain.Task) error
	UpdateParent(ctx context.Context, id string, parentID *string) error
	UpdateDates(ctx context.Context, id string, start, end time.Time) error
	UpdateStatusAndDates(ctx context.Context, id string, status domain.TaskStatus, actualStart, actualEnd *time.Time) error
	Delete(ctx context.Context, id string) error
}

type TaskLinkRepo interface {
	Create(ctx context.Context, l *domain.TaskLink) error
	Delete(ctx context.Context, predecessorID, successorID string) error
	ListByProject(ctx context.Context, projectID string) ([]domain.TaskLink, error)
	ListPredecessors(ctx context.Context, taskID string) ([]domain.TaskLink, error)
	ListSuccessors(ctx context.Context, taskID string) ([]domain.TaskLink, error)
}

type UserRepo interface {
	Upsert(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

type MemberRepo interface {
	Add(ctx context.Context, m *domain.ProjectMember) error
	Remove(ctx context.Context, projectID, userID string) error
	IsMember(ctx context.Context, projectID, userID string) (bool, error)
	ListByProject(ctx context.Context, projectID string) ([]domain.ProjectMember, error)
}
