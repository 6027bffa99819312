package service

import (
	"context"
	"time"

	"github.com/dedatech/workplan/internal/db"
	"github.com/dedatech/workplan/internal/domain"
	"github.com/dedatech/workplan/internal/repository"
	"github.com/google/uuid"
)

type projectService struct {
	projects repository.ProjectRepo
	members  repository.MemberRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewProjectService(projects repository.ProjectRepo, members repository.MemberRepo, uow db.UnitOfWork, observers ...UseCaseObserver) ProjectService {
	return &projectService{
		projects: projects,
		members:  members,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

// Create persists the project and enrolls its manager as a member in one
// transaction.
func (s *projectService) Create(ctx context.Context, p *domain.Project) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Status == "" {
		p.Status = domain.ProjectNotStarted
	}
	return observe(ctx, s.observer, "project.create", map[string]any{"project_id": p.ID}, func() error {
		return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			if err := repository.NewSQLiteProjectRepo(tx).Create(ctx, p); err != nil {
				return err
			}
			if p.ManagerID == "" {
				return nil
			}
			return repository.NewSQLiteMemberRepo(tx).Add(ctx, &domain.ProjectMember{
				ProjectID: p.ID,
				UserID:    p.ManagerID,
				Role:      "manager",
			})
		})
	})
}

func (s *projectService) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	return s.projects.GetByID(ctx, id)
}

func (s *projectService) List(ctx context.Context, includeArchived bool) ([]*domain.Project, error) {
	return s.projects.List(ctx, includeArchived)
}

func (s *projectService) Update(ctx context.Context, p *domain.Project) error {
	p.UpdatedAt = time.Now().UTC()
	return s.projects.Update(ctx, p)
}

func (s *projectService) Archive(ctx context.Context, id string) error {
	return observe(ctx, s.observer, "project.archive", map[string]any{"project_id": id}, func() error {
		p, err := s.projects.GetByID(ctx, id)
		if err != nil {
			return err
		}
		p.Status = domain.ProjectArchived
		p.UpdatedAt = time.Now().UTC()
		return s.projects.Update(ctx, p)
	})
}

func (s *projectService) AddMember(ctx context.Context, projectID, userID, role string) error {
	if role == "" {
		role = "member"
	}
	return s.members.Add(ctx, &domain.ProjectMember{ProjectID: projectID, UserID: userID, Role: role})
}

func (s *projectService) RemoveMember(ctx context.Context, projectID, userID string) error {
	return s.members.Remove(ctx, projectID, userID)
}
