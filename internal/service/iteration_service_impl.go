package service

import (
	"context"
	"time"

	"github.com/dedatech/workplan/internal/domain"
	"github.com/dedatech/workplan/internal/repository"
	"github.com/google/uuid"
)

type iterationService struct {
	iterations repository.IterationRepo
	projects   repository.ProjectRepo
}

func NewIterationService(iterations repository.IterationRepo, projects repository.ProjectRepo) IterationService {
	return &iterationService{iterations: iterations, projects: projects}
}

func (s *iterationService) Create(ctx context.Context, it *domain.Iteration) error {
	// Fail early with a clear not-found instead of an FK violation.
	if _, err := s.projects.GetByID(ctx, it.ProjectID); err != nil {
		return err
	}
	if it.ID == "" {
		it.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	it.CreatedAt = now
	it.UpdatedAt = now
	if it.Status == "" {
		it.Status = domain.IterationNotStarted
	}
	return s.iterations.Create(ctx, it)
}

func (s *iterationService) GetByID(ctx context.Context, id string) (*domain.Iteration, error) {
	return s.iterations.GetByID(ctx, id)
}

func (s *iterationService) ListByProject(ctx context.Context, projectID string) ([]*domain.Iteration, error) {
	return s.iterations.ListByProject(ctx, projectID)
}

func (s *iterationService) Update(ctx context.Context, it *domain.Iteration) error {
	it.UpdatedAt = time.Now().UTC()
	return s.iterations.Update(ctx, it)
}

func (s *iterationService) Delete(ctx context.Context, id string) error {
	return s.iterations.Delete(ctx, id)
}
