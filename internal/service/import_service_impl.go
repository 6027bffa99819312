package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/dedatech/workplan/internal/db"
	"github.com/dedatech/workplan/internal/domain"
	"github.com/dedatech/workplan/internal/importer"
	"github.com/dedatech/workplan/internal/repository"
)

// ImportResult holds the outcome of a project import.
type ImportResult struct {
	Project        *domain.Project
	IterationCount int
	TaskCount      int
	LinkCount      int
}

type ImportService interface {
	ImportProject(ctx context.Context, filePath string) (*ImportResult, error)
	ImportProjectFromSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error)
}

type importService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewImportService(uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *importService) ImportProject(ctx context.Context, filePath string) (*ImportResult, error) {
	schema, err := importer.LoadImportSchema(filePath)
	if err != nil {
		return nil, err
	}
	return s.ImportProjectFromSchema(ctx, schema)
}

// ImportProjectFromSchema validates, converts, and persists an import in one
// transaction. A failure anywhere leaves the database untouched.
func (s *importService) ImportProjectFromSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error) {
	if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
		return nil, fmt.Errorf("import validation failed:\n%s", joinErrors(errs))
	}

	bundle, err := importer.Convert(schema)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{
		Project:        bundle.Project,
		IterationCount: len(bundle.Iterations),
		TaskCount:      len(bundle.Tasks),
		LinkCount:      len(bundle.Links),
	}

	err = observe(ctx, s.observer, "project.import",
		map[string]any{"project_id": bundle.Project.ID, "tasks": len(bundle.Tasks)}, func() error {
			return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
				projects := repository.NewSQLiteProjectRepo(tx)
				iterations := repository.NewSQLiteIterationRepo(tx)
				tasks := repository.NewSQLiteTaskRepo(tx)
				links := repository.NewSQLiteTaskLinkRepo(tx)
				members := repository.NewSQLiteMemberRepo(tx)

				if err := projects.Create(ctx, bundle.Project); err != nil {
					return err
				}
				if bundle.Project.ManagerID != "" {
					m := &domain.ProjectMember{
						ProjectID: bundle.Project.ID,
						UserID:    bundle.Project.ManagerID,
						Role:      "manager",
					}
					if err := members.Add(ctx, m); err != nil {
						return err
					}
				}
				for _, it := range bundle.Iterations {
					if err := iterations.Create(ctx, it); err != nil {
						return err
					}
				}
				for _, t := range bundle.Tasks {
					if err := tasks.Create(ctx, t); err != nil {
						return err
					}
				}
				for i := range bundle.Links {
					if err := links.Create(ctx, &bundle.Links[i]); err != nil {
						return err
					}
				}
				return nil
			})
		})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func joinErrors(errs []error) string {
	parts := make([]string, len(errs))
	for i, e := range errs {
		parts[i] = "  - " + e.Error()
	}
	return strings.Join(parts, "\n")
}
