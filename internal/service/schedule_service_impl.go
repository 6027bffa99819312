package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dedatech/workplan/internal/domain"
	"github.com/dedatech/workplan/internal/repository"
	"github.com/dedatech/workplan/internal/schedule"
)

type scheduleService struct {
	tasks     repository.TaskRepo
	links     repository.TaskLinkRepo
	validator *schedule.Validator
	builder   *schedule.Builder
	auth      Authorizer
	clock     schedule.Clock
	observer  UseCaseObserver
}

// NewScheduleService assembles the scheduling facade. A nil clock defaults to
// time.Now.
func NewScheduleService(
	tasks repository.TaskRepo,
	links repository.TaskLinkRepo,
	validator *schedule.Validator,
	builder *schedule.Builder,
	auth Authorizer,
	clock schedule.Clock,
	observers ...UseCaseObserver,
) ScheduleService {
	if clock == nil {
		clock = time.Now
	}
	return &scheduleService{
		tasks:     tasks,
		links:     links,
		validator: validator,
		builder:   builder,
		auth:      auth,
		clock:     clock,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *scheduleService) GetScheduleTree(ctx context.Context, userID, projectID string, rangeStart, rangeEnd *time.Time) (*schedule.Node, error) {
	var root *schedule.Node
	err := observe(ctx, s.observer, "schedule.tree", map[string]any{"project_id": projectID}, func() error {
		if err := s.auth.CheckProjectAccess(ctx, userID, projectID); err != nil {
			return err
		}
		var err error
		root, err = s.builder.Build(ctx, projectID, rangeStart, rangeEnd)
		return err
	})
	if err != nil {
		return nil, err
	}
	return root, nil
}

func (s *scheduleService) ReparentTask(ctx context.Context, userID, taskID string, newParentID *string) error {
	return observe(ctx, s.observer, "schedule.reparent", map[string]any{"task_id": taskID}, func() error {
		task, err := s.tasks.GetByID(ctx, taskID)
		if err != nil {
			return err
		}
		if err := s.auth.CheckProjectAccess(ctx, userID, task.ProjectID); err != nil {
			return err
		}
		if err := s.validator.ValidateReparent(ctx, taskID, newParentID); err != nil {
			return fmt.Errorf("reparenting task %s: %w", taskID, err)
		}
		return s.tasks.UpdateParent(ctx, taskID, newParentID)
	})
}

func (s *scheduleService) RescheduleTask(ctx context.Context, userID, taskID string, newStart, newEnd time.Time) error {
	return observe(ctx, s.observer, "schedule.reschedule", map[string]any{"task_id": taskID}, func() error {
		task, err := s.tasks.GetByID(ctx, taskID)
		if err != nil {
			return err
		}
		if err := s.auth.CheckProjectAccess(ctx, userID, task.ProjectID); err != nil {
			return err
		}
		if err := s.validator.ValidateReschedule(ctx, taskID, newStart, newEnd); err != nil {
			return fmt.Errorf("rescheduling task %s: %w", taskID, err)
		}
		return s.tasks.UpdateDates(ctx, taskID, domain.DateOnly(newStart), domain.DateOnly(newEnd))
	})
}

func (s *scheduleService) TransitionTaskStatus(ctx context.Context, userID, taskID string, requested domain.TaskStatus, overrideStart, overrideEnd *time.Time) (*domain.Task, error) {
	var updated *domain.Task
	err := observe(ctx, s.observer, "schedule.transition",
		map[string]any{"task_id": taskID, "requested": string(requested)}, func() error {
			if !domain.ValidTaskStatuses[string(requested)] {
				return fmt.Errorf("status %q: %w", requested, ErrInvalidStatus)
			}
			task, err := s.tasks.GetByID(ctx, taskID)
			if err != nil {
				return err
			}
			if err := s.auth.CheckProjectAccess(ctx, userID, task.ProjectID); err != nil {
				return err
			}

			res := schedule.ApplyStatusTransition(schedule.TransitionInput{
				Current:       task.Status,
				Requested:     requested,
				ActualStart:   task.ActualStart,
				ActualEnd:     task.ActualEnd,
				OverrideStart: overrideStart,
				OverrideEnd:   overrideEnd,
			}, s.clock())
			if err := s.tasks.UpdateStatusAndDates(ctx, taskID, res.Status, res.ActualStart, res.ActualEnd); err != nil {
				return err
			}
			updated, err = s.tasks.GetByID(ctx, taskID)
			return err
		})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *scheduleService) CreateTaskLink(ctx context.Context, userID string, link *domain.TaskLink) error {
	return observe(ctx, s.observer, "schedule.link_create",
		map[string]any{"predecessor": link.PredecessorID, "successor": link.SuccessorID}, func() error {
			pred, err := s.tasks.GetByID(ctx, link.PredecessorID)
			if err != nil {
				return fmt.Errorf("resolving predecessor %s: %w", link.PredecessorID, err)
			}
			if err := s.auth.CheckProjectAccess(ctx, userID, pred.ProjectID); err != nil {
				return err
			}
			if err := s.validator.ValidateLink(ctx, link.PredecessorID, link.SuccessorID); err != nil {
				return fmt.Errorf("linking %s -> %s: %w", link.PredecessorID, link.SuccessorID, err)
			}
			if link.Kind == "" {
				link.Kind = domain.LinkFinishToStart
			}
			return s.links.Create(ctx, link)
		})
}

func (s *scheduleService) ListTaskLinks(ctx context.Context, userID, taskID string) ([]domain.TaskLink, []domain.TaskLink, error) {
	var preds, succs []domain.TaskLink
	err := observe(ctx, s.observer, "schedule.link_list", map[string]any{"task_id": taskID}, func() error {
		task, err := s.tasks.GetByID(ctx, taskID)
		if err != nil {
			return err
		}
		if err := s.auth.CheckProjectAccess(ctx, userID, task.ProjectID); err != nil {
			return err
		}
		if preds, err = s.links.ListPredecessors(ctx, taskID); err != nil {
			return err
		}
		succs, err = s.links.ListSuccessors(ctx, taskID)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return preds, succs, nil
}

func (s *scheduleService) DeleteTaskLink(ctx context.Context, userID, predecessorID, successorID string) error {
	return observe(ctx, s.observer, "schedule.link_delete",
		map[string]any{"predecessor": predecessorID, "successor": successorID}, func() error {
			pred, err := s.tasks.GetByID(ctx, predecessorID)
			if err != nil {
				return fmt.Errorf("resolving predecessor %s: %w", predecessorID, err)
			}
			if err := s.auth.CheckProjectAccess(ctx, userID, pred.ProjectID); err != nil {
				return err
			}
			return s.links.Delete(ctx, predecessorID, successorID)
		})
}
