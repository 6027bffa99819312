package importer

import (
	"fmt"
	"time"

	"github.com/dedatech/workplan/internal/domain"
	"github.com/google/uuid"
)

// ImportBundle holds a fully converted project ready for persistence.
type ImportBundle struct {
	Project    *domain.Project
	Iterations []*domain.Iteration
	Tasks      []*domain.Task
	Links      []domain.TaskLink
}

// Convert transforms a validated ImportSchema into domain objects ready for
// persistence. Call ValidateImportSchema first; Convert assumes the schema is
// valid. Entities get strictly increasing creation timestamps so list queries
// preserve file order.
func Convert(schema *ImportSchema) (*ImportBundle, error) {
	now := time.Now().UTC()
	seq := 0
	nextCreatedAt := func() time.Time {
		seq++
		return now.Add(time.Duration(seq) * time.Second)
	}

	status := domain.ProjectStatus(schema.Project.Status)
	if status == "" {
		status = domain.ProjectNotStarted
	}
	project := &domain.Project{
		ID:           uuid.New().String(),
		Name:         schema.Project.Name,
		Status:       status,
		ManagerID:    schema.Project.ManagerID,
		PlannedStart: parseOptionalDate(schema.Project.PlannedStart),
		PlannedEnd:   parseOptionalDate(schema.Project.PlannedEnd),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	iterRefs := make(map[string]string)
	iterations := make([]*domain.Iteration, 0, len(schema.Iterations))
	for _, it := range schema.Iterations {
		realID := uuid.New().String()
		iterRefs[it.Ref] = realID

		itStatus := domain.IterationStatus(it.Status)
		if itStatus == "" {
			itStatus = domain.IterationNotStarted
		}
		created := nextCreatedAt()
		iterations = append(iterations, &domain.Iteration{
			ID:           realID,
			ProjectID:    project.ID,
			Name:         it.Name,
			Status:       itStatus,
			PlannedStart: parseOptionalDate(it.PlannedStart),
			PlannedEnd:   parseOptionalDate(it.PlannedEnd),
			CreatedAt:    created,
			UpdatedAt:    created,
		})
	}

	taskRefs := make(map[string]string)
	tasks := make([]*domain.Task, 0, len(schema.Tasks))
	for _, t := range schema.Tasks {
		realID := uuid.New().String()
		taskRefs[t.Ref] = realID

		var iterationID *string
		if t.IterationRef != nil && *t.IterationRef != "" {
			id, ok := iterRefs[*t.IterationRef]
			if !ok {
				return nil, fmt.Errorf("iteration_ref %q not found for task %q", *t.IterationRef, t.Ref)
			}
			iterationID = &id
		}
		var parentID *string
		if t.ParentRef != nil && *t.ParentRef != "" {
			id, ok := taskRefs[*t.ParentRef]
			if !ok {
				return nil, fmt.Errorf("parent_ref %q not found for task %q", *t.ParentRef, t.Ref)
			}
			parentID = &id
		}

		created := nextCreatedAt()
		tasks = append(tasks, &domain.Task{
			ID:             realID,
			ProjectID:      project.ID,
			IterationID:    iterationID,
			ParentID:       parentID,
			Title:          t.Title,
			Type:           domain.CoalesceStr(t.Type, "task"),
			Priority:       domain.Priority(domain.CoalesceStr(t.Priority, string(domain.PriorityMedium))),
			AssigneeID:     t.AssigneeID,
			Status:         domain.TaskStatus(domain.CoalesceStr(t.Status, string(domain.TaskTodo))),
			PlannedStart:   parseOptionalDate(t.PlannedStart),
			PlannedEnd:     parseOptionalDate(t.PlannedEnd),
			EstimatedHours: t.EstimatedHours,
			CreatedAt:      created,
			UpdatedAt:      created,
		})
	}

	links := make([]domain.TaskLink, 0, len(schema.Links))
	for _, l := range schema.Links {
		predID, ok := taskRefs[l.PredecessorRef]
		if !ok {
			return nil, fmt.Errorf("predecessor_ref %q not found", l.PredecessorRef)
		}
		succID, ok := taskRefs[l.SuccessorRef]
		if !ok {
			return nil, fmt.Errorf("successor_ref %q not found", l.SuccessorRef)
		}
		kind := domain.LinkKind(l.Kind)
		if kind == "" {
			kind = domain.LinkFinishToStart
		}
		links = append(links, domain.TaskLink{
			PredecessorID: predID,
			SuccessorID:   succID,
			Kind:          kind,
		})
	}

	return &ImportBundle{
		Project:    project,
		Iterations: iterations,
		Tasks:      tasks,
		Links:      links,
	}, nil
}

func parseOptionalDate(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil
	}
	return &t
}
