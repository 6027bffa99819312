package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dedatech/workplan/internal/domain"
	"github.com/dedatech/workplan/internal/repository"
)

// Validator performs the structural and temporal checks that guard every
// hierarchy mutation. It only reads from the store; persisting a validated
// change is the caller's job.
type Validator struct {
	tasks repository.TaskRepo
	links repository.TaskLinkRepo
}

// NewValidator creates a Validator over the given task and link stores.
func NewValidator(tasks repository.TaskRepo, links repository.TaskLinkRepo) *Validator {
	return &Validator{tasks: tasks, links: links}
}

// ValidateReparent checks whether taskID may be moved under newParentID.
// A nil newParentID means "move to top level" and always passes once the
// task itself resolves.
func (v *Validator) ValidateReparent(ctx context.Context, taskID string, newParentID *string) error {
	task, err := v.tasks.GetByID(ctx, taskID)
	if err != nil {
		return err
	}
	if newParentID == nil {
		return nil
	}
	if *newParentID == taskID {
		return fmt.Errorf("task %s: %w", taskID, ErrSelfParent)
	}

	parent, err := v.tasks.GetByID(ctx, *newParentID)
	if err != nil {
		return fmt.Errorf("resolving parent %s: %w", *newParentID, err)
	}
	if parent.ProjectID != task.ProjectID {
		return fmt.Errorf("parent %s: %w", parent.ID, ErrCrossProject)
	}

	all, err := v.tasks.ListByProject(ctx, task.ProjectID)
	if err != nil {
		return err
	}
	if err := detectCycle(newArena(all), taskID, parent.ID, len(all)); err != nil {
		return err
	}

	return checkContainment(task.PlannedStart, task.PlannedEnd, parent)
}

// ValidateReschedule checks a proposed planned range for a task against its
// current parent. Existing children are deliberately not re-validated: the
// containment invariant is only enforced for the node being changed, which
// matches the system's observed behavior even though it leaves a gap when a
// parent's own dates are edited.
func (v *Validator) ValidateReschedule(ctx context.Context, taskID string, newStart, newEnd time.Time) error {
	if newEnd.Before(newStart) {
		return fmt.Errorf("range %s..%s: %w",
			newStart.Format("2006-01-02"), newEnd.Format("2006-01-02"), ErrInvalidRange)
	}

	task, err := v.tasks.GetByID(ctx, taskID)
	if err != nil {
		return err
	}
	if task.ParentID == nil {
		return nil
	}

	parent, err := v.tasks.GetByID(ctx, *task.ParentID)
	if err != nil {
		// The parent may have been deleted externally; the FK normally
		// promotes children first, but tolerate the stale pointer.
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}
	return checkContainment(&newStart, &newEnd, parent)
}

// ValidateLink checks a proposed dependency edge: both endpoints must exist
// in the same project and the edge must not close a cycle in the link graph.
func (v *Validator) ValidateLink(ctx context.Context, predecessorID, successorID string) error {
	if predecessorID == successorID {
		return fmt.Errorf("task %s: %w", predecessorID, ErrCycleDetected)
	}

	pred, err := v.tasks.GetByID(ctx, predecessorID)
	if err != nil {
		return fmt.Errorf("resolving predecessor %s: %w", predecessorID, err)
	}
	succ, err := v.tasks.GetByID(ctx, successorID)
	if err != nil {
		return fmt.Errorf("resolving successor %s: %w", successorID, err)
	}
	if pred.ProjectID != succ.ProjectID {
		return fmt.Errorf("link %s -> %s: %w", predecessorID, successorID, ErrCrossProject)
	}

	links, err := v.links.ListByProject(ctx, pred.ProjectID)
	if err != nil {
		return err
	}
	if linkReaches(links, successorID, predecessorID) {
		return fmt.Errorf("link %s -> %s: %w", predecessorID, successorID, ErrCycleDetected)
	}
	return nil
}

// newArena indexes a project's tasks by ID. Cycle detection is a pure walk
// over this map and performs no per-node store reads.
func newArena(tasks []*domain.Task) map[string]*domain.Task {
	arena := make(map[string]*domain.Task, len(tasks))
	for _, t := range tasks {
		arena[t.ID] = t
	}
	return arena
}

// detectCycle walks the ancestor chain starting at startParentID. Reaching
// taskID means the proposed reparent would close a loop. Any revisited node
// is also treated as a cycle: a revisit means the stored graph is already
// inconsistent. The walk aborts once depth exceeds the project's task count.
func detectCycle(arena map[string]*domain.Task, taskID, startParentID string, limit int) error {
	seen := make(map[string]bool)
	id := startParentID
	for depth := 0; ; depth++ {
		if id == taskID {
			return fmt.Errorf("task %s: %w", taskID, ErrCycleDetected)
		}
		if seen[id] || depth > limit {
			return fmt.Errorf("ancestor %s revisited: %w", id, ErrCycleDetected)
		}
		seen[id] = true

		node, ok := arena[id]
		if !ok {
			// Ancestor deleted externally; the chain ends here.
			return nil
		}
		if node.ParentID == nil {
			return nil
		}
		id = *node.ParentID
	}
}

// checkContainment enforces the containment invariant: when the parent has
// both planned dates set, the child's range must lie within them. A parent
// with an open-ended range constrains nothing.
func checkContainment(start, end *time.Time, parent *domain.Task) error {
	if parent.PlannedStart == nil || parent.PlannedEnd == nil {
		return nil
	}
	if start != nil && start.Before(*parent.PlannedStart) {
		return fmt.Errorf("parent %s: %w", parent.ID, ErrDateOutOfParentRange)
	}
	if end != nil && end.After(*parent.PlannedEnd) {
		return fmt.Errorf("parent %s: %w", parent.ID, ErrDateOutOfParentRange)
	}
	return nil
}

// linkReaches reports whether `to` is reachable from `from` by following
// dependency edges predecessor -> successor.
func linkReaches(links []domain.TaskLink, from, to string) bool {
	succs := make(map[string][]string, len(links))
	for _, l := range links {
		succs[l.PredecessorID] = append(succs[l.PredecessorID], l.SuccessorID)
	}

	visited := make(map[string]bool)
	stack := []string{from}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if id == to {
			return true
		}
		if visited[id] {
			continue
		}
		visited[id] = true
		stack = append(stack, succs[id]...)
	}
	return false
}
