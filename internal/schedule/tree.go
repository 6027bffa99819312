package schedule

import (
	"context"
	"time"

	"github.com/dedatech/workplan/internal/domain"
	"github.com/dedatech/workplan/internal/repository"
)

type NodeKind string

const (
	NodeProject   NodeKind = "project"
	NodeIteration NodeKind = "iteration"
	NodeTask      NodeKind = "task"
)

// Node is one row of the assembled schedule view: a project, iteration, or
// task with its derived display fields and ordered children.
type Node struct {
	ID       string
	Text     string
	Kind     NodeKind
	Status   string
	Priority domain.Priority // task nodes only
	Color    string          // task nodes only, derived from priority

	OwnerID   string
	OwnerName string

	PlannedStart *time.Time
	PlannedEnd   *time.Time
	ActualStart  *time.Time
	ActualEnd    *time.Time

	// DurationDays counts whole days inclusive of both endpoints, nil when
	// either planned date is missing.
	DurationDays *int

	Children []*Node
}

// Flatten returns the tree in depth-first preorder: each node before its
// children, children in emission order.
func (n *Node) Flatten() []*Node {
	out := []*Node{n}
	for _, c := range n.Children {
		out = append(out, c.Flatten()...)
	}
	return out
}

// NameResolver maps a user ID to a display name. A miss yields an empty
// string, never an error; display names are cosmetic.
type NameResolver interface {
	DisplayName(ctx context.Context, userID string) string
}

// Builder assembles a project's schedule tree from three batch reads. No
// per-node queries happen during assembly.
type Builder struct {
	projects   repository.ProjectRepo
	iterations repository.IterationRepo
	tasks      repository.TaskRepo
	names      NameResolver
}

// NewBuilder creates a Builder over the given stores and name resolver.
func NewBuilder(projects repository.ProjectRepo, iterations repository.IterationRepo, tasks repository.TaskRepo, names NameResolver) *Builder {
	return &Builder{projects: projects, iterations: iterations, tasks: tasks, names: names}
}

// Build assembles the schedule tree for a project. Iteration subtrees come
// first in store order, then orphan top-level tasks; within a subtree,
// children follow store order depth-first.
//
// rangeStart/rangeEnd are accepted but not applied as a filter. The upstream
// system never wired them up, and clients depend on receiving the full tree;
// keeping the pass-through until the filter contract is settled.
func (b *Builder) Build(ctx context.Context, projectID string, rangeStart, rangeEnd *time.Time) (*Node, error) {
	_ = rangeStart
	_ = rangeEnd

	project, err := b.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	iterations, err := b.iterations.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	tasks, err := b.tasks.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	// Index once: children by parent, top-level tasks by iteration, orphans.
	children := make(map[string][]*domain.Task)
	byIteration := make(map[string][]*domain.Task)
	var orphans []*domain.Task
	for _, t := range tasks {
		switch {
		case t.ParentID != nil:
			children[*t.ParentID] = append(children[*t.ParentID], t)
		case t.IterationID != nil:
			byIteration[*t.IterationID] = append(byIteration[*t.IterationID], t)
		default:
			orphans = append(orphans, t)
		}
	}

	root := b.projectNode(ctx, project)
	visited := make(map[string]bool)
	for _, it := range iterations {
		iterNode := b.iterationNode(it)
		for _, t := range byIteration[it.ID] {
			iterNode.Children = append(iterNode.Children, b.taskSubtree(ctx, t, children, visited))
		}
		root.Children = append(root.Children, iterNode)
	}
	for _, t := range orphans {
		root.Children = append(root.Children, b.taskSubtree(ctx, t, children, visited))
	}
	return root, nil
}

func (b *Builder) taskSubtree(ctx context.Context, t *domain.Task, children map[string][]*domain.Task, visited map[string]bool) *Node {
	visited[t.ID] = true
	node := b.taskNode(ctx, t)
	for _, c := range children[t.ID] {
		// A visited child means the stored parent chain is cyclic; emit
		// each task once rather than recursing forever.
		if visited[c.ID] {
			continue
		}
		node.Children = append(node.Children, b.taskSubtree(ctx, c, children, visited))
	}
	return node
}

func (b *Builder) projectNode(ctx context.Context, p *domain.Project) *Node {
	return &Node{
		ID:           p.ID,
		Text:         p.Name,
		Kind:         NodeProject,
		Status:       string(p.Status),
		OwnerID:      p.ManagerID,
		OwnerName:    b.names.DisplayName(ctx, p.ManagerID),
		PlannedStart: p.PlannedStart,
		PlannedEnd:   p.PlannedEnd,
		ActualStart:  p.ActualStart,
		ActualEnd:    p.ActualEnd,
		DurationDays: durationDays(p.PlannedStart, p.PlannedEnd),
	}
}

func (b *Builder) iterationNode(it *domain.Iteration) *Node {
	return &Node{
		ID:           it.ID,
		Text:         it.Name,
		Kind:         NodeIteration,
		Status:       string(it.Status),
		PlannedStart: it.PlannedStart,
		PlannedEnd:   it.PlannedEnd,
		ActualStart:  it.ActualStart,
		ActualEnd:    it.ActualEnd,
		DurationDays: durationDays(it.PlannedStart, it.PlannedEnd),
	}
}

func (b *Builder) taskNode(ctx context.Context, t *domain.Task) *Node {
	return &Node{
		ID:           t.ID,
		Text:         t.Title,
		Kind:         NodeTask,
		Status:       string(t.Status),
		Priority:     t.Priority,
		Color:        PriorityColor(t.Priority),
		OwnerID:      t.AssigneeID,
		OwnerName:    b.names.DisplayName(ctx, t.AssigneeID),
		PlannedStart: t.PlannedStart,
		PlannedEnd:   t.PlannedEnd,
		ActualStart:  t.ActualStart,
		ActualEnd:    t.ActualEnd,
		DurationDays: durationDays(t.PlannedStart, t.PlannedEnd),
	}
}

// PriorityColor maps a task priority to its display color.
func PriorityColor(p domain.Priority) string {
	switch p {
	case domain.PriorityHigh:
		return "red"
	case domain.PriorityMedium:
		return "amber"
	case domain.PriorityLow:
		return "green"
	default:
		return "gray"
	}
}

// durationDays counts whole days inclusive of both endpoints.
func durationDays(start, end *time.Time) *int {
	if start == nil || end == nil {
		return nil
	}
	days := int(domain.DateOnly(*end).Sub(domain.DateOnly(*start)).Hours()/24) + 1
	return &days
}
