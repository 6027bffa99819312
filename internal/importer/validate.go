package importer

import (
	"fmt"
	"time"

	"github.com/dedatech/workplan/internal/domain"
)

var (
	validProjectStatuses = map[string]bool{
		"not_started": true, "in_progress": true, "suspended": true, "archived": true,
	}
	validIterationStatuses = map[string]bool{
		"not_started": true, "in_progress": true, "completed": true,
	}
	validPriorities = map[string]bool{"HIGH": true, "MEDIUM": true, "LOW": true}
	validLinkKinds  = map[string]bool{
		"finish_to_start": true, "start_to_start": true, "finish_to_finish": true,
	}
)

// ValidateImportSchema checks the import schema before conversion. Returns a
// slice of all validation errors found, not just the first.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error

	errs = append(errs, validateProject(&schema.Project)...)

	iterRefs := make(map[string]bool)
	errs = append(errs, validateIterations(schema.Iterations, iterRefs)...)

	taskRefs := make(map[string]bool)
	errs = append(errs, validateTasks(schema.Tasks, iterRefs, taskRefs)...)

	errs = append(errs, validateLinks(schema.Links, taskRefs)...)

	return errs
}

func validateProject(p *ProjectImport) []error {
	var errs []error

	if p.Name == "" {
		errs = append(errs, fmt.Errorf("project.name is required"))
	}
	if p.Status != "" && !validProjectStatuses[p.Status] {
		errs = append(errs, fmt.Errorf("project.status: invalid value %q", p.Status))
	}
	errs = append(errs, validateDateRange("project", p.PlannedStart, p.PlannedEnd)...)

	return errs
}

func validateIterations(iterations []IterationImport, iterRefs map[string]bool) []error {
	var errs []error

	for i, it := range iterations {
		prefix := fmt.Sprintf("iterations[%d]", i)

		if it.Ref == "" {
			errs = append(errs, fmt.Errorf("%s.ref is required", prefix))
		} else if iterRefs[it.Ref] {
			errs = append(errs, fmt.Errorf("%s.ref: duplicate ref %q", prefix, it.Ref))
		} else {
			iterRefs[it.Ref] = true
		}

		if it.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		if it.Status != "" && !validIterationStatuses[it.Status] {
			errs = append(errs, fmt.Errorf("%s.status: invalid value %q", prefix, it.Status))
		}
		errs = append(errs, validateDateRange(prefix, it.PlannedStart, it.PlannedEnd)...)
	}

	return errs
}

func validateTasks(tasks []TaskImport, iterRefs, taskRefs map[string]bool) []error {
	var errs []error

	for i, t := range tasks {
		prefix := fmt.Sprintf("tasks[%d]", i)

		if t.Ref == "" {
			errs = append(errs, fmt.Errorf("%s.ref is required", prefix))
		} else if taskRefs[t.Ref] {
			errs = append(errs, fmt.Errorf("%s.ref: duplicate ref %q", prefix, t.Ref))
		} else {
			taskRefs[t.Ref] = true
		}

		if t.Title == "" {
			errs = append(errs, fmt.Errorf("%s.title is required", prefix))
		}
		if t.Type != "" && !domain.ValidTaskTypes[t.Type] {
			errs = append(errs, fmt.Errorf("%s.type: invalid value %q", prefix, t.Type))
		}
		if t.Priority != "" && !validPriorities[t.Priority] {
			errs = append(errs, fmt.Errorf("%s.priority: invalid value %q", prefix, t.Priority))
		}
		if t.Status != "" && !domain.ValidTaskStatuses[t.Status] {
			errs = append(errs, fmt.Errorf("%s.status: invalid value %q", prefix, t.Status))
		}

		if t.IterationRef != nil && *t.IterationRef != "" && !iterRefs[*t.IterationRef] {
			errs = append(errs, fmt.Errorf("%s.iteration_ref: ref %q not found in iterations", prefix, *t.IterationRef))
		}
		if t.ParentRef != nil && *t.ParentRef != "" {
			if *t.ParentRef == t.Ref {
				errs = append(errs, fmt.Errorf("%s.parent_ref: task cannot be its own parent", prefix))
			} else if !taskRefs[*t.ParentRef] {
				errs = append(errs, fmt.Errorf("%s.parent_ref: ref %q not found (must appear earlier in tasks list)", prefix, *t.ParentRef))
			}
		}
		if t.IterationRef != nil && *t.IterationRef != "" && t.ParentRef != nil && *t.ParentRef != "" {
			errs = append(errs, fmt.Errorf("%s: iteration_ref and parent_ref are mutually exclusive", prefix))
		}

		errs = append(errs, validateDateRange(prefix, t.PlannedStart, t.PlannedEnd)...)
	}

	return errs
}

func validateLinks(links []LinkImport, taskRefs map[string]bool) []error {
	var errs []error

	for i, l := range links {
		prefix := fmt.Sprintf("links[%d]", i)

		if l.PredecessorRef == "" {
			errs = append(errs, fmt.Errorf("%s.predecessor_ref is required", prefix))
		} else if !taskRefs[l.PredecessorRef] {
			errs = append(errs, fmt.Errorf("%s.predecessor_ref: ref %q not found in tasks", prefix, l.PredecessorRef))
		}
		if l.SuccessorRef == "" {
			errs = append(errs, fmt.Errorf("%s.successor_ref is required", prefix))
		} else if !taskRefs[l.SuccessorRef] {
			errs = append(errs, fmt.Errorf("%s.successor_ref: ref %q not found in tasks", prefix, l.SuccessorRef))
		}
		if l.PredecessorRef != "" && l.PredecessorRef == l.SuccessorRef {
			errs = append(errs, fmt.Errorf("%s: self-dependency (predecessor_ref == successor_ref == %q)", prefix, l.PredecessorRef))
		}
		if l.Kind != "" && !validLinkKinds[l.Kind] {
			errs = append(errs, fmt.Errorf("%s.kind: invalid value %q", prefix, l.Kind))
		}
	}

	if len(links) > 1 {
		errs = append(errs, detectLinkCycles(links)...)
	}

	return errs
}

func detectLinkCycles(links []LinkImport) []error {
	graph := make(map[string][]string)
	nodes := make(map[string]bool)
	for _, l := range links {
		if l.PredecessorRef != "" && l.SuccessorRef != "" && l.PredecessorRef != l.SuccessorRef {
			graph[l.PredecessorRef] = append(graph[l.PredecessorRef], l.SuccessorRef)
			nodes[l.PredecessorRef] = true
			nodes[l.SuccessorRef] = true
		}
	}

	const (
		white = 0 // unvisited
		gray  = 1 // in current path
		black = 2 // fully processed
	)

	color := make(map[string]int)
	var errs []error

	var visit func(node string) bool
	visit = func(node string) bool {
		color[node] = gray
		for _, neighbor := range graph[node] {
			if color[neighbor] == gray {
				errs = append(errs, fmt.Errorf("circular dependency detected involving %q and %q", node, neighbor))
				return true
			}
			if color[neighbor] == white {
				if visit(neighbor) {
					return true
				}
			}
		}
		color[node] = black
		return false
	}

	for node := range nodes {
		if color[node] == white {
			visit(node)
		}
	}

	return errs
}

func validateDateRange(prefix string, start, end *string) []error {
	var errs []error
	errs = append(errs, validateOptionalDate(prefix+".planned_start", start)...)
	errs = append(errs, validateOptionalDate(prefix+".planned_end", end)...)

	if len(errs) == 0 && start != nil && *start != "" && end != nil && *end != "" {
		s, _ := time.Parse("2006-01-02", *start)
		e, _ := time.Parse("2006-01-02", *end)
		if e.Before(s) {
			errs = append(errs, fmt.Errorf("%s: planned_end %q is before planned_start %q", prefix, *end, *start))
		}
	}
	return errs
}

func validateOptionalDate(field string, dateStr *string) []error {
	if dateStr == nil || *dateStr == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", *dateStr); err != nil {
		return []error{fmt.Errorf("%s: invalid date format %q (expected YYYY-MM-DD)", field, *dateStr)}
	}
	return nil
}
