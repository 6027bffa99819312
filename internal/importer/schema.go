package importer

import (
	"encoding/json"
	"fmt"
	"os"
)

// ImportSchema is the top-level JSON structure for project import. Entities
// reference each other by ref strings; Convert swaps them for real IDs.
type ImportSchema struct {
	Project    ProjectImport     `json:"project"`
	Iterations []IterationImport `json:"iterations,omitempty"`
	Tasks      []TaskImport      `json:"tasks"`
	Links      []LinkImport      `json:"links,omitempty"`
}

// ProjectImport defines the project-level fields in the import file.
type ProjectImport struct {
	Name         string  `json:"name"`
	ManagerID    string  `json:"manager_id,omitempty"`
	Status       string  `json:"status,omitempty"`
	PlannedStart *string `json:"planned_start,omitempty"`
	PlannedEnd   *string `json:"planned_end,omitempty"`
}

// IterationImport defines an iteration in the import file.
type IterationImport struct {
	Ref          string  `json:"ref"`
	Name         string  `json:"name"`
	Status       string  `json:"status,omitempty"`
	PlannedStart *string `json:"planned_start,omitempty"`
	PlannedEnd   *string `json:"planned_end,omitempty"`
}

// TaskImport defines a task in the import file. ParentRef must point at a
// task that appears earlier in the list, so imported hierarchies are acyclic
// by construction.
type TaskImport struct {
	Ref            string  `json:"ref"`
	IterationRef   *string `json:"iteration_ref,omitempty"`
	ParentRef      *string `json:"parent_ref,omitempty"`
	Title          string  `json:"title"`
	Type           string  `json:"type,omitempty"`
	Priority       string  `json:"priority,omitempty"`
	AssigneeID     string  `json:"assignee_id,omitempty"`
	Status         string  `json:"status,omitempty"`
	PlannedStart   *string `json:"planned_start,omitempty"`
	PlannedEnd     *string `json:"planned_end,omitempty"`
	EstimatedHours float64 `json:"estimated_hours,omitempty"`
}

// LinkImport defines a dependency between two tasks.
type LinkImport struct {
	PredecessorRef string `json:"predecessor_ref"`
	SuccessorRef   string `json:"successor_ref"`
	Kind           string `json:"kind,omitempty"`
}

// LoadImportSchema reads and parses a project import JSON file.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var schema ImportSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}
