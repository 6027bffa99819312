package domain

import "time"

type Project struct {
	ID           string
	Name         string
	Status       ProjectStatus
	ManagerID    string
	PlannedStart *time.Time
	PlannedEnd   *time.Time
	ActualStart  *time.Time
	ActualEnd    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsArchived reports whether the project has been archived and should be
// excluded from active schedule views.
func (p *Project) IsArchived() bool {
	return p.Status == ProjectArchived
}

// DisplayID returns a short identifier for log and CLI output.
func (p *Project) DisplayID() string {
	if len(p.ID) >= 8 {
		return p.ID[:8]
	}
	return p.ID
}
