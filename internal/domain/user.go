package domain

type User struct {
	ID           string
	DisplayName  string
	DepartmentID string
}

// ProjectMember grants a user access to a project's schedule.
type ProjectMember struct {
	ProjectID string
	UserID    string
	Role      string
}
