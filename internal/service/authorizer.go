package service

import (
	"context"
	"fmt"

	"github.com/dedatech/workplan/internal/repository"
)

// Authorizer decides whether a user may operate on a project.
type Authorizer interface {
	CheckProjectAccess(ctx context.Context, userID, projectID string) error
}

// memberAuthorizer grants access to project members and to the project's
// manager, who counts as a member even without an explicit membership row.
type memberAuthorizer struct {
	projects repository.ProjectRepo
	members  repository.MemberRepo
}

// NewMemberAuthorizer creates an Authorizer backed by the membership table.
func NewMemberAuthorizer(projects repository.ProjectRepo, members repository.MemberRepo) Authorizer {
	return &memberAuthorizer{projects: projects, members: members}
}

func (a *memberAuthorizer) CheckProjectAccess(ctx context.Context, userID, projectID string) error {
	ok, err := a.members.IsMember(ctx, projectID, userID)
	if err != nil {
		return fmt.Errorf("checking membership: %w", err)
	}
	if ok {
		return nil
	}

	p, err := a.projects.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	if p.ManagerID == userID {
		return nil
	}
	return fmt.Errorf("user %s on project %s: %w", userID, projectID, ErrForbidden)
}

// AllowAll grants every request. Used by the single-user CLI, where project
// membership is not meaningful.
type AllowAll struct{}

func (AllowAll) CheckProjectAccess(context.Context, string, string) error { return nil }
