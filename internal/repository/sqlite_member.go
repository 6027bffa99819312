package repository

import (
	"context"
	"fmt"

	"github.com/dedatech/workplan/internal/db"
	"github.com/dedatech/workplan/internal/domain"
)

// SQLiteMemberRepo implements MemberRepo using a SQLite database.
type SQLiteMemberRepo struct {
	db db.DBTX
}

// NewSQLiteMemberRepo creates a new SQLiteMemberRepo.
func NewSQLiteMemberRepo(conn db.DBTX) *SQLiteMemberRepo {
	return &SQLiteMemberRepo{db: conn}
}

func (r *SQLiteMemberRepo) Add(ctx context.Context, m *domain.ProjectMember) error {
	role := m.Role
	if role == "" {
		role = "member"
	}
	query := `INSERT OR IGNORE INTO project_members (project_id, user_id, role) VALUES (?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, m.ProjectID, m.UserID, role)
	if err != nil {
		return fmt.Errorf("adding project member: %w", err)
	}
	return nil
}

func (r *SQLiteMemberRepo) Remove(ctx context.Context, projectID, userID string) error {
	query := `DELETE FROM project_members WHERE project_id = ? AND user_id = ?`
	_, err := r.db.ExecContext(ctx, query, projectID, userID)
	if err != nil {
		return fmt.Errorf("removing project member: %w", err)
	}
	return nil
}

func (r *SQLiteMemberRepo) IsMember(ctx context.Context, projectID, userID string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM project_members WHERE project_id = ? AND user_id = ?`,
		projectID, userID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking project membership: %w", err)
	}
	return count > 0, nil
}

func (r *SQLiteMemberRepo) ListByProject(ctx context.Context, projectID string) ([]domain.ProjectMember, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT project_id, user_id, role FROM project_members
		 WHERE project_id = ? ORDER BY user_id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing project members: %w", err)
	}
	defer rows.Close()

	var members []domain.ProjectMember
	for rows.Next() {
		var m domain.ProjectMember
		if err := rows.Scan(&m.ProjectID, &m.UserID, &m.Role); err != nil {
			return nil, fmt.Errorf("scanning project member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating project members: %w", err)
	}
	return members, nil
}
