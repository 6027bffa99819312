package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dedatech/workplan/internal/db"
	"github.com/dedatech/workplan/internal/domain"
)

// projectColumns is the canonical SELECT column list for projects.
const projectColumns = `id, name, status, manager_id,
		planned_start, planned_end, actual_start, actual_end,
		created_at, updated_at`

// SQLiteProjectRepo implements ProjectRepo using a SQLite database.
type SQLiteProjectRepo struct {
	db db.DBTX
}

// NewSQLiteProjectRepo creates a new SQLiteProjectRepo.
func NewSQLiteProjectRepo(conn db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: conn}
}

func (r *SQLiteProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	query := `INSERT INTO projects (id, name, status, manager_id,
		planned_start, planned_end, actual_start, actual_end,
		created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Name,
		string(p.Status),
		p.ManagerID,
		nullableTimeToString(p.PlannedStart, dateLayout),
		nullableTimeToString(p.PlannedEnd, dateLayout),
		nullableTimeToString(p.ActualStart, dateLayout),
		nullableTimeToString(p.ActualEnd, dateLayout),
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return r.scanProject(row)
}

func (r *SQLiteProjectRepo) List(ctx context.Context, includeArchived bool) ([]*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects ORDER BY created_at, id`
	if !includeArchived {
		query = `SELECT ` + projectColumns + ` FROM projects
			WHERE status != 'archived' ORDER BY created_at, id`
	}
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()
	return r.scanProjects(rows)
}

func (r *SQLiteProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	query := `UPDATE projects SET name = ?, status = ?, manager_id = ?,
		planned_start = ?, planned_end = ?, actual_start = ?, actual_end = ?,
		updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		p.Name,
		string(p.Status),
		p.ManagerID,
		nullableTimeToString(p.PlannedStart, dateLayout),
		nullableTimeToString(p.PlannedEnd, dateLayout),
		nullableTimeToString(p.ActualStart, dateLayout),
		nullableTimeToString(p.ActualEnd, dateLayout),
		p.UpdatedAt.Format(time.RFC3339),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating project: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("project %s: %w", p.ID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteProjectRepo) scanProject(row *sql.Row) (*domain.Project, error) {
	var p domain.Project
	var statusStr, createdAtStr, updatedAtStr string
	var plannedStartStr, plannedEndStr, actualStartStr, actualEndStr sql.NullString

	err := row.Scan(
		&p.ID, &p.Name, &statusStr, &p.ManagerID,
		&plannedStartStr, &plannedEndStr, &actualStartStr, &actualEndStr,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("project: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning project: %w", err)
	}

	return r.populateProject(&p, statusStr, plannedStartStr, plannedEndStr,
		actualStartStr, actualEndStr, createdAtStr, updatedAtStr)
}

func (r *SQLiteProjectRepo) scanProjects(rows *sql.Rows) ([]*domain.Project, error) {
	var projects []*domain.Project
	for rows.Next() {
		var p domain.Project
		var statusStr, createdAtStr, updatedAtStr string
		var plannedStartStr, plannedEndStr, actualStartStr, actualEndStr sql.NullString

		err := rows.Scan(
			&p.ID, &p.Name, &statusStr, &p.ManagerID,
			&plannedStartStr, &plannedEndStr, &actualStartStr, &actualEndStr,
			&createdAtStr, &updatedAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning project row: %w", err)
		}

		proj, err := r.populateProject(&p, statusStr, plannedStartStr, plannedEndStr,
			actualStartStr, actualEndStr, createdAtStr, updatedAtStr)
		if err != nil {
			return nil, err
		}
		projects = append(projects, proj)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return projects, nil
}

func (r *SQLiteProjectRepo) populateProject(
	p *domain.Project,
	statusStr string,
	plannedStartStr, plannedEndStr, actualStartStr, actualEndStr sql.NullString,
	createdAtStr, updatedAtStr string,
) (*domain.Project, error) {
	p.Status = domain.ProjectStatus(statusStr)
	p.PlannedStart = parseNullableTime(plannedStartStr, dateLayout)
	p.PlannedEnd = parseNullableTime(plannedEndStr, dateLayout)
	p.ActualStart = parseNullableTime(actualStartStr, dateLayout)
	p.ActualEnd = parseNullableTime(actualEndStr, dateLayout)

	var parseErr error
	p.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	p.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return p, nil
}
