package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dedatech/workplan/internal/db"
	"github.com/dedatech/workplan/internal/domain"
)

// iterationColumns is the canonical SELECT column list for iterations.
const iterationColumns = `id, project_id, name, status,
		planned_start, planned_end, actual_start, actual_end,
		created_at, updated_at`

// SQLiteIterationRepo implements IterationRepo using a SQLite database.
type SQLiteIterationRepo struct {
	db db.DBTX
}

// NewSQLiteIterationRepo creates a new SQLiteIterationRepo.
func NewSQLiteIterationRepo(conn db.DBTX) *SQLiteIterationRepo {
	return &SQLiteIterationRepo{db: conn}
}

func (r *SQLiteIterationRepo) Create(ctx context.Context, it *domain.Iteration) error {
	query := `INSERT INTO iterations (id, project_id, name, status,
		planned_start, planned_end, actual_start, actual_end,
		created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		it.ID,
		it.ProjectID,
		it.Name,
		string(it.Status),
		nullableTimeToString(it.PlannedStart, dateLayout),
		nullableTimeToString(it.PlannedEnd, dateLayout),
		nullableTimeToString(it.ActualStart, dateLayout),
		nullableTimeToString(it.ActualEnd, dateLayout),
		it.CreatedAt.Format(time.RFC3339),
		it.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting iteration: %w", err)
	}
	return nil
}

func (r *SQLiteIterationRepo) GetByID(ctx context.Context, id string) (*domain.Iteration, error) {
	query := `SELECT ` + iterationColumns + ` FROM iterations WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return r.scanIteration(row)
}

// ListByProject returns a project's iterations in creation order. The
// schedule view relies on this ordering being stable.
func (r *SQLiteIterationRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Iteration, error) {
	query := `SELECT ` + iterationColumns + ` FROM iterations
		WHERE project_id = ? ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing iterations by project: %w", err)
	}
	defer rows.Close()
	return r.scanIterations(rows)
}

func (r *SQLiteIterationRepo) Update(ctx context.Context, it *domain.Iteration) error {
	query := `UPDATE iterations SET name = ?, status = ?,
		planned_start = ?, planned_end = ?, actual_start = ?, actual_end = ?,
		updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		it.Name,
		string(it.Status),
		nullableTimeToString(it.PlannedStart, dateLayout),
		nullableTimeToString(it.PlannedEnd, dateLayout),
		nullableTimeToString(it.ActualStart, dateLayout),
		nullableTimeToString(it.ActualEnd, dateLayout),
		it.UpdatedAt.Format(time.RFC3339),
		it.ID,
	)
	if err != nil {
		return fmt.Errorf("updating iteration: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("iteration %s: %w", it.ID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteIterationRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM iterations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting iteration: %w", err)
	}
	return nil
}

func (r *SQLiteIterationRepo) scanIteration(row *sql.Row) (*domain.Iteration, error) {
	var it domain.Iteration
	var statusStr, createdAtStr, updatedAtStr string
	var plannedStartStr, plannedEndStr, actualStartStr, actualEndStr sql.NullString

	err := row.Scan(
		&it.ID, &it.ProjectID, &it.Name, &statusStr,
		&plannedStartStr, &plannedEndStr, &actualStartStr, &actualEndStr,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("iteration: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning iteration: %w", err)
	}

	return r.populateIteration(&it, statusStr, plannedStartStr, plannedEndStr,
		actualStartStr, actualEndStr, createdAtStr, updatedAtStr)
}

func (r *SQLiteIterationRepo) scanIterations(rows *sql.Rows) ([]*domain.Iteration, error) {
	var iterations []*domain.Iteration
	for rows.Next() {
		var it domain.Iteration
		var statusStr, createdAtStr, updatedAtStr string
		var plannedStartStr, plannedEndStr, actualStartStr, actualEndStr sql.NullString

		err := rows.Scan(
			&it.ID, &it.ProjectID, &it.Name, &statusStr,
			&plannedStartStr, &plannedEndStr, &actualStartStr, &actualEndStr,
			&createdAtStr, &updatedAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning iteration row: %w", err)
		}

		iter, err := r.populateIteration(&it, statusStr, plannedStartStr, plannedEndStr,
			actualStartStr, actualEndStr, createdAtStr, updatedAtStr)
		if err != nil {
			return nil, err
		}
		iterations = append(iterations, iter)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating iterations: %w", err)
	}
	return iterations, nil
}

func (r *SQLiteIterationRepo) populateIteration(
	it *domain.Iteration,
	statusStr string,
	plannedStartStr, plannedEndStr, actualStartStr, actualEndStr sql.NullString,
	createdAtStr, updatedAtStr string,
) (*domain.Iteration, error) {
	it.Status = domain.IterationStatus(statusStr)
	it.PlannedStart = parseNullableTime(plannedStartStr, dateLayout)
	it.PlannedEnd = parseNullableTime(plannedEndStr, dateLayout)
	it.ActualStart = parseNullableTime(actualStartStr, dateLayout)
	it.ActualEnd = parseNullableTime(actualEndStr, dateLayout)

	var parseErr error
	it.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	it.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return it, nil
}
