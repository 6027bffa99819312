package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dedatech/workplan/internal/db"
	"github.com/dedatech/workplan/internal/domain"
)

// taskColumns is the canonical SELECT column list for tasks.
const taskColumns = `id, project_id, iteration_id, parent_id, title, type,
		priority, assignee_id, status,
		planned_start, planned_end, actual_start, actual_end,
		estimated_hours, created_at, updated_at`

// SQLiteTaskRepo implements TaskRepo using a SQLite database.
type SQLiteTaskRepo struct {
	db db.DBTX
}

// NewSQLiteTaskRepo creates a new SQLiteTaskRepo.
func NewSQLiteTaskRepo(conn db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: conn}
}

func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	query := `INSERT INTO tasks (id, project_id, iteration_id, parent_id, title, type,
		priority, assignee_id, status,
		planned_start, planned_end, actual_start, actual_end,
		estimated_hours, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.ProjectID,
		nullableStrToValue(t.IterationID),
		nullableStrToValue(t.ParentID),
		t.Title,
		t.Type,
		string(t.Priority),
		t.AssigneeID,
		string(t.Status),
		nullableTimeToString(t.PlannedStart, dateLayout),
		nullableTimeToString(t.PlannedEnd, dateLayout),
		nullableTimeToString(t.ActualStart, dateLayout),
		nullableTimeToString(t.ActualEnd, dateLayout),
		t.EstimatedHours,
		t.CreatedAt.Format(time.RFC3339),
		t.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return r.scanTask(row)
}

// ListByProject returns all of a project's tasks in creation order. The
// schedule tree builder and the cycle validator both work off this single
// batch read; neither performs per-node queries.
func (r *SQLiteTaskRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks
		WHERE project_id = ? ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing tasks by project: %w", err)
	}
	defer rows.Close()
	return r.scanTasks(rows)
}

func (r *SQLiteTaskRepo) CountByProject(ctx context.Context, projectID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tasks WHERE project_id = ?`, projectID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting tasks by project: %w", err)
	}
	return count, nil
}

func (r *SQLiteTaskRepo) Update(ctx context.Context, t *domain.Task) error {
	query := `UPDATE tasks SET iteration_id = ?, parent_id = ?, title = ?, type = ?,
		priority = ?, assignee_id = ?, status = ?,
		planned_start = ?, planned_end = ?, actual_start = ?, actual_end = ?,
		estimated_hours = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		nullableStrToValue(t.IterationID),
		nullableStrToValue(t.ParentID),
		t.Title,
		t.Type,
		string(t.Priority),
		t.AssigneeID,
		string(t.Status),
		nullableTimeToString(t.PlannedStart, dateLayout),
		nullableTimeToString(t.PlannedEnd, dateLayout),
		nullableTimeToString(t.ActualStart, dateLayout),
		nullableTimeToString(t.ActualEnd, dateLayout),
		t.EstimatedHours,
		t.UpdatedAt.Format(time.RFC3339),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	return r.requireRow(res, t.ID)
}

func (r *SQLiteTaskRepo) UpdateParent(ctx context.Context, id string, parentID *string) error {
	query := `UPDATE tasks SET parent_id = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		nullableStrToValue(parentID),
		time.Now().UTC().Format(time.RFC3339),
		id,
	)
	if err != nil {
		return fmt.Errorf("updating task parent: %w", err)
	}
	return r.requireRow(res, id)
}

func (r *SQLiteTaskRepo) UpdateDates(ctx context.Context, id string, start, end time.Time) error {
	query := `UPDATE tasks SET planned_start = ?, planned_end = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		start.Format(dateLayout),
		end.Format(dateLayout),
		time.Now().UTC().Format(time.RFC3339),
		id,
	)
	if err != nil {
		return fmt.Errorf("updating task dates: %w", err)
	}
	return r.requireRow(res, id)
}

func (r *SQLiteTaskRepo) UpdateStatusAndDates(ctx context.Context, id string, status domain.TaskStatus, actualStart, actualEnd *time.Time) error {
	query := `UPDATE tasks SET status = ?, actual_start = ?, actual_end = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		string(status),
		nullableTimeToString(actualStart, dateLayout),
		nullableTimeToString(actualEnd, dateLayout),
		time.Now().UTC().Format(time.RFC3339),
		id,
	)
	if err != nil {
		return fmt.Errorf("updating task status: %w", err)
	}
	return r.requireRow(res, id)
}

func (r *SQLiteTaskRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) requireRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	return nil
}

// scanTask scans a single task from a *sql.Row.
func (r *SQLiteTaskRepo) scanTask(row *sql.Row) (*domain.Task, error) {
	var t domain.Task
	var priorityStr, statusStr, createdAtStr, updatedAtStr string
	var iterationIDStr, parentIDStr sql.NullString
	var plannedStartStr, plannedEndStr, actualStartStr, actualEndStr sql.NullString

	err := row.Scan(
		&t.ID, &t.ProjectID, &iterationIDStr, &parentIDStr, &t.Title, &t.Type,
		&priorityStr, &t.AssigneeID, &statusStr,
		&plannedStartStr, &plannedEndStr, &actualStartStr, &actualEndStr,
		&t.EstimatedHours, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("task: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning task: %w", err)
	}

	return r.populateTask(&t, priorityStr, statusStr, iterationIDStr, parentIDStr,
		plannedStartStr, plannedEndStr, actualStartStr, actualEndStr, createdAtStr, updatedAtStr)
}

// scanTasks scans multiple tasks from *sql.Rows.
func (r *SQLiteTaskRepo) scanTasks(rows *sql.Rows) ([]*domain.Task, error) {
	var tasks []*domain.Task
	for rows.Next() {
		var t domain.Task
		var priorityStr, statusStr, createdAtStr, updatedAtStr string
		var iterationIDStr, parentIDStr sql.NullString
		var plannedStartStr, plannedEndStr, actualStartStr, actualEndStr sql.NullString

		err := rows.Scan(
			&t.ID, &t.ProjectID, &iterationIDStr, &parentIDStr, &t.Title, &t.Type,
			&priorityStr, &t.AssigneeID, &statusStr,
			&plannedStartStr, &plannedEndStr, &actualStartStr, &actualEndStr,
			&t.EstimatedHours, &createdAtStr, &updatedAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning task row: %w", err)
		}

		task, err := r.populateTask(&t, priorityStr, statusStr, iterationIDStr, parentIDStr,
			plannedStartStr, plannedEndStr, actualStartStr, actualEndStr, createdAtStr, updatedAtStr)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

// populateTask fills in parsed fields on a Task after scanning raw values.
func (r *SQLiteTaskRepo) populateTask(
	t *domain.Task,
	priorityStr, statusStr string,
	iterationIDStr, parentIDStr sql.NullString,
	plannedStartStr, plannedEndStr, actualStartStr, actualEndStr sql.NullString,
	createdAtStr, updatedAtStr string,
) (*domain.Task, error) {
	t.Priority = domain.Priority(priorityStr)
	t.Status = domain.TaskStatus(statusStr)
	t.IterationID = parseNullableStr(iterationIDStr)
	t.ParentID = parseNullableStr(parentIDStr)
	t.PlannedStart = parseNullableTime(plannedStartStr, dateLayout)
	t.PlannedEnd = parseNullableTime(plannedEndStr, dateLayout)
	t.ActualStart = parseNullableTime(actualStartStr, dateLayout)
	t.ActualEnd = parseNullableTime(actualEndStr, dateLayout)

	var parseErr error
	t.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	t.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return t, nil
}
