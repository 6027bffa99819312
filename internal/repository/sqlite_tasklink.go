package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dedatech/workplan/internal/db"
	"github.com/dedatech/workplan/internal/domain"
)

// SQLiteTaskLinkRepo implements TaskLinkRepo using a SQLite database.
type SQLiteTaskLinkRepo struct {
	db db.DBTX
}

// NewSQLiteTaskLinkRepo creates a new SQLiteTaskLinkRepo.
func NewSQLiteTaskLinkRepo(conn db.DBTX) *SQLiteTaskLinkRepo {
	return &SQLiteTaskLinkRepo{db: conn}
}

func (r *SQLiteTaskLinkRepo) Create(ctx context.Context, l *domain.TaskLink) error {
	kind := l.Kind
	if kind == "" {
		kind = domain.LinkFinishToStart
	}
	query := `INSERT INTO task_links (predecessor_id, successor_id, kind) VALUES (?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, l.PredecessorID, l.SuccessorID, string(kind))
	if err != nil {
		return fmt.Errorf("inserting task link: %w", err)
	}
	return nil
}

func (r *SQLiteTaskLinkRepo) Delete(ctx context.Context, predecessorID, successorID string) error {
	query := `DELETE FROM task_links WHERE predecessor_id = ? AND successor_id = ?`
	_, err := r.db.ExecContext(ctx, query, predecessorID, successorID)
	if err != nil {
		return fmt.Errorf("deleting task link: %w", err)
	}
	return nil
}

// ListByProject returns every link whose predecessor belongs to the project.
// Links never cross projects, so this covers the project's full link graph.
func (r *SQLiteTaskLinkRepo) ListByProject(ctx context.Context, projectID string) ([]domain.TaskLink, error) {
	query := `SELECT l.predecessor_id, l.successor_id, l.kind
		FROM task_links l
		JOIN tasks t ON l.predecessor_id = t.id
		WHERE t.project_id = ?`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing task links by project: %w", err)
	}
	defer rows.Close()
	return r.scanTaskLinks(rows)
}

func (r *SQLiteTaskLinkRepo) ListPredecessors(ctx context.Context, taskID string) ([]domain.TaskLink, error) {
	query := `SELECT predecessor_id, successor_id, kind
		FROM task_links WHERE successor_id = ?`
	rows, err := r.db.QueryContext(ctx, query, taskID)
	if err != nil {
		return nil, fmt.Errorf("listing predecessors: %w", err)
	}
	defer rows.Close()
	return r.scanTaskLinks(rows)
}

func (r *SQLiteTaskLinkRepo) ListSuccessors(ctx context.Context, taskID string) ([]domain.TaskLink, error) {
	query := `SELECT predecessor_id, successor_id, kind
		FROM task_links WHERE predecessor_id = ?`
	rows, err := r.db.QueryContext(ctx, query, taskID)
	if err != nil {
		return nil, fmt.Errorf("listing successors: %w", err)
	}
	defer rows.Close()
	return r.scanTaskLinks(rows)
}

func (r *SQLiteTaskLinkRepo) scanTaskLinks(rows *sql.Rows) ([]domain.TaskLink, error) {
	var links []domain.TaskLink
	for rows.Next() {
		var l domain.TaskLink
		var kindStr string
		if err := rows.Scan(&l.PredecessorID, &l.SuccessorID, &kindStr); err != nil {
			return nil, fmt.Errorf("scanning task link: %w", err)
		}
		l.Kind = domain.LinkKind(kindStr)
		links = append(links, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating task links: %w", err)
	}
	return links, nil
}
