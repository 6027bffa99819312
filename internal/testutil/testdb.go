package testutil

import (
	"database/sql"
	"testing"

	"github.com/dedatech/workplan/internal/db"
)

// NewTestDB opens an in-memory database with the full schema applied and
// ties its lifetime to the test.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := db.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open in-memory database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

// NewTestUoW wraps a test database in a UnitOfWork.
func NewTestUoW(conn *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(conn)
}
