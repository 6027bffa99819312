package service

import (
	"database/sql"
	"testing"

	"github.com/dedatech/workplan/internal/directory"
	"github.com/dedatech/workplan/internal/repository"
	"github.com/dedatech/workplan/internal/schedule"
	"github.com/dedatech/workplan/internal/testutil"
)

// env bundles everything a service test needs against one in-memory database.
type env struct {
	db         *sql.DB
	projects   *repository.SQLiteProjectRepo
	iterations *repository.SQLiteIterationRepo
	tasks      *repository.SQLiteTaskRepo
	links      *repository.SQLiteTaskLinkRepo
	users      *repository.SQLiteUserRepo
	members    *repository.SQLiteMemberRepo
}

func newEnv(t *testing.T) *env {
	t.Helper()
	database := testutil.NewTestDB(t)
	return &env{
		db:         database,
		projects:   repository.NewSQLiteProjectRepo(database),
		iterations: repository.NewSQLiteIterationRepo(database),
		tasks:      repository.NewSQLiteTaskRepo(database),
		links:      repository.NewSQLiteTaskLinkRepo(database),
		users:      repository.NewSQLiteUserRepo(database),
		members:    repository.NewSQLiteMemberRepo(database),
	}
}

// scheduleSvc wires the facade over the env's stores with the given
// authorizer and clock.
func (e *env) scheduleSvc(auth Authorizer, clock schedule.Clock) ScheduleService {
	validator := schedule.NewValidator(e.tasks, e.links)
	builder := schedule.NewBuilder(e.projects, e.iterations, e.tasks,
		directory.NewCachedDirectory(e.users))
	return NewScheduleService(e.tasks, e.links, validator, builder, auth, clock)
}
