package repository

import (
	"context"
	"testing"

	"github.com/dedatech/workplan/internal/domain"
	"github.com/dedatech/workplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupIterationRepo(t *testing.T) (*SQLiteIterationRepo, *SQLiteProjectRepo) {
	t.Helper()
	database := testutil.NewTestDB(t)
	return NewSQLiteIterationRepo(database), NewSQLiteProjectRepo(database)
}

func TestIterationRepo_CreateAndGetByID(t *testing.T) {
	repo, projRepo := setupIterationRepo(t)
	ctx := context.Background()

	proj := testutil.NewTestProject("Iteration Host")
	require.NoError(t, projRepo.Create(ctx, proj))

	iter := testutil.NewTestIteration(proj.ID, "Sprint 1",
		testutil.WithIterationStatus(domain.IterationInProgress),
		testutil.WithIterationPlannedRange(testutil.Date(2025, 2, 1), testutil.Date(2025, 2, 14)),
	)
	require.NoError(t, repo.Create(ctx, iter))

	got, err := repo.GetByID(ctx, iter.ID)
	require.NoError(t, err)
	assert.Equal(t, proj.ID, got.ProjectID)
	assert.Equal(t, "Sprint 1", got.Name)
	assert.Equal(t, domain.IterationInProgress, got.Status)
	require.NotNil(t, got.PlannedStart)
	assert.Equal(t, testutil.Date(2025, 2, 1), *got.PlannedStart)
}

func TestIterationRepo_ListByProject_CreationOrder(t *testing.T) {
	repo, projRepo := setupIterationRepo(t)
	ctx := context.Background()

	proj := testutil.NewTestProject("Sprints")
	require.NoError(t, projRepo.Create(ctx, proj))

	s1 := testutil.NewTestIteration(proj.ID, "Sprint 1")
	s2 := testutil.NewTestIteration(proj.ID, "Sprint 2")
	require.NoError(t, repo.Create(ctx, s1))
	require.NoError(t, repo.Create(ctx, s2))

	iters, err := repo.ListByProject(ctx, proj.ID)
	require.NoError(t, err)
	require.Len(t, iters, 2)
	assert.Equal(t, "Sprint 1", iters[0].Name)
	assert.Equal(t, "Sprint 2", iters[1].Name)
}

func TestIterationRepo_GetByID_NotFound(t *testing.T) {
	repo, _ := setupIterationRepo(t)
	_, err := repo.GetByID(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIterationRepo_Delete_NullsTaskIteration(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteIterationRepo(database)
	projRepo := NewSQLiteProjectRepo(database)
	taskRepo := NewSQLiteTaskRepo(database)
	ctx := context.Background()

	proj := testutil.NewTestProject("Cleanup")
	require.NoError(t, projRepo.Create(ctx, proj))
	iter := testutil.NewTestIteration(proj.ID, "Doomed Sprint")
	require.NoError(t, repo.Create(ctx, iter))
	task := testutil.NewTestTask(proj.ID, "Survivor", testutil.WithTaskIteration(iter.ID))
	require.NoError(t, taskRepo.Create(ctx, task))

	require.NoError(t, repo.Delete(ctx, iter.ID))

	got, err := taskRepo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Nil(t, got.IterationID, "task should be detached, not deleted")
}
