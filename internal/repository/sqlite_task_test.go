package repository

import (
	"context"
	"testing"
	"time"

	"github.com/dedatech/workplan/internal/domain"
	"github.com/dedatech/workplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTaskRepo(t *testing.T) (*SQLiteTaskRepo, *SQLiteProjectRepo, *SQLiteIterationRepo) {
	t.Helper()
	database := testutil.NewTestDB(t)
	return NewSQLiteTaskRepo(database), NewSQLiteProjectRepo(database), NewSQLiteIterationRepo(database)
}

func TestTaskRepo_CreateAndGetByID(t *testing.T) {
	repo, projRepo, iterRepo := setupTaskRepo(t)
	ctx := context.Background()

	proj := testutil.NewTestProject("Task Host")
	require.NoError(t, projRepo.Create(ctx, proj))

	iter := testutil.NewTestIteration(proj.ID, "Sprint 1")
	require.NoError(t, iterRepo.Create(ctx, iter))

	parent := testutil.NewTestTask(proj.ID, "Parent")
	require.NoError(t, repo.Create(ctx, parent))

	task := testutil.NewTestTask(proj.ID, "Child",
		testutil.WithTaskIteration(iter.ID),
		testutil.WithTaskParent(parent.ID),
		testutil.WithTaskPriority(domain.PriorityHigh),
		testutil.WithTaskAssignee("u-42"),
		testutil.WithTaskPlannedRange(testutil.Date(2025, 3, 1), testutil.Date(2025, 3, 10)),
		testutil.WithTaskEstimate(12.5),
	)
	require.NoError(t, repo.Create(ctx, task))

	got, err := repo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, task.ID, got.ID)
	assert.Equal(t, proj.ID, got.ProjectID)
	require.NotNil(t, got.IterationID)
	assert.Equal(t, iter.ID, *got.IterationID)
	require.NotNil(t, got.ParentID)
	assert.Equal(t, parent.ID, *got.ParentID)
	assert.Equal(t, domain.PriorityHigh, got.Priority)
	assert.Equal(t, "u-42", got.AssigneeID)
	assert.Equal(t, domain.TaskTodo, got.Status)
	require.NotNil(t, got.PlannedStart)
	assert.Equal(t, testutil.Date(2025, 3, 1), *got.PlannedStart)
	require.NotNil(t, got.PlannedEnd)
	assert.Equal(t, testutil.Date(2025, 3, 10), *got.PlannedEnd)
	assert.Nil(t, got.ActualStart)
	assert.Nil(t, got.ActualEnd)
	assert.InDelta(t, 12.5, got.EstimatedHours, 0.001)
}

func TestTaskRepo_GetByID_NotFound(t *testing.T) {
	repo, _, _ := setupTaskRepo(t)
	_, err := repo.GetByID(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTaskRepo_ListByProject_CreationOrder(t *testing.T) {
	repo, projRepo, _ := setupTaskRepo(t)
	ctx := context.Background()

	proj := testutil.NewTestProject("Ordering")
	require.NoError(t, projRepo.Create(ctx, proj))

	first := testutil.NewTestTask(proj.ID, "First")
	second := testutil.NewTestTask(proj.ID, "Second")
	third := testutil.NewTestTask(proj.ID, "Third")
	// Insert out of order; list must come back in creation order.
	require.NoError(t, repo.Create(ctx, third))
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	tasks, err := repo.ListByProject(ctx, proj.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, "First", tasks[0].Title)
	assert.Equal(t, "Second", tasks[1].Title)
	assert.Equal(t, "Third", tasks[2].Title)
}

func TestTaskRepo_CountByProject(t *testing.T) {
	repo, projRepo, _ := setupTaskRepo(t)
	ctx := context.Background()

	proj := testutil.NewTestProject("Counting")
	require.NoError(t, projRepo.Create(ctx, proj))
	other := testutil.NewTestProject("Other")
	require.NoError(t, projRepo.Create(ctx, other))

	require.NoError(t, repo.Create(ctx, testutil.NewTestTask(proj.ID, "A")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestTask(proj.ID, "B")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestTask(other.ID, "Elsewhere")))

	count, err := repo.CountByProject(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestTaskRepo_UpdateParent(t *testing.T) {
	repo, projRepo, _ := setupTaskRepo(t)
	ctx := context.Background()

	proj := testutil.NewTestProject("Reparent")
	require.NoError(t, projRepo.Create(ctx, proj))

	parent := testutil.NewTestTask(proj.ID, "Parent")
	task := testutil.NewTestTask(proj.ID, "Mover")
	require.NoError(t, repo.Create(ctx, parent))
	require.NoError(t, repo.Create(ctx, task))

	require.NoError(t, repo.UpdateParent(ctx, task.ID, &parent.ID))
	got, err := repo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ParentID)
	assert.Equal(t, parent.ID, *got.ParentID)

	// Clearing the parent moves the task back to top level.
	require.NoError(t, repo.UpdateParent(ctx, task.ID, nil))
	got, err = repo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ParentID)
}

func TestTaskRepo_UpdateParent_NotFound(t *testing.T) {
	repo, _, _ := setupTaskRepo(t)
	err := repo.UpdateParent(context.Background(), "missing", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTaskRepo_UpdateDates(t *testing.T) {
	repo, projRepo, _ := setupTaskRepo(t)
	ctx := context.Background()

	proj := testutil.NewTestProject("Reschedule")
	require.NoError(t, projRepo.Create(ctx, proj))

	task := testutil.NewTestTask(proj.ID, "Shifting",
		testutil.WithTaskPlannedRange(testutil.Date(2025, 2, 1), testutil.Date(2025, 2, 5)))
	require.NoError(t, repo.Create(ctx, task))

	require.NoError(t, repo.UpdateDates(ctx, task.ID,
		testutil.Date(2025, 2, 10), testutil.Date(2025, 2, 20)))

	got, err := repo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, testutil.Date(2025, 2, 10), *got.PlannedStart)
	assert.Equal(t, testutil.Date(2025, 2, 20), *got.PlannedEnd)
}

func TestTaskRepo_UpdateStatusAndDates(t *testing.T) {
	repo, projRepo, _ := setupTaskRepo(t)
	ctx := context.Background()

	proj := testutil.NewTestProject("Transitions")
	require.NoError(t, projRepo.Create(ctx, proj))

	task := testutil.NewTestTask(proj.ID, "Progressing")
	require.NoError(t, repo.Create(ctx, task))

	start := testutil.Date(2025, 4, 1)
	require.NoError(t, repo.UpdateStatusAndDates(ctx, task.ID, domain.TaskInProgress, &start, nil))

	got, err := repo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskInProgress, got.Status)
	require.NotNil(t, got.ActualStart)
	assert.Equal(t, start, *got.ActualStart)
	assert.Nil(t, got.ActualEnd)

	// Clearing both actuals (reopen) writes NULLs.
	require.NoError(t, repo.UpdateStatusAndDates(ctx, task.ID, domain.TaskTodo, nil, nil))
	got, err = repo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskTodo, got.Status)
	assert.Nil(t, got.ActualStart)
	assert.Nil(t, got.ActualEnd)
}

func TestTaskRepo_Delete(t *testing.T) {
	repo, projRepo, _ := setupTaskRepo(t)
	ctx := context.Background()

	proj := testutil.NewTestProject("Deleting")
	require.NoError(t, projRepo.Create(ctx, proj))
	task := testutil.NewTestTask(proj.ID, "Doomed")
	require.NoError(t, repo.Create(ctx, task))

	require.NoError(t, repo.Delete(ctx, task.ID))
	_, err := repo.GetByID(ctx, task.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTaskRepo_DeleteParent_ChildBecomesTopLevel(t *testing.T) {
	repo, projRepo, _ := setupTaskRepo(t)
	ctx := context.Background()

	proj := testutil.NewTestProject("Cascade")
	require.NoError(t, projRepo.Create(ctx, proj))

	parent := testutil.NewTestTask(proj.ID, "Parent")
	require.NoError(t, repo.Create(ctx, parent))
	child := testutil.NewTestTask(proj.ID, "Child", testutil.WithTaskParent(parent.ID))
	require.NoError(t, repo.Create(ctx, child))

	// External deletion of an ancestor must not strand the child: the FK is
	// ON DELETE SET NULL, so the child is promoted to top level.
	require.NoError(t, repo.Delete(ctx, parent.ID))
	got, err := repo.GetByID(ctx, child.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ParentID)
}

func TestTaskRepo_UpdateRoundTrip(t *testing.T) {
	repo, projRepo, _ := setupTaskRepo(t)
	ctx := context.Background()

	proj := testutil.NewTestProject("RoundTrip")
	require.NoError(t, projRepo.Create(ctx, proj))
	task := testutil.NewTestTask(proj.ID, "Before")
	require.NoError(t, repo.Create(ctx, task))

	task.Title = "After"
	task.Priority = domain.PriorityLow
	task.Status = domain.TaskInProgress
	actual := testutil.Date(2025, 5, 1)
	task.ActualStart = &actual
	task.UpdatedAt = time.Now().UTC()
	require.NoError(t, repo.Update(ctx, task))

	got, err := repo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "After", got.Title)
	assert.Equal(t, domain.PriorityLow, got.Priority)
	assert.Equal(t, domain.TaskInProgress, got.Status)
	require.NotNil(t, got.ActualStart)
	assert.Equal(t, actual, *got.ActualStart)
}
