package service

import (
	"context"
	"testing"

	"github.com/dedatech/workplan/internal/domain"
	"github.com/dedatech/workplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectService_CreateEnrollsManager(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	svc := NewProjectService(e.projects, e.members, testutil.NewTestUoW(e.db))

	p := &domain.Project{Name: "Launch", ManagerID: "mgr-7"}
	require.NoError(t, svc.Create(ctx, p))
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, domain.ProjectNotStarted, p.Status)

	ok, err := e.members.IsMember(ctx, p.ID, "mgr-7")
	require.NoError(t, err)
	assert.True(t, ok, "manager is enrolled as a member on create")
}

func TestProjectService_Archive(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	svc := NewProjectService(e.projects, e.members, testutil.NewTestUoW(e.db))

	p := testutil.NewTestProject("Done soon")
	require.NoError(t, e.projects.Create(ctx, p))

	require.NoError(t, svc.Archive(ctx, p.ID))
	got, err := e.projects.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectArchived, got.Status)
	assert.True(t, got.IsArchived())
}

func TestTaskService_CreateDefaults(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	svc := NewTaskService(e.tasks, e.projects)

	proj := testutil.NewTestProject("Defaults")
	require.NoError(t, e.projects.Create(ctx, proj))

	task := &domain.Task{ProjectID: proj.ID, Title: "bare"}
	require.NoError(t, svc.Create(ctx, task))
	assert.Equal(t, domain.TaskTodo, task.Status)
	assert.Equal(t, domain.PriorityMedium, task.Priority)
	assert.Equal(t, "task", task.Type)

	bad := &domain.Task{ProjectID: proj.ID, Title: "bad", Type: "epic"}
	assert.Error(t, svc.Create(ctx, bad), "unrecognized type is rejected")

	missing := &domain.Task{ProjectID: "nope", Title: "missing"}
	assert.Error(t, svc.Create(ctx, missing))
}

func TestTaskService_CountByProject(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	svc := NewTaskService(e.tasks, e.projects)

	proj := testutil.NewTestProject("Counted")
	require.NoError(t, e.projects.Create(ctx, proj))

	count, err := svc.CountByProject(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	for _, title := range []string{"one", "two", "three"} {
		require.NoError(t, svc.Create(ctx, &domain.Task{ProjectID: proj.ID, Title: title}))
	}
	count, err = svc.CountByProject(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestIterationService_Create(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	svc := NewIterationService(e.iterations, e.projects)

	proj := testutil.NewTestProject("Sprints")
	require.NoError(t, e.projects.Create(ctx, proj))

	it := &domain.Iteration{ProjectID: proj.ID, Name: "Sprint 1"}
	require.NoError(t, svc.Create(ctx, it))
	assert.NotEmpty(t, it.ID)
	assert.Equal(t, domain.IterationNotStarted, it.Status)

	assert.Error(t, svc.Create(ctx, &domain.Iteration{ProjectID: "nope", Name: "x"}))
}
