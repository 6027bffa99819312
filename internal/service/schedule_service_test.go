package service

import (
	"context"
	"testing"
	"time"

	"github.com/dedatech/workplan/internal/domain"
	"github.com/dedatech/workplan/internal/schedule"
	"github.com/dedatech/workplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(y int, m time.Month, d int) schedule.Clock {
	return func() time.Time { return time.Date(y, m, d, 9, 0, 0, 0, time.UTC) }
}

func TestScheduleService_GetScheduleTree(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	svc := e.scheduleSvc(AllowAll{}, nil)

	proj := testutil.NewTestProject("Tree", testutil.WithProjectManager("mgr-1"))
	require.NoError(t, e.projects.Create(ctx, proj))
	require.NoError(t, e.users.Upsert(ctx, testutil.NewTestUser("mgr-1", "Priya Nair")))
	task := testutil.NewTestTask(proj.ID, "only task")
	require.NoError(t, e.tasks.Create(ctx, task))

	root, err := svc.GetScheduleTree(ctx, "anyone", proj.ID, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "Tree", root.Text)
	assert.Equal(t, "Priya Nair", root.OwnerName)
	require.Len(t, root.Children, 1)
	assert.Equal(t, "only task", root.Children[0].Text)
}

func TestScheduleService_MembershipEnforced(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	svc := e.scheduleSvc(NewMemberAuthorizer(e.projects, e.members), nil)

	proj := testutil.NewTestProject("Private", testutil.WithProjectManager("mgr-1"))
	require.NoError(t, e.projects.Create(ctx, proj))
	task := testutil.NewTestTask(proj.ID, "task")
	require.NoError(t, e.tasks.Create(ctx, task))
	require.NoError(t, e.members.Add(ctx, &domain.ProjectMember{ProjectID: proj.ID, UserID: "member-1"}))

	_, err := svc.GetScheduleTree(ctx, "outsider", proj.ID, nil, nil)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.GetScheduleTree(ctx, "member-1", proj.ID, nil, nil)
	assert.NoError(t, err)

	// The manager has access without a membership row.
	_, err = svc.GetScheduleTree(ctx, "mgr-1", proj.ID, nil, nil)
	assert.NoError(t, err)

	err = svc.ReparentTask(ctx, "outsider", task.ID, nil)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestScheduleService_ReparentValidationBlocksWrite(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	svc := e.scheduleSvc(AllowAll{}, nil)

	proj := testutil.NewTestProject("Guarded")
	require.NoError(t, e.projects.Create(ctx, proj))
	a := testutil.NewTestTask(proj.ID, "a")
	require.NoError(t, e.tasks.Create(ctx, a))
	b := testutil.NewTestTask(proj.ID, "b", testutil.WithTaskParent(a.ID))
	require.NoError(t, e.tasks.Create(ctx, b))

	err := svc.ReparentTask(ctx, "u", a.ID, &b.ID)
	assert.ErrorIs(t, err, schedule.ErrCycleDetected)

	// The failed move left the hierarchy untouched.
	got, err := e.tasks.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ParentID)
}

func TestScheduleService_Reparent(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	svc := e.scheduleSvc(AllowAll{}, nil)

	proj := testutil.NewTestProject("Moves")
	require.NoError(t, e.projects.Create(ctx, proj))
	parent := testutil.NewTestTask(proj.ID, "parent")
	child := testutil.NewTestTask(proj.ID, "child")
	require.NoError(t, e.tasks.Create(ctx, parent))
	require.NoError(t, e.tasks.Create(ctx, child))

	require.NoError(t, svc.ReparentTask(ctx, "u", child.ID, &parent.ID))
	got, err := e.tasks.GetByID(ctx, child.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ParentID)
	assert.Equal(t, parent.ID, *got.ParentID)

	require.NoError(t, svc.ReparentTask(ctx, "u", child.ID, nil))
	got, err = e.tasks.GetByID(ctx, child.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ParentID)
}

func TestScheduleService_Reschedule(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	svc := e.scheduleSvc(AllowAll{}, nil)

	proj := testutil.NewTestProject("Dates")
	require.NoError(t, e.projects.Create(ctx, proj))
	parent := testutil.NewTestTask(proj.ID, "parent",
		testutil.WithTaskPlannedRange(testutil.Date(2025, 6, 1), testutil.Date(2025, 6, 30)))
	require.NoError(t, e.tasks.Create(ctx, parent))
	child := testutil.NewTestTask(proj.ID, "child", testutil.WithTaskParent(parent.ID))
	require.NoError(t, e.tasks.Create(ctx, child))

	require.NoError(t, svc.RescheduleTask(ctx, "u", child.ID,
		testutil.Date(2025, 6, 5), testutil.Date(2025, 6, 10)))
	got, err := e.tasks.GetByID(ctx, child.ID)
	require.NoError(t, err)
	require.NotNil(t, got.PlannedStart)
	assert.Equal(t, testutil.Date(2025, 6, 5), *got.PlannedStart)

	err = svc.RescheduleTask(ctx, "u", child.ID,
		testutil.Date(2025, 5, 1), testutil.Date(2025, 6, 10))
	assert.ErrorIs(t, err, schedule.ErrDateOutOfParentRange)

	// The rejected range did not overwrite the stored one.
	got, err = e.tasks.GetByID(ctx, child.ID)
	require.NoError(t, err)
	assert.Equal(t, testutil.Date(2025, 6, 5), *got.PlannedStart)
}

func TestScheduleService_TransitionTaskStatus(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	svc := e.scheduleSvc(AllowAll{}, fixedClock(2025, 7, 4))

	proj := testutil.NewTestProject("Status")
	require.NoError(t, e.projects.Create(ctx, proj))
	task := testutil.NewTestTask(proj.ID, "work")
	require.NoError(t, e.tasks.Create(ctx, task))

	updated, err := svc.TransitionTaskStatus(ctx, "u", task.ID, domain.TaskInProgress, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskInProgress, updated.Status)
	require.NotNil(t, updated.ActualStart)
	assert.Equal(t, testutil.Date(2025, 7, 4), *updated.ActualStart)
	assert.Nil(t, updated.ActualEnd)

	updated, err = svc.TransitionTaskStatus(ctx, "u", task.ID, domain.TaskDone, nil, nil)
	require.NoError(t, err)
	require.NotNil(t, updated.ActualEnd)
	assert.Equal(t, testutil.Date(2025, 7, 4), *updated.ActualEnd)

	// Reopening clears the end date in the store, not just in the result.
	updated, err = svc.TransitionTaskStatus(ctx, "u", task.ID, domain.TaskTodo, nil, nil)
	require.NoError(t, err)
	assert.Nil(t, updated.ActualStart)
	assert.Nil(t, updated.ActualEnd)
	stored, err := e.tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.ActualStart)
	assert.Nil(t, stored.ActualEnd)

	_, err = svc.TransitionTaskStatus(ctx, "u", task.ID, domain.TaskStatus("BOGUS"), nil, nil)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestScheduleService_Links(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	svc := e.scheduleSvc(AllowAll{}, nil)

	proj := testutil.NewTestProject("Linked")
	require.NoError(t, e.projects.Create(ctx, proj))
	a := testutil.NewTestTask(proj.ID, "a")
	b := testutil.NewTestTask(proj.ID, "b")
	require.NoError(t, e.tasks.Create(ctx, a))
	require.NoError(t, e.tasks.Create(ctx, b))

	require.NoError(t, svc.CreateTaskLink(ctx, "u",
		&domain.TaskLink{PredecessorID: a.ID, SuccessorID: b.ID}))

	err := svc.CreateTaskLink(ctx, "u",
		&domain.TaskLink{PredecessorID: b.ID, SuccessorID: a.ID})
	assert.ErrorIs(t, err, schedule.ErrCycleDetected)

	preds, succs, err := svc.ListTaskLinks(ctx, "u", b.ID)
	require.NoError(t, err)
	require.Len(t, preds, 1)
	assert.Equal(t, a.ID, preds[0].PredecessorID)
	assert.Empty(t, succs)

	preds, succs, err = svc.ListTaskLinks(ctx, "u", a.ID)
	require.NoError(t, err)
	assert.Empty(t, preds)
	require.Len(t, succs, 1)
	assert.Equal(t, b.ID, succs[0].SuccessorID)

	require.NoError(t, svc.DeleteTaskLink(ctx, "u", a.ID, b.ID))
	links, err := e.links.ListByProject(ctx, proj.ID)
	require.NoError(t, err)
	assert.Empty(t, links)
}
