package service

import (
	"context"
	"testing"

	"github.com/dedatech/workplan/internal/importer"
	"github.com/dedatech/workplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func importFixture() *importer.ImportSchema {
	return &importer.ImportSchema{
		Project: importer.ProjectImport{Name: "Imported", ManagerID: "mgr-1"},
		Iterations: []importer.IterationImport{
			{Ref: "i1", Name: "Sprint 1", PlannedStart: strPtr("2025-04-01"), PlannedEnd: strPtr("2025-04-14")},
		},
		Tasks: []importer.TaskImport{
			{Ref: "t1", Title: "Top", IterationRef: strPtr("i1")},
			{Ref: "t2", Title: "Sub", ParentRef: strPtr("t1")},
		},
		Links: []importer.LinkImport{
			{PredecessorRef: "t1", SuccessorRef: "t2"},
		},
	}
}

func TestImportService_FullRoundTrip(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	svc := NewImportService(testutil.NewTestUoW(e.db))

	result, err := svc.ImportProjectFromSchema(ctx, importFixture())
	require.NoError(t, err)
	assert.Equal(t, 1, result.IterationCount)
	assert.Equal(t, 2, result.TaskCount)
	assert.Equal(t, 1, result.LinkCount)

	got, err := e.projects.GetByID(ctx, result.Project.ID)
	require.NoError(t, err)
	assert.Equal(t, "Imported", got.Name)

	tasks, err := e.tasks.ListByProject(ctx, result.Project.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "Top", tasks[0].Title)
	require.NotNil(t, tasks[1].ParentID)
	assert.Equal(t, tasks[0].ID, *tasks[1].ParentID)

	ok, err := e.members.IsMember(ctx, result.Project.ID, "mgr-1")
	require.NoError(t, err)
	assert.True(t, ok, "manager enrolled during import")
}

func TestImportService_ValidationRejectsWholeFile(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	svc := NewImportService(testutil.NewTestUoW(e.db))

	schema := importFixture()
	schema.Tasks[1].ParentRef = strPtr("missing")

	_, err := svc.ImportProjectFromSchema(ctx, schema)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "import validation failed")

	projects, err := e.projects.List(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, projects, "nothing persisted on validation failure")
}

func TestImportService_DuplicateLinkRollsBack(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	svc := NewImportService(testutil.NewTestUoW(e.db))

	schema := importFixture()
	// Duplicate edge passes structural validation but violates the link
	// table's primary key; the whole import must roll back.
	schema.Links = append(schema.Links, schema.Links[0])

	_, err := svc.ImportProjectFromSchema(ctx, schema)
	require.Error(t, err)

	projects, err := e.projects.List(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, projects)
}
