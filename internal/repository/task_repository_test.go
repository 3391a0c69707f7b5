package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"taskdesk/internal/model"
)

func seedTasks(t *testing.T, db *gorm.DB) (TaskRepository, context.Context) {
	t.Helper()
	repo := NewTaskRepository(db)
	ctx := context.Background()

	five, six := uint(5), uint(6)
	fixtures := []model.Task{
		{Title: "alpha", Status: "open", Priority: "high", DueDate: day(1), AssignedTo: &five},
		{Title: "beta", Status: "done", Priority: "low", DueDate: day(3), AssignedTo: &five},
		{Title: "gamma", Status: "open", Priority: "low", DueDate: day(2), AssignedTo: &six},
		{Title: "delta", Status: "open", Priority: "high", DueDate: day(4)},
	}
	for i := range fixtures {
		require.NoError(t, repo.Create(ctx, &fixtures[i]))
	}
	return repo, ctx
}

func day(n int) time.Time {
	return time.Date(2026, 9, n, 0, 0, 0, 0, time.UTC)
}

func titles(tasks []model.Task) []string {
	out := make([]string, len(tasks))
	for i, task := range tasks {
		out[i] = task.Title
	}
	return out
}

func TestTaskRepository_ListFilters(t *testing.T) {
	repo, ctx := seedTasks(t, newTestDB(t))

	open, err := repo.List(ctx, TaskFilter{Status: "open"})
	require.NoError(t, err)
	assert.Len(t, open, 3)

	lowOpen, err := repo.List(ctx, TaskFilter{Status: "open", Priority: "low"})
	require.NoError(t, err)
	assert.Equal(t, []string{"gamma"}, titles(lowOpen))

	due := day(3)
	onDay, err := repo.List(ctx, TaskFilter{DueDate: &due})
	require.NoError(t, err)
	assert.Equal(t, []string{"beta"}, titles(onDay))

	five := uint(5)
	mine, err := repo.List(ctx, TaskFilter{AssigneeID: &five})
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}

func TestTaskRepository_ListSorting(t *testing.T) {
	repo, ctx := seedTasks(t, newTestDB(t))

	byDue, err := repo.List(ctx, TaskFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "gamma", "beta", "delta"}, titles(byDue), "default sort is due date ascending")

	byDueDesc, err := repo.List(ctx, TaskFilter{Order: "desc"})
	require.NoError(t, err)
	assert.Equal(t, []string{"delta", "beta", "gamma", "alpha"}, titles(byDueDesc))

	byTitle, err := repo.List(ctx, TaskFilter{SortBy: "title"})
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta", "delta", "gamma"}, titles(byTitle))

	// unknown sort keys fall back to due date instead of reaching the SQL
	hostile, err := repo.List(ctx, TaskFilter{SortBy: "due_date; DROP TABLE tasks"})
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "gamma", "beta", "delta"}, titles(hostile))
}

func TestTaskRepository_CreateWithDocuments(t *testing.T) {
	db := newTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	task := &model.Task{
		Title:   "with files",
		DueDate: day(1),
		Documents: []model.Document{
			{Name: "a.pdf", Path: "uploads/a.pdf"},
			{Name: "b.pdf", Path: "uploads/b.pdf"},
		},
	}
	require.NoError(t, repo.Create(ctx, task))

	loaded, err := repo.FindByID(ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Documents, 2)
	assert.Equal(t, task.ID, loaded.Documents[0].TaskID)
}

func TestTaskRepository_UpdateAppendsDocuments(t *testing.T) {
	db := newTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	task := &model.Task{
		Title:     "start",
		DueDate:   day(1),
		Documents: []model.Document{{Name: "a.pdf", Path: "uploads/a.pdf"}},
	}
	require.NoError(t, repo.Create(ctx, task))

	task.Title = "renamed"
	task.Documents = append(task.Documents, model.Document{Name: "b.pdf", Path: "uploads/b.pdf"})
	require.NoError(t, repo.Update(ctx, task))

	loaded, err := repo.FindByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "renamed", loaded.Title)
	assert.Len(t, loaded.Documents, 2)
}

func TestTaskRepository_FindByID_Missing(t *testing.T) {
	repo := NewTaskRepository(newTestDB(t))
	_, err := repo.FindByID(context.Background(), 404)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
