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

func TestDocumentRepository_FindByIDLoadsParentTask(t *testing.T) {
	db := newTestDB(t)
	tasks := NewTaskRepository(db)
	docs := NewDocumentRepository(db)
	ctx := context.Background()

	five := uint(5)
	task := &model.Task{
		Title:      "parent",
		DueDate:    time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		AssignedTo: &five,
		Documents:  []model.Document{{Name: "a.pdf", Path: "uploads/a.pdf"}},
	}
	require.NoError(t, tasks.Create(ctx, task))

	doc, err := docs.FindByID(ctx, task.Documents[0].ID)
	require.NoError(t, err)
	require.NotNil(t, doc.Task)
	assert.Equal(t, task.ID, doc.Task.ID)
	assert.True(t, doc.Task.AssignedToUser(5))
}

func TestDocumentRepository_DeleteByTask(t *testing.T) {
	db := newTestDB(t)
	tasks := NewTaskRepository(db)
	docs := NewDocumentRepository(db)
	ctx := context.Background()

	task := &model.Task{
		Title:   "doomed",
		DueDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		Documents: []model.Document{
			{Name: "a.pdf", Path: "uploads/a.pdf"},
			{Name: "b.pdf", Path: "uploads/b.pdf"},
		},
	}
	other := &model.Task{
		Title:     "survivor",
		DueDate:   time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
		Documents: []model.Document{{Name: "c.pdf", Path: "uploads/c.pdf"}},
	}
	require.NoError(t, tasks.Create(ctx, task))
	require.NoError(t, tasks.Create(ctx, other))

	require.NoError(t, docs.DeleteByTask(ctx, task.ID))
	require.NoError(t, tasks.Delete(ctx, task.ID))

	// no orphans: every document of the deleted task is gone
	remaining, err := docs.ListByTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	_, err = tasks.FindByID(ctx, task.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// the other task's documents are untouched
	kept, err := docs.ListByTask(ctx, other.ID)
	require.NoError(t, err)
	assert.Len(t, kept, 1)
}
