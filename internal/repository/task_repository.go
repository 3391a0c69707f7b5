package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"taskdesk/internal/model"
)

// TaskFilter narrows and orders task listings. Zero-value fields are ignored.
type TaskFilter struct {
	Status     string
	Priority   string
	DueDate    *time.Time
	AssigneeID *uint
	SortBy     string
	Order      string
}

// sortColumns maps client-facing sort keys to columns. Anything else falls
// back to due_date so the ORDER BY clause is never built from raw input.
var sortColumns = map[string]string{
	"dueDate":   "due_date",
	"title":     "title",
	"status":    "status",
	"priority":  "priority",
	"createdAt": "created_at",
}

// TaskRepository defines task persistence operations.
type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	FindByID(ctx context.Context, id uint) (*model.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]model.Task, error)
	Update(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, id uint) error
}

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository builds a GORM-backed repository.
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

// Create persists the task along with any documents already attached to it.
func (r *taskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *taskRepository) FindByID(ctx context.Context, id uint) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).Preload("Documents").First(&task, id).Error; err != nil {
		return nil, err
	}
	if task.Documents == nil {
		task.Documents = []model.Document{}
	}
	return &task, nil
}

func (r *taskRepository) List(ctx context.Context, filter TaskFilter) ([]model.Task, error) {
	query := r.db.WithContext(ctx).Preload("Documents")
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}
	if filter.DueDate != nil {
		query = query.Where("due_date = ?", *filter.DueDate)
	}
	if filter.AssigneeID != nil {
		query = query.Where("assigned_to = ?", *filter.AssigneeID)
	}

	column, ok := sortColumns[filter.SortBy]
	if !ok {
		column = "due_date"
	}
	direction := "asc"
	if filter.Order == "desc" {
		direction = "desc"
	}

	var tasks []model.Task
	if err := query.Order(column + " " + direction).Find(&tasks).Error; err != nil {
		return nil, err
	}
	for i := range tasks {
		if tasks[i].Documents == nil {
			tasks[i].Documents = []model.Document{}
		}
	}
	return tasks, nil
}

// Update saves field changes and inserts any new (unsaved) documents on the
// task. Existing documents are left untouched.
func (r *taskRepository) Update(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

func (r *taskRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Task{}, id).Error
}
