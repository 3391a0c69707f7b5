package repository

import (
	"context"

	"gorm.io/gorm"

	"taskdesk/internal/model"
)

// DocumentRepository defines document persistence operations.
type DocumentRepository interface {
	FindByID(ctx context.Context, id uint) (*model.Document, error)
	ListByTask(ctx context.Context, taskID uint) ([]model.Document, error)
	DeleteByTask(ctx context.Context, taskID uint) error
}

type documentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository builds a GORM-backed repository.
func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

// FindByID loads a document with its parent task, which the ownership check
// needs.
func (r *documentRepository) FindByID(ctx context.Context, id uint) (*model.Document, error) {
	var doc model.Document
	if err := r.db.WithContext(ctx).Preload("Task").First(&doc, id).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepository) ListByTask(ctx context.Context, taskID uint) ([]model.Document, error) {
	var docs []model.Document
	if err := r.db.WithContext(ctx).Where("task_id = ?", taskID).Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

// DeleteByTask removes all documents owned by a task.
func (r *documentRepository) DeleteByTask(ctx context.Context, taskID uint) error {
	return r.db.WithContext(ctx).Where("task_id = ?", taskID).Delete(&model.Document{}).Error
}
