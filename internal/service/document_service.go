package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"taskdesk/internal/auth"
	apperrors "taskdesk/internal/errors"
	"taskdesk/internal/model"
	"taskdesk/internal/repository"
)

// DocumentService exposes document access. Documents inherit their parent
// task's ownership.
type DocumentService interface {
	GetForDownload(ctx context.Context, user *model.User, id uint) (*model.Document, error)
}

type documentService struct {
	docs repository.DocumentRepository
}

// NewDocumentService builds a DocumentService.
func NewDocumentService(docs repository.DocumentRepository) DocumentService {
	return &documentService{docs: docs}
}

// GetForDownload returns the document if the user may access its parent
// task: missing first (404), then access (403).
func (s *documentService) GetForDownload(ctx context.Context, user *model.User, id uint) (*model.Document, error) {
	doc, err := s.docs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("load document: %w", err)
	}
	if doc.Task == nil {
		// orphan row; cascade delete should make this impossible
		return nil, apperrors.ErrDocumentNotFound
	}
	if !auth.CanAccessTask(user, doc.Task) {
		return nil, apperrors.ErrAccessDenied
	}
	return doc, nil
}
