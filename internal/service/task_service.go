package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"time"

	"gorm.io/gorm"

	"taskdesk/internal/auth"
	apperrors "taskdesk/internal/errors"
	"taskdesk/internal/model"
	"taskdesk/internal/repository"
	"taskdesk/internal/storage"
)

// MaxTaskDocuments caps how many files one create or update may attach.
const MaxTaskDocuments = 3

// TaskInput carries the writable task fields. Nil pointers leave the field
// unchanged on update; AssignedTo nil clears the assignee.
type TaskInput struct {
	Title       *string
	Description *string
	Status      *string
	Priority    *string
	DueDate     time.Time
	AssignedTo  *uint
}

// TaskService exposes task operations with the ownership policy applied:
// existence is checked first (404), then access (403).
type TaskService interface {
	List(ctx context.Context, user *model.User, filter repository.TaskFilter) ([]model.Task, error)
	Create(ctx context.Context, in TaskInput, files []*multipart.FileHeader) (*model.Task, error)
	Get(ctx context.Context, user *model.User, id uint) (*model.Task, error)
	Update(ctx context.Context, user *model.User, id uint, in TaskInput, files []*multipart.FileHeader) (*model.Task, error)
	Delete(ctx context.Context, user *model.User, id uint) error
}

type taskService struct {
	tasks repository.TaskRepository
	docs  repository.DocumentRepository
	files storage.Store
}

// NewTaskService builds a TaskService.
func NewTaskService(tasks repository.TaskRepository, docs repository.DocumentRepository, files storage.Store) TaskService {
	return &taskService{tasks: tasks, docs: docs, files: files}
}

// List returns tasks matching the filter. Non-admins only ever see tasks
// assigned to them, whatever the filter says.
func (s *taskService) List(ctx context.Context, user *model.User, filter repository.TaskFilter) ([]model.Task, error) {
	if !user.IsAdmin() {
		filter.AssigneeID = &user.ID
	}
	tasks, err := s.tasks.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return tasks, nil
}

// Create persists a task with up to MaxTaskDocuments uploaded attachments.
func (s *taskService) Create(ctx context.Context, in TaskInput, files []*multipart.FileHeader) (*model.Task, error) {
	docs, err := s.storeUploads(files)
	if err != nil {
		return nil, err
	}

	task := &model.Task{
		DueDate:    in.DueDate,
		AssignedTo: in.AssignedTo,
		Documents:  docs,
	}
	applyInput(task, in)

	if err := s.tasks.Create(ctx, task); err != nil {
		s.removeFiles(docs)
		return nil, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

// Get returns a task the user may access.
func (s *taskService) Get(ctx context.Context, user *model.User, id uint) (*model.Task, error) {
	return s.authorize(ctx, user, id)
}

// Update applies field changes and appends any newly uploaded documents.
func (s *taskService) Update(ctx context.Context, user *model.User, id uint, in TaskInput, files []*multipart.FileHeader) (*model.Task, error) {
	task, err := s.authorize(ctx, user, id)
	if err != nil {
		return nil, err
	}

	docs, err := s.storeUploads(files)
	if err != nil {
		return nil, err
	}

	applyInput(task, in)
	task.DueDate = in.DueDate
	task.AssignedTo = in.AssignedTo
	task.Documents = append(task.Documents, docs...)

	if err := s.tasks.Update(ctx, task); err != nil {
		s.removeFiles(docs)
		return nil, fmt.Errorf("update task: %w", err)
	}
	return task, nil
}

// Delete removes a task, its document rows, and their stored files.
func (s *taskService) Delete(ctx context.Context, user *model.User, id uint) error {
	task, err := s.authorize(ctx, user, id)
	if err != nil {
		return err
	}

	if err := s.docs.DeleteByTask(ctx, id); err != nil {
		return fmt.Errorf("delete documents: %w", err)
	}
	if err := s.tasks.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	// DB rows are gone; losing a file here only leaks disk space.
	s.removeFiles(task.Documents)
	return nil
}

// authorize loads the task and applies the ownership policy, missing first.
func (s *taskService) authorize(ctx context.Context, user *model.User, id uint) (*model.Task, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("load task: %w", err)
	}
	if !auth.CanAccessTask(user, task) {
		return nil, apperrors.ErrAccessDenied
	}
	return task, nil
}

func (s *taskService) storeUploads(files []*multipart.FileHeader) ([]model.Document, error) {
	if len(files) > MaxTaskDocuments {
		return nil, apperrors.ErrTooManyFiles
	}
	docs := make([]model.Document, 0, len(files))
	for _, file := range files {
		path, err := s.files.Save(file)
		if err != nil {
			s.removeFiles(docs)
			return nil, fmt.Errorf("store upload: %w", err)
		}
		docs = append(docs, model.Document{
			Name: filepath.Base(file.Filename),
			Path: path,
		})
	}
	return docs, nil
}

func (s *taskService) removeFiles(docs []model.Document) {
	for _, doc := range docs {
		_ = s.files.Remove(doc.Path)
	}
}

func applyInput(task *model.Task, in TaskInput) {
	if in.Title != nil {
		task.Title = *in.Title
	}
	if in.Description != nil {
		task.Description = *in.Description
	}
	if in.Status != nil {
		task.Status = *in.Status
	}
	if in.Priority != nil {
		task.Priority = *in.Priority
	}
}
