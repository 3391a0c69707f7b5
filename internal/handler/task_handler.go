package handler

import (
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"taskdesk/internal/auth"
	"taskdesk/internal/errors"
	"taskdesk/internal/repository"
	"taskdesk/internal/service"
)

// dueDateFormats are accepted for the dueDate field and filter, most common
// first.
var dueDateFormats = []string{"2006-01-02", time.RFC3339}

// TaskHandler handles task CRUD endpoints. Create and update accept
// multipart bodies so documents can be uploaded alongside fields.
type TaskHandler struct {
	taskService service.TaskService
}

// NewTaskHandler creates a new task handler.
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// List godoc
// @Summary List tasks visible to the requester
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param priority query string false "Filter by priority"
// @Param dueDate query string false "Filter by due date (YYYY-MM-DD)"
// @Param sortBy query string false "Sort field" default(dueDate)
// @Param order query string false "Sort order (asc or desc)" default(asc)
// @Success 200 {array} model.Task
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	filter := repository.TaskFilter{
		Status:   c.QueryParam("status"),
		Priority: c.QueryParam("priority"),
		SortBy:   c.QueryParam("sortBy"),
		Order:    c.QueryParam("order"),
	}
	if v := c.QueryParam("dueDate"); v != "" {
		due, err := parseDueDate(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{Message: "Invalid due date"})
		}
		filter.DueDate = &due
	}

	tasks, err := h.taskService.List(c.Request().Context(), auth.CurrentUser(c), filter)
	if err != nil {
		return fail(c, err, "Failed to fetch tasks")
	}
	return c.JSON(http.StatusOK, tasks)
}

// Create godoc
// @Summary Create a task with optional document uploads
// @Tags tasks
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Title"
// @Param description formData string false "Description"
// @Param status formData string false "Status"
// @Param priority formData string false "Priority"
// @Param dueDate formData string true "Due date (YYYY-MM-DD)"
// @Param assignedTo formData int false "Assignee user id"
// @Param documents formData file false "Up to 3 attachments"
// @Success 201 {object} model.Task
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	in, files, err := bindTaskForm(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.Create(c.Request().Context(), in, files)
	if err != nil {
		return fail(c, err, "Task creation failed")
	}
	return c.JSON(http.StatusCreated, task)
}

// Get godoc
// @Summary Get a single task
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Success 200 {object} model.Task
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /tasks/{id} [get]
func (h *TaskHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	task, err := h.taskService.Get(c.Request().Context(), auth.CurrentUser(c), id)
	if err != nil {
		return fail(c, err, "Failed to get task")
	}
	return c.JSON(http.StatusOK, task)
}

// Update godoc
// @Summary Update a task, optionally attaching more documents
// @Tags tasks
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Param title formData string false "Title"
// @Param description formData string false "Description"
// @Param status formData string false "Status"
// @Param priority formData string false "Priority"
// @Param dueDate formData string true "Due date (YYYY-MM-DD)"
// @Param assignedTo formData int false "Assignee user id (omit to clear)"
// @Param documents formData file false "Up to 3 attachments"
// @Success 200 {object} model.Task
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /tasks/{id} [put]
func (h *TaskHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	in, files, err := bindTaskForm(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.Update(c.Request().Context(), auth.CurrentUser(c), id, in, files)
	if err != nil {
		return fail(c, err, "Update failed")
	}
	return c.JSON(http.StatusOK, task)
}

// Delete godoc
// @Summary Delete a task and its documents
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.taskService.Delete(c.Request().Context(), auth.CurrentUser(c), id); err != nil {
		return fail(c, err, "Delete failed")
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Task deleted"})
}

// bindTaskForm reads the multipart body into a TaskInput plus uploaded
// files. Absent text fields stay nil so updates leave them unchanged; an
// absent assignedTo clears the assignee.
func bindTaskForm(c echo.Context) (service.TaskInput, []*multipart.FileHeader, error) {
	var in service.TaskInput

	form, err := c.MultipartForm()
	if err != nil {
		return in, nil, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{Message: "invalid request body"})
	}

	in.Title = formField(form, "title")
	in.Description = formField(form, "description")
	in.Status = formField(form, "status")
	in.Priority = formField(form, "priority")

	rawDue := formField(form, "dueDate")
	if rawDue == nil {
		return in, nil, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{Message: "Invalid due date"})
	}
	due, err := parseDueDate(*rawDue)
	if err != nil {
		return in, nil, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{Message: "Invalid due date"})
	}
	in.DueDate = due

	if raw := formField(form, "assignedTo"); raw != nil && *raw != "" {
		assignee, err := strconv.ParseUint(*raw, 10, 32)
		if err != nil {
			return in, nil, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{Message: "Invalid assignee"})
		}
		id := uint(assignee)
		in.AssignedTo = &id
	}

	return in, form.File["documents"], nil
}

func formField(form *multipart.Form, name string) *string {
	values, ok := form.Value[name]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}

func parseDueDate(v string) (time.Time, error) {
	var err error
	for _, layout := range dueDateFormats {
		var t time.Time
		if t, err = time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

func pathID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{Message: "invalid id"})
	}
	return uint(id), nil
}
