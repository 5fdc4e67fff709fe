package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"taskhub/internal/auth"
	apperrors "taskhub/internal/errors"
	"taskhub/internal/service"
)

// TaskHandler handles task endpoints. All of them sit behind the auth gate,
// and the owner ID is always taken from the resolved identity.
type TaskHandler struct {
	taskService service.TaskService
}

// NewTaskHandler creates a new task handler.
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// CreateTaskRequest represents a task creation request.
type CreateTaskRequest struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description" validate:"required"`
	Category    string    `json:"category" validate:"required"`
	Completed   bool      `json:"completed"`
	DueDate     time.Time `json:"due_date" validate:"required"`
}

// UpdateTaskRequest represents a partial task update. Absent fields are left
// unchanged.
type UpdateTaskRequest struct {
	Title       *string    `json:"title" validate:"omitempty,min=1"`
	Description *string    `json:"description" validate:"omitempty,min=1"`
	Category    *string    `json:"category" validate:"omitempty,min=1"`
	Completed   *bool      `json:"completed"`
	DueDate     *time.Time `json:"due_date"`
}

// MessageResponse carries a human-readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

func taskIDParam(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid task id")
	}
	return id, nil
}

// Create godoc
// @Summary Create a task
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateTaskRequest true "Task data"
// @Success 201 {object} model.Task
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	var req CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	owner := auth.CurrentUser(c)
	task, err := h.taskService.Create(c.Request().Context(), owner.ID, req.Title, req.Description, req.Category, req.Completed, req.DueDate)
	if err != nil {
		he := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, task)
}

// List godoc
// @Summary List the caller's tasks, latest due date first
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Task
// @Failure 401 {object} errors.ErrorResponse
// @Router /tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	owner := auth.CurrentUser(c)
	tasks, err := h.taskService.List(c.Request().Context(), owner.ID)
	if err != nil {
		he := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, tasks)
}

// Get godoc
// @Summary Get one of the caller's tasks
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Success 200 {object} model.Task
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{id} [get]
func (h *TaskHandler) Get(c echo.Context) error {
	id, err := taskIDParam(c)
	if err != nil {
		return err
	}

	owner := auth.CurrentUser(c)
	task, err := h.taskService.Get(c.Request().Context(), id, owner.ID)
	if err != nil {
		he := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, task)
}

// Update godoc
// @Summary Update one of the caller's tasks
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Param request body UpdateTaskRequest true "Fields to update"
// @Success 200 {object} model.Task
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{id} [put]
func (h *TaskHandler) Update(c echo.Context) error {
	id, err := taskIDParam(c)
	if err != nil {
		return err
	}

	var req UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	owner := auth.CurrentUser(c)
	patch := service.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Completed:   req.Completed,
		DueDate:     req.DueDate,
	}

	task, err := h.taskService.Update(c.Request().Context(), id, owner.ID, patch)
	if err != nil {
		he := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, task)
}

// Delete godoc
// @Summary Delete one of the caller's tasks
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	id, err := taskIDParam(c)
	if err != nil {
		return err
	}

	owner := auth.CurrentUser(c)
	if err := h.taskService.Delete(c.Request().Context(), id, owner.ID); err != nil {
		he := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "task deleted successfully"})
}

// Categories godoc
// @Summary List the caller's distinct task categories
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Success 200 {array} string
// @Failure 401 {object} errors.ErrorResponse
// @Router /tasks/custom/categories [get]
func (h *TaskHandler) Categories(c echo.Context) error {
	owner := auth.CurrentUser(c)
	categories, err := h.taskService.Categories(c.Request().Context(), owner.ID)
	if err != nil {
		he := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, categories)
}

// TasksByCategory godoc
// @Summary List the caller's tasks in one category
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param category path string true "Category name"
// @Success 200 {array} model.Task
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/custom/categories/{category} [get]
func (h *TaskHandler) TasksByCategory(c echo.Context) error {
	owner := auth.CurrentUser(c)
	tasks, err := h.taskService.TasksByCategory(c.Request().Context(), owner.ID, c.Param("category"))
	if err != nil {
		he := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, tasks)
}

// Complete godoc
// @Summary Mark one of the caller's tasks as completed
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Success 200 {object} model.Task
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/custom/{id}/complete [put]
func (h *TaskHandler) Complete(c echo.Context) error {
	id, err := taskIDParam(c)
	if err != nil {
		return err
	}

	owner := auth.CurrentUser(c)
	task, err := h.taskService.Complete(c.Request().Context(), id, owner.ID)
	if err != nil {
		he := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, task)
}
