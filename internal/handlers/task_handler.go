package handlers

import (
	"errors"
	"net/http"
	"time"

	apierrors "team-task-api/internal/errors"
	"team-task-api/internal/models"
	"team-task-api/internal/services"

	"github.com/gin-gonic/gin"
)

// TaskHandler serves the task endpoints.
type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// CreateTaskRequest represents the request payload for creating a task
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	AssignedTo  string `json:"assignedTo"`
	Deadline    string `json:"deadline"`
}

// UpdateTaskRequest represents the request payload for updating a task.
// Empty fields are left unchanged.
type UpdateTaskRequest struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	AssignedTo  string            `json:"assignedTo"`
	Deadline    string            `json:"deadline"`
	Status      models.TaskStatus `json:"status"`
}

// UpdateTaskStatusRequest represents a minimal request to change status
type UpdateTaskStatusRequest struct {
	Status models.TaskStatus `json:"status"`
}

// bindDeadline parses an optional deadline, answering 400 when it is malformed.
func bindDeadline(c *gin.Context, raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, true
	}
	deadline, ok := parseDateFlexible(raw)
	if !ok {
		apierrors.BadRequest(c, "Invalid deadline format")
		return time.Time{}, false
	}
	return deadline, true
}

/*
CreateTask handles POST /api/tasks/create
Admin only. The assignee must be an existing user.
*/
func (h *TaskHandler) CreateTask(c *gin.Context) {
	caller, ok := requireAdmin(c)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}
	deadline, ok := bindDeadline(c, req.Deadline)
	if !ok {
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), caller, services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
		Deadline:    deadline,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

/*
GetTasks handles GET /api/tasks
Returns this week's tasks keyed Monday..Sunday. Members only see their own.
*/
func (h *TaskHandler) GetTasks(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}

	week, err := h.taskService.TasksThisWeek(c.Request.Context(), caller)
	if err != nil {
		respondTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, week)
}

// GetTaskByID handles GET /api/tasks/:id
func (h *TaskHandler) GetTaskByID(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		respondTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// UpdateTask handles PUT /api/tasks/update/:id
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	caller, ok := requireAdmin(c)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}
	deadline, ok := bindDeadline(c, req.Deadline)
	if !ok {
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), caller, c.Param("id"), services.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
		Deadline:    deadline,
		Status:      req.Status,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// UpdateTaskStatus handles PATCH /api/tasks/:id/status
func (h *TaskHandler) UpdateTaskStatus(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}

	// A missing or malformed body leaves Status empty, so the service still
	// reports an absent task or a non-assignee before the invalid status.
	var req UpdateTaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req = UpdateTaskStatusRequest{}
	}

	task, err := h.taskService.UpdateTaskStatus(c.Request.Context(), caller, c.Param("id"), req.Status)
	if err != nil {
		respondTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// DeleteTask handles DELETE /api/tasks/delete/:id
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), caller, c.Param("id")); err != nil {
		respondTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrForbidden):
		apierrors.Forbidden(c, "")
	case errors.Is(err, services.ErrTaskAccessDenied):
		apierrors.Forbidden(c, "Access denied")
	case errors.Is(err, services.ErrNotTaskAssignee):
		apierrors.Forbidden(c, "You can only update your assigned tasks")
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, services.ErrInvalidAssigneeID):
		apierrors.BadRequest(c, "Invalid User ID format")
	case errors.Is(err, services.ErrAssigneeNotFound):
		apierrors.BadRequest(c, "Assigned user not found!")
	case errors.Is(err, services.ErrInvalidStatus):
		apierrors.BadRequest(c, "Invalid status update")
	case errors.Is(err, services.ErrTitleRequired):
		apierrors.BadRequest(c, "Title is required")
	case errors.Is(err, services.ErrDeadlineRequired):
		apierrors.BadRequest(c, "Deadline is required")
	case errors.Is(err, services.ErrFailedToCreateTask):
		apierrors.InternalErrorWithDetail(c, err)
	default:
		serverError(c, "task request failed", err)
	}
}
