package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"team-task-api/internal/logger"
	"team-task-api/internal/models"
	"team-task-api/internal/policy"
	"team-task-api/internal/repository"

	"go.uber.org/zap"
)

// TaskService handles task business logic
type TaskService struct {
	tasks repository.TaskRepository
	users repository.UserRepository
	now   func() time.Time
	loc   *time.Location
}

// Option configures a TaskService.
type Option func(*TaskService)

// WithClock replaces time.Now, used to pick the current week.
func WithClock(now func() time.Time) Option {
	return func(s *TaskService) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLocation sets the zone in which weeks start and weekday names are read.
func WithLocation(loc *time.Location) Option {
	return func(s *TaskService) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// NewTaskService creates a new TaskService
func NewTaskService(tasks repository.TaskRepository, users repository.UserRepository, opts ...Option) *TaskService {
	s := &TaskService{
		tasks: tasks,
		users: users,
		now:   time.Now,
		loc:   time.Local,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description string
	AssignedTo  string
	Deadline    time.Time
}

// CreateTask stores a task for an existing user. Admin only.
func (s *TaskService) CreateTask(ctx context.Context, caller policy.Caller, input CreateTaskInput) (*models.Task, error) {
	if policy.AdminOnly(caller) == policy.Forbid {
		return nil, ErrForbidden
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if input.Deadline.IsZero() {
		return nil, ErrDeadlineRequired
	}

	assignee, err := s.resolveAssignee(ctx, input.AssignedTo)
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		Title:       title,
		Description: input.Description,
		AssignedTo:  assignee.ID,
		Deadline:    input.Deadline,
		Status:      models.StatusPending,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToCreateTask, err)
	}
	task.Assignee = assignee.Summary()

	logger.Info("Service: task created",
		zap.String("task_id", task.ID),
		zap.String("assigned_to", task.AssignedTo))
	return task, nil
}

func (s *TaskService) resolveAssignee(ctx context.Context, id string) (*models.User, error) {
	if !models.ValidID(id) {
		return nil, ErrInvalidAssigneeID
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAssigneeNotFound
		}
		return nil, fmt.Errorf("failed to find assignee: %w", err)
	}
	return user, nil
}

// TasksThisWeek returns the caller's visible tasks due in the current
// Monday..Sunday week, bucketed by weekday.
func (s *TaskService) TasksThisWeek(ctx context.Context, caller policy.Caller) (models.TasksByDay, error) {
	start, end := WeekBounds(s.now().In(s.loc))

	tasks, err := s.tasks.List(ctx, repository.TaskFilter{
		AssignedTo:   policy.TaskScope(caller),
		DeadlineFrom: &start,
		DeadlineTo:   &end,
	})
	if err != nil {
		return models.TasksByDay{}, fmt.Errorf("failed to list tasks: %w", err)
	}
	if err := s.attachAssignees(ctx, tasks); err != nil {
		return models.TasksByDay{}, err
	}
	return GroupByWeekday(tasks, s.loc), nil
}

// GetTask returns a task the caller may view.
func (s *TaskService) GetTask(ctx context.Context, caller policy.Caller, id string) (*models.Task, error) {
	task, err := s.findTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if policy.ViewTask(caller, task) == policy.Forbid {
		return nil, ErrTaskAccessDenied
	}
	if err := s.attachAssignee(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// UpdateTaskInput holds the fields an admin may overwrite. Empty values leave
// the stored field unchanged.
type UpdateTaskInput struct {
	Title       string
	Description string
	AssignedTo  string
	Deadline    time.Time
	Status      models.TaskStatus
}

// UpdateTask overwrites the non-empty fields of input. Admin only.
func (s *TaskService) UpdateTask(ctx context.Context, caller policy.Caller, id string, input UpdateTaskInput) (*models.Task, error) {
	if policy.AdminOnly(caller) == policy.Forbid {
		return nil, ErrForbidden
	}

	task, err := s.findTask(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.AssignedTo != "" {
		if _, err := s.resolveAssignee(ctx, input.AssignedTo); err != nil {
			return nil, err
		}
	}
	if input.Status != "" && !input.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	changed := task.Apply(
		models.WithTitle(strings.TrimSpace(input.Title)),
		models.WithDescription(input.Description),
		models.WithAssignee(input.AssignedTo),
		models.WithDeadline(input.Deadline),
		models.WithStatus(input.Status),
	)
	if changed > 0 {
		if err := s.tasks.Update(ctx, task); err != nil {
			return nil, s.translateTaskError(err, "failed to update task")
		}
	}

	if err := s.attachAssignee(ctx, task); err != nil {
		return nil, err
	}

	logger.Info("Service: task updated",
		zap.String("task_id", task.ID),
		zap.Int("fields", changed))
	return task, nil
}

// UpdateTaskStatus changes the status of a task. Only its assignee may do so.
func (s *TaskService) UpdateTaskStatus(ctx context.Context, caller policy.Caller, id string, status models.TaskStatus) (*models.Task, error) {
	task, err := s.findTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if policy.UpdateTaskStatus(caller, task) == policy.Forbid {
		return nil, ErrNotTaskAssignee
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	if err := s.tasks.UpdateStatus(ctx, task.ID, status); err != nil {
		return nil, s.translateTaskError(err, "failed to update task status")
	}
	task.Status = status

	if err := s.attachAssignee(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// DeleteTask removes a task. Admin only.
func (s *TaskService) DeleteTask(ctx context.Context, caller policy.Caller, id string) error {
	if policy.AdminOnly(caller) == policy.Forbid {
		return ErrForbidden
	}
	if err := s.tasks.Delete(ctx, id); err != nil {
		return s.translateTaskError(err, "failed to delete task")
	}

	logger.Info("Service: task deleted", zap.String("task_id", id))
	return nil
}

func (s *TaskService) findTask(ctx context.Context, id string) (*models.Task, error) {
	if !models.ValidID(id) {
		return nil, ErrTaskNotFound
	}
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, s.translateTaskError(err, "failed to find task")
	}
	return task, nil
}

func (s *TaskService) translateTaskError(err error, action string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrTaskNotFound
	}
	return fmt.Errorf("%s: %w", action, err)
}

func (s *TaskService) attachAssignee(ctx context.Context, task *models.Task) error {
	tasks := []models.Task{*task}
	if err := s.attachAssignees(ctx, tasks); err != nil {
		return err
	}
	task.Assignee = tasks[0].Assignee
	return nil
}

// attachAssignees fills the assignee summary of each task. Tasks whose user has
// been deleted keep a nil summary.
func (s *TaskService) attachAssignees(ctx context.Context, tasks []models.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(tasks))
	ids := make([]string, 0, len(tasks))
	for _, t := range tasks {
		if _, ok := seen[t.AssignedTo]; ok {
			continue
		}
		seen[t.AssignedTo] = struct{}{}
		ids = append(ids, t.AssignedTo)
	}

	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to load assignees: %w", err)
	}
	for i := range tasks {
		if u, ok := users[tasks[i].AssignedTo]; ok {
			tasks[i].Assignee = u.Summary()
		}
	}
	return nil
}
