package repository

import (
	"context"
	"errors"
	"time"

	"team-task-api/internal/models"
)

var (
	// ErrNotFound is returned when no record matches.
	ErrNotFound = errors.New("repository: record not found")
	// ErrDuplicate is returned when a unique constraint (email, admin slot) rejects a write.
	ErrDuplicate = errors.New("repository: duplicate record")
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create stores a new user, assigning its id
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id string) (*models.User, error)

	// FindByIDs returns the users among ids that exist, keyed by id
	FindByIDs(ctx context.Context, ids []string) (map[string]models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// AdminExists reports whether an admin account is stored
	AdminExists(ctx context.Context) (bool, error)

	// List returns every user, oldest first
	List(ctx context.Context) ([]models.User, error)

	// Delete hard deletes a user
	Delete(ctx context.Context, id string) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create stores a new task, assigning its id
	Create(ctx context.Context, task *models.Task) error

	// FindByID finds a task by ID
	FindByID(ctx context.Context, id string) (*models.Task, error)

	// List retrieves tasks matching the filter ordered by deadline
	List(ctx context.Context, filter TaskFilter) ([]models.Task, error)

	// Update overwrites every mutable field of a task
	Update(ctx context.Context, task *models.Task) error

	// UpdateStatus changes only the status column
	UpdateStatus(ctx context.Context, id string, status models.TaskStatus) error

	// Delete hard deletes a task
	Delete(ctx context.Context, id string) error
}

// TaskFilter holds filtering options for listing tasks.
// DeadlineFrom and DeadlineTo are both inclusive.
type TaskFilter struct {
	AssignedTo   *string
	DeadlineFrom *time.Time
	DeadlineTo   *time.Time
}

// Store bundles the repositories backed by one connection.
type Store interface {
	Users() UserRepository
	Tasks() TaskRepository
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
