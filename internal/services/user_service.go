package services

import (
	"context"
	"errors"
	"fmt"

	"team-task-api/internal/models"
	"team-task-api/internal/policy"
	"team-task-api/internal/repository"
)

// UserService reads and deletes accounts.
type UserService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// ListUsers returns every account. Admin only.
func (s *UserService) ListUsers(ctx context.Context, caller policy.Caller) ([]models.User, error) {
	if policy.AdminOnly(caller) == policy.Forbid {
		return nil, ErrForbidden
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// GetUser returns one account to any authenticated caller.
func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// DeleteUser hard deletes an account. Admin only. Tasks assigned to it are kept.
func (s *UserService) DeleteUser(ctx context.Context, caller policy.Caller, id string) error {
	if policy.AdminOnly(caller) == policy.Forbid {
		return ErrForbidden
	}
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
