package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"team-task-api/internal/auth"
	"team-task-api/internal/logger"
	"team-task-api/internal/models"
	"team-task-api/internal/policy"
	"team-task-api/internal/repository"

	"go.uber.org/zap"
)

// AuthService handles registration, account creation and login.
type AuthService struct {
	users  repository.UserRepository
	tokens *auth.TokenIssuer
}

// NewAuthService creates a new AuthService.
func NewAuthService(users repository.UserRepository, tokens *auth.TokenIssuer) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
	}
}

// AccountInput carries the fields needed to create an account.
type AccountInput struct {
	Name     string
	Email    string
	Password string
	Role     models.Role
}

func (in *AccountInput) normalize() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	switch {
	case in.Name == "":
		return ErrNameRequired
	case in.Email == "":
		return ErrEmailRequired
	case in.Password == "":
		return ErrPasswordRequired
	}
	return nil
}

// Register creates the sole admin account. It fails once any admin exists.
func (s *AuthService) Register(ctx context.Context, input AccountInput) (*models.User, error) {
	if err := input.normalize(); err != nil {
		return nil, err
	}

	exists, err := s.users.AdminExists(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to check admin: %w", err)
	}
	if exists {
		return nil, ErrAdminExists
	}

	input.Role = models.RoleAdmin
	user, err := s.createAccount(ctx, input)
	if errors.Is(err, ErrEmailTaken) {
		// Also raised when a concurrent registration took the admin slot first.
		if exists, checkErr := s.users.AdminExists(ctx); checkErr == nil && exists {
			return nil, ErrAdminExists
		}
	}
	if err != nil {
		return nil, err
	}

	logger.Info("Service: admin registered", zap.String("user_id", user.ID))
	return user, nil
}

// CreateUser lets the admin add an account. Role defaults to member.
func (s *AuthService) CreateUser(ctx context.Context, caller policy.Caller, input AccountInput) (*models.User, error) {
	if policy.AdminOnly(caller) == policy.Forbid {
		return nil, ErrForbidden
	}
	if input.Role == "" {
		input.Role = models.RoleMember
	}
	if !input.Role.Valid() {
		return nil, ErrInvalidRole
	}
	// The caller is an admin, so a second one can never be added.
	if input.Role == models.RoleAdmin {
		return nil, ErrAdminExists
	}
	if err := input.normalize(); err != nil {
		return nil, err
	}

	user, err := s.createAccount(ctx, input)
	if err != nil {
		return nil, err
	}

	logger.Info("Service: user created",
		zap.String("user_id", user.ID),
		zap.String("created_by", caller.ID))
	return user, nil
}

func (s *AuthService) createAccount(ctx context.Context, input AccountInput) (*models.User, error) {
	if _, err := s.users.FindByEmail(ctx, input.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashed, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: hashed,
		Role:     input.Role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials and returns a signed bearer token.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (string, *models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !auth.CheckPassword(user.Password, input.Password) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return token, user, nil
}
