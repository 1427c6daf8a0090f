package services

import "errors"

var (
	ErrForbidden          = errors.New("forbidden")
	ErrAdminExists        = errors.New("admin already exists. only one admin can register")
	ErrEmailTaken         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRole        = errors.New("invalid role")
	ErrUserNotFound       = errors.New("user not found")
	ErrNameRequired       = errors.New("name is required")
	ErrEmailRequired      = errors.New("email is required")
	ErrPasswordRequired   = errors.New("password is required")

	ErrTaskNotFound       = errors.New("task not found")
	ErrTitleRequired      = errors.New("title is required")
	ErrDeadlineRequired   = errors.New("deadline is required")
	ErrInvalidAssigneeID  = errors.New("invalid user id format")
	ErrAssigneeNotFound   = errors.New("assigned user not found")
	ErrInvalidStatus      = errors.New("invalid status update")
	ErrNotTaskAssignee    = errors.New("you can only update your assigned tasks")
	ErrTaskAccessDenied   = errors.New("access denied")
	ErrFailedToCreateTask = errors.New("failed to create task")
)
