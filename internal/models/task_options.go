package models

import "time"

// TaskOption overwrites one field of a task. Constructors return nil for empty
// input, meaning "leave the field alone".
type TaskOption func(*Task)

func WithTitle(title string) TaskOption {
	if title == "" {
		return nil
	}
	return func(t *Task) {
		t.Title = title
	}
}

func WithDescription(description string) TaskOption {
	if description == "" {
		return nil
	}
	return func(t *Task) {
		t.Description = description
	}
}

func WithAssignee(userID string) TaskOption {
	if userID == "" {
		return nil
	}
	return func(t *Task) {
		t.AssignedTo = userID
	}
}

func WithDeadline(deadline time.Time) TaskOption {
	if deadline.IsZero() {
		return nil
	}
	return func(t *Task) {
		t.Deadline = deadline
	}
}

func WithStatus(status TaskStatus) TaskOption {
	if status == "" {
		return nil
	}
	return func(t *Task) {
		t.Status = status
	}
}

// Apply runs every non-nil option against t and reports how many changed it.
func (t *Task) Apply(opts ...TaskOption) int {
	applied := 0
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(t)
		applied++
	}
	return applied
}
