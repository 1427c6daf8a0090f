// Package policy holds the role and ownership rules applied to every operation.
// Each rule is a pure function of the caller and, where relevant, the resource.
package policy

import "team-task-api/internal/models"

// Caller is the authenticated identity attached to a request.
type Caller struct {
	ID   string
	Role models.Role
}

func (c Caller) IsAdmin() bool {
	return c.Role == models.RoleAdmin
}

// Decision is the outcome of a rule.
type Decision bool

const (
	Allow  Decision = true
	Forbid Decision = false
)

// AdminOnly guards user management and every task mutation except status.
func AdminOnly(c Caller) Decision {
	return Decision(c.IsAdmin())
}

// ViewTask lets admins read any task and members read their own.
func ViewTask(c Caller, t *models.Task) Decision {
	return Decision(c.IsAdmin() || t.AssignedTo == c.ID)
}

// UpdateTaskStatus is reserved to the assignee. Admins go through the full update instead.
func UpdateTaskStatus(c Caller, t *models.Task) Decision {
	return Decision(t.AssignedTo == c.ID)
}

// TaskScope returns the assignee filter for listings: nil for admins, the
// caller's own id otherwise.
func TaskScope(c Caller) *string {
	if c.IsAdmin() {
		return nil
	}
	id := c.ID
	return &id
}
