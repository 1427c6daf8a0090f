package middleware

import (
	"strings"

	"team-task-api/internal/auth"
	apierrors "team-task-api/internal/errors"
	"team-task-api/internal/models"
	"team-task-api/internal/policy"

	"github.com/gin-gonic/gin"
)

// Context keys set by Authenticate
const (
	ContextKeyUserID = "user_id"
	ContextKeyRole   = "role"
)

// Authenticate validates the bearer token in the Authorization header and
// stores the caller's id and role in the context.
func Authenticate(tokens *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			apierrors.Unauthorized(c, "Not authorized, no token")
			return
		}

		claims, err := tokens.ValidateToken(tokenString)
		if err != nil {
			apierrors.Unauthorized(c, "Not authorized, token failed")
			return
		}

		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyRole, claims.Role)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// CallerFrom returns the identity stored by Authenticate.
func CallerFrom(c *gin.Context) (policy.Caller, bool) {
	id := c.GetString(ContextKeyUserID)
	if id == "" {
		return policy.Caller{}, false
	}
	role, ok := c.Get(ContextKeyRole)
	if !ok {
		return policy.Caller{}, false
	}
	r, ok := role.(models.Role)
	if !ok {
		return policy.Caller{}, false
	}
	return policy.Caller{ID: id, Role: r}, true
}
