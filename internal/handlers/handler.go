package handlers

import (
	"time"

	apierrors "team-task-api/internal/errors"
	"team-task-api/internal/logger"
	"team-task-api/internal/middleware"
	"team-task-api/internal/policy"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// currentCaller reads the identity set by the auth middleware, answering 401 when absent.
func currentCaller(c *gin.Context) (policy.Caller, bool) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return policy.Caller{}, false
	}
	return caller, true
}

// requireAdmin answers 403 for non-admin callers before any body is read.
func requireAdmin(c *gin.Context) (policy.Caller, bool) {
	caller, ok := currentCaller(c)
	if !ok {
		return policy.Caller{}, false
	}
	if policy.AdminOnly(caller) == policy.Forbid {
		apierrors.Forbidden(c, "")
		return policy.Caller{}, false
	}
	return caller, true
}

// parseDateFlexible accepts a full RFC3339 timestamp or a bare date.
func parseDateFlexible(dateStr string) (time.Time, bool) {
	if dateStr == "" {
		return time.Time{}, false
	}
	layouts := []string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, dateStr); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func serverError(c *gin.Context, action string, err error) {
	logger.Error("Handler: "+action, err,
		zap.String("request_id", c.GetString(middleware.ContextKeyRequestID)),
		zap.String("path", c.FullPath()),
	)
	apierrors.InternalError(c)
}
