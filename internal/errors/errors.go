// Package errors writes the JSON error bodies shared by every handler.
package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Default messages
const (
	MsgUnauthorized = "Not authorized, no token"
	MsgForbidden    = "Forbidden"
	MsgNotFound     = "Not found"
	MsgBadRequest   = "Invalid request"
	MsgServerError  = "Server Error"
)

// APIError is the body of every error response
type APIError struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// RespondWithError sends an error response and stops the handler chain
func RespondWithError(c *gin.Context, statusCode int, err APIError) {
	c.AbortWithStatusJSON(statusCode, err)
}

func respond(c *gin.Context, statusCode int, message, fallback string) {
	if message == "" {
		message = fallback
	}
	RespondWithError(c, statusCode, APIError{Message: message})
}

// Unauthorized sends a 401 response
func Unauthorized(c *gin.Context, message string) {
	respond(c, http.StatusUnauthorized, message, MsgUnauthorized)
}

// Forbidden sends a 403 response
func Forbidden(c *gin.Context, message string) {
	respond(c, http.StatusForbidden, message, MsgForbidden)
}

// NotFound sends a 404 response
func NotFound(c *gin.Context, message string) {
	respond(c, http.StatusNotFound, message, MsgNotFound)
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, message string) {
	respond(c, http.StatusBadRequest, message, MsgBadRequest)
}

// InternalError sends a 500 response without detail
func InternalError(c *gin.Context) {
	respond(c, http.StatusInternalServerError, "", MsgServerError)
}

// InternalErrorWithDetail sends a 500 response carrying the raw error text.
// Only task creation exposes this.
func InternalErrorWithDetail(c *gin.Context, err error) {
	RespondWithError(c, http.StatusInternalServerError, APIError{
		Message: MsgServerError,
		Error:   err.Error(),
	})
}

// ServiceUnavailable sends a 503 response
func ServiceUnavailable(c *gin.Context, message string) {
	respond(c, http.StatusServiceUnavailable, message, "Service temporarily unavailable")
}
