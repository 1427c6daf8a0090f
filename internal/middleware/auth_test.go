package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"team-task-api/internal/auth"
	"team-task-api/internal/models"
	"team-task-api/internal/policy"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIssuer(secret string) *auth.TokenIssuer {
	return auth.NewTokenIssuer(secret, "team-task-api", "team-task-clients", time.Hour)
}

func newProtectedRouter(tokens *auth.TokenIssuer, seen *policy.Caller) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Authenticate(tokens))
	r.GET("/protected", func(c *gin.Context) {
		caller, ok := CallerFrom(c)
		if !ok {
			c.Status(http.StatusTeapot)
			return
		}
		*seen = caller
		c.Status(http.StatusOK)
	})
	return r
}

func TestAuthenticate_Success(t *testing.T) {
	tokens := newIssuer("secret")
	var seen policy.Caller
	r := newProtectedRouter(tokens, &seen)

	token, err := tokens.GenerateToken("user-1", models.RoleMember)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, policy.Caller{ID: "user-1", Role: models.RoleMember}, seen)
}

func TestAuthenticate_Rejected(t *testing.T) {
	tokens := newIssuer("secret")
	forged, err := newIssuer("other-secret").GenerateToken("user-1", models.RoleAdmin)
	require.NoError(t, err)
	valid, err := tokens.GenerateToken("user-1", models.RoleAdmin)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic " + valid},
		{"empty token", "Bearer "},
		{"malformed token", "Bearer not-a-jwt"},
		{"bad signature", "Bearer " + forged},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen policy.Caller
			r := newProtectedRouter(tokens, &seen)

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			r.ServeHTTP(w, req)
			require.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Empty(t, seen.ID)

			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.NotEmpty(t, body["message"])
		})
	}
}

func TestCallerFrom_Unauthenticated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := CallerFrom(c)
	assert.False(t, ok)

	c.Set(ContextKeyUserID, "user-1")
	c.Set(ContextKeyRole, "admin")
	_, ok = CallerFrom(c)
	assert.False(t, ok, "role must be a models.Role")
}
