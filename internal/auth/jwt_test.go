package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"team-task-api/internal/models"
)

func newTestIssuer() *TokenIssuer {
	return NewTokenIssuer("test-secret", "team-task-api", "team-task-clients", time.Hour)
}

func TestGenerateAndValidateToken(t *testing.T) {
	issuer := newTestIssuer()
	token, err := issuer.GenerateToken("u-1", models.RoleAdmin)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := issuer.ValidateToken(token)
	require.NoError(t, err)
	require.Equal(t, "u-1", claims.UserID)
	require.Equal(t, models.RoleAdmin, claims.Role)
	require.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestValidateToken_Invalid(t *testing.T) {
	_, err := newTestIssuer().ValidateToken("invalid.token")
	require.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	issuer := newTestIssuer()
	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := issuer.GenerateToken("u-1", models.RoleMember)
	require.NoError(t, err)

	_, err = newTestIssuer().ValidateToken(token)
	require.Error(t, err)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := NewTokenIssuer("other", "team-task-api", "team-task-clients", time.Hour).
		GenerateToken("u-1", models.RoleMember)
	require.NoError(t, err)

	_, err = newTestIssuer().ValidateToken(token)
	require.Error(t, err)
}

func TestValidateToken_WrongAudience(t *testing.T) {
	token, err := NewTokenIssuer("test-secret", "team-task-api", "someone-else", time.Hour).
		GenerateToken("u-1", models.RoleMember)
	require.NoError(t, err)

	_, err = newTestIssuer().ValidateToken(token)
	require.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)
	require.NotEqual(t, "hunter2", hash)
	require.True(t, CheckPassword(hash, "hunter2"))
	require.False(t, CheckPassword(hash, "hunter3"))
}
