package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Uguee/accessvc/domain"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", "accessvc", 15*time.Minute, 24*time.Hour)

	token, err := svc.GenerateAccessToken(42, domain.RoleDriver, "sess-42")
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, domain.RoleDriver, claims.Role)
	assert.Equal(t, "sess-42", claims.SessionID)
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	issuer := NewJWTService("secret-a", "accessvc", 15*time.Minute, 24*time.Hour)
	verifier := NewJWTService("secret-b", "accessvc", 15*time.Minute, 24*time.Hour)

	token, err := issuer.GenerateAccessToken(42, domain.RolePassenger, "sess-42")
	require.NoError(t, err)

	_, err = verifier.ValidateAccessToken(token)
	assert.Equal(t, domain.ErrTokenInvalid, err)
}

func TestJWTService_RejectsExpiredToken(t *testing.T) {
	svc := NewJWTService("test-secret", "accessvc", -time.Minute, -time.Minute)

	token, err := svc.GenerateAccessToken(42, domain.RolePassenger, "sess-42")
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsGarbage(t *testing.T) {
	svc := NewJWTService("test-secret", "accessvc", 15*time.Minute, 24*time.Hour)

	_, err := svc.ValidateAccessToken("not.a.token")
	assert.Equal(t, domain.ErrTokenInvalid, err)
}
