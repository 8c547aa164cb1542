package auth

import (
	"testing"
	"time"

	"github.com/hugohenrick/erp-condominio/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser(t *testing.T) *user.User {
	t.Helper()
	u, err := user.NewUser("admin@asociatie.ro", "Maria", "Popescu", "parola123", user.RoleAdminAssociation)
	require.NoError(t, err)
	return u
}

func TestTokenRoundTrip(t *testing.T) {
	svc, err := NewJWTService("segredo", time.Hour)
	require.NoError(t, err)
	u := testUser(t)

	token, err := svc.GenerateToken(u)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, u.Email, claims.Email)
	assert.Equal(t, string(user.RoleAdminAssociation), claims.Role)
}

func TestTokenRejectedWithOtherKey(t *testing.T) {
	a, _ := NewJWTService("segredo-a", time.Hour)
	b, _ := NewJWTService("segredo-b", time.Hour)

	token, err := a.GenerateToken(testUser(t))
	require.NoError(t, err)

	_, err = b.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = a.ValidateToken(token + "x")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExpiredTokenIsNotRefreshed(t *testing.T) {
	svc, _ := NewJWTService("segredo", time.Hour)
	issued := time.Now().Add(-2 * time.Hour)
	svc.now = func() time.Time { return issued }

	token, err := svc.GenerateToken(testUser(t))
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)

	_, err = svc.RefreshToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestRefreshToken(t *testing.T) {
	svc, _ := NewJWTService("segredo", time.Hour)
	u := testUser(t)

	token, err := svc.GenerateToken(u)
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(token)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(refreshed)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
}

func TestNewJWTServiceRequiresKey(t *testing.T) {
	_, err := NewJWTService("", time.Hour)
	assert.ErrorIs(t, err, ErrMissingJWTKey)
}

func TestInviteTokenIsNotASession(t *testing.T) {
	svc, _ := NewJWTService("segredo", time.Hour)
	u := testUser(t)

	invite, err := svc.GenerateInviteToken(u, 24*time.Hour)
	require.NoError(t, err)

	claims, err := svc.ValidateInviteToken(invite)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)

	_, err = svc.ValidateToken(invite)
	assert.ErrorIs(t, err, ErrInvalidClaims)
	_, err = svc.RefreshToken(invite)
	assert.ErrorIs(t, err, ErrInvalidClaims)

	session, err := svc.GenerateToken(u)
	require.NoError(t, err)
	_, err = svc.ValidateInviteToken(session)
	assert.ErrorIs(t, err, ErrInvalidClaims)
}
