package services

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whisperwall/server/internal/apperror"
	"github.com/whisperwall/server/internal/dto"
	"github.com/whisperwall/server/internal/models"
)

func TestAuthService_Register(t *testing.T) {
	svc := NewAuthService(newTestDB(t), testConfig())

	t.Run("invalid email", func(t *testing.T) {
		_, err := svc.Register(&dto.RegisterRequest{Email: "nope", Password: "longenough"})
		assert.ErrorIs(t, err, apperror.ErrValidation)
	})

	t.Run("short password", func(t *testing.T) {
		_, err := svc.Register(&dto.RegisterRequest{Email: "a@example.com", Password: "short"})
		assert.ErrorIs(t, err, apperror.ErrValidation)
	})

	t.Run("success issues token with role claim", func(t *testing.T) {
		resp, err := svc.Register(&dto.RegisterRequest{Email: "a@example.com", Password: "longenough"})
		require.NoError(t, err)
		assert.Equal(t, models.RoleUser, resp.Role)
		assert.NotEmpty(t, resp.RefreshToken)

		token, err := jwt.Parse(resp.Token, func(*jwt.Token) (interface{}, error) {
			return []byte("test-secret"), nil
		})
		require.NoError(t, err)
		claims := token.Claims.(jwt.MapClaims)
		assert.Equal(t, resp.UserID.String(), claims["sub"])
		assert.Equal(t, models.RoleUser, claims["role"])
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.Register(&dto.RegisterRequest{Email: "a@example.com", Password: "longenough"})
		assert.ErrorIs(t, err, apperror.ErrConflict)
	})

	t.Run("admin seed list grants admin role", func(t *testing.T) {
		resp, err := svc.Register(&dto.RegisterRequest{Email: "Admin@Example.com", Password: "longenough"})
		require.NoError(t, err)
		assert.Equal(t, models.RoleAdmin, resp.Role)
	})
}

func TestAuthService_Login(t *testing.T) {
	svc := NewAuthService(newTestDB(t), testConfig())

	registered, err := svc.Register(&dto.RegisterRequest{Email: "a@example.com", Password: "longenough"})
	require.NoError(t, err)

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(&dto.LoginRequest{Email: "b@example.com", Password: "longenough"})
		assert.ErrorIs(t, err, apperror.ErrUnauthenticated)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(&dto.LoginRequest{Email: "a@example.com", Password: "wrongwrong"})
		assert.ErrorIs(t, err, apperror.ErrUnauthenticated)
	})

	t.Run("success", func(t *testing.T) {
		resp, err := svc.Login(&dto.LoginRequest{Email: "a@example.com", Password: "longenough"})
		require.NoError(t, err)
		assert.Equal(t, registered.UserID, resp.UserID)
		assert.Equal(t, models.RoleUser, resp.Role)
	})
}

func TestAuthService_Me(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())
	user := seedUser(t, db, "me@example.com", models.RoleAdmin)

	resp, err := svc.Me(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "me@example.com", resp.Email)
	assert.Equal(t, models.RoleAdmin, resp.Role)
}

func TestAuthService_RefreshRotation(t *testing.T) {
	svc := NewAuthService(newTestDB(t), testConfig())

	registered, err := svc.Register(&dto.RegisterRequest{Email: "a@example.com", Password: "longenough"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: registered.RefreshToken})
	require.NoError(t, err)
	assert.Equal(t, registered.UserID, refreshed.UserID)
	assert.NotEqual(t, registered.RefreshToken, refreshed.RefreshToken)

	// the presented token was revoked by the rotation
	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: registered.RefreshToken})
	assert.ErrorIs(t, err, apperror.ErrUnauthenticated)
}

func TestAuthService_Logout(t *testing.T) {
	svc := NewAuthService(newTestDB(t), testConfig())

	registered, err := svc.Register(&dto.RegisterRequest{Email: "a@example.com", Password: "longenough"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(&dto.LogoutRequest{RefreshToken: registered.RefreshToken}))

	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: registered.RefreshToken})
	assert.ErrorIs(t, err, apperror.ErrUnauthenticated)
}
