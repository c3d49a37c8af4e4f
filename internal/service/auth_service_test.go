package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fittrack/fitness-api/internal/domain"
)

const testJWTSecret = "unit-test-secret"

func newAuthFixture() (*fakeUserRepo, AuthService) {
	users := newFakeUserRepo()
	return users, NewAuthService(users, testJWTSecret, time.Hour)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates an account with the user role", func(t *testing.T) {
		users, svc := newAuthFixture()
		account, token, err := svc.Register(ctx, "alice", "hunter2-hunter2")
		require.NoError(t, err)
		assert.NotZero(t, account.ID)
		assert.Equal(t, domain.RoleUser, account.Role)
		assert.Empty(t, account.PasswordHash)
		assert.NotEmpty(t, token)

		stored, err := users.GetByID(ctx, account.ID)
		require.NoError(t, err)
		assert.NotEmpty(t, stored.PasswordHash)
		assert.NotEqual(t, "hunter2-hunter2", stored.PasswordHash)
	})

	t.Run("duplicate username conflicts", func(t *testing.T) {
		_, svc := newAuthFixture()
		_, _, err := svc.Register(ctx, "alice", "hunter2-hunter2")
		require.NoError(t, err)
		_, _, err = svc.Register(ctx, "alice", "different-password")
		assert.ErrorIs(t, err, ErrUserAlreadyExists)
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("empty credentials are a validation error", func(t *testing.T) {
		_, svc := newAuthFixture()
		_, _, err := svc.Register(ctx, "", "hunter2-hunter2")
		assert.ErrorIs(t, err, domain.ErrValidation)
		_, _, err = svc.Register(ctx, "alice", "")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials yield a parsable token", func(t *testing.T) {
		_, svc := newAuthFixture()
		_, _, err := svc.Register(ctx, "alice", "hunter2-hunter2")
		require.NoError(t, err)

		token, account, err := svc.Login(ctx, "alice", "hunter2-hunter2")
		require.NoError(t, err)
		assert.Empty(t, account.PasswordHash)

		claims := &TokenClaims{}
		parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
			return []byte(testJWTSecret), nil
		})
		require.NoError(t, err)
		assert.True(t, parsed.Valid)
		assert.Equal(t, account.ID, claims.UserID)
		assert.Equal(t, domain.RoleUser, claims.Role)
	})

	t.Run("wrong password and unknown user map to the same error", func(t *testing.T) {
		_, svc := newAuthFixture()
		_, _, err := svc.Register(ctx, "alice", "hunter2-hunter2")
		require.NoError(t, err)

		_, _, badPassword := svc.Login(ctx, "alice", "wrong-password")
		_, _, noSuchUser := svc.Login(ctx, "nobody", "wrong-password")
		assert.ErrorIs(t, badPassword, ErrAuthenticationFailed)
		assert.ErrorIs(t, noSuchUser, ErrAuthenticationFailed)
		assert.ErrorIs(t, badPassword, domain.ErrUnauthenticated)
	})
}
