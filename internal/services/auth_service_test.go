package services

import (
	"testing"

	"skillswap_backend/internal/auth"
	"skillswap_backend/internal/services/dto"
	"skillswap_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_RegisterAndLogin(t *testing.T) {
	t.Parallel()

	env := newTestEnv()

	registered, err := env.auth.Register(nil, &dto.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, registered.AccessToken)
	assert.NotEmpty(t, registered.User.ID)

	loggedIn, err := env.auth.Login(nil, &dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, loggedIn.User.ID)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	env.store.addUser("alice", false)

	_, err := env.auth.Register(nil, &dto.RegisterRequest{
		Username: "alice2",
		Email:    "alice@example.com",
		Password: "s3cret-pass",
	})

	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	hash, err := auth.HashPassword("right-pass")
	require.NoError(t, err)
	user := env.store.addUser("alice", false)
	user.PasswordHash = hash

	_, err = env.auth.Login(nil, &dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong-pass",
	})

	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestAuthService_Login_BannedUser(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	hash, err := auth.HashPassword("s3cret-pass")
	require.NoError(t, err)
	user := env.store.addUser("alice", true)
	user.PasswordHash = hash

	_, err = env.auth.Login(nil, &dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "s3cret-pass",
	})

	assert.ErrorIs(t, err, apperrors.ErrUserBanned)
}
