package service

import (
	"context"
	"testing"

	"myboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthService_Signup(t *testing.T) {
	t.Parallel()

	repos := setupRepos(t)
	svc := NewAuthService(repos.accounts)
	ctx := context.Background()

	account, err := svc.Signup(ctx, "alice", "sesame", "member", "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, account)

	// the stored password is a digest, never the plaintext
	assert.NotEqual(t, "sesame", account.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(account.Password), []byte("sesame")))
}

func TestAuthService_Signup_Validation(t *testing.T) {
	t.Parallel()

	repos := setupRepos(t)
	svc := NewAuthService(repos.accounts)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "", "pw", "", "")
	require.Error(t, err)

	_, err = svc.Signup(ctx, "alice", "", "", "")
	require.Error(t, err)
}

func TestAuthService_Signup_DuplicateUserID(t *testing.T) {
	t.Parallel()

	repos := setupRepos(t)
	svc := NewAuthService(repos.accounts)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "alice", "pw1", "", "")
	require.NoError(t, err)

	_, err = svc.Signup(ctx, "alice", "pw2", "", "")
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestAuthService_Authenticate(t *testing.T) {
	t.Parallel()

	repos := setupRepos(t)
	svc := NewAuthService(repos.accounts)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "alice", "sesame", "member", "alice@example.com")
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		account, err := svc.Authenticate(ctx, "alice", "sesame")
		require.NoError(t, err)
		assert.Equal(t, "alice", account.UserID)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "nobody", "sesame")
		assert.ErrorIs(t, err, ErrUnknownUser)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "alice", "open sesame")
		assert.ErrorIs(t, err, ErrBadPassword)
	})
}
