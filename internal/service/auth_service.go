// Package service implements the application's business rules on top of the
// repository layer: authentication, feed visibility, and the per-operation
// authorization gates.
package service

import (
	"context"
	"errors"
	"log/slog"

	"myboard/internal/middleware"
	"myboard/internal/models"
	"myboard/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// Sentinel authentication failures. Both render identically to the client;
// they exist so the server can log the two cases distinctly.
var (
	ErrUnknownUser = errors.New("unknown user")
	ErrBadPassword = errors.New("wrong password")
)

// AuthService handles signup and credential verification.
type AuthService struct {
	accounts repository.AccountRepository
}

// NewAuthService returns a new AuthService.
func NewAuthService(accounts repository.AccountRepository) *AuthService {
	return &AuthService{accounts: accounts}
}

// Signup creates a new account with a bcrypt password digest. The user id must
// be unique; a duplicate surfaces as a validation error from the store.
func (s *AuthService) Signup(ctx context.Context, userID, password, group, email string) (*models.Account, error) {
	if userID == "" || password == "" {
		return nil, models.NewValidationError("User ID and password are required")
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	account := &models.Account{
		UserID:   userID,
		Password: string(digest),
		Group:    group,
		Email:    email,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// Authenticate verifies the credentials and returns the account on success.
// Failures return ErrUnknownUser or ErrBadPassword; callers must not expose
// which one occurred.
func (s *AuthService) Authenticate(ctx context.Context, userID, password string) (*models.Account, error) {
	account, err := s.accounts.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		middleware.Logger.InfoContext(ctx, "login failed: unknown user",
			slog.String("userid", userID))
		return nil, ErrUnknownUser
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)); err != nil {
		middleware.Logger.InfoContext(ctx, "login failed: wrong password",
			slog.String("userid", userID))
		return nil, ErrBadPassword
	}

	return account, nil
}
