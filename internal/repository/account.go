// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"
	"strings"

	"myboard/internal/models"

	"gorm.io/gorm"
)

// AccountRepository defines persistence operations for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *models.Account) error
	GetByUserID(ctx context.Context, userID string) (*models.Account, error)
	GetByUserIDs(ctx context.Context, userIDs []string) ([]models.Account, error)
	List(ctx context.Context, limit, offset int) ([]models.Account, error)
}

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository returns a new AccountRepository implementation.
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(ctx context.Context, account *models.Account) error {
	if err := r.db.WithContext(ctx).Create(account).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError("Account already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

// GetByUserID returns (nil, nil) when no account with the given user id exists.
func (r *accountRepository) GetByUserID(ctx context.Context, userID string) (*models.Account, error) {
	var account models.Account
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &account, nil
}

func (r *accountRepository) GetByUserIDs(ctx context.Context, userIDs []string) ([]models.Account, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	var accounts []models.Account
	if err := r.db.WithContext(ctx).Where("user_id IN ?", userIDs).Find(&accounts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return accounts, nil
}

func (r *accountRepository) List(ctx context.Context, limit, offset int) ([]models.Account, error) {
	var accounts []models.Account
	if err := r.db.WithContext(ctx).Limit(limit).Offset(offset).Find(&accounts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return accounts, nil
}

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	// PostgreSQL unique violation SQLSTATE 23505; SQLite phrasing for tests
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}
