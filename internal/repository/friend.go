// Package repository implements the data access layer for the application.
package repository

import (
	"context"

	"myboard/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FriendRepository defines the interface for friend-graph operations.
// Edges are directed: Add(u, f) makes f visible to u, never the reverse.
type FriendRepository interface {
	Add(ctx context.Context, userID, friendID string) error
	FriendIDs(ctx context.Context, userID string) ([]string, error)
	FriendAccounts(ctx context.Context, userID string) ([]models.Account, error)
}

// friendRepository implements FriendRepository
type friendRepository struct {
	db *gorm.DB
}

// NewFriendRepository creates a new friend repository
func NewFriendRepository(db *gorm.DB) FriendRepository {
	return &friendRepository{db: db}
}

// Add inserts a directed friend edge. ON CONFLICT DO NOTHING gives the edge
// set semantics atomically, so concurrent duplicate adds cannot fail.
func (r *friendRepository) Add(ctx context.Context, userID, friendID string) error {
	edge := models.Friend{UserID: userID, FriendID: friendID}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&edge).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// FriendIDs returns the ids this user has added. A user with no friend record
// gets an empty slice, not an error.
func (r *friendRepository) FriendIDs(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	if err := r.db.WithContext(ctx).
		Model(&models.Friend{}).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Pluck("friend_id", &ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

// FriendAccounts returns the account records behind the user's friend list,
// for the friend-list page.
func (r *friendRepository) FriendAccounts(ctx context.Context, userID string) ([]models.Account, error) {
	var accounts []models.Account
	if err := r.db.WithContext(ctx).
		Table("accounts").
		Joins("JOIN friends f ON f.friend_id = accounts.user_id").
		Where("f.user_id = ?", userID).
		Find(&accounts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return accounts, nil
}
