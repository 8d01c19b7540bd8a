// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Account represents a registered user of the board.
// UserID is the login name chosen at signup and is unique across all accounts.
// Accounts are never updated or deleted after creation; no route exists for either.
type Account struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"uniqueIndex;not null" json:"userid"`
	Password  string    `gorm:"not null" json:"-"`
	Group     string    `json:"usergroup"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
