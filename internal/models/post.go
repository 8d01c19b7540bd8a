// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Post represents a board post.
// Writer is the Account.UserID of the author and is set server-side at
// creation; it never changes afterwards. ImagePath is the server-local path of
// an optionally attached image, also immutable after creation. Deletes are
// physical: there is no soft-delete column and no tombstone.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Writer    string    `gorm:"not null;index" json:"writer"`
	Title     string    `json:"title"`
	Content   string    `gorm:"type:text" json:"content"`
	ImagePath string    `json:"path,omitempty"`
	CreatedAt time.Time `json:"date"`
	UpdatedAt time.Time `json:"updated_at"`
}
