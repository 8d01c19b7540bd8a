// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Friend is a single directed edge in the friend graph: UserID lists FriendID
// as a friend. The relation is one-directional; B does not see A as a friend
// just because A added B. The composite unique index gives the edge set
// semantics: re-adding an existing friend is a no-op at the store level.
type Friend struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"not null;uniqueIndex:idx_friend_edge" json:"userid"`
	FriendID  string    `gorm:"not null;uniqueIndex:idx_friend_edge" json:"friend_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (Friend) TableName() string {
	return "friends"
}
