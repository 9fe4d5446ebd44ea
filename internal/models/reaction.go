package models

import (
	"time"
)

// Reaction records a user's like or dislike on a post. A user has at most one
// reaction row per post (unique index), so like/dislike mutual exclusion is
// structural: flipping between them updates the row in place.
type Reaction struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_post_reaction" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_user_post_reaction" json:"post_id"`
	IsDislike bool      `gorm:"not null" json:"is_dislike"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
