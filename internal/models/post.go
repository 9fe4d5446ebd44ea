package models

import (
	"time"
)

// Post types form a closed set; ValidPostType is the single membership check.
const (
	PostTypeRecommend = "recommend"
	PostTypeHelp      = "help"
	PostTypeUpdate    = "update"
	PostTypeEvent     = "event"
)

// ValidPostType reports whether t is one of the four recognized post types.
func ValidPostType(t string) bool {
	switch t {
	case PostTypeRecommend, PostTypeHelp, PostTypeUpdate, PostTypeEvent:
		return true
	}
	return false
}

// Post represents a city-scoped message in the CityFeed application.
// Inactive posts are excluded from feeds and reject engagement mutations.
type Post struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Content  string `gorm:"type:text;not null" json:"content"`
	PostType string `gorm:"not null;index" json:"post_type"`
	ImageURL string `json:"image_url,omitempty"`
	UserID   uint   `gorm:"not null;index" json:"user_id"`
	User     User   `gorm:"foreignKey:UserID" json:"user"`
	City     string `gorm:"index" json:"city"`
	IsActive bool   `gorm:"default:true;index" json:"is_active"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likes_count"`
	// DislikesCount is not persisted; computed at query time
	DislikesCount int `gorm:"->" json:"dislikes_count"`
	// RepliesCount is not persisted; computed at query time
	RepliesCount int `gorm:"->" json:"replies_count"`
	// Liked indicates whether the current requesting user liked this post (computed)
	Liked bool `gorm:"->" json:"liked"`
	// Disliked indicates whether the current requesting user disliked this post (computed)
	Disliked  bool      `gorm:"->" json:"disliked"`
	Replies   []Reply   `gorm:"foreignKey:PostID" json:"replies"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
