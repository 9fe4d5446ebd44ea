// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents a user in the CityFeed application.
// Email is stored lowercased so uniqueness is case-insensitive.
// Password is a bcrypt hash and is never serialized.
type User struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Email      string    `gorm:"unique;not null" json:"email"`
	Password   string    `gorm:"not null" json:"-"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Bio        string    `json:"bio"`
	City       string    `json:"city"`
	IsVerified bool      `json:"is_verified"`
	IsActive   bool      `gorm:"default:true" json:"is_active"`
	Status     int       `json:"status"`
	PostsCount int       `gorm:"default:0" json:"posts_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Posts      []Post    `gorm:"foreignKey:UserID" json:"posts,omitempty"`
}
