package models

import (
	"time"
)

// PostDB represents a post record in the database
type PostDB struct {
	ID        int64     `json:"id" db:"id"`                 // Primary key
	Title     string    `json:"title" db:"title"`           // Post title
	Text      *string   `json:"text" db:"text"`             // Optional post body
	UserID    int64     `json:"user_id" db:"user_id"`       // Owning user
	CreatedAt time.Time `json:"created_at" db:"created_at"` // Creation timestamp, set once
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"` // Refreshed on every mutation
}

// PostWithAuthor is a post joined with its owner's username
type PostWithAuthor struct {
	PostDB
	Username string `json:"username" db:"username"` // Owner username
}

// PostEvent is published to Kafka on post lifecycle changes
type PostEvent struct {
	Event  string    `json:"event"` // created, updated or deleted
	PostID int64     `json:"post_id"`
	UserID int64     `json:"user_id"`
	Title  string    `json:"title,omitempty"`
	At     time.Time `json:"at"`
}
