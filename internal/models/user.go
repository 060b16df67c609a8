package models

import (
	"time"
)

// UserDB represents a user record in the database
type UserDB struct {
	ID           int64     `json:"id" db:"id"`                     // Primary key
	Username     string    `json:"username" db:"username"`         // Unique username
	Email        *string   `json:"email" db:"email"`               // Optional email
	PasswordHash string    `json:"-" db:"password_hash"`           // Hashed password, never serialized
	IsSuperuser  bool      `json:"is_superuser" db:"is_superuser"` // Elevated privileges flag
	CreatedAt    time.Time `json:"created_at" db:"created_at"`     // Creation timestamp
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`     // Last update timestamp
}
