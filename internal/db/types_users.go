package db

import (
	"time"

	"github.com/google/uuid"
)

// User represents a stored user account
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserInput represents input for creating a user
type UserInput struct {
	Name         string
	Email        string
	PasswordHash string
}
