package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ErrDuplicateEmail is returned when creating a user with an email already in use.
var ErrDuplicateEmail = errors.New("email already registered")

// CreateUser inserts a new user account.
func (db *DB) CreateUser(ctx context.Context, input UserInput) (*User, error) {
	row := db.pool.QueryRow(ctx,
		`INSERT INTO users (name, email, password_hash)
		 VALUES ($1, $2, $3)
		 RETURNING id, name, email, password_hash, created_at, updated_at`,
		input.Name, strings.ToLower(input.Email), input.PasswordHash,
	)
	user, err := scanUser(row)
	if err != nil && strings.Contains(err.Error(), "duplicate key") {
		return nil, ErrDuplicateEmail
	}
	return user, err
}

// GetUserByID retrieves a user by ID. Returns nil when not found.
func (db *DB) GetUserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT id, name, email, password_hash, created_at, updated_at FROM users WHERE id = $1`,
		id,
	)
	user, err := scanUser(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return user, err
}

// GetUserByEmail retrieves a user by email (case-insensitive). Returns nil when not found.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT id, name, email, password_hash, created_at, updated_at FROM users WHERE email = $1`,
		strings.ToLower(email),
	)
	user, err := scanUser(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return user, err
}

func scanUser(row pgx.Row) (*User, error) {
	var user User
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &user, nil
}
