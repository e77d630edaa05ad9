package repository

import (
	"context"

	"zapshift/internal/domain"
)

// UserRepository defines the persistence operations for users.
type UserRepository interface {
	// Create persists a new user.
	Create(ctx context.Context, user *domain.User) error

	// GetByEmail retrieves a user by email.
	// Returns ErrNotFound if no user exists with the given email.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}
