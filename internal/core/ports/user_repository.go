package ports

import (
	"context"

	"tracking/internal/core/domain/model/account"
)

// UserRepository defines the persistence contract for user identities.
type UserRepository interface {
	// Add persists a new user.
	// Returns an ObjectAlreadyExistsError when the username is taken.
	Add(ctx context.Context, user *account.User) error

	// GetByUsername retrieves a user by its unique username.
	GetByUsername(ctx context.Context, username string) (*account.User, error)
}
