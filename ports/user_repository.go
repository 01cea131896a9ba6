package ports

import (
	"context"

	"github.com/SylvinIsamaza/lung-cancer/models"
)

// UserRepository defines the interface for credential storage
type UserRepository interface {
	// Create persists a new user; fails with a conflict error when the
	// username is already taken
	Create(ctx context.Context, user *models.User) error

	// GetByUsername retrieves a user by their unique username
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}
