package repository

import (
	"context"

	"github.com/hollis-dev/SatchelBot_Go/internal/domain"
)

// User defines the interface for user persistence
type User interface {
	// UpsertUser registers a user by Discord ID, filling in the generated
	// internal ID on first registration.
	UpsertUser(ctx context.Context, user *domain.User) error
	GetUserByDiscordID(ctx context.Context, discordID string) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}
