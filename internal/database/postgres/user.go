package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hollis-dev/SatchelBot_Go/internal/domain"
)

// UserRepository implements repository.User for PostgreSQL
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// UpsertUser registers a user by Discord ID. The username is refreshed on
// conflict so renamed accounts stay current.
func (r *UserRepository) UpsertUser(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (discord_id, username)
		VALUES ($1, $2)
		ON CONFLICT (discord_id) DO UPDATE SET username = EXCLUDED.username
		RETURNING user_id
	`

	if err := r.db.QueryRow(ctx, query, user.DiscordID, user.Username).Scan(&user.ID); err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}
	return nil
}

// GetUserByDiscordID retrieves a user by their Discord ID
func (r *UserRepository) GetUserByDiscordID(ctx context.Context, discordID string) (*domain.User, error) {
	query := `
		SELECT user_id, discord_id, username
		FROM users
		WHERE discord_id = $1
	`

	var user domain.User
	err := r.db.QueryRow(ctx, query, discordID).Scan(&user.ID, &user.DiscordID, &user.Username)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// GetUserByID retrieves a user by internal ID
func (r *UserRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `
		SELECT user_id, discord_id, username
		FROM users
		WHERE user_id = $1
	`

	var user domain.User
	err := r.db.QueryRow(ctx, query, userID).Scan(&user.ID, &user.DiscordID, &user.Username)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}
