package user

import (
	"context"
	"fmt"

	"github.com/hollis-dev/SatchelBot_Go/internal/domain"
	"github.com/hollis-dev/SatchelBot_Go/internal/effect"
	"github.com/hollis-dev/SatchelBot_Go/internal/inventory"
	"github.com/hollis-dev/SatchelBot_Go/internal/item"
	"github.com/hollis-dev/SatchelBot_Go/internal/logger"
	"github.com/hollis-dev/SatchelBot_Go/internal/repository"
)

// Service defines the interface for user registration and item use.
type Service interface {
	// RegisterUser upserts a user by Discord ID and returns the stored record.
	RegisterUser(ctx context.Context, discordID, username string) (*domain.User, error)
	// FindUserByDiscordID returns domain.ErrUserNotFound when unregistered.
	FindUserByDiscordID(ctx context.Context, discordID string) (*domain.User, error)
	UseItem(ctx context.Context, params UseItemParams) (*domain.EffectSummary, error)
}

// UseItemParams carries everything UseItem needs about the caller.
// RoleIDs must be the caller's current guild roles; role requirements are
// checked against this snapshot, not a live Discord fetch.
type UseItemParams struct {
	DiscordID string
	Username  string
	GuildID   string
	RoleIDs   []string
	ItemName  string
}

type service struct {
	repo      repository.User
	catalog   item.Catalog
	inventory inventory.Service
	engine    *effect.Engine
	cache     *userCache
}

// NewService creates a new user service
func NewService(repo repository.User, catalog item.Catalog, inventorySvc inventory.Service, engine *effect.Engine) Service {
	return &service{
		repo:      repo,
		catalog:   catalog,
		inventory: inventorySvc,
		engine:    engine,
		cache:     newUserCache(defaultCacheSize, defaultCacheTTL),
	}
}

func (s *service) RegisterUser(ctx context.Context, discordID, username string) (*domain.User, error) {
	log := logger.FromContext(ctx)

	if discordID == "" || username == "" {
		return nil, fmt.Errorf("%w: discord id and username are required", domain.ErrInvalidInput)
	}

	u := &domain.User{DiscordID: discordID, Username: username}
	if err := s.repo.UpsertUser(ctx, u); err != nil {
		log.Error("Failed to upsert user", "error", err, "discord_id", discordID)
		return nil, err
	}

	s.cache.Set(discordID, u)
	log.Debug("User registered", "user_id", u.ID, "username", u.Username)
	return u, nil
}

func (s *service) FindUserByDiscordID(ctx context.Context, discordID string) (*domain.User, error) {
	if u, ok := s.cache.Get(discordID); ok {
		return u, nil
	}

	u, err := s.repo.GetUserByDiscordID(ctx, discordID)
	if err != nil {
		return nil, err
	}

	s.cache.Set(discordID, u)
	return u, nil
}
