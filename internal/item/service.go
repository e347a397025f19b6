package item

import (
	"context"
	"fmt"
	"time"

	"github.com/hollis-dev/SatchelBot_Go/internal/domain"
	"github.com/hollis-dev/SatchelBot_Go/internal/logger"
	"github.com/hollis-dev/SatchelBot_Go/internal/naming"
	"github.com/hollis-dev/SatchelBot_Go/internal/repository"
)

// Catalog is the read side of the item service. Dependents that only look
// definitions up (shop, effect engine, item use) take this instead of the
// full Service.
type Catalog interface {
	// Resolve returns the decoded definition for a case-insensitive name.
	Resolve(ctx context.Context, guildID, name string) (*Definition, error)
	// Invalidate evicts a cached definition after its row changed.
	Invalidate(guildID, name string)
	List(ctx context.Context, guildID string) ([]domain.Item, error)
}

// Service defines the interface for item definition management.
type Service interface {
	Catalog

	Create(ctx context.Context, def *domain.Item) (*Definition, error)
	Update(ctx context.Context, def *domain.Item) (*Definition, error)
	// Delete removes a definition. Held copies in inventories and backpacks
	// survive as orphans.
	Delete(ctx context.Context, guildID, name string) error
}

type service struct {
	repo  repository.Item
	cache *definitionCache
}

// NewService creates a new item service with the default cache bounds.
func NewService(repo repository.Item) Service {
	return NewServiceWithCache(repo, DefaultCacheSize, DefaultCacheTTL)
}

// NewServiceWithCache creates a new item service with explicit cache bounds.
func NewServiceWithCache(repo repository.Item, cacheSize int, cacheTTL time.Duration) Service {
	return &service{
		repo:  repo,
		cache: newDefinitionCache(cacheSize, cacheTTL),
	}
}

func (s *service) Resolve(ctx context.Context, guildID, name string) (*Definition, error) {
	key := naming.Key(name)

	if def, ok := s.cache.Get(guildID, key); ok {
		return def, nil
	}

	stored, err := s.repo.GetItemByName(ctx, guildID, key)
	if err != nil {
		return nil, err
	}

	def, err := decode(stored)
	if err != nil {
		// A stored encoding stopped parsing. Surface it loudly instead of
		// letting every use of the item fail with a cryptic error.
		logger.FromContext(ctx).Error("Stored item has undecodable encoding",
			"item", stored.Name, "guild_id", guildID, "error", err)
		return nil, fmt.Errorf("item %s: %w", stored.Name, err)
	}

	s.cache.Set(guildID, key, def)
	return def, nil
}

func (s *service) Invalidate(guildID, name string) {
	s.cache.Invalidate(guildID, naming.Key(name))
}

func (s *service) List(ctx context.Context, guildID string) ([]domain.Item, error) {
	return s.repo.ListItems(ctx, guildID)
}

func (s *service) Create(ctx context.Context, def *domain.Item) (*Definition, error) {
	decoded, err := s.validate(def)
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateItem(ctx, def); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("Item created",
		"item", def.Name, "guild_id", def.GuildID, "price", def.Price, "stock", def.Stock)

	s.cache.Invalidate(def.GuildID, naming.Key(def.Name))
	decoded.Item = *def
	return decoded, nil
}

func (s *service) Update(ctx context.Context, def *domain.Item) (*Definition, error) {
	decoded, err := s.validate(def)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateItem(ctx, def); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("Item updated", "item", def.Name, "guild_id", def.GuildID)

	s.cache.Invalidate(def.GuildID, naming.Key(def.Name))
	decoded.Item = *def
	return decoded, nil
}

func (s *service) Delete(ctx context.Context, guildID, name string) error {
	if err := s.repo.DeleteItem(ctx, guildID, name); err != nil {
		return err
	}

	logger.FromContext(ctx).Info("Item deleted", "item", name, "guild_id", guildID)

	s.cache.Invalidate(guildID, naming.Key(name))
	return nil
}

// validate checks a definition before it is written. Encodings are decoded
// here so a bad action or requirement is rejected at admin time, never
// discovered by a player using the item.
func (s *service) validate(def *domain.Item) (*Definition, error) {
	if naming.Key(def.Name) == "" {
		return nil, fmt.Errorf("%w: item name is required", domain.ErrInvalidInput)
	}
	if def.Price < 0 {
		return nil, fmt.Errorf("%w: price cannot be negative", domain.ErrInvalidInput)
	}
	if def.Stock < domain.UnlimitedStock {
		return nil, fmt.Errorf("%w: stock must be %d (unlimited) or non-negative",
			domain.ErrInvalidInput, domain.UnlimitedStock)
	}

	decoded, err := decode(def)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return decoded, nil
}
