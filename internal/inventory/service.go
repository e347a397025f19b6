package inventory

import (
	"context"

	"github.com/hollis-dev/SatchelBot_Go/internal/domain"
	"github.com/hollis-dev/SatchelBot_Go/internal/logger"
	"github.com/hollis-dev/SatchelBot_Go/internal/naming"
	"github.com/hollis-dev/SatchelBot_Go/internal/repository"
)

// Service defines the interface for personal inventory operations. It is
// also the effect engine's item-bag collaborator.
type Service interface {
	Get(ctx context.Context, userID, guildID string) (*domain.Inventory, error)
	Quantity(ctx context.Context, userID, guildID, itemName string) (int, error)
	Add(ctx context.Context, userID, guildID, itemName string, amount int) error
	Remove(ctx context.Context, userID, guildID, itemName string, amount int) error
	Has(ctx context.Context, userID, guildID, itemName string, amount int) (bool, error)
}

type service struct {
	repo repository.Inventory
}

// NewService creates a new inventory service
func NewService(repo repository.Inventory) Service {
	return &service{repo: repo}
}

func (s *service) Get(ctx context.Context, userID, guildID string) (*domain.Inventory, error) {
	return s.repo.GetInventory(ctx, userID, guildID)
}

func (s *service) Quantity(ctx context.Context, userID, guildID, itemName string) (int, error) {
	return s.repo.GetQuantity(ctx, userID, guildID, naming.Key(itemName))
}

func (s *service) Add(ctx context.Context, userID, guildID, itemName string, amount int) error {
	log := logger.FromContext(ctx)
	log.Debug("Inventory add", "userID", userID, "guildID", guildID, "item", itemName, "amount", amount)
	return s.repo.AddQuantity(ctx, userID, guildID, naming.Key(itemName), amount)
}

func (s *service) Remove(ctx context.Context, userID, guildID, itemName string, amount int) error {
	log := logger.FromContext(ctx)
	log.Debug("Inventory remove", "userID", userID, "guildID", guildID, "item", itemName, "amount", amount)
	return s.repo.RemoveQuantity(ctx, userID, guildID, naming.Key(itemName), amount)
}

// Has is a read-only convenience over Quantity.
func (s *service) Has(ctx context.Context, userID, guildID, itemName string, amount int) (bool, error) {
	held, err := s.Quantity(ctx, userID, guildID, itemName)
	if err != nil {
		return false, err
	}
	return held >= amount, nil
}
