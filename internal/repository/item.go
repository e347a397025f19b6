package repository

import (
	"context"

	"github.com/hollis-dev/SatchelBot_Go/internal/domain"
)

// Item defines the interface for item definition persistence. Lookups are
// case-insensitive on the folded name key.
type Item interface {
	CreateItem(ctx context.Context, item *domain.Item) error
	UpdateItem(ctx context.Context, item *domain.Item) error
	// DeleteItem removes the definition. Inventory and backpack references
	// to the deleted name become orphans and stay valid.
	DeleteItem(ctx context.Context, guildID, name string) error
	GetItemByName(ctx context.Context, guildID, name string) (*domain.Item, error)
	ListItems(ctx context.Context, guildID string) ([]domain.Item, error)
	// DecrementStock atomically takes quantity units off a finite stock.
	// Unlimited stock is left untouched. Fails with domain.ErrOutOfStock
	// when fewer than quantity units remain.
	DecrementStock(ctx context.Context, guildID, name string, quantity int) error
	// IncrementStock returns reserved units after a failed purchase.
	IncrementStock(ctx context.Context, guildID, name string, quantity int) error
}
