package repository

import (
	"context"

	"github.com/hollis-dev/SatchelBot_Go/internal/domain"
)

// Inventory defines the interface for personal inventory persistence.
// All quantity changes are atomic conditional updates in the store; callers
// never read-modify-write a slot.
type Inventory interface {
	GetInventory(ctx context.Context, userID, guildID string) (*domain.Inventory, error)
	GetQuantity(ctx context.Context, userID, guildID, itemName string) (int, error)
	// AddQuantity creates the slot or increments it atomically. amount > 0.
	AddQuantity(ctx context.Context, userID, guildID, itemName string, amount int) error
	// RemoveQuantity decrements atomically, deleting the slot at exactly
	// zero. Fails with domain.ErrInsufficientQuantity when the held amount
	// is below the requested one; the slot is left untouched in that case.
	RemoveQuantity(ctx context.Context, userID, guildID, itemName string, amount int) error
}
