package repository

import (
	"context"

	"github.com/hollis-dev/SatchelBot_Go/internal/domain"
)

// Backpack defines the interface for backpack persistence.
//
// Quantity and capacity mutations are serialized in the store by a row lock
// on the backpack, so two concurrent writers can never together exceed the
// slot capacity or double-apply a change. The two transfer methods run both
// legs inside one transaction; if either leg fails nothing moves.
type Backpack interface {
	CreateBackpack(ctx context.Context, backpack *domain.Backpack) error
	GetBackpackByID(ctx context.Context, backpackID string) (*domain.Backpack, error)
	GetBackpackByName(ctx context.Context, guildID, ownerID, name string) (*domain.Backpack, error)
	// ListByGuild returns all backpacks of a guild, items included, in
	// creation order.
	ListByGuild(ctx context.Context, guildID string) ([]domain.Backpack, error)
	// RenameBackpack fails with domain.ErrDuplicateName when the owner
	// already holds a backpack under the new name.
	RenameBackpack(ctx context.Context, backpackID, newName string) error
	// DeleteBackpack fails with domain.ErrBackpackNotEmpty unless the
	// backpack holds no items.
	DeleteBackpack(ctx context.Context, backpackID string) error
	// UpdateAccess replaces both allow-lists and the access type.
	UpdateAccess(ctx context.Context, backpackID string, accessType domain.AccessType, allowedUsers, allowedRoles []string) error

	// AddItem fails with domain.ErrCapacityExceeded when the key is new
	// and all slots are taken.
	AddItem(ctx context.Context, backpackID, itemName string, amount int) error
	// RemoveItem fails with domain.ErrInsufficientQuantity, deleting the
	// slot at exactly zero otherwise.
	RemoveItem(ctx context.Context, backpackID, itemName string, amount int) error

	// DepositFromInventory moves amount units from the player's inventory
	// into the backpack as one atomic unit.
	DepositFromInventory(ctx context.Context, userID, guildID, backpackID, itemName string, amount int) error
	// WithdrawToInventory is the mirror move.
	WithdrawToInventory(ctx context.Context, userID, guildID, backpackID, itemName string, amount int) error
}
