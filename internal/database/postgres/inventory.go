package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hollis-dev/SatchelBot_Go/internal/domain"
)

// InventoryRepository implements repository.Inventory for PostgreSQL.
//
// Every write is an atomic conditional statement: adds go through an upsert
// and removes through a guarded decrement, so two concurrent invocations can
// never drive a slot negative or resurrect a deleted one.
type InventoryRepository struct {
	db *pgxpool.Pool
}

// NewInventoryRepository creates a new InventoryRepository
func NewInventoryRepository(db *pgxpool.Pool) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// GetInventory retrieves all slots a player holds in a guild
func (r *InventoryRepository) GetInventory(ctx context.Context, userID, guildID string) (*domain.Inventory, error) {
	query := `
		SELECT item_name, quantity
		FROM inventories
		WHERE user_id = $1 AND guild_id = $2
		ORDER BY item_name
	`

	rows, err := r.db.Query(ctx, query, userID, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory: %w", err)
	}
	defer rows.Close()

	inventory := &domain.Inventory{UserID: userID, GuildID: guildID}
	for rows.Next() {
		var slot domain.InventorySlot
		if err := rows.Scan(&slot.ItemName, &slot.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan inventory slot: %w", err)
		}
		inventory.Slots = append(inventory.Slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return inventory, nil
}

// GetQuantity returns the held amount for one item key, zero when absent
func (r *InventoryRepository) GetQuantity(ctx context.Context, userID, guildID, itemName string) (int, error) {
	query := `
		SELECT quantity
		FROM inventories
		WHERE user_id = $1 AND guild_id = $2 AND item_name = $3
	`

	var quantity int
	err := r.db.QueryRow(ctx, query, userID, guildID, itemName).Scan(&quantity)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get quantity: %w", err)
	}
	return quantity, nil
}

// AddQuantity creates or increments a slot atomically
func (r *InventoryRepository) AddQuantity(ctx context.Context, userID, guildID, itemName string, amount int) error {
	if amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", domain.ErrInvalidInput)
	}
	return addInventoryQuantity(ctx, r.db, userID, guildID, itemName, amount)
}

// RemoveQuantity decrements a slot atomically, deleting it at exactly zero.
// The slot is untouched when the held amount is below the requested one.
func (r *InventoryRepository) RemoveQuantity(ctx context.Context, userID, guildID, itemName string, amount int) error {
	if amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", domain.ErrInvalidInput)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := removeInventoryQuantity(ctx, tx, userID, guildID, itemName, amount); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx, letting the
// inventory statements run standalone or inside a transfer transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func addInventoryQuantity(ctx context.Context, q querier, userID, guildID, itemName string, amount int) error {
	query := `
		INSERT INTO inventories (user_id, guild_id, item_name, quantity)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, guild_id, item_name)
		DO UPDATE SET quantity = inventories.quantity + EXCLUDED.quantity
	`

	if _, err := q.Exec(ctx, query, userID, guildID, itemName, amount); err != nil {
		return fmt.Errorf("failed to add inventory quantity: %w", err)
	}
	return nil
}

func removeInventoryQuantity(ctx context.Context, q querier, userID, guildID, itemName string, amount int) error {
	// The quantity CHECK forbids a zero row, so an exact drain must delete
	// the slot rather than decrement it through zero.
	drop := `
		DELETE FROM inventories
		WHERE user_id = $1 AND guild_id = $2 AND item_name = $3 AND quantity = $4
	`
	tag, err := q.Exec(ctx, drop, userID, guildID, itemName, amount)
	if err != nil {
		return fmt.Errorf("failed to drop drained slot: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	// Guarded decrement: zero rows means the slot is absent or too small.
	decrement := `
		UPDATE inventories
		SET quantity = quantity - $4
		WHERE user_id = $1 AND guild_id = $2 AND item_name = $3 AND quantity > $4
	`
	tag, err = q.Exec(ctx, decrement, userID, guildID, itemName, amount)
	if err != nil {
		return fmt.Errorf("failed to remove inventory quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrInsufficientQuantity, itemName)
	}
	return nil
}
