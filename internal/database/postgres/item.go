package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hollis-dev/SatchelBot_Go/internal/domain"
	"github.com/hollis-dev/SatchelBot_Go/internal/naming"
)

// ItemRepository implements repository.Item for PostgreSQL
type ItemRepository struct {
	db *pgxpool.Pool
}

// NewItemRepository creates a new ItemRepository
func NewItemRepository(db *pgxpool.Pool) *ItemRepository {
	return &ItemRepository{db: db}
}

const itemColumns = `item_id, guild_id, name, display_name, description, price, stock, usable, sellable, actions, requirements`

func scanItem(row pgx.Row) (*domain.Item, error) {
	var item domain.Item
	err := row.Scan(
		&item.ID,
		&item.GuildID,
		&item.Name,
		&item.DisplayName,
		&item.Description,
		&item.Price,
		&item.Stock,
		&item.Usable,
		&item.Sellable,
		&item.Actions,
		&item.Requirements,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// CreateItem inserts a new item definition, folding the name key
func (r *ItemRepository) CreateItem(ctx context.Context, item *domain.Item) error {
	query := `
		INSERT INTO items (guild_id, name, display_name, description, price, stock, usable, sellable, actions, requirements)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING item_id
	`

	item.Name = naming.Key(item.Name)
	err := r.db.QueryRow(ctx, query,
		item.GuildID, item.Name, item.DisplayName, item.Description,
		item.Price, item.Stock, item.Usable, item.Sellable,
		item.Actions, item.Requirements,
	).Scan(&item.ID)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: item %q", domain.ErrDuplicateName, item.Name)
	}
	if err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}
	return nil
}

// UpdateItem rewrites a definition in place, identified by (guild, name)
func (r *ItemRepository) UpdateItem(ctx context.Context, item *domain.Item) error {
	query := `
		UPDATE items
		SET display_name = $3, description = $4, price = $5, stock = $6,
		    usable = $7, sellable = $8, actions = $9, requirements = $10
		WHERE guild_id = $1 AND name = $2
	`

	tag, err := r.db.Exec(ctx, query,
		item.GuildID, naming.Key(item.Name), item.DisplayName, item.Description,
		item.Price, item.Stock, item.Usable, item.Sellable,
		item.Actions, item.Requirements,
	)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrItemNotFound, item.Name)
	}
	return nil
}

// DeleteItem removes a definition. Existing inventory and backpack slots
// keep referencing the name as orphans; they are not touched here.
func (r *ItemRepository) DeleteItem(ctx context.Context, guildID, name string) error {
	query := `DELETE FROM items WHERE guild_id = $1 AND name = $2`

	tag, err := r.db.Exec(ctx, query, guildID, naming.Key(name))
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrItemNotFound, name)
	}
	return nil
}

// GetItemByName retrieves a definition by its case-folded name
func (r *ItemRepository) GetItemByName(ctx context.Context, guildID, name string) (*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE guild_id = $1 AND name = $2`

	item, err := scanItem(r.db.QueryRow(ctx, query, guildID, naming.Key(name)))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrItemNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return item, nil
}

// ListItems returns all definitions of a guild ordered by name
func (r *ItemRepository) ListItems(ctx context.Context, guildID string) ([]domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE guild_id = $1 ORDER BY name`

	rows, err := r.db.Query(ctx, query, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return items, nil
}

// DecrementStock atomically takes quantity units off a finite stock.
// Unlimited stock passes through untouched.
func (r *ItemRepository) DecrementStock(ctx context.Context, guildID, name string, quantity int) error {
	query := `
		UPDATE items
		SET stock = CASE WHEN stock = -1 THEN stock ELSE stock - $3 END
		WHERE guild_id = $1 AND name = $2 AND (stock = -1 OR stock >= $3)
	`

	tag, err := r.db.Exec(ctx, query, guildID, naming.Key(name), quantity)
	if err != nil {
		return fmt.Errorf("failed to decrement stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrOutOfStock, name)
	}
	return nil
}

// IncrementStock returns reserved units to a finite stock
func (r *ItemRepository) IncrementStock(ctx context.Context, guildID, name string, quantity int) error {
	query := `
		UPDATE items
		SET stock = CASE WHEN stock = -1 THEN stock ELSE stock + $3 END
		WHERE guild_id = $1 AND name = $2
	`

	if _, err := r.db.Exec(ctx, query, guildID, naming.Key(name), quantity); err != nil {
		return fmt.Errorf("failed to increment stock: %w", err)
	}
	return nil
}
