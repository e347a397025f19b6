package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hollis-dev/SatchelBot_Go/internal/domain"
	"github.com/hollis-dev/SatchelBot_Go/internal/naming"
)

// BackpackRepository implements repository.Backpack for PostgreSQL.
//
// Every capacity- or quantity-changing operation first takes a row lock on
// the backpack (SELECT ... FOR UPDATE) inside a transaction, so concurrent
// mutators serialize and the slot-capacity predicate cannot be raced past.
// The transfer methods run the inventory leg inside the same transaction;
// either both legs commit or neither does. Lock order is always backpack
// row first, then inventory rows, in both transfer directions.
type BackpackRepository struct {
	db *pgxpool.Pool
}

// NewBackpackRepository creates a new BackpackRepository
func NewBackpackRepository(db *pgxpool.Pool) *BackpackRepository {
	return &BackpackRepository{db: db}
}

const backpackColumns = `backpack_id, guild_id, owner_id, owner_type, name, capacity, access_type, allowed_users, allowed_roles`

func scanBackpack(row pgx.Row) (*domain.Backpack, error) {
	var b domain.Backpack
	err := row.Scan(
		&b.ID,
		&b.GuildID,
		&b.OwnerID,
		&b.OwnerType,
		&b.Name,
		&b.Capacity,
		&b.AccessType,
		&b.AllowedUsers,
		&b.AllowedRoles,
	)
	if err != nil {
		return nil, err
	}
	b.Items = make(map[string]int)
	return &b, nil
}

// CreateBackpack inserts a new backpack, generating its ID
func (r *BackpackRepository) CreateBackpack(ctx context.Context, backpack *domain.Backpack) error {
	query := `
		INSERT INTO backpacks (backpack_id, guild_id, owner_id, owner_type, name, name_key, capacity, access_type, allowed_users, allowed_roles)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	if backpack.ID == "" {
		backpack.ID = uuid.NewString()
	}
	if backpack.AllowedUsers == nil {
		backpack.AllowedUsers = []string{}
	}
	if backpack.AllowedRoles == nil {
		backpack.AllowedRoles = []string{}
	}

	_, err := r.db.Exec(ctx, query,
		backpack.ID, backpack.GuildID, backpack.OwnerID, backpack.OwnerType,
		backpack.Name, naming.Key(backpack.Name), backpack.Capacity,
		backpack.AccessType, backpack.AllowedUsers, backpack.AllowedRoles,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateName, backpack.Name)
	}
	if err != nil {
		return fmt.Errorf("failed to create backpack: %w", err)
	}
	if backpack.Items == nil {
		backpack.Items = make(map[string]int)
	}
	return nil
}

// GetBackpackByID retrieves a backpack with its items
func (r *BackpackRepository) GetBackpackByID(ctx context.Context, backpackID string) (*domain.Backpack, error) {
	query := `SELECT ` + backpackColumns + ` FROM backpacks WHERE backpack_id = $1`

	backpack, err := scanBackpack(r.db.QueryRow(ctx, query, backpackID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrBackpackNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get backpack: %w", err)
	}

	if err := r.loadItems(ctx, backpack); err != nil {
		return nil, err
	}
	return backpack, nil
}

// GetBackpackByName retrieves an owner's backpack by case-folded name
func (r *BackpackRepository) GetBackpackByName(ctx context.Context, guildID, ownerID, name string) (*domain.Backpack, error) {
	query := `
		SELECT ` + backpackColumns + `
		FROM backpacks
		WHERE guild_id = $1 AND owner_id = $2 AND name_key = $3
	`

	backpack, err := scanBackpack(r.db.QueryRow(ctx, query, guildID, ownerID, naming.Key(name)))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrBackpackNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get backpack: %w", err)
	}

	if err := r.loadItems(ctx, backpack); err != nil {
		return nil, err
	}
	return backpack, nil
}

// ListByGuild returns all backpacks of a guild with their items, oldest first
func (r *BackpackRepository) ListByGuild(ctx context.Context, guildID string) ([]domain.Backpack, error) {
	query := `SELECT ` + backpackColumns + ` FROM backpacks WHERE guild_id = $1 ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list backpacks: %w", err)
	}
	defer rows.Close()

	var backpacks []domain.Backpack
	for rows.Next() {
		backpack, err := scanBackpack(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan backpack: %w", err)
		}
		backpacks = append(backpacks, *backpack)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	for i := range backpacks {
		if err := r.loadItems(ctx, &backpacks[i]); err != nil {
			return nil, err
		}
	}
	return backpacks, nil
}

func (r *BackpackRepository) loadItems(ctx context.Context, backpack *domain.Backpack) error {
	query := `SELECT item_name, quantity FROM backpack_items WHERE backpack_id = $1`

	rows, err := r.db.Query(ctx, query, backpack.ID)
	if err != nil {
		return fmt.Errorf("failed to query backpack items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		var quantity int
		if err := rows.Scan(&name, &quantity); err != nil {
			return fmt.Errorf("failed to scan backpack item: %w", err)
		}
		backpack.Items[name] = quantity
	}
	return rows.Err()
}

// RenameBackpack changes a backpack's name, guarding owner-level uniqueness
func (r *BackpackRepository) RenameBackpack(ctx context.Context, backpackID, newName string) error {
	query := `
		UPDATE backpacks b
		SET name = $2, name_key = $3
		WHERE b.backpack_id = $1
		  AND NOT EXISTS (
			SELECT 1 FROM backpacks o
			WHERE o.guild_id = b.guild_id
			  AND o.owner_id = b.owner_id
			  AND o.name_key = $3
			  AND o.backpack_id <> b.backpack_id
		  )
	`

	tag, err := r.db.Exec(ctx, query, backpackID, newName, naming.Key(newName))
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateName, newName)
	}
	if err != nil {
		return fmt.Errorf("failed to rename backpack: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Either no such backpack or the owner already uses the name.
		if _, err := r.GetBackpackByID(ctx, backpackID); err != nil {
			return err
		}
		return fmt.Errorf("%w: %s", domain.ErrDuplicateName, newName)
	}
	return nil
}

// DeleteBackpack removes a backpack only while it holds no items
func (r *BackpackRepository) DeleteBackpack(ctx context.Context, backpackID string) error {
	query := `
		DELETE FROM backpacks
		WHERE backpack_id = $1
		  AND NOT EXISTS (SELECT 1 FROM backpack_items WHERE backpack_id = $1)
	`

	tag, err := r.db.Exec(ctx, query, backpackID)
	if err != nil {
		return fmt.Errorf("failed to delete backpack: %w", err)
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.GetBackpackByID(ctx, backpackID); err != nil {
			return err
		}
		return domain.ErrBackpackNotEmpty
	}
	return nil
}

// UpdateAccess replaces the allow-lists and access type in one statement
func (r *BackpackRepository) UpdateAccess(ctx context.Context, backpackID string, accessType domain.AccessType, allowedUsers, allowedRoles []string) error {
	query := `
		UPDATE backpacks
		SET access_type = $2, allowed_users = $3, allowed_roles = $4
		WHERE backpack_id = $1
	`

	if allowedUsers == nil {
		allowedUsers = []string{}
	}
	if allowedRoles == nil {
		allowedRoles = []string{}
	}

	tag, err := r.db.Exec(ctx, query, backpackID, accessType, allowedUsers, allowedRoles)
	if err != nil {
		return fmt.Errorf("failed to update access: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBackpackNotFound
	}
	return nil
}

// AddItem adds quantity under the backpack's row lock, enforcing slot capacity
func (r *BackpackRepository) AddItem(ctx context.Context, backpackID, itemName string, amount int) error {
	if amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", domain.ErrInvalidInput)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := addBackpackItem(ctx, tx, backpackID, itemName, amount); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// RemoveItem removes quantity under the backpack's row lock
func (r *BackpackRepository) RemoveItem(ctx context.Context, backpackID, itemName string, amount int) error {
	if amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", domain.ErrInvalidInput)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := removeBackpackItem(ctx, tx, backpackID, itemName, amount); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// DepositFromInventory moves items inventory -> backpack as one atomic unit.
// A failed capacity check rolls the inventory removal back with the
// transaction, so nothing is ever lost in between.
func (r *BackpackRepository) DepositFromInventory(ctx context.Context, userID, guildID, backpackID, itemName string, amount int) error {
	if amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", domain.ErrInvalidInput)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Backpack lock first, then inventory rows; both directions share this
	// order so concurrent transfers cannot deadlock.
	if err := lockBackpack(ctx, tx, backpackID); err != nil {
		return err
	}
	if err := removeInventoryQuantity(ctx, tx, userID, guildID, itemName, amount); err != nil {
		return err
	}
	if err := addBackpackItemLocked(ctx, tx, backpackID, itemName, amount); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// WithdrawToInventory moves items backpack -> inventory as one atomic unit
func (r *BackpackRepository) WithdrawToInventory(ctx context.Context, userID, guildID, backpackID, itemName string, amount int) error {
	if amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", domain.ErrInvalidInput)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := lockBackpack(ctx, tx, backpackID); err != nil {
		return err
	}
	if err := removeBackpackItemLocked(ctx, tx, backpackID, itemName, amount); err != nil {
		return err
	}
	if err := addInventoryQuantity(ctx, tx, userID, guildID, itemName, amount); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// lockBackpack takes the serialization lock for one backpack, so a transfer
// observes a stable slot count until it commits.
func lockBackpack(ctx context.Context, tx pgx.Tx, backpackID string) error {
	var capacity int
	err := tx.QueryRow(ctx, `SELECT capacity FROM backpacks WHERE backpack_id = $1 FOR UPDATE`, backpackID).Scan(&capacity)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrBackpackNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to lock backpack: %w", err)
	}
	return nil
}

func addBackpackItem(ctx context.Context, tx pgx.Tx, backpackID, itemName string, amount int) error {
	if err := lockBackpack(ctx, tx, backpackID); err != nil {
		return err
	}
	return addBackpackItemLocked(ctx, tx, backpackID, itemName, amount)
}

// addBackpackItemLocked requires the backpack row lock to be held.
func addBackpackItemLocked(ctx context.Context, tx pgx.Tx, backpackID, itemName string, amount int) error {
	var capacity, used int
	var exists bool
	check := `
		SELECT b.capacity,
		       (SELECT count(*) FROM backpack_items i WHERE i.backpack_id = b.backpack_id),
		       EXISTS (SELECT 1 FROM backpack_items i WHERE i.backpack_id = b.backpack_id AND i.item_name = $2)
		FROM backpacks b
		WHERE b.backpack_id = $1
	`
	if err := tx.QueryRow(ctx, check, backpackID, itemName).Scan(&capacity, &used, &exists); err != nil {
		return fmt.Errorf("failed to check capacity: %w", err)
	}

	// Capacity bounds distinct item keys; topping up an existing slot never
	// consumes a new one.
	if !exists && used >= capacity {
		return fmt.Errorf("%w: %d/%d slots used", domain.ErrCapacityExceeded, used, capacity)
	}

	upsert := `
		INSERT INTO backpack_items (backpack_id, item_name, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (backpack_id, item_name)
		DO UPDATE SET quantity = backpack_items.quantity + EXCLUDED.quantity
	`
	if _, err := tx.Exec(ctx, upsert, backpackID, itemName, amount); err != nil {
		return fmt.Errorf("failed to add backpack item: %w", err)
	}
	return nil
}

func removeBackpackItem(ctx context.Context, tx pgx.Tx, backpackID, itemName string, amount int) error {
	if err := lockBackpack(ctx, tx, backpackID); err != nil {
		return err
	}
	return removeBackpackItemLocked(ctx, tx, backpackID, itemName, amount)
}

// removeBackpackItemLocked requires the backpack row lock to be held.
func removeBackpackItemLocked(ctx context.Context, tx pgx.Tx, backpackID, itemName string, amount int) error {
	// The quantity CHECK forbids a zero row, so an exact drain must delete
	// the slot rather than decrement it through zero.
	drop := `DELETE FROM backpack_items WHERE backpack_id = $1 AND item_name = $2 AND quantity = $3`
	tag, err := tx.Exec(ctx, drop, backpackID, itemName, amount)
	if err != nil {
		return fmt.Errorf("failed to drop drained slot: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	decrement := `
		UPDATE backpack_items
		SET quantity = quantity - $3
		WHERE backpack_id = $1 AND item_name = $2 AND quantity > $3
	`
	tag, err = tx.Exec(ctx, decrement, backpackID, itemName, amount)
	if err != nil {
		return fmt.Errorf("failed to remove backpack item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrInsufficientQuantity, itemName)
	}
	return nil
}
