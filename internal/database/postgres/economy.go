package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hollis-dev/SatchelBot_Go/internal/domain"
)

// EconomyRepository implements repository.Economy for PostgreSQL.
//
// Balances are only ever changed through guarded single-statement updates;
// an uncovered debit matches zero rows instead of going negative.
type EconomyRepository struct {
	db *pgxpool.Pool
}

// NewEconomyRepository creates a new EconomyRepository
func NewEconomyRepository(db *pgxpool.Pool) *EconomyRepository {
	return &EconomyRepository{db: db}
}

// GetBalances returns the wallet and bank balances, zero when no row exists yet
func (r *EconomyRepository) GetBalances(ctx context.Context, userID, guildID string) (int, int, error) {
	query := `
		SELECT wallet, bank
		FROM balances
		WHERE user_id = $1 AND guild_id = $2
	`

	var wallet, bank int
	err := r.db.QueryRow(ctx, query, userID, guildID).Scan(&wallet, &bank)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, 0, nil
	}
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get balances: %w", err)
	}
	return wallet, bank, nil
}

// CreditWallet adds to the wallet, creating the balance row on first touch
func (r *EconomyRepository) CreditWallet(ctx context.Context, userID, guildID string, amount int) error {
	query := `
		INSERT INTO balances (user_id, guild_id, wallet, bank)
		VALUES ($1, $2, $3, 0)
		ON CONFLICT (user_id, guild_id)
		DO UPDATE SET wallet = balances.wallet + EXCLUDED.wallet
	`

	if _, err := r.db.Exec(ctx, query, userID, guildID, amount); err != nil {
		return fmt.Errorf("failed to credit wallet: %w", err)
	}
	return nil
}

// DebitWallet subtracts from the wallet, failing when the balance does not cover it
func (r *EconomyRepository) DebitWallet(ctx context.Context, userID, guildID string, amount int) error {
	query := `
		UPDATE balances
		SET wallet = wallet - $3
		WHERE user_id = $1 AND guild_id = $2 AND wallet >= $3
	`

	tag, err := r.db.Exec(ctx, query, userID, guildID, amount)
	if err != nil {
		return fmt.Errorf("failed to debit wallet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInsufficientFunds
	}
	return nil
}

// CreditBank adds to the bank, creating the balance row on first touch
func (r *EconomyRepository) CreditBank(ctx context.Context, userID, guildID string, amount int) error {
	query := `
		INSERT INTO balances (user_id, guild_id, wallet, bank)
		VALUES ($1, $2, 0, $3)
		ON CONFLICT (user_id, guild_id)
		DO UPDATE SET bank = balances.bank + EXCLUDED.bank
	`

	if _, err := r.db.Exec(ctx, query, userID, guildID, amount); err != nil {
		return fmt.Errorf("failed to credit bank: %w", err)
	}
	return nil
}

// DebitBank subtracts from the bank, failing when the balance does not cover it
func (r *EconomyRepository) DebitBank(ctx context.Context, userID, guildID string, amount int) error {
	query := `
		UPDATE balances
		SET bank = bank - $3
		WHERE user_id = $1 AND guild_id = $2 AND bank >= $3
	`

	tag, err := r.db.Exec(ctx, query, userID, guildID, amount)
	if err != nil {
		return fmt.Errorf("failed to debit bank: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInsufficientFunds
	}
	return nil
}

// Deposit moves amount from wallet to bank in a single guarded statement
func (r *EconomyRepository) Deposit(ctx context.Context, userID, guildID string, amount int) error {
	query := `
		UPDATE balances
		SET wallet = wallet - $3, bank = bank + $3
		WHERE user_id = $1 AND guild_id = $2 AND wallet >= $3
	`

	tag, err := r.db.Exec(ctx, query, userID, guildID, amount)
	if err != nil {
		return fmt.Errorf("failed to deposit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInsufficientFunds
	}
	return nil
}

// Withdraw moves up to amount from bank to wallet and reports how much moved.
// The CTE pins the pre-update bank balance so the clamp and the returned
// value agree under concurrency.
func (r *EconomyRepository) Withdraw(ctx context.Context, userID, guildID string, amount int) (int, error) {
	query := `
		WITH available AS (
			SELECT LEAST(bank, $3::bigint) AS moved
			FROM balances
			WHERE user_id = $1 AND guild_id = $2
			FOR UPDATE
		)
		UPDATE balances b
		SET bank = b.bank - available.moved,
		    wallet = b.wallet + available.moved
		FROM available
		WHERE b.user_id = $1 AND b.guild_id = $2
		RETURNING available.moved
	`

	var moved int
	err := r.db.QueryRow(ctx, query, userID, guildID, amount).Scan(&moved)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil // no balance row, nothing to withdraw
	}
	if err != nil {
		return 0, fmt.Errorf("failed to withdraw: %w", err)
	}
	return moved, nil
}
