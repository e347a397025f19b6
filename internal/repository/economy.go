package repository

import (
	"context"
)

// Economy defines the interface for wallet/bank balance persistence.
// Debits are guarded in the store: a balance can never be observed negative
// and an uncovered debit fails with domain.ErrInsufficientFunds.
type Economy interface {
	GetBalances(ctx context.Context, userID, guildID string) (wallet, bank int, err error)
	CreditWallet(ctx context.Context, userID, guildID string, amount int) error
	DebitWallet(ctx context.Context, userID, guildID string, amount int) error
	CreditBank(ctx context.Context, userID, guildID string, amount int) error
	DebitBank(ctx context.Context, userID, guildID string, amount int) error
	// Deposit moves amount from wallet to bank in one guarded statement.
	Deposit(ctx context.Context, userID, guildID string, amount int) error
	// Withdraw moves up to amount from bank to wallet and reports how much
	// actually moved.
	Withdraw(ctx context.Context, userID, guildID string, amount int) (int, error)
}
