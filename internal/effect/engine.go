package effect

import (
	"context"
)

// Ledger is the economy collaborator the engine reads and mutates wallet
// and bank balances through. Debits are guarded: they fail with
// domain.ErrInsufficientFunds instead of driving a balance negative.
type Ledger interface {
	WalletBalance(ctx context.Context, userID, guildID string) (int, error)
	BankBalance(ctx context.Context, userID, guildID string) (int, error)
	CreditWallet(ctx context.Context, userID, guildID string, amount int) error
	DebitWallet(ctx context.Context, userID, guildID string, amount int) error
	CreditBank(ctx context.Context, userID, guildID string, amount int) error
	DebitBank(ctx context.Context, userID, guildID string, amount int) error
	// WithdrawBank moves up to amount from bank to wallet and returns how
	// much actually moved.
	WithdrawBank(ctx context.Context, userID, guildID string, amount int) (int, error)
}

// ItemBag is the inventory collaborator. Remove is guarded and fails with
// domain.ErrInsufficientQuantity.
type ItemBag interface {
	Quantity(ctx context.Context, userID, guildID, itemName string) (int, error)
	Add(ctx context.Context, userID, guildID, itemName string, amount int) error
	Remove(ctx context.Context, userID, guildID, itemName string, amount int) error
}

// RoleManager is the role membership collaborator used by role actions.
type RoleManager interface {
	Grant(ctx context.Context, guildID, userID, roleID string) error
	Revoke(ctx context.Context, guildID, userID, roleID string) error
}

// Engine evaluates, consumes and executes decoded item rules. It holds no
// state of its own; all state lives behind the collaborators.
type Engine struct {
	ledger Ledger
	items  ItemBag
	roles  RoleManager
}

// NewEngine creates an effect engine over the given collaborators.
func NewEngine(ledger Ledger, items ItemBag, roles RoleManager) *Engine {
	return &Engine{
		ledger: ledger,
		items:  items,
		roles:  roles,
	}
}
