package effect

import (
	"context"

	"github.com/hollis-dev/SatchelBot_Go/internal/domain"
)

// Consume performs the debit side of a requirement list. It must only be
// called after Evaluate succeeded for the same list; under concurrent use a
// debit can still lose the race and fail, in which case the error is
// returned and nothing later in the list is consumed.
//
// Wallet and bank debits go through the same guarded path and both fail
// with domain.ErrInsufficientFunds when the balance no longer covers the
// value. Role requirements are never consumed.
func (e *Engine) Consume(ctx context.Context, requirements []Requirement, player domain.PlayerContext) error {
	for _, requirement := range requirements {
		switch r := requirement.(type) {
		case MoneyRequirement:
			var err error
			if r.Target == TargetBank {
				err = e.ledger.DebitBank(ctx, player.UserID, player.GuildID, r.Value)
			} else {
				err = e.ledger.DebitWallet(ctx, player.UserID, player.GuildID, r.Value)
			}
			if err != nil {
				return err
			}

		case ItemRequirement:
			if r.Mode == NotHave {
				continue
			}
			if err := e.items.Remove(ctx, player.UserID, player.GuildID, r.ItemName, r.Amount); err != nil {
				return err
			}

		case RoleRequirement:
			// Membership is not a consumable resource.
		}
	}
	return nil
}
