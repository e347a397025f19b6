package effect

import (
	"context"

	"github.com/hollis-dev/SatchelBot_Go/internal/domain"
)

// Evaluate checks requirements in declared order and short-circuits on the
// first unsatisfied one, returning a *domain.RequirementFailedError carrying
// its kind. Evaluation never mutates state. A nil return means the gate
// passed and the list may be consumed.
func (e *Engine) Evaluate(ctx context.Context, requirements []Requirement, player domain.PlayerContext) error {
	for _, requirement := range requirements {
		satisfied, err := e.evaluateOne(ctx, requirement, player)
		if err != nil {
			return err
		}
		if !satisfied {
			return &domain.RequirementFailedError{Kind: requirement.Kind()}
		}
	}
	return nil
}

func (e *Engine) evaluateOne(ctx context.Context, requirement Requirement, player domain.PlayerContext) (bool, error) {
	switch r := requirement.(type) {
	case MoneyRequirement:
		balance, err := e.balance(ctx, r.Target, player)
		if err != nil {
			return false, err
		}
		return balance >= r.Value, nil

	case ItemRequirement:
		held, err := e.items.Quantity(ctx, player.UserID, player.GuildID, r.ItemName)
		if err != nil {
			return false, err
		}
		if r.Mode == NotHave {
			// Satisfied when the player holds strictly less than the
			// threshold ("you must NOT already own X").
			return held < r.Amount, nil
		}
		return held >= r.Amount, nil

	case RoleRequirement:
		if r.Mode == NotHave {
			return !player.HasRole(r.RoleID), nil
		}
		return player.HasRole(r.RoleID), nil

	default:
		// Closed variant; unreachable for values produced by the codec.
		return false, nil
	}
}

func (e *Engine) balance(ctx context.Context, target Target, player domain.PlayerContext) (int, error) {
	if target == TargetBank {
		return e.ledger.BankBalance(ctx, player.UserID, player.GuildID)
	}
	return e.ledger.WalletBalance(ctx, player.UserID, player.GuildID)
}
