package effect

import (
	"context"
	"strings"

	"github.com/hollis-dev/SatchelBot_Go/internal/domain"
	"github.com/hollis-dev/SatchelBot_Go/internal/logger"
)

// ItemToken is the literal substituted with the triggering item's display
// name inside message actions.
const ItemToken = "{item}"

// Apply executes actions in declared order against the collaborators and
// accumulates the outcome in summary. Side effects land immediately and are
// not transactional: a later action's failure does not roll back an earlier
// one.
//
// Role actions are the one place failures are absorbed: a missing role or a
// rejected grant is logged and the remaining actions still run, so the
// summary reports the parts that did succeed.
func (e *Engine) Apply(ctx context.Context, actions []Action, player domain.PlayerContext, itemDisplay string, summary *domain.EffectSummary) error {
	log := logger.FromContext(ctx)

	for _, action := range actions {
		switch a := action.(type) {
		case MoneyAction:
			if err := e.applyMoney(ctx, a, player, summary); err != nil {
				return err
			}

		case RoleAction:
			// Discord role membership is keyed by snowflake, not by the
			// internal user ID.
			if a.Mode == ModeAdd {
				if err := e.roles.Grant(ctx, player.GuildID, player.DiscordID, a.RoleID); err != nil {
					log.Warn("Role grant failed, continuing", "error", err, "roleID", a.RoleID, "discordID", player.DiscordID)
					continue
				}
				summary.RolesGiven = append(summary.RolesGiven, a.RoleID)
			} else {
				if err := e.roles.Revoke(ctx, player.GuildID, player.DiscordID, a.RoleID); err != nil {
					log.Warn("Role revoke failed, continuing", "error", err, "roleID", a.RoleID, "discordID", player.DiscordID)
					continue
				}
				summary.RolesRemoved = append(summary.RolesRemoved, a.RoleID)
			}

		case ItemAction:
			if a.Mode == ModeAdd {
				if err := e.items.Add(ctx, player.UserID, player.GuildID, a.ItemName, a.Amount); err != nil {
					return err
				}
				summary.ItemsGiven = append(summary.ItemsGiven, domain.ItemDelta{ItemName: a.ItemName, Amount: a.Amount})
			} else {
				if err := e.items.Remove(ctx, player.UserID, player.GuildID, a.ItemName, a.Amount); err != nil {
					return err
				}
				summary.ItemsTaken = append(summary.ItemsTaken, domain.ItemDelta{ItemName: a.ItemName, Amount: a.Amount})
			}

		case MessageAction:
			summary.CustomMessage = strings.ReplaceAll(a.Text, ItemToken, itemDisplay)
		}
	}
	return nil
}

func (e *Engine) applyMoney(ctx context.Context, a MoneyAction, player domain.PlayerContext, summary *domain.EffectSummary) error {
	switch {
	case a.Target == TargetMoney && a.Mode == ModeAdd:
		if err := e.ledger.CreditWallet(ctx, player.UserID, player.GuildID, a.Amount); err != nil {
			return err
		}
		summary.MoneyChanges.Added += a.Amount

	case a.Target == TargetMoney && a.Mode == ModeRemove:
		if err := e.ledger.DebitWallet(ctx, player.UserID, player.GuildID, a.Amount); err != nil {
			return err
		}
		summary.MoneyChanges.Removed += a.Amount

	case a.Target == TargetBank && a.Mode == ModeAdd:
		if err := e.ledger.CreditBank(ctx, player.UserID, player.GuildID, a.Amount); err != nil {
			return err
		}
		summary.BankChanges.Added += a.Amount

	default:
		// Removing from the bank pays it out to the player's hand rather
		// than destroying it; only what was actually available moves.
		moved, err := e.ledger.WithdrawBank(ctx, player.UserID, player.GuildID, a.Amount)
		if err != nil {
			return err
		}
		summary.BankChanges.Removed += moved
		summary.MoneyChanges.Added += moved
	}
	return nil
}
