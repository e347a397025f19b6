package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/hollis-dev/SatchelBot_Go/internal/domain"
	"github.com/hollis-dev/SatchelBot_Go/internal/logger"
	"github.com/hollis-dev/SatchelBot_Go/internal/metrics"
)

// UseItem runs the full item-use pipeline: resolve the definition, gate on
// its requirements, consume what the requirements cost, burn one unit of
// the item itself, then execute its actions. The caller is registered on
// the fly if needed.
//
// Requirements are re-gated by guarded writes during consumption, so a
// concurrent spend between Evaluate and Consume denies the use instead of
// driving a balance or slot negative.
func (s *service) UseItem(ctx context.Context, params UseItemParams) (*domain.EffectSummary, error) {
	log := logger.FromContext(ctx)
	log.Info("UseItem called",
		"discord_id", params.DiscordID, "guild_id", params.GuildID, "item", params.ItemName)

	u, err := s.RegisterUser(ctx, params.DiscordID, params.Username)
	if err != nil {
		return nil, err
	}

	def, err := s.catalog.Resolve(ctx, params.GuildID, params.ItemName)
	if err != nil {
		return nil, err
	}
	if !def.Usable {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotUsable, def.Name)
	}

	// The item itself must be held before any requirement is checked, so a
	// denial never reveals requirement details for an item the player
	// doesn't own.
	held, err := s.inventory.Quantity(ctx, u.ID, params.GuildID, def.Name)
	if err != nil {
		return nil, err
	}
	if held < 1 {
		return nil, fmt.Errorf("%w: %s", domain.ErrInsufficientQuantity, def.Name)
	}

	player := domain.PlayerContext{
		UserID:    u.ID,
		DiscordID: params.DiscordID,
		GuildID:   params.GuildID,
		RoleIDs:   params.RoleIDs,
	}

	if err := s.engine.Evaluate(ctx, def.Requirements, player); err != nil {
		var reqErr *domain.RequirementFailedError
		if errors.As(err, &reqErr) {
			metrics.UseDenied.WithLabelValues(string(reqErr.Kind)).Inc()
			log.Debug("Item use denied", "item", def.Name, "kind", reqErr.Kind)
		}
		return nil, err
	}

	if err := s.engine.Consume(ctx, def.Requirements, player); err != nil {
		return nil, err
	}

	if err := s.inventory.Remove(ctx, u.ID, params.GuildID, def.Name, 1); err != nil {
		return nil, err
	}

	summary := &domain.EffectSummary{}
	if err := s.engine.Apply(ctx, def.Actions, player, def.DisplayName, summary); err != nil {
		log.Error("Item action failed mid-execution", "error", err, "item", def.Name)
		return nil, err
	}

	metrics.ItemsUsed.WithLabelValues(params.GuildID).Inc()
	log.Info("Item used", "user_id", u.ID, "item", def.Name, "guild_id", params.GuildID)

	return summary, nil
}
