package backpack

import (
	"context"
	"errors"
	"fmt"

	"github.com/hollis-dev/SatchelBot_Go/internal/domain"
	"github.com/hollis-dev/SatchelBot_Go/internal/logger"
	"github.com/hollis-dev/SatchelBot_Go/internal/metrics"
	"github.com/hollis-dev/SatchelBot_Go/internal/naming"
	"github.com/hollis-dev/SatchelBot_Go/internal/repository"
)

// DefaultCapacity is the slot capacity used when a creator does not ask for
// one. Capacity bounds distinct item keys, not total units.
const DefaultCapacity = 10

// Service defines the interface for backpack operations. Rename, delete and
// access changes are owner-only; deposits and withdrawals only need access.
type Service interface {
	Create(ctx context.Context, guildID, ownerID string, ownerType domain.OwnerType, name string, capacity int) (*domain.Backpack, error)
	// ResolveAccessible finds a backpack by case-insensitive name, owned
	// ones taking priority over shared ones.
	ResolveAccessible(ctx context.Context, player domain.PlayerContext, name string) (*domain.Backpack, error)
	Rename(ctx context.Context, player domain.PlayerContext, name, newName string) error
	Delete(ctx context.Context, player domain.PlayerContext, name string) error
	GrantAccess(ctx context.Context, player domain.PlayerContext, name string, userIDs, roleIDs []string) error
	RevokeAccess(ctx context.Context, player domain.PlayerContext, name string, userIDs, roleIDs []string) error
	// Deposit moves units from the player's inventory into the backpack.
	Deposit(ctx context.Context, player domain.PlayerContext, name, itemName string, amount int) (*domain.Backpack, error)
	// Withdraw moves units from the backpack into the player's inventory.
	Withdraw(ctx context.Context, player domain.PlayerContext, name, itemName string, amount int) (*domain.Backpack, error)
	// ListAccessible returns every backpack the player can open, owned first.
	ListAccessible(ctx context.Context, player domain.PlayerContext) ([]domain.Backpack, error)
}

type service struct {
	repo repository.Backpack
}

// NewService creates a new backpack service
func NewService(repo repository.Backpack) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, guildID, ownerID string, ownerType domain.OwnerType, name string, capacity int) (*domain.Backpack, error) {
	log := logger.FromContext(ctx)

	if naming.Key(name) == "" {
		return nil, fmt.Errorf("%w: backpack name is required", domain.ErrInvalidInput)
	}
	if capacity == 0 {
		capacity = DefaultCapacity
	}
	if capacity < 0 {
		return nil, fmt.Errorf("%w: capacity must be positive", domain.ErrInvalidInput)
	}

	bp := &domain.Backpack{
		GuildID:    guildID,
		OwnerID:    ownerID,
		OwnerType:  ownerType,
		Name:       name,
		Capacity:   capacity,
		Items:      map[string]int{},
		AccessType: domain.AccessOwnerOnly,
	}
	if err := s.repo.CreateBackpack(ctx, bp); err != nil {
		return nil, err
	}

	log.Info("Backpack created",
		"backpack_id", bp.ID, "name", bp.Name, "owner_id", ownerID, "capacity", capacity)
	return bp, nil
}

// ResolveAccessible resolves by priority: a backpack owned by the player
// wins over one merely shared with them. Within the shared ones the oldest
// match wins, so resolution is stable across calls.
func (s *service) ResolveAccessible(ctx context.Context, player domain.PlayerContext, name string) (*domain.Backpack, error) {
	owned, err := s.repo.GetBackpackByName(ctx, player.GuildID, player.UserID, name)
	if err == nil {
		return owned, nil
	}
	if !errors.Is(err, domain.ErrBackpackNotFound) {
		return nil, err
	}

	all, err := s.repo.ListByGuild(ctx, player.GuildID)
	if err != nil {
		return nil, err
	}
	for i := range all {
		bp := &all[i]
		if !naming.Equal(bp.Name, name) {
			continue
		}
		if bp.AccessibleBy(player) {
			return bp, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrBackpackNotFound, name)
}

// resolveOwned is the gate for owner-only operations. An accessible but
// unowned backpack yields ErrNotOwner rather than not-found, so the caller
// learns the right thing: you can open it, you just can't administer it.
func (s *service) resolveOwned(ctx context.Context, player domain.PlayerContext, name string) (*domain.Backpack, error) {
	owned, err := s.repo.GetBackpackByName(ctx, player.GuildID, player.UserID, name)
	if err == nil {
		return owned, nil
	}
	if !errors.Is(err, domain.ErrBackpackNotFound) {
		return nil, err
	}

	if _, resolveErr := s.ResolveAccessible(ctx, player, name); resolveErr == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotOwner, name)
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrBackpackNotFound, name)
}

func (s *service) Rename(ctx context.Context, player domain.PlayerContext, name, newName string) error {
	if naming.Key(newName) == "" {
		return fmt.Errorf("%w: new backpack name is required", domain.ErrInvalidInput)
	}

	bp, err := s.resolveOwned(ctx, player, name)
	if err != nil {
		return err
	}

	if err := s.repo.RenameBackpack(ctx, bp.ID, newName); err != nil {
		return err
	}

	logger.FromContext(ctx).Info("Backpack renamed",
		"backpack_id", bp.ID, "old_name", bp.Name, "new_name", newName)
	return nil
}

func (s *service) Delete(ctx context.Context, player domain.PlayerContext, name string) error {
	bp, err := s.resolveOwned(ctx, player, name)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteBackpack(ctx, bp.ID); err != nil {
		return err
	}

	logger.FromContext(ctx).Info("Backpack deleted", "backpack_id", bp.ID, "name", bp.Name)
	return nil
}

func (s *service) GrantAccess(ctx context.Context, player domain.PlayerContext, name string, userIDs, roleIDs []string) error {
	bp, err := s.resolveOwned(ctx, player, name)
	if err != nil {
		return err
	}

	users := mergeIDs(bp.AllowedUsers, userIDs)
	roles := mergeIDs(bp.AllowedRoles, roleIDs)

	return s.updateAccess(ctx, bp, users, roles)
}

func (s *service) RevokeAccess(ctx context.Context, player domain.PlayerContext, name string, userIDs, roleIDs []string) error {
	bp, err := s.resolveOwned(ctx, player, name)
	if err != nil {
		return err
	}

	users := removeIDs(bp.AllowedUsers, userIDs)
	roles := removeIDs(bp.AllowedRoles, roleIDs)

	return s.updateAccess(ctx, bp, users, roles)
}

// updateAccess writes both allow-lists and recomputes the access type:
// custom whenever either list is non-empty, owner-only otherwise.
func (s *service) updateAccess(ctx context.Context, bp *domain.Backpack, users, roles []string) error {
	accessType := domain.AccessOwnerOnly
	if len(users) > 0 || len(roles) > 0 {
		accessType = domain.AccessCustom
	}

	if err := s.repo.UpdateAccess(ctx, bp.ID, accessType, users, roles); err != nil {
		return err
	}

	logger.FromContext(ctx).Info("Backpack access updated",
		"backpack_id", bp.ID, "access_type", accessType,
		"allowed_users", len(users), "allowed_roles", len(roles))
	return nil
}

func (s *service) Deposit(ctx context.Context, player domain.PlayerContext, name, itemName string, amount int) (*domain.Backpack, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrInvalidInput)
	}

	bp, err := s.ResolveAccessible(ctx, player, name)
	if err != nil {
		return nil, err
	}

	key := naming.Key(itemName)
	if err := s.repo.DepositFromInventory(ctx, player.UserID, player.GuildID, bp.ID, key, amount); err != nil {
		if errors.Is(err, domain.ErrCapacityExceeded) {
			metrics.CapacityRejections.Inc()
		}
		return nil, err
	}

	metrics.BackpackTransfers.WithLabelValues("deposit").Inc()
	logger.FromContext(ctx).Debug("Deposited into backpack",
		"backpack_id", bp.ID, "item", key, "amount", amount, "user_id", player.UserID)

	return s.repo.GetBackpackByID(ctx, bp.ID)
}

func (s *service) Withdraw(ctx context.Context, player domain.PlayerContext, name, itemName string, amount int) (*domain.Backpack, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrInvalidInput)
	}

	bp, err := s.ResolveAccessible(ctx, player, name)
	if err != nil {
		return nil, err
	}

	key := naming.Key(itemName)
	if err := s.repo.WithdrawToInventory(ctx, player.UserID, player.GuildID, bp.ID, key, amount); err != nil {
		return nil, err
	}

	metrics.BackpackTransfers.WithLabelValues("withdraw").Inc()
	logger.FromContext(ctx).Debug("Withdrew from backpack",
		"backpack_id", bp.ID, "item", key, "amount", amount, "user_id", player.UserID)

	return s.repo.GetBackpackByID(ctx, bp.ID)
}

func (s *service) ListAccessible(ctx context.Context, player domain.PlayerContext) ([]domain.Backpack, error) {
	all, err := s.repo.ListByGuild(ctx, player.GuildID)
	if err != nil {
		return nil, err
	}

	var owned, shared []domain.Backpack
	for _, bp := range all {
		switch {
		case bp.OwnerType == domain.OwnerUser && bp.OwnerID == player.UserID:
			owned = append(owned, bp)
		case bp.AccessibleBy(player):
			shared = append(shared, bp)
		}
	}
	return append(owned, shared...), nil
}

func mergeIDs(existing, added []string) []string {
	seen := make(map[string]bool, len(existing)+len(added))
	merged := make([]string, 0, len(existing)+len(added))
	for _, id := range existing {
		if id != "" && !seen[id] {
			seen[id] = true
			merged = append(merged, id)
		}
	}
	for _, id := range added {
		if id != "" && !seen[id] {
			seen[id] = true
			merged = append(merged, id)
		}
	}
	return merged
}

func removeIDs(existing, removed []string) []string {
	drop := make(map[string]bool, len(removed))
	for _, id := range removed {
		drop[id] = true
	}
	kept := make([]string, 0, len(existing))
	for _, id := range existing {
		if !drop[id] {
			kept = append(kept, id)
		}
	}
	return kept
}
