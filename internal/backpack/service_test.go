package backpack

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hollis-dev/SatchelBot_Go/internal/domain"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateBackpack(ctx context.Context, backpack *domain.Backpack) error {
	args := m.Called(ctx, backpack)
	return args.Error(0)
}
func (m *MockRepository) GetBackpackByID(ctx context.Context, backpackID string) (*domain.Backpack, error) {
	args := m.Called(ctx, backpackID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Backpack), args.Error(1)
}
func (m *MockRepository) GetBackpackByName(ctx context.Context, guildID, ownerID, name string) (*domain.Backpack, error) {
	args := m.Called(ctx, guildID, ownerID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Backpack), args.Error(1)
}
func (m *MockRepository) ListByGuild(ctx context.Context, guildID string) ([]domain.Backpack, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Backpack), args.Error(1)
}
func (m *MockRepository) RenameBackpack(ctx context.Context, backpackID, newName string) error {
	args := m.Called(ctx, backpackID, newName)
	return args.Error(0)
}
func (m *MockRepository) DeleteBackpack(ctx context.Context, backpackID string) error {
	args := m.Called(ctx, backpackID)
	return args.Error(0)
}
func (m *MockRepository) UpdateAccess(ctx context.Context, backpackID string, accessType domain.AccessType, allowedUsers, allowedRoles []string) error {
	args := m.Called(ctx, backpackID, accessType, allowedUsers, allowedRoles)
	return args.Error(0)
}
func (m *MockRepository) AddItem(ctx context.Context, backpackID, itemName string, amount int) error {
	args := m.Called(ctx, backpackID, itemName, amount)
	return args.Error(0)
}
func (m *MockRepository) RemoveItem(ctx context.Context, backpackID, itemName string, amount int) error {
	args := m.Called(ctx, backpackID, itemName, amount)
	return args.Error(0)
}
func (m *MockRepository) DepositFromInventory(ctx context.Context, userID, guildID, backpackID, itemName string, amount int) error {
	args := m.Called(ctx, userID, guildID, backpackID, itemName, amount)
	return args.Error(0)
}
func (m *MockRepository) WithdrawToInventory(ctx context.Context, userID, guildID, backpackID, itemName string, amount int) error {
	args := m.Called(ctx, userID, guildID, backpackID, itemName, amount)
	return args.Error(0)
}

var player = domain.PlayerContext{
	UserID:    "owner-1",
	DiscordID: "111000111000",
	GuildID:   "guild-1",
	RoleIDs:   []string{"role-a"},
}

func TestCreate_DefaultsCapacity(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	repo.On("CreateBackpack", mock.Anything, mock.MatchedBy(func(bp *domain.Backpack) bool {
		return bp.Capacity == DefaultCapacity && bp.AccessType == domain.AccessOwnerOnly
	})).Return(nil)

	bp, err := svc.Create(context.Background(), "guild-1", "owner-1", domain.OwnerUser, "satchel", 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultCapacity, bp.Capacity)
}

func TestCreate_RejectsBlankName(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), "guild-1", "owner-1", domain.OwnerUser, "   ", 5)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	repo.AssertNotCalled(t, "CreateBackpack", mock.Anything, mock.Anything)
}

func TestCreate_DuplicateName(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	repo.On("CreateBackpack", mock.Anything, mock.Anything).Return(domain.ErrDuplicateName)

	_, err := svc.Create(context.Background(), "guild-1", "owner-1", domain.OwnerUser, "satchel", 5)
	assert.ErrorIs(t, err, domain.ErrDuplicateName)
}

func TestResolveAccessible_OwnedWinsOverShared(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	owned := &domain.Backpack{ID: "bp-owned", Name: "Satchel", OwnerID: "owner-1", OwnerType: domain.OwnerUser}
	repo.On("GetBackpackByName", mock.Anything, "guild-1", "owner-1", "Satchel").Return(owned, nil)

	got, err := svc.ResolveAccessible(context.Background(), player, "Satchel")
	require.NoError(t, err)
	assert.Equal(t, "bp-owned", got.ID)
	repo.AssertNotCalled(t, "ListByGuild", mock.Anything, mock.Anything)
}

func TestResolveAccessible_FallsBackToShared(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	repo.On("GetBackpackByName", mock.Anything, "guild-1", "owner-1", "camp chest").Return(nil, domain.ErrBackpackNotFound)
	repo.On("ListByGuild", mock.Anything, "guild-1").Return([]domain.Backpack{
		{ID: "bp-other", Name: "other", OwnerID: "user-9", OwnerType: domain.OwnerUser},
		{
			ID: "bp-shared", Name: "Camp Chest", OwnerID: "user-9", OwnerType: domain.OwnerUser,
			AccessType: domain.AccessCustom, AllowedRoles: []string{"role-a"},
		},
	}, nil)

	got, err := svc.ResolveAccessible(context.Background(), player, "camp chest")
	require.NoError(t, err)
	assert.Equal(t, "bp-shared", got.ID)
}

// Grants store the grantee's Discord snowflake, so a shared backpack must
// open for a player whose internal ID the owner never saw.
func TestResolveAccessible_UserGrantMatchesDiscordID(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	grantee := domain.PlayerContext{
		UserID:    "internal-uuid-grantee",
		DiscordID: "555666777888",
		GuildID:   "guild-1",
	}

	repo.On("GetBackpackByName", mock.Anything, "guild-1", "internal-uuid-grantee", "chest").
		Return(nil, domain.ErrBackpackNotFound)
	repo.On("ListByGuild", mock.Anything, "guild-1").Return([]domain.Backpack{
		{
			ID: "bp-shared", Name: "Chest", OwnerID: "owner-1", OwnerType: domain.OwnerUser,
			AccessType: domain.AccessCustom, AllowedUsers: []string{"555666777888"},
		},
	}, nil)

	got, err := svc.ResolveAccessible(context.Background(), grantee, "chest")
	require.NoError(t, err)
	assert.Equal(t, "bp-shared", got.ID)
}

func TestResolveAccessible_InaccessibleIsNotFound(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	repo.On("GetBackpackByName", mock.Anything, "guild-1", "owner-1", "vault").Return(nil, domain.ErrBackpackNotFound)
	repo.On("ListByGuild", mock.Anything, "guild-1").Return([]domain.Backpack{
		{ID: "bp-private", Name: "Vault", OwnerID: "user-9", OwnerType: domain.OwnerUser, AccessType: domain.AccessOwnerOnly},
	}, nil)

	_, err := svc.ResolveAccessible(context.Background(), player, "vault")
	assert.ErrorIs(t, err, domain.ErrBackpackNotFound)
}

func TestRename_SharedButUnownedIsNotOwner(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	repo.On("GetBackpackByName", mock.Anything, "guild-1", "owner-1", "camp chest").Return(nil, domain.ErrBackpackNotFound)
	repo.On("ListByGuild", mock.Anything, "guild-1").Return([]domain.Backpack{
		{
			ID: "bp-shared", Name: "Camp Chest", OwnerID: "user-9", OwnerType: domain.OwnerUser,
			AccessType: domain.AccessCustom, AllowedUsers: []string{"111000111000"},
		},
	}, nil)

	err := svc.Rename(context.Background(), player, "camp chest", "mine now")
	assert.ErrorIs(t, err, domain.ErrNotOwner)
	repo.AssertNotCalled(t, "RenameBackpack", mock.Anything, mock.Anything, mock.Anything)
}

func TestDelete_NotEmpty(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	owned := &domain.Backpack{ID: "bp-1", Name: "satchel", OwnerID: "owner-1", OwnerType: domain.OwnerUser,
		Items: map[string]int{"pan": 1}}
	repo.On("GetBackpackByName", mock.Anything, "guild-1", "owner-1", "satchel").Return(owned, nil)
	repo.On("DeleteBackpack", mock.Anything, "bp-1").Return(domain.ErrBackpackNotEmpty)

	err := svc.Delete(context.Background(), player, "satchel")
	assert.ErrorIs(t, err, domain.ErrBackpackNotEmpty)
}

func TestGrantAccess_SwitchesToCustom(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	owned := &domain.Backpack{ID: "bp-1", Name: "satchel", OwnerID: "owner-1", OwnerType: domain.OwnerUser,
		AccessType: domain.AccessOwnerOnly}
	repo.On("GetBackpackByName", mock.Anything, "guild-1", "owner-1", "satchel").Return(owned, nil)
	repo.On("UpdateAccess", mock.Anything, "bp-1", domain.AccessCustom, []string{"friend-1"}, []string{}).Return(nil)

	err := svc.GrantAccess(context.Background(), player, "satchel", []string{"friend-1"}, nil)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestRevokeAccess_LastEntryRevertsToOwnerOnly(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	owned := &domain.Backpack{ID: "bp-1", Name: "satchel", OwnerID: "owner-1", OwnerType: domain.OwnerUser,
		AccessType: domain.AccessCustom, AllowedUsers: []string{"friend-1"}}
	repo.On("GetBackpackByName", mock.Anything, "guild-1", "owner-1", "satchel").Return(owned, nil)
	repo.On("UpdateAccess", mock.Anything, "bp-1", domain.AccessOwnerOnly, []string{}, []string{}).Return(nil)

	err := svc.RevokeAccess(context.Background(), player, "satchel", []string{"friend-1"}, nil)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestGrantAccess_MergeIsIdempotent(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	owned := &domain.Backpack{ID: "bp-1", Name: "satchel", OwnerID: "owner-1", OwnerType: domain.OwnerUser,
		AccessType: domain.AccessCustom, AllowedUsers: []string{"friend-1"}}
	repo.On("GetBackpackByName", mock.Anything, "guild-1", "owner-1", "satchel").Return(owned, nil)
	repo.On("UpdateAccess", mock.Anything, "bp-1", domain.AccessCustom, []string{"friend-1"}, []string{}).Return(nil)

	err := svc.GrantAccess(context.Background(), player, "satchel", []string{"friend-1"}, nil)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

// Capacity bounds distinct item keys: a second distinct item is rejected on
// a one-slot backpack while topping up the existing key still works.
func TestDeposit_CapacityBoundsDistinctKeys(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	bp := &domain.Backpack{ID: "bp-1", Name: "pouch", OwnerID: "owner-1", OwnerType: domain.OwnerUser,
		Capacity: 1, Items: map[string]int{"pan": 2}}
	repo.On("GetBackpackByName", mock.Anything, "guild-1", "owner-1", "pouch").Return(bp, nil)

	// Topping up the existing key works.
	repo.On("DepositFromInventory", mock.Anything, "owner-1", "guild-1", "bp-1", "pan", 1).Return(nil)
	refreshed := &domain.Backpack{ID: "bp-1", Name: "pouch", Capacity: 1, Items: map[string]int{"pan": 3}}
	repo.On("GetBackpackByID", mock.Anything, "bp-1").Return(refreshed, nil)

	got, err := svc.Deposit(context.Background(), player, "pouch", "Pan", 1)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Items["pan"])
	assert.Equal(t, 1, got.UsedSlots())

	// A new distinct key does not fit.
	repo.On("DepositFromInventory", mock.Anything, "owner-1", "guild-1", "bp-1", "agua", 1).Return(domain.ErrCapacityExceeded)

	_, err = svc.Deposit(context.Background(), player, "pouch", "agua", 1)
	assert.ErrorIs(t, err, domain.ErrCapacityExceeded)
}

func TestWithdraw_RejectsNonPositiveAmount(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	_, err := svc.Withdraw(context.Background(), player, "pouch", "pan", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	repo.AssertNotCalled(t, "WithdrawToInventory",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestListAccessible_OwnedFirst(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	repo.On("ListByGuild", mock.Anything, "guild-1").Return([]domain.Backpack{
		{ID: "bp-shared", OwnerID: "user-9", OwnerType: domain.OwnerUser,
			AccessType: domain.AccessCustom, AllowedRoles: []string{"role-a"}},
		{ID: "bp-owned", OwnerID: "owner-1", OwnerType: domain.OwnerUser},
		{ID: "bp-private", OwnerID: "user-9", OwnerType: domain.OwnerUser},
	}, nil)

	got, err := svc.ListAccessible(context.Background(), player)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "bp-owned", got[0].ID)
	assert.Equal(t, "bp-shared", got[1].ID)
}
