package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hollis-dev/SatchelBot_Go/internal/domain"
	"github.com/hollis-dev/SatchelBot_Go/internal/effect"
	"github.com/hollis-dev/SatchelBot_Go/internal/item"
)

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) UpsertUser(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	if args.Error(0) == nil && user.ID == "" {
		user.ID = "user-1"
	}
	return args.Error(0)
}
func (m *MockUserRepo) GetUserByDiscordID(ctx context.Context, discordID string) (*domain.User, error) {
	args := m.Called(ctx, discordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) Resolve(ctx context.Context, guildID, name string) (*item.Definition, error) {
	args := m.Called(ctx, guildID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*item.Definition), args.Error(1)
}
func (m *MockCatalog) Invalidate(guildID, name string) {
	m.Called(guildID, name)
}
func (m *MockCatalog) List(ctx context.Context, guildID string) ([]domain.Item, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}

// MockInventory backs both the user service and the effect engine, so a
// test sees one consistent bag.
type MockInventory struct {
	mock.Mock
}

func (m *MockInventory) Get(ctx context.Context, userID, guildID string) (*domain.Inventory, error) {
	args := m.Called(ctx, userID, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Inventory), args.Error(1)
}
func (m *MockInventory) Quantity(ctx context.Context, userID, guildID, itemName string) (int, error) {
	args := m.Called(ctx, userID, guildID, itemName)
	return args.Int(0), args.Error(1)
}
func (m *MockInventory) Add(ctx context.Context, userID, guildID, itemName string, amount int) error {
	args := m.Called(ctx, userID, guildID, itemName, amount)
	return args.Error(0)
}
func (m *MockInventory) Remove(ctx context.Context, userID, guildID, itemName string, amount int) error {
	args := m.Called(ctx, userID, guildID, itemName, amount)
	return args.Error(0)
}
func (m *MockInventory) Has(ctx context.Context, userID, guildID, itemName string, amount int) (bool, error) {
	args := m.Called(ctx, userID, guildID, itemName, amount)
	return args.Bool(0), args.Error(1)
}

type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) WalletBalance(ctx context.Context, userID, guildID string) (int, error) {
	args := m.Called(ctx, userID, guildID)
	return args.Int(0), args.Error(1)
}
func (m *MockLedger) BankBalance(ctx context.Context, userID, guildID string) (int, error) {
	args := m.Called(ctx, userID, guildID)
	return args.Int(0), args.Error(1)
}
func (m *MockLedger) CreditWallet(ctx context.Context, userID, guildID string, amount int) error {
	args := m.Called(ctx, userID, guildID, amount)
	return args.Error(0)
}
func (m *MockLedger) DebitWallet(ctx context.Context, userID, guildID string, amount int) error {
	args := m.Called(ctx, userID, guildID, amount)
	return args.Error(0)
}
func (m *MockLedger) CreditBank(ctx context.Context, userID, guildID string, amount int) error {
	args := m.Called(ctx, userID, guildID, amount)
	return args.Error(0)
}
func (m *MockLedger) DebitBank(ctx context.Context, userID, guildID string, amount int) error {
	args := m.Called(ctx, userID, guildID, amount)
	return args.Error(0)
}
func (m *MockLedger) WithdrawBank(ctx context.Context, userID, guildID string, amount int) (int, error) {
	args := m.Called(ctx, userID, guildID, amount)
	return args.Int(0), args.Error(1)
}

type MockRoleManager struct {
	mock.Mock
}

func (m *MockRoleManager) Grant(ctx context.Context, guildID, userID, roleID string) error {
	args := m.Called(ctx, guildID, userID, roleID)
	return args.Error(0)
}
func (m *MockRoleManager) Revoke(ctx context.Context, guildID, userID, roleID string) error {
	args := m.Called(ctx, guildID, userID, roleID)
	return args.Error(0)
}

type useItemFixture struct {
	repo      *MockUserRepo
	catalog   *MockCatalog
	inventory *MockInventory
	ledger    *MockLedger
	roles     *MockRoleManager
	svc       Service
}

func newUseItemFixture() *useItemFixture {
	f := &useItemFixture{
		repo:      new(MockUserRepo),
		catalog:   new(MockCatalog),
		inventory: new(MockInventory),
		ledger:    new(MockLedger),
		roles:     new(MockRoleManager),
	}
	engine := effect.NewEngine(f.ledger, f.inventory, f.roles)
	f.svc = NewService(f.repo, f.catalog, f.inventory, engine)
	return f
}

func (f *useItemFixture) expectRegistration() {
	f.repo.On("UpsertUser", mock.Anything, mock.Anything).Return(nil)
}

func useParams() UseItemParams {
	return UseItemParams{
		DiscordID: "discord-1",
		Username:  "tester",
		GuildID:   "guild-1",
		RoleIDs:   []string{"role-member"},
		ItemName:  "lucky coin",
	}
}

func luckyCoin() *item.Definition {
	return &item.Definition{
		Item: domain.Item{
			GuildID:     "guild-1",
			Name:        "lucky coin",
			DisplayName: "Lucky Coin",
			Usable:      true,
		},
		Actions: []effect.Action{
			effect.MoneyAction{Target: effect.TargetMoney, Mode: effect.ModeAdd, Amount: 50},
		},
	}
}

func TestUseItem_HappyPath(t *testing.T) {
	f := newUseItemFixture()
	f.expectRegistration()

	f.catalog.On("Resolve", mock.Anything, "guild-1", "lucky coin").Return(luckyCoin(), nil)
	f.inventory.On("Quantity", mock.Anything, "user-1", "guild-1", "lucky coin").Return(2, nil)
	f.inventory.On("Remove", mock.Anything, "user-1", "guild-1", "lucky coin", 1).Return(nil)
	f.ledger.On("CreditWallet", mock.Anything, "user-1", "guild-1", 50).Return(nil)

	summary, err := f.svc.UseItem(context.Background(), useParams())
	require.NoError(t, err)
	assert.Equal(t, 50, summary.MoneyChanges.Added)
	f.inventory.AssertExpectations(t)
	f.ledger.AssertExpectations(t)
}

func TestUseItem_NotUsable(t *testing.T) {
	f := newUseItemFixture()
	f.expectRegistration()

	def := luckyCoin()
	def.Usable = false
	f.catalog.On("Resolve", mock.Anything, "guild-1", "lucky coin").Return(def, nil)

	_, err := f.svc.UseItem(context.Background(), useParams())
	assert.ErrorIs(t, err, domain.ErrNotUsable)
	f.inventory.AssertNotCalled(t, "Quantity",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// Holding the item is checked before any requirement, so a player who does
// not own the item learns nothing about what using it would take.
func TestUseItem_NotHeldBeforeRequirements(t *testing.T) {
	f := newUseItemFixture()
	f.expectRegistration()

	def := luckyCoin()
	def.Requirements = []effect.Requirement{
		effect.MoneyRequirement{Target: effect.TargetMoney, Value: 1000},
	}
	f.catalog.On("Resolve", mock.Anything, "guild-1", "lucky coin").Return(def, nil)
	f.inventory.On("Quantity", mock.Anything, "user-1", "guild-1", "lucky coin").Return(0, nil)

	_, err := f.svc.UseItem(context.Background(), useParams())
	assert.ErrorIs(t, err, domain.ErrInsufficientQuantity)
	f.ledger.AssertNotCalled(t, "WalletBalance", mock.Anything, mock.Anything, mock.Anything)
}

func TestUseItem_RequirementDenied(t *testing.T) {
	f := newUseItemFixture()
	f.expectRegistration()

	def := luckyCoin()
	def.Requirements = []effect.Requirement{
		effect.MoneyRequirement{Target: effect.TargetMoney, Value: 1000},
	}
	f.catalog.On("Resolve", mock.Anything, "guild-1", "lucky coin").Return(def, nil)
	f.inventory.On("Quantity", mock.Anything, "user-1", "guild-1", "lucky coin").Return(1, nil)
	f.ledger.On("WalletBalance", mock.Anything, "user-1", "guild-1").Return(400, nil)

	_, err := f.svc.UseItem(context.Background(), useParams())

	var reqErr *domain.RequirementFailedError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, domain.RequirementMoney, reqErr.Kind)
	// Nothing was spent and the item was not burned.
	f.ledger.AssertNotCalled(t, "DebitWallet",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.inventory.AssertNotCalled(t, "Remove",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUseItem_ConsumesRequirementsThenBurnsOne(t *testing.T) {
	f := newUseItemFixture()
	f.expectRegistration()

	def := luckyCoin()
	def.Requirements = []effect.Requirement{
		effect.MoneyRequirement{Target: effect.TargetMoney, Value: 25},
		effect.ItemRequirement{ItemName: "pan", Amount: 2, Mode: effect.Have},
	}
	f.catalog.On("Resolve", mock.Anything, "guild-1", "lucky coin").Return(def, nil)
	f.inventory.On("Quantity", mock.Anything, "user-1", "guild-1", "lucky coin").Return(1, nil)

	f.ledger.On("WalletBalance", mock.Anything, "user-1", "guild-1").Return(100, nil)
	f.inventory.On("Quantity", mock.Anything, "user-1", "guild-1", "pan").Return(3, nil)

	f.ledger.On("DebitWallet", mock.Anything, "user-1", "guild-1", 25).Return(nil)
	f.inventory.On("Remove", mock.Anything, "user-1", "guild-1", "pan", 2).Return(nil)
	f.inventory.On("Remove", mock.Anything, "user-1", "guild-1", "lucky coin", 1).Return(nil)
	f.ledger.On("CreditWallet", mock.Anything, "user-1", "guild-1", 50).Return(nil)

	summary, err := f.svc.UseItem(context.Background(), useParams())
	require.NoError(t, err)
	assert.Equal(t, 50, summary.MoneyChanges.Added)
	f.inventory.AssertExpectations(t)
	f.ledger.AssertExpectations(t)
}

// Registration upserts the caller and hands the internal ID to the ledger
// and inventory, but Discord role mutations must still carry the caller's
// snowflake, not the upserted ID.
func TestUseItem_RoleActionCarriesDiscordID(t *testing.T) {
	f := newUseItemFixture()
	f.expectRegistration()

	def := luckyCoin()
	def.Actions = []effect.Action{
		effect.RoleAction{Mode: effect.ModeAdd, RoleID: "role-lucky"},
	}
	f.catalog.On("Resolve", mock.Anything, "guild-1", "lucky coin").Return(def, nil)
	f.inventory.On("Quantity", mock.Anything, "user-1", "guild-1", "lucky coin").Return(1, nil)
	f.inventory.On("Remove", mock.Anything, "user-1", "guild-1", "lucky coin", 1).Return(nil)
	f.roles.On("Grant", mock.Anything, "guild-1", "discord-1", "role-lucky").Return(nil)

	summary, err := f.svc.UseItem(context.Background(), useParams())
	require.NoError(t, err)
	assert.Equal(t, []string{"role-lucky"}, summary.RolesGiven)
	f.roles.AssertNotCalled(t, "Grant", mock.Anything, "guild-1", "user-1", "role-lucky")
	f.roles.AssertExpectations(t)
}

func TestUseItem_ItemNotFound(t *testing.T) {
	f := newUseItemFixture()
	f.expectRegistration()

	f.catalog.On("Resolve", mock.Anything, "guild-1", "lucky coin").Return(nil, domain.ErrItemNotFound)

	_, err := f.svc.UseItem(context.Background(), useParams())
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestRegisterUser_RequiresIdentity(t *testing.T) {
	f := newUseItemFixture()

	_, err := f.svc.RegisterUser(context.Background(), "", "tester")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.svc.RegisterUser(context.Background(), "discord-1", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFindUserByDiscordID_CachesAfterRegistration(t *testing.T) {
	f := newUseItemFixture()
	f.expectRegistration()

	_, err := f.svc.RegisterUser(context.Background(), "discord-1", "tester")
	require.NoError(t, err)

	// Registration primed the cache, no repository read needed.
	u, err := f.svc.FindUserByDiscordID(context.Background(), "discord-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", u.ID)
	f.repo.AssertNotCalled(t, "GetUserByDiscordID", mock.Anything, mock.Anything)
}
