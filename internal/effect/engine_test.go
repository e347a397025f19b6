package effect

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hollis-dev/SatchelBot_Go/internal/domain"
)

// Mock collaborators

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

type MockItemBag struct {
	mock.Mock
}

func (m *MockItemBag) Quantity(ctx context.Context, userID, guildID, itemName string) (int, error) {
	args := m.Called(ctx, userID, guildID, itemName)
	return args.Int(0), args.Error(1)
}
func (m *MockItemBag) Add(ctx context.Context, userID, guildID, itemName string, amount int) error {
	args := m.Called(ctx, userID, guildID, itemName, amount)
	return args.Error(0)
}
func (m *MockItemBag) Remove(ctx context.Context, userID, guildID, itemName string, amount int) error {
	args := m.Called(ctx, userID, guildID, itemName, amount)
	return args.Error(0)
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

func newTestEngine() (*Engine, *MockLedger, *MockItemBag, *MockRoleManager) {
	ledger := new(MockLedger)
	items := new(MockItemBag)
	roles := new(MockRoleManager)
	return NewEngine(ledger, items, roles), ledger, items, roles
}

var testPlayer = domain.PlayerContext{
	UserID:    "user-1",
	DiscordID: "111222333444",
	GuildID:   "guild-1",
	RoleIDs:   []string{"role-vip"},
}

func TestEvaluate_ShortCircuitsOnFirstFailure(t *testing.T) {
	engine, ledger, items, _ := newTestEngine()

	// Money requirement fails first; the item requirement after it must
	// never be checked.
	requirements := []Requirement{
		MoneyRequirement{Target: TargetMoney, Value: 100},
		ItemRequirement{ItemName: "key", Amount: 1, Mode: Have},
	}

	ledger.On("WalletBalance", mock.Anything, "user-1", "guild-1").Return(50, nil)

	err := engine.Evaluate(context.Background(), requirements, testPlayer)

	var reqErr *domain.RequirementFailedError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, domain.RequirementMoney, reqErr.Kind)
	items.AssertNotCalled(t, "Quantity", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestEvaluate_AllSatisfied(t *testing.T) {
	engine, ledger, items, _ := newTestEngine()

	requirements := []Requirement{
		MoneyRequirement{Target: TargetMoney, Value: 100},
		ItemRequirement{ItemName: "key", Amount: 1, Mode: Have},
		RoleRequirement{RoleID: "role-vip", Mode: Have},
	}

	ledger.On("WalletBalance", mock.Anything, "user-1", "guild-1").Return(150, nil)
	items.On("Quantity", mock.Anything, "user-1", "guild-1", "key").Return(2, nil)

	err := engine.Evaluate(context.Background(), requirements, testPlayer)
	assert.NoError(t, err)
}

func TestEvaluate_DoesNotMutateState(t *testing.T) {
	engine, ledger, items, _ := newTestEngine()

	requirements := []Requirement{
		MoneyRequirement{Target: TargetBank, Value: 10},
		ItemRequirement{ItemName: "key", Amount: 1, Mode: Have},
	}

	ledger.On("BankBalance", mock.Anything, "user-1", "guild-1").Return(100, nil)
	items.On("Quantity", mock.Anything, "user-1", "guild-1", "key").Return(1, nil)

	require.NoError(t, engine.Evaluate(context.Background(), requirements, testPlayer))

	ledger.AssertNotCalled(t, "DebitBank", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	items.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestEvaluate_NotHaveModes(t *testing.T) {
	engine, _, items, _ := newTestEngine()

	items.On("Quantity", mock.Anything, "user-1", "guild-1", "curse").Return(0, nil)

	requirements := []Requirement{
		ItemRequirement{ItemName: "curse", Amount: 1, Mode: NotHave},
		RoleRequirement{RoleID: "role-banned", Mode: NotHave},
	}

	err := engine.Evaluate(context.Background(), requirements, testPlayer)
	assert.NoError(t, err)
}

func TestEvaluate_RoleRequirementDenied(t *testing.T) {
	engine, _, _, _ := newTestEngine()

	requirements := []Requirement{
		RoleRequirement{RoleID: "role-admin", Mode: Have},
	}

	err := engine.Evaluate(context.Background(), requirements, testPlayer)

	var reqErr *domain.RequirementFailedError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, domain.RequirementRole, reqErr.Kind)
}

func TestConsume_DebitsMoneyAndItems(t *testing.T) {
	engine, ledger, items, _ := newTestEngine()

	requirements := []Requirement{
		MoneyRequirement{Target: TargetMoney, Value: 100},
		MoneyRequirement{Target: TargetBank, Value: 50},
		ItemRequirement{ItemName: "key", Amount: 1, Mode: Have},
		RoleRequirement{RoleID: "role-vip", Mode: Have},
	}

	ledger.On("DebitWallet", mock.Anything, "user-1", "guild-1", 100).Return(nil)
	ledger.On("DebitBank", mock.Anything, "user-1", "guild-1", 50).Return(nil)
	items.On("Remove", mock.Anything, "user-1", "guild-1", "key", 1).Return(nil)

	err := engine.Consume(context.Background(), requirements, testPlayer)
	require.NoError(t, err)

	ledger.AssertExpectations(t)
	items.AssertExpectations(t)
}

func TestConsume_NotHaveItemIsNotConsumed(t *testing.T) {
	engine, _, items, _ := newTestEngine()

	requirements := []Requirement{
		ItemRequirement{ItemName: "curse", Amount: 1, Mode: NotHave},
	}

	err := engine.Consume(context.Background(), requirements, testPlayer)
	require.NoError(t, err)

	items.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestConsume_StopsOnLostRace(t *testing.T) {
	engine, ledger, items, _ := newTestEngine()

	requirements := []Requirement{
		MoneyRequirement{Target: TargetMoney, Value: 100},
		ItemRequirement{ItemName: "key", Amount: 1, Mode: Have},
	}

	// Another use drained the wallet between Evaluate and Consume.
	ledger.On("DebitWallet", mock.Anything, "user-1", "guild-1", 100).Return(domain.ErrInsufficientFunds)

	err := engine.Consume(context.Background(), requirements, testPlayer)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	items.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestApply_AccumulatesSummary(t *testing.T) {
	engine, ledger, items, roles := newTestEngine()

	actions := []Action{
		MoneyAction{Target: TargetMoney, Mode: ModeAdd, Amount: 50},
		ItemAction{Mode: ModeAdd, ItemName: "pan", Amount: 3},
		RoleAction{Mode: ModeAdd, RoleID: "role-hero"},
		MessageAction{Text: "The {item} glows."},
	}

	ledger.On("CreditWallet", mock.Anything, "user-1", "guild-1", 50).Return(nil)
	items.On("Add", mock.Anything, "user-1", "guild-1", "pan", 3).Return(nil)
	roles.On("Grant", mock.Anything, "guild-1", "111222333444", "role-hero").Return(nil)

	summary := &domain.EffectSummary{}
	err := engine.Apply(context.Background(), actions, testPlayer, "Magic Lamp", summary)
	require.NoError(t, err)

	assert.Equal(t, 50, summary.MoneyChanges.Added)
	assert.Equal(t, []domain.ItemDelta{{ItemName: "pan", Amount: 3}}, summary.ItemsGiven)
	assert.Equal(t, []string{"role-hero"}, summary.RolesGiven)
	assert.Equal(t, "The Magic Lamp glows.", summary.CustomMessage)
}

func TestApply_RoleActionsKeyedByDiscordID(t *testing.T) {
	engine, _, _, roles := newTestEngine()

	actions := []Action{
		RoleAction{Mode: ModeAdd, RoleID: "role-hero"},
		RoleAction{Mode: ModeRemove, RoleID: "role-novice"},
	}

	// Role membership lives in Discord, so mutations must carry the
	// snowflake and never the internal user ID.
	roles.On("Grant", mock.Anything, "guild-1", "111222333444", "role-hero").Return(nil)
	roles.On("Revoke", mock.Anything, "guild-1", "111222333444", "role-novice").Return(nil)

	summary := &domain.EffectSummary{}
	require.NoError(t, engine.Apply(context.Background(), actions, testPlayer, "Medal", summary))

	roles.AssertNotCalled(t, "Grant", mock.Anything, "guild-1", "user-1", "role-hero")
	roles.AssertNotCalled(t, "Revoke", mock.Anything, "guild-1", "user-1", "role-novice")
	roles.AssertExpectations(t)
}

func TestApply_RoleFailureIsAbsorbed(t *testing.T) {
	engine, ledger, _, roles := newTestEngine()

	actions := []Action{
		RoleAction{Mode: ModeAdd, RoleID: "role-gone"},
		MoneyAction{Target: TargetMoney, Mode: ModeAdd, Amount: 10},
	}

	roles.On("Grant", mock.Anything, "guild-1", "111222333444", "role-gone").Return(errors.New("unknown role"))
	ledger.On("CreditWallet", mock.Anything, "user-1", "guild-1", 10).Return(nil)

	summary := &domain.EffectSummary{}
	err := engine.Apply(context.Background(), actions, testPlayer, "Badge", summary)
	require.NoError(t, err)

	// The failed grant is not reported as given and the money still landed.
	assert.Empty(t, summary.RolesGiven)
	assert.Equal(t, 10, summary.MoneyChanges.Added)
}

func TestApply_ItemFailureAborts(t *testing.T) {
	engine, ledger, items, _ := newTestEngine()

	actions := []Action{
		ItemAction{Mode: ModeRemove, ItemName: "ore", Amount: 5},
		MoneyAction{Target: TargetMoney, Mode: ModeAdd, Amount: 100},
	}

	items.On("Remove", mock.Anything, "user-1", "guild-1", "ore", 5).Return(domain.ErrInsufficientQuantity)

	summary := &domain.EffectSummary{}
	err := engine.Apply(context.Background(), actions, testPlayer, "Smelter", summary)
	assert.ErrorIs(t, err, domain.ErrInsufficientQuantity)

	ledger.AssertNotCalled(t, "CreditWallet", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestApply_BankRemoveWithdrawsToWallet(t *testing.T) {
	engine, ledger, _, _ := newTestEngine()

	actions := []Action{
		MoneyAction{Target: TargetBank, Mode: ModeRemove, Amount: 50},
	}

	// Only 30 was in the bank; the withdrawal clamps.
	ledger.On("WithdrawBank", mock.Anything, "user-1", "guild-1", 50).Return(30, nil)

	summary := &domain.EffectSummary{}
	err := engine.Apply(context.Background(), actions, testPlayer, "Cheque", summary)
	require.NoError(t, err)

	assert.Equal(t, 30, summary.BankChanges.Removed)
	assert.Equal(t, 30, summary.MoneyChanges.Added)
}
