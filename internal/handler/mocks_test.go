package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/hollis-dev/SatchelBot_Go/internal/domain"
	"github.com/hollis-dev/SatchelBot_Go/internal/economy"
	"github.com/hollis-dev/SatchelBot_Go/internal/user"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) RegisterUser(ctx context.Context, discordID, username string) (*domain.User, error) {
	args := m.Called(ctx, discordID, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) FindUserByDiscordID(ctx context.Context, discordID string) (*domain.User, error) {
	args := m.Called(ctx, discordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) UseItem(ctx context.Context, params user.UseItemParams) (*domain.EffectSummary, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EffectSummary), args.Error(1)
}

type MockEconomyService struct {
	mock.Mock
}

func (m *MockEconomyService) GetBalances(ctx context.Context, userID, guildID string) (*economy.Balances, error) {
	args := m.Called(ctx, userID, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*economy.Balances), args.Error(1)
}
func (m *MockEconomyService) Deposit(ctx context.Context, userID, guildID string, amount int) error {
	args := m.Called(ctx, userID, guildID, amount)
	return args.Error(0)
}
func (m *MockEconomyService) WithdrawToWallet(ctx context.Context, userID, guildID string, amount int) (int, error) {
	args := m.Called(ctx, userID, guildID, amount)
	return args.Int(0), args.Error(1)
}
func (m *MockEconomyService) Buy(ctx context.Context, userID, guildID, itemName string, quantity int) (*economy.BuyResult, error) {
	args := m.Called(ctx, userID, guildID, itemName, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*economy.BuyResult), args.Error(1)
}
func (m *MockEconomyService) Sell(ctx context.Context, userID, guildID, itemName string, quantity int) (*economy.SellResult, error) {
	args := m.Called(ctx, userID, guildID, itemName, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*economy.SellResult), args.Error(1)
}
func (m *MockEconomyService) WalletBalance(ctx context.Context, userID, guildID string) (int, error) {
	args := m.Called(ctx, userID, guildID)
	return args.Int(0), args.Error(1)
}
func (m *MockEconomyService) BankBalance(ctx context.Context, userID, guildID string) (int, error) {
	args := m.Called(ctx, userID, guildID)
	return args.Int(0), args.Error(1)
}
func (m *MockEconomyService) CreditWallet(ctx context.Context, userID, guildID string, amount int) error {
	args := m.Called(ctx, userID, guildID, amount)
	return args.Error(0)
}
func (m *MockEconomyService) DebitWallet(ctx context.Context, userID, guildID string, amount int) error {
	args := m.Called(ctx, userID, guildID, amount)
	return args.Error(0)
}
func (m *MockEconomyService) CreditBank(ctx context.Context, userID, guildID string, amount int) error {
	args := m.Called(ctx, userID, guildID, amount)
	return args.Error(0)
}
func (m *MockEconomyService) DebitBank(ctx context.Context, userID, guildID string, amount int) error {
	args := m.Called(ctx, userID, guildID, amount)
	return args.Error(0)
}
func (m *MockEconomyService) WithdrawBank(ctx context.Context, userID, guildID string, amount int) (int, error) {
	args := m.Called(ctx, userID, guildID, amount)
	return args.Int(0), args.Error(1)
}
