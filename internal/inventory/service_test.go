package inventory

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

func (m *MockRepository) GetInventory(ctx context.Context, userID, guildID string) (*domain.Inventory, error) {
	args := m.Called(ctx, userID, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Inventory), args.Error(1)
}
func (m *MockRepository) GetQuantity(ctx context.Context, userID, guildID, itemName string) (int, error) {
	args := m.Called(ctx, userID, guildID, itemName)
	return args.Int(0), args.Error(1)
}
func (m *MockRepository) AddQuantity(ctx context.Context, userID, guildID, itemName string, amount int) error {
	args := m.Called(ctx, userID, guildID, itemName, amount)
	return args.Error(0)
}
func (m *MockRepository) RemoveQuantity(ctx context.Context, userID, guildID, itemName string, amount int) error {
	args := m.Called(ctx, userID, guildID, itemName, amount)
	return args.Error(0)
}

func TestQuantity_FoldsItemName(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	// "Pan" and "PAN" are the same stored key.
	repo.On("GetQuantity", mock.Anything, "u1", "g1", "pan").Return(3, nil)

	got, err := svc.Quantity(context.Background(), "u1", "g1", "PAN")
	require.NoError(t, err)
	assert.Equal(t, 3, got)

	got, err = svc.Quantity(context.Background(), "u1", "g1", "Pan")
	require.NoError(t, err)
	assert.Equal(t, 3, got)
}

func TestRemove_InsufficientLeavesStateUntouched(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	// Holding 2, removing 5: the repository refuses and keeps the slot.
	repo.On("RemoveQuantity", mock.Anything, "u1", "g1", "pan", 5).Return(domain.ErrInsufficientQuantity)
	repo.On("GetQuantity", mock.Anything, "u1", "g1", "pan").Return(2, nil)

	err := svc.Remove(context.Background(), "u1", "g1", "pan", 5)
	assert.ErrorIs(t, err, domain.ErrInsufficientQuantity)

	held, err := svc.Quantity(context.Background(), "u1", "g1", "pan")
	require.NoError(t, err)
	assert.Equal(t, 2, held)
}

func TestHas(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	repo.On("GetQuantity", mock.Anything, "u1", "g1", "pan").Return(2, nil)

	ok, err := svc.Has(context.Background(), "u1", "g1", "pan", 2)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Has(context.Background(), "u1", "g1", "pan", 3)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAdd_DelegatesWithFoldedKey(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	repo.On("AddQuantity", mock.Anything, "u1", "g1", "lucky coin", 1).Return(nil)

	err := svc.Add(context.Background(), "u1", "g1", "Lucky Coin", 1)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}
