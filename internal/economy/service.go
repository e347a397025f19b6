package economy

import (
	"context"
	"fmt"

	"github.com/hollis-dev/SatchelBot_Go/internal/domain"
	"github.com/hollis-dev/SatchelBot_Go/internal/inventory"
	"github.com/hollis-dev/SatchelBot_Go/internal/item"
	"github.com/hollis-dev/SatchelBot_Go/internal/logger"
	"github.com/hollis-dev/SatchelBot_Go/internal/metrics"
	"github.com/hollis-dev/SatchelBot_Go/internal/repository"
)

// SellPriceDivisor halves the shop price when selling back.
const SellPriceDivisor = 2

// Balances is a point-in-time view of a player's money.
type Balances struct {
	Wallet int `json:"wallet"`
	Bank   int `json:"bank"`
}

// BuyResult reports a completed purchase.
type BuyResult struct {
	ItemName string `json:"item_name"`
	Quantity int    `json:"quantity"`
	Cost     int    `json:"cost"`
}

// SellResult reports a completed sale.
type SellResult struct {
	ItemName    string `json:"item_name"`
	Quantity    int    `json:"quantity"`
	MoneyGained int    `json:"money_gained"`
}

// Service defines the interface for economy operations. It doubles as the
// effect engine's ledger collaborator.
type Service interface {
	GetBalances(ctx context.Context, userID, guildID string) (*Balances, error)
	Deposit(ctx context.Context, userID, guildID string, amount int) error
	WithdrawToWallet(ctx context.Context, userID, guildID string, amount int) (int, error)
	Buy(ctx context.Context, userID, guildID, itemName string, quantity int) (*BuyResult, error)
	Sell(ctx context.Context, userID, guildID, itemName string, quantity int) (*SellResult, error)

	// Ledger collaborator surface used by the effect engine.
	WalletBalance(ctx context.Context, userID, guildID string) (int, error)
	BankBalance(ctx context.Context, userID, guildID string) (int, error)
	CreditWallet(ctx context.Context, userID, guildID string, amount int) error
	DebitWallet(ctx context.Context, userID, guildID string, amount int) error
	CreditBank(ctx context.Context, userID, guildID string, amount int) error
	DebitBank(ctx context.Context, userID, guildID string, amount int) error
	WithdrawBank(ctx context.Context, userID, guildID string, amount int) (int, error)
}

type service struct {
	repo      repository.Economy
	items     repository.Item
	catalog   item.Catalog
	inventory inventory.Service
}

// NewService creates a new economy service
func NewService(repo repository.Economy, items repository.Item, catalog item.Catalog, inventorySvc inventory.Service) Service {
	return &service{
		repo:      repo,
		items:     items,
		catalog:   catalog,
		inventory: inventorySvc,
	}
}

func (s *service) GetBalances(ctx context.Context, userID, guildID string) (*Balances, error) {
	wallet, bank, err := s.repo.GetBalances(ctx, userID, guildID)
	if err != nil {
		return nil, err
	}
	return &Balances{Wallet: wallet, Bank: bank}, nil
}

func (s *service) Deposit(ctx context.Context, userID, guildID string, amount int) error {
	if amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", domain.ErrInvalidInput)
	}
	return s.repo.Deposit(ctx, userID, guildID, amount)
}

func (s *service) WithdrawToWallet(ctx context.Context, userID, guildID string, amount int) (int, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("%w: amount must be positive", domain.ErrInvalidInput)
	}
	return s.repo.Withdraw(ctx, userID, guildID, amount)
}

// Buy purchases quantity units from the shop: stock is decremented first
// (atomically, so two buyers cannot oversell a finite stock), then the
// wallet debit, then the inventory credit. A failed debit restores stock.
func (s *service) Buy(ctx context.Context, userID, guildID, itemName string, quantity int) (*BuyResult, error) {
	log := logger.FromContext(ctx)

	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidInput)
	}

	def, err := s.catalog.Resolve(ctx, guildID, itemName)
	if err != nil {
		return nil, err
	}
	if !def.Purchasable() {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotBuyable, def.Name)
	}
	if !def.InStock(quantity) {
		return nil, fmt.Errorf("%w: %s", domain.ErrOutOfStock, def.Name)
	}

	cost := def.Price * quantity

	if err := s.items.DecrementStock(ctx, guildID, def.Name, quantity); err != nil {
		return nil, err
	}

	if err := s.repo.DebitWallet(ctx, userID, guildID, cost); err != nil {
		// Give the reserved stock back; the purchase never happened.
		s.restoreStock(ctx, guildID, def, quantity)
		return nil, err
	}

	if err := s.inventory.Add(ctx, userID, guildID, def.Name, quantity); err != nil {
		log.Error("Failed to deliver purchased items", "error", err, "item", def.Name)
		return nil, err
	}

	s.catalog.Invalidate(guildID, def.Name)
	metrics.ItemsBought.WithLabelValues(def.Name).Add(float64(quantity))

	return &BuyResult{ItemName: def.Name, Quantity: quantity, Cost: cost}, nil
}

func (s *service) restoreStock(ctx context.Context, guildID string, def *item.Definition, quantity int) {
	if def.Stock == domain.UnlimitedStock {
		return
	}
	if err := s.items.IncrementStock(ctx, guildID, def.Name, quantity); err != nil {
		logger.FromContext(ctx).Error("Failed to restore stock after failed purchase",
			"error", err, "item", def.Name, "quantity", quantity)
	}
}

// Sell trades inventory units back to the shop for half price.
func (s *service) Sell(ctx context.Context, userID, guildID, itemName string, quantity int) (*SellResult, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidInput)
	}

	def, err := s.catalog.Resolve(ctx, guildID, itemName)
	if err != nil {
		return nil, err
	}
	if !def.Sellable {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotSellable, def.Name)
	}

	if err := s.inventory.Remove(ctx, userID, guildID, def.Name, quantity); err != nil {
		return nil, err
	}

	gained := def.Price / SellPriceDivisor * quantity
	if err := s.repo.CreditWallet(ctx, userID, guildID, gained); err != nil {
		return nil, err
	}

	metrics.ItemsSold.WithLabelValues(def.Name).Add(float64(quantity))

	return &SellResult{ItemName: def.Name, Quantity: quantity, MoneyGained: gained}, nil
}

// Ledger collaborator surface.

func (s *service) WalletBalance(ctx context.Context, userID, guildID string) (int, error) {
	wallet, _, err := s.repo.GetBalances(ctx, userID, guildID)
	return wallet, err
}

func (s *service) BankBalance(ctx context.Context, userID, guildID string) (int, error) {
	_, bank, err := s.repo.GetBalances(ctx, userID, guildID)
	return bank, err
}

func (s *service) CreditWallet(ctx context.Context, userID, guildID string, amount int) error {
	return s.repo.CreditWallet(ctx, userID, guildID, amount)
}

func (s *service) DebitWallet(ctx context.Context, userID, guildID string, amount int) error {
	return s.repo.DebitWallet(ctx, userID, guildID, amount)
}

func (s *service) CreditBank(ctx context.Context, userID, guildID string, amount int) error {
	return s.repo.CreditBank(ctx, userID, guildID, amount)
}

func (s *service) DebitBank(ctx context.Context, userID, guildID string, amount int) error {
	return s.repo.DebitBank(ctx, userID, guildID, amount)
}

func (s *service) WithdrawBank(ctx context.Context, userID, guildID string, amount int) (int, error) {
	return s.repo.Withdraw(ctx, userID, guildID, amount)
}
