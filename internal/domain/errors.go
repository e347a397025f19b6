package domain

import (
	"errors"
	"fmt"
)

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// User errors
	ErrMsgUserNotFound = "user not found"

	// Item errors
	ErrMsgItemNotFound = "item not found"
	ErrMsgNotUsable    = "item is not usable"
	ErrMsgNotSellable  = "item is not sellable"
	ErrMsgNotBuyable   = "item is not buyable"
	ErrMsgOutOfStock   = "item is out of stock"

	// Inventory errors
	ErrMsgInsufficientQuantity = "insufficient quantity"

	// Economy errors
	ErrMsgInsufficientFunds = "insufficient funds"

	// Backpack errors
	ErrMsgBackpackNotFound = "backpack not found"
	ErrMsgCapacityExceeded = "backpack capacity exceeded"
	ErrMsgDuplicateName    = "a backpack with that name already exists"
	ErrMsgBackpackNotEmpty = "backpack is not empty"
	ErrMsgNoAccess         = "no access to backpack"
	ErrMsgNotOwner         = "only the owner may do that"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// User errors
	ErrUserNotFound = errors.New(ErrMsgUserNotFound)

	// Item errors
	ErrItemNotFound = errors.New(ErrMsgItemNotFound)
	ErrNotUsable    = errors.New(ErrMsgNotUsable)
	ErrNotSellable  = errors.New(ErrMsgNotSellable)
	ErrNotBuyable   = errors.New(ErrMsgNotBuyable)
	ErrOutOfStock   = errors.New(ErrMsgOutOfStock)

	// Inventory errors
	ErrInsufficientQuantity = errors.New(ErrMsgInsufficientQuantity)

	// Economy errors
	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)

	// Backpack errors
	ErrBackpackNotFound = errors.New(ErrMsgBackpackNotFound)
	ErrCapacityExceeded = errors.New(ErrMsgCapacityExceeded)
	ErrDuplicateName    = errors.New(ErrMsgDuplicateName)
	ErrBackpackNotEmpty = errors.New(ErrMsgBackpackNotEmpty)
	ErrNoAccess         = errors.New(ErrMsgNoAccess)
	ErrNotOwner         = errors.New(ErrMsgNotOwner)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)

// RequirementKind identifies which category of requirement denied an item use.
// The presentation layer uses it to pick a specific denial message.
type RequirementKind string

const (
	RequirementMoney RequirementKind = "money"
	RequirementItem  RequirementKind = "item"
	RequirementRole  RequirementKind = "role"
)

// RequirementFailedError reports the first unsatisfied requirement during
// evaluation. It is an expected, player-facing denial, not a system error.
type RequirementFailedError struct {
	Kind RequirementKind
}

func (e *RequirementFailedError) Error() string {
	return fmt.Sprintf("requirement not met: %s", e.Kind)
}
