package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hollis-dev/SatchelBot_Go/internal/domain"
	"github.com/hollis-dev/SatchelBot_Go/internal/logger"
)

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := getBuffer()
	defer putBuffer(buf)

	// Encode to a pooled buffer first; headers are already out, so an
	// encoding failure can only be logged.
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// User-facing error messages derived from domain errors. They intentionally
// never leak internal error detail.
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"

	ErrMsgUserNotFoundError      = "User not found"
	ErrMsgItemNotFoundError      = "Item not found"
	ErrMsgInsufficientItemsErr   = "Not enough items"
	ErrMsgNotEnoughMoneyError    = "Not enough money"
	ErrMsgNotUsableError         = "That item cannot be used"
	ErrMsgNotSellableError       = "Item is not sellable"
	ErrMsgNotBuyableError        = "Item is not buyable"
	ErrMsgOutOfStockError        = "Item is out of stock"
	ErrMsgBackpackNotFoundError  = "Backpack not found"
	ErrMsgCapacityExceededError  = "Backpack has no free slots"
	ErrMsgDuplicateNameError     = "That name is already taken"
	ErrMsgBackpackNotEmptyError  = "Backpack must be empty first"
	ErrMsgNotOwnerError          = "Only the owner can do that"
	ErrMsgNoAccessError          = "You don't have access to that backpack"
	ErrMsgMissingRequirementFmt  = "Missing %s requirement"
	ErrMsgBadItemEncodingError   = "Invalid action or requirement encoding"
	ErrMsgInvalidInputError      = "Invalid request. Please check your inputs."
)

// mapServiceErrorToUserMessage maps domain errors to an HTTP status and a
// message a player can act on. Requirement denials are handled separately
// by the use handler so the failing kind survives to the response.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, ErrMsgUserNotFoundError
	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusNotFound, ErrMsgItemNotFoundError
	case errors.Is(err, domain.ErrBackpackNotFound):
		return http.StatusNotFound, ErrMsgBackpackNotFoundError
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusBadRequest, ErrMsgNotEnoughMoneyError
	case errors.Is(err, domain.ErrInsufficientQuantity):
		return http.StatusBadRequest, ErrMsgInsufficientItemsErr
	case errors.Is(err, domain.ErrNotUsable):
		return http.StatusBadRequest, ErrMsgNotUsableError
	case errors.Is(err, domain.ErrNotSellable):
		return http.StatusBadRequest, ErrMsgNotSellableError
	case errors.Is(err, domain.ErrNotBuyable):
		return http.StatusBadRequest, ErrMsgNotBuyableError
	case errors.Is(err, domain.ErrOutOfStock):
		return http.StatusConflict, ErrMsgOutOfStockError
	case errors.Is(err, domain.ErrCapacityExceeded):
		return http.StatusConflict, ErrMsgCapacityExceededError
	case errors.Is(err, domain.ErrDuplicateName):
		return http.StatusConflict, ErrMsgDuplicateNameError
	case errors.Is(err, domain.ErrBackpackNotEmpty):
		return http.StatusConflict, ErrMsgBackpackNotEmptyError
	case errors.Is(err, domain.ErrNotOwner):
		return http.StatusForbidden, ErrMsgNotOwnerError
	case errors.Is(err, domain.ErrNoAccess):
		return http.StatusForbidden, ErrMsgNoAccessError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}

// respondServiceError translates a service error into the HTTP response.
// Expected player-facing denials are not logged as errors.
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	log := logger.FromContext(r.Context())
	status, message := mapServiceErrorToUserMessage(err)
	if status >= http.StatusInternalServerError {
		log.Error(opName+" failed", "error", err)
	} else {
		log.Debug(opName+" denied", "error", err, "status", status)
	}
	respondError(w, status, message)
}
