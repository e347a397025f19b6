package handler

import (
	"net/http"

	"github.com/hollis-dev/SatchelBot_Go/internal/economy"
	"github.com/hollis-dev/SatchelBot_Go/internal/user"
)

// BalanceResponse wraps a player's wallet and bank balances
type BalanceResponse struct {
	Wallet int `json:"wallet"`
	Bank   int `json:"bank"`
}

// BankMoveRequest asks to move money between wallet and bank
type BankMoveRequest struct {
	DiscordID string `json:"discord_id" validate:"required"`
	Username  string `json:"username" validate:"required"`
	GuildID   string `json:"guild_id" validate:"required"`
	Amount    int    `json:"amount" validate:"required,gt=0"`
}

// BankMoveResponse reports the amount that actually moved
type BankMoveResponse struct {
	Message string `json:"message"`
	Moved   int    `json:"moved"`
}

// ShopRequest asks to buy or sell shop items
type ShopRequest struct {
	DiscordID string `json:"discord_id" validate:"required"`
	Username  string `json:"username" validate:"required"`
	GuildID   string `json:"guild_id" validate:"required"`
	ItemName  string `json:"item_name" validate:"required,max=100"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// HandleGetBalance returns a player's balances
// @Summary Get wallet and bank balances
// @Tags economy
// @Produce json
// @Param discord_id query string true "Discord user ID"
// @Param guild_id query string true "Guild ID"
// @Success 200 {object} BalanceResponse
// @Router /api/v1/economy/balance [get]
func HandleGetBalance(userService user.Service, economyService economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		discordID, ok := GetQueryParam(r, w, "discord_id")
		if !ok {
			return
		}
		guildID, ok := GetQueryParam(r, w, "guild_id")
		if !ok {
			return
		}

		u, err := userService.FindUserByDiscordID(r.Context(), discordID)
		if err != nil {
			respondServiceError(w, r, "Get balance", err)
			return
		}

		balances, err := economyService.GetBalances(r.Context(), u.ID, guildID)
		if err != nil {
			respondServiceError(w, r, "Get balance", err)
			return
		}

		respondJSON(w, http.StatusOK, BalanceResponse{Wallet: balances.Wallet, Bank: balances.Bank})
	}
}

// HandleDeposit moves wallet money into the bank
// @Summary Deposit wallet money into the bank
// @Tags economy
// @Accept json
// @Produce json
// @Success 200 {object} BankMoveResponse
// @Router /api/v1/economy/deposit [post]
func HandleDeposit(userService user.Service, economyService economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BankMoveRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Deposit"); err != nil {
			return
		}

		u, err := userService.RegisterUser(r.Context(), req.DiscordID, req.Username)
		if err != nil {
			respondServiceError(w, r, "Deposit", err)
			return
		}

		if err := economyService.Deposit(r.Context(), u.ID, req.GuildID, req.Amount); err != nil {
			respondServiceError(w, r, "Deposit", err)
			return
		}

		respondJSON(w, http.StatusOK, BankMoveResponse{Message: "Deposited", Moved: req.Amount})
	}
}

// HandleWithdraw moves bank money back to the wallet
// @Summary Withdraw bank money to the wallet
// @Tags economy
// @Accept json
// @Produce json
// @Success 200 {object} BankMoveResponse
// @Router /api/v1/economy/withdraw [post]
func HandleWithdraw(userService user.Service, economyService economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BankMoveRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Withdraw"); err != nil {
			return
		}

		u, err := userService.RegisterUser(r.Context(), req.DiscordID, req.Username)
		if err != nil {
			respondServiceError(w, r, "Withdraw", err)
			return
		}

		moved, err := economyService.WithdrawToWallet(r.Context(), u.ID, req.GuildID, req.Amount)
		if err != nil {
			respondServiceError(w, r, "Withdraw", err)
			return
		}

		respondJSON(w, http.StatusOK, BankMoveResponse{Message: "Withdrawn", Moved: moved})
	}
}

// HandleBuyItem buys items from the shop
// @Summary Buy items from the shop
// @Tags economy
// @Accept json
// @Produce json
// @Success 200 {object} economy.BuyResult
// @Router /api/v1/user/item/buy [post]
func HandleBuyItem(userService user.Service, economyService economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ShopRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Buy item"); err != nil {
			return
		}

		u, err := userService.RegisterUser(r.Context(), req.DiscordID, req.Username)
		if err != nil {
			respondServiceError(w, r, "Buy item", err)
			return
		}

		result, err := economyService.Buy(r.Context(), u.ID, req.GuildID, req.ItemName, req.Quantity)
		if err != nil {
			respondServiceError(w, r, "Buy item", err)
			return
		}

		respondJSON(w, http.StatusOK, result)
	}
}

// HandleSellItem sells inventory items back to the shop
// @Summary Sell items to the shop
// @Tags economy
// @Accept json
// @Produce json
// @Success 200 {object} economy.SellResult
// @Router /api/v1/user/item/sell [post]
func HandleSellItem(userService user.Service, economyService economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ShopRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Sell item"); err != nil {
			return
		}

		u, err := userService.RegisterUser(r.Context(), req.DiscordID, req.Username)
		if err != nil {
			respondServiceError(w, r, "Sell item", err)
			return
		}

		result, err := economyService.Sell(r.Context(), u.ID, req.GuildID, req.ItemName, req.Quantity)
		if err != nil {
			respondServiceError(w, r, "Sell item", err)
			return
		}

		respondJSON(w, http.StatusOK, result)
	}
}
