package handler

import (
	"net/http"

	"github.com/hollis-dev/SatchelBot_Go/internal/domain"
	"github.com/hollis-dev/SatchelBot_Go/internal/inventory"
	"github.com/hollis-dev/SatchelBot_Go/internal/user"
)

// InventoryResponse wraps a player's inventory
type InventoryResponse struct {
	Inventory *domain.Inventory `json:"inventory"`
}

// HandleGetInventory returns the acting player's inventory
// @Summary Get a player's inventory
// @Tags inventory
// @Produce json
// @Param discord_id query string true "Discord user ID"
// @Param guild_id query string true "Guild ID"
// @Success 200 {object} InventoryResponse
// @Router /api/v1/user/inventory [get]
func HandleGetInventory(userService user.Service, inventoryService inventory.Service) http.HandlerFunc {
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
			respondServiceError(w, r, "Get inventory", err)
			return
		}

		inv, err := inventoryService.Get(r.Context(), u.ID, guildID)
		if err != nil {
			respondServiceError(w, r, "Get inventory", err)
			return
		}

		respondJSON(w, http.StatusOK, InventoryResponse{Inventory: inv})
	}
}
