package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/hollis-dev/SatchelBot_Go/internal/domain"
	"github.com/hollis-dev/SatchelBot_Go/internal/user"
)

// UseItemRequest asks to use one unit of a held item
type UseItemRequest struct {
	DiscordID string   `json:"discord_id" validate:"required"`
	Username  string   `json:"username" validate:"required"`
	GuildID   string   `json:"guild_id" validate:"required"`
	RoleIDs   []string `json:"role_ids"`
	ItemName  string   `json:"item_name" validate:"required,max=100"`
}

// UseItemResponse carries the effect summary of a completed use
type UseItemResponse struct {
	Message string                `json:"message"`
	Summary *domain.EffectSummary `json:"summary"`
}

// UseDeniedResponse reports which requirement kind denied the use, so the
// presentation layer can render a specific message.
type UseDeniedResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// HandleUseItem runs the item-use pipeline
// @Summary Use one unit of a held item
// @Tags item
// @Accept json
// @Produce json
// @Success 200 {object} UseItemResponse
// @Failure 422 {object} UseDeniedResponse
// @Router /api/v1/user/item/use [post]
func HandleUseItem(userService user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UseItemRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Use item"); err != nil {
			return
		}

		summary, err := userService.UseItem(r.Context(), user.UseItemParams{
			DiscordID: req.DiscordID,
			Username:  req.Username,
			GuildID:   req.GuildID,
			RoleIDs:   req.RoleIDs,
			ItemName:  req.ItemName,
		})
		if err != nil {
			var reqErr *domain.RequirementFailedError
			if errors.As(err, &reqErr) {
				respondJSON(w, http.StatusUnprocessableEntity, UseDeniedResponse{
					Error: fmt.Sprintf(ErrMsgMissingRequirementFmt, reqErr.Kind),
					Kind:  string(reqErr.Kind),
				})
				return
			}
			respondServiceError(w, r, "Use item", err)
			return
		}

		respondJSON(w, http.StatusOK, UseItemResponse{
			Message: "Item used",
			Summary: summary,
		})
	}
}
