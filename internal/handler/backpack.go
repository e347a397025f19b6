package handler

import (
	"net/http"

	"github.com/hollis-dev/SatchelBot_Go/internal/backpack"
	"github.com/hollis-dev/SatchelBot_Go/internal/domain"
	"github.com/hollis-dev/SatchelBot_Go/internal/user"
)

// BackpackHandler bundles the backpack endpoints, which all resolve the
// acting player first.
type BackpackHandler struct {
	users     user.Service
	backpacks backpack.Service
}

// NewBackpackHandler creates a new backpack handler
func NewBackpackHandler(users user.Service, backpacks backpack.Service) *BackpackHandler {
	return &BackpackHandler{users: users, backpacks: backpacks}
}

// actor identifies the acting player in every backpack request.
type actor struct {
	DiscordID string   `json:"discord_id" validate:"required"`
	Username  string   `json:"username" validate:"required"`
	GuildID   string   `json:"guild_id" validate:"required"`
	RoleIDs   []string `json:"role_ids"`
}

// resolveActor registers the actor if needed and builds their player context.
func (h *BackpackHandler) resolveActor(r *http.Request, a actor) (domain.PlayerContext, error) {
	u, err := h.users.RegisterUser(r.Context(), a.DiscordID, a.Username)
	if err != nil {
		return domain.PlayerContext{}, err
	}
	return domain.PlayerContext{UserID: u.ID, DiscordID: a.DiscordID, GuildID: a.GuildID, RoleIDs: a.RoleIDs}, nil
}

// CreateBackpackRequest asks to create a backpack owned by the actor
type CreateBackpackRequest struct {
	actor
	Name     string `json:"name" validate:"required,max=100"`
	Capacity int    `json:"capacity" validate:"gte=0"`
}

// BackpackResponse wraps a single backpack
type BackpackResponse struct {
	Message  string           `json:"message,omitempty"`
	Backpack *domain.Backpack `json:"backpack"`
}

// BackpackListResponse wraps the accessible backpacks
type BackpackListResponse struct {
	Backpacks []domain.Backpack `json:"backpacks"`
}

// HandleCreate creates a backpack owned by the acting player
// @Summary Create a backpack
// @Tags backpack
// @Accept json
// @Produce json
// @Success 201 {object} BackpackResponse
// @Router /api/v1/backpack/create [post]
func (h *BackpackHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateBackpackRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Create backpack"); err != nil {
		return
	}

	player, err := h.resolveActor(r, req.actor)
	if err != nil {
		respondServiceError(w, r, "Create backpack", err)
		return
	}

	bp, err := h.backpacks.Create(r.Context(), player.GuildID, player.UserID, domain.OwnerUser, req.Name, req.Capacity)
	if err != nil {
		respondServiceError(w, r, "Create backpack", err)
		return
	}

	respondJSON(w, http.StatusCreated, BackpackResponse{Message: "Backpack created", Backpack: bp})
}

// RenameBackpackRequest asks to rename an owned backpack
type RenameBackpackRequest struct {
	actor
	Name    string `json:"name" validate:"required,max=100"`
	NewName string `json:"new_name" validate:"required,max=100"`
}

// HandleRename renames an owned backpack
// @Summary Rename a backpack (owner only)
// @Tags backpack
// @Accept json
// @Produce json
// @Success 200 {object} SuccessResponse
// @Router /api/v1/backpack/rename [post]
func (h *BackpackHandler) HandleRename(w http.ResponseWriter, r *http.Request) {
	var req RenameBackpackRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Rename backpack"); err != nil {
		return
	}

	player, err := h.resolveActor(r, req.actor)
	if err != nil {
		respondServiceError(w, r, "Rename backpack", err)
		return
	}

	if err := h.backpacks.Rename(r.Context(), player, req.Name, req.NewName); err != nil {
		respondServiceError(w, r, "Rename backpack", err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: "Backpack renamed"})
}

// NamedBackpackRequest targets one backpack by name
type NamedBackpackRequest struct {
	actor
	Name string `json:"name" validate:"required,max=100"`
}

// HandleDelete deletes an owned, empty backpack
// @Summary Delete an empty backpack (owner only)
// @Tags backpack
// @Accept json
// @Produce json
// @Success 200 {object} SuccessResponse
// @Router /api/v1/backpack/delete [post]
func (h *BackpackHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	var req NamedBackpackRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Delete backpack"); err != nil {
		return
	}

	player, err := h.resolveActor(r, req.actor)
	if err != nil {
		respondServiceError(w, r, "Delete backpack", err)
		return
	}

	if err := h.backpacks.Delete(r.Context(), player, req.Name); err != nil {
		respondServiceError(w, r, "Delete backpack", err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: "Backpack deleted"})
}

// AccessRequest grants or revokes access for users and roles
type AccessRequest struct {
	actor
	Name    string   `json:"name" validate:"required,max=100"`
	UserIDs []string `json:"user_ids"`
	RoleIDs []string `json:"grant_role_ids"`
}

// HandleGrantAccess adds users or roles to the allow-lists
// @Summary Grant backpack access (owner only)
// @Tags backpack
// @Accept json
// @Produce json
// @Success 200 {object} SuccessResponse
// @Router /api/v1/backpack/grant [post]
func (h *BackpackHandler) HandleGrantAccess(w http.ResponseWriter, r *http.Request) {
	var req AccessRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Grant backpack access"); err != nil {
		return
	}

	player, err := h.resolveActor(r, req.actor)
	if err != nil {
		respondServiceError(w, r, "Grant backpack access", err)
		return
	}

	if err := h.backpacks.GrantAccess(r.Context(), player, req.Name, req.UserIDs, req.RoleIDs); err != nil {
		respondServiceError(w, r, "Grant backpack access", err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: "Access granted"})
}

// HandleRevokeAccess removes users or roles from the allow-lists
// @Summary Revoke backpack access (owner only)
// @Tags backpack
// @Accept json
// @Produce json
// @Success 200 {object} SuccessResponse
// @Router /api/v1/backpack/revoke [post]
func (h *BackpackHandler) HandleRevokeAccess(w http.ResponseWriter, r *http.Request) {
	var req AccessRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Revoke backpack access"); err != nil {
		return
	}

	player, err := h.resolveActor(r, req.actor)
	if err != nil {
		respondServiceError(w, r, "Revoke backpack access", err)
		return
	}

	if err := h.backpacks.RevokeAccess(r.Context(), player, req.Name, req.UserIDs, req.RoleIDs); err != nil {
		respondServiceError(w, r, "Revoke backpack access", err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: "Access revoked"})
}

// TransferRequest moves items between inventory and a backpack
type TransferRequest struct {
	actor
	Name     string `json:"name" validate:"required,max=100"`
	ItemName string `json:"item_name" validate:"required,max=100"`
	Amount   int    `json:"amount" validate:"required,gt=0"`
}

// HandleDeposit moves items from the actor's inventory into a backpack
// @Summary Deposit items into a backpack
// @Tags backpack
// @Accept json
// @Produce json
// @Success 200 {object} BackpackResponse
// @Router /api/v1/backpack/deposit [post]
func (h *BackpackHandler) HandleDeposit(w http.ResponseWriter, r *http.Request) {
	var req TransferRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Deposit into backpack"); err != nil {
		return
	}

	player, err := h.resolveActor(r, req.actor)
	if err != nil {
		respondServiceError(w, r, "Deposit into backpack", err)
		return
	}

	bp, err := h.backpacks.Deposit(r.Context(), player, req.Name, req.ItemName, req.Amount)
	if err != nil {
		respondServiceError(w, r, "Deposit into backpack", err)
		return
	}

	respondJSON(w, http.StatusOK, BackpackResponse{Message: "Items deposited", Backpack: bp})
}

// HandleWithdraw moves items from a backpack into the actor's inventory
// @Summary Withdraw items from a backpack
// @Tags backpack
// @Accept json
// @Produce json
// @Success 200 {object} BackpackResponse
// @Router /api/v1/backpack/withdraw [post]
func (h *BackpackHandler) HandleWithdraw(w http.ResponseWriter, r *http.Request) {
	var req TransferRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Withdraw from backpack"); err != nil {
		return
	}

	player, err := h.resolveActor(r, req.actor)
	if err != nil {
		respondServiceError(w, r, "Withdraw from backpack", err)
		return
	}

	bp, err := h.backpacks.Withdraw(r.Context(), player, req.Name, req.ItemName, req.Amount)
	if err != nil {
		respondServiceError(w, r, "Withdraw from backpack", err)
		return
	}

	respondJSON(w, http.StatusOK, BackpackResponse{Message: "Items withdrawn", Backpack: bp})
}

// HandleShow returns one accessible backpack with its contents
// @Summary Show an accessible backpack
// @Tags backpack
// @Produce json
// @Param discord_id query string true "Discord user ID"
// @Param guild_id query string true "Guild ID"
// @Param name query string true "Backpack name"
// @Success 200 {object} BackpackResponse
// @Router /api/v1/backpack/show [get]
func (h *BackpackHandler) HandleShow(w http.ResponseWriter, r *http.Request) {
	discordID, ok := GetQueryParam(r, w, "discord_id")
	if !ok {
		return
	}
	guildID, ok := GetQueryParam(r, w, "guild_id")
	if !ok {
		return
	}
	name, ok := GetQueryParam(r, w, "name")
	if !ok {
		return
	}

	u, err := h.users.FindUserByDiscordID(r.Context(), discordID)
	if err != nil {
		respondServiceError(w, r, "Show backpack", err)
		return
	}

	player := domain.PlayerContext{
		UserID:    u.ID,
		DiscordID: discordID,
		GuildID:   guildID,
		RoleIDs:   r.URL.Query()["role_id"],
	}

	bp, err := h.backpacks.ResolveAccessible(r.Context(), player, name)
	if err != nil {
		respondServiceError(w, r, "Show backpack", err)
		return
	}

	respondJSON(w, http.StatusOK, BackpackResponse{Backpack: bp})
}

// HandleList returns every backpack the player can open
// @Summary List accessible backpacks
// @Tags backpack
// @Produce json
// @Param discord_id query string true "Discord user ID"
// @Param guild_id query string true "Guild ID"
// @Success 200 {object} BackpackListResponse
// @Router /api/v1/backpack/list [get]
func (h *BackpackHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	discordID, ok := GetQueryParam(r, w, "discord_id")
	if !ok {
		return
	}
	guildID, ok := GetQueryParam(r, w, "guild_id")
	if !ok {
		return
	}

	u, err := h.users.FindUserByDiscordID(r.Context(), discordID)
	if err != nil {
		respondServiceError(w, r, "List backpacks", err)
		return
	}

	player := domain.PlayerContext{
		UserID:    u.ID,
		DiscordID: discordID,
		GuildID:   guildID,
		RoleIDs:   r.URL.Query()["role_id"],
	}

	backpacks, err := h.backpacks.ListAccessible(r.Context(), player)
	if err != nil {
		respondServiceError(w, r, "List backpacks", err)
		return
	}

	respondJSON(w, http.StatusOK, BackpackListResponse{Backpacks: backpacks})
}
