package handler

import (
	"net/http"

	"github.com/hollis-dev/SatchelBot_Go/internal/domain"
	"github.com/hollis-dev/SatchelBot_Go/internal/item"
)

// ItemAdminHandler bundles the item definition CRUD endpoints. They sit
// behind the same API key as everything else; the bot restricts the
// commands that call them to guild administrators.
type ItemAdminHandler struct {
	items item.Service
}

// NewItemAdminHandler creates a new item admin handler
func NewItemAdminHandler(items item.Service) *ItemAdminHandler {
	return &ItemAdminHandler{items: items}
}

// ItemDefinitionRequest carries a full item definition for create or edit.
// Actions and requirements use the persisted colon-delimited encodings and
// are validated before anything is written.
type ItemDefinitionRequest struct {
	GuildID      string   `json:"guild_id" validate:"required"`
	Name         string   `json:"name" validate:"required,max=100"`
	Description  string   `json:"description" validate:"max=500"`
	Price        int      `json:"price" validate:"gte=0"`
	Stock        int      `json:"stock" validate:"gte=-1"`
	Usable       bool     `json:"usable"`
	Sellable     bool     `json:"sellable"`
	Actions      []string `json:"actions"`
	Requirements []string `json:"requirements"`
}

// ItemResponse wraps a stored item definition
type ItemResponse struct {
	Message string       `json:"message,omitempty"`
	Item    *domain.Item `json:"item"`
}

// ItemListResponse wraps a guild's item definitions
type ItemListResponse struct {
	Items []domain.Item `json:"items"`
}

func (req *ItemDefinitionRequest) toDomain() *domain.Item {
	return &domain.Item{
		GuildID:      req.GuildID,
		Name:         req.Name,
		DisplayName:  req.Name,
		Description:  req.Description,
		Price:        req.Price,
		Stock:        req.Stock,
		Usable:       req.Usable,
		Sellable:     req.Sellable,
		Actions:      req.Actions,
		Requirements: req.Requirements,
	}
}

// HandleCreate creates an item definition
// @Summary Create an item definition
// @Tags item-admin
// @Accept json
// @Produce json
// @Success 201 {object} ItemResponse
// @Router /api/v1/admin/item/create [post]
func (h *ItemAdminHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req ItemDefinitionRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Create item"); err != nil {
		return
	}

	def, err := h.items.Create(r.Context(), req.toDomain())
	if err != nil {
		respondServiceError(w, r, "Create item", err)
		return
	}

	respondJSON(w, http.StatusCreated, ItemResponse{Message: "Item created", Item: &def.Item})
}

// HandleUpdate replaces an item definition
// @Summary Edit an item definition
// @Tags item-admin
// @Accept json
// @Produce json
// @Success 200 {object} ItemResponse
// @Router /api/v1/admin/item/update [post]
func (h *ItemAdminHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req ItemDefinitionRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Update item"); err != nil {
		return
	}

	def, err := h.items.Update(r.Context(), req.toDomain())
	if err != nil {
		respondServiceError(w, r, "Update item", err)
		return
	}

	respondJSON(w, http.StatusOK, ItemResponse{Message: "Item updated", Item: &def.Item})
}

// DeleteItemRequest targets a definition by name
type DeleteItemRequest struct {
	GuildID string `json:"guild_id" validate:"required"`
	Name    string `json:"name" validate:"required,max=100"`
}

// HandleDelete removes an item definition. Copies already held in
// inventories and backpacks stay where they are as orphans.
// @Summary Delete an item definition
// @Tags item-admin
// @Accept json
// @Produce json
// @Success 200 {object} SuccessResponse
// @Router /api/v1/admin/item/delete [post]
func (h *ItemAdminHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	var req DeleteItemRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Delete item"); err != nil {
		return
	}

	if err := h.items.Delete(r.Context(), req.GuildID, req.Name); err != nil {
		respondServiceError(w, r, "Delete item", err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: "Item deleted"})
}

// HandleGet returns one item definition
// @Summary Get an item definition
// @Tags item-admin
// @Produce json
// @Param guild_id query string true "Guild ID"
// @Param name query string true "Item name"
// @Success 200 {object} ItemResponse
// @Router /api/v1/admin/item/get [get]
func (h *ItemAdminHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	guildID, ok := GetQueryParam(r, w, "guild_id")
	if !ok {
		return
	}
	name, ok := GetQueryParam(r, w, "name")
	if !ok {
		return
	}

	def, err := h.items.Resolve(r.Context(), guildID, name)
	if err != nil {
		respondServiceError(w, r, "Get item", err)
		return
	}

	respondJSON(w, http.StatusOK, ItemResponse{Item: &def.Item})
}

// HandleList returns every item definition of a guild
// @Summary List a guild's item definitions
// @Tags item-admin
// @Produce json
// @Param guild_id query string true "Guild ID"
// @Success 200 {object} ItemListResponse
// @Router /api/v1/admin/item/list [get]
func (h *ItemAdminHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	guildID, ok := GetQueryParam(r, w, "guild_id")
	if !ok {
		return
	}

	items, err := h.items.List(r.Context(), guildID)
	if err != nil {
		respondServiceError(w, r, "List items", err)
		return
	}

	respondJSON(w, http.StatusOK, ItemListResponse{Items: items})
}
