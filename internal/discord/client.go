package discord

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/hollis-dev/SatchelBot_Go/internal/domain"
)

// APIClient handles communication with the SatchelBot core API
type APIClient struct {
	BaseURL string
	Client  *http.Client
	APIKey  string
}

// NewAPIClient creates a new API client
func NewAPIClient(baseURL, apiKey string) *APIClient {
	return &APIClient{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
		APIKey: apiKey,
	}
}

// APIError carries the server's user-facing error message.
type APIError struct {
	StatusCode int
	Message    string
	// Kind is set for requirement denials so commands can render the
	// specific missing requirement.
	Kind string
}

func (e *APIError) Error() string {
	return e.Message
}

// doRequest performs an HTTP request, retrying server errors with backoff.
func (c *APIClient) doRequest(method, path string, body interface{}) (*http.Response, error) {
	var reqBody []byte
	var err error

	if body != nil {
		reqBody, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal body: %w", err)
		}
	}

	reqURL := fmt.Sprintf("%s%s", c.BaseURL, path)

	maxRetries := 3
	retryDelay := 500 * time.Millisecond

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			jitter := time.Duration(time.Now().UnixNano()%100) * time.Millisecond
			delay := retryDelay*time.Duration(1<<uint(attempt-1)) + jitter
			time.Sleep(delay)
			slog.Info("Retrying API request", "attempt", attempt, "path", path, "delay", delay)
		}

		req, err := http.NewRequest(method, reqURL, bytes.NewBuffer(reqBody))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		req.Header.Set("Content-Type", "application/json")
		if c.APIKey != "" {
			req.Header.Set("X-API-Key", c.APIKey)
		}

		resp, err := c.Client.Do(req)
		if err != nil {
			lastErr = err
			slog.Warn("API request failed", "error", err, "attempt", attempt)
			continue
		}

		// Success or non-retryable client error
		if resp.StatusCode < 500 {
			return resp, nil
		}

		resp.Body.Close()
		lastErr = fmt.Errorf("server error: %d", resp.StatusCode)
		slog.Warn("Server error, will retry", "status", resp.StatusCode, "attempt", attempt)
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

// decodeOrError decodes a 2xx response body into out, or turns the server's
// error payload into an *APIError.
func decodeOrError(resp *http.Response, out interface{}) error {
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
		return nil
	}

	var payload struct {
		Error string `json:"error"`
		Kind  string `json:"kind"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil || payload.Error == "" {
		return &APIError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("API returned status %d", resp.StatusCode)}
	}
	return &APIError{StatusCode: resp.StatusCode, Message: payload.Error, Kind: payload.Kind}
}

// actorPayload identifies the acting player in write requests.
type actorPayload struct {
	DiscordID string   `json:"discord_id"`
	Username  string   `json:"username"`
	GuildID   string   `json:"guild_id"`
	RoleIDs   []string `json:"role_ids,omitempty"`
}

// RegisterUser registers or refreshes a user
func (c *APIClient) RegisterUser(discordID, username string) (*domain.User, error) {
	req := map[string]string{
		"discord_id": discordID,
		"username":   username,
	}

	resp, err := c.doRequest(http.MethodPost, "/api/v1/user/register", req)
	if err != nil {
		return nil, err
	}

	var out struct {
		User *domain.User `json:"user"`
	}
	if err := decodeOrError(resp, &out); err != nil {
		return nil, err
	}
	return out.User, nil
}

// GetBalance fetches wallet and bank balances
func (c *APIClient) GetBalance(discordID, guildID string) (wallet, bank int, err error) {
	path := fmt.Sprintf("/api/v1/economy/balance?discord_id=%s&guild_id=%s",
		url.QueryEscape(discordID), url.QueryEscape(guildID))

	resp, err := c.doRequest(http.MethodGet, path, nil)
	if err != nil {
		return 0, 0, err
	}

	var out struct {
		Wallet int `json:"wallet"`
		Bank   int `json:"bank"`
	}
	if err := decodeOrError(resp, &out); err != nil {
		return 0, 0, err
	}
	return out.Wallet, out.Bank, nil
}

// Deposit moves wallet money into the bank
func (c *APIClient) Deposit(actor actorPayload, amount int) (int, error) {
	return c.bankMove("/api/v1/economy/deposit", actor, amount)
}

// Withdraw moves bank money back to the wallet
func (c *APIClient) Withdraw(actor actorPayload, amount int) (int, error) {
	return c.bankMove("/api/v1/economy/withdraw", actor, amount)
}

func (c *APIClient) bankMove(path string, actor actorPayload, amount int) (int, error) {
	req := struct {
		actorPayload
		Amount int `json:"amount"`
	}{actor, amount}

	resp, err := c.doRequest(http.MethodPost, path, req)
	if err != nil {
		return 0, err
	}

	var out struct {
		Moved int `json:"moved"`
	}
	if err := decodeOrError(resp, &out); err != nil {
		return 0, err
	}
	return out.Moved, nil
}

// BuyItem buys items from the shop
func (c *APIClient) BuyItem(actor actorPayload, itemName string, quantity int) (cost int, err error) {
	req := struct {
		actorPayload
		ItemName string `json:"item_name"`
		Quantity int    `json:"quantity"`
	}{actor, itemName, quantity}

	resp, err := c.doRequest(http.MethodPost, "/api/v1/user/item/buy", req)
	if err != nil {
		return 0, err
	}

	var out struct {
		Cost int `json:"cost"`
	}
	if err := decodeOrError(resp, &out); err != nil {
		return 0, err
	}
	return out.Cost, nil
}

// SellItem sells inventory items back to the shop
func (c *APIClient) SellItem(actor actorPayload, itemName string, quantity int) (gained int, err error) {
	req := struct {
		actorPayload
		ItemName string `json:"item_name"`
		Quantity int    `json:"quantity"`
	}{actor, itemName, quantity}

	resp, err := c.doRequest(http.MethodPost, "/api/v1/user/item/sell", req)
	if err != nil {
		return 0, err
	}

	var out struct {
		MoneyGained int `json:"money_gained"`
	}
	if err := decodeOrError(resp, &out); err != nil {
		return 0, err
	}
	return out.MoneyGained, nil
}

// GetInventory fetches a player's inventory
func (c *APIClient) GetInventory(discordID, guildID string) (*domain.Inventory, error) {
	path := fmt.Sprintf("/api/v1/user/inventory?discord_id=%s&guild_id=%s",
		url.QueryEscape(discordID), url.QueryEscape(guildID))

	resp, err := c.doRequest(http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var out struct {
		Inventory *domain.Inventory `json:"inventory"`
	}
	if err := decodeOrError(resp, &out); err != nil {
		return nil, err
	}
	return out.Inventory, nil
}

// UseItem runs the item-use pipeline. A requirement denial comes back as an
// *APIError with Kind set.
func (c *APIClient) UseItem(actor actorPayload, itemName string) (*domain.EffectSummary, error) {
	req := struct {
		actorPayload
		ItemName string `json:"item_name"`
	}{actor, itemName}

	resp, err := c.doRequest(http.MethodPost, "/api/v1/user/item/use", req)
	if err != nil {
		return nil, err
	}

	var out struct {
		Summary *domain.EffectSummary `json:"summary"`
	}
	if err := decodeOrError(resp, &out); err != nil {
		return nil, err
	}
	return out.Summary, nil
}

// CreateBackpack creates a backpack owned by the actor
func (c *APIClient) CreateBackpack(actor actorPayload, name string, capacity int) (*domain.Backpack, error) {
	req := struct {
		actorPayload
		Name     string `json:"name"`
		Capacity int    `json:"capacity"`
	}{actor, name, capacity}

	return c.backpackCall("/api/v1/backpack/create", req)
}

// RenameBackpack renames an owned backpack
func (c *APIClient) RenameBackpack(actor actorPayload, name, newName string) error {
	req := struct {
		actorPayload
		Name    string `json:"name"`
		NewName string `json:"new_name"`
	}{actor, name, newName}

	resp, err := c.doRequest(http.MethodPost, "/api/v1/backpack/rename", req)
	if err != nil {
		return err
	}
	return decodeOrError(resp, nil)
}

// DeleteBackpack deletes an owned, empty backpack
func (c *APIClient) DeleteBackpack(actor actorPayload, name string) error {
	req := struct {
		actorPayload
		Name string `json:"name"`
	}{actor, name}

	resp, err := c.doRequest(http.MethodPost, "/api/v1/backpack/delete", req)
	if err != nil {
		return err
	}
	return decodeOrError(resp, nil)
}

// GrantBackpackAccess adds users or roles to a backpack's allow-lists
func (c *APIClient) GrantBackpackAccess(actor actorPayload, name string, userIDs, roleIDs []string) error {
	return c.accessCall("/api/v1/backpack/grant", actor, name, userIDs, roleIDs)
}

// RevokeBackpackAccess removes users or roles from a backpack's allow-lists
func (c *APIClient) RevokeBackpackAccess(actor actorPayload, name string, userIDs, roleIDs []string) error {
	return c.accessCall("/api/v1/backpack/revoke", actor, name, userIDs, roleIDs)
}

func (c *APIClient) accessCall(path string, actor actorPayload, name string, userIDs, roleIDs []string) error {
	req := struct {
		actorPayload
		Name    string   `json:"name"`
		UserIDs []string `json:"user_ids,omitempty"`
		RoleIDs []string `json:"grant_role_ids,omitempty"`
	}{actor, name, userIDs, roleIDs}

	resp, err := c.doRequest(http.MethodPost, path, req)
	if err != nil {
		return err
	}
	return decodeOrError(resp, nil)
}

// DepositToBackpack moves items from inventory into a backpack
func (c *APIClient) DepositToBackpack(actor actorPayload, name, itemName string, amount int) (*domain.Backpack, error) {
	return c.transferCall("/api/v1/backpack/deposit", actor, name, itemName, amount)
}

// WithdrawFromBackpack moves items from a backpack into inventory
func (c *APIClient) WithdrawFromBackpack(actor actorPayload, name, itemName string, amount int) (*domain.Backpack, error) {
	return c.transferCall("/api/v1/backpack/withdraw", actor, name, itemName, amount)
}

func (c *APIClient) transferCall(path string, actor actorPayload, name, itemName string, amount int) (*domain.Backpack, error) {
	req := struct {
		actorPayload
		Name     string `json:"name"`
		ItemName string `json:"item_name"`
		Amount   int    `json:"amount"`
	}{actor, name, itemName, amount}

	return c.backpackCall(path, req)
}

func (c *APIClient) backpackCall(path string, req interface{}) (*domain.Backpack, error) {
	resp, err := c.doRequest(http.MethodPost, path, req)
	if err != nil {
		return nil, err
	}

	var out struct {
		Backpack *domain.Backpack `json:"backpack"`
	}
	if err := decodeOrError(resp, &out); err != nil {
		return nil, err
	}
	return out.Backpack, nil
}

// ShowBackpack fetches one accessible backpack with its contents
func (c *APIClient) ShowBackpack(discordID, guildID, name string, roleIDs []string) (*domain.Backpack, error) {
	q := url.Values{}
	q.Set("discord_id", discordID)
	q.Set("guild_id", guildID)
	q.Set("name", name)
	for _, id := range roleIDs {
		q.Add("role_id", id)
	}

	resp, err := c.doRequest(http.MethodGet, "/api/v1/backpack/show?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var out struct {
		Backpack *domain.Backpack `json:"backpack"`
	}
	if err := decodeOrError(resp, &out); err != nil {
		return nil, err
	}
	return out.Backpack, nil
}

// ListBackpacks fetches every backpack the player can open
func (c *APIClient) ListBackpacks(discordID, guildID string, roleIDs []string) ([]domain.Backpack, error) {
	q := url.Values{}
	q.Set("discord_id", discordID)
	q.Set("guild_id", guildID)
	for _, id := range roleIDs {
		q.Add("role_id", id)
	}

	resp, err := c.doRequest(http.MethodGet, "/api/v1/backpack/list?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var out struct {
		Backpacks []domain.Backpack `json:"backpacks"`
	}
	if err := decodeOrError(resp, &out); err != nil {
		return nil, err
	}
	return out.Backpacks, nil
}

// UpsertItem creates or updates an item definition
func (c *APIClient) UpsertItem(item *domain.Item, update bool) (*domain.Item, error) {
	path := "/api/v1/admin/item/create"
	if update {
		path = "/api/v1/admin/item/update"
	}

	resp, err := c.doRequest(http.MethodPost, path, item)
	if err != nil {
		return nil, err
	}

	var out struct {
		Item *domain.Item `json:"item"`
	}
	if err := decodeOrError(resp, &out); err != nil {
		return nil, err
	}
	return out.Item, nil
}

// DeleteItem removes an item definition
func (c *APIClient) DeleteItem(guildID, name string) error {
	req := map[string]string{"guild_id": guildID, "name": name}

	resp, err := c.doRequest(http.MethodPost, "/api/v1/admin/item/delete", req)
	if err != nil {
		return err
	}
	return decodeOrError(resp, nil)
}

// ListItems fetches a guild's item definitions
func (c *APIClient) ListItems(guildID string) ([]domain.Item, error) {
	path := "/api/v1/admin/item/list?guild_id=" + url.QueryEscape(guildID)

	resp, err := c.doRequest(http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var out struct {
		Items []domain.Item `json:"items"`
	}
	if err := decodeOrError(resp, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}
