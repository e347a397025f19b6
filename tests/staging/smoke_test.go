//go:build staging

package staging

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"
)

const smokeGuildID = "900000000000000001"

// TestUserRegistration registers a fresh user.
func TestUserRegistration(t *testing.T) {
	discordID := fmt.Sprintf("9%017d", time.Now().Unix())

	request := map[string]interface{}{
		"discord_id": discordID,
		"username":   "StagingTestUser",
	}

	resp, body := makeRequest(t, "POST", "/api/v1/user/register", request)

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Unexpected status: %d. Body: %s", resp.StatusCode, string(body))
	}
}

// TestBalanceEndpoint registers a user and reads their balance.
func TestBalanceEndpoint(t *testing.T) {
	discordID := fmt.Sprintf("8%017d", time.Now().Unix())

	register := map[string]interface{}{
		"discord_id": discordID,
		"username":   "StagingBalanceUser",
	}
	resp0, body0 := makeRequest(t, "POST", "/api/v1/user/register", register)
	if resp0.StatusCode != http.StatusOK {
		t.Fatalf("Register: expected 200, got %d. Body: %s", resp0.StatusCode, string(body0))
	}

	path := fmt.Sprintf("/api/v1/economy/balance?discord_id=%s&guild_id=%s", discordID, smokeGuildID)
	resp, body := makeRequest(t, "GET", path, nil)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d. Body: %s", resp.StatusCode, string(body))
	}

	var result map[string]interface{}
	if err := json.Unmarshal(body, &result); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if _, ok := result["wallet"]; !ok {
		t.Error("Expected 'wallet' field in balance response")
	}
	if _, ok := result["bank"]; !ok {
		t.Error("Expected 'bank' field in balance response")
	}
}

// TestBackpackLifecycle creates, shows and deletes a backpack.
func TestBackpackLifecycle(t *testing.T) {
	discordID := fmt.Sprintf("7%017d", time.Now().Unix())
	name := fmt.Sprintf("smoke-pack-%d", time.Now().UnixNano())

	actor := map[string]interface{}{
		"discord_id": discordID,
		"username":   "StagingPackUser",
		"guild_id":   smokeGuildID,
	}

	create := map[string]interface{}{}
	for k, v := range actor {
		create[k] = v
	}
	create["name"] = name
	create["capacity"] = 3

	resp, body := makeRequest(t, "POST", "/api/v1/backpack/create", create)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Create: expected 200, got %d. Body: %s", resp.StatusCode, string(body))
	}

	path := fmt.Sprintf("/api/v1/backpack/show?discord_id=%s&username=StagingPackUser&guild_id=%s&name=%s", discordID, smokeGuildID, name)
	resp, body = makeRequest(t, "GET", path, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Show: expected 200, got %d. Body: %s", resp.StatusCode, string(body))
	}

	del := map[string]interface{}{}
	for k, v := range actor {
		del[k] = v
	}
	del["name"] = name

	resp, body = makeRequest(t, "POST", "/api/v1/backpack/delete", del)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Delete: expected 200, got %d. Body: %s", resp.StatusCode, string(body))
	}
}

// TestAuthRequired verifies protected endpoints reject missing keys.
func TestAuthRequired(t *testing.T) {
	req, err := http.NewRequest("GET", stagingURL+"/api/v1/backpack/list?discord_id=1&username=x&guild_id=1", nil)
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected 401 without API key, got %d", resp.StatusCode)
	}
}
