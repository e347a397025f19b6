package domain

// User represents a registered player.
type User struct {
	ID        string `json:"user_id"`
	DiscordID string `json:"discord_id"`
	Username  string `json:"username"`
}
