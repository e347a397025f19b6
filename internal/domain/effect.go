package domain

// PlayerContext identifies the acting player for one invocation. It is
// resolved by the caller (interaction payload) and treated as opaque input
// by the effect engine.
type PlayerContext struct {
	// UserID is the internal user ID keying balances and inventory rows.
	UserID string
	// DiscordID is the Discord snowflake, used for Discord API calls and
	// backpack allow-lists.
	DiscordID string
	GuildID   string
	RoleIDs   []string
}

// HasRole reports whether the acting player holds the given role.
func (p PlayerContext) HasRole(roleID string) bool {
	for _, id := range p.RoleIDs {
		if id == roleID {
			return true
		}
	}
	return false
}

// Delta accumulates the credited and debited totals for one balance target.
type Delta struct {
	Added   int `json:"added"`
	Removed int `json:"removed"`
}

// ItemDelta records one inventory change applied by an item action.
type ItemDelta struct {
	ItemName string `json:"item_name"`
	Amount   int    `json:"amount"`
}

// EffectSummary accumulates everything a single item use did to the player.
// It is created fresh per invocation, handed to the presentation layer for
// rendering, and never persisted.
type EffectSummary struct {
	MoneyChanges  Delta       `json:"money_changes"`
	BankChanges   Delta       `json:"bank_changes"`
	ItemsGiven    []ItemDelta `json:"items_given,omitempty"`
	ItemsTaken    []ItemDelta `json:"items_taken,omitempty"`
	RolesGiven    []string    `json:"roles_given,omitempty"`
	RolesRemoved  []string    `json:"roles_removed,omitempty"`
	CustomMessage string      `json:"custom_message,omitempty"`
}
