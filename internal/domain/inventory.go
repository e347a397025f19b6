package domain

// InventorySlot is one distinct item key held by a player in a guild.
// A slot only exists while its quantity is positive; removals that reach
// zero delete the slot rather than storing a zero.
type InventorySlot struct {
	ItemName string `json:"item_name"`
	Quantity int    `json:"quantity"`
}

// Inventory is a player's full per-guild holdings.
type Inventory struct {
	UserID  string          `json:"user_id"`
	GuildID string          `json:"guild_id"`
	Slots   []InventorySlot `json:"slots"`
}

// Quantity returns the held amount for an item key, zero when absent.
func (inv *Inventory) Quantity(itemName string) int {
	for _, slot := range inv.Slots {
		if slot.ItemName == itemName {
			return slot.Quantity
		}
	}
	return 0
}
