package domain

// UnlimitedStock marks an item whose stock is never decremented on purchase.
const UnlimitedStock = -1

// Item represents a guild-scoped item definition. Name is the canonical
// case-folded key; DisplayName preserves the casing the admin entered.
// Actions and Requirements hold the persisted colon-delimited encodings and
// are decoded once when the catalog loads the definition, not on every use.
type Item struct {
	ID           int      `json:"item_id" db:"item_id"`
	GuildID      string   `json:"guild_id" db:"guild_id"`
	Name         string   `json:"name" db:"name"`
	DisplayName  string   `json:"display_name" db:"display_name"`
	Description  string   `json:"description" db:"description"`
	Price        int      `json:"price" db:"price"` // 0 = not purchasable
	Stock        int      `json:"stock" db:"stock"` // UnlimitedStock = never decremented
	Usable       bool     `json:"usable" db:"usable"`
	Sellable     bool     `json:"sellable" db:"sellable"`
	Actions      []string `json:"actions" db:"actions"`
	Requirements []string `json:"requirements" db:"requirements"`
}

// Purchasable reports whether the item can be bought from the shop at all.
func (i *Item) Purchasable() bool {
	return i.Price > 0
}

// InStock reports whether at least quantity units can currently be bought.
func (i *Item) InStock(quantity int) bool {
	return i.Stock == UnlimitedStock || i.Stock >= quantity
}
