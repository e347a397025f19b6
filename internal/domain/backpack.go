package domain

// OwnerType identifies what kind of principal owns a backpack.
type OwnerType string

const (
	OwnerUser   OwnerType = "user"
	OwnerRole   OwnerType = "role"
	OwnerSystem OwnerType = "system"
)

// AccessType controls who besides the owner may open a backpack.
type AccessType string

const (
	// AccessOwnerOnly is the implicit mode whenever both allow-lists are empty.
	AccessOwnerOnly AccessType = "owner_only"
	// AccessCustom is in force whenever at least one allow-list is non-empty.
	AccessCustom AccessType = "custom"
)

// Backpack is a named, capacity-bound shared item container. Capacity limits
// the number of distinct item keys (slots), not the total units held.
// (guildID, ownerID, name) is unique per owner, case-insensitive.
type Backpack struct {
	ID           string         `json:"backpack_id"`
	GuildID      string         `json:"guild_id"`
	OwnerID      string         `json:"owner_id"`
	OwnerType    OwnerType      `json:"owner_type"`
	Name         string         `json:"name"`
	Capacity     int            `json:"capacity"`
	Items        map[string]int `json:"items"`
	AccessType   AccessType     `json:"access_type"`
	// AllowedUsers holds Discord user IDs, AllowedRoles Discord role IDs.
	// Grants arrive from interactions as snowflakes and are stored verbatim.
	AllowedUsers []string `json:"allowed_users,omitempty"`
	AllowedRoles []string `json:"allowed_roles,omitempty"`
}

// UsedSlots is the number of distinct item keys currently held.
func (b *Backpack) UsedSlots() int {
	return len(b.Items)
}

// Empty reports whether the backpack holds no items at all.
func (b *Backpack) Empty() bool {
	return len(b.Items) == 0
}

// AccessibleBy reports whether the player may open this backpack, as its
// owner, through a direct user grant, or through one of their roles. Owners
// are matched by internal ID, the allow-lists by Discord snowflake.
func (b *Backpack) AccessibleBy(p PlayerContext) bool {
	if b.OwnerID == p.UserID && b.OwnerType == OwnerUser {
		return true
	}
	if b.AccessType != AccessCustom {
		return false
	}
	for _, id := range b.AllowedUsers {
		if id == p.DiscordID && id != "" {
			return true
		}
	}
	for _, allowed := range b.AllowedRoles {
		for _, held := range p.RoleIDs {
			if allowed == held {
				return true
			}
		}
	}
	return false
}
