package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/hollis-dev/SatchelBot_Go/internal/domain"
)

// ItemAdminCommand returns the item management command. It is gated to
// members with Manage Server permission.
func ItemAdminCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	defPerms := int64(discordgo.PermissionManageServer)

	defOptions := func(required bool) []*discordgo.ApplicationCommandOption {
		return []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionString, Name: "name", Description: "Item name", Required: true},
			{Type: discordgo.ApplicationCommandOptionString, Name: "description", Description: "Item description", Required: false},
			{Type: discordgo.ApplicationCommandOptionInteger, Name: "price", Description: "Shop price (0 = not purchasable)", Required: false},
			{Type: discordgo.ApplicationCommandOptionInteger, Name: "stock", Description: "Shop stock (-1 = unlimited)", Required: false},
			{Type: discordgo.ApplicationCommandOptionBoolean, Name: "usable", Description: "Can players use it", Required: false},
			{Type: discordgo.ApplicationCommandOptionBoolean, Name: "sellable", Description: "Can players sell it back", Required: false},
			{Type: discordgo.ApplicationCommandOptionString, Name: "actions", Description: "Effect actions, comma separated (e.g. money:add:50,role:add:123)", Required: false},
			{Type: discordgo.ApplicationCommandOptionString, Name: "requirements", Description: "Use requirements, comma separated (e.g. role:123,item:key:1)", Required: false},
		}
	}

	cmd := &discordgo.ApplicationCommand{
		Name:                     "item-admin",
		Description:              "Define and manage shop items",
		DefaultMemberPermissions: &defPerms,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "create",
				Description: "Create a new item definition",
				Options:     defOptions(true),
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "edit",
				Description: "Replace an item definition",
				Options:     defOptions(true),
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "delete",
				Description: "Remove an item definition",
				Options: []*discordgo.ApplicationCommandOption{
					{Type: discordgo.ApplicationCommandOptionString, Name: "name", Description: "Item name", Required: true},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "list",
				Description: "List all item definitions",
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		sub := getOptions(i)[0]
		opts := optionMap(sub.Options)

		switch sub.Name {
		case "create", "edit":
			handleEmbedResponse(s, i, func() (string, error) {
				item := itemFromOptions(i.GuildID, opts)
				saved, err := client.UpsertItem(item, sub.Name == "edit")
				if err != nil {
					return "", err
				}
				return formatItemDefinition(saved), nil
			}, ResponseConfig{Title: "🛠️ Item Saved", Color: 0x2ecc71, Footer: FooterSatchelBotAdmin})

		case "delete":
			handleEmbedResponse(s, i, func() (string, error) {
				name := opts["name"].StringValue()
				if err := client.DeleteItem(i.GuildID, name); err != nil {
					return "", err
				}
				return fmt.Sprintf("Deleted **%s**.", name), nil
			}, ResponseConfig{Title: "🛠️ Item Deleted", Color: 0xe74c3c, Footer: FooterSatchelBotAdmin})

		case "list":
			handleEmbedResponse(s, i, func() (string, error) {
				items, err := client.ListItems(i.GuildID)
				if err != nil {
					return "", err
				}
				if len(items) == 0 {
					return "No items defined yet. Try `/item-admin create`.", nil
				}
				out := ""
				for idx := range items {
					item := &items[idx]
					stock := fmt.Sprintf("%d", item.Stock)
					if item.Stock == domain.UnlimitedStock {
						stock = "∞"
					}
					out += fmt.Sprintf("**%s** — price %d, stock %s, usable %t, sellable %t\n",
						item.Name, item.Price, stock, item.Usable, item.Sellable)
				}
				return out, nil
			}, ResponseConfig{Title: "🛠️ Item Definitions", Color: 0x9b59b6, Footer: FooterSatchelBotAdmin})
		}
	}

	return cmd, handler
}

func itemFromOptions(guildID string, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) *domain.Item {
	item := &domain.Item{
		GuildID: guildID,
		Name:    opts["name"].StringValue(),
	}
	item.DisplayName = item.Name

	if opt, ok := opts["description"]; ok {
		item.Description = opt.StringValue()
	}
	if opt, ok := opts["price"]; ok {
		item.Price = int(opt.IntValue())
	}
	if opt, ok := opts["stock"]; ok {
		item.Stock = int(opt.IntValue())
	}
	if opt, ok := opts["usable"]; ok {
		item.Usable = opt.BoolValue()
	}
	if opt, ok := opts["sellable"]; ok {
		item.Sellable = opt.BoolValue()
	}
	if opt, ok := opts["actions"]; ok {
		item.Actions = splitList(opt.StringValue())
	}
	if opt, ok := opts["requirements"]; ok {
		item.Requirements = splitList(opt.StringValue())
	}
	return item
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func formatItemDefinition(item *domain.Item) string {
	stock := fmt.Sprintf("%d", item.Stock)
	if item.Stock == domain.UnlimitedStock {
		stock = "∞"
	}

	out := fmt.Sprintf("**%s**\n%s\n\nPrice: %d | Stock: %s | Usable: %t | Sellable: %t",
		item.Name, item.Description, item.Price, stock, item.Usable, item.Sellable)
	if len(item.Actions) > 0 {
		out += "\nActions: `" + strings.Join(item.Actions, "`, `") + "`"
	}
	if len(item.Requirements) > 0 {
		out += "\nRequirements: `" + strings.Join(item.Requirements, "`, `") + "`"
	}
	return out
}
