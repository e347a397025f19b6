package discord

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/hollis-dev/SatchelBot_Go/internal/domain"
)

// BackpackCommand returns the backpack command with its subcommands
func BackpackCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "backpack",
		Description: "Manage shared item containers",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "create",
				Description: "Create a new backpack",
				Options: []*discordgo.ApplicationCommandOption{
					{Type: discordgo.ApplicationCommandOptionString, Name: "name", Description: "Backpack name", Required: true},
					{Type: discordgo.ApplicationCommandOptionInteger, Name: "capacity", Description: "Distinct item slots (default: 10)", Required: false},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "rename",
				Description: "Rename a backpack you own",
				Options: []*discordgo.ApplicationCommandOption{
					{Type: discordgo.ApplicationCommandOptionString, Name: "name", Description: "Current name", Required: true},
					{Type: discordgo.ApplicationCommandOptionString, Name: "new_name", Description: "New name", Required: true},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "delete",
				Description: "Delete an empty backpack you own",
				Options: []*discordgo.ApplicationCommandOption{
					{Type: discordgo.ApplicationCommandOptionString, Name: "name", Description: "Backpack name", Required: true},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "grant",
				Description: "Share a backpack with a user or role",
				Options: []*discordgo.ApplicationCommandOption{
					{Type: discordgo.ApplicationCommandOptionString, Name: "name", Description: "Backpack name", Required: true},
					{Type: discordgo.ApplicationCommandOptionUser, Name: "user", Description: "User to grant access", Required: false},
					{Type: discordgo.ApplicationCommandOptionRole, Name: "role", Description: "Role to grant access", Required: false},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "revoke",
				Description: "Stop sharing a backpack with a user or role",
				Options: []*discordgo.ApplicationCommandOption{
					{Type: discordgo.ApplicationCommandOptionString, Name: "name", Description: "Backpack name", Required: true},
					{Type: discordgo.ApplicationCommandOptionUser, Name: "user", Description: "User to revoke", Required: false},
					{Type: discordgo.ApplicationCommandOptionRole, Name: "role", Description: "Role to revoke", Required: false},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "deposit",
				Description: "Put items from your inventory into a backpack",
				Options: []*discordgo.ApplicationCommandOption{
					{Type: discordgo.ApplicationCommandOptionString, Name: "name", Description: "Backpack name", Required: true},
					{Type: discordgo.ApplicationCommandOptionString, Name: "item", Description: "Item name", Required: true},
					{Type: discordgo.ApplicationCommandOptionInteger, Name: "amount", Description: "Amount (default: 1)", Required: false},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "withdraw",
				Description: "Take items from a backpack into your inventory",
				Options: []*discordgo.ApplicationCommandOption{
					{Type: discordgo.ApplicationCommandOptionString, Name: "name", Description: "Backpack name", Required: true},
					{Type: discordgo.ApplicationCommandOptionString, Name: "item", Description: "Item name", Required: true},
					{Type: discordgo.ApplicationCommandOptionInteger, Name: "amount", Description: "Amount (default: 1)", Required: false},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "show",
				Description: "Show a backpack's contents",
				Options: []*discordgo.ApplicationCommandOption{
					{Type: discordgo.ApplicationCommandOptionString, Name: "name", Description: "Backpack name", Required: true},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "list",
				Description: "List the backpacks you can open",
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		sub := getOptions(i)[0]
		opts := optionMap(sub.Options)
		actor := getActor(i)

		switch sub.Name {
		case "create":
			handleEmbedResponse(s, i, func() (string, error) {
				capacity := 0
				if opt, ok := opts["capacity"]; ok {
					capacity = int(opt.IntValue())
				}
				bp, err := client.CreateBackpack(actor, opts["name"].StringValue(), capacity)
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Created **%s** with **%d** slots.", bp.Name, bp.Capacity), nil
			}, ResponseConfig{Title: "🎒 Backpack Created", Color: 0x2ecc71})

		case "rename":
			handleEmbedResponse(s, i, func() (string, error) {
				name := opts["name"].StringValue()
				newName := opts["new_name"].StringValue()
				if err := client.RenameBackpack(actor, name, newName); err != nil {
					return "", err
				}
				return fmt.Sprintf("**%s** is now **%s**.", name, newName), nil
			}, ResponseConfig{Title: "🎒 Backpack Renamed", Color: 0x3498db})

		case "delete":
			handleEmbedResponse(s, i, func() (string, error) {
				name := opts["name"].StringValue()
				if err := client.DeleteBackpack(actor, name); err != nil {
					return "", err
				}
				return fmt.Sprintf("Deleted **%s**.", name), nil
			}, ResponseConfig{Title: "🎒 Backpack Deleted", Color: 0xe74c3c})

		case "grant", "revoke":
			handleEmbedResponse(s, i, func() (string, error) {
				name := opts["name"].StringValue()
				var userIDs, roleIDs []string
				if opt, ok := opts["user"]; ok {
					userIDs = append(userIDs, opt.UserValue(nil).ID)
				}
				if opt, ok := opts["role"]; ok {
					roleIDs = append(roleIDs, opt.RoleValue(nil, i.GuildID).ID)
				}
				if len(userIDs) == 0 && len(roleIDs) == 0 {
					return "", fmt.Errorf("pick a user or a role")
				}

				var err error
				var verb string
				if sub.Name == "grant" {
					err = client.GrantBackpackAccess(actor, name, userIDs, roleIDs)
					verb = "now shared"
				} else {
					err = client.RevokeBackpackAccess(actor, name, userIDs, roleIDs)
					verb = "no longer shared"
				}
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("**%s** is %s with them.", name, verb), nil
			}, ResponseConfig{Title: "🎒 Access Updated", Color: 0x3498db})

		case "deposit", "withdraw":
			handleEmbedResponse(s, i, func() (string, error) {
				name := opts["name"].StringValue()
				itemName := opts["item"].StringValue()
				amount := 1
				if opt, ok := opts["amount"]; ok {
					amount = int(opt.IntValue())
				}

				var bp *domain.Backpack
				var err error
				var verb string
				if sub.Name == "deposit" {
					bp, err = client.DepositToBackpack(actor, name, itemName, amount)
					verb = "into"
				} else {
					bp, err = client.WithdrawFromBackpack(actor, name, itemName, amount)
					verb = "out of"
				}
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Moved **%d x %s** %s **%s**.\n\n%s",
					amount, itemName, verb, bp.Name, formatBackpackContents(bp)), nil
			}, ResponseConfig{Title: "🎒 Transfer Complete", Color: 0x2ecc71})

		case "show":
			handleEmbedResponse(s, i, func() (string, error) {
				bp, err := client.ShowBackpack(actor.DiscordID, actor.GuildID, opts["name"].StringValue(), actor.RoleIDs)
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("**%s** (%d/%d slots)\n\n%s",
					bp.Name, bp.UsedSlots(), bp.Capacity, formatBackpackContents(bp)), nil
			}, ResponseConfig{Title: "🎒 Backpack", Color: 0x9b59b6})

		case "list":
			handleEmbedResponse(s, i, func() (string, error) {
				backpacks, err := client.ListBackpacks(actor.DiscordID, actor.GuildID, actor.RoleIDs)
				if err != nil {
					return "", err
				}
				if len(backpacks) == 0 {
					return "You can't open any backpacks yet. Try `/backpack create`.", nil
				}
				out := ""
				for _, bp := range backpacks {
					out += fmt.Sprintf("**%s** — %d/%d slots\n", bp.Name, bp.UsedSlots(), bp.Capacity)
				}
				return out, nil
			}, ResponseConfig{Title: "🎒 Your Backpacks", Color: 0x9b59b6})
		}
	}

	return cmd, handler
}

// formatBackpackContents renders the item map in a stable order.
func formatBackpackContents(bp *domain.Backpack) string {
	if bp == nil || len(bp.Items) == 0 {
		return "*empty*"
	}

	names := make([]string, 0, len(bp.Items))
	for name := range bp.Items {
		names = append(names, name)
	}
	sort.Strings(names)

	var lines []string
	for _, name := range names {
		lines = append(lines, fmt.Sprintf("• %s x%d", name, bp.Items[name]))
	}
	return strings.Join(lines, "\n")
}

// optionMap indexes subcommand options by name.
func optionMap(opts []*discordgo.ApplicationCommandInteractionDataOption) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(opts))
	for _, opt := range opts {
		m[opt.Name] = opt
	}
	return m
}
