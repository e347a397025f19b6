package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// InventoryCommand returns the inventory command definition and handler
func InventoryCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "inventory",
		Description: "Show what you're carrying",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (string, error) {
			actor := getActor(i)
			if _, err := client.RegisterUser(actor.DiscordID, actor.Username); err != nil {
				return "", fmt.Errorf("failed to register user: %w", err)
			}

			inv, err := client.GetInventory(actor.DiscordID, actor.GuildID)
			if err != nil {
				return "", err
			}

			if inv == nil || len(inv.Slots) == 0 {
				return "Your pockets are empty.", nil
			}

			out := ""
			for _, slot := range inv.Slots {
				out += fmt.Sprintf("**%s** x%d\n", slot.ItemName, slot.Quantity)
			}
			return out, nil
		}, ResponseConfig{
			Title: "🎒 Inventory",
			Color: 0x9b59b6, // Purple
		})
	}

	return cmd, handler
}
