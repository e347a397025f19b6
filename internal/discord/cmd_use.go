package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/hollis-dev/SatchelBot_Go/internal/domain"
)

// UseCommand returns the use command definition and handler
func UseCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "use",
		Description: "Use one of your items",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "item",
				Description: "Item name to use",
				Required:    true,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (string, error) {
			itemName := getOptions(i)[0].StringValue()

			summary, err := client.UseItem(getActor(i), itemName)
			if err != nil {
				return "", err
			}
			return formatEffectSummary(summary), nil
		}, ResponseConfig{
			Title: "✨ Item Used",
			Color: 0x9b59b6, // Purple
		})
	}

	return cmd, handler
}

// formatEffectSummary renders the outcome of an item use. The custom
// message, when present, leads; mechanical changes follow as bullet lines.
func formatEffectSummary(summary *domain.EffectSummary) string {
	if summary == nil {
		return "Done."
	}

	var lines []string

	if summary.CustomMessage != "" {
		lines = append(lines, summary.CustomMessage, "")
	}

	if summary.MoneyChanges.Added > 0 {
		lines = append(lines, fmt.Sprintf("👛 +%d money", summary.MoneyChanges.Added))
	}
	if summary.MoneyChanges.Removed > 0 {
		lines = append(lines, fmt.Sprintf("👛 -%d money", summary.MoneyChanges.Removed))
	}
	if summary.BankChanges.Added > 0 {
		lines = append(lines, fmt.Sprintf("🏦 +%d bank", summary.BankChanges.Added))
	}
	if summary.BankChanges.Removed > 0 {
		lines = append(lines, fmt.Sprintf("🏦 -%d bank", summary.BankChanges.Removed))
	}
	for _, given := range summary.ItemsGiven {
		lines = append(lines, fmt.Sprintf("🎁 +%d %s", given.Amount, given.ItemName))
	}
	for _, taken := range summary.ItemsTaken {
		lines = append(lines, fmt.Sprintf("💨 -%d %s", taken.Amount, taken.ItemName))
	}
	for _, role := range summary.RolesGiven {
		lines = append(lines, fmt.Sprintf("🏷️ Gained role <@&%s>", role))
	}
	for _, role := range summary.RolesRemoved {
		lines = append(lines, fmt.Sprintf("🏷️ Lost role <@&%s>", role))
	}

	if len(lines) == 0 {
		return "Nothing visible happened..."
	}
	return strings.Join(lines, "\n")
}
