package discord

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/hollis-dev/SatchelBot_Go/internal/handler"
)

// CommandHandler handles a slash command
type CommandHandler func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient)

// CommandRegistry holds the registered commands
type CommandRegistry struct {
	Commands map[string]*discordgo.ApplicationCommand
	Handlers map[string]CommandHandler
}

// NewCommandRegistry creates a new registry
func NewCommandRegistry() *CommandRegistry {
	return &CommandRegistry{
		Commands: make(map[string]*discordgo.ApplicationCommand),
		Handlers: make(map[string]CommandHandler),
	}
}

// Register adds a command to the registry
func (r *CommandRegistry) Register(cmd *discordgo.ApplicationCommand, handler CommandHandler) {
	r.Commands[cmd.Name] = cmd
	r.Handlers[cmd.Name] = handler
}

// Handle processes an interaction
func (r *CommandRegistry) Handle(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	if h, ok := r.Handlers[i.ApplicationCommandData().Name]; ok {
		h(s, i, client)
	}
}

// RegisterCommands pushes the registry to Discord, skipping the bulk
// overwrite when nothing changed to stay clear of rate limits.
func (b *Bot) RegisterCommands(registry *CommandRegistry, forceUpdate bool) error {
	slog.Info("Checking Discord commands...")

	existingCmds, err := b.Session.ApplicationCommands(b.AppID, "")
	if err != nil {
		return fmt.Errorf("failed to fetch existing commands: %w", err)
	}

	desiredCmds := make([]*discordgo.ApplicationCommand, 0, len(registry.Commands))
	for _, cmd := range registry.Commands {
		desiredCmds = append(desiredCmds, cmd)
	}

	if !forceUpdate && commandsEqual(existingCmds, desiredCmds) {
		slog.Info("Commands unchanged, skipping registration", "count", len(existingCmds))
		return nil
	}

	if _, err := b.Session.ApplicationCommandBulkOverwrite(b.AppID, "", desiredCmds); err != nil {
		return fmt.Errorf("failed to update commands: %w", err)
	}

	slog.Info("Commands updated successfully", "count", len(desiredCmds))
	return nil
}

// commandsEqual compares the registered surface by name, description and
// option shape. Deep option metadata changes force an update via the
// force flag instead.
func commandsEqual(existing, desired []*discordgo.ApplicationCommand) bool {
	if len(existing) != len(desired) {
		return false
	}

	existingMap := make(map[string]*discordgo.ApplicationCommand, len(existing))
	for _, cmd := range existing {
		existingMap[cmd.Name] = cmd
	}

	for _, want := range desired {
		have, ok := existingMap[want.Name]
		if !ok {
			return false
		}
		if have.Description != want.Description || len(have.Options) != len(want.Options) {
			return false
		}
		for idx := range want.Options {
			if have.Options[idx].Name != want.Options[idx].Name ||
				have.Options[idx].Type != want.Options[idx].Type {
				return false
			}
		}
	}

	return true
}

// deferResponse acknowledges an interaction with a deferred message.
// Required before anything that might take longer than 3 seconds.
func deferResponse(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}); err != nil {
		slog.Error("Failed to send deferred response", "error", err)
		return false
	}
	return true
}

// getInteractionUser extracts the user from an interaction, handling both
// guild (i.Member.User) and DM (i.User) contexts.
func getInteractionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

// getMemberRoles extracts the invoker's guild role IDs. Empty in DMs.
func getMemberRoles(i *discordgo.InteractionCreate) []string {
	if i.Member == nil {
		return nil
	}
	return i.Member.Roles
}

// getActor builds the API payload identifying the invoking player.
func getActor(i *discordgo.InteractionCreate) actorPayload {
	u := getInteractionUser(i)
	return actorPayload{
		DiscordID: u.ID,
		Username:  u.Username,
		GuildID:   i.GuildID,
		RoleIDs:   getMemberRoles(i),
	}
}

// getOptions extracts command options from an interaction
func getOptions(i *discordgo.InteractionCreate) []*discordgo.ApplicationCommandInteractionDataOption {
	return i.ApplicationCommandData().Options
}

// respondError sends a generic error message after a deferred response.
func respondError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Content: &message,
	}); err != nil {
		slog.Error("Failed to edit interaction response", "error", err)
	}
}

// respondFriendlyError maps API errors onto readable player messages.
func respondFriendlyError(s *discordgo.Session, i *discordgo.InteractionCreate, err error) {
	respondError(s, i, formatFriendlyError(err))
}

// formatFriendlyError turns a client error into a player-facing message.
func formatFriendlyError(err error) string {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return MsgGenericError
	}

	if apiErr.Kind != "" {
		return fmt.Sprintf("🚫 **Requirement Not Met**\nYou're missing a **%s** requirement.", apiErr.Kind)
	}

	switch apiErr.Message {
	case handler.ErrMsgNotEnoughMoneyError:
		return MsgInsufficientFunds
	case handler.ErrMsgItemNotFoundError:
		return MsgItemNotFound
	case handler.ErrMsgInsufficientItemsErr:
		return MsgNotEnoughItems
	case handler.ErrMsgNotUsableError:
		return MsgNotUsable
	case handler.ErrMsgOutOfStockError:
		return MsgOutOfStock
	case handler.ErrMsgBackpackNotFoundError:
		return MsgBackpackNotFound
	case handler.ErrMsgCapacityExceededError:
		return MsgBackpackFull
	case handler.ErrMsgBackpackNotEmptyError:
		return MsgBackpackNotEmpty
	case handler.ErrMsgDuplicateNameError:
		return MsgDuplicateName
	case handler.ErrMsgNotOwnerError:
		return MsgNotOwner
	case handler.ErrMsgUserNotFoundError:
		return MsgUserNotFound
	default:
		return "❌ " + apiErr.Message
	}
}

// Footer constants for standardized embed footers.
const (
	FooterSatchelBot      = "SatchelBot"
	FooterSatchelBotAdmin = "SatchelBot Admin"
)

// createEmbed creates a standard embed with the default footer when none
// is given.
func createEmbed(title, description string, color int, footerText string) *discordgo.MessageEmbed {
	if footerText == "" {
		footerText = FooterSatchelBot
	}
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       color,
		Footer: &discordgo.MessageEmbedFooter{
			Text: footerText,
		},
	}
}

// sendEmbed sends an embed via InteractionResponseEdit, logging failures.
func sendEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{embed},
	}); err != nil {
		slog.Error("Failed to send response", "error", err)
	}
}

// ResponseConfig defines the visual properties of a command response embed
type ResponseConfig struct {
	Title  string
	Color  int
	Footer string
}

// handleEmbedResponse defers, runs the action, and renders either the
// result or a friendly error.
func handleEmbedResponse(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	action func() (string, error),
	config ResponseConfig,
) {
	if !deferResponse(s, i) {
		return
	}

	msg, err := action()
	if err != nil {
		slog.Error("Command action failed", "title", config.Title, "error", err)
		respondFriendlyError(s, i, err)
		return
	}

	sendEmbed(s, i, createEmbed(config.Title, msg, config.Color, config.Footer))
}
