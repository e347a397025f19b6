// Package roles adapts the Discord REST API to the effect engine's role
// collaborator. Failures here are the engine's problem to absorb; the
// manager just reports them.
package roles

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// Session is the slice of discordgo used here, extracted so tests can fake it.
type Session interface {
	GuildMemberRoleAdd(guildID, userID, roleID string, options ...discordgo.RequestOption) error
	GuildMemberRoleRemove(guildID, userID, roleID string, options ...discordgo.RequestOption) error
}

// Manager grants and revokes guild roles over the Discord REST API.
type Manager struct {
	session Session
}

// NewManager creates a role manager over an open Discord session.
func NewManager(session Session) *Manager {
	return &Manager{session: session}
}

func (m *Manager) Grant(ctx context.Context, guildID, userID, roleID string) error {
	if err := m.session.GuildMemberRoleAdd(guildID, userID, roleID, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to grant role %s: %w", roleID, err)
	}
	return nil
}

func (m *Manager) Revoke(ctx context.Context, guildID, userID, roleID string) error {
	if err := m.session.GuildMemberRoleRemove(guildID, userID, roleID, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to revoke role %s: %w", roleID, err)
	}
	return nil
}
