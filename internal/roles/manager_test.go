package roles

import (
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSession struct {
	added   [][3]string
	removed [][3]string
	err     error
}

func (f *fakeSession) GuildMemberRoleAdd(guildID, userID, roleID string, options ...discordgo.RequestOption) error {
	if f.err != nil {
		return f.err
	}
	f.added = append(f.added, [3]string{guildID, userID, roleID})
	return nil
}

func (f *fakeSession) GuildMemberRoleRemove(guildID, userID, roleID string, options ...discordgo.RequestOption) error {
	if f.err != nil {
		return f.err
	}
	f.removed = append(f.removed, [3]string{guildID, userID, roleID})
	return nil
}

func TestGrantAndRevoke(t *testing.T) {
	session := &fakeSession{}
	m := NewManager(session)

	require.NoError(t, m.Grant(context.Background(), "guild-1", "user-1", "role-vip"))
	require.NoError(t, m.Revoke(context.Background(), "guild-1", "user-1", "role-vip"))

	assert.Equal(t, [][3]string{{"guild-1", "user-1", "role-vip"}}, session.added)
	assert.Equal(t, [][3]string{{"guild-1", "user-1", "role-vip"}}, session.removed)
}

func TestGrant_WrapsAPIError(t *testing.T) {
	apiErr := errors.New("missing permissions")
	m := NewManager(&fakeSession{err: apiErr})

	err := m.Grant(context.Background(), "guild-1", "user-1", "role-vip")
	require.Error(t, err)
	assert.ErrorIs(t, err, apiErr)
	assert.Contains(t, err.Error(), "role-vip")
}
