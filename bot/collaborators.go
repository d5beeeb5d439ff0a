package bot

import (
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"
	"github.com/jmoiron/sqlx"

	"staff-bot/store"
	"staff-bot/utils"
)

// sessionRoleManager mutates live guild membership through the session.
type sessionRoleManager struct {
	session *discordgo.Session
}

func (m *sessionRoleManager) MemberRoles(guildID, userID string) ([]string, error) {
	member, err := m.session.GuildMember(guildID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch member %s in guild %s: %w", userID, guildID, err)
	}
	return member.Roles, nil
}

func (m *sessionRoleManager) AddRole(guildID, userID, roleID string) error {
	return m.session.GuildMemberRoleAdd(guildID, userID, roleID)
}

func (m *sessionRoleManager) RemoveRole(guildID, userID, roleID string) error {
	return m.session.GuildMemberRoleRemove(guildID, userID, roleID)
}

// sessionNotifier delivers best-effort DMs through the session.
type sessionNotifier struct {
	session *discordgo.Session
}

func (n *sessionNotifier) DirectMessage(userID, message string) bool {
	return utils.SendDirectMessage(n.session, userID, message)
}

// staffAuditor resolves the guild's staff-log channel from its stored
// config and appends an action embed there.
type staffAuditor struct {
	session *discordgo.Session
	db      *sqlx.DB
}

func (a *staffAuditor) Action(guildID, action, userID, actorID string, color int, reason string, extra map[string]string) {
	cfg, err := store.GetGuildConfig(a.db, guildID)
	if err != nil {
		log.Printf("Failed to load config for audit entry in guild %s: %v", guildID, err)
		return
	}
	actionBy := ""
	if actorID != "" {
		actionBy = fmt.Sprintf("<@%s>", actorID)
	}
	utils.LogStaffAction(a.session, cfg.Channels.StaffLog, action, userID, actionBy, color, reason, extra)
}
