package handlers

import (
	"fmt"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"

	"staff-bot/bot"
	"staff-bot/model"
	"staff-bot/store"
	"staff-bot/utils"
)

// HandleConfigCommand handles /config set and /config view.
func HandleConfigCommand(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	cfg, ok := guildConfig(s, i, b)
	if !ok {
		return
	}
	if !requireTier(s, i, cfg, model.TierAdmin, "manage the configuration") {
		return
	}

	sub := i.ApplicationCommandData().Options[0]
	switch sub.Name {
	case "set":
		opts := optionMap(sub.Options)
		key := opts["key"].StringValue()
		value := opts["value"].StringValue()

		if err := store.ApplyConfigKey(b.DB, i.GuildID, key, value); err != nil {
			utils.SendEphemeralResponse(s, i, fmt.Sprintf("Invalid configuration update: %v", err))
			return
		}
		log.Printf("Config updated in guild %s: %s = %s", i.GuildID, key, value)
		utils.SendEphemeralResponse(s, i, fmt.Sprintf("✅ Configuration updated: `%s` → `%s`", key, value))

	case "view":
		embed := &discordgo.MessageEmbed{
			Title: "⚙️ Server Configuration",
			Color: utils.ColorInfo,
			Fields: []*discordgo.MessageEmbedField{
				{Name: "Prefix", Value: fmt.Sprintf("`%s`", cfg.Prefix), Inline: true},
				{Name: "Staff Role", Value: formatRole(cfg.Roles.Staff), Inline: true},
				{Name: "HR Role", Value: formatRole(cfg.Roles.HR), Inline: true},
				{Name: "Admin Role", Value: formatRole(cfg.Roles.Admin), Inline: true},
				{Name: "Owner Role", Value: formatRole(cfg.Roles.Owner), Inline: true},
				{Name: "Applications Channel", Value: formatChannel(cfg.Channels.Applications), Inline: true},
				{Name: "Staff Log Channel", Value: formatChannel(cfg.Channels.StaffLog), Inline: true},
				{Name: "Announcements Channel", Value: formatChannel(cfg.Channels.Announcements), Inline: true},
				{Name: "Feedback Channel", Value: formatChannel(cfg.Channels.Feedback), Inline: true},
				{Name: "Applications Enabled", Value: formatFlag(cfg.Features.ApplicationsEnabled), Inline: true},
				{Name: "LOA Enabled", Value: formatFlag(cfg.Features.LoaEnabled), Inline: true},
				{Name: "Reminders Enabled", Value: formatFlag(cfg.Features.RemindersEnabled), Inline: true},
			},
			Timestamp: time.Now().Format(time.RFC3339),
		}
		utils.SendEphemeralEmbed(s, i, embed)
	}
}

func formatRole(roleID string) string {
	if roleID == "" {
		return "Not set"
	}
	return fmt.Sprintf("<@&%s>", roleID)
}

func formatChannel(channelID string) string {
	if channelID == "" {
		return "Not set"
	}
	return fmt.Sprintf("<#%s>", channelID)
}

func formatFlag(enabled bool) string {
	if enabled {
		return "✅"
	}
	return "❌"
}
