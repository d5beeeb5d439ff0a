package handlers

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"staff-bot/bot"
	"staff-bot/store"
	"staff-bot/utils"
)

// HandlePrefixCommand serves the lightweight text commands that predate
// the slash-command surface: ping, help and oncall.
func HandlePrefixCommand(s *discordgo.Session, m *discordgo.MessageCreate, b *bot.Bot) {
	if m.Author == nil || m.Author.Bot || m.GuildID == "" {
		return
	}

	cfg, err := store.GetGuildConfig(b.DB, m.GuildID)
	if err != nil {
		log.Printf("Failed to load config for guild %s: %v", m.GuildID, err)
		return
	}
	if !strings.HasPrefix(m.Content, cfg.Prefix) {
		return
	}

	fields := strings.Fields(strings.TrimPrefix(m.Content, cfg.Prefix))
	if len(fields) == 0 {
		return
	}

	switch strings.ToLower(fields[0]) {
	case "ping":
		reply := fmt.Sprintf("🏓 Pong! Latency: %s", s.HeartbeatLatency().Round(time.Millisecond))
		if _, err := s.ChannelMessageSend(m.ChannelID, reply); err != nil {
			log.Printf("Failed to send ping reply in guild %s: %v", m.GuildID, err)
		}

	case "help":
		embed := &discordgo.MessageEmbed{
			Title: "📖 Staff Bot Commands",
			Description: "Most functionality lives in slash commands:\n\n" +
				"`/apply` — apply for a staff position\n" +
				"`/loa` — request a leave of absence\n" +
				"`/logactivity` — log your daily activity\n" +
				"`/tag` — post a saved snippet\n" +
				"`/oncall` — manage on-call status\n" +
				"`/feedback` — send feedback to HR\n\n" +
				fmt.Sprintf("Text commands: `%sping`, `%shelp`, `%soncall`", cfg.Prefix, cfg.Prefix, cfg.Prefix),
			Color: utils.ColorInfo,
		}
		if _, err := s.ChannelMessageSendEmbed(m.ChannelID, embed); err != nil {
			log.Printf("Failed to send help reply in guild %s: %v", m.GuildID, err)
		}

	case "oncall":
		records, err := store.ListOnCall(b.DB, m.GuildID)
		if err != nil {
			log.Printf("Failed to list on-call staff in guild %s: %v", m.GuildID, err)
			return
		}
		if _, err := s.ChannelMessageSend(m.ChannelID, formatOnCall(records)); err != nil {
			log.Printf("Failed to send oncall reply in guild %s: %v", m.GuildID, err)
		}
	}
}
