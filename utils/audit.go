package utils

import (
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/bwmarrin/discordgo"
)

// Embed colors used across staff-log entries.
const (
	ColorInfo    = 0x3498db
	ColorSuccess = 0x00ff00
	ColorWarning = 0xff9900
	ColorDanger  = 0xff0000
	ColorLoa     = 0xffaa00
	ColorPurple  = 0x9b59b6
)

// LogStaffAction appends a structured action embed to the guild's staff
// log channel. A guild without a configured log channel is skipped
// silently; a send failure is logged and swallowed.
func LogStaffAction(s *discordgo.Session, logChannelID, action, userID, actionBy string, color int, reason string, extra map[string]string) {
	if logChannelID == "" {
		return
	}
	if actionBy == "" {
		actionBy = "System"
	}

	embed := &discordgo.MessageEmbed{
		Title: "Staff Action: " + action,
		Color: color,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "User", Value: fmt.Sprintf("<@%s> (%s)", userID, userID), Inline: true},
			{Name: "Action By", Value: actionBy, Inline: true},
			{Name: "Timestamp", Value: fmt.Sprintf("<t:%d:F>", time.Now().Unix()), Inline: true},
		},
	}
	if reason != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "Reason", Value: reason})
	}

	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: k, Value: extra[k], Inline: true})
	}

	if _, err := s.ChannelMessageSendEmbed(logChannelID, embed); err != nil {
		log.Printf("Failed to send staff log entry to channel %s: %v", logChannelID, err)
	}
}
