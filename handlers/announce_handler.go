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

// HandleAnnounceCommand posts an announcement embed, optionally pinging a
// role, to the chosen channel or the configured announcements channel.
func HandleAnnounceCommand(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	cfg, ok := guildConfig(s, i, b)
	if !ok {
		return
	}
	if !requireTier(s, i, cfg, model.TierHR, "send announcements") {
		return
	}

	opts := optionMap(i.ApplicationCommandData().Options)
	message := opts["message"].StringValue()

	channelID := cfg.Channels.Announcements
	if opt, exists := opts["channel"]; exists {
		channelID = opt.ChannelValue(nil).ID
	}
	if channelID == "" {
		utils.SendEphemeralResponse(s, i, "No announcements channel configured. Use `/config set channels.announcements <channelID>` or pass a channel.")
		return
	}

	content := ""
	if opt, exists := opts["ping"]; exists {
		content = fmt.Sprintf("<@&%s>", opt.RoleValue(nil, i.GuildID).ID)
	}

	embed := &discordgo.MessageEmbed{
		Title:       "📢 Announcement",
		Description: message,
		Color:       utils.ColorPurple,
		Footer:      &discordgo.MessageEmbedFooter{Text: "Announced by " + i.Member.User.Username},
		Timestamp:   time.Now().Format(time.RFC3339),
	}
	_, err := s.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content: content,
		Embeds:  []*discordgo.MessageEmbed{embed},
	})
	if err != nil {
		log.Printf("Failed to send announcement in guild %s: %v", i.GuildID, err)
		utils.SendEphemeralResponse(s, i, "Failed to send the announcement. Check the bot's channel permissions.")
		return
	}
	utils.SendEphemeralResponse(s, i, fmt.Sprintf("📢 Announcement sent to <#%s>.", channelID))
}

// HandleFeedbackCommand stores a feedback submission and relays it to the
// feedback channel, withholding the author when submitted anonymously.
func HandleFeedbackCommand(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	cfg, ok := guildConfig(s, i, b)
	if !ok {
		return
	}

	opts := optionMap(i.ApplicationCommandData().Options)
	message := opts["message"].StringValue()
	anonymous := false
	if opt, exists := opts["anonymous"]; exists {
		anonymous = opt.BoolValue()
	}

	record := model.FeedbackRecord{
		GuildID:     i.GuildID,
		Message:     message,
		Anonymous:   anonymous,
		SubmittedAt: time.Now().Unix(),
	}
	if !anonymous {
		record.SubmittedBy = i.Member.User.ID
	}
	if _, err := store.InsertFeedback(b.DB, record); err != nil {
		replyEngineError(s, i, err)
		return
	}

	if cfg.Channels.Feedback != "" {
		author := "Anonymous"
		if !anonymous {
			author = fmt.Sprintf("<@%s>", i.Member.User.ID)
		}
		embed := &discordgo.MessageEmbed{
			Title:       "💬 New Feedback",
			Description: message,
			Color:       utils.ColorInfo,
			Fields: []*discordgo.MessageEmbedField{
				{Name: "Submitted By", Value: author, Inline: true},
			},
			Timestamp: time.Now().Format(time.RFC3339),
		}
		if _, err := s.ChannelMessageSendEmbed(cfg.Channels.Feedback, embed); err != nil {
			log.Printf("Failed to relay feedback in guild %s: %v", i.GuildID, err)
		}
	}

	utils.SendEphemeralResponse(s, i, "💬 Thank you, your feedback has been submitted.")
}
