package handlers

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"staff-bot/bot"
	"staff-bot/model"
	"staff-bot/store"
	"staff-bot/utils"
)

// HandleLoaCommand files a leave-of-absence request for the caller.
func HandleLoaCommand(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	cfg, ok := guildConfig(s, i, b)
	if !ok {
		return
	}
	if !cfg.Features.LoaEnabled {
		utils.SendEphemeralResponse(s, i, "LOA requests are currently disabled on this server.")
		return
	}
	if !requireTier(s, i, cfg, model.TierStaff, "request leave") {
		return
	}

	opts := optionMap(i.ApplicationCommandData().Options)
	duration := opts["duration"].StringValue()
	reason := opts["reason"].StringValue()

	if _, err := b.Engine.RequestLoa(i.GuildID, i.Member.User.ID, duration, reason); err != nil {
		replyEngineError(s, i, err)
		return
	}
	utils.SendEphemeralResponse(s, i,
		fmt.Sprintf("📅 Your LOA request for **%s** has been submitted for approval.", duration))
}

// HandleLoaManageCommand handles /loa-manage approve, deny and list.
func HandleLoaManageCommand(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	cfg, ok := guildConfig(s, i, b)
	if !ok {
		return
	}
	if !requireTier(s, i, cfg, model.TierHR, "manage LOA requests") {
		return
	}

	sub := i.ApplicationCommandData().Options[0]
	opts := optionMap(sub.Options)

	switch sub.Name {
	case "approve":
		target := opts["user"].UserValue(s)
		if err := b.Engine.ApproveLoa(i.GuildID, target.ID, i.Member.User.ID); err != nil {
			replyEngineError(s, i, err)
			return
		}
		utils.SendEphemeralResponse(s, i, fmt.Sprintf("✅ Approved <@%s>'s LOA request.", target.ID))

	case "deny":
		target := opts["user"].UserValue(s)
		reason := opts["reason"].StringValue()
		if err := b.Engine.DenyLoa(i.GuildID, target.ID, reason, i.Member.User.ID); err != nil {
			replyEngineError(s, i, err)
			return
		}
		utils.SendEphemeralResponse(s, i, fmt.Sprintf("❌ Denied <@%s>'s LOA request.", target.ID))

	case "list":
		records, err := store.ListApprovedLoasByGuild(b.DB, i.GuildID)
		if err != nil {
			replyEngineError(s, i, err)
			return
		}
		if len(records) == 0 {
			utils.SendEphemeralResponse(s, i, "No active LOAs.")
			return
		}

		embed := &discordgo.MessageEmbed{
			Title:     "📅 Active LOAs",
			Color:     utils.ColorLoa,
			Timestamp: time.Now().Format(time.RFC3339),
		}
		for _, r := range records {
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
				Name:  fmt.Sprintf("LOA #%d", r.ID),
				Value: fmt.Sprintf("<@%s>\nDuration: %s\nReason: %s\nApproved <t:%d:R>", r.UserID, r.Duration, r.Reason, r.ApprovedAt),
			})
		}
		utils.SendEphemeralEmbed(s, i, embed)
	}
}
