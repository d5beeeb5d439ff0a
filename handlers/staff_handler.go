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

// HandleWarnCommand records an infraction against a staff member.
func HandleWarnCommand(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	cfg, ok := guildConfig(s, i, b)
	if !ok {
		return
	}
	if !requireTier(s, i, cfg, model.TierHR, "issue warnings") {
		return
	}

	opts := optionMap(i.ApplicationCommandData().Options)
	target := opts["user"].UserValue(s)
	reason := opts["reason"].StringValue()
	proof := ""
	if opt, exists := opts["proof"]; exists {
		proof = opt.StringValue()
	}

	record := model.WarningRecord{
		UserID:   target.ID,
		GuildID:  i.GuildID,
		Reason:   reason,
		Proof:    proof,
		IssuedBy: i.Member.User.ID,
		IssuedAt: time.Now().Unix(),
	}
	if _, err := store.InsertWarning(b.DB, record); err != nil {
		replyEngineError(s, i, err)
		return
	}

	count, err := store.CountWarnings(b.DB, i.GuildID, target.ID)
	if err != nil {
		log.Printf("Failed to count warnings for user %s in guild %s: %v", target.ID, i.GuildID, err)
	}

	utils.SendDirectMessage(b.Session, target.ID,
		fmt.Sprintf("⚠️ You have received a warning in the server.\nReason: %s\nThis is warning #%d on your record.", reason, count))

	extra := map[string]string{"Warning Count": fmt.Sprintf("%d", count)}
	if proof != "" {
		extra["Proof"] = proof
	}
	utils.LogStaffAction(s, cfg.Channels.StaffLog, "Staff Warned", target.ID,
		fmt.Sprintf("<@%s>", i.Member.User.ID), utils.ColorWarning, reason, extra)

	utils.SendEphemeralResponse(s, i, fmt.Sprintf("⚠️ Warning issued to <@%s>. They now have %d warning(s).", target.ID, count))
}

// HandleInfractionsCommand shows a member's warnings and terminations.
func HandleInfractionsCommand(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	cfg, ok := guildConfig(s, i, b)
	if !ok {
		return
	}
	if !requireTier(s, i, cfg, model.TierHR, "view infractions") {
		return
	}

	opts := optionMap(i.ApplicationCommandData().Options)
	target := opts["user"].UserValue(s)

	warnings, err := store.GetWarningsByUser(b.DB, i.GuildID, target.ID, 10)
	if err != nil {
		replyEngineError(s, i, err)
		return
	}
	terminations, err := store.GetTerminationsByUser(b.DB, i.GuildID, target.ID)
	if err != nil {
		replyEngineError(s, i, err)
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:     fmt.Sprintf("📋 Infractions for %s", target.Username),
		Color:     utils.ColorWarning,
		Timestamp: time.Now().Format(time.RFC3339),
	}
	if len(warnings) == 0 && len(terminations) == 0 {
		embed.Description = "This member has a clean record."
	}
	for n, w := range warnings {
		value := fmt.Sprintf("%s\nIssued by <@%s> on <t:%d:d>", w.Reason, w.IssuedBy, w.IssuedAt)
		if w.Proof != "" {
			value += "\nProof: " + w.Proof
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("Warning #%d", n+1),
			Value: value,
		})
	}
	for _, t := range terminations {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Termination",
			Value: fmt.Sprintf("%s\nBy <@%s> on <t:%d:d>", t.Reason, t.TerminatedBy, t.TerminatedAt),
		})
	}
	utils.SendEphemeralEmbed(s, i, embed)
}

// HandleClearInfractionsCommand wipes a member's warning record.
func HandleClearInfractionsCommand(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	cfg, ok := guildConfig(s, i, b)
	if !ok {
		return
	}
	if !requireTier(s, i, cfg, model.TierAdmin, "clear infractions") {
		return
	}

	opts := optionMap(i.ApplicationCommandData().Options)
	target := opts["user"].UserValue(s)

	cleared, err := store.ClearWarnings(b.DB, i.GuildID, target.ID)
	if err != nil {
		replyEngineError(s, i, err)
		return
	}

	utils.LogStaffAction(s, cfg.Channels.StaffLog, "Infractions Cleared", target.ID,
		fmt.Sprintf("<@%s>", i.Member.User.ID), utils.ColorSuccess, "",
		map[string]string{"Warnings Cleared": fmt.Sprintf("%d", cleared)})

	utils.SendEphemeralResponse(s, i, fmt.Sprintf("✅ Cleared %d warning(s) for <@%s>.", cleared, target.ID))
}

// HandleTerminateCommand removes a member from the staff team.
func HandleTerminateCommand(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	cfg, ok := guildConfig(s, i, b)
	if !ok {
		return
	}
	if !requireTier(s, i, cfg, model.TierAdmin, "terminate staff members") {
		return
	}

	opts := optionMap(i.ApplicationCommandData().Options)
	target := opts["user"].UserValue(s)
	reason := opts["reason"].StringValue()

	removed, err := b.Engine.Terminate(i.GuildID, target.ID, reason, i.Member.User.ID, cfg)
	if err != nil {
		replyEngineError(s, i, err)
		return
	}
	utils.SendEphemeralResponse(s, i,
		fmt.Sprintf("🔨 Terminated <@%s>. %d staff role(s) removed.", target.ID, len(removed)))
}

// HandlePromoteCommand moves a member up to the chosen tier.
func HandlePromoteCommand(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	cfg, ok := guildConfig(s, i, b)
	if !ok {
		return
	}
	if !requireTier(s, i, cfg, model.TierAdmin, "promote staff members") {
		return
	}

	opts := optionMap(i.ApplicationCommandData().Options)
	target := opts["user"].UserValue(s)
	tier, parsed := model.ParseTier(opts["role"].StringValue())
	if !parsed || tier > model.TierAdmin {
		utils.SendEphemeralResponse(s, i, "Invalid role selection.")
		return
	}

	if err := b.Engine.Promote(i.GuildID, target.ID, tier, i.Member.User.ID, cfg); err != nil {
		replyEngineError(s, i, err)
		return
	}
	utils.SendEphemeralResponse(s, i, fmt.Sprintf("⬆️ Promoted <@%s> to %s.", target.ID, tier))
}

// HandleDemoteCommand moves a member back down to the staff tier.
func HandleDemoteCommand(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	cfg, ok := guildConfig(s, i, b)
	if !ok {
		return
	}
	if !requireTier(s, i, cfg, model.TierAdmin, "demote staff members") {
		return
	}

	opts := optionMap(i.ApplicationCommandData().Options)
	target := opts["user"].UserValue(s)

	if err := b.Engine.Demote(i.GuildID, target.ID, i.Member.User.ID, cfg); err != nil {
		replyEngineError(s, i, err)
		return
	}
	utils.SendEphemeralResponse(s, i, fmt.Sprintf("⬇️ Demoted <@%s> to the staff tier.", target.ID))
}
