package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"staff-bot/bot"
	"staff-bot/model"
	"staff-bot/store"
	"staff-bot/utils"
)

// HandleOnCallCommand handles /oncall set, unset and list.
func HandleOnCallCommand(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	cfg, ok := guildConfig(s, i, b)
	if !ok {
		return
	}
	if !requireTier(s, i, cfg, model.TierStaff, "manage on-call status") {
		return
	}

	sub := i.ApplicationCommandData().Options[0]
	switch sub.Name {
	case "set":
		if err := store.SetOnCall(b.DB, i.GuildID, i.Member.User.ID, time.Now().Unix()); err != nil {
			replyEngineError(s, i, err)
			return
		}
		utils.SendEphemeralResponse(s, i, "📞 You are now on-call.")

	case "unset":
		if err := store.UnsetOnCall(b.DB, i.GuildID, i.Member.User.ID, time.Now().Unix()); err != nil {
			replyEngineError(s, i, err)
			return
		}
		utils.SendEphemeralResponse(s, i, "📴 You are no longer on-call.")

	case "list":
		records, err := store.ListOnCall(b.DB, i.GuildID)
		if err != nil {
			replyEngineError(s, i, err)
			return
		}
		utils.SendEphemeralResponse(s, i, formatOnCall(records))
	}
}

// formatOnCall renders the on-call roster used by both the slash command
// and the -oncall prefix command.
func formatOnCall(records []model.OnCallRecord) string {
	if len(records) == 0 {
		return "Nobody is on-call right now."
	}
	mentions := make([]string, len(records))
	for n, r := range records {
		mentions[n] = fmt.Sprintf("<@%s> (since <t:%d:R>)", r.UserID, r.SetAt)
	}
	return "📞 Currently on-call:\n" + strings.Join(mentions, "\n")
}
