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

// HandleLogActivityCommand records an activity entry for the caller.
func HandleLogActivityCommand(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	cfg, ok := guildConfig(s, i, b)
	if !ok {
		return
	}
	if !requireTier(s, i, cfg, model.TierStaff, "log activity") {
		return
	}

	opts := optionMap(i.ApplicationCommandData().Options)
	activity := opts["activity"].StringValue()
	hours := 0
	if opt, exists := opts["hours"]; exists {
		hours = int(opt.IntValue())
	}

	record := model.ActivityLogRecord{
		UserID:   i.Member.User.ID,
		GuildID:  i.GuildID,
		Activity: activity,
		Hours:    hours,
		LoggedAt: time.Now().Unix(),
	}
	if _, err := store.InsertActivity(b.DB, record); err != nil {
		replyEngineError(s, i, err)
		return
	}
	utils.SendEphemeralResponse(s, i, "📝 Activity logged. Thanks for keeping your record up to date!")
}

func periodStart(period string, now time.Time) (int64, string) {
	switch period {
	case "today":
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return start.Unix(), "today"
	case "month":
		return now.AddDate(0, -1, 0).Unix(), "the past month"
	default:
		return now.AddDate(0, 0, -7).Unix(), "the past week"
	}
}

// HandleStaffReportCommand shows per-user activity aggregates, or one
// user's recent entries when a user is given.
func HandleStaffReportCommand(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	cfg, ok := guildConfig(s, i, b)
	if !ok {
		return
	}
	if !requireTier(s, i, cfg, model.TierHR, "view staff reports") {
		return
	}

	opts := optionMap(i.ApplicationCommandData().Options)
	period := "week"
	if opt, exists := opts["period"]; exists {
		period = opt.StringValue()
	}
	since, label := periodStart(period, time.Now())

	if opt, exists := opts["user"]; exists {
		target := opt.UserValue(s)
		entries, err := store.GetActivitySince(b.DB, i.GuildID, target.ID, since, 15)
		if err != nil {
			replyEngineError(s, i, err)
			return
		}

		embed := &discordgo.MessageEmbed{
			Title:     fmt.Sprintf("📊 Activity Report for %s", target.Username),
			Color:     utils.ColorInfo,
			Timestamp: time.Now().Format(time.RFC3339),
		}
		if len(entries) == 0 {
			embed.Description = fmt.Sprintf("No activity logged for %s.", label)
		}
		for _, e := range entries {
			name := fmt.Sprintf("<t:%d:d>", e.LoggedAt)
			value := e.Activity
			if e.Hours > 0 {
				value += fmt.Sprintf(" (%d hours)", e.Hours)
			}
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: name, Value: value})
		}
		utils.SendEphemeralEmbed(s, i, embed)
		return
	}

	totals, err := store.ActivityTotals(b.DB, i.GuildID, since)
	if err != nil {
		replyEngineError(s, i, err)
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:       "📊 Staff Activity Report",
		Description: fmt.Sprintf("Activity for %s", label),
		Color:       utils.ColorInfo,
		Timestamp:   time.Now().Format(time.RFC3339),
	}
	if len(totals) == 0 {
		embed.Description = fmt.Sprintf("No activity logged for %s.", label)
	}
	for userID, summary := range totals {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "Staff Member",
			Value:  fmt.Sprintf("<@%s>: %d activities, %d hours", userID, summary.Count, summary.Hours),
			Inline: true,
		})
	}
	utils.SendEphemeralEmbed(s, i, embed)
}
