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

// HandleTagCommand posts a stored tag's content publicly.
func HandleTagCommand(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	opts := optionMap(i.ApplicationCommandData().Options)
	name := strings.ToLower(strings.TrimSpace(opts["name"].StringValue()))

	tag, err := store.GetTag(b.DB, i.GuildID, name)
	if err != nil {
		replyEngineError(s, i, err)
		return
	}
	if tag == nil {
		utils.SendEphemeralResponse(s, i, fmt.Sprintf("Tag `%s` not found. Use `/tag-manage list` to see available tags.", name))
		return
	}
	utils.SendPublicResponse(s, i, tag.Content)
}

// HandleTagManageCommand handles /tag-manage create, delete and list.
func HandleTagManageCommand(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	cfg, ok := guildConfig(s, i, b)
	if !ok {
		return
	}
	if !requireTier(s, i, cfg, model.TierHR, "manage tags") {
		return
	}

	sub := i.ApplicationCommandData().Options[0]
	opts := optionMap(sub.Options)

	switch sub.Name {
	case "create":
		name := strings.ToLower(strings.TrimSpace(opts["name"].StringValue()))
		record := model.TagRecord{
			Name:      name,
			Content:   opts["content"].StringValue(),
			GuildID:   i.GuildID,
			CreatedBy: i.Member.User.ID,
			CreatedAt: time.Now().Unix(),
		}
		if _, err := store.InsertTag(b.DB, record); err != nil {
			if store.IsUniqueViolation(err) {
				utils.SendEphemeralResponse(s, i, fmt.Sprintf("Tag `%s` already exists.", name))
				return
			}
			replyEngineError(s, i, err)
			return
		}
		utils.SendEphemeralResponse(s, i, fmt.Sprintf("✅ Tag `%s` created.", name))

	case "delete":
		name := strings.ToLower(strings.TrimSpace(opts["name"].StringValue()))
		deleted, err := store.DeleteTag(b.DB, i.GuildID, name)
		if err != nil {
			replyEngineError(s, i, err)
			return
		}
		if !deleted {
			utils.SendEphemeralResponse(s, i, fmt.Sprintf("Tag `%s` not found.", name))
			return
		}
		utils.SendEphemeralResponse(s, i, fmt.Sprintf("🗑️ Tag `%s` deleted.", name))

	case "list":
		tags, err := store.ListTags(b.DB, i.GuildID)
		if err != nil {
			replyEngineError(s, i, err)
			return
		}
		if len(tags) == 0 {
			utils.SendEphemeralResponse(s, i, "No tags defined yet. Create one with `/tag-manage create`.")
			return
		}

		names := make([]string, len(tags))
		for n, tag := range tags {
			names[n] = "`" + tag.Name + "`"
		}
		embed := &discordgo.MessageEmbed{
			Title:       "🏷️ Available Tags",
			Description: strings.Join(names, ", "),
			Color:       utils.ColorInfo,
		}
		utils.SendEphemeralEmbed(s, i, embed)
	}
}
