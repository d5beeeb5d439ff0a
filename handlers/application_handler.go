package handlers

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"staff-bot/bot"
	"staff-bot/lifecycle"
	"staff-bot/model"
	"staff-bot/store"
	"staff-bot/utils"
)

// HandleApplyCommand opens the staff application modal.
func HandleApplyCommand(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	cfg, ok := guildConfig(s, i, b)
	if !ok {
		return
	}
	if !cfg.Features.ApplicationsEnabled {
		utils.SendEphemeralResponse(s, i, "Staff applications are currently disabled on this server.")
		return
	}

	pending, err := store.GetPendingApplication(b.DB, i.GuildID, i.Member.User.ID)
	if err != nil {
		replyEngineError(s, i, err)
		return
	}
	if pending != nil {
		utils.SendEphemeralResponse(s, i, "You already have a pending application. Please wait for it to be reviewed.")
		return
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: "staff_application",
			Title:    "Staff Application",
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:  "applicant_name",
						Label:     "What should we call you?",
						Style:     discordgo.TextInputShort,
						Required:  true,
						MaxLength: 100,
					},
				}},
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:  "age",
						Label:     "How old are you?",
						Style:     discordgo.TextInputShort,
						Required:  true,
						MaxLength: 10,
					},
				}},
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:  "experience",
						Label:     "Relevant experience",
						Style:     discordgo.TextInputParagraph,
						Required:  true,
						MaxLength: 1000,
					},
				}},
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:  "motivation",
						Label:     "Why do you want to join the staff team?",
						Style:     discordgo.TextInputParagraph,
						Required:  true,
						MaxLength: 1000,
					},
				}},
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:  "availability",
						Label:     "Weekly availability",
						Style:     discordgo.TextInputShort,
						Required:  true,
						MaxLength: 200,
					},
				}},
			},
		},
	})
	if err != nil {
		log.Printf("Failed to open application modal in guild %s: %v", i.GuildID, err)
	}
}

// HandleModalSubmit routes modal submissions by custom ID.
func HandleModalSubmit(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	customID := i.ModalSubmitData().CustomID
	switch {
	case customID == "staff_application":
		handleApplicationModal(s, i, b)
	case strings.HasPrefix(customID, "approve_modal_"):
		handleApproveModal(s, i, b, strings.TrimPrefix(customID, "approve_modal_"))
	case strings.HasPrefix(customID, "deny_modal_"):
		handleDenyModal(s, i, b, strings.TrimPrefix(customID, "deny_modal_"))
	}
}

func modalFields(data discordgo.ModalSubmitInteractionData) map[string]string {
	fields := make(map[string]string)
	for _, row := range data.Components {
		actionsRow, ok := row.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, component := range actionsRow.Components {
			if input, ok := component.(*discordgo.TextInput); ok {
				fields[input.CustomID] = input.Value
			}
		}
	}
	return fields
}

func handleApplicationModal(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	cfg, ok := guildConfig(s, i, b)
	if !ok {
		return
	}

	fields := modalFields(i.ModalSubmitData())
	record, err := b.Engine.SubmitApplication(i.GuildID, i.Member.User.ID, lifecycle.ApplicationForm{
		Name:         fields["applicant_name"],
		Age:          fields["age"],
		Experience:   fields["experience"],
		Motivation:   fields["motivation"],
		Availability: fields["availability"],
	})
	if err != nil {
		replyEngineError(s, i, err)
		return
	}

	if cfg.Channels.Applications != "" {
		embed := &discordgo.MessageEmbed{
			Title:       "📝 New Staff Application",
			Description: fmt.Sprintf("Application from <@%s>", record.UserID),
			Color:       utils.ColorInfo,
			Fields: []*discordgo.MessageEmbedField{
				{Name: "Name", Value: record.Name, Inline: true},
				{Name: "Age", Value: record.Age, Inline: true},
				{Name: "Availability", Value: record.Availability, Inline: true},
				{Name: "Experience", Value: record.Experience},
				{Name: "Motivation", Value: record.Motivation},
			},
			Timestamp: time.Now().Format(time.RFC3339),
		}
		_, err := s.ChannelMessageSendComplex(cfg.Channels.Applications, &discordgo.MessageSend{
			Embeds: []*discordgo.MessageEmbed{embed},
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label:    "Approve",
						Style:    discordgo.SuccessButton,
						CustomID: "approve_app_" + record.UserID,
					},
					discordgo.Button{
						Label:    "Deny",
						Style:    discordgo.DangerButton,
						CustomID: "deny_app_" + record.UserID,
					},
				}},
			},
		})
		if err != nil {
			log.Printf("Failed to post application to review channel in guild %s: %v", i.GuildID, err)
		}
	}

	utils.SendEphemeralResponse(s, i, "✅ Your application has been submitted! You'll be notified once it has been reviewed.")
}

// HandleApplicationButtons opens the follow-up modal for the approve and
// deny review buttons.
func HandleApplicationButtons(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	cfg, ok := guildConfig(s, i, b)
	if !ok {
		return
	}
	if !requireTier(s, i, cfg, model.TierHR, "review applications") {
		return
	}

	customID := i.MessageComponentData().CustomID
	var response *discordgo.InteractionResponse
	if userID, found := strings.CutPrefix(customID, "approve_app_"); found {
		response = &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseModal,
			Data: &discordgo.InteractionResponseData{
				CustomID: "approve_modal_" + userID,
				Title:    "Approve Application",
				Components: []discordgo.MessageComponent{
					discordgo.ActionsRow{Components: []discordgo.MessageComponent{
						discordgo.TextInput{
							CustomID:    "role_selection",
							Label:       "Role to assign",
							Style:       discordgo.TextInputShort,
							Placeholder: "staff or hr",
							Required:    true,
							MaxLength:   10,
						},
					}},
				},
			},
		}
	} else if userID, found := strings.CutPrefix(customID, "deny_app_"); found {
		response = &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseModal,
			Data: &discordgo.InteractionResponseData{
				CustomID: "deny_modal_" + userID,
				Title:    "Deny Application",
				Components: []discordgo.MessageComponent{
					discordgo.ActionsRow{Components: []discordgo.MessageComponent{
						discordgo.TextInput{
							CustomID:  "denial_reason",
							Label:     "Reason for denial",
							Style:     discordgo.TextInputParagraph,
							Required:  true,
							MaxLength: 1000,
						},
					}},
				},
			},
		}
	} else {
		return
	}

	if err := s.InteractionRespond(i.Interaction, response); err != nil {
		log.Printf("Failed to open review modal in guild %s: %v", i.GuildID, err)
	}
}

func handleApproveModal(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot, userID string) {
	cfg, ok := guildConfig(s, i, b)
	if !ok {
		return
	}
	if !requireTier(s, i, cfg, model.TierHR, "review applications") {
		return
	}

	fields := modalFields(i.ModalSubmitData())
	tier, ok := model.ParseTier(strings.ToLower(strings.TrimSpace(fields["role_selection"])))
	if !ok || tier > model.TierHR {
		utils.SendEphemeralResponse(s, i, "Invalid role selection. Enter `staff` or `hr`.")
		return
	}

	if err := b.Engine.ApproveApplication(i.GuildID, userID, tier, i.Member.User.ID, cfg); err != nil {
		replyEngineError(s, i, err)
		return
	}
	resolveReviewMessage(s, i, fmt.Sprintf("✅ Application approved by <@%s> (%s)", i.Member.User.ID, tier))
}

func handleDenyModal(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot, userID string) {
	cfg, ok := guildConfig(s, i, b)
	if !ok {
		return
	}
	if !requireTier(s, i, cfg, model.TierHR, "review applications") {
		return
	}

	fields := modalFields(i.ModalSubmitData())
	if err := b.Engine.DenyApplication(i.GuildID, userID, fields["denial_reason"], i.Member.User.ID); err != nil {
		replyEngineError(s, i, err)
		return
	}
	resolveReviewMessage(s, i, fmt.Sprintf("❌ Application denied by <@%s>", i.Member.User.ID))
}

// resolveReviewMessage replaces the review message's buttons with the
// outcome line while keeping the original application embed visible.
func resolveReviewMessage(s *discordgo.Session, i *discordgo.InteractionCreate, outcome string) {
	var embeds []*discordgo.MessageEmbed
	if i.Message != nil {
		embeds = i.Message.Embeds
	}
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Content:    outcome,
			Embeds:     embeds,
			Components: []discordgo.MessageComponent{},
		},
	})
	if err != nil {
		log.Printf("Failed to resolve review message in guild %s: %v", i.GuildID, err)
	}
}

// HandleApplicationManageCommand handles /application approve and deny,
// the slash-command path for reviews done without the buttons.
func HandleApplicationManageCommand(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	cfg, ok := guildConfig(s, i, b)
	if !ok {
		return
	}
	if !requireTier(s, i, cfg, model.TierHR, "review applications") {
		return
	}

	sub := i.ApplicationCommandData().Options[0]
	opts := optionMap(sub.Options)
	target := opts["user"].UserValue(s)

	switch sub.Name {
	case "approve":
		tier, ok := model.ParseTier(opts["role"].StringValue())
		if !ok || tier > model.TierHR {
			utils.SendEphemeralResponse(s, i, "Invalid role selection. Enter `staff` or `hr`.")
			return
		}
		if err := b.Engine.ApproveApplication(i.GuildID, target.ID, tier, i.Member.User.ID, cfg); err != nil {
			replyEngineError(s, i, err)
			return
		}
		utils.SendEphemeralResponse(s, i, fmt.Sprintf("✅ Approved <@%s>'s application with the %s role.", target.ID, tier))

	case "deny":
		reason := opts["reason"].StringValue()
		if err := b.Engine.DenyApplication(i.GuildID, target.ID, reason, i.Member.User.ID); err != nil {
			replyEngineError(s, i, err)
			return
		}
		utils.SendEphemeralResponse(s, i, fmt.Sprintf("❌ Denied <@%s>'s application.", target.ID))
	}
}
