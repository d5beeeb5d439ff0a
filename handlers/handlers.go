package handlers

import (
	"errors"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"

	"staff-bot/bot"
	"staff-bot/lifecycle"
	"staff-bot/model"
	"staff-bot/store"
	"staff-bot/utils"
)

// Register wires all gateway handlers into the bot.
func Register(b *bot.Bot) {
	b.CommandHandlers = commandHandlers(b)
	addHandlers(b)
}

func commandHandlers(b *bot.Bot) map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate) {
	return map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate){
		"config": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleConfigCommand(s, i, b)
		},
		"apply": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleApplyCommand(s, i, b)
		},
		"application": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleApplicationManageCommand(s, i, b)
		},
		"warn": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleWarnCommand(s, i, b)
		},
		"infractions": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleInfractionsCommand(s, i, b)
		},
		"clearinfractions": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleClearInfractionsCommand(s, i, b)
		},
		"terminate": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleTerminateCommand(s, i, b)
		},
		"loa": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleLoaCommand(s, i, b)
		},
		"loa-manage": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleLoaManageCommand(s, i, b)
		},
		"promote": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandlePromoteCommand(s, i, b)
		},
		"demote": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleDemoteCommand(s, i, b)
		},
		"announce": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleAnnounceCommand(s, i, b)
		},
		"feedback": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleFeedbackCommand(s, i, b)
		},
		"logactivity": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleLogActivityCommand(s, i, b)
		},
		"staffreport": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleStaffReportCommand(s, i, b)
		},
		"tag": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleTagCommand(s, i, b)
		},
		"tag-manage": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleTagManageCommand(s, i, b)
		},
		"oncall": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleOnCallCommand(s, i, b)
		},
		"status": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleStatusCommand(s, i, b)
		},
	}
}

func addHandlers(b *bot.Bot) {
	b.Session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		log.Printf("Logged in as: %v#%v", s.State.User.Username, s.State.User.Discriminator)
	})

	b.Session.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		// Commands are guild-scoped; nothing here is usable from a DM.
		if i.GuildID == "" || i.Member == nil {
			return
		}

		defer func() {
			if r := recover(); r != nil {
				log.Printf("Panic while handling interaction in guild %s: %v", i.GuildID, r)
				utils.SendEphemeralResponse(s, i, "An error occurred while executing this command.")
			}
		}()

		switch i.Type {
		case discordgo.InteractionApplicationCommand:
			if h, ok := b.CommandHandlers[i.ApplicationCommandData().Name]; ok {
				h(s, i)
			}
		case discordgo.InteractionModalSubmit:
			HandleModalSubmit(s, i, b)
		case discordgo.InteractionMessageComponent:
			customID := i.MessageComponentData().CustomID
			if strings.HasPrefix(customID, "approve_app_") || strings.HasPrefix(customID, "deny_app_") {
				HandleApplicationButtons(s, i, b)
			}
		}
	})

	b.Session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		HandlePrefixCommand(s, m, b)
	})
}

// guildConfig loads the invoking guild's resolved config, replying with a
// generic failure when the load itself fails.
func guildConfig(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) (*model.GuildConfig, bool) {
	cfg, err := store.GetGuildConfig(b.DB, i.GuildID)
	if err != nil {
		log.Printf("Failed to load config for guild %s: %v", i.GuildID, err)
		utils.SendEphemeralResponse(s, i, "An error occurred while executing this command.")
		return nil, false
	}
	return &cfg, true
}

func memberIsAdministrator(i *discordgo.InteractionCreate) bool {
	return i.Member.Permissions&discordgo.PermissionAdministrator != 0
}

// requireTier gates a command behind a permission tier, replying with an
// ephemeral denial when the member does not qualify.
func requireTier(s *discordgo.Session, i *discordgo.InteractionCreate, cfg *model.GuildConfig, tier model.Tier, action string) bool {
	if utils.HasPermission(i.Member.Roles, memberIsAdministrator(i), tier, cfg) {
		return true
	}
	utils.SendEphemeralResponse(s, i, "You need "+tier.String()+" permissions to "+action+".")
	return false
}

// optionMap flattens interaction options by name.
func optionMap(options []*discordgo.ApplicationCommandInteractionDataOption) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(options))
	for _, opt := range options {
		m[opt.Name] = opt
	}
	return m
}

// replyEngineError maps lifecycle sentinels to user-visible ephemeral
// messages; anything unexpected is logged and reported generically.
func replyEngineError(s *discordgo.Session, i *discordgo.InteractionCreate, err error) {
	switch {
	case errors.Is(err, lifecycle.ErrDuplicatePending):
		utils.SendEphemeralResponse(s, i, "There is already a pending request for that user.")
	case errors.Is(err, lifecycle.ErrNotFound):
		utils.SendEphemeralResponse(s, i, "No matching pending record was found.")
	case errors.Is(err, lifecycle.ErrRoleNotConfigured):
		utils.SendEphemeralResponse(s, i, "That role is not configured. Use `/config set roles.<tier> <roleID>` first.")
	case errors.Is(err, lifecycle.ErrGrantFailed):
		utils.SendEphemeralResponse(s, i, "Could not update the member's roles; nothing was changed.")
	case errors.Is(err, lifecycle.ErrReasonRequired):
		utils.SendEphemeralResponse(s, i, "A denial reason is required.")
	default:
		log.Printf("Command failed in guild %s: %v", i.GuildID, err)
		utils.SendEphemeralResponse(s, i, "An error occurred while executing this command.")
	}
}
