package bot

import (
	"log"

	"github.com/bwmarrin/discordgo"
	"github.com/jmoiron/sqlx"

	"staff-bot/config"
	"staff-bot/lifecycle"
)

// Bot owns the Discord session, the storage handle and the lifecycle
// engine, and hands them to the handler layer.
type Bot struct {
	Session            *discordgo.Session
	DB                 *sqlx.DB
	Engine             *lifecycle.Engine
	Settings           *config.Settings
	CommandHandlers    map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate)
	RegisteredCommands []*discordgo.ApplicationCommand

	scheduler *Scheduler
}

// New builds the bot: session, collaborators and engine. The storage
// connection must already be open; nothing is accepted before Run.
func New(settings *config.Settings, db *sqlx.DB) (*Bot, error) {
	dg, err := discordgo.New("Bot " + settings.BotToken)
	if err != nil {
		return nil, err
	}
	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentMessageContent |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsDirectMessages

	b := &Bot{
		Session:  dg,
		DB:       db,
		Settings: settings,
	}
	b.Engine = lifecycle.NewEngine(
		db,
		&sessionRoleManager{session: dg},
		&sessionNotifier{session: dg},
		&staffAuditor{session: dg, db: db},
		settings.LoaFallback(),
	)
	b.scheduler = NewScheduler(b)
	return b, nil
}

// Close stops the scheduler, closes the gateway connection and then the
// storage handle.
func (b *Bot) Close() {
	log.Println("Gracefully shutting down.")
	b.scheduler.Stop()
	if err := b.Session.Close(); err != nil {
		log.Printf("Error closing session: %v", err)
	}
	if err := b.DB.Close(); err != nil {
		log.Printf("Error closing database: %v", err)
	}
}
