package bot

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"staff-bot/commands"
)

// Run opens the gateway connection, overwrites the global command set and
// starts the scheduler, then blocks until an interrupt or termination
// signal arrives.
func (b *Bot) Run() {
	if err := b.Session.Open(); err != nil {
		log.Fatalf("Error opening connection: %v", err)
	}

	appID := b.Settings.AppID
	if appID == "" {
		appID = b.Session.State.User.ID
	}

	cmds := commands.Generate()
	log.Printf("Registering %d application commands...", len(cmds))
	registered, err := b.Session.ApplicationCommandBulkOverwrite(appID, "", cmds)
	if err != nil {
		log.Fatalf("Cannot register application commands: %v", err)
	}
	b.RegisteredCommands = registered

	b.scheduler.Start()

	fmt.Println("Bot is now running. Press CTRL-C to exit.")
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc
}
