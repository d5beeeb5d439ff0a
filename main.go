package main

import (
	"log"
	"os"

	"staff-bot/bot"
	"staff-bot/config"
	"staff-bot/handlers"
	"staff-bot/store"
)

func main() {
	settings, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := os.MkdirAll("./data", 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	db, err := store.Init(settings.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	b, err := bot.New(settings, db)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}
	defer b.Close()

	handlers.Register(b)
	b.Run()
}
