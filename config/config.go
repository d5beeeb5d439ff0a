package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Settings is the process-level configuration: credentials from the
// environment, schedule and storage knobs from data/settings.yaml with
// coded defaults. Per-guild configuration lives in the database instead.
type Settings struct {
	BotToken string
	AppID    string

	DBPath   string
	Timezone string

	ReminderHour  int
	DigestWeekday int
	DigestHour    int
	LoaSweepHour  int

	LoaFallbackDays int
}

// Load reads .env / environment variables and the optional settings file.
func Load() (*Settings, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: .env file not found, relying on environment variables")
	}

	token := os.Getenv("BOT_TOKEN")
	if token == "" {
		log.Fatal("Error: BOT_TOKEN environment variable not set")
	}

	v := viper.New()
	v.SetConfigFile("data/settings.yaml")
	v.SetDefault("db_path", "./data/staff.db")
	v.SetDefault("timezone", "Local")
	v.SetDefault("reminder_hour", 9)
	v.SetDefault("digest_weekday", int(time.Sunday))
	v.SetDefault("digest_hour", 18)
	v.SetDefault("loa_sweep_hour", 0)
	v.SetDefault("loa_fallback_days", 30)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok || os.IsNotExist(err) {
			log.Println("Info: data/settings.yaml not found, using defaults")
		} else if _, notFound := err.(viper.ConfigFileNotFoundError); notFound {
			log.Println("Info: data/settings.yaml not found, using defaults")
		} else {
			return nil, fmt.Errorf("failed to read settings file: %w", err)
		}
	}

	return &Settings{
		BotToken:        token,
		AppID:           os.Getenv("APP_ID"),
		DBPath:          v.GetString("db_path"),
		Timezone:        v.GetString("timezone"),
		ReminderHour:    v.GetInt("reminder_hour"),
		DigestWeekday:   v.GetInt("digest_weekday"),
		DigestHour:      v.GetInt("digest_hour"),
		LoaSweepHour:    v.GetInt("loa_sweep_hour"),
		LoaFallbackDays: v.GetInt("loa_fallback_days"),
	}, nil
}

// Location resolves the configured timezone, falling back to the host
// location on error.
func (s *Settings) Location() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		log.Printf("Warning: invalid timezone %q, falling back to local time", s.Timezone)
		return time.Local
	}
	return loc
}

// LoaFallback is the expiry window for leave requests with an
// unparseable duration.
func (s *Settings) LoaFallback() time.Duration {
	return time.Duration(s.LoaFallbackDays) * 24 * time.Hour
}
