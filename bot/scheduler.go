package bot

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	"staff-bot/store"
	"staff-bot/utils"
)

// Scheduler runs the three time-based sweeps: the daily staff reminder,
// the weekly activity digest and the daily LOA expiry pass. Each sweep is
// fault-isolated per guild; one guild's failure never aborts the rest.
type Scheduler struct {
	bot  *Bot
	done chan struct{}
	wg   sync.WaitGroup
}

// NewScheduler creates a scheduler bound to the bot.
func NewScheduler(b *Bot) *Scheduler {
	return &Scheduler{
		bot:  b,
		done: make(chan struct{}),
	}
}

// Start launches the sweep goroutines.
func (s *Scheduler) Start() {
	s.wg.Add(3)
	go s.runDaily("daily reminder", s.bot.Settings.ReminderHour, s.reminderSweep)
	go s.runWeekly("weekly digest", time.Weekday(s.bot.Settings.DigestWeekday), s.bot.Settings.DigestHour, s.digestSweep)
	go s.runDaily("LOA expiry sweep", s.bot.Settings.LoaSweepHour, s.loaSweep)
}

// Stop terminates all sweeps and waits for them to finish.
func (s *Scheduler) Stop() {
	log.Println("Stopping scheduler...")
	close(s.done)
	s.wg.Wait()
	log.Println("Scheduler stopped.")
}

func (s *Scheduler) runDaily(name string, hour int, task func()) {
	defer s.wg.Done()
	loc := s.bot.Settings.Location()

	for {
		now := time.Now().In(loc)
		next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, loc)
		if !now.Before(next) {
			next = next.Add(24 * time.Hour)
		}

		log.Printf("Next %s scheduled for: %v", name, next)
		select {
		case <-time.After(next.Sub(now)):
			task()
		case <-s.done:
			return
		}
	}
}

func (s *Scheduler) runWeekly(name string, weekday time.Weekday, hour int, task func()) {
	defer s.wg.Done()
	loc := s.bot.Settings.Location()

	for {
		now := time.Now().In(loc)
		days := (int(weekday) - int(now.Weekday()) + 7) % 7
		next := time.Date(now.Year(), now.Month(), now.Day()+days, hour, 0, 0, 0, loc)
		if !now.Before(next) {
			next = next.AddDate(0, 0, 7)
		}

		log.Printf("Next %s scheduled for: %v", name, next)
		select {
		case <-time.After(next.Sub(now)):
			task()
		case <-s.done:
			return
		}
	}
}

// reminderSweep posts the daily staff reminder into every guild with
// reminders enabled and an announcements channel configured.
func (s *Scheduler) reminderSweep() {
	log.Println("Running daily staff reminders...")

	guildIDs, err := store.ListGuildIDs(s.bot.DB)
	if err != nil {
		log.Printf("Reminder sweep: failed to list guilds: %v", err)
		return
	}

	for _, guildID := range guildIDs {
		cfg, err := store.GetGuildConfig(s.bot.DB, guildID)
		if err != nil {
			log.Printf("Reminder sweep: failed to load config for guild %s: %v", guildID, err)
			continue
		}
		if !cfg.Features.RemindersEnabled || cfg.Channels.Announcements == "" {
			continue
		}

		embed := &discordgo.MessageEmbed{
			Title: "📋 Daily Staff Reminder",
			Description: "Good morning staff! Don't forget to:\n\n" +
				"• Log your daily activity with `/logactivity`\n" +
				"• Check for any pending tasks\n" +
				"• Review staff channels for updates",
			Color:     utils.ColorInfo,
			Timestamp: time.Now().Format(time.RFC3339),
		}
		if _, err := s.bot.Session.ChannelMessageSendEmbed(cfg.Channels.Announcements, embed); err != nil {
			log.Printf("Reminder sweep: failed to send reminder for guild %s: %v", guildID, err)
		}
	}
}

// digestSweep posts the weekly per-user activity summary to each guild's
// staff log channel.
func (s *Scheduler) digestSweep() {
	log.Println("Generating weekly activity reports...")

	guildIDs, err := store.ListGuildIDs(s.bot.DB)
	if err != nil {
		log.Printf("Digest sweep: failed to list guilds: %v", err)
		return
	}

	weekAgo := time.Now().AddDate(0, 0, -7).Unix()
	for _, guildID := range guildIDs {
		cfg, err := store.GetGuildConfig(s.bot.DB, guildID)
		if err != nil {
			log.Printf("Digest sweep: failed to load config for guild %s: %v", guildID, err)
			continue
		}
		if cfg.Channels.StaffLog == "" {
			continue
		}

		totals, err := store.ActivityTotals(s.bot.DB, guildID, weekAgo)
		if err != nil {
			log.Printf("Digest sweep: failed to aggregate activity for guild %s: %v", guildID, err)
			continue
		}
		if len(totals) == 0 {
			continue
		}

		embed := &discordgo.MessageEmbed{
			Title:       "📊 Weekly Activity Report",
			Description: "Staff activity summary for the past week",
			Color:       0x2ecc71,
			Timestamp:   time.Now().Format(time.RFC3339),
		}
		for userID, summary := range totals {
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
				Name:   fmt.Sprintf("<@%s>", userID),
				Value:  fmt.Sprintf("%d activities, %d hours", summary.Count, summary.Hours),
				Inline: true,
			})
		}
		if _, err := s.bot.Session.ChannelMessageSendEmbed(cfg.Channels.StaffLog, embed); err != nil {
			log.Printf("Digest sweep: failed to send report for guild %s: %v", guildID, err)
		}
	}
}

// loaSweep expires approved leave requests whose window has elapsed.
func (s *Scheduler) loaSweep() {
	log.Println("Cleaning up expired LOAs...")

	expired, err := s.bot.Engine.SweepExpiredLoas(time.Now())
	if err != nil {
		log.Printf("LOA sweep failed: %v", err)
		return
	}
	if expired > 0 {
		log.Printf("Expired %d LOA requests", expired)
	}
}
