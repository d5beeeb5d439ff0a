package store

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"staff-bot/model"
)

// SetOnCall marks the user as on-call, upserting their roster row.
// Re-setting while already active just refreshes set_at.
func SetOnCall(db *sqlx.DB, guildID, userID string, setAt int64) error {
	query := `INSERT INTO oncall (user_id, guild_id, active, set_at) VALUES (?, ?, 1, ?)
			  ON CONFLICT(guild_id, user_id) DO UPDATE SET active = 1, set_at = excluded.set_at`
	if _, err := db.Exec(query, userID, guildID, setAt); err != nil {
		return fmt.Errorf("failed to set on-call for user %s in guild %s: %w", userID, guildID, err)
	}
	return nil
}

// UnsetOnCall flips the user's on-call flag off, keeping the row as
// history.
func UnsetOnCall(db *sqlx.DB, guildID, userID string, unsetAt int64) error {
	query := "UPDATE oncall SET active = 0, unset_at = ? WHERE guild_id = ? AND user_id = ?"
	if _, err := db.Exec(query, unsetAt, guildID, userID); err != nil {
		return fmt.Errorf("failed to unset on-call for user %s in guild %s: %w", userID, guildID, err)
	}
	return nil
}

// ListOnCall returns the guild's currently active on-call staff.
func ListOnCall(db *sqlx.DB, guildID string) ([]model.OnCallRecord, error) {
	var records []model.OnCallRecord
	err := db.Select(&records, "SELECT * FROM oncall WHERE guild_id = ? AND active = 1 ORDER BY set_at", guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list on-call staff for guild %s: %w", guildID, err)
	}
	return records, nil
}
