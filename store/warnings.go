package store

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"staff-bot/model"
)

// InsertWarning stores a new warning record and returns its ID.
func InsertWarning(db *sqlx.DB, record model.WarningRecord) (int64, error) {
	query := `INSERT INTO warnings (user_id, guild_id, reason, proof, issued_by, issued_at)
			  VALUES (:user_id, :guild_id, :reason, :proof, :issued_by, :issued_at)`

	result, err := db.NamedExec(query, record)
	if err != nil {
		return 0, fmt.Errorf("failed to insert warning record: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID: %w", err)
	}
	return id, nil
}

// GetWarningsByUser returns the user's warnings in a guild, newest first.
func GetWarningsByUser(db *sqlx.DB, guildID, userID string, limit int) ([]model.WarningRecord, error) {
	var records []model.WarningRecord
	query := "SELECT * FROM warnings WHERE guild_id = ? AND user_id = ? ORDER BY issued_at DESC LIMIT ?"
	err := db.Select(&records, query, guildID, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get warnings for user %s in guild %s: %w", userID, guildID, err)
	}
	return records, nil
}

// CountWarnings returns the user's total warning count in a guild.
func CountWarnings(db *sqlx.DB, guildID, userID string) (int, error) {
	var count int
	err := db.Get(&count, "SELECT COUNT(*) FROM warnings WHERE guild_id = ? AND user_id = ?", guildID, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count warnings for user %s in guild %s: %w", userID, guildID, err)
	}
	return count, nil
}

// ClearWarnings removes every warning for a (guild, user) pair and
// returns how many were deleted.
func ClearWarnings(db *sqlx.DB, guildID, userID string) (int64, error) {
	result, err := db.Exec("DELETE FROM warnings WHERE guild_id = ? AND user_id = ?", guildID, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to clear warnings for user %s in guild %s: %w", userID, guildID, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check rows affected: %w", err)
	}
	return rows, nil
}
