package store

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"staff-bot/model"
)

// InsertTermination stores a termination record and returns its ID.
func InsertTermination(db *sqlx.DB, record model.TerminationRecord) (int64, error) {
	query := `INSERT INTO terminations (user_id, guild_id, reason, terminated_by, terminated_at, roles_removed)
			  VALUES (:user_id, :guild_id, :reason, :terminated_by, :terminated_at, :roles_removed)`

	result, err := db.NamedExec(query, record)
	if err != nil {
		return 0, fmt.Errorf("failed to insert termination record: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID: %w", err)
	}
	return id, nil
}

// GetTerminationsByUser returns the user's termination history in a guild,
// newest first.
func GetTerminationsByUser(db *sqlx.DB, guildID, userID string) ([]model.TerminationRecord, error) {
	var records []model.TerminationRecord
	query := "SELECT * FROM terminations WHERE guild_id = ? AND user_id = ? ORDER BY terminated_at DESC"
	err := db.Select(&records, query, guildID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get terminations for user %s in guild %s: %w", userID, guildID, err)
	}
	return records, nil
}
