package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"staff-bot/model"
)

// InsertApplication stores a new application record and returns its ID.
func InsertApplication(db *sqlx.DB, record model.ApplicationRecord) (int64, error) {
	query := `INSERT INTO applications (user_id, guild_id, name, age, experience, motivation, availability, submitted_at, status)
			  VALUES (:user_id, :guild_id, :name, :age, :experience, :motivation, :availability, :submitted_at, :status)`

	result, err := db.NamedExec(query, record)
	if err != nil {
		return 0, fmt.Errorf("failed to insert application record: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID: %w", err)
	}
	return id, nil
}

// GetPendingApplication returns the pending application for a (guild, user)
// pair, or nil when there is none.
func GetPendingApplication(db *sqlx.DB, guildID, userID string) (*model.ApplicationRecord, error) {
	var record model.ApplicationRecord
	query := "SELECT * FROM applications WHERE guild_id = ? AND user_id = ? AND status = 'pending'"
	err := db.Get(&record, query, guildID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pending application for user %s in guild %s: %w", userID, guildID, err)
	}
	return &record, nil
}

// MarkApplicationApproved transitions the pending application to approved.
// Returns false when no pending record matched.
func MarkApplicationApproved(db *sqlx.DB, guildID, userID, approvedBy string, approvedAt int64) (bool, error) {
	query := `UPDATE applications SET status = 'approved', approved_by = ?, approved_at = ?
			  WHERE guild_id = ? AND user_id = ? AND status = 'pending'`
	result, err := db.Exec(query, approvedBy, approvedAt, guildID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to approve application for user %s in guild %s: %w", userID, guildID, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check rows affected: %w", err)
	}
	return rows > 0, nil
}

// MarkApplicationDenied transitions the pending application to denied.
// Returns false when no pending record matched.
func MarkApplicationDenied(db *sqlx.DB, guildID, userID, deniedBy, reason string, deniedAt int64) (bool, error) {
	query := `UPDATE applications SET status = 'denied', denied_by = ?, denied_at = ?, denial_reason = ?
			  WHERE guild_id = ? AND user_id = ? AND status = 'pending'`
	result, err := db.Exec(query, deniedBy, deniedAt, reason, guildID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to deny application for user %s in guild %s: %w", userID, guildID, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check rows affected: %w", err)
	}
	return rows > 0, nil
}
