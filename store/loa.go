package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"staff-bot/model"
)

// InsertLoa stores a new leave request and returns its ID.
func InsertLoa(db *sqlx.DB, record model.LoaRecord) (int64, error) {
	query := `INSERT INTO loa (user_id, guild_id, duration, reason, requested_at, status)
			  VALUES (:user_id, :guild_id, :duration, :reason, :requested_at, :status)`

	result, err := db.NamedExec(query, record)
	if err != nil {
		return 0, fmt.Errorf("failed to insert loa record: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID: %w", err)
	}
	return id, nil
}

// GetPendingLoa returns the pending leave request for a (guild, user)
// pair, or nil when there is none.
func GetPendingLoa(db *sqlx.DB, guildID, userID string) (*model.LoaRecord, error) {
	var record model.LoaRecord
	query := "SELECT * FROM loa WHERE guild_id = ? AND user_id = ? AND status = 'pending'"
	err := db.Get(&record, query, guildID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pending loa for user %s in guild %s: %w", userID, guildID, err)
	}
	return &record, nil
}

// MarkLoaApproved transitions the pending request to approved. Returns
// false when no pending record matched.
func MarkLoaApproved(db *sqlx.DB, guildID, userID, approvedBy string, approvedAt int64) (bool, error) {
	query := `UPDATE loa SET status = 'approved', approved_by = ?, approved_at = ?
			  WHERE guild_id = ? AND user_id = ? AND status = 'pending'`
	result, err := db.Exec(query, approvedBy, approvedAt, guildID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to approve loa for user %s in guild %s: %w", userID, guildID, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check rows affected: %w", err)
	}
	return rows > 0, nil
}

// MarkLoaDenied transitions the pending request to denied. Returns false
// when no pending record matched.
func MarkLoaDenied(db *sqlx.DB, guildID, userID, deniedBy, reason string, deniedAt int64) (bool, error) {
	query := `UPDATE loa SET status = 'denied', denied_by = ?, denied_at = ?, denial_reason = ?
			  WHERE guild_id = ? AND user_id = ? AND status = 'pending'`
	result, err := db.Exec(query, deniedBy, deniedAt, reason, guildID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to deny loa for user %s in guild %s: %w", userID, guildID, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check rows affected: %w", err)
	}
	return rows > 0, nil
}

// ListApprovedLoas returns every approved leave request across all guilds,
// for the expiry sweep.
func ListApprovedLoas(db *sqlx.DB) ([]model.LoaRecord, error) {
	var records []model.LoaRecord
	err := db.Select(&records, "SELECT * FROM loa WHERE status = 'approved' ORDER BY approved_at")
	if err != nil {
		return nil, fmt.Errorf("failed to list approved loa records: %w", err)
	}
	return records, nil
}

// ListApprovedLoasByGuild returns the guild's approved leave requests.
func ListApprovedLoasByGuild(db *sqlx.DB, guildID string) ([]model.LoaRecord, error) {
	var records []model.LoaRecord
	err := db.Select(&records, "SELECT * FROM loa WHERE guild_id = ? AND status = 'approved' ORDER BY approved_at", guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved loa records for guild %s: %w", guildID, err)
	}
	return records, nil
}

// MarkLoaExpired transitions an approved request to expired. The status
// guard makes re-running the sweep a no-op for already expired records.
func MarkLoaExpired(db *sqlx.DB, loaID int64, expiredAt int64) (bool, error) {
	query := `UPDATE loa SET status = 'expired', expired_at = ?
			  WHERE loa_id = ? AND status = 'approved'`
	result, err := db.Exec(query, expiredAt, loaID)
	if err != nil {
		return false, fmt.Errorf("failed to expire loa %d: %w", loaID, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check rows affected: %w", err)
	}
	return rows > 0, nil
}
