package store

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"staff-bot/model"
)

// InsertActivity stores a logged activity entry and returns its ID.
func InsertActivity(db *sqlx.DB, record model.ActivityLogRecord) (int64, error) {
	query := `INSERT INTO activity (user_id, guild_id, activity, hours, logged_at)
			  VALUES (:user_id, :guild_id, :activity, :hours, :logged_at)`

	result, err := db.NamedExec(query, record)
	if err != nil {
		return 0, fmt.Errorf("failed to insert activity record: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID: %w", err)
	}
	return id, nil
}

// GetActivitySince returns the guild's activity entries logged at or after
// since, newest first, optionally filtered to one user.
func GetActivitySince(db *sqlx.DB, guildID, userID string, since int64, limit int) ([]model.ActivityLogRecord, error) {
	var records []model.ActivityLogRecord
	query := "SELECT * FROM activity WHERE guild_id = ? AND logged_at >= ?"
	args := []interface{}{guildID, since}

	if userID != "" {
		query += " AND user_id = ?"
		args = append(args, userID)
	}
	query += " ORDER BY logged_at DESC LIMIT ?"
	args = append(args, limit)

	if err := db.Select(&records, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get activity for guild %s: %w", guildID, err)
	}
	return records, nil
}

// ActivityTotals aggregates entry count and hours per user for a guild
// since the given time.
func ActivityTotals(db *sqlx.DB, guildID string, since int64) (map[string]model.ActivitySummary, error) {
	query := `SELECT user_id, COUNT(*) as count, SUM(hours) as hours FROM activity
			  WHERE guild_id = ? AND logged_at >= ? GROUP BY user_id`
	rows, err := db.Query(query, guildID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate activity for guild %s: %w", guildID, err)
	}
	defer rows.Close()

	totals := make(map[string]model.ActivitySummary)
	for rows.Next() {
		var userID string
		var summary model.ActivitySummary
		if err := rows.Scan(&userID, &summary.Count, &summary.Hours); err != nil {
			return nil, fmt.Errorf("failed to scan activity totals row: %w", err)
		}
		totals[userID] = summary
	}
	return totals, nil
}
