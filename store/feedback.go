package store

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"staff-bot/model"
)

// InsertFeedback stores a feedback submission and returns its ID. The
// record carries no submitter when the submission was anonymous.
func InsertFeedback(db *sqlx.DB, record model.FeedbackRecord) (int64, error) {
	query := `INSERT INTO feedback (guild_id, message, anonymous, submitted_by, submitted_at)
			  VALUES (:guild_id, :message, :anonymous, :submitted_by, :submitted_at)`

	result, err := db.NamedExec(query, record)
	if err != nil {
		return 0, fmt.Errorf("failed to insert feedback record: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID: %w", err)
	}
	return id, nil
}
