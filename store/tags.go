package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"staff-bot/model"
)

// InsertTag stores a new tag and returns its ID. The (guild, name) unique
// index rejects duplicates.
func InsertTag(db *sqlx.DB, record model.TagRecord) (int64, error) {
	query := `INSERT INTO tags (name, content, guild_id, created_by, created_at)
			  VALUES (:name, :content, :guild_id, :created_by, :created_at)`

	result, err := db.NamedExec(query, record)
	if err != nil {
		return 0, fmt.Errorf("failed to insert tag %q: %w", record.Name, err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID: %w", err)
	}
	return id, nil
}

// GetTag returns the named tag in a guild, or nil when absent.
func GetTag(db *sqlx.DB, guildID, name string) (*model.TagRecord, error) {
	var record model.TagRecord
	err := db.Get(&record, "SELECT * FROM tags WHERE guild_id = ? AND name = ?", guildID, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tag %q in guild %s: %w", name, guildID, err)
	}
	return &record, nil
}

// DeleteTag removes the named tag. Returns false when it did not exist.
func DeleteTag(db *sqlx.DB, guildID, name string) (bool, error) {
	result, err := db.Exec("DELETE FROM tags WHERE guild_id = ? AND name = ?", guildID, name)
	if err != nil {
		return false, fmt.Errorf("failed to delete tag %q in guild %s: %w", name, guildID, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check rows affected: %w", err)
	}
	return rows > 0, nil
}

// ListTags returns the guild's tags sorted by name.
func ListTags(db *sqlx.DB, guildID string) ([]model.TagRecord, error) {
	var records []model.TagRecord
	err := db.Select(&records, "SELECT * FROM tags WHERE guild_id = ? ORDER BY name", guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags for guild %s: %w", guildID, err)
	}
	return records, nil
}
