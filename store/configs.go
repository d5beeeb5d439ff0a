package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"staff-bot/model"
)

// GetGuildConfig returns the guild's stored config merged over defaults.
// A guild with no stored row gets the defaults unchanged.
func GetGuildConfig(db *sqlx.DB, guildID string) (model.GuildConfig, error) {
	cfg := model.DefaultGuildConfig()

	patch, err := getGuildPatch(db, guildID)
	if err != nil {
		return cfg, err
	}
	patch.Apply(&cfg)
	return cfg, nil
}

// SaveGuildPatch deep-merges the patch into the guild's stored config,
// creating the row if absent. Configs are never deleted.
func SaveGuildPatch(db *sqlx.DB, guildID string, patch *model.GuildConfigPatch) error {
	stored, err := getGuildPatch(db, guildID)
	if err != nil {
		return err
	}
	stored.Merge(patch)

	raw, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("failed to marshal config for guild %s: %w", guildID, err)
	}

	_, err = db.Exec(`INSERT INTO configs (guild_id, config) VALUES (?, ?)
		ON CONFLICT(guild_id) DO UPDATE SET config = excluded.config`, guildID, string(raw))
	if err != nil {
		return fmt.Errorf("failed to save config for guild %s: %w", guildID, err)
	}
	return nil
}

// ApplyConfigKey sets a single dotted-path config key ("roles.hr",
// "channels.staffLog", ...) without touching sibling fields.
func ApplyConfigKey(db *sqlx.DB, guildID, key, value string) error {
	patch, err := model.PatchFromKey(key, value)
	if err != nil {
		return err
	}
	return SaveGuildPatch(db, guildID, patch)
}

// ListGuildIDs returns every guild with a stored config. The scheduled
// sweeps iterate this set.
func ListGuildIDs(db *sqlx.DB) ([]string, error) {
	var ids []string
	if err := db.Select(&ids, "SELECT guild_id FROM configs ORDER BY guild_id"); err != nil {
		return nil, fmt.Errorf("failed to list guild ids: %w", err)
	}
	return ids, nil
}

func getGuildPatch(db *sqlx.DB, guildID string) (*model.GuildConfigPatch, error) {
	var raw string
	err := db.Get(&raw, "SELECT config FROM configs WHERE guild_id = ?", guildID)
	if errors.Is(err, sql.ErrNoRows) {
		return &model.GuildConfigPatch{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config for guild %s: %w", guildID, err)
	}

	patch := &model.GuildConfigPatch{}
	if err := json.Unmarshal([]byte(raw), patch); err != nil {
		return nil, fmt.Errorf("failed to decode config for guild %s: %w", guildID, err)
	}
	return patch, nil
}
