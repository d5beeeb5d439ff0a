package store

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// IsUniqueViolation reports whether err is a sqlite unique-constraint
// failure, as raised by the partial pending indexes and the tag name
// index.
func IsUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// Init opens the staff database and ensures all tables and indexes exist.
func Init(dbPath string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	schema := []string{
		`CREATE TABLE IF NOT EXISTS configs (
			guild_id TEXT NOT NULL PRIMARY KEY,
			config TEXT NOT NULL DEFAULT '{}'
		);`,
		`CREATE TABLE IF NOT EXISTS applications (
			application_id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id TEXT NOT NULL,
			guild_id TEXT NOT NULL,
			name TEXT NOT NULL,
			age TEXT NOT NULL,
			experience TEXT NOT NULL,
			motivation TEXT NOT NULL,
			availability TEXT NOT NULL,
			submitted_at INTEGER NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			approved_by TEXT NOT NULL DEFAULT '',
			approved_at INTEGER NOT NULL DEFAULT 0,
			denied_by TEXT NOT NULL DEFAULT '',
			denied_at INTEGER NOT NULL DEFAULT 0,
			denial_reason TEXT NOT NULL DEFAULT ''
		);`,
		// One pending application per (guild, user), enforced by the
		// storage layer rather than only by read-check-then-write.
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_applications_pending
			ON applications(guild_id, user_id) WHERE status = 'pending';`,
		`CREATE TABLE IF NOT EXISTS warnings (
			warning_id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id TEXT NOT NULL,
			guild_id TEXT NOT NULL,
			reason TEXT NOT NULL,
			proof TEXT NOT NULL DEFAULT '',
			issued_by TEXT NOT NULL,
			issued_at INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS terminations (
			termination_id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id TEXT NOT NULL,
			guild_id TEXT NOT NULL,
			reason TEXT NOT NULL,
			terminated_by TEXT NOT NULL,
			terminated_at INTEGER NOT NULL,
			roles_removed TEXT NOT NULL DEFAULT '[]'
		);`,
		`CREATE TABLE IF NOT EXISTS loa (
			loa_id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id TEXT NOT NULL,
			guild_id TEXT NOT NULL,
			duration TEXT NOT NULL,
			reason TEXT NOT NULL,
			requested_at INTEGER NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			approved_by TEXT NOT NULL DEFAULT '',
			approved_at INTEGER NOT NULL DEFAULT 0,
			denied_by TEXT NOT NULL DEFAULT '',
			denied_at INTEGER NOT NULL DEFAULT 0,
			denial_reason TEXT NOT NULL DEFAULT '',
			expired_at INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_loa_pending
			ON loa(guild_id, user_id) WHERE status = 'pending';`,
		`CREATE TABLE IF NOT EXISTS tags (
			tag_id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			content TEXT NOT NULL,
			guild_id TEXT NOT NULL,
			created_by TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			UNIQUE(guild_id, name)
		);`,
		`CREATE TABLE IF NOT EXISTS activity (
			activity_id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id TEXT NOT NULL,
			guild_id TEXT NOT NULL,
			activity TEXT NOT NULL,
			hours INTEGER NOT NULL DEFAULT 0,
			logged_at INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS oncall (
			user_id TEXT NOT NULL,
			guild_id TEXT NOT NULL,
			active INTEGER NOT NULL DEFAULT 0,
			set_at INTEGER NOT NULL DEFAULT 0,
			unset_at INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (guild_id, user_id)
		);`,
		`CREATE TABLE IF NOT EXISTS feedback (
			feedback_id INTEGER PRIMARY KEY AUTOINCREMENT,
			guild_id TEXT NOT NULL,
			message TEXT NOT NULL,
			anonymous INTEGER NOT NULL DEFAULT 0,
			submitted_by TEXT NOT NULL DEFAULT '',
			submitted_at INTEGER NOT NULL
		);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return db, nil
}
