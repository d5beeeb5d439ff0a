package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staff-bot/model"
)

func TestGetGuildConfig(t *testing.T) {
	db := testDB(t)

	t.Run("unknown guild resolves to defaults", func(t *testing.T) {
		cfg, err := GetGuildConfig(db, "g-unknown")
		require.NoError(t, err)
		assert.Equal(t, model.DefaultGuildConfig(), cfg)
	})

	t.Run("stored patch overlays defaults", func(t *testing.T) {
		require.NoError(t, ApplyConfigKey(db, "g1", "roles.hr", "111"))

		cfg, err := GetGuildConfig(db, "g1")
		require.NoError(t, err)
		assert.Equal(t, "111", cfg.Roles.HR)
		assert.Equal(t, model.DefaultPrefix, cfg.Prefix)
		assert.True(t, cfg.Features.ApplicationsEnabled)
	})
}

func TestApplyConfigKey(t *testing.T) {
	db := testDB(t)

	t.Run("updates accumulate per field", func(t *testing.T) {
		require.NoError(t, ApplyConfigKey(db, "g1", "roles.staff", "100"))
		require.NoError(t, ApplyConfigKey(db, "g1", "roles.hr", "200"))
		require.NoError(t, ApplyConfigKey(db, "g1", "channels.staffLog", "300"))
		require.NoError(t, ApplyConfigKey(db, "g1", "features.loaEnabled", "false"))

		cfg, err := GetGuildConfig(db, "g1")
		require.NoError(t, err)
		assert.Equal(t, "100", cfg.Roles.Staff)
		assert.Equal(t, "200", cfg.Roles.HR)
		assert.Equal(t, "300", cfg.Channels.StaffLog)
		assert.False(t, cfg.Features.LoaEnabled)
	})

	t.Run("later write wins without clobbering siblings", func(t *testing.T) {
		require.NoError(t, ApplyConfigKey(db, "g2", "roles.staff", "100"))
		require.NoError(t, ApplyConfigKey(db, "g2", "roles.staff", "150"))

		cfg, err := GetGuildConfig(db, "g2")
		require.NoError(t, err)
		assert.Equal(t, "150", cfg.Roles.Staff)
		assert.Equal(t, "", cfg.Roles.HR)
	})

	t.Run("rejects unknown keys and bad values", func(t *testing.T) {
		assert.Error(t, ApplyConfigKey(db, "g3", "roles.janitor", "1"))
		assert.Error(t, ApplyConfigKey(db, "g3", "features.loaEnabled", "maybe"))
		assert.Error(t, ApplyConfigKey(db, "g3", "prefix", ""))
	})

	t.Run("guilds are isolated", func(t *testing.T) {
		require.NoError(t, ApplyConfigKey(db, "g4", "prefix", "!"))

		cfg, err := GetGuildConfig(db, "g5")
		require.NoError(t, err)
		assert.Equal(t, model.DefaultPrefix, cfg.Prefix)
	})
}

func TestListGuildIDs(t *testing.T) {
	db := testDB(t)

	ids, err := ListGuildIDs(db)
	require.NoError(t, err)
	assert.Empty(t, ids)

	require.NoError(t, ApplyConfigKey(db, "g1", "prefix", "!"))
	require.NoError(t, ApplyConfigKey(db, "g2", "prefix", "?"))
	require.NoError(t, ApplyConfigKey(db, "g1", "roles.hr", "1"))

	ids, err = ListGuildIDs(db)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"g1", "g2"}, ids)
}
