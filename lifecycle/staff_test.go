package lifecycle

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staff-bot/model"
	"staff-bot/store"
)

func TestPromote(t *testing.T) {
	t.Run("revokes lower tiers and grants target", func(t *testing.T) {
		e, _, roles, _, audit := newTestEngine(t)
		cfg := testConfig()
		roles.members["u1"] = []string{"role-staff", "unrelated"}

		require.NoError(t, e.Promote("g1", "u1", model.TierHR, "admin1", cfg))
		assert.Equal(t, []string{"role-staff"}, roles.removed)
		assert.Equal(t, []string{"role-hr"}, roles.added)
		assert.Contains(t, roles.members["u1"], "unrelated")
		assert.Equal(t, "Staff Promoted", audit.lastAction())
	})

	t.Run("promotion to admin leaves no lower tier roles", func(t *testing.T) {
		e, _, roles, _, _ := newTestEngine(t)
		cfg := testConfig()
		roles.members["u1"] = []string{"role-staff", "role-hr"}

		require.NoError(t, e.Promote("g1", "u1", model.TierAdmin, "owner1", cfg))
		assert.NotContains(t, roles.members["u1"], "role-staff")
		assert.NotContains(t, roles.members["u1"], "role-hr")
		assert.Contains(t, roles.members["u1"], "role-admin")
	})

	t.Run("fails when target role unconfigured", func(t *testing.T) {
		e, _, _, _, _ := newTestEngine(t)
		cfg := model.DefaultGuildConfig()

		err := e.Promote("g1", "u1", model.TierHR, "admin1", &cfg)
		assert.ErrorIs(t, err, ErrRoleNotConfigured)
	})

	t.Run("skips unconfigured lower tiers", func(t *testing.T) {
		e, _, roles, _, _ := newTestEngine(t)
		cfg := testConfig()
		cfg.Roles.Staff = ""
		roles.members["u1"] = []string{"role-hr"}

		require.NoError(t, e.Promote("g1", "u1", model.TierAdmin, "owner1", cfg))
		assert.Equal(t, []string{"role-hr"}, roles.removed)
	})
}

func TestDemote(t *testing.T) {
	t.Run("drops elevated tiers and backfills staff", func(t *testing.T) {
		e, _, roles, _, audit := newTestEngine(t)
		cfg := testConfig()
		roles.members["u1"] = []string{"role-admin"}

		require.NoError(t, e.Demote("g1", "u1", "owner1", cfg))
		assert.NotContains(t, roles.members["u1"], "role-admin")
		assert.Contains(t, roles.members["u1"], "role-staff")
		assert.Equal(t, "Staff Demoted", audit.lastAction())
	})

	t.Run("does not duplicate a held staff role", func(t *testing.T) {
		e, _, roles, _, _ := newTestEngine(t)
		cfg := testConfig()
		roles.members["u1"] = []string{"role-hr", "role-staff"}

		require.NoError(t, e.Demote("g1", "u1", "owner1", cfg))
		assert.Empty(t, roles.added)
		assert.Equal(t, []string{"role-staff"}, roles.members["u1"])
	})

	t.Run("no-op demotion is still audited", func(t *testing.T) {
		e, _, roles, _, audit := newTestEngine(t)
		cfg := testConfig()
		roles.members["u1"] = []string{"unrelated"}

		require.NoError(t, e.Demote("g1", "u1", "owner1", cfg))
		assert.Empty(t, roles.removed)
		assert.Empty(t, roles.added)
		assert.Equal(t, "Staff Demoted", audit.lastAction())
	})
}

func TestTerminate(t *testing.T) {
	t.Run("removes held tiers and records them", func(t *testing.T) {
		e, db, roles, notify, audit := newTestEngine(t)
		cfg := testConfig()
		roles.members["u1"] = []string{"role-staff", "role-hr", "unrelated"}

		removed, err := e.Terminate("g1", "u1", "inactivity", "admin1", cfg)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"role-staff", "role-hr"}, removed)
		assert.Equal(t, []string{"unrelated"}, roles.members["u1"])
		assert.Equal(t, "Staff Terminated", audit.lastAction())
		assert.NotEmpty(t, notify.messages)

		records, err := store.GetTerminationsByUser(db, "g1", "u1")
		require.NoError(t, err)
		require.Len(t, records, 1)

		var recorded []string
		require.NoError(t, json.Unmarshal([]byte(records[0].RolesRemovedJSON), &recorded))
		assert.ElementsMatch(t, []string{"role-staff", "role-hr"}, recorded)
	})

	t.Run("roleless member still gets a record", func(t *testing.T) {
		e, db, _, _, _ := newTestEngine(t)

		removed, err := e.Terminate("g1", "u1", "cleanup", "admin1", testConfig())
		require.NoError(t, err)
		assert.Empty(t, removed)

		records, err := store.GetTerminationsByUser(db, "g1", "u1")
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "[]", records[0].RolesRemovedJSON)
	})
}
