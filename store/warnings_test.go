package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staff-bot/model"
)

func warning(guildID, userID, reason string, issuedAt int64) model.WarningRecord {
	return model.WarningRecord{
		UserID:   userID,
		GuildID:  guildID,
		Reason:   reason,
		IssuedBy: "hr1",
		IssuedAt: issuedAt,
	}
}

func TestWarnings(t *testing.T) {
	db := testDB(t)
	now := time.Now().Unix()

	t.Run("insert and count", func(t *testing.T) {
		_, err := InsertWarning(db, warning("g1", "u1", "late", now))
		require.NoError(t, err)
		_, err = InsertWarning(db, warning("g1", "u1", "rude", now+1))
		require.NoError(t, err)
		_, err = InsertWarning(db, warning("g1", "u2", "late", now))
		require.NoError(t, err)

		count, err := CountWarnings(db, "g1", "u1")
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("listing is newest first and respects limit", func(t *testing.T) {
		records, err := GetWarningsByUser(db, "g1", "u1", 10)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "rude", records[0].Reason)

		records, err = GetWarningsByUser(db, "g1", "u1", 1)
		require.NoError(t, err)
		assert.Len(t, records, 1)
	})

	t.Run("clear removes only the target user", func(t *testing.T) {
		cleared, err := ClearWarnings(db, "g1", "u1")
		require.NoError(t, err)
		assert.EqualValues(t, 2, cleared)

		count, err := CountWarnings(db, "g1", "u1")
		require.NoError(t, err)
		assert.Zero(t, count)

		count, err = CountWarnings(db, "g1", "u2")
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("clearing a clean record is a zero no-op", func(t *testing.T) {
		cleared, err := ClearWarnings(db, "g1", "u-clean")
		require.NoError(t, err)
		assert.Zero(t, cleared)
	})
}
