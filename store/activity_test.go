package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staff-bot/model"
)

func activity(guildID, userID string, hours int, loggedAt int64) model.ActivityLogRecord {
	return model.ActivityLogRecord{
		UserID:   userID,
		GuildID:  guildID,
		Activity: "handled tickets",
		Hours:    hours,
		LoggedAt: loggedAt,
	}
}

func TestActivity(t *testing.T) {
	db := testDB(t)
	now := time.Now().Unix()
	weekAgo := now - 7*24*3600

	_, err := InsertActivity(db, activity("g1", "u1", 2, now))
	require.NoError(t, err)
	_, err = InsertActivity(db, activity("g1", "u1", 3, now-3600))
	require.NoError(t, err)
	_, err = InsertActivity(db, activity("g1", "u2", 1, now))
	require.NoError(t, err)
	_, err = InsertActivity(db, activity("g1", "u1", 8, weekAgo-3600))
	require.NoError(t, err)

	t.Run("window filters by user and time", func(t *testing.T) {
		entries, err := GetActivitySince(db, "g1", "u1", weekAgo, 10)
		require.NoError(t, err)
		assert.Len(t, entries, 2)

		entries, err = GetActivitySince(db, "g1", "", weekAgo, 10)
		require.NoError(t, err)
		assert.Len(t, entries, 3)
	})

	t.Run("totals aggregate per user", func(t *testing.T) {
		totals, err := ActivityTotals(db, "g1", weekAgo)
		require.NoError(t, err)
		require.Len(t, totals, 2)
		assert.Equal(t, model.ActivitySummary{Count: 2, Hours: 5}, totals["u1"])
		assert.Equal(t, model.ActivitySummary{Count: 1, Hours: 1}, totals["u2"])
	})

	t.Run("empty guild has no totals", func(t *testing.T) {
		totals, err := ActivityTotals(db, "g2", weekAgo)
		require.NoError(t, err)
		assert.Empty(t, totals)
	})
}
