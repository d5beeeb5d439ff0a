package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staff-bot/model"
)

func loa(guildID, userID, status string) model.LoaRecord {
	return model.LoaRecord{
		UserID:      userID,
		GuildID:     guildID,
		Duration:    "1 week",
		Reason:      "vacation",
		RequestedAt: time.Now().Unix(),
		Status:      status,
	}
}

func TestLoaPendingUniqueness(t *testing.T) {
	db := testDB(t)

	_, err := InsertLoa(db, loa("g1", "u1", model.StatusPending))
	require.NoError(t, err)

	// The partial unique index rejects a second pending row even when the
	// caller skipped the pre-check.
	_, err = InsertLoa(db, loa("g1", "u1", model.StatusPending))
	assert.True(t, IsUniqueViolation(err))
	assert.False(t, IsUniqueViolation(nil))

	// Resolved rows never block a new request.
	ok, err := MarkLoaDenied(db, "g1", "u1", "hr1", "busy season", time.Now().Unix())
	require.NoError(t, err)
	require.True(t, ok)

	_, err = InsertLoa(db, loa("g1", "u1", model.StatusPending))
	assert.NoError(t, err)
}

func TestLoaTransitions(t *testing.T) {
	db := testDB(t)
	now := time.Now().Unix()

	_, err := InsertLoa(db, loa("g1", "u1", model.StatusPending))
	require.NoError(t, err)

	t.Run("approve consumes the pending row", func(t *testing.T) {
		ok, err := MarkLoaApproved(db, "g1", "u1", "hr1", now)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = MarkLoaApproved(db, "g1", "u1", "hr1", now)
		require.NoError(t, err)
		assert.False(t, ok, "no pending row left to approve")
	})

	t.Run("approved rows are listed per guild and globally", func(t *testing.T) {
		_, err := InsertLoa(db, loa("g2", "u2", model.StatusPending))
		require.NoError(t, err)
		ok, err := MarkLoaApproved(db, "g2", "u2", "hr2", now)
		require.NoError(t, err)
		require.True(t, ok)

		all, err := ListApprovedLoas(db)
		require.NoError(t, err)
		assert.Len(t, all, 2)

		byGuild, err := ListApprovedLoasByGuild(db, "g1")
		require.NoError(t, err)
		require.Len(t, byGuild, 1)
		assert.Equal(t, "u1", byGuild[0].UserID)
	})

	t.Run("expiry only touches approved rows", func(t *testing.T) {
		byGuild, err := ListApprovedLoasByGuild(db, "g1")
		require.NoError(t, err)
		require.Len(t, byGuild, 1)

		ok, err := MarkLoaExpired(db, byGuild[0].ID, now)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = MarkLoaExpired(db, byGuild[0].ID, now)
		require.NoError(t, err)
		assert.False(t, ok, "already expired")
	})
}
