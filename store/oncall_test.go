package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOnCall(t *testing.T) {
	db := testDB(t)
	now := time.Now().Unix()

	t.Run("set and list", func(t *testing.T) {
		require.NoError(t, SetOnCall(db, "g1", "u1", now))
		require.NoError(t, SetOnCall(db, "g1", "u2", now))

		records, err := ListOnCall(db, "g1")
		require.NoError(t, err)
		assert.Len(t, records, 2)
	})

	t.Run("set is idempotent", func(t *testing.T) {
		require.NoError(t, SetOnCall(db, "g1", "u1", now+60))

		records, err := ListOnCall(db, "g1")
		require.NoError(t, err)
		assert.Len(t, records, 2)
	})

	t.Run("unset hides the member without losing the row", func(t *testing.T) {
		require.NoError(t, UnsetOnCall(db, "g1", "u1", now+120))

		records, err := ListOnCall(db, "g1")
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "u2", records[0].UserID)

		require.NoError(t, SetOnCall(db, "g1", "u1", now+180))
		records, err = ListOnCall(db, "g1")
		require.NoError(t, err)
		assert.Len(t, records, 2)
	})

	t.Run("guilds are isolated", func(t *testing.T) {
		records, err := ListOnCall(db, "g2")
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}
