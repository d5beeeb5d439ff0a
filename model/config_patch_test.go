package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func TestPatchFromKey(t *testing.T) {
	t.Run("role keys", func(t *testing.T) {
		patch, err := PatchFromKey("roles.hr", "123")
		require.NoError(t, err)
		require.NotNil(t, patch.Roles)
		assert.Equal(t, "123", *patch.Roles.HR)
		assert.Nil(t, patch.Roles.Staff)
	})

	t.Run("feature keys parse booleans", func(t *testing.T) {
		patch, err := PatchFromKey("features.loaEnabled", "false")
		require.NoError(t, err)
		require.NotNil(t, patch.Features)
		assert.False(t, *patch.Features.LoaEnabled)

		_, err = PatchFromKey("features.loaEnabled", "maybe")
		assert.Error(t, err)
	})

	t.Run("rejects unknown keys", func(t *testing.T) {
		_, err := PatchFromKey("roles.janitor", "123")
		assert.Error(t, err)
		_, err = PatchFromKey("", "123")
		assert.Error(t, err)
	})

	t.Run("rejects empty values", func(t *testing.T) {
		_, err := PatchFromKey("prefix", "")
		assert.Error(t, err)
	})
}

func TestPatchMerge(t *testing.T) {
	t.Run("set fields win, unset fields survive", func(t *testing.T) {
		base := &GuildConfigPatch{
			Prefix: strptr("!"),
			Roles:  &RoleConfigPatch{Staff: strptr("100"), HR: strptr("200")},
		}
		base.Merge(&GuildConfigPatch{
			Roles: &RoleConfigPatch{HR: strptr("250")},
		})

		assert.Equal(t, "!", *base.Prefix)
		assert.Equal(t, "100", *base.Roles.Staff)
		assert.Equal(t, "250", *base.Roles.HR)
	})

	t.Run("merging into an empty patch", func(t *testing.T) {
		base := &GuildConfigPatch{}
		base.Merge(&GuildConfigPatch{Channels: &ChannelConfigPatch{StaffLog: strptr("300")}})

		require.NotNil(t, base.Channels)
		assert.Equal(t, "300", *base.Channels.StaffLog)
	})

	t.Run("nil merge is a no-op", func(t *testing.T) {
		base := &GuildConfigPatch{Prefix: strptr("!")}
		base.Merge(nil)
		assert.Equal(t, "!", *base.Prefix)
	})
}

func TestPatchApply(t *testing.T) {
	t.Run("overlays only set fields", func(t *testing.T) {
		cfg := DefaultGuildConfig()
		disabled := false
		patch := &GuildConfigPatch{
			Roles:    &RoleConfigPatch{Admin: strptr("900")},
			Features: &FeatureConfigPatch{ApplicationsEnabled: &disabled},
		}
		patch.Apply(&cfg)

		assert.Equal(t, "900", cfg.Roles.Admin)
		assert.Equal(t, "", cfg.Roles.Staff)
		assert.False(t, cfg.Features.ApplicationsEnabled)
		assert.True(t, cfg.Features.LoaEnabled)
		assert.Equal(t, DefaultPrefix, cfg.Prefix)
	})

	t.Run("nil patch leaves defaults intact", func(t *testing.T) {
		cfg := DefaultGuildConfig()
		var patch *GuildConfigPatch
		patch.Apply(&cfg)
		assert.Equal(t, DefaultGuildConfig(), cfg)
	})
}
