package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTier(t *testing.T) {
	for name, want := range map[string]Tier{
		"staff": TierStaff,
		"hr":    TierHR,
		"admin": TierAdmin,
		"owner": TierOwner,
	} {
		tier, ok := ParseTier(name)
		assert.True(t, ok)
		assert.Equal(t, want, tier)
		assert.Equal(t, name, tier.String())
	}

	_, ok := ParseTier("janitor")
	assert.False(t, ok)
	_, ok = ParseTier("")
	assert.False(t, ok)
}

func TestTierOrdering(t *testing.T) {
	assert.True(t, TierStaff < TierHR)
	assert.True(t, TierHR < TierAdmin)
	assert.True(t, TierAdmin < TierOwner)
}
