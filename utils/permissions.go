package utils

import "staff-bot/model"

func contains(slice []string, item string) bool {
	for _, a := range slice {
		if a == item {
			return true
		}
	}
	return false
}

// HasPermission reports whether a member satisfies the required tier.
// The required tier's role must be configured; with it unset, no role
// grants access. A member qualifies by holding that role or the
// configured role of any tier above it (the scan is inclusive: hr
// accepts hr, admin and owner roles), with unconfigured higher tiers
// skipped. Platform administrators always pass.
func HasPermission(memberRoles []string, isAdministrator bool, required model.Tier, cfg *model.GuildConfig) bool {
	if cfg.RoleID(required) == "" {
		return isAdministrator
	}
	for t := required; t <= model.TierOwner; t++ {
		roleID := cfg.RoleID(t)
		if roleID != "" && contains(memberRoles, roleID) {
			return true
		}
	}
	return isAdministrator
}
