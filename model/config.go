package model

// DefaultPrefix is used for prefix commands until a guild overrides it.
const DefaultPrefix = "-"

// RoleConfig holds the configured role ID for each staff tier. An empty
// string means the tier is not configured for the guild.
type RoleConfig struct {
	Staff string `json:"staff,omitempty"`
	HR    string `json:"hr,omitempty"`
	Admin string `json:"admin,omitempty"`
	Owner string `json:"owner,omitempty"`
}

// ChannelConfig holds the configured channel IDs for the guild.
type ChannelConfig struct {
	Applications  string `json:"applications,omitempty"`
	StaffLog      string `json:"staffLog,omitempty"`
	Announcements string `json:"announcements,omitempty"`
	Feedback      string `json:"feedback,omitempty"`
}

// FeatureConfig toggles optional subsystems per guild.
type FeatureConfig struct {
	ApplicationsEnabled bool `json:"applicationsEnabled"`
	LoaEnabled          bool `json:"loaEnabled"`
	RemindersEnabled    bool `json:"remindersEnabled"`
}

// GuildConfig is the fully resolved per-guild configuration: stored values
// merged over defaults, so no field is ever absent.
type GuildConfig struct {
	Prefix   string        `json:"prefix"`
	Roles    RoleConfig    `json:"roles"`
	Channels ChannelConfig `json:"channels"`
	Features FeatureConfig `json:"features"`
}

// DefaultGuildConfig returns the documented defaults: no roles or channels
// configured, all features enabled.
func DefaultGuildConfig() GuildConfig {
	return GuildConfig{
		Prefix: DefaultPrefix,
		Features: FeatureConfig{
			ApplicationsEnabled: true,
			LoaEnabled:          true,
			RemindersEnabled:    true,
		},
	}
}

// RoleID returns the configured role ID for a tier, or "" if unset.
func (c *GuildConfig) RoleID(t Tier) string {
	switch t {
	case TierStaff:
		return c.Roles.Staff
	case TierHR:
		return c.Roles.HR
	case TierAdmin:
		return c.Roles.Admin
	case TierOwner:
		return c.Roles.Owner
	}
	return ""
}
