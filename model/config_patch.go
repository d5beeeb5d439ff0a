package model

import (
	"fmt"
	"strconv"
)

// GuildConfigPatch is the sparse form stored per guild: only fields that
// were ever set are present. Nil means "keep the default / prior value".
type GuildConfigPatch struct {
	Prefix   *string            `json:"prefix,omitempty"`
	Roles    *RoleConfigPatch   `json:"roles,omitempty"`
	Channels *ChannelConfigPatch `json:"channels,omitempty"`
	Features *FeatureConfigPatch `json:"features,omitempty"`
}

type RoleConfigPatch struct {
	Staff *string `json:"staff,omitempty"`
	HR    *string `json:"hr,omitempty"`
	Admin *string `json:"admin,omitempty"`
	Owner *string `json:"owner,omitempty"`
}

type ChannelConfigPatch struct {
	Applications  *string `json:"applications,omitempty"`
	StaffLog      *string `json:"staffLog,omitempty"`
	Announcements *string `json:"announcements,omitempty"`
	Feedback      *string `json:"feedback,omitempty"`
}

type FeatureConfigPatch struct {
	ApplicationsEnabled *bool `json:"applicationsEnabled,omitempty"`
	LoaEnabled          *bool `json:"loaEnabled,omitempty"`
	RemindersEnabled    *bool `json:"remindersEnabled,omitempty"`
}

// Merge folds other into p field-by-field: set fields in other win, unset
// fields keep p's value. Sibling fields of a partially-set nested object
// are never clobbered.
func (p *GuildConfigPatch) Merge(other *GuildConfigPatch) {
	if other == nil {
		return
	}
	if other.Prefix != nil {
		p.Prefix = other.Prefix
	}
	if other.Roles != nil {
		if p.Roles == nil {
			p.Roles = &RoleConfigPatch{}
		}
		if other.Roles.Staff != nil {
			p.Roles.Staff = other.Roles.Staff
		}
		if other.Roles.HR != nil {
			p.Roles.HR = other.Roles.HR
		}
		if other.Roles.Admin != nil {
			p.Roles.Admin = other.Roles.Admin
		}
		if other.Roles.Owner != nil {
			p.Roles.Owner = other.Roles.Owner
		}
	}
	if other.Channels != nil {
		if p.Channels == nil {
			p.Channels = &ChannelConfigPatch{}
		}
		if other.Channels.Applications != nil {
			p.Channels.Applications = other.Channels.Applications
		}
		if other.Channels.StaffLog != nil {
			p.Channels.StaffLog = other.Channels.StaffLog
		}
		if other.Channels.Announcements != nil {
			p.Channels.Announcements = other.Channels.Announcements
		}
		if other.Channels.Feedback != nil {
			p.Channels.Feedback = other.Channels.Feedback
		}
	}
	if other.Features != nil {
		if p.Features == nil {
			p.Features = &FeatureConfigPatch{}
		}
		if other.Features.ApplicationsEnabled != nil {
			p.Features.ApplicationsEnabled = other.Features.ApplicationsEnabled
		}
		if other.Features.LoaEnabled != nil {
			p.Features.LoaEnabled = other.Features.LoaEnabled
		}
		if other.Features.RemindersEnabled != nil {
			p.Features.RemindersEnabled = other.Features.RemindersEnabled
		}
	}
}

// Apply overlays the patch onto a resolved config.
func (p *GuildConfigPatch) Apply(cfg *GuildConfig) {
	if p == nil {
		return
	}
	if p.Prefix != nil {
		cfg.Prefix = *p.Prefix
	}
	if p.Roles != nil {
		if p.Roles.Staff != nil {
			cfg.Roles.Staff = *p.Roles.Staff
		}
		if p.Roles.HR != nil {
			cfg.Roles.HR = *p.Roles.HR
		}
		if p.Roles.Admin != nil {
			cfg.Roles.Admin = *p.Roles.Admin
		}
		if p.Roles.Owner != nil {
			cfg.Roles.Owner = *p.Roles.Owner
		}
	}
	if p.Channels != nil {
		if p.Channels.Applications != nil {
			cfg.Channels.Applications = *p.Channels.Applications
		}
		if p.Channels.StaffLog != nil {
			cfg.Channels.StaffLog = *p.Channels.StaffLog
		}
		if p.Channels.Announcements != nil {
			cfg.Channels.Announcements = *p.Channels.Announcements
		}
		if p.Channels.Feedback != nil {
			cfg.Channels.Feedback = *p.Channels.Feedback
		}
	}
	if p.Features != nil {
		if p.Features.ApplicationsEnabled != nil {
			cfg.Features.ApplicationsEnabled = *p.Features.ApplicationsEnabled
		}
		if p.Features.LoaEnabled != nil {
			cfg.Features.LoaEnabled = *p.Features.LoaEnabled
		}
		if p.Features.RemindersEnabled != nil {
			cfg.Features.RemindersEnabled = *p.Features.RemindersEnabled
		}
	}
}

// PatchFromKey translates a dotted config key ("roles.hr",
// "channels.staffLog", "features.loaEnabled", "prefix") and its string
// value into a patch touching exactly that field. Keys outside the fixed
// schema are rejected.
func PatchFromKey(key, value string) (*GuildConfigPatch, error) {
	if value == "" {
		return nil, fmt.Errorf("config value for %q must not be empty", key)
	}
	switch key {
	case "prefix":
		return &GuildConfigPatch{Prefix: &value}, nil
	case "roles.staff":
		return &GuildConfigPatch{Roles: &RoleConfigPatch{Staff: &value}}, nil
	case "roles.hr":
		return &GuildConfigPatch{Roles: &RoleConfigPatch{HR: &value}}, nil
	case "roles.admin":
		return &GuildConfigPatch{Roles: &RoleConfigPatch{Admin: &value}}, nil
	case "roles.owner":
		return &GuildConfigPatch{Roles: &RoleConfigPatch{Owner: &value}}, nil
	case "channels.applications":
		return &GuildConfigPatch{Channels: &ChannelConfigPatch{Applications: &value}}, nil
	case "channels.staffLog":
		return &GuildConfigPatch{Channels: &ChannelConfigPatch{StaffLog: &value}}, nil
	case "channels.announcements":
		return &GuildConfigPatch{Channels: &ChannelConfigPatch{Announcements: &value}}, nil
	case "channels.feedback":
		return &GuildConfigPatch{Channels: &ChannelConfigPatch{Feedback: &value}}, nil
	case "features.applicationsEnabled", "features.loaEnabled", "features.remindersEnabled":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("config value for %q must be true or false", key)
		}
		fp := &FeatureConfigPatch{}
		switch key {
		case "features.applicationsEnabled":
			fp.ApplicationsEnabled = &b
		case "features.loaEnabled":
			fp.LoaEnabled = &b
		case "features.remindersEnabled":
			fp.RemindersEnabled = &b
		}
		return &GuildConfigPatch{Features: fp}, nil
	}
	return nil, fmt.Errorf("unknown config key %q", key)
}
