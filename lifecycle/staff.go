package lifecycle

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"staff-bot/model"
	"staff-bot/store"
	"staff-bot/utils"
)

func holds(roles []string, roleID string) bool {
	for _, r := range roles {
		if r == roleID {
			return true
		}
	}
	return false
}

// Promote revokes every configured tier role strictly below target that
// the member holds, then grants the target role.
func (e *Engine) Promote(guildID, userID string, target model.Tier, actorID string, cfg *model.GuildConfig) error {
	targetRoleID := cfg.RoleID(target)
	if targetRoleID == "" {
		return fmt.Errorf("%s: %w", target, ErrRoleNotConfigured)
	}

	memberRoles, err := e.roles.MemberRoles(guildID, userID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrGrantFailed, err)
	}

	for t := model.TierStaff; t < target; t++ {
		roleID := cfg.RoleID(t)
		if roleID == "" || !holds(memberRoles, roleID) {
			continue
		}
		if err := e.roles.RemoveRole(guildID, userID, roleID); err != nil {
			return fmt.Errorf("%w: %v", ErrGrantFailed, err)
		}
	}
	if err := e.roles.AddRole(guildID, userID, targetRoleID); err != nil {
		return fmt.Errorf("%w: %v", ErrGrantFailed, err)
	}

	e.audit.Action(guildID, "Staff Promoted", userID, actorID, utils.ColorSuccess, "",
		map[string]string{"New Role": target.String()})
	return nil
}

// Demote revokes the admin and hr roles if held and backfills the staff
// role when any were revoked. A member holding neither is a no-op that is
// still logged.
func (e *Engine) Demote(guildID, userID, actorID string, cfg *model.GuildConfig) error {
	memberRoles, err := e.roles.MemberRoles(guildID, userID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrGrantFailed, err)
	}

	removed := 0
	for _, t := range []model.Tier{model.TierAdmin, model.TierHR} {
		roleID := cfg.RoleID(t)
		if roleID == "" || !holds(memberRoles, roleID) {
			continue
		}
		if err := e.roles.RemoveRole(guildID, userID, roleID); err != nil {
			return fmt.Errorf("%w: %v", ErrGrantFailed, err)
		}
		removed++
	}

	if removed > 0 && cfg.Roles.Staff != "" && !holds(memberRoles, cfg.Roles.Staff) {
		if err := e.roles.AddRole(guildID, userID, cfg.Roles.Staff); err != nil {
			return fmt.Errorf("%w: %v", ErrGrantFailed, err)
		}
	}

	e.audit.Action(guildID, "Staff Demoted", userID, actorID, utils.ColorWarning, "",
		map[string]string{"Roles Removed": fmt.Sprintf("%d", removed)})
	return nil
}

// Terminate revokes every staff-tier role the member holds, appends a
// termination record capturing exactly which were removed, notifies the
// user and writes an audit entry. Terminating an already roleless member
// removes nothing but still records the event.
func (e *Engine) Terminate(guildID, userID, reason, actorID string, cfg *model.GuildConfig) ([]string, error) {
	memberRoles, err := e.roles.MemberRoles(guildID, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGrantFailed, err)
	}

	var removed []string
	for _, t := range []model.Tier{model.TierStaff, model.TierHR, model.TierAdmin} {
		roleID := cfg.RoleID(t)
		if roleID == "" || !holds(memberRoles, roleID) {
			continue
		}
		if err := e.roles.RemoveRole(guildID, userID, roleID); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrGrantFailed, err)
		}
		removed = append(removed, roleID)
	}

	removedJSON, err := json.Marshal(removed)
	if err != nil {
		return nil, fmt.Errorf("failed to encode removed roles: %w", err)
	}
	if removed == nil {
		removedJSON = []byte("[]")
	}

	record := model.TerminationRecord{
		UserID:           userID,
		GuildID:          guildID,
		Reason:           reason,
		TerminatedBy:     actorID,
		TerminatedAt:     time.Now().Unix(),
		RolesRemovedJSON: string(removedJSON),
	}
	if _, err := store.InsertTermination(e.db, record); err != nil {
		return nil, err
	}

	delivered := e.notify.DirectMessage(userID,
		fmt.Sprintf("Your staff position has been terminated.\nReason: %s", reason))
	if !delivered {
		log.Printf("Termination notification for user %s undeliverable", userID)
	}
	e.audit.Action(guildID, "Staff Terminated", userID, actorID, utils.ColorDanger, reason,
		map[string]string{"Roles Removed": fmt.Sprintf("%d", len(removed))})
	return removed, nil
}
