package lifecycle

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"staff-bot/model"
	"staff-bot/store"
	"staff-bot/utils"
)

// Engine drives the application and LOA state machines and the staff role
// transitions. Every successful transition fans out to the notifier and
// the auditor; notification failures never roll anything back.
type Engine struct {
	db          *sqlx.DB
	roles       RoleManager
	notify      Notifier
	audit       Auditor
	loaFallback time.Duration
}

// NewEngine wires the engine to its storage handle and collaborators.
// loaFallback is the expiry window applied to approved leave requests
// whose free-text duration cannot be parsed.
func NewEngine(db *sqlx.DB, roles RoleManager, notify Notifier, audit Auditor, loaFallback time.Duration) *Engine {
	return &Engine{
		db:          db,
		roles:       roles,
		notify:      notify,
		audit:       audit,
		loaFallback: loaFallback,
	}
}

// ApplicationForm carries the five modal fields of a staff application.
type ApplicationForm struct {
	Name         string
	Age          string
	Experience   string
	Motivation   string
	Availability string
}

// SubmitApplication creates a new pending application. Fails with
// ErrDuplicatePending while an earlier application is still pending.
func (e *Engine) SubmitApplication(guildID, userID string, form ApplicationForm) (*model.ApplicationRecord, error) {
	existing, err := store.GetPendingApplication(e.db, guildID, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicatePending
	}

	record := model.ApplicationRecord{
		UserID:       userID,
		GuildID:      guildID,
		Name:         form.Name,
		Age:          form.Age,
		Experience:   form.Experience,
		Motivation:   form.Motivation,
		Availability: form.Availability,
		SubmittedAt:  time.Now().Unix(),
		Status:       model.StatusPending,
	}
	id, err := store.InsertApplication(e.db, record)
	if store.IsUniqueViolation(err) {
		// Lost the race to a concurrent submission; the partial unique
		// index kept the invariant.
		return nil, ErrDuplicatePending
	}
	if err != nil {
		return nil, err
	}
	record.ID = id
	return &record, nil
}

// ApproveApplication grants the configured role for tier and transitions
// the pending application to approved. The grant and the transition are
// one unit: a failed grant surfaces ErrGrantFailed and leaves the record
// pending.
func (e *Engine) ApproveApplication(guildID, userID string, tier model.Tier, actorID string, cfg *model.GuildConfig) error {
	roleID := cfg.RoleID(tier)
	if roleID == "" {
		return fmt.Errorf("%s: %w", tier, ErrRoleNotConfigured)
	}

	pending, err := store.GetPendingApplication(e.db, guildID, userID)
	if err != nil {
		return err
	}
	if pending == nil {
		return ErrNotFound
	}

	if err := e.roles.AddRole(guildID, userID, roleID); err != nil {
		return fmt.Errorf("%w: %v", ErrGrantFailed, err)
	}

	ok, err := store.MarkApplicationApproved(e.db, guildID, userID, actorID, time.Now().Unix())
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}

	delivered := e.notify.DirectMessage(userID,
		fmt.Sprintf("🎉 Congratulations! Your staff application has been approved. You've been assigned the %s role.", tier))
	if !delivered {
		log.Printf("Approval notification for user %s undeliverable", userID)
	}
	e.audit.Action(guildID, "Application Approved", userID, actorID, utils.ColorSuccess, "",
		map[string]string{"Role Assigned": tier.String()})
	return nil
}

// DenyApplication transitions the pending application to denied. A
// non-empty reason is required.
func (e *Engine) DenyApplication(guildID, userID, reason, actorID string) error {
	if strings.TrimSpace(reason) == "" {
		return ErrReasonRequired
	}

	pending, err := store.GetPendingApplication(e.db, guildID, userID)
	if err != nil {
		return err
	}
	if pending == nil {
		return ErrNotFound
	}

	ok, err := store.MarkApplicationDenied(e.db, guildID, userID, actorID, reason, time.Now().Unix())
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}

	delivered := e.notify.DirectMessage(userID,
		fmt.Sprintf("Your staff application has been reviewed. Unfortunately, it was not approved at this time.\n\nFeedback: %s", reason))
	if !delivered {
		log.Printf("Denial notification for user %s undeliverable", userID)
	}
	e.audit.Action(guildID, "Application Denied", userID, actorID, utils.ColorDanger, reason, nil)
	return nil
}

// RequestLoa creates a new pending leave request. Fails with
// ErrDuplicatePending while an earlier request is still pending.
func (e *Engine) RequestLoa(guildID, userID, duration, reason string) (*model.LoaRecord, error) {
	existing, err := store.GetPendingLoa(e.db, guildID, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicatePending
	}

	record := model.LoaRecord{
		UserID:      userID,
		GuildID:     guildID,
		Duration:    duration,
		Reason:      reason,
		RequestedAt: time.Now().Unix(),
		Status:      model.StatusPending,
	}
	id, err := store.InsertLoa(e.db, record)
	if store.IsUniqueViolation(err) {
		return nil, ErrDuplicatePending
	}
	if err != nil {
		return nil, err
	}
	record.ID = id

	e.audit.Action(guildID, "LOA Requested", userID, userID, utils.ColorLoa, reason,
		map[string]string{"Duration": duration})
	return &record, nil
}

// ApproveLoa transitions the pending request to approved. Pure status
// transition, no role side effect.
func (e *Engine) ApproveLoa(guildID, userID, actorID string) error {
	ok, err := store.MarkLoaApproved(e.db, guildID, userID, actorID, time.Now().Unix())
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}

	delivered := e.notify.DirectMessage(userID, "Your LOA request has been approved. Take the time you need!")
	if !delivered {
		log.Printf("LOA approval notification for user %s undeliverable", userID)
	}
	e.audit.Action(guildID, "LOA Approved", userID, actorID, utils.ColorSuccess, "", nil)
	return nil
}

// DenyLoa transitions the pending request to denied.
func (e *Engine) DenyLoa(guildID, userID, reason, actorID string) error {
	if strings.TrimSpace(reason) == "" {
		return ErrReasonRequired
	}

	ok, err := store.MarkLoaDenied(e.db, guildID, userID, actorID, reason, time.Now().Unix())
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}

	delivered := e.notify.DirectMessage(userID, fmt.Sprintf("Your LOA request has been denied. Reason: %s", reason))
	if !delivered {
		log.Printf("LOA denial notification for user %s undeliverable", userID)
	}
	e.audit.Action(guildID, "LOA Denied", userID, actorID, utils.ColorDanger, reason, nil)
	return nil
}

// SweepExpiredLoas expires approved leave requests whose window has
// elapsed: approvedAt plus the parsed duration, or the fallback window
// when the free text does not parse. Only approved records are touched,
// so re-running the sweep is a no-op. Returns how many records expired.
func (e *Engine) SweepExpiredLoas(now time.Time) (int, error) {
	records, err := store.ListApprovedLoas(e.db)
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, record := range records {
		window, ok := utils.ParseLeaveDuration(record.Duration)
		if !ok {
			window = e.loaFallback
		}
		deadline := time.Unix(record.ApprovedAt, 0).Add(window)
		if now.Before(deadline) {
			continue
		}

		ok, err := store.MarkLoaExpired(e.db, record.ID, now.Unix())
		if err != nil {
			// One bad record must not abort the rest of the sweep.
			log.Printf("Failed to expire LOA %d in guild %s: %v", record.ID, record.GuildID, err)
			continue
		}
		if ok {
			expired++
		}
	}
	return expired, nil
}
