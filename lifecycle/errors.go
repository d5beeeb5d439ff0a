package lifecycle

import "errors"

// Sentinel errors surfaced to command handlers. Each maps to a distinct
// user-visible failure message.
var (
	// ErrDuplicatePending: a (user, guild) pair already has a pending
	// application or leave request.
	ErrDuplicatePending = errors.New("a pending request already exists")

	// ErrNotFound: no matching pending record, tag or configured target.
	ErrNotFound = errors.New("no matching record found")

	// ErrRoleNotConfigured: the guild has not configured the role needed
	// for the requested action.
	ErrRoleNotConfigured = errors.New("role not configured for this guild")

	// ErrGrantFailed: a membership mutation failed downstream; the record
	// is left in its prior state.
	ErrGrantFailed = errors.New("failed to modify member roles")

	// ErrReasonRequired: a denial was attempted without a reason.
	ErrReasonRequired = errors.New("a denial reason is required")
)
