package model

// Lifecycle statuses shared by applications and LOA requests.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusDenied   = "denied"
	StatusExpired  = "expired"
)

// ApplicationRecord is one staff application submission. A (user, guild)
// pair has at most one pending record at a time; approval and denial are
// terminal.
type ApplicationRecord struct {
	ID           int64  `db:"application_id"`
	UserID       string `db:"user_id"`
	GuildID      string `db:"guild_id"`
	Name         string `db:"name"`
	Age          string `db:"age"`
	Experience   string `db:"experience"`
	Motivation   string `db:"motivation"`
	Availability string `db:"availability"`
	SubmittedAt  int64  `db:"submitted_at"`
	Status       string `db:"status"`
	ApprovedBy   string `db:"approved_by"`
	ApprovedAt   int64  `db:"approved_at"`
	DeniedBy     string `db:"denied_by"`
	DeniedAt     int64  `db:"denied_at"`
	DenialReason string `db:"denial_reason"`
}

// WarningRecord is one infraction. Append-only; removable only via the
// bulk clear operation.
type WarningRecord struct {
	ID       int64  `db:"warning_id"`
	UserID   string `db:"user_id"`
	GuildID  string `db:"guild_id"`
	Reason   string `db:"reason"`
	Proof    string `db:"proof"`
	IssuedBy string `db:"issued_by"`
	IssuedAt int64  `db:"issued_at"`
}

// TerminationRecord captures one termination event, including exactly
// which role IDs were removed (JSON array). Historical, never mutated.
type TerminationRecord struct {
	ID               int64  `db:"termination_id"`
	UserID           string `db:"user_id"`
	GuildID          string `db:"guild_id"`
	Reason           string `db:"reason"`
	TerminatedBy     string `db:"terminated_by"`
	TerminatedAt     int64  `db:"terminated_at"`
	RolesRemovedJSON string `db:"roles_removed"`
}

// LoaRecord is one leave-of-absence request. Duration is the requester's
// free text ("1 week", "3d"); expiry is computed from it when parseable.
type LoaRecord struct {
	ID           int64  `db:"loa_id"`
	UserID       string `db:"user_id"`
	GuildID      string `db:"guild_id"`
	Duration     string `db:"duration"`
	Reason       string `db:"reason"`
	RequestedAt  int64  `db:"requested_at"`
	Status       string `db:"status"`
	ApprovedBy   string `db:"approved_by"`
	ApprovedAt   int64  `db:"approved_at"`
	DeniedBy     string `db:"denied_by"`
	DeniedAt     int64  `db:"denied_at"`
	DenialReason string `db:"denial_reason"`
	ExpiredAt    int64  `db:"expired_at"`
}

// TagRecord is a named snippet, unique per (name, guild).
type TagRecord struct {
	ID        int64  `db:"tag_id"`
	Name      string `db:"name"`
	Content   string `db:"content"`
	GuildID   string `db:"guild_id"`
	CreatedBy string `db:"created_by"`
	CreatedAt int64  `db:"created_at"`
}

// ActivityLogRecord is one logged activity entry.
type ActivityLogRecord struct {
	ID       int64  `db:"activity_id"`
	UserID   string `db:"user_id"`
	GuildID  string `db:"guild_id"`
	Activity string `db:"activity"`
	Hours    int    `db:"hours"`
	LoggedAt int64  `db:"logged_at"`
}

// ActivitySummary is the per-user aggregate used by reports and the
// weekly digest.
type ActivitySummary struct {
	Count int
	Hours int
}

// OnCallRecord is the on-call state for a (user, guild) pair. Unsetting
// flips Active without deleting the row.
type OnCallRecord struct {
	UserID  string `db:"user_id"`
	GuildID string `db:"guild_id"`
	Active  bool   `db:"active"`
	SetAt   int64  `db:"set_at"`
	UnsetAt int64  `db:"unset_at"`
}

// FeedbackRecord is one feedback submission. SubmittedBy is empty iff the
// submission was anonymous.
type FeedbackRecord struct {
	ID          int64  `db:"feedback_id"`
	GuildID     string `db:"guild_id"`
	Message     string `db:"message"`
	Anonymous   bool   `db:"anonymous"`
	SubmittedBy string `db:"submitted_by"`
	SubmittedAt int64  `db:"submitted_at"`
}
