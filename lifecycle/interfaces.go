package lifecycle

// RoleManager mutates live guild membership. The Discord implementation
// wraps the session; tests substitute an in-memory fake.
type RoleManager interface {
	MemberRoles(guildID, userID string) ([]string, error)
	AddRole(guildID, userID, roleID string) error
	RemoveRole(guildID, userID, roleID string) error
}

// Notifier delivers best-effort direct messages. The return value reports
// whether delivery succeeded; callers log undeliverable outcomes but
// never treat them as fatal.
type Notifier interface {
	DirectMessage(userID, message string) bool
}

// Auditor appends a structured action entry to the guild's staff log.
type Auditor interface {
	Action(guildID, action, userID, actorID string, color int, reason string, extra map[string]string)
}
