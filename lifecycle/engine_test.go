package lifecycle

import (
	"errors"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staff-bot/model"
	"staff-bot/store"
)

type fakeRoleManager struct {
	members   map[string][]string
	addErr    error
	removeErr error
	added     []string
	removed   []string
}

func newFakeRoleManager() *fakeRoleManager {
	return &fakeRoleManager{members: make(map[string][]string)}
}

func (f *fakeRoleManager) MemberRoles(guildID, userID string) ([]string, error) {
	return f.members[userID], nil
}

func (f *fakeRoleManager) AddRole(guildID, userID, roleID string) error {
	if f.addErr != nil {
		return f.addErr
	}
	f.members[userID] = append(f.members[userID], roleID)
	f.added = append(f.added, roleID)
	return nil
}

func (f *fakeRoleManager) RemoveRole(guildID, userID, roleID string) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	roles := f.members[userID]
	for n, r := range roles {
		if r == roleID {
			f.members[userID] = append(roles[:n:n], roles[n+1:]...)
			break
		}
	}
	f.removed = append(f.removed, roleID)
	return nil
}

type fakeNotifier struct {
	deliverable bool
	messages    []string
}

func (f *fakeNotifier) DirectMessage(userID, message string) bool {
	f.messages = append(f.messages, message)
	return f.deliverable
}

type auditEntry struct {
	action string
	userID string
}

type fakeAuditor struct {
	entries []auditEntry
}

func (f *fakeAuditor) Action(guildID, action, userID, actorID string, color int, reason string, extra map[string]string) {
	f.entries = append(f.entries, auditEntry{action: action, userID: userID})
}

func (f *fakeAuditor) lastAction() string {
	if len(f.entries) == 0 {
		return ""
	}
	return f.entries[len(f.entries)-1].action
}

func newTestEngine(t *testing.T) (*Engine, *sqlx.DB, *fakeRoleManager, *fakeNotifier, *fakeAuditor) {
	t.Helper()
	db, err := store.Init(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	roles := newFakeRoleManager()
	notify := &fakeNotifier{deliverable: true}
	audit := &fakeAuditor{}
	return NewEngine(db, roles, notify, audit, 30*24*time.Hour), db, roles, notify, audit
}

func testConfig() *model.GuildConfig {
	cfg := model.DefaultGuildConfig()
	cfg.Roles.Staff = "role-staff"
	cfg.Roles.HR = "role-hr"
	cfg.Roles.Admin = "role-admin"
	return &cfg
}

func testForm() ApplicationForm {
	return ApplicationForm{
		Name:         "Alex",
		Age:          "22",
		Experience:   "Two years moderating",
		Motivation:   "I enjoy helping communities",
		Availability: "20h per week",
	}
}

func TestSubmitApplication(t *testing.T) {
	t.Run("creates pending record", func(t *testing.T) {
		e, db, _, _, _ := newTestEngine(t)

		record, err := e.SubmitApplication("g1", "u1", testForm())
		require.NoError(t, err)
		assert.Equal(t, model.StatusPending, record.Status)
		assert.NotZero(t, record.ID)

		pending, err := store.GetPendingApplication(db, "g1", "u1")
		require.NoError(t, err)
		require.NotNil(t, pending)
		assert.Equal(t, "Alex", pending.Name)
	})

	t.Run("rejects duplicate pending", func(t *testing.T) {
		e, _, _, _, _ := newTestEngine(t)

		_, err := e.SubmitApplication("g1", "u1", testForm())
		require.NoError(t, err)

		_, err = e.SubmitApplication("g1", "u1", testForm())
		assert.ErrorIs(t, err, ErrDuplicatePending)
	})

	t.Run("same user may be pending in two guilds", func(t *testing.T) {
		e, _, _, _, _ := newTestEngine(t)

		_, err := e.SubmitApplication("g1", "u1", testForm())
		require.NoError(t, err)
		_, err = e.SubmitApplication("g2", "u1", testForm())
		assert.NoError(t, err)
	})

	t.Run("allows resubmission after denial", func(t *testing.T) {
		e, _, _, _, _ := newTestEngine(t)

		_, err := e.SubmitApplication("g1", "u1", testForm())
		require.NoError(t, err)
		require.NoError(t, e.DenyApplication("g1", "u1", "too young", "hr1"))

		_, err = e.SubmitApplication("g1", "u1", testForm())
		assert.NoError(t, err)
	})
}

func TestApproveApplication(t *testing.T) {
	t.Run("grants role and resolves record", func(t *testing.T) {
		e, db, roles, notify, audit := newTestEngine(t)
		cfg := testConfig()

		_, err := e.SubmitApplication("g1", "u1", testForm())
		require.NoError(t, err)

		require.NoError(t, e.ApproveApplication("g1", "u1", model.TierStaff, "hr1", cfg))
		assert.Contains(t, roles.added, "role-staff")
		assert.NotEmpty(t, notify.messages)
		assert.Equal(t, "Application Approved", audit.lastAction())

		pending, err := store.GetPendingApplication(db, "g1", "u1")
		require.NoError(t, err)
		assert.Nil(t, pending)
	})

	t.Run("fails when role unconfigured", func(t *testing.T) {
		e, _, _, _, _ := newTestEngine(t)
		cfg := model.DefaultGuildConfig()

		_, err := e.SubmitApplication("g1", "u1", testForm())
		require.NoError(t, err)

		err = e.ApproveApplication("g1", "u1", model.TierStaff, "hr1", &cfg)
		assert.ErrorIs(t, err, ErrRoleNotConfigured)
	})

	t.Run("fails without pending record", func(t *testing.T) {
		e, _, _, _, _ := newTestEngine(t)
		err := e.ApproveApplication("g1", "u1", model.TierStaff, "hr1", testConfig())
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("grant failure leaves record pending", func(t *testing.T) {
		e, db, roles, _, _ := newTestEngine(t)
		roles.addErr = errors.New("missing permissions")

		_, err := e.SubmitApplication("g1", "u1", testForm())
		require.NoError(t, err)

		err = e.ApproveApplication("g1", "u1", model.TierStaff, "hr1", testConfig())
		assert.ErrorIs(t, err, ErrGrantFailed)

		pending, err := store.GetPendingApplication(db, "g1", "u1")
		require.NoError(t, err)
		assert.NotNil(t, pending, "failed grant must not consume the application")
	})

	t.Run("undeliverable notification does not fail approval", func(t *testing.T) {
		e, _, _, notify, _ := newTestEngine(t)
		notify.deliverable = false

		_, err := e.SubmitApplication("g1", "u1", testForm())
		require.NoError(t, err)
		assert.NoError(t, e.ApproveApplication("g1", "u1", model.TierStaff, "hr1", testConfig()))
	})
}

func TestDenyApplication(t *testing.T) {
	t.Run("requires a reason", func(t *testing.T) {
		e, _, _, _, _ := newTestEngine(t)
		_, err := e.SubmitApplication("g1", "u1", testForm())
		require.NoError(t, err)

		assert.ErrorIs(t, e.DenyApplication("g1", "u1", "  ", "hr1"), ErrReasonRequired)

		pending, err := store.GetPendingApplication(e.db, "g1", "u1")
		require.NoError(t, err)
		assert.NotNil(t, pending, "reasonless denial must not consume the application")
	})

	t.Run("denial is terminal", func(t *testing.T) {
		e, _, _, notify, audit := newTestEngine(t)
		_, err := e.SubmitApplication("g1", "u1", testForm())
		require.NoError(t, err)

		require.NoError(t, e.DenyApplication("g1", "u1", "not enough experience", "hr1"))
		assert.Equal(t, "Application Denied", audit.lastAction())
		require.NotEmpty(t, notify.messages)
		assert.Contains(t, notify.messages[0], "not enough experience")

		assert.ErrorIs(t, e.DenyApplication("g1", "u1", "again", "hr1"), ErrNotFound)
		assert.ErrorIs(t, e.ApproveApplication("g1", "u1", model.TierStaff, "hr1", testConfig()), ErrNotFound)
	})
}

func TestLoaLifecycle(t *testing.T) {
	t.Run("request and approve", func(t *testing.T) {
		e, _, _, notify, audit := newTestEngine(t)

		record, err := e.RequestLoa("g1", "u1", "1 week", "vacation")
		require.NoError(t, err)
		assert.Equal(t, model.StatusPending, record.Status)
		assert.Equal(t, "LOA Requested", audit.lastAction())

		require.NoError(t, e.ApproveLoa("g1", "u1", "hr1"))
		assert.Equal(t, "LOA Approved", audit.lastAction())
		assert.NotEmpty(t, notify.messages)
	})

	t.Run("rejects duplicate pending request", func(t *testing.T) {
		e, _, _, _, _ := newTestEngine(t)

		_, err := e.RequestLoa("g1", "u1", "2 days", "family")
		require.NoError(t, err)
		_, err = e.RequestLoa("g1", "u1", "3 days", "family")
		assert.ErrorIs(t, err, ErrDuplicatePending)
	})

	t.Run("deny requires reason and pending record", func(t *testing.T) {
		e, _, _, _, _ := newTestEngine(t)

		assert.ErrorIs(t, e.DenyLoa("g1", "u1", "", "hr1"), ErrReasonRequired)
		assert.ErrorIs(t, e.DenyLoa("g1", "u1", "busy season", "hr1"), ErrNotFound)

		_, err := e.RequestLoa("g1", "u1", "2 days", "family")
		require.NoError(t, err)
		assert.NoError(t, e.DenyLoa("g1", "u1", "busy season", "hr1"))
	})
}

func TestSweepExpiredLoas(t *testing.T) {
	t.Run("expires only elapsed windows", func(t *testing.T) {
		e, db, _, _, _ := newTestEngine(t)

		_, err := e.RequestLoa("g1", "u1", "1 day", "short break")
		require.NoError(t, err)
		require.NoError(t, e.ApproveLoa("g1", "u1", "hr1"))

		_, err = e.RequestLoa("g1", "u2", "2 weeks", "long break")
		require.NoError(t, err)
		require.NoError(t, e.ApproveLoa("g1", "u2", "hr1"))

		expired, err := e.SweepExpiredLoas(time.Now().Add(48 * time.Hour))
		require.NoError(t, err)
		assert.Equal(t, 1, expired)

		remaining, err := store.ListApprovedLoasByGuild(db, "g1")
		require.NoError(t, err)
		require.Len(t, remaining, 1)
		assert.Equal(t, "u2", remaining[0].UserID)
	})

	t.Run("sweep is idempotent", func(t *testing.T) {
		e, _, _, _, _ := newTestEngine(t)

		_, err := e.RequestLoa("g1", "u1", "1 day", "short break")
		require.NoError(t, err)
		require.NoError(t, e.ApproveLoa("g1", "u1", "hr1"))

		later := time.Now().Add(48 * time.Hour)
		expired, err := e.SweepExpiredLoas(later)
		require.NoError(t, err)
		assert.Equal(t, 1, expired)

		expired, err = e.SweepExpiredLoas(later)
		require.NoError(t, err)
		assert.Zero(t, expired)
	})

	t.Run("unparseable duration uses fallback window", func(t *testing.T) {
		e, _, _, _, _ := newTestEngine(t)
		e.loaFallback = 24 * time.Hour

		_, err := e.RequestLoa("g1", "u1", "a little while", "unsure")
		require.NoError(t, err)
		require.NoError(t, e.ApproveLoa("g1", "u1", "hr1"))

		expired, err := e.SweepExpiredLoas(time.Now().Add(2 * time.Hour))
		require.NoError(t, err)
		assert.Zero(t, expired, "fallback window has not elapsed")

		expired, err = e.SweepExpiredLoas(time.Now().Add(48 * time.Hour))
		require.NoError(t, err)
		assert.Equal(t, 1, expired)
	})

	t.Run("pending requests are never expired", func(t *testing.T) {
		e, db, _, _, _ := newTestEngine(t)

		_, err := e.RequestLoa("g1", "u1", "1 day", "short break")
		require.NoError(t, err)

		expired, err := e.SweepExpiredLoas(time.Now().Add(30 * 24 * time.Hour))
		require.NoError(t, err)
		assert.Zero(t, expired)

		pending, err := store.GetPendingLoa(db, "g1", "u1")
		require.NoError(t, err)
		assert.NotNil(t, pending)
	})
}
