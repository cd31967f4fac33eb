package auth

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hnrobert/feedbackgalaxy/internal/apperr"
	"github.com/hnrobert/feedbackgalaxy/internal/roster"
	"github.com/hnrobert/feedbackgalaxy/internal/session"
)

type fixture struct {
	dir      string
	users    *roster.Store
	sessions *session.Store
	svc      *Service
	guard    *Guard
}

func newFixture(t *testing.T, rosterContent string) *fixture {
	t.Helper()
	dir := t.TempDir()
	usersPath := filepath.Join(dir, "users.txt")
	require.NoError(t, os.WriteFile(usersPath, []byte(rosterContent), 0o600))
	users := roster.NewStore(usersPath)
	sessions := session.NewStore(filepath.Join(dir, ".session.json"))
	return &fixture{
		dir:      dir,
		users:    users,
		sessions: sessions,
		svc:      NewService(users, sessions),
		guard:    NewGuard(sessions),
	}
}

// nextProcess simulates a new invocation sharing the same data dir.
func (f *fixture) nextProcess() *fixture {
	sessions := session.NewStore(f.sessions.Path())
	return &fixture{
		dir:      f.dir,
		users:    f.users,
		sessions: sessions,
		svc:      NewService(f.users, sessions),
		guard:    NewGuard(sessions),
	}
}

func TestGuardWithoutSession(t *testing.T) {
	f := newFixture(t, "admin:admin123\n")

	_, ok := f.guard.CurrentUser()
	assert.False(t, ok)
	assert.False(t, f.guard.IsAdmin())
	assert.False(t, f.guard.IsStudent())

	_, err := f.guard.RequireLogin()
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
	assert.Equal(t, "Please login first", apperr.Message(err))

	err = f.guard.RequireAdmin()
	assert.ErrorIs(t, err, apperr.ErrForbidden)
	assert.Equal(t, "Admin privileges required for this operation", apperr.Message(err))

	err = f.guard.RequireStudent()
	assert.ErrorIs(t, err, apperr.ErrForbidden)
	assert.Equal(t, "Student privileges required for this operation", apperr.Message(err))
}

func TestAuthenticateStudent(t *testing.T) {
	f := newFixture(t, "admin:admin123\nbob:pw\n")

	rec, err := f.svc.Authenticate("bob", "pw")
	require.NoError(t, err)
	assert.Equal(t, roster.RoleStudent, rec.Role())

	cur, ok := f.guard.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "bob", cur.Username)
	assert.True(t, f.guard.IsStudent())
	assert.False(t, f.guard.IsAdmin())
	assert.NoError(t, f.guard.RequireStudent())
	assert.ErrorIs(t, f.guard.RequireAdmin(), apperr.ErrForbidden)
}

func TestAuthenticateSameMessageForUnknownAndWrongPassword(t *testing.T) {
	f := newFixture(t, "admin:admin123\nbob:pw\n")

	_, errWrong := f.svc.Authenticate("bob", "nope")
	_, errUnknown := f.svc.Authenticate("nobody", "pw")

	require.ErrorIs(t, errWrong, apperr.ErrUnauthorized)
	require.ErrorIs(t, errUnknown, apperr.ErrUnauthorized)
	assert.Equal(t, errWrong.Error(), errUnknown.Error())
	assert.Equal(t, "Invalid username or password", errWrong.Error())

	_, ok := f.guard.CurrentUser()
	assert.False(t, ok, "failed login must not create a session")
}

func TestAuthenticateRequiresBothFields(t *testing.T) {
	f := newFixture(t, "admin:admin123\n")
	_, err := f.svc.Authenticate("", "x")
	assert.ErrorIs(t, err, apperr.ErrValidation)
	_, err = f.svc.Authenticate("admin", "")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestAuthenticateStorageError(t *testing.T) {
	dir := t.TempDir()
	users := roster.NewStore(dir) // a directory cannot be read as a roster
	sessions := session.NewStore(filepath.Join(dir, ".session.json"))
	_, err := NewService(users, sessions).Authenticate("admin", "admin123")
	assert.ErrorIs(t, err, apperr.ErrStorage)
}

func TestLogoutThenGuardsFail(t *testing.T) {
	f := newFixture(t, "admin:admin123\n")
	_, err := f.svc.Authenticate("admin", "admin123")
	require.NoError(t, err)
	require.True(t, f.guard.IsAdmin())

	f.svc.Logout()
	assert.ErrorIs(t, f.guard.RequireAdmin(), apperr.ErrForbidden)
	assert.ErrorIs(t, f.guard.RequireStudent(), apperr.ErrForbidden)

	f.svc.Logout() // idempotent
	_, ok := f.nextProcess().guard.CurrentUser()
	assert.False(t, ok)
}

// Admin logs in, adds bob, removes him; bob then cannot log in.
func TestAdminAddRemoveScenario(t *testing.T) {
	f := newFixture(t, "admin:admin123\n")

	_, err := f.svc.Authenticate("admin", "admin123")
	require.NoError(t, err)

	p := f.nextProcess()
	require.NoError(t, p.guard.RequireAdmin())
	_, err = p.users.Add("bob", "pw")
	require.NoError(t, err)

	p = p.nextProcess()
	require.NoError(t, p.guard.RequireAdmin())
	require.NoError(t, p.users.Remove("bob"))

	p = p.nextProcess()
	p.svc.Logout()
	_, err = p.svc.Authenticate("bob", "pw")
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)

	users, err := p.users.ListAll()
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "admin", users[0].Username)
}

func TestSessionSurvivesProcessBoundary(t *testing.T) {
	f := newFixture(t, "admin:admin123\nbob:pw\n")
	_, err := f.svc.Authenticate("bob", "pw")
	require.NoError(t, err)

	next := f.nextProcess()
	cur, err := next.guard.RequireLogin()
	require.NoError(t, err)
	assert.Equal(t, "bob", cur.Username)
	assert.NoError(t, next.guard.RequireStudent())
}
