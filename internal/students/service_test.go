package students

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hnrobert/feedbackgalaxy/internal/apperr"
	"github.com/hnrobert/feedbackgalaxy/internal/roster"
	"github.com/hnrobert/feedbackgalaxy/internal/session"
	"github.com/hnrobert/feedbackgalaxy/internal/validation"
)

type fakeGate struct {
	sess *session.Session
}

func (g *fakeGate) RequireLogin() (session.Session, error) {
	if g.sess == nil {
		return session.Session{}, apperr.Unauthorized("Please login first")
	}
	return *g.sess, nil
}

func (g *fakeGate) RequireAdmin() error {
	if g.sess == nil || !g.sess.IsAdmin() {
		return apperr.Forbidden("Admin privileges required for this operation")
	}
	return nil
}

func asAdmin() *fakeGate {
	return &fakeGate{sess: &session.Session{Username: "admin", Role: roster.RoleAdmin}}
}

func newService(t *testing.T, content string, gate Gate) (*Service, *roster.Store) {
	t.Helper()
	p := filepath.Join(t.TempDir(), "users.txt")
	if content != "" {
		require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	}
	users := roster.NewStore(p)
	return NewService(users, gate, validation.New()), users
}

func names(recs []roster.UserRecord) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Username)
	}
	return out
}

func TestAuthorize(t *testing.T) {
	svc, _ := newService(t, "admin:a\n", &fakeGate{})
	assert.ErrorIs(t, svc.Authorize(), apperr.ErrUnauthorized)

	svc, _ = newService(t, "admin:a\n", &fakeGate{sess: &session.Session{Username: "bob", Role: roster.RoleStudent}})
	assert.ErrorIs(t, svc.Authorize(), apperr.ErrForbidden)

	svc, _ = newService(t, "admin:a\n", asAdmin())
	assert.NoError(t, svc.Authorize())
}

func TestAddPolicy(t *testing.T) {
	tests := []struct {
		name    string
		user    string
		pass    string
		wantMsg string
	}{
		{name: "empty username", user: " ", pass: "pass", wantMsg: "Username is required and cannot be empty"},
		{name: "empty password", user: "bob", pass: "", wantMsg: "Password is required and cannot be empty"},
		{name: "bad chars", user: "bob-1", pass: "pass", wantMsg: "Username can only contain letters, numbers, and underscores"},
		{name: "short password", user: "bob", pass: "abc", wantMsg: "Password must be at least 4 characters long"},
		{name: "colon password", user: "bob", pass: "ab:cd", wantMsg: "Username and password cannot contain colon character"},
		{name: "reserved", user: "admin", pass: "pass", wantMsg: "Username 'admin' is reserved"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newService(t, "admin:a\n", asAdmin())
			_, err := svc.Add(tt.user, tt.pass)
			require.ErrorIs(t, err, apperr.ErrValidation)
			assert.Equal(t, tt.wantMsg, apperr.Message(err))
		})
	}
}

func TestAddListRemove(t *testing.T) {
	svc, users := newService(t, "admin:a\n", asAdmin())

	rec, err := svc.Add(" bob ", "pass1")
	require.NoError(t, err)
	assert.Equal(t, "bob", rec.Username)
	_, err = svc.Add("carol", "pass2")
	require.NoError(t, err)

	_, err = svc.Add("bob", "other")
	assert.ErrorIs(t, err, apperr.ErrConflict)

	list, err := svc.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"bob", "carol"}, names(list))

	require.NoError(t, svc.Remove("bob"))
	assert.ErrorIs(t, svc.Remove("bob"), apperr.ErrNotFound)
	assert.ErrorIs(t, svc.Remove("bad name"), apperr.ErrValidation)
	assert.ErrorIs(t, svc.Remove("admin"), apperr.ErrForbidden)

	all, err := users.ListAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"admin", "carol"}, names(all))
}

func TestOperationsRequireAdmin(t *testing.T) {
	svc, users := newService(t, "admin:a\nbob:pass\n", &fakeGate{sess: &session.Session{Username: "bob", Role: roster.RoleStudent}})

	_, err := svc.Add("carol", "pass")
	assert.ErrorIs(t, err, apperr.ErrForbidden)
	assert.ErrorIs(t, svc.Remove("bob"), apperr.ErrForbidden)
	_, err = svc.List()
	assert.ErrorIs(t, err, apperr.ErrForbidden)
	_, err = svc.Import("whatever.yaml")
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	all, err := users.ListAll()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestImport(t *testing.T) {
	svc, users := newService(t, "admin:a\nbob:pass\n", asAdmin())
	p := filepath.Join(t.TempDir(), "students.yaml")
	require.NoError(t, os.WriteFile(p, []byte(`users:
  - username: bob
    password: other
  - username: carol
    password: pass2
  - username: "dave smith"
    password: pass3
  - username: erin
    password: abc
  - username: carol
    password: again
`), 0o600))

	res, err := svc.Import(p)
	require.NoError(t, err)
	assert.Equal(t, []string{"carol"}, res.Added)
	assert.Equal(t, []string{"bob", "carol"}, res.Skipped)
	require.Len(t, res.Rejected, 2)
	assert.Equal(t, "dave smith", res.Rejected[0].Username)
	assert.Equal(t, "Password must be at least 4 characters long", res.Rejected[1].Reason)

	all, err := users.ListAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"admin", "bob", "carol"}, names(all))
}

func TestImportErrors(t *testing.T) {
	svc, _ := newService(t, "admin:a\n", asAdmin())

	_, err := svc.Import(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	p := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(p, []byte("users: [\n"), 0o600))
	_, err = svc.Import(p)
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestBootstrap(t *testing.T) {
	svc, users := newService(t, "", &fakeGate{})

	_, err := svc.Bootstrap("abc")
	assert.ErrorIs(t, err, apperr.ErrValidation)

	rec, err := svc.Bootstrap("admin123")
	require.NoError(t, err)
	assert.Equal(t, roster.RoleAdmin, rec.Role())

	_, ok, err := users.FindByCredentials("admin", "admin123")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = svc.Bootstrap("another")
	assert.ErrorIs(t, err, apperr.ErrConflict)
}
