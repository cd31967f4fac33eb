// Package session keeps the single logged-in identity between invocations.
//
// The state lives in one JSON file plus a per-process cache. A missing or
// unreadable file means nobody is logged in; writing and deleting the file
// are best-effort and never fail the caller.
package session

import (
	"encoding/json"
	"errors"
	"os"
	"sync"
	"time"

	"github.com/hnrobert/feedbackgalaxy/internal/datafs"
	"github.com/hnrobert/feedbackgalaxy/internal/logger"
	"github.com/hnrobert/feedbackgalaxy/internal/roster"
)

type Session struct {
	Username  string      `json:"username"`
	Role      roster.Role `json:"role"`
	LoginTime time.Time   `json:"loginTime"`
	Seal      string      `json:"seal,omitempty"`
}

func (s Session) IsAdmin() bool   { return s.Role == roster.RoleAdmin }
func (s Session) IsStudent() bool { return s.Role == roster.RoleStudent }

type WarnFunc func(format string, args ...interface{})

// Store persists the single current session and caches it for the process.
type Store struct {
	path   string
	secret []byte
	now    func() time.Time
	warn   WarnFunc

	mu     sync.Mutex
	cached *Session
}

type Option func(*Store)

// WithSecret enables the HS256 seal. Files without a valid seal are then
// treated as corrupt.
func WithSecret(secret []byte) Option {
	return func(s *Store) { s.secret = secret }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithWarn replaces the hook used when the session file cannot be written.
func WithWarn(fn WarnFunc) Option {
	return func(s *Store) { s.warn = fn }
}

// NewStore returns a Store backed by the JSON file at path.
func NewStore(path string, opts ...Option) *Store {
	s := &Store{
		path: path,
		now:  time.Now,
		warn: logger.Warn,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Store) Path() string { return s.path }

// Save starts a session for username. The returned session is active for the
// rest of the process even if it could not be persisted.
func (s *Store) Save(username string, role roster.Role) Session {
	sess := Session{
		Username:  username,
		Role:      role,
		LoginTime: s.now().UTC().Truncate(time.Millisecond),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.secret) > 0 {
		seal, err := signSeal(s.secret, sess)
		if err != nil {
			s.warn("Could not seal session: %v", err)
		} else {
			sess.Seal = seal
		}
	}
	s.cached = &sess

	b, err := json.MarshalIndent(sess, "", "  ")
	if err == nil {
		err = datafs.WriteFileAtomic(s.path, append(b, '\n'), 0o600)
	}
	if err != nil {
		s.warn("Could not save session to file: %v", err)
	}
	return sess
}

// Load returns the active session. The file is consulted only when nothing is
// cached in this process.
func (s *Store) Load() (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != nil {
		return *s.cached, true
	}
	sess, ok := s.readFile()
	if !ok {
		return Session{}, false
	}
	s.cached = &sess
	return sess, true
}

func (s *Store) readFile() (Session, bool) {
	b, err := datafs.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Info("ignoring unreadable session file %s: %v", s.path, err)
		}
		return Session{}, false
	}
	var sess Session
	if err := json.Unmarshal(b, &sess); err != nil {
		logger.Info("ignoring corrupt session file %s: %v", s.path, err)
		return Session{}, false
	}
	if sess.Username == "" || sess.Role == "" {
		return Session{}, false
	}
	if len(s.secret) > 0 {
		if err := verifySeal(s.secret, sess); err != nil {
			logger.Info("ignoring session with invalid seal: %v", err)
			return Session{}, false
		}
	}
	return sess, true
}

// Clear ends the session. Deletion errors are ignored.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cached = nil
	if err := datafs.RemoveIfExists(s.path); err != nil {
		logger.Info("could not delete session file %s: %v", s.path, err)
	}
}
