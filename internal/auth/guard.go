package auth

import (
	"github.com/hnrobert/feedbackgalaxy/internal/apperr"
	"github.com/hnrobert/feedbackgalaxy/internal/session"
)

const (
	msgLoginRequired   = "Please login first"
	msgAdminRequired   = "Admin privileges required for this operation"
	msgStudentRequired = "Student privileges required for this operation"
)

// SessionReader is the part of session.Store the guard needs.
type SessionReader interface {
	Load() (session.Session, bool)
}

type Guard struct {
	sessions SessionReader
}

func NewGuard(sessions SessionReader) *Guard {
	return &Guard{sessions: sessions}
}

func (g *Guard) CurrentUser() (session.Session, bool) {
	return g.sessions.Load()
}

func (g *Guard) IsAdmin() bool {
	s, ok := g.sessions.Load()
	return ok && s.IsAdmin()
}

func (g *Guard) IsStudent() bool {
	s, ok := g.sessions.Load()
	return ok && s.IsStudent()
}

func (g *Guard) RequireLogin() (session.Session, error) {
	s, ok := g.sessions.Load()
	if !ok {
		return session.Session{}, apperr.Unauthorized(msgLoginRequired)
	}
	return s, nil
}

func (g *Guard) RequireAdmin() error {
	if !g.IsAdmin() {
		return apperr.Forbidden(msgAdminRequired)
	}
	return nil
}

func (g *Guard) RequireStudent() error {
	if !g.IsStudent() {
		return apperr.Forbidden(msgStudentRequired)
	}
	return nil
}
