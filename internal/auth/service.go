package auth

import (
	"github.com/hnrobert/feedbackgalaxy/internal/apperr"
	"github.com/hnrobert/feedbackgalaxy/internal/logger"
	"github.com/hnrobert/feedbackgalaxy/internal/roster"
	"github.com/hnrobert/feedbackgalaxy/internal/session"
)

const msgInvalidCredentials = "Invalid username or password"

type CredentialFinder interface {
	FindByCredentials(username, password string) (roster.UserRecord, bool, error)
}

type SessionWriter interface {
	Save(username string, role roster.Role) session.Session
	Clear()
}

type Service struct {
	users    CredentialFinder
	sessions SessionWriter
}

func NewService(users CredentialFinder, sessions SessionWriter) *Service {
	return &Service{users: users, sessions: sessions}
}

// Authenticate starts a session for the matching record. Unknown users and
// wrong passwords produce the same error.
func (s *Service) Authenticate(username, password string) (roster.UserRecord, error) {
	if username == "" || password == "" {
		return roster.UserRecord{}, apperr.Validation("Username and password are required")
	}
	rec, ok, err := s.users.FindByCredentials(username, password)
	if err != nil {
		return roster.UserRecord{}, err
	}
	if !ok {
		logger.Info("login failed user=%s", username)
		return roster.UserRecord{}, apperr.Unauthorized(msgInvalidCredentials)
	}
	s.sessions.Save(rec.Username, rec.Role())
	logger.Info("login user=%s role=%s", rec.Username, rec.Role())
	return rec, nil
}

func (s *Service) Logout() {
	s.sessions.Clear()
	logger.Info("logout")
}
