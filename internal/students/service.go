// Package students implements the admin-only roster workflows: adding,
// removing, listing and bulk-importing student accounts.
package students

import (
	"errors"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hnrobert/feedbackgalaxy/internal/apperr"
	"github.com/hnrobert/feedbackgalaxy/internal/datafs"
	"github.com/hnrobert/feedbackgalaxy/internal/logger"
	"github.com/hnrobert/feedbackgalaxy/internal/roster"
	"github.com/hnrobert/feedbackgalaxy/internal/session"
	"github.com/hnrobert/feedbackgalaxy/internal/validation"
)

type Gate interface {
	RequireLogin() (session.Session, error)
	RequireAdmin() error
}

type Roster interface {
	ListAll() ([]roster.UserRecord, error)
	Exists(username string) (bool, error)
	Add(username, password string) (roster.UserRecord, error)
	Remove(username string) error
}

type Service struct {
	users    Roster
	gate     Gate
	validate *validation.Validator
}

func NewService(users Roster, gate Gate, v *validation.Validator) *Service {
	return &Service{users: users, gate: gate, validate: v}
}

type credentials struct {
	Username string `label:"Username" validate:"roster_name"`
	Password string `label:"Password" validate:"min=4"`
}

// Authorize requires a logged-in admin.
func (s *Service) Authorize() error {
	if _, err := s.gate.RequireLogin(); err != nil {
		return err
	}
	return s.gate.RequireAdmin()
}

func (s *Service) checkCredentials(username, password string) (credentials, error) {
	u, err := s.validate.Text("Username", username)
	if err != nil {
		return credentials{}, err
	}
	p, err := s.validate.Text("Password", password)
	if err != nil {
		return credentials{}, err
	}
	c := credentials{Username: u, Password: p}
	if err := s.validate.Struct(c); err != nil {
		return credentials{}, err
	}
	if c.Username == roster.AdminUsername {
		return credentials{}, apperr.Validation("Username '%s' is reserved", roster.AdminUsername)
	}
	return c, nil
}

func (s *Service) Add(username, password string) (roster.UserRecord, error) {
	if err := s.Authorize(); err != nil {
		return roster.UserRecord{}, err
	}
	c, err := s.checkCredentials(username, password)
	if err != nil {
		return roster.UserRecord{}, err
	}
	rec, err := s.users.Add(c.Username, c.Password)
	if err != nil {
		return roster.UserRecord{}, err
	}
	logger.Info("student added user=%s", rec.Username)
	return rec, nil
}

func (s *Service) Remove(username string) error {
	if err := s.Authorize(); err != nil {
		return err
	}
	u, err := s.validate.Text("Username", username)
	if err != nil {
		return err
	}
	if err := s.validate.Struct(struct {
		Username string `label:"Username" validate:"roster_name"`
	}{u}); err != nil {
		return err
	}
	if err := s.users.Remove(u); err != nil {
		return err
	}
	logger.Info("student removed user=%s", u)
	return nil
}

// List returns student records in roster order.
func (s *Service) List() ([]roster.UserRecord, error) {
	if err := s.Authorize(); err != nil {
		return nil, err
	}
	all, err := s.users.ListAll()
	if err != nil {
		return nil, err
	}
	out := make([]roster.UserRecord, 0, len(all))
	for _, u := range all {
		if u.Role() == roster.RoleStudent {
			out = append(out, u)
		}
	}
	return out, nil
}

type importFile struct {
	Users []struct {
		Username string `yaml:"username"`
		Password string `yaml:"password"`
	} `yaml:"users"`
}

type Rejection struct {
	Username string
	Reason   string
}

type ImportResult struct {
	Added    []string
	Skipped  []string
	Rejected []Rejection
}

// Import adds every valid entry of a YAML users: list. Usernames already in
// the roster are skipped; entries failing the student policy are rejected
// without stopping the import.
func (s *Service) Import(path string) (ImportResult, error) {
	if err := s.Authorize(); err != nil {
		return ImportResult{}, err
	}
	data, err := datafs.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ImportResult{}, apperr.NotFound("Import file '%s' not found", path)
		}
		return ImportResult{}, apperr.Storage(err, "Failed to read import file")
	}
	var f importFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return ImportResult{}, apperr.Validation("Import file is not valid YAML: %v", err)
	}

	var res ImportResult
	for _, u := range f.Users {
		name := strings.TrimSpace(u.Username)
		c, err := s.checkCredentials(u.Username, u.Password)
		if err != nil {
			res.Rejected = append(res.Rejected, Rejection{Username: name, Reason: apperr.Message(err)})
			continue
		}
		exists, err := s.users.Exists(c.Username)
		if err != nil {
			return res, err
		}
		if exists {
			res.Skipped = append(res.Skipped, c.Username)
			continue
		}
		if _, err := s.users.Add(c.Username, c.Password); err != nil {
			if errors.Is(err, apperr.ErrConflict) {
				// duplicate within the import file
				res.Skipped = append(res.Skipped, c.Username)
				continue
			}
			return res, err
		}
		res.Added = append(res.Added, c.Username)
	}
	logger.Info("students imported from %s added=%d skipped=%d rejected=%d",
		path, len(res.Added), len(res.Skipped), len(res.Rejected))
	return res, nil
}

// Bootstrap creates the admin account on a fresh roster. It needs no session
// and refuses to run once an admin exists.
func (s *Service) Bootstrap(password string) (roster.UserRecord, error) {
	exists, err := s.users.Exists(roster.AdminUsername)
	if err != nil {
		return roster.UserRecord{}, err
	}
	if exists {
		return roster.UserRecord{}, apperr.Conflict("Admin user already exists")
	}
	p, err := s.validate.Text("Password", password)
	if err != nil {
		return roster.UserRecord{}, err
	}
	if err := s.validate.Struct(struct {
		Password string `label:"Password" validate:"min=4"`
	}{p}); err != nil {
		return roster.UserRecord{}, err
	}
	rec, err := s.users.Add(roster.AdminUsername, p)
	if err != nil {
		return roster.UserRecord{}, err
	}
	logger.Info("admin account initialised")
	return rec, nil
}
