package roster

import (
	"bytes"
	"errors"
	"os"
	"strings"

	"github.com/hnrobert/feedbackgalaxy/internal/apperr"
	"github.com/hnrobert/feedbackgalaxy/internal/datafs"
)

const filePerm os.FileMode = 0o600

// Store is the flat username:password roster file.
type Store struct {
	path   string
	scheme PasswordScheme
}

type Option func(*Store)

// WithScheme sets the encoding used for passwords written by Add.
func WithScheme(s PasswordScheme) Option {
	return func(st *Store) { st.scheme = s }
}

// NewStore returns a Store over path. Passwords are written in plain text
// unless WithScheme says otherwise.
func NewStore(path string, opts ...Option) *Store {
	s := &Store{path: path, scheme: SchemePlain}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Store) Path() string { return s.path }

func (s *Store) load() (*parsedFile, error) {
	b, err := datafs.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &parsedFile{}, nil
		}
		return nil, apperr.Storage(err, "Failed to read user data")
	}
	pf, err := parse(bytes.NewReader(b))
	if err != nil {
		return nil, apperr.Storage(err, "Failed to read user data")
	}
	return pf, nil
}

// ListAll returns every record in file order. A missing file is an empty roster.
func (s *Store) ListAll() ([]UserRecord, error) {
	pf, err := s.load()
	if err != nil {
		return nil, err
	}
	out := make([]UserRecord, 0, len(pf.lines))
	for _, e := range pf.entries() {
		out = append(out, *e)
	}
	return out, nil
}

// Exists reports whether a record named username is present.
func (s *Store) Exists(username string) (bool, error) {
	pf, err := s.load()
	if err != nil {
		return false, err
	}
	return pf.find(username) != nil, nil
}

// Add appends a new record. Usernames must be unique.
func (s *Store) Add(username, password string) (UserRecord, error) {
	if username == "" || password == "" {
		return UserRecord{}, apperr.Validation("Username and password are required")
	}
	if strings.Contains(username, ":") || strings.Contains(password, ":") {
		return UserRecord{}, apperr.Validation("Username and password cannot contain colon character")
	}
	// Line-oriented format: a newline would split the record.
	if strings.ContainsAny(username+password, "\r\n") {
		return UserRecord{}, apperr.Validation("Username and password cannot contain line breaks")
	}
	// Lines are trimmed on read, so padded values would not round-trip.
	if username != strings.TrimSpace(username) || password != strings.TrimSpace(password) {
		return UserRecord{}, apperr.Validation("Username and password cannot start or end with whitespace")
	}
	pf, err := s.load()
	if err != nil {
		return UserRecord{}, err
	}
	if pf.find(username) != nil {
		return UserRecord{}, apperr.Conflict("User already exists")
	}

	stored, err := s.scheme.encode(password)
	if err != nil {
		return UserRecord{}, apperr.Storage(err, "Failed to add user")
	}
	rec := UserRecord{Username: username, Password: stored}
	if err := datafs.AppendFile(s.path, []byte(formatLine(rec)), filePerm); err != nil {
		return UserRecord{}, apperr.Storage(err, "Failed to add user")
	}
	return rec, nil
}

// Remove deletes the named record by rewriting the file. The admin record
// cannot be removed.
func (s *Store) Remove(username string) error {
	if username == "" {
		return apperr.Validation("Username is required")
	}
	if username == AdminUsername {
		return apperr.Forbidden("Cannot remove admin user")
	}
	pf, err := s.load()
	if err != nil {
		return err
	}
	if !pf.delete(username) {
		return apperr.NotFound("User '%s' not found", username)
	}
	if err := datafs.WriteFileAtomic(s.path, pf.Bytes(), filePerm); err != nil {
		return apperr.Storage(err, "Failed to remove user")
	}
	return nil
}

// FindByCredentials returns the record whose username and password both
// match. Usernames are compared case-sensitively.
func (s *Store) FindByCredentials(username, password string) (UserRecord, bool, error) {
	pf, err := s.load()
	if err != nil {
		return UserRecord{}, false, err
	}
	for _, e := range pf.entries() {
		if e.Username == username && matchPassword(e.Password, password) {
			return *e, true, nil
		}
	}
	return UserRecord{}, false, nil
}
