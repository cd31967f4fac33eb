// Package feedback stores course feedback, one YAML file per submission.
package feedback

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/hnrobert/feedbackgalaxy/internal/apperr"
	"github.com/hnrobert/feedbackgalaxy/internal/datafs"
	"github.com/hnrobert/feedbackgalaxy/internal/logger"
	"github.com/hnrobert/feedbackgalaxy/internal/session"
	"github.com/hnrobert/feedbackgalaxy/internal/validation"
)

const recordExt = ".yaml"

// Gate is the login check every repository operation runs first.
type Gate interface {
	RequireLogin() (session.Session, error)
}

type Repository struct {
	dir      string
	gate     Gate
	validate *validation.Validator
	now      func() time.Time
	newID    func() (uuid.UUID, error)
}

type Option func(*Repository)

func WithClock(now func() time.Time) Option {
	return func(r *Repository) { r.now = now }
}

func NewRepository(dir string, gate Gate, v *validation.Validator, opts ...Option) *Repository {
	r := &Repository{
		dir:      dir,
		gate:     gate,
		validate: v,
		now:      time.Now,
		newID:    uuid.NewV7,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// CanSubmit reports whether the current session may submit feedback.
func (r *Repository) CanSubmit() (session.Session, error) {
	s, err := r.gate.RequireLogin()
	if err != nil {
		return session.Session{}, err
	}
	if s.IsAdmin() {
		return session.Session{}, apperr.Forbidden("Admin users cannot submit feedback. Only students can provide course feedback.")
	}
	return s, nil
}

func (r *Repository) Submit(course, text string) (Record, error) {
	s, err := r.CanSubmit()
	if err != nil {
		return Record{}, err
	}
	code, err := r.validate.CourseCode(course)
	if err != nil {
		return Record{}, err
	}
	body, err := r.validate.Text("Feedback", text)
	if err != nil {
		return Record{}, err
	}

	id, err := r.newID()
	if err != nil {
		return Record{}, apperr.Storage(err, "Failed to save feedback")
	}
	rec := Record{
		ID:          id.String(),
		Course:      code,
		Student:     s.Username,
		Feedback:    body,
		Words:       len(strings.Fields(body)),
		SubmittedAt: r.now().UTC().Truncate(time.Millisecond),
	}

	courseDir := filepath.Join(r.dir, code)
	if err := datafs.EnsureDir(courseDir, 0o755); err != nil {
		return Record{}, apperr.Storage(err, "Failed to create course directory")
	}
	b, err := yaml.Marshal(&rec)
	if err != nil {
		return Record{}, apperr.Storage(err, "Failed to save feedback")
	}
	if err := datafs.WriteFileAtomic(filepath.Join(courseDir, rec.ID+recordExt), b, 0o644); err != nil {
		return Record{}, apperr.Storage(err, "Failed to save feedback")
	}
	logger.Info("feedback submitted course=%s student=%s id=%s", code, s.Username, rec.ID)
	return rec, nil
}

func (r *Repository) List(course string) (Listing, error) {
	if _, err := r.gate.RequireLogin(); err != nil {
		return Listing{}, err
	}
	code, err := r.validate.CourseCode(course)
	if err != nil {
		return Listing{}, err
	}

	courseDir := filepath.Join(r.dir, code)
	entries, err := os.ReadDir(courseDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Listing{}, apperr.NotFound("No feedback found for course %s", code)
		}
		return Listing{}, apperr.Storage(err, "Failed to read feedback for course %s", code)
	}

	out := Listing{Course: code}
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		rec, err := readRecord(filepath.Join(courseDir, e.Name()))
		if err != nil {
			logger.Warn("could not read feedback file %s: %v", e.Name(), err)
			out.Skipped = append(out.Skipped, e.Name())
			continue
		}
		out.Records = append(out.Records, rec)
	}
	sort.SliceStable(out.Records, func(i, j int) bool {
		ti, tj := out.Records[i].SubmittedAt, out.Records[j].SubmittedAt
		if ti.Equal(tj) {
			return out.Records[i].ID < out.Records[j].ID
		}
		return ti.Before(tj)
	})
	return out, nil
}

func readRecord(path string) (Record, error) {
	b, err := datafs.ReadFile(path)
	if err != nil {
		return Record{}, err
	}
	var rec Record
	if err := yaml.Unmarshal(b, &rec); err != nil {
		return Record{}, err
	}
	if rec.Feedback == "" {
		return Record{}, errors.New("missing feedback text")
	}
	return rec, nil
}

// Courses lists course codes that have a feedback directory, sorted.
func (r *Repository) Courses() ([]string, error) {
	if _, err := r.gate.RequireLogin(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, apperr.Storage(err, "Failed to read feedback directory")
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if code, err := r.validate.CourseCode(e.Name()); err == nil && code == e.Name() {
			out = append(out, code)
		}
	}
	sort.Strings(out)
	return out, nil
}
