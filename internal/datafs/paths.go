package datafs

import (
	"errors"
	"path/filepath"
	"strings"
)

// Default file names inside the data directory.
const (
	UsersFile   = "users.txt"
	SessionFile = "session.json"
	FeedbackDir = "feedbacks"
	LogDir      = "logs"
)

var ErrInvalidPath = errors.New("invalid data path")

// Resolve returns name joined to root unless name is already absolute.
// Empty names and names escaping root via ".." are rejected.
func Resolve(root, name string) (string, error) {
	if name == "" {
		return "", ErrInvalidPath
	}
	if filepath.IsAbs(name) {
		return filepath.Clean(name), nil
	}
	clean := filepath.Clean(name)
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", ErrInvalidPath
	}
	if root == "" {
		return clean, nil
	}
	return filepath.Join(root, clean), nil
}
