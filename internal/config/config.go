// Package config resolves runtime settings from, in increasing precedence:
// built-in defaults, a .env file, a YAML file, FEEDBACK_* environment
// variables and the global command-line flags.
package config

import (
	"fmt"
	"strings"

	"github.com/hnrobert/feedbackgalaxy/internal/datafs"
	"github.com/hnrobert/feedbackgalaxy/internal/roster"
)

// LogDisabled as log_dir turns file logging off.
const LogDisabled = "none"

type Config struct {
	DataDir        string `yaml:"data_dir"`
	UsersFile      string `yaml:"users_file"`
	SessionFile    string `yaml:"session_file"`
	FeedbackDir    string `yaml:"feedback_dir"`
	LogDir         string `yaml:"log_dir"`
	PasswordScheme string `yaml:"password_scheme"`
	SessionSecret  string `yaml:"session_secret"`
	NoColor        bool   `yaml:"no_color"`

	// Verbose is flag-only: it lowers the console log threshold to info.
	Verbose bool `yaml:"-"`
}

func (c *Config) LoadDefaults() {
	c.DataDir = "data"
	c.UsersFile = datafs.UsersFile
	c.SessionFile = datafs.SessionFile
	c.FeedbackDir = datafs.FeedbackDir
	c.LogDir = datafs.LogDir
	c.PasswordScheme = string(roster.SchemePlain)
}

// Scheme returns the parsed password scheme.
func (c *Config) Scheme() (roster.PasswordScheme, error) {
	return roster.ParseScheme(c.PasswordScheme)
}

func (c *Config) FileLogging() bool {
	return c.LogDir != "" && !strings.EqualFold(c.LogDir, LogDisabled)
}

// resolve joins relative file settings onto DataDir.
func (c *Config) resolve() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir must not be empty")
	}
	fields := []struct {
		name string
		val  *string
	}{
		{"users_file", &c.UsersFile},
		{"session_file", &c.SessionFile},
		{"feedback_dir", &c.FeedbackDir},
	}
	if c.FileLogging() {
		fields = append(fields, struct {
			name string
			val  *string
		}{"log_dir", &c.LogDir})
	}
	for _, f := range fields {
		p, err := datafs.Resolve(c.DataDir, *f.val)
		if err != nil {
			return fmt.Errorf("%s %q: %w", f.name, *f.val, err)
		}
		*f.val = p
	}
	if _, err := c.Scheme(); err != nil {
		return err
	}
	return nil
}
