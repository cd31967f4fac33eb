package cli

import (
	"time"

	"github.com/hnrobert/feedbackgalaxy/internal/apperr"
	"github.com/hnrobert/feedbackgalaxy/internal/roster"
)

func (a *App) login(_ []string) error {
	username, err := a.ask("Username", "Enter username: ")
	if err != nil {
		return err
	}
	password, err := a.askPassword("Password", "Enter password: ")
	if err != nil {
		return err
	}
	rec, err := a.auth.Authenticate(username, password)
	if err != nil {
		return err
	}
	a.printf("Welcome, %s (%s)\n", rec.Username, rec.Role())
	return nil
}

func (a *App) logout(_ []string) error {
	a.auth.Logout()
	a.printf("Logged out successfully.\n")
	return nil
}

func (a *App) whoami(_ []string) error {
	s, err := a.guard.RequireLogin()
	if err != nil {
		return err
	}
	a.printf("%s (%s), logged in at %s\n", s.Username, s.Role, s.LoginTime.Local().Format(time.DateTime))
	return nil
}

func (a *App) initAdmin(_ []string) error {
	exists, err := a.users.Exists(roster.AdminUsername)
	if err != nil {
		return err
	}
	if exists {
		return apperr.Conflict("Admin user already exists")
	}
	password, err := a.askPassword("Password", "Enter admin password: ")
	if err != nil {
		return err
	}
	confirm, err := a.askPassword("Password", "Confirm admin password: ")
	if err != nil {
		return err
	}
	if password != confirm {
		return apperr.Validation("Passwords do not match")
	}
	if _, err := a.students.Bootstrap(password); err != nil {
		return err
	}
	a.printf("Admin account created. Log in with username '%s'.\n", roster.AdminUsername)
	return nil
}
