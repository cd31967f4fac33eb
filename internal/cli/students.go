package cli

import (
	"github.com/hnrobert/feedbackgalaxy/internal/apperr"
	"github.com/hnrobert/feedbackgalaxy/internal/roster"
)

func (a *App) addStudent(_ []string) error {
	if err := a.students.Authorize(); err != nil {
		return err
	}
	a.printf("\nAdd New Student\n%s\n", rule(30))
	username, err := a.ask("Username", "Enter student username: ")
	if err != nil {
		return err
	}
	password, err := a.askPassword("Password", "Enter student password: ")
	if err != nil {
		return err
	}
	rec, err := a.students.Add(username, password)
	if err != nil {
		return err
	}
	a.printf("Student '%s' added successfully!\n", rec.Username)
	return nil
}

func (a *App) removeStudent(_ []string) error {
	if err := a.students.Authorize(); err != nil {
		return err
	}
	a.printf("\nRemove Student\n%s\n", rule(30))

	list, err := a.students.List()
	if err != nil {
		return err
	}
	if len(list) == 0 {
		a.printf("No students found to remove.\n")
		return nil
	}
	a.printf("Current students:\n")
	a.printStudents(list)

	username, err := a.ask("Username", "\nEnter username of student to remove: ")
	if err != nil {
		return err
	}
	ok, err := a.prompt.Confirm("Are you sure you want to remove student '" + username + "'? This action cannot be undone. (yes/no): ")
	if err != nil {
		return err
	}
	if !ok {
		a.printf("Student removal cancelled.\n")
		return nil
	}
	if err := a.students.Remove(username); err != nil {
		return err
	}
	a.printf("Student '%s' removed successfully!\n", username)

	list, err = a.students.List()
	if err != nil {
		return err
	}
	a.printf("Remaining students: %d\n", len(list))
	return nil
}

func (a *App) listStudents(_ []string) error {
	if err := a.students.Authorize(); err != nil {
		return err
	}
	list, err := a.students.List()
	if err != nil {
		return err
	}
	a.printf("\nAll Students\n%s\n", rule(30))
	if len(list) == 0 {
		a.printf("No students found.\n")
		return nil
	}
	a.printStudents(list)
	a.printf("\nTotal students: %d\n", len(list))
	return nil
}

func (a *App) importStudents(args []string) error {
	if err := a.students.Authorize(); err != nil {
		return err
	}
	if len(args) != 1 {
		return apperr.Validation("Usage: import-students <file.yaml>")
	}
	res, err := a.students.Import(args[0])
	if err != nil {
		return err
	}
	for _, u := range res.Added {
		a.printf("added    %s\n", u)
	}
	for _, u := range res.Skipped {
		a.printf("skipped  %s (already exists)\n", u)
	}
	for _, r := range res.Rejected {
		a.printf("rejected %s: %s\n", r.Username, r.Reason)
	}
	a.printf("Imported %d student(s), %d skipped, %d rejected.\n", len(res.Added), len(res.Skipped), len(res.Rejected))
	return nil
}

func (a *App) printStudents(list []roster.UserRecord) {
	for i, s := range list {
		a.printf("%d. %s\n", i+1, s.Username)
	}
}
