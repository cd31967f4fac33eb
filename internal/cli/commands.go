package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/hnrobert/feedbackgalaxy/internal/apperr"
	"github.com/hnrobert/feedbackgalaxy/internal/colorize"
)

type command struct {
	name    string
	aliases []string
	usage   string
	summary string
	run     func(a *App, args []string) error
}

var commands []command

func init() {
	commands = []command{
		{name: "login", summary: "Log in with username and password", run: (*App).login},
		{name: "logout", summary: "End the current session", run: (*App).logout},
		{name: "whoami", summary: "Show the logged-in user", run: (*App).whoami},
		{name: "init", summary: "Create the admin account on a fresh install", run: (*App).initAdmin},
		{name: "add-student", summary: "Add a student (admin)", run: (*App).addStudent},
		{name: "remove-student", summary: "Remove a student (admin)", run: (*App).removeStudent},
		{name: "list-students", summary: "List all students (admin)", run: (*App).listStudents},
		{name: "import-students", usage: "<file.yaml>", summary: "Add students from a YAML users: list (admin)", run: (*App).importStudents},
		{name: "add-feedback", aliases: []string{"add"}, summary: "Submit feedback for a course (student)", run: (*App).addFeedback},
		{name: "view-feedback", aliases: []string{"view"}, usage: "[COURSE]", summary: "Show feedback for a course", run: (*App).viewFeedback},
		{name: "list-courses", summary: "List courses that have feedback", run: (*App).listCourses},
		{name: "export-feedback", usage: "<COURSE> [-format html|xlsx] [-o path]", summary: "Export a course's feedback (admin)", run: (*App).exportFeedback},
		{name: "help", summary: "Show this help", run: (*App).help},
	}
}

func lookup(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
		for _, al := range c.aliases {
			if al == name {
				return c, true
			}
		}
	}
	return command{}, false
}

// Run executes args[0] with the remaining arguments and returns the process
// exit code.
func (a *App) Run(args []string) int {
	if len(args) == 0 {
		a.writeUsage(a.errOut)
		return 1
	}
	cmd, ok := lookup(args[0])
	if !ok {
		fmt.Fprintf(a.errOut, "Unknown command %q\n\n", args[0])
		a.writeUsage(a.errOut)
		return 1
	}
	if err := cmd.run(a, args[1:]); err != nil {
		a.renderError(err)
		return 1
	}
	return 0
}

func (a *App) renderError(err error) {
	var ae *apperr.Error
	if !errors.As(err, &ae) {
		fmt.Fprintln(a.errOut, colorize.Error(fmt.Sprintf("Unexpected error occurred: %v", err), a.color()))
		return
	}
	line := fmt.Sprintf("Error %d: %s", apperr.Code(err), apperr.Message(err))
	fmt.Fprintln(a.errOut, colorize.Error(line, a.color()))
	fmt.Fprintln(a.errOut, colorize.Hint(apperr.Hint(err), a.color()))
}

func (a *App) help(_ []string) error {
	a.writeUsage(a.out)
	return nil
}

func (a *App) writeUsage(w io.Writer) {
	fmt.Fprintln(w, "Feedback Galaxy - course feedback from the command line")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage: feedbackgalaxy [-c config.yaml] [-d data-dir] [-v] [-no-color] <command> [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, c := range commands {
		name := c.name
		if len(c.aliases) > 0 {
			name += " (" + strings.Join(c.aliases, ", ") + ")"
		}
		if c.usage != "" {
			name += " " + c.usage
		}
		fmt.Fprintf(tw, "  %s\t%s\n", name, c.summary)
	}
	_ = tw.Flush()
}
