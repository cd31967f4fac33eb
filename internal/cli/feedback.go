package cli

import (
	"bytes"
	"flag"
	"io"
	"strings"
	"time"

	"github.com/hnrobert/feedbackgalaxy/internal/apperr"
	"github.com/hnrobert/feedbackgalaxy/internal/colorize"
	"github.com/hnrobert/feedbackgalaxy/internal/datafs"
	"github.com/hnrobert/feedbackgalaxy/internal/report"
)

func rule(n int) string { return strings.Repeat("=", n) }

func (a *App) addFeedback(_ []string) error {
	if _, err := a.feedback.CanSubmit(); err != nil {
		return err
	}
	course, err := a.prompt.Text("Enter course code: ")
	if err != nil {
		return err
	}
	if _, err := a.validate.CourseCode(course); err != nil {
		return err
	}
	text, err := a.prompt.Text("Enter feedback: ")
	if err != nil {
		return err
	}
	rec, err := a.feedback.Submit(course, text)
	if err != nil {
		return err
	}
	a.printf("Feedback saved successfully! (%s, %d words)\n", rec.Course, rec.Words)
	return nil
}

func (a *App) viewFeedback(args []string) error {
	if _, err := a.guard.RequireLogin(); err != nil {
		return err
	}
	var course string
	if len(args) > 0 {
		course = args[0]
	} else {
		var err error
		if course, err = a.prompt.Text("Enter course code to view feedback: "); err != nil {
			return err
		}
	}
	l, err := a.feedback.List(course)
	if err != nil {
		return err
	}
	if len(l.Records) == 0 && len(l.Skipped) == 0 {
		a.printf("No feedback submitted yet for course %s.\n", l.Course)
		return nil
	}

	a.printf("\nFeedback for Course: %s\n%s\n", l.Course, rule(50))
	for _, r := range l.Records {
		a.printf("\nFeedback ID: %s\n", r.ID)
		a.printf("Student: %s\n", r.Student)
		a.printf("Time: %s\n", r.SubmittedAt.Local().Format(time.DateTime))
		a.printf("Feedback: %s\n", colorize.Feedback(r.Feedback, a.color()))
		a.printf("%s\n", strings.Repeat("-", 30))
	}
	for _, name := range l.Skipped {
		a.printf("Could not read feedback file: %s\n", name)
	}
	a.printf("\nTotal feedback count: %d\n", len(l.Records)+len(l.Skipped))
	return nil
}

func (a *App) listCourses(_ []string) error {
	courses, err := a.feedback.Courses()
	if err != nil {
		return err
	}
	if len(courses) == 0 {
		a.printf("No feedback has been submitted yet.\n")
		return nil
	}
	for _, c := range courses {
		a.printf("%s\n", c)
	}
	return nil
}

func (a *App) exportFeedback(args []string) error {
	if err := a.students.Authorize(); err != nil {
		return err
	}

	fs := flag.NewFlagSet("export-feedback", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	format := fs.String("format", "html", "html or xlsx")
	outPath := fs.String("o", "", "output file")

	// The course may come before or after the flags.
	var course string
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		course, args = args[0], args[1:]
	}
	if err := fs.Parse(args); err != nil {
		return apperr.Validation("export-feedback: %v", err)
	}
	if course == "" && fs.NArg() > 0 {
		course = fs.Arg(0)
	}
	if course == "" {
		return apperr.Validation("Usage: export-feedback <COURSE> [-format html|xlsx] [-o path]")
	}
	f, err := report.ParseFormat(*format)
	if err != nil {
		return apperr.Validation("%v", err)
	}

	l, err := a.feedback.List(course)
	if err != nil {
		return err
	}
	path := *outPath
	if path == "" {
		path = "feedback-" + l.Course + f.Ext()
	}

	var buf bytes.Buffer
	if err := report.Write(&buf, f, l, a.now()); err != nil {
		return apperr.Storage(err, "Failed to render %s export", f)
	}
	if err := datafs.WriteFileAtomic(path, buf.Bytes(), 0o644); err != nil {
		return apperr.Storage(err, "Failed to write %s", path)
	}
	a.printf("Exported %d feedback record(s) for %s to %s\n", len(l.Records), l.Course, path)
	return nil
}
