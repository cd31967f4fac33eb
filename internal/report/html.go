package report

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/yuin/goldmark"

	"github.com/hnrobert/feedbackgalaxy/internal/colorize"
	"github.com/hnrobert/feedbackgalaxy/internal/feedback"
)

var page = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; max-width: 48rem; margin: 2rem auto; }
blockquote { border-left: 4px solid #ccc; margin: 0; padding-left: 1rem; }
</style>
</head>
<body>
{{.Body}}
</body>
</html>
`))

// RenderMarkdown converts markdown to HTML. Raw HTML in the input is omitted.
func RenderMarkdown(md string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

func Markdown(l feedback.Listing, generated time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Feedback for %s\n\n", l.Course)
	fmt.Fprintf(&b, "%d submission(s), generated %s\n\n", len(l.Records), generated.UTC().Format(time.RFC3339))
	for i, r := range l.Records {
		fmt.Fprintf(&b, "## %d. %s\n\n", i+1, escape(r.Student))
		fmt.Fprintf(&b, "*%s, %d words, %s*\n\n", r.SubmittedAt.UTC().Format(time.RFC3339), r.Words, colorize.ToneOf(r.Feedback))
		for _, line := range strings.Split(r.Feedback, "\n") {
			b.WriteString("> ")
			b.WriteString(escape(line))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	if len(l.Skipped) > 0 {
		fmt.Fprintf(&b, "Unreadable records: %s\n", escape(strings.Join(l.Skipped, ", ")))
	}
	return b.String()
}

func HTML(w io.Writer, l feedback.Listing, generated time.Time) error {
	body, err := RenderMarkdown(Markdown(l, generated))
	if err != nil {
		return err
	}
	return page.Execute(w, struct {
		Title string
		Body  template.HTML
	}{
		Title: "Feedback for " + l.Course,
		Body:  body,
	})
}

// escape backslash-escapes ASCII punctuation so user text renders literally.
func escape(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r < 128 && strings.ContainsRune("\\`*_{}[]()<>#+-.!|~&\"'", r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
