package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/hnrobert/feedbackgalaxy/internal/feedback"
)

var generatedAt = time.Date(2026, 10, 18, 10, 0, 0, 0, time.UTC)

func sampleListing() feedback.Listing {
	return feedback.Listing{
		Course: "CS01",
		Records: []feedback.Record{
			{
				ID:          "0192a0b0-0000-7000-8000-000000000001",
				Course:      "CS01",
				Student:     "bob",
				Feedback:    "Great labs",
				Words:       2,
				SubmittedAt: time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC),
			},
			{
				ID:          "0192a0b0-0000-7000-8000-000000000002",
				Course:      "CS01",
				Student:     "carol",
				Feedback:    "<script>alert(1)</script> *boring*",
				Words:       2,
				SubmittedAt: time.Date(2026, 10, 17, 9, 5, 0, 0, time.UTC),
			},
		},
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatHTML, f)

	f, err = ParseFormat("XLSX")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)
	assert.Equal(t, ".xlsx", f.Ext())

	_, err = ParseFormat("pdf")
	assert.Error(t, err)
}

func TestHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, HTML(&buf, sampleListing(), generatedAt))

	out := buf.String()
	assert.Contains(t, out, "<title>Feedback for CS01</title>")
	assert.Contains(t, out, "<h1>Feedback for CS01</h1>")
	assert.Contains(t, out, "<h2>1. bob</h2>")
	assert.Contains(t, out, "Great labs")
	assert.Contains(t, out, "positive")
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
	assert.NotContains(t, out, "<em>boring</em>", "user markdown is rendered literally")
}

func TestMarkdownListsSkipped(t *testing.T) {
	l := sampleListing()
	l.Skipped = []string{"broken.yaml"}
	md := Markdown(l, generatedAt)
	assert.Contains(t, md, "2 submission(s), generated 2026-10-18T10:00:00Z")
	assert.Contains(t, md, `broken\.yaml`)
}

func TestXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, XLSX(&buf, sampleListing()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{"CS01"}, f.GetSheetList())
	rows, err := f.GetRows("CS01")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"#", "ID", "Student", "Submitted", "Words", "Tone", "Feedback"}, rows[0])
	assert.Equal(t, "bob", rows[1][2])
	assert.Equal(t, "2026-10-17T09:00:00Z", rows[1][3])
	assert.Equal(t, "positive", rows[1][5])
	assert.Equal(t, "negative", rows[2][5])
}

func TestWriteDispatch(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatHTML, sampleListing(), generatedAt))
	assert.Contains(t, buf.String(), "<!DOCTYPE html>")

	buf.Reset()
	require.NoError(t, Write(&buf, FormatXLSX, sampleListing(), generatedAt))
	assert.Equal(t, "PK", buf.String()[:2], "xlsx is a zip container")
}
