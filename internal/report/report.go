// Package report exports a course's feedback as an HTML page or a
// spreadsheet.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/hnrobert/feedbackgalaxy/internal/feedback"
)

type Format string

const (
	FormatHTML Format = "html"
	FormatXLSX Format = "xlsx"
)

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatHTML:
		return FormatHTML, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("unsupported export format %q (use html or xlsx)", s)
	}
}

// Ext is the file extension for f, with the leading dot.
func (f Format) Ext() string { return "." + string(f) }

func Write(w io.Writer, f Format, l feedback.Listing, generated time.Time) error {
	switch f {
	case FormatXLSX:
		return XLSX(w, l)
	default:
		return HTML(w, l, generated)
	}
}
