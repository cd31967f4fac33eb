package report

import (
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/hnrobert/feedbackgalaxy/internal/colorize"
	"github.com/hnrobert/feedbackgalaxy/internal/feedback"
)

var xlsxHeader = []interface{}{"#", "ID", "Student", "Submitted", "Words", "Tone", "Feedback"}

// XLSX writes one sheet named after the course, a header row and one row per
// record.
func XLSX(w io.Writer, l feedback.Listing) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := l.Course
	if sheet == "" {
		sheet = "Feedback"
	}
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return err
	}

	if err := f.SetSheetRow(sheet, "A1", &xlsxHeader); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetRowStyle(sheet, 1, 1, bold); err != nil {
		return err
	}

	for i, r := range l.Records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			i + 1,
			r.ID,
			r.Student,
			r.SubmittedAt.UTC().Format(time.RFC3339),
			r.Words,
			colorize.ToneOf(r.Feedback).String(),
			r.Feedback,
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(sheet, "B", "B", 38); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "G", "G", 80); err != nil {
		return err
	}
	_, err = f.WriteTo(w)
	return err
}
