package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hnrobert/feedbackgalaxy/internal/apperr"
)

func TestCourseCode(t *testing.T) {
	v := New()
	tests := []struct {
		in      string
		want    string
		wantMsg string
	}{
		{in: "CS01", want: "CS01"},
		{in: "  math101 ", want: "MATH101"},
		{in: "ABCD1234", want: "ABCD1234"},
		{in: "C1", wantMsg: "Course code must be in format like CS01, MATH101, etc."},
		{in: "ABCDE1", wantMsg: "Course code must be in format like CS01, MATH101, etc."},
		{in: "CS12345", wantMsg: "Course code must be in format like CS01, MATH101, etc."},
		{in: "CS-01", wantMsg: "Course code must be in format like CS01, MATH101, etc."},
		{in: "   ", wantMsg: "Course code is required and cannot be empty"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := v.CourseCode(tt.in)
			if tt.wantMsg != "" {
				require.ErrorIs(t, err, apperr.ErrValidation)
				assert.Equal(t, tt.wantMsg, apperr.Message(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestText(t *testing.T) {
	v := New()

	got, err := v.Text("Feedback", "  great course \n")
	require.NoError(t, err)
	assert.Equal(t, "great course", got)

	_, err = v.Text("Feedback", "")
	assert.Equal(t, "Feedback is required and cannot be empty", apperr.Message(err))

	_, err = v.Text("Feedback", strings.Repeat("a", MaxTextLength+1))
	assert.Equal(t, "Feedback cannot exceed 500 characters", apperr.Message(err))

	_, err = v.Text("Feedback", strings.Repeat("a", MaxTextLength))
	assert.NoError(t, err)
}

type studentForm struct {
	Username string `label:"Username" validate:"roster_name"`
	Password string `label:"Password" validate:"min=4"`
}

func TestStructRules(t *testing.T) {
	v := New()

	assert.NoError(t, v.Struct(studentForm{Username: "bob_2", Password: "pass"}))

	err := v.Struct(studentForm{Username: "bob smith", Password: "pass"})
	assert.Equal(t, "Username can only contain letters, numbers, and underscores", apperr.Message(err))

	err = v.Struct(studentForm{Username: "bob", Password: "abc"})
	assert.Equal(t, "Password must be at least 4 characters long", apperr.Message(err))
	assert.ErrorIs(t, err, apperr.ErrValidation)
}
