// Package validation holds the input rules shared by the dispatcher and the
// services, registered as go-playground/validator tags.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/hnrobert/feedbackgalaxy/internal/apperr"
)

// MaxTextLength bounds every free-text answer.
const MaxTextLength = 500

var (
	courseCodeRe = regexp.MustCompile(`^[A-Z]{2,4}\d{1,4}$`)
	rosterNameRe = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
)

type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	validate := validator.New()
	// Report fields by their human label so messages read naturally.
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		if l := f.Tag.Get("label"); l != "" {
			return l
		}
		return f.Name
	})

	v := &Validator{validate: validate}
	v.registerRules()
	return v
}

func (v *Validator) registerRules() {
	// Course codes such as CS01 or MATH101.
	v.validate.RegisterValidation("course_code", func(fl validator.FieldLevel) bool {
		return courseCodeRe.MatchString(fl.Field().String())
	})

	// Student usernames: letters, digits and underscore.
	v.validate.RegisterValidation("roster_name", func(fl validator.FieldLevel) bool {
		return rosterNameRe.MatchString(fl.Field().String())
	})

	// Prompt answers must contain something besides whitespace.
	v.validate.RegisterValidation("prompt_text", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
}

// Struct validates s and returns the first failure as a validation error.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return apperr.Validation("%s", message(verrs[0].Field(), verrs[0]))
	}
	return apperr.Validation("%s", err.Error())
}

// Text checks a free-text answer and returns it trimmed.
func (v *Validator) Text(label, value string) (string, error) {
	err := v.validate.Var(value, fmt.Sprintf("prompt_text,max=%d", MaxTextLength))
	if err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return "", apperr.Validation("%s", message(label, verrs[0]))
		}
		return "", apperr.Validation("%s", err.Error())
	}
	return strings.TrimSpace(value), nil
}

// CourseCode normalises raw input (trimmed, upper-cased) and checks its shape.
func (v *Validator) CourseCode(raw string) (string, error) {
	text, err := v.Text("Course code", raw)
	if err != nil {
		return "", err
	}
	code := strings.ToUpper(text)
	if err := v.validate.Var(code, "course_code"); err != nil {
		return "", apperr.Validation("Course code must be in format like CS01, MATH101, etc.")
	}
	return code, nil
}

func message(label string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "prompt_text":
		return fmt.Sprintf("%s is required and cannot be empty", label)
	case "max":
		return fmt.Sprintf("%s cannot exceed %s characters", label, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", label, fe.Param())
	case "course_code":
		return "Course code must be in format like CS01, MATH101, etc."
	case "roster_name":
		return fmt.Sprintf("%s can only contain letters, numbers, and underscores", label)
	default:
		return fmt.Sprintf("%s is invalid", label)
	}
}
