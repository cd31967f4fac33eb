package apperr

import "errors"

// Code maps an error to the status-style code shown to the user.
func Code(err error) int {
	if err == nil {
		return 0
	}
	switch {
	case errors.Is(err, ErrValidation):
		return 400
	case errors.Is(err, ErrUnauthorized):
		return 401
	case errors.Is(err, ErrForbidden):
		return 403
	case errors.Is(err, ErrNotFound):
		return 404
	case errors.Is(err, ErrConflict):
		return 409
	default:
		return 500
	}
}

// Hint is the follow-up line printed under an error.
func Hint(err error) string {
	switch KindOf(err) {
	case KindValidation, KindConflict:
		return "Please check your input and try again."
	case KindUnauthorized:
		return "Please check your username and password."
	case KindForbidden:
		return "You don't have permission to perform this action."
	case KindNotFound:
		return "The requested resource was not found."
	case KindStorage:
		return "Please try again later or contact support."
	default:
		return "Please try again."
	}
}
