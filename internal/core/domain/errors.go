package domain

import (
	"errors"
	"strings"
)

var (
	ErrUnauthenticated = errors.New("not logged in")
	ErrForbidden       = errors.New("role not permitted")
	ErrSessionLoading  = errors.New("session is still loading")
	ErrRejected        = errors.New("backend rejected the request")
	ErrServerFault     = errors.New("backend server error")
	ErrUnavailable     = errors.New("backend unavailable")
	ErrNotFound        = errors.New("record not found")
	ErrNotConfirmed    = errors.New("action not confirmed")
	ErrNotAllowed      = errors.New("action not offered for this meeting")
	ErrUnknownRole     = errors.New("unknown role")
	ErrUnknownStatus   = errors.New("unknown visitor status")
)

// FieldError is a validation failure tied to one input field.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors is returned before any network call when input is invalid.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, len(v))
	for i, e := range v {
		parts[i] = e.Error()
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Field returns the message for field, if any.
func (v ValidationErrors) Field(name string) (string, bool) {
	for _, e := range v {
		if e.Field == name {
			return e.Message, true
		}
	}
	return "", false
}
