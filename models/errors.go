package models

import (
	"errors"
	"strings"
)

// Error kinds shared by the store, session and access layers.
var (
	ErrUniquenessViolation   = errors.New("uniqueness violation")
	ErrReference             = errors.New("reference error")
	ErrNotFound              = errors.New("not found")
	ErrAuthenticationFailure = errors.New("authentication failure")
	ErrAuthorizationFailure  = errors.New("authorization failure")
	ErrValidation            = errors.New("validation failed")
)

// FieldError ties an error kind to the form field that caused it.
type FieldError struct {
	Field   string
	Err     error
	Message string
}

func (e *FieldError) Error() string {
	if e.Message != "" {
		return e.Field + ": " + e.Message
	}
	return e.Field + ": " + e.Err.Error()
}

func (e *FieldError) Unwrap() error { return e.Err }

// ValidationError collects every field that failed validation on one entity.
type ValidationError struct {
	Fields []*FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Error())
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// FieldMessages flattens an error into field → message pairs for form display.
// Errors that carry no field information yield nil.
func FieldMessages(err error) map[string]string {
	var verr *ValidationError
	if errors.As(err, &verr) {
		out := make(map[string]string, len(verr.Fields))
		for _, f := range verr.Fields {
			out[f.Field] = f.Message
		}
		return out
	}
	var ferr *FieldError
	if errors.As(err, &ferr) {
		msg := ferr.Message
		if msg == "" {
			msg = ferr.Err.Error()
		}
		return map[string]string{ferr.Field: msg}
	}
	return nil
}
