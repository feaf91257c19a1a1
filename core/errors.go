package core

import "github.com/pkg/errors"

// FieldError reports a problem with a specific input field.
type FieldError struct {
	Field string
	Error string
}

// ValidationError signals malformed input. It may carry per-field details
// or just a bare message; callers surface it as a bad request and never
// retry it.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

type shutdown struct {
	message string
}

// NewShutdownError returns an error indicating an unrecoverable server
// state; the transport layer shuts the process down when it sees one.
func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
