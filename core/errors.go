package core

import "github.com/pkg/errors"

// FieldError pins a validation failure to a single request param, named by
// its JSON tag.
type FieldError struct {
	Field string
	Error string
}

// ValidationError is a client error: the dispatcher and the HTTP error
// handler surface it in the response envelope with a 400 status, as a
// per-field message map when Fields is set.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{Err: err, Fields: flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// shutdown signals that service integrity is compromised and the server
// should stop accepting requests.
type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

// IsShutdown checks if the given error cause is a shutdown error.
func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
