// Package admin implements the admin panel forms: input rules, validation,
// and the ordered remote calls each submission makes.
package admin

import "errors"

// ValidationError is a recoverable input problem shown next to Field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Message: msg}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
