package utils

import "errors"

var ErrorRecordNotFound = errors.New("record not found")

// ValidationError marks caller input problems so handlers can map them
// to 400 instead of 500.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
