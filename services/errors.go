package services

import "errors"

// ErrNotFound signals that a requested record does not exist. Controllers
// surface it as HTTP 404.
var ErrNotFound = errors.New("record not found")

// ErrProfileExists signals an attempt to create a second profile for a user.
var ErrProfileExists = errors.New("user already has a profile")

// ValidationError is a user-correctable input problem scoped to a single
// field. Controllers surface it as HTTP 400 with the field name.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// AsValidation unwraps err into a ValidationError when it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
