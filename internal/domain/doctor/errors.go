package doctor

import "errors"

var (
	// ErrNotFound is returned when no doctor exists with the given id.
	ErrNotFound = errors.New("doctor not found")
	// ErrValidation is returned for malformed or missing required fields.
	ErrValidation = errors.New("invalid doctor")
)
